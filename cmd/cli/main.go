package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
)

// Thin command-line client for the rosterhub HTTP API. The server address
// comes from ROSTERHUB_URL, defaulting to a local instance.

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "employee":
		handleEmployee(args)
	case "auth":
		handleAuth(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleEmployee(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: rosterhub employee <list|add|update|delete>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "list":
		listEmployees(args[1:])
	case "add":
		addEmployee(args[1:])
	case "update":
		updateEmployee(args[1:])
	case "delete":
		deleteEmployee(args[1:])
	default:
		fmt.Printf("unknown employee command: %s\n", subCmd)
	}
}

func handleAuth(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: rosterhub auth <register|login>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "register":
		registerUser(args[1:])
	case "login":
		loginUser(args[1:])
	default:
		fmt.Printf("unknown auth command: %s\n", subCmd)
	}
}

type employee struct {
	ID             int64  `json:"id"`
	Nome           string `json:"nome"`
	Cargo          string `json:"cargo"`
	Email          string `json:"email"`
	CPF            string `json:"cpf"`
	DataNascimento string `json:"dataNascimento"`
	Telefone       string `json:"telefone"`
}

type listResponse struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message"`
	Funcionarios []employee `json:"funcionarios"`
}

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func listEmployees(args []string) {
	fs := flag.NewFlagSet("employee list", flag.ExitOnError)
	search := fs.String("search", "", "name substring filter")
	fs.Parse(args)

	url := serverURL() + "/funcionarios"
	if *search != "" {
		url += "?search=" + *search
	}

	resp, err := http.Get(url)
	if err != nil {
		fatal("request failed: %v", err)
	}
	defer resp.Body.Close()

	var result listResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		fatal("failed to decode response: %v", err)
	}
	if !result.Success {
		fatal("server error: %s", result.Message)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOME\tCARGO\tEMAIL\tNASCIMENTO\tTELEFONE")
	for _, e := range result.Funcionarios {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Nome, e.Cargo, e.Email, e.DataNascimento, e.Telefone)
	}
	w.Flush()
}

func addEmployee(args []string) {
	fs := flag.NewFlagSet("employee add", flag.ExitOnError)
	e := employeeFlags(fs)
	fs.Parse(args)

	result := postJSON("/funcionarios", e)
	if !result.Success {
		fatal("server error: %s", result.Message)
	}
	fmt.Println("employee added")
}

func updateEmployee(args []string) {
	fs := flag.NewFlagSet("employee update", flag.ExitOnError)
	id := fs.Int64("id", 0, "employee id (required)")
	e := employeeFlags(fs)
	fs.Parse(args)

	if *id == 0 {
		fatal("-id is required")
	}

	result := doJSON(http.MethodPut, fmt.Sprintf("/funcionarios/%d", *id), e)
	if !result.Success {
		fatal("server error: %s", result.Message)
	}
	fmt.Println("employee updated")
}

func deleteEmployee(args []string) {
	fs := flag.NewFlagSet("employee delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "employee id (required)")
	fs.Parse(args)

	if *id == 0 {
		fatal("-id is required")
	}

	result := doJSON(http.MethodDelete, fmt.Sprintf("/funcionarios/%d", *id), nil)
	if !result.Success {
		fatal("server error: %s", result.Message)
	}
	fmt.Println("employee deleted")
}

func registerUser(args []string) {
	fs := flag.NewFlagSet("auth register", flag.ExitOnError)
	username := fs.String("username", "", "username (required)")
	password := fs.String("password", "", "password (required)")
	fs.Parse(args)

	if *username == "" || *password == "" {
		fatal("-username and -password are required")
	}

	result := postJSON("/register", map[string]string{"username": *username, "password": *password})
	if !result.Success {
		fatal("server error: %s", result.Message)
	}
	fmt.Println(result.Message)
}

func loginUser(args []string) {
	fs := flag.NewFlagSet("auth login", flag.ExitOnError)
	username := fs.String("username", "", "username (required)")
	password := fs.String("password", "", "password (required)")
	fs.Parse(args)

	if *username == "" || *password == "" {
		fatal("-username and -password are required")
	}

	result := postJSON("/login", map[string]string{"username": *username, "password": *password})
	if result.Success {
		fmt.Println("login ok")
	} else {
		fmt.Printf("login failed: %s\n", result.Message)
	}
}

func employeeFlags(fs *flag.FlagSet) map[string]*string {
	return map[string]*string{
		"nome":           fs.String("nome", "", "employee name"),
		"cargo":          fs.String("cargo", "", "role/title"),
		"email":          fs.String("email", "", "email address"),
		"cpf":            fs.String("cpf", "", "national id"),
		"dataNascimento": fs.String("nascimento", "", "date of birth (YYYY-MM-DD)"),
		"telefone":       fs.String("telefone", "", "phone number"),
	}
}

func postJSON(path string, body any) apiResponse {
	return doJSON(http.MethodPost, path, body)
}

func doJSON(method, path string, body any) apiResponse {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			fatal("failed to encode request: %v", err)
		}
	}

	req, err := http.NewRequest(method, serverURL()+path, &buf)
	if err != nil {
		fatal("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fatal("request failed: %v", err)
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		fatal("failed to decode response: %v", err)
	}
	return result
}

func serverURL() string {
	if url := os.Getenv("ROSTERHUB_URL"); url != "" {
		return url
	}
	return "http://localhost:3000"
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`rosterhub - employee roster CLI

Usage:
  rosterhub employee list [-search term]
  rosterhub employee add -nome NAME [-cargo ROLE] [-email EMAIL] [-cpf CPF] [-nascimento YYYY-MM-DD] [-telefone PHONE]
  rosterhub employee update -id ID [fields...]
  rosterhub employee delete -id ID
  rosterhub auth register -username USER -password PASS
  rosterhub auth login -username USER -password PASS

Environment:
  ROSTERHUB_URL  server address (default http://localhost:3000)`)
}
