package test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yourorg/rosterhub/internal/domain"
	"github.com/yourorg/rosterhub/internal/handler"
	"github.com/yourorg/rosterhub/internal/infrastructure/logger"
	"github.com/yourorg/rosterhub/internal/service"
	"github.com/yourorg/rosterhub/pkg/cache"
)

// TestServerHelper runs the full HTTP surface against in-memory stores
type TestServerHelper struct {
	Server    *httptest.Server
	Logger    *slog.Logger
	Employees *MemEmployeeStore
	Users     *MemUserStore
}

// NewTestServer wires handlers, services and in-memory repositories the same
// way cmd/server does, minus the relational store.
func NewTestServer(t *testing.T) *TestServerHelper {
	t.Helper()

	log := logger.NewLogger("error")
	employees := NewMemEmployeeStore()
	users := NewMemUserStore()

	employeeService := service.NewEmployeeService(employees, cache.New(), time.Minute, log)
	authService := service.NewAuthService(users, log)

	employeeHandler := handler.NewEmployeeHandler(employeeService, log)
	authHandler := handler.NewAuthHandler(authService, nil, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /funcionarios", employeeHandler.List)
	mux.HandleFunc("POST /funcionarios", employeeHandler.Create)
	mux.HandleFunc("PUT /funcionarios/{id}", employeeHandler.Update)
	mux.HandleFunc("DELETE /funcionarios/{id}", employeeHandler.Delete)
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &TestServerHelper{
		Server:    server,
		Logger:    log,
		Employees: employees,
		Users:     users,
	}
}

// URL returns the base address of the test server
func (h *TestServerHelper) URL() string {
	return h.Server.URL
}

// MemEmployeeStore is an in-memory domain.EmployeeRepository with the same
// observable semantics as the Postgres one.
type MemEmployeeStore struct {
	mu        sync.Mutex
	nextID    int64
	employees []*domain.Employee
}

func NewMemEmployeeStore() *MemEmployeeStore {
	return &MemEmployeeStore{nextID: 1}
}

func (m *MemEmployeeStore) List(_ context.Context, search string) ([]*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.Employee
	for _, e := range m.employees {
		if search == "" || strings.Contains(strings.ToLower(e.Nome), strings.ToLower(search)) {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MemEmployeeStore) Create(_ context.Context, in *domain.EmployeeInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.employees = append(m.employees, &domain.Employee{
		ID:             m.nextID,
		Nome:           in.Nome,
		Cargo:          in.Cargo,
		Email:          in.Email,
		CPF:            in.CPF,
		DataNascimento: in.DataNascimento,
		Telefone:       in.Telefone,
	})
	m.nextID++
	return nil
}

func (m *MemEmployeeStore) Update(_ context.Context, id int64, changes map[string]string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.employees {
		if e.ID != id {
			continue
		}
		for column, value := range changes {
			switch column {
			case "nome":
				e.Nome = value
			case "cargo":
				e.Cargo = value
			case "email":
				e.Email = value
			case "cpf":
				e.CPF = value
			case "data_nascimento":
				e.DataNascimento = value
			case "telefone":
				e.Telefone = value
			}
		}
		return 1, nil
	}
	return 0, nil
}

func (m *MemEmployeeStore) Delete(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.employees {
		if e.ID == id {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// MemUserStore is an in-memory domain.UserRepository
type MemUserStore struct {
	mu    sync.Mutex
	users []*domain.User
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{}
}

func (m *MemUserStore) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, &domain.User{Username: user.Username, PasswordHash: user.PasswordHash})
	return nil
}

func (m *MemUserStore) FindByUsername(_ context.Context, username string) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.User
	for _, u := range m.users {
		if u.Username == username {
			out = append(out, u)
		}
	}
	return out, nil
}

// Digests returns the stored password digests for username
func (m *MemUserStore) Digests(username string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []string
	for _, u := range m.users {
		if u.Username == username {
			out = append(out, u.PasswordHash)
		}
	}
	return out
}
