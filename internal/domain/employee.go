package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when an update or delete matches no employee row.
	ErrNotFound = errors.New("employee not found")
	// ErrNothingToUpdate is returned when a partial update carries no usable fields.
	ErrNothingToUpdate = errors.New("nothing to update")
)

// Employee represents one roster record. The JSON field names are the
// external contract; the storage layer uses data_nascimento for the
// dataNascimento column.
type Employee struct {
	ID             int64  `json:"id"`
	Nome           string `json:"nome"`
	Cargo          string `json:"cargo"`
	Email          string `json:"email"`
	CPF            string `json:"cpf"`
	DataNascimento string `json:"dataNascimento"` // always YYYY-MM-DD
	Telefone       string `json:"telefone"`
}

// EmployeeInput carries the writable fields of an employee as supplied by a
// caller. Every field is optional; empty means not supplied.
type EmployeeInput struct {
	Nome           string `json:"nome"`
	Cargo          string `json:"cargo"`
	Email          string `json:"email"`
	CPF            string `json:"cpf"`
	DataNascimento string `json:"dataNascimento"`
	Telefone       string `json:"telefone"`
}

// EmployeeRepository defines data access for employee records.
// Update and Delete report the number of rows affected so callers can
// distinguish a missing id from a successful write.
type EmployeeRepository interface {
	List(ctx context.Context, search string) ([]*Employee, error)
	Create(ctx context.Context, in *EmployeeInput) error
	Update(ctx context.Context, id int64, changes map[string]string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
