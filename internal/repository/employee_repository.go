package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/yourorg/rosterhub/internal/domain"
)

// PostgresEmployeeRepository implements domain.EmployeeRepository using PostgreSQL
type PostgresEmployeeRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresEmployeeRepository creates a new employee repository
func NewPostgresEmployeeRepository(db *sql.DB, logger *slog.Logger) *PostgresEmployeeRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEmployeeRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all employees, or only those whose name contains search
// case-insensitively when search is non-empty. The date of birth is
// formatted by the store as YYYY-MM-DD.
func (r *PostgresEmployeeRepository) List(ctx context.Context, search string) ([]*domain.Employee, error) {
	query := `
		SELECT id, nome, cargo, email, cpf, to_char(data_nascimento, 'YYYY-MM-DD'), telefone
		FROM funcionarios
	`

	var args []interface{}
	if search != "" {
		query += ` WHERE LOWER(nome) LIKE '%' || $1 || '%'`
		args = append(args, strings.ToLower(search))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query employees",
			slog.String("search", search),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		var (
			e        domain.Employee
			cargo    sql.NullString
			email    sql.NullString
			cpf      sql.NullString
			birth    sql.NullString
			telefone sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Nome, &cargo, &email, &cpf, &birth, &telefone); err != nil {
			r.logger.Error("failed to scan employee row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.Cargo = cargo.String
		e.Email = email.String
		e.CPF = cpf.String
		e.DataNascimento = birth.String
		e.Telefone = telefone.String
		employees = append(employees, &e)
	}

	return employees, rows.Err()
}

// Create inserts a new employee row; the store assigns the id. Empty
// optional fields are stored as NULL so the DATE column accepts them.
func (r *PostgresEmployeeRepository) Create(ctx context.Context, in *domain.EmployeeInput) error {
	query := `
		INSERT INTO funcionarios (nome, cargo, email, cpf, data_nascimento, telefone)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		in.Nome,
		nullable(in.Cargo),
		nullable(in.Email),
		nullable(in.CPF),
		nullable(in.DataNascimento),
		nullable(in.Telefone),
	)
	if err != nil {
		r.logger.Error("failed to insert employee", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

// Update applies the change-set to the row matching id and returns the
// number of rows affected. Column names come from the service's fixed
// field mapping, never from caller input. Columns are ordered so the
// generated SQL is deterministic.
func (r *PostgresEmployeeRepository) Update(ctx context.Context, id int64, changes map[string]string) (int64, error) {
	cols := make([]string, 0, len(changes))
	for col := range changes {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	set := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, col := range cols {
		set = append(set, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, changes[col])
	}
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE funcionarios SET %s WHERE id = $%d`,
		strings.Join(set, ", "),
		len(args),
	)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to update employee",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to update employee: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected, nil
}

// Delete removes the row matching id and returns the number of rows affected
func (r *PostgresEmployeeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM funcionarios WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to delete employee",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to delete employee: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
