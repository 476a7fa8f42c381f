package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/rosterhub/internal/domain"
)

const employeeColumns = `SELECT id, nome, cargo, email, cpf, to_char(data_nascimento, 'YYYY-MM-DD'), telefone`

func TestPostgresEmployeeRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "nome", "cargo", "email", "cpf", "to_char", "telefone"}).
		AddRow(1, "Ana Souza", "Dev", "ana@example.com", "111.222.333-44", "1990-05-20", "11999990000").
		AddRow(2, "Bruno Lima", nil, nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(employeeColumns)).WillReturnRows(rows)

	repo := NewPostgresEmployeeRepository(db, nil)
	employees, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, employees, 2)

	require.Equal(t, "1990-05-20", employees[0].DataNascimento)
	require.Equal(t, "Dev", employees[0].Cargo)

	// NULL columns come back as empty strings
	require.Equal(t, "", employees[1].Cargo)
	require.Equal(t, "", employees[1].DataNascimento)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEmployeeRepository_ListWithSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "nome", "cargo", "email", "cpf", "to_char", "telefone"}).
		AddRow(1, "Ana Souza", nil, nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(nome) LIKE '%' || $1 || '%'`)).
		WithArgs("ana").
		WillReturnRows(rows)

	repo := NewPostgresEmployeeRepository(db, nil)
	employees, err := repo.List(context.Background(), "ANA")
	require.NoError(t, err)
	require.Len(t, employees, 1)
	require.Equal(t, "Ana Souza", employees[0].Nome)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEmployeeRepository_ListError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(employeeColumns)).
		WillReturnError(errors.New("connection refused"))

	repo := NewPostgresEmployeeRepository(db, nil)
	_, err = repo.List(context.Background(), "")
	require.Error(t, err)
}

func TestPostgresEmployeeRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO funcionarios (nome, cargo, email, cpf, data_nascimento, telefone)`)).
		WithArgs("Ana Souza", "Dev", nil, nil, "1990-05-20", nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewPostgresEmployeeRepository(db, nil)
	err = repo.Create(context.Background(), &domain.EmployeeInput{
		Nome:           "Ana Souza",
		Cargo:          "Dev",
		DataNascimento: "1990-05-20",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEmployeeRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// columns are sorted, so the statement shape is deterministic
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE funcionarios SET cargo = $1, nome = $2 WHERE id = $3`)).
		WithArgs("Dev", "Ana Souza", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresEmployeeRepository(db, nil)
	affected, err := repo.Update(context.Background(), 7, map[string]string{
		"nome":  "Ana Souza",
		"cargo": "Dev",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEmployeeRepository_UpdateNoMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE funcionarios SET nome = $1 WHERE id = $2`)).
		WithArgs("Ana", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresEmployeeRepository(db, nil)
	affected, err := repo.Update(context.Background(), 99, map[string]string{"nome": "Ana"})
	require.NoError(t, err)
	require.Zero(t, affected)
}

func TestPostgresEmployeeRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM funcionarios WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM funcionarios WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresEmployeeRepository(db, nil)

	affected, err := repo.Delete(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	affected, err = repo.Delete(context.Background(), 99)
	require.NoError(t, err)
	require.Zero(t, affected)

	require.NoError(t, mock.ExpectationsWereMet())
}
