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

func TestPostgresUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO usuarios (username, password) VALUES ($1, $2)`)).
		WithArgs("alice", "$2a$10$digest").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewPostgresUserRepository(db, nil)
	err = repo.Create(context.Background(), &domain.User{
		Username:     "alice",
		PasswordHash: "$2a$10$digest",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"username", "password"}).
		AddRow("alice", "$2a$10$first").
		AddRow("alice", "$2a$10$second")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, password FROM usuarios WHERE username = $1`)).
		WithArgs("alice").
		WillReturnRows(rows)

	repo := NewPostgresUserRepository(db, nil)
	users, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "$2a$10$first", users[0].PasswordHash, "row order decides which digest login verifies")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByUsernameEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, password FROM usuarios WHERE username = $1`)).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password"}))

	repo := NewPostgresUserRepository(db, nil)
	users, err := repo.FindByUsername(context.Background(), "bob")
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestPostgresUserRepository_FindByUsernameError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, password FROM usuarios`)).
		WillReturnError(errors.New("connection refused"))

	repo := NewPostgresUserRepository(db, nil)
	_, err = repo.FindByUsername(context.Background(), "alice")
	require.Error(t, err)
}
