package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yourorg/rosterhub/internal/domain"
)

// PostgresUserRepository implements domain.UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresUserRepository creates a new user repository
func NewPostgresUserRepository(db *sql.DB, logger *slog.Logger) *PostgresUserRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a credential row. Duplicate usernames are left to storage
// constraints, if any.
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO usuarios (username, password) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash)
	if err != nil {
		r.logger.Error("failed to insert user",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// FindByUsername returns every credential row matching username exactly.
// An empty result is not an error at this layer.
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) ([]*domain.User, error) {
	query := `SELECT username, password FROM usuarios WHERE username = $1`

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		r.logger.Error("failed to query users",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u := &domain.User{}
		if err := rows.Scan(&u.Username, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
