package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/rosterhub/internal/domain"
	"github.com/yourorg/rosterhub/internal/observability/metrics"
)

// bcryptCost is the work factor for stored password digests.
const bcryptCost = 10

// AuthService handles registration and login against the credential store
type AuthService struct {
	users  domain.UserRepository
	logger *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(users domain.UserRepository, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		users:  users,
		logger: logger,
	}
}

// Register hashes the password and stores a new credential row. Duplicate
// usernames are left to storage constraints.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return fmt.Errorf("failed to register user: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", slog.String("username", username))
	return nil
}

// Login verifies the password against the stored digest for username.
// domain.ErrUserNotFound and domain.ErrIncorrectPassword are business
// outcomes the transport reports with a success status; any other error is
// an infrastructure failure.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	users, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		metrics.ObserveLogin("error")
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if len(users) == 0 {
		s.logger.Info("login attempt for unknown user", slog.String("username", username))
		metrics.ObserveLogin("user_not_found")
		return domain.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Info("login failed with wrong password", slog.String("username", username))
			metrics.ObserveLogin("incorrect_password")
			return domain.ErrIncorrectPassword
		}
		// malformed digest or bcrypt failure, not a wrong password
		s.logger.Error("failed to verify password",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		metrics.ObserveLogin("error")
		return fmt.Errorf("failed to verify password: %w", err)
	}

	s.logger.Info("user logged in", slog.String("username", username))
	metrics.ObserveLogin("success")
	return nil
}
