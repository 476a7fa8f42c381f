package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourorg/rosterhub/internal/domain"
)

type fakeUserRepo struct {
	users     map[string][]*domain.User
	createErr error
	findErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string][]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[user.Username] = append(f.users[user.Username], user)
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) ([]*domain.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.users[username], nil
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewAuthService(repo, nil)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "alice", "secret1"))

	stored := repo.users["alice"]
	require.Len(t, stored, 1)
	require.NotEqual(t, "secret1", stored[0].PasswordHash, "password must never be stored in plaintext")

	require.NoError(t, s.Login(ctx, "alice", "secret1"))
	require.ErrorIs(t, s.Login(ctx, "alice", "wrong"), domain.ErrIncorrectPassword)
	require.ErrorIs(t, s.Login(ctx, "bob", "secret1"), domain.ErrUserNotFound)
}

func TestAuthService_LoginTakesFirstMatch(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewAuthService(repo, nil)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "alice", "first"))
	require.NoError(t, s.Register(ctx, "alice", "second"))

	require.NoError(t, s.Login(ctx, "alice", "first"))
	require.ErrorIs(t, s.Login(ctx, "alice", "second"), domain.ErrIncorrectPassword)
}

func TestAuthService_RegisterStoreError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = errors.New("connection refused")
	s := NewAuthService(repo, nil)

	require.Error(t, s.Register(context.Background(), "alice", "secret1"))
}

func TestAuthService_LoginLookupError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findErr = errors.New("connection refused")
	s := NewAuthService(repo, nil)

	err := s.Login(context.Background(), "alice", "secret1")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrUserNotFound)
	require.NotErrorIs(t, err, domain.ErrIncorrectPassword)
}

func TestAuthService_LoginMalformedDigest(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["alice"] = []*domain.User{{Username: "alice", PasswordHash: "not-a-bcrypt-digest"}}
	s := NewAuthService(repo, nil)

	err := s.Login(context.Background(), "alice", "secret1")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrIncorrectPassword, "a broken digest is an infrastructure failure, not a wrong password")
}
