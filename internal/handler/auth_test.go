package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourorg/rosterhub/internal/domain"
	"github.com/yourorg/rosterhub/internal/security/ratelimit"
	"github.com/yourorg/rosterhub/internal/service"
)

type memUserRepo struct {
	users   map[string][]*domain.User
	findErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string][]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	m.users[user.Username] = append(m.users[user.Username], user)
	return nil
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) ([]*domain.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.users[username], nil
}

func newAuthHandler(repo domain.UserRepository, limiter *ratelimit.Limiter) *AuthHandler {
	return NewAuthHandler(service.NewAuthService(repo, nil), limiter, nil)
}

func postCredentials(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	repo := newMemUserRepo()
	h := newAuthHandler(repo, nil)

	w := postCredentials(t, h.Register, `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "user registered successfully", resp.Message)
	require.NotEqual(t, "secret1", repo.users["alice"][0].PasswordHash)

	w = postCredentials(t, h.Login, `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
}

// Wrong credentials are a business outcome: the HTTP status stays 200 and
// the body carries the verdict.
func TestAuthHandler_LoginFailuresAreHTTP200(t *testing.T) {
	repo := newMemUserRepo()
	h := newAuthHandler(repo, nil)

	w := postCredentials(t, h.Register, `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postCredentials(t, h.Login, `{"username":"alice","password":"wrong"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "incorrect password", resp.Message)

	w = postCredentials(t, h.Login, `{"username":"bob","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "user not found", resp.Message)
}

func TestAuthHandler_LoginInfraErrorIs500(t *testing.T) {
	repo := newMemUserRepo()
	repo.findErr = errors.New("connection refused")
	h := newAuthHandler(repo, nil)

	w := postCredentials(t, h.Login, `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	// the underlying cause is logged, never echoed
	require.NotContains(t, resp.Message, "connection refused")
}

func TestAuthHandler_MissingFields(t *testing.T) {
	h := newAuthHandler(newMemUserRepo(), nil)

	for _, body := range []string{
		`{"username":"alice"}`,
		`{"password":"secret1"}`,
		`{}`,
		`{not json`,
	} {
		w := postCredentials(t, h.Register, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestAuthHandler_RateLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter(2, time.Minute)
	defer limiter.Stop()

	h := newAuthHandler(newMemUserRepo(), limiter)

	// httptest requests share a RemoteAddr, so they count against one bucket
	for i := 0; i < 2; i++ {
		w := postCredentials(t, h.Login, `{"username":"alice","password":"secret1"}`)
		require.NotEqual(t, http.StatusTooManyRequests, w.Code)
	}

	w := postCredentials(t, h.Login, `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}
