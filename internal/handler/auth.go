package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/yourorg/rosterhub/internal/domain"
	"github.com/yourorg/rosterhub/internal/security/ratelimit"
	"github.com/yourorg/rosterhub/internal/service"
)

// AuthHandler handles the /register and /login endpoints
type AuthHandler struct {
	auth    *service.AuthService
	limiter *ratelimit.Limiter
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth handler. limiter may be nil to disable
// rate limiting.
func NewAuthHandler(auth *service.AuthService, limiter *ratelimit.Limiter, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		auth:    auth,
		limiter: limiter,
		logger:  logger,
	}
}

// CredentialsRequest carries a username/password pair
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	if err := h.auth.Register(r.Context(), req.Username, req.Password); err != nil {
		h.logger.Error("failed to register user",
			slog.String("username", req.Username),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "user registered successfully"})
}

// Login handles POST /login. Unknown user and wrong password are business
// outcomes: the response is a 200 whose body carries the verdict. Only
// infrastructure failures produce an error status.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	switch err := h.auth.Login(r.Context(), req.Username, req.Password); {
	case errors.Is(err, domain.ErrUserNotFound):
		writeJSON(w, http.StatusOK, Response{Success: false, Message: "user not found"})
	case errors.Is(err, domain.ErrIncorrectPassword):
		writeJSON(w, http.StatusOK, Response{Success: false, Message: "incorrect password"})
	case err != nil:
		h.logger.Error("login failed",
			slog.String("username", req.Username),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	default:
		writeSuccess(w)
	}
}

// decodeCredentials parses the request body and applies the rate limit.
// On failure it writes the response and returns ok false.
func (h *AuthHandler) decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequest, bool) {
	if h.limiter != nil && !h.limiter.Allow(clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return CredentialsRequest{}, false
	}

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode credentials", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid request")
		return CredentialsRequest{}, false
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return CredentialsRequest{}, false
	}

	return req, true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
