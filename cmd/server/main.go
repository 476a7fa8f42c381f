package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yourorg/rosterhub/internal/handler"
	"github.com/yourorg/rosterhub/internal/infrastructure/logger"
	"github.com/yourorg/rosterhub/internal/infrastructure/redis"
	"github.com/yourorg/rosterhub/internal/observability/metrics"
	"github.com/yourorg/rosterhub/internal/observability/tracing"
	"github.com/yourorg/rosterhub/internal/reliability/retry"
	"github.com/yourorg/rosterhub/internal/repository"
	"github.com/yourorg/rosterhub/internal/security/ratelimit"
	"github.com/yourorg/rosterhub/internal/service"
	"github.com/yourorg/rosterhub/pkg/cache"
	"github.com/yourorg/rosterhub/pkg/config"
	"github.com/yourorg/rosterhub/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting rosterhub server", slog.String("environment", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, log, "rosterhub", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The store may come up after the process does; retry the initial
	// connection only. Request-path operations are never retried.
	pool, err := retry.Do(ctx, retry.DefaultConfig(), log, "connect database",
		func(ctx context.Context) (*database.ConnectionPool, error) {
			return database.NewConnectionPool(ctx, &cfg.Database, log)
		})
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool.GetDB()); err != nil {
		log.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Roster read cache: Redis when configured, in-process otherwise
	var listCache service.Cache
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		listCache = redisClient
		log.Info("using redis roster cache")
	} else {
		listCache = cache.New()
		log.Info("using in-process roster cache")
	}

	employeeRepo := repository.NewPostgresEmployeeRepository(pool.GetDB(), log)
	userRepo := repository.NewPostgresUserRepository(pool.GetDB(), log)

	employeeService := service.NewEmployeeService(employeeRepo, listCache, cfg.CacheTTL, log)
	authService := service.NewAuthService(userRepo, log)

	limiter := ratelimit.NewLimiter(cfg.AuthRateLimit, time.Minute)

	employeeHandler := handler.NewEmployeeHandler(employeeService, log)
	authHandler := handler.NewAuthHandler(authService, limiter, log)
	healthHandler := handler.NewHealthHandler(pool, redisClient, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /funcionarios", employeeHandler.List)
	mux.HandleFunc("POST /funcionarios", employeeHandler.Create)
	mux.HandleFunc("PUT /funcionarios/{id}", employeeHandler.Update)
	mux.HandleFunc("DELETE /funcionarios/{id}", employeeHandler.Delete)
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Static front end. The root path serves the login page, everything
	// else under GET / falls through to the static dir.
	staticFiles := http.FileServer(http.Dir(cfg.StaticDir))
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.ServeFile(w, r, filepath.Join(cfg.StaticDir, "login.html"))
			return
		}
		staticFiles.ServeHTTP(w, r)
	})

	handlerWithCORS := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(cfg.CORSAllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(cfg.CORSAllowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins[0])
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})

	rootHandler := otelhttp.NewHandler(
		withRequestID(metrics.HTTPMetricsMiddleware(handlerWithCORS), log),
		"rosterhub",
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      rootHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting", slog.Int("port", cfg.ServerPort))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	limiter.Stop()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}
	log.Info("server stopped")
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == origin {
			return true
		}
	}
	return false
}

type requestIDKey struct{}

// withRequestID attaches a request ID to the context and response headers
// and logs each completed request.
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := generateRequestID()
		w.Header().Set("X-Request-ID", reqID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		log.Debug("request handled",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
