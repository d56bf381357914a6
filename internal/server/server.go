// Package server собирает HTTP сервер: хранилище, сервисы, маршруты и middleware.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/vidtube/internal/crypto"
	"github.com/iudanet/vidtube/internal/server/account"
	"github.com/iudanet/vidtube/internal/server/config"
	"github.com/iudanet/vidtube/internal/server/handlers"
	"github.com/iudanet/vidtube/internal/server/jwt"
	"github.com/iudanet/vidtube/internal/server/middleware"
	"github.com/iudanet/vidtube/internal/server/session"
	"github.com/iudanet/vidtube/internal/server/storage"
	"github.com/iudanet/vidtube/internal/server/storage/mongo"
	"github.com/iudanet/vidtube/internal/server/storage/postgres"
	"github.com/iudanet/vidtube/internal/server/storage/sqlite"
)

// Server - HTTP сервер аутентификации
type Server struct {
	logger     *slog.Logger
	cfg        *config.Config
	store      storage.Storage
	httpServer *http.Server
	handler    http.Handler
	closers    []func() error

	shutdownOnce sync.Once
	shutdownErr  error
}

// New открывает хранилище по конфигу и собирает сервер
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string) (*Server, error) {
	store, err := OpenStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	s, err := NewWithStorage(ctx, cfg, logger, store, version)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return s, nil
}

// OpenStorage создает хранилище выбранного драйвера
func OpenStorage(ctx context.Context, cfg config.Storage) (storage.Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.New(ctx, cfg.DSN)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DSN)
	case config.DriverMongo:
		return mongo.New(ctx, cfg.DSN, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// NewWithStorage собирает сервер поверх готового хранилища.
// Сервер становится владельцем store и закрывает его в Shutdown.
func NewWithStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger, store storage.Storage, version string) (*Server, error) {
	s := &Server{
		logger: logger,
		cfg:    cfg,
		store:  store,
	}

	hasher, err := crypto.NewPasswordHasher(cfg.HasherConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	tokens, err := jwt.NewService(cfg.JWTConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	limiter, err := s.newLimiter(ctx)
	if err != nil {
		return nil, err
	}

	sessions := session.NewService(logger, store, hasher, tokens)
	accounts := account.NewService(logger, store, hasher)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	authHandler := handlers.NewAuthHandler(logger, sessions, handlers.CookieConfig{
		Domain: cfg.Cookie.Domain,
		Secure: cfg.Cookie.Secure,
	})
	userHandler := handlers.NewUserHandler(logger, accounts)
	healthHandler := handlers.NewHealthHandler(logger, store, version)

	requireAuth := middleware.AuthMiddleware(logger, sessions)
	rateLimit := middleware.RateLimitMiddleware(limiter, logger, cfg.RateLimit.TrustProxy)

	mux := http.NewServeMux()

	// Публичные endpoints, ограниченные по частоте
	mux.Handle("POST /api/v1/users/register", rateLimit(http.HandlerFunc(userHandler.Register)))
	mux.Handle("POST /api/v1/users/login", rateLimit(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/v1/users/refresh-token", rateLimit(http.HandlerFunc(authHandler.Refresh)))

	// Требуют access token
	mux.Handle("POST /api/v1/users/logout", requireAuth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("POST /api/v1/users/change-password", requireAuth(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("GET /api/v1/users/current-user", requireAuth(http.HandlerFunc(userHandler.CurrentUser)))
	mux.Handle("PATCH /api/v1/users/update-account", requireAuth(http.HandlerFunc(userHandler.UpdateAccount)))

	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	// recovery -> logging -> metrics -> mux
	var h http.Handler = metrics.Middleware(mux)
	h = middleware.LoggingWithSkip(logger, []string{"/api/v1/health", "/metrics"})(h)
	h = middleware.RecoveryMiddleware(logger)(h)
	s.handler = h

	s.httpServer = &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return s, nil
}

// newLimiter выбирает Redis limiter, если задан адрес, иначе in-memory
func (s *Server) newLimiter(ctx context.Context) (middleware.Limiter, error) {
	rl := s.cfg.RateLimit

	if rl.RedisAddr == "" {
		limiter := middleware.NewRateLimiter(rl.Requests, rl.Window, s.logger)
		s.closers = append(s.closers, func() error {
			limiter.Stop()
			return nil
		})
		return limiter, nil
	}

	client := redis.NewClient(&redis.Options{Addr: rl.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis %s: %w", rl.RedisAddr, err)
	}
	s.closers = append(s.closers, client.Close)

	s.logger.Info("Using redis rate limiter", "addr", rl.RedisAddr)
	return middleware.NewRedisLimiter(client, rl.Requests, rl.Window, "vidtube:ratelimit:"), nil
}

// Handler возвращает корневой handler со всеми middleware
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run слушает адрес из конфига до отмены ctx, затем корректно останавливает сервер
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
		defer cancel()

		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Shutdown останавливает прием запросов и освобождает ресурсы.
// Повторные вызовы возвращают результат первого.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		s.shutdownErr = s.shutdown(ctx)
	})
	return s.shutdownErr
}

func (s *Server) shutdown(ctx context.Context) error {
	var errs []error

	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("storage close: %w", err))
	}

	s.logger.Info("Server stopped")
	return errors.Join(errs...)
}
