// Package main is the entrypoint for the LitShelf API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/litshelf/litshelf/internal/auth"
	"github.com/litshelf/litshelf/internal/cache"
	"github.com/litshelf/litshelf/internal/config"
	"github.com/litshelf/litshelf/internal/handler"
	"github.com/litshelf/litshelf/internal/metrics"
	"github.com/litshelf/litshelf/internal/middleware"
	"github.com/litshelf/litshelf/internal/repository"
	"github.com/litshelf/litshelf/internal/server"
	"github.com/litshelf/litshelf/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenLifetime)

	recorder := metrics.NewInMemory()
	accountService := service.NewAccountService(repo, recorder)
	authService := service.NewAuthService(repo, tokens, recorder)
	novelistService := service.NewNovelistService(repo, recorder)
	bookService := service.NewBookService(repo, repo, recorder)

	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(recorder)
	accountHandler := handler.NewAccountHandler(accountService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	novelistHandler := handler.NewNovelistHandler(novelistService, logger)
	bookHandler := handler.NewBookHandler(bookService, logger)

	deps := routerDeps{
		health:    healthHandler,
		metrics:   metricsHandler,
		accounts:  accountHandler,
		authH:     authHandler,
		novelists: novelistHandler,
		books:     bookHandler,
		repo:      repo,
		cache:     cacheClient,
		tokens:    tokens,
		recorder:  recorder,
		cfg:       cfg,
		logger:    logger,
	}
	r := setupRouter(deps)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	health    *handler.HealthHandler
	metrics   *handler.MetricsHandler
	accounts  *handler.AccountHandler
	authH     *handler.AuthHandler
	novelists *handler.NovelistHandler
	books     *handler.BookHandler
	repo      *repository.Repository
	cache     *cache.Cache
	tokens    *auth.TokenService
	recorder  metrics.Recorder
	cfg       *config.Config
	logger    *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
// Reads are public; every mutation goes through the bearer-token auth
// middleware, and the token endpoint is rate limited per client IP.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: deps.cfg.IsDevelopment()}))
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/", handler.Hello)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/internal/metrics", deps.metrics.Snapshot)

	r.Post("/accounts/user", deps.accounts.Create)

	loginRateLimit := middleware.RateLimitLogin(middleware.RateLimitConfig{
		Logger:  deps.logger,
		Cache:   deps.cache,
		Enabled: deps.cfg.LoginRateLimitEnabled,
		RPS:     deps.cfg.LoginRateLimitRPS,
		Burst:   deps.cfg.LoginRateLimitBurst,
	})
	r.With(loginRateLimit).Post("/auth/token", deps.authH.Token)

	r.Get("/novelists/list", deps.novelists.List)
	r.Get("/novelists/{id}", deps.novelists.Get)
	r.Get("/books/list", deps.books.List)
	r.Get("/books/{id}", deps.books.Get)

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger:   deps.logger,
		Tokens:   deps.tokens,
		Accounts: deps.repo,
		Cache:    deps.cache,
		Metrics:  deps.recorder,
	})

	r.Group(func(pr chi.Router) {
		pr.Use(requireAuth)

		pr.Post("/auth/refresh_token", deps.authH.Refresh)

		pr.Put("/accounts/user/{id}", deps.accounts.Replace)
		pr.Delete("/accounts/user/{id}", deps.accounts.Delete)

		pr.Post("/novelists/new", deps.novelists.Create)
		pr.Patch("/novelists/{id}", deps.novelists.Update)
		pr.Delete("/novelists/{id}", deps.novelists.Delete)

		pr.Post("/books/new", deps.books.Create)
		pr.Patch("/books/{id}", deps.books.Update)
		pr.Delete("/books/{id}", deps.books.Delete)
	})

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
