// Package main is the entrypoint for the Tavolo API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tavolo/tavolo/internal/cache"
	"github.com/tavolo/tavolo/internal/config"
	"github.com/tavolo/tavolo/internal/handler"
	"github.com/tavolo/tavolo/internal/metrics"
	"github.com/tavolo/tavolo/internal/middleware"
	"github.com/tavolo/tavolo/internal/repository"
	"github.com/tavolo/tavolo/internal/server"
	"github.com/tavolo/tavolo/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Schema is embedded; the binary migrates itself on boot.
	if err := repository.Migrate(cfg.DatabaseURL); err != nil {
		logger.Error("failed to apply migrations",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
		)
		os.Exit(1)
	}

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		repo.Close()
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheus(registry)

	// Services
	accountService := service.NewAccountService(repo, cacheClient, cfg.SessionTTL, recorder)
	restaurantService := service.NewRestaurantService(repo)
	menuService := service.NewMenuService(repo, recorder)
	promotionService := service.NewPromotionService(repo, recorder)
	ledgerService := service.NewLedgerService(repo, recorder)
	storefrontService := service.NewStorefrontService(repo, repo, repo, recorder)
	qrService := service.NewQRService(cfg.BaseURL)

	// Handlers
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(accountService, logger, cfg.IsProduction())
	restaurantHandler := handler.NewRestaurantHandler(restaurantService, qrService, logger)
	menuHandler := handler.NewMenuHandler(menuService, logger)
	promotionHandler := handler.NewPromotionHandler(promotionService, logger)
	ledgerHandler := handler.NewLedgerHandler(ledgerService, logger)
	publicHandler := handler.NewPublicHandler(storefrontService, logger)

	r := setupRouter(routerDeps{
		cfg:        cfg,
		logger:     logger,
		repo:       repo,
		cache:      cacheClient,
		registry:   registry,
		health:     healthHandler,
		auth:       authHandler,
		restaurant: restaurantHandler,
		menu:       menuHandler,
		promotion:  promotionHandler,
		ledger:     ledgerHandler,
		public:     publicHandler,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

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
	cfg        *config.Config
	logger     *slog.Logger
	repo       *repository.Repository
	cache      *cache.Cache
	registry   *prometheus.Registry
	health     *handler.HealthHandler
	auth       *handler.AuthHandler
	restaurant *handler.RestaurantHandler
	menu       *handler.MenuHandler
	promotion  *handler.PromotionHandler
	ledger     *handler.LedgerHandler
	public     *handler.PublicHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(maxBodySize(d.cfg.MaxRequestBodySize))

	if origins := d.cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.TenantHeader, middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}).Handler)
	}

	// Operational endpoints (no auth)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))
	r.Get("/", handler.Hello)

	authCfg := middleware.AuthConfig{
		Logger:   d.logger,
		Sessions: d.cache,
	}
	tenantCfg := middleware.TenantConfig{
		Logger: d.logger,
		Source: d.repo,
	}
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:      d.logger,
		Limiter:     d.cache,
		PublicRPS:   d.cfg.RateLimitPublicRPS,
		PublicBurst: d.cfg.RateLimitPublicBurst,
	}

	r.Route("/api", func(r chi.Router) {
		// Session issuance, below no auth.
		r.Post("/auth/register", d.auth.Register)
		r.Post("/auth/login", d.auth.Login)
		r.Post("/auth/logout", d.auth.Logout)

		// Authenticated, tenant-independent: restaurant provisioning must
		// work for owners who have no restaurant yet.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			if d.cfg.RateLimitAPIEnabled {
				r.Use(middleware.UserRateLimit(rateLimitCfg))
			}

			r.Get("/restaurant", d.restaurant.List)
			r.Post("/restaurant", d.restaurant.Create)

			// Tenant-scoped resources.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Tenant(tenantCfg))

				r.Get("/restaurant/qrcode", d.restaurant.QRCode)

				r.Get("/menu", d.menu.List)
				r.Post("/menu", d.menu.Create)
				r.Get("/menu/{id}", d.menu.Get)
				r.Put("/menu/{id}", d.menu.Update)
				r.Delete("/menu/{id}", d.menu.Delete)

				r.Get("/promotion", d.promotion.List)
				r.Post("/promotion", d.promotion.Create)
				r.Get("/promotion/{id}", d.promotion.Get)
				r.Put("/promotion/{id}", d.promotion.Update)
				r.Delete("/promotion/{id}", d.promotion.Delete)

				r.Get("/expenses", d.ledger.ListExpenses)
				r.Post("/expenses", d.ledger.CreateExpense)
				r.Get("/income", d.ledger.ListIncome)
				r.Post("/income", d.ledger.CreateIncome)
				r.Get("/summary", d.ledger.Summary)
			})
		})
	})

	// Public storefront with IP-based rate limiting (no auth).
	r.Group(func(r chi.Router) {
		if d.cfg.RateLimitPublicEnabled {
			r.Use(middleware.IPRateLimit(rateLimitCfg))
		}
		r.Get("/public/{slug}", d.public.Storefront)
		r.Get("/public/{slug}/menu", d.public.Menu)
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

// maxBodySize caps request bodies; oversized writes surface as decode
// errors in handlers.
func maxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
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
