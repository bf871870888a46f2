package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Agricultural-portal/Frontend-sub001/internal/auth"
	"github.com/Agricultural-portal/Frontend-sub001/internal/backend"
	"github.com/Agricultural-portal/Frontend-sub001/internal/config"
	"github.com/Agricultural-portal/Frontend-sub001/internal/middleware"
	"github.com/Agricultural-portal/Frontend-sub001/internal/notification"
	"github.com/Agricultural-portal/Frontend-sub001/internal/session"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Outside dev the in-memory credential store would lose every session
	// on restart; require a durable backend.
	if !d.Cfg.IsDev() && d.DB == nil && d.Cache == nil {
		return fmt.Errorf("redis or database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Credential store selection: redis when configured, then postgres,
	// then in-memory for dev.
	var store session.Store
	switch {
	case d.Cache != nil:
		store = session.NewRedisStore(d.Cache)
	case d.DB != nil:
		store = session.NewPostgresStore(d.DB)
	default:
		store = session.NewMemoryStore()
	}

	backendClient := backend.NewClient(d.Cfg.AuthBackendURL, d.Cfg.BackendTimeout)
	notifier := notification.NewLoggerNotifier(d.Logger)
	authSvc := auth.NewService(backendClient, store, notifier)
	authHandler := auth.NewHandler(authSvc, d.Cfg.SessionCookie)

	// Public routes
	app.Get("/login", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"page":      "login",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRateLimit)
	RegisterAuthRoutes(app, authHandler, rateLimiter)

	// Protected routes
	RegisterDashboardRoutes(app, authSvc, d.Cfg.SessionCookie)
	app.Get("/me", middleware.Protect(authSvc, d.Cfg.SessionCookie), authHandler.Me)

	return nil
}
