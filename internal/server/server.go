// Package server assembles the Fiber application from its dependencies.
package server

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"duckstore/internal/config"
	"duckstore/internal/handlers"
	"duckstore/internal/middleware"
	"duckstore/internal/repositories"
	"duckstore/internal/services"
	"duckstore/internal/validation"
)

// WelcomeMessage is the body of GET /.
const WelcomeMessage = "Welcome to the MENTS API"

// Options holds everything New needs. Events and Redis are optional.
type Options struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *slog.Logger
	Events services.EventPublisher
	Redis  *redis.Client
	// AccessLog enables Fiber's request logger.
	AccessLog bool
}

// Server is an assembled application.
type Server struct {
	App         *fiber.App
	AuthService *services.AuthService
}

// New wires repositories, services, and handlers into a Fiber app. Each call
// yields an independent instance.
func New(opts Options) *Server {
	cfg := opts.Config
	v := validation.New()

	userRepo := repositories.NewGORMUserRepository(opts.DB)
	productRepo := repositories.NewGORMProductRepository(opts.DB)

	authService := services.NewAuthService(userRepo, v, opts.Logger, cfg.TokenSecret, cfg.TokenTTL)
	productService := services.NewProductService(productRepo, v, opts.Events, opts.Logger)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	limiter := middleware.NewRateLimiter(opts.Redis, opts.Logger)
	authRequired := middleware.AuthRequired(authService)

	app := fiber.New(fiber.Config{
		AppName:      "duckstore",
		Immutable:    true,
		ErrorHandler: handlers.ErrorHandler(opts.Logger),
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowHeaders:  strings.Join([]string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, middleware.TokenHeader}, ", "),
		ExposeHeaders: middleware.TokenHeader,
	}))
	app.Use(middleware.Deadline(cfg.RequestTimeout))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := productService.Ping(c.UserContext()); err != nil {
			opts.Logger.WarnContext(c.UserContext(), "health check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
				"time":   time.Now().Format(time.RFC3339),
			})
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	for _, router := range []fiber.Router{app, app.Group("/api")} {
		router.Get("/", func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).SendString(WelcomeMessage)
		})
		authHandler.RegisterRoutes(router, limiter.Limit("user", cfg.RateLimit, cfg.RateLimitWindow))
		productHandler.RegisterRoutes(router, authRequired)
	}

	return &Server{App: app, AuthService: authService}
}
