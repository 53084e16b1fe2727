// Package app wires configuration, storage, services and HTTP routes into a
// runnable service with an explicit startup and shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/docs"
	"catalog/internal/handlers"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Version is reported by the API docs.
const Version = "1.0.0"

// App is the assembled service.
type App struct {
	Fiber *fiber.App
	DB    *gorm.DB

	cfg config.Config
	mq  *rabbitmq.Client
}

// New opens the database, migrates it, connects the optional event publisher
// and builds the HTTP app. Call Shutdown to release everything it opened.
func New(cfg config.Config) (*App, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	a := &App{DB: db, cfg: cfg}

	// A nil *rabbitmq.Client must not end up inside the interface.
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
		if err != nil {
			_ = database.Close(db)
			return nil, err
		}
		a.mq = mq
		publisher = mq
	} else {
		log.Println("RABBITMQ_URL not set, product events are disabled")
	}

	productRepo := repositories.NewGORMProductRepository(db)
	productService := services.NewProductService(productRepo, publisher)
	a.Fiber = newFiber(cfg, productService, a.health)
	return a, nil
}

func newFiber(cfg config.Config, productService *services.ProductService, health fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "catalog",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	if cfg.FrontendURL != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.FrontendURL,
			AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		}))
	}

	api := app.Group("/api")
	handlers.NewProductHandler(productService).RegisterRoutes(api)

	docs.RegisterRoutes(app, docs.OpenAPI(models.ProductSchema, Version))
	app.Get("/health", health)
	return app
}

func (a *App) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	events := "disabled"
	if a.mq != nil {
		events = "enabled"
	}
	if err := database.Ping(ctx, a.DB); err != nil {
		log.Printf("Health check failed: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "unreachable",
			"events":   events,
		})
	}
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": "connected",
		"events":   events,
	})
}

// Listen serves HTTP on the configured port until Shutdown is called.
func (a *App) Listen() error {
	log.Printf("Starting server on port %s", a.cfg.AppPort)
	return a.Fiber.Listen(a.cfg.AppPort)
}

// Shutdown stops accepting requests, waits for in-flight ones within ctx,
// then closes the event publisher and the database.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
	}
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, fmt.Errorf("rabbitmq close: %w", err))
		}
	}
	if err := database.Close(a.DB); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}
	return errors.Join(errs...)
}
