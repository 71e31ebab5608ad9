package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/talencee/careers/internal/httpx"
	"github.com/talencee/careers/pkg/config"
	"github.com/talencee/careers/pkg/logx"
	"github.com/talencee/careers/recruitment/application/applicationapi"
	"github.com/talencee/careers/recruitment/content/contentapi"
	"github.com/talencee/careers/recruitment/job/jobapi"
)

func main() {
	// 1. Configuration and logger
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}
	logx.Configure(cfg.Logging.Level, cfg.Logging.Format)
	defer logx.Sync()
	logx.Infof("Starting %s (%s)...", cfg.App.Name, cfg.App.Environment)

	// 2. Dependency container
	ctx := context.Background()
	container, err := NewContainer(ctx, cfg)
	if err != nil {
		logx.Fatalf("Failed to initialize: %v", err)
	}
	defer container.Close()

	// 3. HTTP app
	app := newApp(container)

	go func() {
		logx.Infof("Server listening on port %s", cfg.App.Port)
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	// 4. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logx.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(cfg.App.ShutdownTimeout); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	drainCtx, cancel := context.WithTimeout(ctx, cfg.App.ShutdownTimeout)
	defer cancel()
	if err := container.Dispatcher.Shutdown(drainCtx); err != nil {
		logx.Warnf("Pending notifications dropped: %v", err)
	}

	logx.Info("Server exited")
}

// newApp builds the fiber app with every route mounted
func newApp(c *Container) *fiber.App {
	cfg := c.Config

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		// room for the resume plus the text fields
		BodyLimit:    int(2*cfg.Upload.MaxFileSize) + 1<<20,
		ErrorHandler: httpx.ErrorHandler(cfg.App.IsProduction(), cfg.Upload.MaxFileSize),
	})

	// Global middleware
	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.App.IsProduction()}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-API-Key",
		AllowMethods: "GET, POST, PUT, HEAD, OPTIONS",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	api := app.Group("/api")

	// Health check
	api.Get("/health", func(ctx *fiber.Ctx) error {
		body := fiber.Map{
			"success":   true,
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
			"db":        c.DB.PingContext(ctx.UserContext()) == nil,
		}
		if c.Redis != nil {
			body["redis"] = c.Redis.Ping(ctx.UserContext()).Err() == nil
		}
		return ctx.JSON(body)
	})

	// Routes: /api/jobs, /api/applications, /api/content
	jobapi.RegisterRoutes(api, c.JobHandlers)
	applicationapi.RegisterRoutes(api, c.ApplicationHandlers)
	contentapi.RegisterRoutes(api, c.ContentHandlers, c.AdminMiddleware)

	// Metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Stored resumes
	if root := c.LocalUploadRoot(); root != "" {
		app.Static(cfg.Upload.PublicPath, root, fiber.Static{Browse: false})
	}

	app.Use(httpx.RouteNotFound)

	return app
}
