package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/leftmike/gcpath"
	"github.com/leftmike/gcpath/internal/config"
	"github.com/leftmike/gcpath/internal/metrics"
)

// PlotCache stores rendered plots; a nil PlotCache disables caching.
type PlotCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Dependencies holds everything needed by the HTTP handlers.
type Dependencies struct {
	Render gcpath.RenderOptions
	Cache  PlotCache
	Logger *slog.Logger
}

// NewDependencies derives handler dependencies from the service configuration.
func NewDependencies(cfg *config.Config, cache PlotCache, log *slog.Logger) *Dependencies {
	opts := gcpath.DefaultRenderOptions
	opts.Width = cfg.Render.Width
	opts.Height = cfg.Render.Height
	opts.StrokeWidth = cfg.Render.StrokeWidth
	return &Dependencies{
		Render: opts,
		Cache:  cache,
		Logger: log,
	}
}

// New builds the fiber application serving the analysis API.
func New(cfg *config.Config, deps *Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		AppName:      "gcpath",
	})
	app.Use(recover.New())
	app.Use(cors.New())
	SetupRoutes(app, deps, cfg.Server.StaticDir)
	return app
}

// SetupRoutes registers the API routes and, when staticDir is set, the frontend.
func SetupRoutes(app *fiber.App, deps *Dependencies, staticDir string) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Request ID, propagated into the request-scoped logger
	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware(deps.Logger))

	// Access logs
	app.Use(AccessLogMiddleware())

	app.Get("/health", HealthHandler())

	api := app.Group("/api")
	for _, r := range []fiber.Router{app, api} {
		r.Post("/upload", UploadHandler(deps))
		r.Post("/plot", PlotHandler(deps))
	}

	if staticDir != "" {
		app.Static("/", staticDir)
	}
}

func renderVariant(d gcpath.Dialect, opts gcpath.RenderOptions) string {
	return fmt.Sprintf("%s:%dx%d:%g", d, opts.Width, opts.Height, opts.StrokeWidth)
}
