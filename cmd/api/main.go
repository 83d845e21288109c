package main

import (
	"context"
	"errors"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"atlas/docs"
	"atlas/internal/atlas"
	"atlas/internal/config"
	"atlas/internal/database"
	"atlas/internal/database/migration"
	handlers "atlas/internal/http/handler"
	"atlas/internal/http/middleware"
	"atlas/internal/i18n"
	"atlas/internal/logger"
	"atlas/internal/memory"
	"atlas/internal/otel"
	"atlas/internal/repository/postgres"
	"atlas/internal/scanner"
	"atlas/internal/service"
	"atlas/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Atlas Cognitive Analysis API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger.Configure(logger.Config{Level: cfg.Log.Level, Service: cfg.Log.Service, Location: cfg.Location})
	log := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Initialize the S3-compatible report archive (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	var store memory.Store
	closeMemory := func() error { return nil }
	if cfg.Engine.TemporalEnabled {
		store, closeMemory, err = memory.Open(ctx, cfg.Memory, cfg.Redis, logger.WithComponent("memory"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize temporal memory")
		}
	}
	defer closeMemory()

	core := atlas.New(atlas.EngineOptions(cfg.Engine, store)...)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register http metrics")
	}
	analysisMetrics, err := service.NewAnalysisMetrics(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register analysis metrics")
	}

	// Initialize repositories and services
	analysisRepo := postgres.NewAnalysisPostgres(db)
	analysisSvc := service.NewAnalysisService(core, objStore, analysisRepo, analysisMetrics)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    1 << 20,
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:            db,
		Core:          core,
		Analyses:      analysisSvc,
		Conversations: service.NewConversationService(),
		Scanner:       scanner.New(),
		Catalog:       i18n.Default(),
		Memory:        store,
		Gatherer:      reg,
		Stress: handlers.StressLimits{
			MaxWorkers:  cfg.Stress.MaxWorkers,
			MaxDuration: time.Duration(cfg.Stress.MaxDurationSec) * time.Second,
		},
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("server listening")
		return app.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := app.ShutdownWithContext(sctx)
		if terr := shutdownTracing(sctx); terr != nil {
			log.Error().Err(terr).Msg("failed to flush traces")
		}
		return err
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
