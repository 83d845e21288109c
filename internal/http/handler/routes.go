// Package handler exposes the analysis system over HTTP.
package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"atlas/internal/atlas"
	"atlas/internal/i18n"
	"atlas/internal/logger"
	"atlas/internal/memory"
	"atlas/internal/scanner"
	"atlas/internal/service"
)

// Pinger reports dependency health. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Core is the analysis engine. *atlas.Core satisfies it.
type Core interface {
	AnalyzeQuery(ctx context.Context, domain, query string) *atlas.Result
	Status(ctx context.Context) *atlas.Status
}

// Deps are the collaborators RegisterRoutes wires into handlers.
type Deps struct {
	DB            Pinger
	Core          Core
	Analyses      service.AnalysisService
	Conversations service.ConversationService
	Scanner       *scanner.Scanner
	Catalog       *i18n.Catalog
	Memory        memory.Store
	Gatherer      prometheus.Gatherer
	Stress        StressLimits
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	app.Post("/analyze", AnalyzeQuery(d.Core))
	app.Get("/status", SystemStatus(d.Core))
	app.Get("/diagnostics", Diagnostics(d.Core))
	app.Post("/stress", RunStress(d.Core, d.Stress))

	app.Post("/analyses", CreateAnalysis(d.Analyses))
	app.Get("/analyses", ListAnalyses(d.Analyses))
	app.Get("/analyses/:id", GetAnalysis(d.Analyses))
	app.Get("/analyses/:id/report", GetAnalysisReport(d.Analyses))
	app.Get("/analyses/:id/report-url", GetAnalysisReportURL(d.Analyses))
	app.Delete("/analyses/:id", DeleteAnalysis(d.Analyses))

	app.Get("/domains", ListDomains(d.Scanner))
	app.Post("/domains/:domain/scan", ScanDomain(d.Scanner))
	app.Get("/languages", ListLanguages(d.Catalog))
	app.Post("/conversations", Converse(d.Conversations))

	app.Get("/memories/metrics", MemoryMetrics(d.Memory))
	app.Get("/memories/:id", GetMemory(d.Memory))
}

func loggerFor(c *fiber.Ctx) *zerolog.Logger {
	l := logger.FromContext(c.UserContext(), "http")
	return &l
}

// language resolves the request language from an explicit value or the
// Accept-Language header.
func language(c *fiber.Ctx, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return c.Get(fiber.HeaderAcceptLanguage)
}
