// Package atlas wires the cognitive engines into one analysis pipeline:
// semantic mapping, quantum emulation, bio-inspired processing, temporal
// memory and meta-cognitive reasoning, followed by report integration.
package atlas

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"atlas/internal/bio"
	"atlas/internal/cognitive"
	"atlas/internal/config"
	"atlas/internal/logger"
	"atlas/internal/memory"
	"atlas/internal/quantum"
	"atlas/internal/semantic"
)

const (
	metaCognitiveLayers = 7
	fractalCoherence    = 1.0
	baseModules         = 3
)

// ErrEmptyQuery is returned for blank queries.
var ErrEmptyQuery = errors.New("query is required")

// Core is the integrated cognitive system. It is safe for concurrent use.
type Core struct {
	mapper    *semantic.Mapper
	quantum   *quantum.Emulator
	bio       *bio.Processor
	memory    memory.Store
	cognitive *cognitive.Analyzer
	log       zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// Option configures a Core.
type Option func(*Core)

// WithMemory sets the temporal memory backend.
func WithMemory(s memory.Store) Option { return func(c *Core) { c.memory = s } }

// WithoutTemporal disables the temporal memory stage.
func WithoutTemporal() Option { return func(c *Core) { c.memory = nil } }

// WithoutQuantum disables the quantum stage.
func WithoutQuantum() Option { return func(c *Core) { c.quantum = nil } }

// WithoutBio disables the bio-inspired stage.
func WithoutBio() Option { return func(c *Core) { c.bio = nil } }

// WithKnowledgeBase replaces the embedded semantic knowledge base.
func WithKnowledgeBase(kb *semantic.KnowledgeBase) Option {
	return func(c *Core) { c.mapper = semantic.NewMapper(kb) }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(c *Core) { c.log = l } }

// EngineOptions maps engine toggles onto Options. store backs the temporal
// stage when it is enabled.
func EngineOptions(cfg config.EngineConfig, store memory.Store) []Option {
	var opts []Option
	if !cfg.QuantumEnabled {
		opts = append(opts, WithoutQuantum())
	}
	if !cfg.BioEnabled {
		opts = append(opts, WithoutBio())
	}
	switch {
	case !cfg.TemporalEnabled:
		opts = append(opts, WithoutTemporal())
	case store != nil:
		opts = append(opts, WithMemory(store))
	}
	return opts
}

// New builds a Core with every module enabled and an in-memory temporal store.
func New(opts ...Option) *Core {
	c := &Core{
		mapper:    semantic.NewMapper(nil),
		quantum:   quantum.NewEmulator(),
		bio:       bio.NewProcessor(),
		memory:    memory.NewInMemory(),
		cognitive: cognitive.NewAnalyzer(),
		log:       logger.WithComponent("atlas"),
		tracer:    otel.Tracer("atlas/internal/atlas"),
		now:       time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// MetaCognitive describes the processing envelope of a result.
type MetaCognitive struct {
	ProcessingDepth    int     `json:"processing_depth"`
	FractalCoherence   float64 `json:"fractal_coherence"`
	QuantumAvailable   bool    `json:"quantum_processing_available"`
	BioAvailable       bool    `json:"bio_processing_available"`
	TemporalAvailable  bool    `json:"temporal_processing_available"`
	IntegratedAnalysis bool    `json:"integrated_analysis"`
}

// ProcessingMetrics describe one run.
type ProcessingMetrics struct {
	Duration      time.Duration `json:"time"`
	ModulesUsed   int           `json:"modules_used"`
	CognitiveLoad string        `json:"cognitive_load"`
	Concepts      []string      `json:"specific_concepts_analyzed"`
}

// Result is the output of AnalyzeQuery.
type Result struct {
	Domain     string               `json:"domain"`
	Query      string               `json:"query"`
	Success    bool                 `json:"success"`
	Error      string               `json:"error,omitempty"`
	Technical  *Technical           `json:"technical"`
	Simplified string               `json:"simplified"`
	Meta       MetaCognitive        `json:"meta_cognitive"`
	Semantic   *semantic.Analysis   `json:"semantic,omitempty"`
	Quantum    *QuantumEnhancement  `json:"quantum_enhancement,omitempty"`
	Bio        *BioEnhancement      `json:"bio_enhancement,omitempty"`
	Temporal   *TemporalEnhancement `json:"temporal_enhancement,omitempty"`
	Cognitive  *cognitive.Result    `json:"cognitive,omitempty"`
	Metrics    ProcessingMetrics    `json:"processing_metrics"`
}

// Confidence returns the technical confidence, or zero for failed results.
func (r *Result) Confidence() float64 {
	if r.Technical == nil {
		return 0
	}
	return r.Technical.Confidence
}

// AnalyzeQuery runs the full pipeline. It never returns nil: failures,
// cancellation and panics produce a result with Success false.
func (c *Core) AnalyzeQuery(ctx context.Context, domain, query string) (res *Result) {
	start := c.now()
	ctx, span := c.tracer.Start(ctx, "atlas.AnalyzeQuery", trace.WithAttributes(
		attribute.String("atlas.domain", domain),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			res = c.failure(ctx, span, domain, query, fmt.Errorf("panic: %v", r))
		}
	}()

	if query == "" {
		return c.failure(ctx, span, domain, query, ErrEmptyQuery)
	}
	if err := ctx.Err(); err != nil {
		return c.failure(ctx, span, domain, query, err)
	}

	sem := c.mapper.Analyze(query, "")
	concepts := sem.FocusConcepts

	q := c.quantumStage(query, &sem)
	b := c.bioStage(query, domain, concepts)
	tm := c.temporalStage(ctx, query, domain, &sem)
	if err := ctx.Err(); err != nil {
		return c.failure(ctx, span, domain, query, err)
	}

	cog := c.cognitive.Think(cognitive.Input{
		Query:          query,
		Domain:         domain,
		QuantumContext: q.Processing,
		BioContext:     b.Processing,
	})

	tech := c.technical(&sem, &cog, q, b, tm, domain)
	res = &Result{
		Domain:     domain,
		Query:      query,
		Success:    true,
		Technical:  tech,
		Simplified: simplified(tech, q, b, domain, query, concepts),
		Meta: MetaCognitive{
			ProcessingDepth:    metaCognitiveLayers,
			FractalCoherence:   fractalCoherence,
			QuantumAvailable:   c.quantum != nil,
			BioAvailable:       c.bio != nil,
			TemporalAvailable:  c.memory != nil,
			IntegratedAnalysis: true,
		},
		Semantic:  &sem,
		Quantum:   q,
		Bio:       b,
		Temporal:  tm,
		Cognitive: &cog,
		Metrics: ProcessingMetrics{
			Duration:      c.now().Sub(start),
			ModulesUsed:   c.modules(),
			CognitiveLoad: "medium",
			Concepts:      concepts,
		},
	}
	if q.Processing {
		res.Metrics.CognitiveLoad = "high"
	}

	span.SetAttributes(
		attribute.Bool("atlas.success", true),
		attribute.Float64("atlas.confidence", tech.Confidence),
	)
	l := logger.FromContext(ctx, "atlas")
	l.Debug().
		Str("event", "analysis_completed").
		Str("domain", domain).
		Float64("confidence", tech.Confidence).
		Dur("duration", res.Metrics.Duration).
		Send()
	return res
}

func (c *Core) failure(ctx context.Context, span trace.Span, domain, query string, err error) *Result {
	msg := "Analysis failed: " + err.Error()
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	c.log.Error().Err(err).
		Str("event", "analysis_failed").
		Str("domain", domain).
		Str("request_id", logger.RequestIDFromContext(ctx)).
		Send()
	return &Result{
		Domain:     domain,
		Query:      query,
		Success:    false,
		Error:      msg,
		Technical:  &Technical{Domain: domain, Error: err.Error()},
		Simplified: msg,
		Meta:       MetaCognitive{ProcessingDepth: 1, FractalCoherence: 0.5},
	}
}

func (c *Core) modules() int {
	n := baseModules
	if c.quantum != nil {
		n++
	}
	if c.bio != nil {
		n++
	}
	if c.memory != nil {
		n++
	}
	return n
}

// SystemState is the top-level state of the Core.
type SystemState struct {
	Operational      bool    `json:"operational"`
	PerformanceLevel string  `json:"performance_level"`
	Quantum          string  `json:"quantum_processing"`
	Bio              string  `json:"bio_integration"`
	Temporal         string  `json:"temporal_memory"`
	FractalCoherence float64 `json:"fractal_coherence"`
	Layers           int     `json:"meta_cognitive_layers"`
}

// CognitiveMetrics summarise module integration.
type CognitiveMetrics struct {
	AwarenessLevel      string `json:"awareness_level"`
	LearningCapability  string `json:"learning_capability"`
	AdaptiveProcessing  bool   `json:"adaptive_processing"`
	QuantumIntegration  bool   `json:"quantum_integration"`
	BioIntegration      bool   `json:"bio_integration"`
	TemporalIntegration bool   `json:"temporal_integration"`
}

// Status is the system report returned by Core.Status.
type Status struct {
	State         SystemState      `json:"system_state"`
	ModulesLoaded int              `json:"modules_loaded"`
	Metrics       CognitiveMetrics `json:"cognitive_metrics"`
	Semantic      semantic.Status  `json:"semantic_module"`
	Cognitive     cognitive.Status `json:"cognitive_module"`
	Quantum       *quantum.Status  `json:"quantum_module,omitempty"`
	Bio           *bio.Status      `json:"bio_module,omitempty"`
	Temporal      *memory.Metrics  `json:"temporal_module,omitempty"`
	TemporalError string           `json:"temporal_error,omitempty"`
}

func activity(on bool) string {
	if on {
		return "ACTIVE"
	}
	return "INACTIVE"
}

// Status reports the state of every module. A failing memory backend is
// reported in TemporalError rather than returned.
func (c *Core) Status(ctx context.Context) *Status {
	st := &Status{
		State: SystemState{
			Operational:      true,
			PerformanceLevel: "OPTIMAL",
			Quantum:          activity(c.quantum != nil),
			Bio:              activity(c.bio != nil),
			Temporal:         activity(c.memory != nil),
			FractalCoherence: fractalCoherence,
			Layers:           metaCognitiveLayers,
		},
		ModulesLoaded: c.modules(),
		Metrics: CognitiveMetrics{
			AwarenessLevel:      "high",
			LearningCapability:  "advanced",
			AdaptiveProcessing:  true,
			QuantumIntegration:  c.quantum != nil,
			BioIntegration:      c.bio != nil,
			TemporalIntegration: c.memory != nil,
		},
		Semantic:  c.mapper.Status(),
		Cognitive: c.cognitive.Status(),
	}
	if c.quantum != nil {
		qs := c.quantum.Status()
		st.Quantum = &qs
	}
	if c.bio != nil {
		bs := c.bio.Status()
		st.Bio = &bs
	}
	if c.memory != nil {
		m, err := c.memory.Metrics(ctx)
		if err != nil {
			st.TemporalError = err.Error()
		} else {
			st.Temporal = m
		}
	}
	return st
}

// Memory returns the configured temporal store, or nil when disabled.
func (c *Core) Memory() memory.Store { return c.memory }
