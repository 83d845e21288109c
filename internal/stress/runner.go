// Package stress runs load and resilience tests against an analysis target.
package stress

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"atlas/internal/logger"
)

const progressEvery = 100

var ErrInvalidRunner = errors.New("invalid runner")

var (
	baseQueries = []string{
		"quantum entanglement and superposition in complex systems",
		"neural plasticity and evolutionary biology patterns",
		"temporal coherence and fractal memory compression",
		"quantum biological effects in cellular processes",
		"cognitive emergence in complex adaptive systems",
	}
	loadDomains = []string{"physics", "biology", "cross_domain", "quantum", "cognitive"}
)

// Runner issues queries from Workers goroutines until Duration elapses.
// A positive Limit paces all workers together. The monitor samples QPS every
// SampleInterval (10s when zero) and closes a stability phase every
// PhaseInterval (3m when zero).
type Runner struct {
	Workers        int
	Duration       time.Duration
	Limit          rate.Limit
	Burst          int
	Seed           uint64
	SampleInterval time.Duration
	PhaseInterval  time.Duration
	Log            *zerolog.Logger
}

// counters tracks completed queries in total; target errors only count as
// failed.
type counters struct {
	total, ok, failed      atomic.Int64
	quantum, bio, temporal atomic.Int64

	mu         sync.Mutex
	errorTypes map[string]int64
}

// Report summarizes a load run.
type Report struct {
	Workers          int           `json:"workers"`
	Total            int64         `json:"total_queries"`
	Successful       int64         `json:"successful_queries"`
	Failed           int64         `json:"failed_queries"`
	QuantumFailures  int64         `json:"quantum_failures"`
	BioFailures      int64         `json:"bio_failures"`
	TemporalFailures int64         `json:"temporal_failures"`
	Duration         time.Duration `json:"total_duration"`
	QPS              float64       `json:"queries_per_second"`
	SuccessRate      float64       `json:"success_rate"`
	Status           string        `json:"status"`
	Verdict          string        `json:"verdict"`

	ErrorTypes map[string]int64 `json:"error_types,omitempty"`
	History    []Sample         `json:"qps_history,omitempty"`
	Phases     []Phase          `json:"stability_phases,omitempty"`
	Stability  *Stability       `json:"stability_analysis,omitempty"`
}

// Verdict grades a run by throughput and success percentage.
func Verdict(qps, successRate float64) (status, verdict string) {
	switch {
	case qps >= 1000 && successRate >= 95:
		return "ELITE PERFORMANCE", "Ready for extreme production loads"
	case qps >= 500 && successRate >= 90:
		return "HIGH PERFORMANCE", "Excellent for enterprise environments"
	case qps >= 100 && successRate >= 80:
		return "GOOD PERFORMANCE", "Suitable for standard workloads"
	default:
		return "NEEDS OPTIMIZATION", "Optimizations recommended"
	}
}

// LoadIndicator returns the icon for a throughput level.
func LoadIndicator(qps float64) string {
	switch {
	case qps > 1000:
		return "🌋"
	case qps > 500:
		return "🔥"
	case qps > 100:
		return "⚡"
	default:
		return "💥"
	}
}

// Query builds the query a worker sends on its n-th iteration.
func Query(base string, worker, n int) string {
	return fmt.Sprintf("%s worker_%d_query_%d", base, worker, n)
}

func (r Runner) logger() zerolog.Logger {
	if r.Log != nil {
		return *r.Log
	}
	return logger.WithComponent("stress")
}

// Run executes the load test. Queries still in flight when the duration
// elapses are not counted. If ctx is canceled early the partial report is
// returned with ctx's error.
func (r Runner) Run(ctx context.Context, t Target) (*Report, error) {
	if r.Workers <= 0 || r.Duration <= 0 {
		return nil, fmt.Errorf("%w: workers=%d duration=%s", ErrInvalidRunner, r.Workers, r.Duration)
	}
	if r.SampleInterval < 0 || r.PhaseInterval < 0 {
		return nil, fmt.Errorf("%w: sample=%s phase=%s", ErrInvalidRunner, r.SampleInterval, r.PhaseInterval)
	}
	log := r.logger()

	var limiter *rate.Limiter
	if r.Limit > 0 {
		limiter = rate.NewLimiter(r.Limit, max(1, r.Burst))
	}
	seed := r.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	runCtx, cancel := context.WithTimeout(ctx, r.Duration)
	defer cancel()

	var c counters
	start := time.Now()
	log.Info().Int("workers", r.Workers).Dur("duration", r.Duration).Msg("stress run started")

	g, gctx := errgroup.WithContext(runCtx)
	for w := range r.Workers {
		rnd := rand.New(rand.NewPCG(seed, uint64(w)))
		g.Go(func() error {
			for n := 0; gctx.Err() == nil; n++ {
				if limiter != nil {
					if err := limiter.Wait(gctx); err != nil {
						return nil
					}
				}
				domain := loadDomains[rnd.IntN(len(loadDomains))]
				query := Query(baseQueries[rnd.IntN(len(baseQueries))], w, n)

				out, err := t.Analyze(gctx, domain, query)
				if gctx.Err() != nil {
					return nil
				}
				c.record(out, err)
				if err != nil {
					log.Warn().Err(err).Int("worker", w).Msg("query failed")
				}
				if (n+1)%progressEvery == 0 {
					elapsed := time.Since(start).Seconds()
					log.Debug().Int("worker", w).Int("queries", n+1).
						Float64("qps", float64(n+1)/elapsed).Msg("worker progress")
				}
			}
			return nil
		})
	}
	sampleEvery := cmp.Or(r.SampleInterval, defaultSampleInterval)
	phaseEvery := cmp.Or(r.PhaseInterval, defaultPhaseInterval)
	var (
		history []Sample
		phases  []Phase
	)
	g.Go(func() error {
		tick := time.NewTicker(sampleEvery)
		defer tick.Stop()
		phaseStart, phaseTotal := time.Duration(0), int64(0)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-tick.C:
				elapsed := time.Since(start)
				total := c.total.Load()
				qps := float64(total) / elapsed.Seconds()
				history = append(history, Sample{Elapsed: elapsed, QPS: qps, Total: total})
				log.Info().Str("load", LoadIndicator(qps)).Float64("elapsed_sec", elapsed.Seconds()).
					Int64("total", total).Float64("qps", qps).Msg("stress progress")

				if elapsed-phaseStart >= phaseEvery {
					p := newPhase(len(phases)+1, elapsed-phaseStart, total-phaseTotal, total, c.failed.Load(), history)
					phases = append(phases, p)
					log.Info().Int("phase", p.Number).Str("stability", p.Stability).
						Float64("qps", p.QPS).Float64("qps_variance", p.QPSVariance).
						Float64("error_rate", p.ErrorRate).Msg("stress phase")
					phaseStart, phaseTotal = elapsed, total
				}
			}
		}
	})
	_ = g.Wait()

	rep := c.report(r.Workers, time.Since(start))
	rep.History, rep.Phases = history, phases
	rep.Stability = analyzeStability(history, len(phases), rep.QPS, rep.SuccessRate)
	log.Info().Int64("total", rep.Total).Float64("qps", rep.QPS).
		Float64("success_rate", rep.SuccessRate).Str("status", rep.Status).Msg("stress run finished")
	return rep, ctx.Err()
}

func (c *counters) record(out Outcome, err error) {
	if err != nil {
		c.failed.Add(1)
		c.mu.Lock()
		if c.errorTypes == nil {
			c.errorTypes = make(map[string]int64)
		}
		c.errorTypes[errorType(err)]++
		c.mu.Unlock()
		return
	}
	c.total.Add(1)
	if out.Success {
		c.ok.Add(1)
	} else {
		c.failed.Add(1)
	}
	if out.Quantum.Failed() {
		c.quantum.Add(1)
	}
	if out.Bio.Failed() {
		c.bio.Add(1)
	}
	if out.Temporal.Failed() {
		c.temporal.Add(1)
	}
}

func (c *counters) report(workers int, d time.Duration) *Report {
	rep := &Report{
		Workers:          workers,
		Total:            c.total.Load(),
		Successful:       c.ok.Load(),
		Failed:           c.failed.Load(),
		QuantumFailures:  c.quantum.Load(),
		BioFailures:      c.bio.Load(),
		TemporalFailures: c.temporal.Load(),
		Duration:         d,
		ErrorTypes:       c.errorTypes,
	}
	if secs := d.Seconds(); secs > 0 {
		rep.QPS = float64(rep.Total) / secs
	}
	if rep.Total > 0 {
		rep.SuccessRate = float64(rep.Successful) / float64(rep.Total) * 100
	}
	rep.Status, rep.Verdict = Verdict(rep.QPS, rep.SuccessRate)
	return rep
}

// WriteTo renders the report for a terminal.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "\n%s\n📊 STRESS TEST RESULTS\n%s\n", rule, rule)
	fmt.Fprintf(&b, "✅ Total Queries: %d\n", r.Total)
	fmt.Fprintf(&b, "✅ Successful Queries: %d\n", r.Successful)
	fmt.Fprintf(&b, "❌ Failed Queries: %d\n", r.Failed)
	fmt.Fprintf(&b, "⏱️  Total Time: %.2fs\n", r.Duration.Seconds())
	fmt.Fprintf(&b, "🚀 Average QPS: %.1f %s\n", r.QPS, LoadIndicator(r.QPS))
	fmt.Fprintf(&b, "📈 Success Rate: %.1f%%\n", r.SuccessRate)
	fmt.Fprintf(&b, "💀 Quantum Failures: %d\n", r.QuantumFailures)
	fmt.Fprintf(&b, "🧬 Bio Failures: %d\n", r.BioFailures)
	fmt.Fprintf(&b, "🌀 Temporal Failures: %d\n", r.TemporalFailures)
	r.writeErrors(&b)
	r.writeStability(&b)
	fmt.Fprintf(&b, "\n🎯 STATUS: %s\n💡 VERDICT: %s\n", r.Status, r.Verdict)
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
