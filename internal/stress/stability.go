package stress

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"
)

const (
	defaultSampleInterval = 10 * time.Second
	defaultPhaseInterval  = 3 * time.Minute
	// phaseWindow is the number of trailing samples a phase is judged on.
	phaseWindow = 6
)

// Sample is one throughput reading taken by the run monitor.
type Sample struct {
	Elapsed time.Duration `json:"timestamp"`
	QPS     float64       `json:"qps"`
	Total   int64         `json:"total_queries"`
}

// Phase summarizes one reporting window of a run.
type Phase struct {
	Number      int           `json:"phase"`
	Duration    time.Duration `json:"duration"`
	Queries     int64         `json:"queries"`
	QPS         float64       `json:"qps"`
	QPSVariance float64       `json:"qps_variance"`
	ErrorRate   float64       `json:"error_rate"`
	Stability   string        `json:"stability"`
}

// Stability is the whole-run analysis of the QPS history.
type Stability struct {
	AverageQPS  float64 `json:"average_qps"`
	MaxVariance float64 `json:"max_variance"`
	Score       float64 `json:"stability_score"`
	Level       string  `json:"stability_level"`
	Trend       string  `json:"trend"`
	Phases      int     `json:"total_phases"`
	Status      string  `json:"status"`
	Verdict     string  `json:"verdict"`
}

// spread is max minus min of the samples' QPS.
func spread(samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	qps := make([]float64, len(samples))
	for i, s := range samples {
		qps[i] = s.QPS
	}
	return slices.Max(qps) - slices.Min(qps)
}

// PhaseStability classifies a QPS spread.
func PhaseStability(variance float64) string {
	switch {
	case variance < 50:
		return "STABLE"
	case variance < 100:
		return "VARIABLE"
	default:
		return "FLUCTUATING"
	}
}

func newPhase(n int, d time.Duration, queries, total, failed int64, history []Sample) Phase {
	recent := history[max(0, len(history)-phaseWindow):]
	p := Phase{
		Number:      n,
		Duration:    d,
		Queries:     queries,
		QPSVariance: spread(recent),
	}
	if secs := d.Seconds(); secs > 0 {
		p.QPS = float64(queries) / secs
	}
	if total > 0 {
		p.ErrorRate = float64(failed) / float64(total) * 100
	}
	p.Stability = PhaseStability(p.QPSVariance)
	return p
}

func mean(samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s.QPS
	}
	return sum / float64(len(samples))
}

// Trend compares the mean QPS of the second half of the history to the first.
func Trend(history []Sample) string {
	first, second := mean(history[:len(history)/2]), mean(history[len(history)/2:])
	switch {
	case second > first*1.1:
		return "INCREASING"
	case second < first*0.9:
		return "DECREASING"
	default:
		return "STABLE"
	}
}

// StabilityLevel bands a stability score.
func StabilityLevel(score float64) string {
	switch {
	case score >= 90:
		return "EXCELLENT"
	case score >= 80:
		return "GOOD"
	case score >= 70:
		return "ACCEPTABLE"
	default:
		return "VARIABLE"
	}
}

// StabilityVerdict grades a sustained run by throughput, success and stability.
func StabilityVerdict(qps, successRate, score float64) (status, verdict string) {
	switch {
	case qps >= 800 && successRate >= 99 && score >= 90:
		return "PRODUCTION READY", "System ready for enterprise deployment - EXCELLENT"
	case qps >= 500 && successRate >= 97 && score >= 80:
		return "HIGH AVAILABILITY", "Excellent for mission-critical environments"
	case qps >= 300 && successRate >= 95 && score >= 70:
		return "STABLE PERFORMANCE", "Suitable for continuous workloads"
	default:
		return "NEEDS OPTIMIZATION", "Stability optimizations recommended"
	}
}

// analyzeStability returns nil when the monitor took no samples.
func analyzeStability(history []Sample, phases int, qps, successRate float64) *Stability {
	if len(history) == 0 {
		return nil
	}
	s := &Stability{
		AverageQPS:  mean(history),
		MaxVariance: spread(history),
		Trend:       Trend(history),
		Phases:      phases,
	}
	if s.AverageQPS > 0 {
		s.Score = 100 - min(100, s.MaxVariance/s.AverageQPS*100)
	}
	s.Level = StabilityLevel(s.Score)
	s.Status, s.Verdict = StabilityVerdict(qps, successRate, s.Score)
	return s
}

// errorType buckets a target error for the error distribution.
func errorType(err error) string {
	var uerr *url.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrUnexpectedStatus):
		return "http_status"
	case errors.Is(err, ErrDecodeResponse):
		return "decode"
	case errors.As(err, &uerr):
		return "transport"
	default:
		return "other"
	}
}

var levelIcons = map[string]string{
	"EXCELLENT":  "🎯",
	"GOOD":       "✅",
	"ACCEPTABLE": "⚠️",
	"VARIABLE":   "🔴",
}

var phaseIcons = map[string]string{
	"STABLE":      "🟢",
	"VARIABLE":    "🟡",
	"FLUCTUATING": "🔴",
}

var trendIcons = map[string]string{
	"INCREASING": "📈",
	"DECREASING": "📉",
	"STABLE":     "➡️",
}

func (r *Report) writeErrors(b *strings.Builder) {
	if len(r.ErrorTypes) == 0 {
		return
	}
	fmt.Fprintf(b, "\n❌ ERROR DISTRIBUTION:\n")
	for _, k := range slices.Sorted(maps.Keys(r.ErrorTypes)) {
		pct := 0.0
		if r.Failed > 0 {
			pct = float64(r.ErrorTypes[k]) / float64(r.Failed) * 100
		}
		fmt.Fprintf(b, "   %s: %d (%.1f%%)\n", k, r.ErrorTypes[k], pct)
	}
}

func (r *Report) writeStability(b *strings.Builder) {
	s := r.Stability
	if s == nil {
		return
	}
	fmt.Fprintf(b, "\n📊 STABILITY ANALYSIS:\n")
	fmt.Fprintf(b, "   %s %s (Score: %.1f/100)\n", levelIcons[s.Level], s.Level, s.Score)
	fmt.Fprintf(b, "   📈 Maximum QPS Variance: %.1f\n", s.MaxVariance)
	fmt.Fprintf(b, "   📊 Performance Trend: %s %s\n", trendIcons[s.Trend], s.Trend)
	fmt.Fprintf(b, "   🔄 Phases Analyzed: %d\n", s.Phases)

	if len(r.Phases) > 0 {
		fmt.Fprintf(b, "\n🔄 PERFORMANCE BY PHASE:\n")
		for _, p := range r.Phases[:min(6, len(r.Phases))] {
			fmt.Fprintf(b, "   Phase %d: %6.1f QPS | %s %s | Err: %.1f%%\n",
				p.Number, p.QPS, phaseIcons[p.Stability], p.Stability, p.ErrorRate)
		}
	}
	fmt.Fprintf(b, "\n🏁 STABILITY VERDICT: %s\n💡 RECOMMENDATION: %s\n", s.Status, s.Verdict)
}
