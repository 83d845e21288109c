package stress

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"atlas/internal/atlas"
)

// Scenario is one extreme query.
type Scenario struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Query  string `json:"query"`
}

// Scenarios are run in order by RunScenarios.
var Scenarios = []Scenario{
	{
		Name:   "quantum_decoherence_cascade",
		Domain: "quantum_physics",
		Query:  "complete quantum decoherence wave function collapse across all neural pathways simultaneous superposition collapse entanglement breakdown quantum coherence zero point energy vacuum fluctuation",
	},
	{
		Name:   "neural_entanglement_overload",
		Domain: "neuroscience",
		Query:  "neural entanglement overload synaptic quantum correlation cascade cognitive pathway saturation brain network hyper-entanglement quantum information overload neural decoherence threshold",
	},
	{
		Name:   "temporal_paradox_cascade",
		Domain: "temporal_physics",
		Query:  "temporal paradox causality violation grandfather paradox time loop infinite regression fractal memory corruption temporal coherence breakdown quantum time reversal",
	},
	{
		Name:   "cognitive_singularity_collapse",
		Domain: "cognitive_science",
		Query:  "cognitive singularity emergence self-aware AI consciousness collapse meta-cognitive recursion infinite thinking loops godel incompleteness theorem halting problem undecidability",
	},
	{
		Name:   "multiversal_reality_breach",
		Domain: "cosmology",
		Query:  "multiversal reality breach parallel universe leakage quantum many-worlds interpretation branch collapse reality superposition observer effect cosmic consciousness",
	},
}

// ScenarioResult is the scored outcome of one scenario.
type ScenarioResult struct {
	Scenario       string        `json:"scenario"`
	Success        bool          `json:"success"`
	Duration       time.Duration `json:"processing_time"`
	QuantumActive  bool          `json:"quantum_active"`
	BioActive      bool          `json:"bio_active"`
	TemporalActive bool          `json:"temporal_active"`
	Coherence      float64       `json:"cognitive_coherence"`
	Resilience     float64       `json:"resilience_score"`
	Status         string        `json:"status"`
	Error          string        `json:"error,omitempty"`
}

// ApocalypseReport aggregates the scenario results.
type ApocalypseReport struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Score     float64          `json:"overall_score"`
	Status    string           `json:"status"`
}

// Resilience scores an outcome between 0 and 100.
func Resilience(o Outcome) float64 {
	score := 100.0
	if !o.Success {
		score -= 40
	}
	if o.Quantum.Failed() {
		score -= 20
	}
	if o.Bio.Failed() {
		score -= 15
	}
	if o.Temporal.Failed() {
		score -= 15
	}
	switch {
	case o.Coherence > 0.8:
		score += 10
	case o.Coherence > 0.5:
		score += 5
	}
	return max(0, min(100, score))
}

// ScenarioStatus grades a single resilience score.
func ScenarioStatus(score float64) string {
	switch {
	case score >= 70:
		return "SURVIVED"
	case score >= 40:
		return "DAMAGED"
	default:
		return "COLLAPSED"
	}
}

// OverallStatus grades the mean resilience.
func OverallStatus(score float64) string {
	switch {
	case score >= 80:
		return "APOCALYPSE SURVIVOR"
	case score >= 60:
		return "QUANTUM RESILIENT"
	default:
		return "REALITY COLLAPSE"
	}
}

// RunScenarios runs every scenario against t. Target errors score zero and
// do not stop the run; a canceled ctx does.
func RunScenarios(ctx context.Context, t Target) (*ApocalypseReport, error) {
	rep := &ApocalypseReport{Scenarios: make([]ScenarioResult, 0, len(Scenarios))}
	var total float64
	for _, sc := range Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		out, err := t.Analyze(ctx, sc.Domain, sc.Query)
		res := ScenarioResult{Scenario: sc.Name, Duration: time.Since(start)}
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Success = out.Success
			res.QuantumActive = out.Quantum.Active()
			res.BioActive = out.Bio.Active()
			res.TemporalActive = out.Temporal.Active()
			res.Coherence = out.Coherence
			res.Resilience = Resilience(out)
		}
		res.Status = ScenarioStatus(res.Resilience)
		total += res.Resilience
		rep.Scenarios = append(rep.Scenarios, res)
	}
	rep.Score = total / float64(len(rep.Scenarios))
	rep.Status = OverallStatus(rep.Score)
	return rep, nil
}

func statusIcon(score float64) string {
	switch {
	case score >= 70:
		return "✅"
	case score >= 40:
		return "⚠️"
	default:
		return "💀"
	}
}

// WriteTo renders the report for a terminal.
func (r *ApocalypseReport) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(&b, "\n%s\n📊 QUANTUM APOCALYPSE RESULTS\n%s\n", rule, rule)
	for _, s := range r.Scenarios {
		fmt.Fprintf(&b, "%s %-35s %5.1f%%\n", statusIcon(s.Resilience), atlas.Title(s.Scenario), s.Resilience)
		if s.Error != "" {
			fmt.Fprintf(&b, "   💥 CATASTROPHIC FAILURE: %s\n", s.Error)
		}
	}
	fmt.Fprintf(&b, "\n🎯 OVERALL SCORE: %.1f/100\n", r.Score)
	fmt.Fprintf(&b, "🏆 STATUS: %s\n", r.Status)
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
