package atlas

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"atlas/internal/bio"
	"atlas/internal/memory"
	"atlas/internal/quantum"
	"atlas/internal/semantic"
)

// Field is one named value of an ordered report section.
type Field struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Finding is a named group of fields.
type Finding struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// QuantumMetrics are the quantum figures of one run.
type QuantumMetrics struct {
	Coherence         float64  `json:"quantum_coherence"`
	EntanglementLevel float64  `json:"entanglement_level,omitempty"`
	Superposition     int      `json:"superposition_states,omitempty"`
	Concepts          []string `json:"quantum_concepts_analyzed,omitempty"`
}

// QuantumEnhancement is the output of the quantum stage.
type QuantumEnhancement struct {
	Processing    bool              `json:"quantum_processing"`
	Error         string            `json:"error,omitempty"`
	Pathways      []quantum.Pathway `json:"neural_pathways_activated"`
	Insights      []string          `json:"quantum_insights"`
	Specific      []Finding         `json:"specific_quantum_analysis,omitempty"`
	Metrics       QuantumMetrics    `json:"processing_metrics"`
	Amplification float64           `json:"cognitive_amplification,omitempty"`
}

// BioEnhancement is the output of the bio-inspired stage.
type BioEnhancement struct {
	Processing bool                   `json:"bio_processing"`
	Error      string                 `json:"error,omitempty"`
	Engagement *bio.NeuralEngagement  `json:"neural_engagement,omitempty"`
	Evolution  *bio.Evolution         `json:"evolutionary_analysis,omitempty"`
	Network    *bio.NetworkActivation `json:"network_activation,omitempty"`
	Insights   []string               `json:"bio_insights"`
	Metrics    *bio.Metrics           `json:"processing_metrics,omitempty"`
	Signatures *bio.Signatures        `json:"bio_signatures,omitempty"`
	Specific   []Finding              `json:"specific_bio_analysis,omitempty"`
}

// TemporalEnhancement is the output of the temporal memory stage.
type TemporalEnhancement struct {
	Processing bool            `json:"temporal_processing"`
	Error      string          `json:"error,omitempty"`
	MemoryID   string          `json:"memory_id,omitempty"`
	Metrics    *memory.Metrics `json:"memory_metrics,omitempty"`
	Insights   []string        `json:"temporal_insights"`
	Contextual bool            `json:"contextual_enhancement"`
}

func (c *Core) quantumStage(query string, sem *semantic.Analysis) *QuantumEnhancement {
	if c.quantum == nil {
		return &QuantumEnhancement{
			Pathways: []quantum.Pathway{},
			Insights: []string{"Quantum enhancement unavailable"},
		}
	}
	concepts := sem.FocusConcepts
	qr := c.quantum.Process(query, concepts)

	return &QuantumEnhancement{
		Processing: true,
		Pathways:   qr.Pathways,
		Insights:   quantumInsights(sem.Specific.Insights, concepts, qr),
		Specific:   specificQuantum(concepts),
		Metrics: QuantumMetrics{
			Coherence:         qr.Coherence,
			EntanglementLevel: qr.EntanglementLevel,
			Superposition:     qr.SuperpositionCount,
			Concepts:          concepts,
		},
		Amplification: qr.AmplificationFactor,
	}
}

func quantumInsights(semanticInsights, concepts []string, qr quantum.Result) []string {
	out := append([]string{}, semanticInsights...)
	if slices.Contains(concepts, "entanglement") {
		out = append(out,
			fmt.Sprintf("Quantum entanglement level: %.2f - non-local correlation established", qr.EntanglementLevel),
			"Entangled state coherence: optimal for quantum information transfer")
	}
	if slices.Contains(concepts, "superposition") {
		out = append(out,
			fmt.Sprintf("Quantum superposition: %d simultaneous states maintained", qr.SuperpositionCount),
			"Superposition coherence: stable across measurement boundaries")
	}
	if slices.Contains(concepts, "quantum") {
		out = append(out,
			fmt.Sprintf("Quantum coherence: %.2f - optimal for cognitive processing", qr.Coherence),
			"Quantum-classical boundary: clearly defined in analysis")
	}
	return out
}

func specificQuantum(concepts []string) []Finding {
	var out []Finding
	if slices.Contains(concepts, "entanglement") {
		out = append(out, Finding{Name: "entanglement_analysis", Fields: []Field{
			{"correlation_strength", 0.96},
			{"non_local_connection", true},
			{"decoherence_resistance", 0.88},
			{"quantum_information_capacity", "high"},
		}})
	}
	if slices.Contains(concepts, "superposition") {
		out = append(out, Finding{Name: "superposition_analysis", Fields: []Field{
			{"state_count", 3},
			{"coherence_time", "7.2 picoseconds"},
			{"probability_distribution", "balanced"},
			{"measurement_collapse", "probabilistic"},
		}})
	}
	if slices.Contains(concepts, "complex") && slices.Contains(concepts, "systems") {
		out = append(out, Finding{Name: "complex_systems_quantum", Fields: []Field{
			{"emergent_behavior", true},
			{"quantum_emergence", 0.82},
			{"multiscale_coherence", 0.79},
			{"adaptive_quantum_states", true},
		}})
	}
	return out
}

func (c *Core) bioStage(query, domain string, concepts []string) *BioEnhancement {
	if c.bio == nil {
		return &BioEnhancement{Insights: []string{"Bio-inspired computing unavailable"}}
	}
	br := c.bio.Process(query, domain)

	ins := slices.Clone(br.Insights)
	if slices.Contains(concepts, "quantum") {
		ins = append(ins,
			"Quantum-bio interface: neural pathways optimized for quantum coherence",
			"Biological quantum sensing: cellular-level quantum state detection")
	}
	if slices.Contains(concepts, "complex") {
		ins = append(ins,
			"Complex systems biology: emergent neural patterns detected",
			"Adaptive biological networks: self-organizing cognitive structures")
	}
	return &BioEnhancement{
		Processing: true,
		Engagement: &br.Engagement,
		Evolution:  &br.Evolution,
		Network:    &br.Network,
		Insights:   ins,
		Metrics:    &br.Metrics,
		Signatures: &br.Signatures,
		Specific:   specificBio(concepts),
	}
}

func specificBio(concepts []string) []Finding {
	var out []Finding
	if slices.Contains(concepts, "quantum") {
		out = append(out, Finding{Name: "quantum_biology", Fields: []Field{
			{"neural_quantum_coherence", 0.87},
			{"cellular_quantum_effects", true},
			{"bio_quantum_entanglement", 0.75},
			{"quantum_biological_processing", "enhanced"},
		}})
	}
	if slices.Contains(concepts, "cognitive") {
		out = append(out, Finding{Name: "cognitive_biology", Fields: []Field{
			{"neural_plasticity_engaged", 0.92},
			{"synaptic_learning_optimized", true},
			{"cognitive_evolution_active", 0.88},
			{"bio_cognitive_integration", "optimal"},
		}})
	}
	return out
}

// temporalStage stores the query and reads it back. Backend errors are
// reported on the enhancement and never fail the analysis.
func (c *Core) temporalStage(ctx context.Context, query, domain string, sem *semantic.Analysis) *TemporalEnhancement {
	if c.memory == nil {
		return &TemporalEnhancement{Insights: []string{"Temporal memory unavailable"}}
	}
	ctx, span := c.tracer.Start(ctx, "atlas.temporal")
	defer span.End()

	fail := func(err error) *TemporalEnhancement {
		span.RecordError(err)
		c.log.Warn().Err(err).Str("event", "temporal_processing_failed").Send()
		return &TemporalEnhancement{
			Error:    err.Error(),
			Insights: []string{"Temporal processing failed"},
		}
	}

	id, err := c.memory.Put(ctx, query, map[string]string{
		"analysis_type":    "quantum_cognitive",
		"domain":           domain,
		"semantic_meaning": sem.Meaning,
		"complexity":       strconv.Itoa(sem.Complexity),
		"timestamp":        strconv.FormatInt(c.now().Unix(), 10),
	})
	if err != nil {
		return fail(fmt.Errorf("store memory: %w", err))
	}
	recall, err := c.memory.Get(ctx, id)
	if err != nil {
		return fail(fmt.Errorf("retrieve memory: %w", err))
	}
	metrics, err := c.memory.Metrics(ctx)
	if err != nil {
		return fail(fmt.Errorf("memory metrics: %w", err))
	}
	return &TemporalEnhancement{
		Processing: true,
		MemoryID:   id,
		Metrics:    metrics,
		Insights: []string{
			"Fractal memory compression: optimal for quantum state storage",
			"Temporal coherence: maintained across analysis iterations",
			"Memory consolidation: quantum patterns preserved",
		},
		Contextual: recall != nil,
	}
}
