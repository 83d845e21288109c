// Package quantum emulates quantum-inspired neural processing over the
// concepts found in a query.
package quantum

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

const efficiency = 0.92

type keywordGroup struct {
	concept  string
	keywords []string
}

var groups = []keywordGroup{
	{"entanglement", []string{"entanglement", "entangled", "quantum correlation", "non-local"}},
	{"superposition", []string{"superposition", "quantum state", "wave function", "quantum overlay"}},
	{"coherence", []string{"coherence", "decoherence", "quantum coherence", "phase coherence"}},
	{"quantum", []string{"quantum", "qubit", "quantum mechanics", "quantum physics"}},
	{"measurement", []string{"measurement", "wave function collapse", "observer effect", "quantum measurement"}},
}

// Pathway is a simulated quantum neural pathway.
type Pathway struct {
	ID                string  `json:"pathway_id"`
	Concept           string  `json:"concept"`
	ActivationLevel   float64 `json:"activation_level"`
	QuantumEnhanced   bool    `json:"quantum_enhanced"`
	EntanglementLinks int     `json:"entanglement_links"`
}

// State is the emulator state after the latest processing run.
type State struct {
	NeuralEntanglement  float64 `json:"neural_entanglement"`
	SuperpositionCount  int     `json:"superposition_count"`
	Coherence           float64 `json:"quantum_coherence"`
	AmplificationFactor float64 `json:"amplification_factor"`
	ActiveQubits        int     `json:"active_qubits"`
	DecoherenceTime     float64 `json:"decoherence_time"`
}

// Metrics describe a processing run.
type Metrics struct {
	ProcessingTime    time.Duration `json:"processing_time"`
	Efficiency        float64       `json:"quantum_efficiency"`
	NeuralActivation  int           `json:"neural_activation"`
	ConceptsProcessed int           `json:"concepts_processed"`
}

// Result is the output of Process.
type Result struct {
	Concepts            []string  `json:"quantum_concepts"`
	Pathways            []Pathway `json:"neural_pathways"`
	Insights            []string  `json:"quantum_insights"`
	Coherence           float64   `json:"quantum_coherence"`
	EntanglementLevel   float64   `json:"entanglement_level"`
	SuperpositionCount  int       `json:"superposition_count"`
	AmplificationFactor float64   `json:"amplification_factor"`
	Metrics             Metrics   `json:"processing_metrics"`
	State               State     `json:"quantum_state"`
}

// Status is the emulator status report.
type Status struct {
	State        State    `json:"system_state"`
	Runs         int64    `json:"processing_runs"`
	Operational  string   `json:"operational_status"`
	Capabilities []string `json:"quantum_capabilities"`
}

// Emulator is safe for concurrent use.
type Emulator struct {
	mu    sync.Mutex
	state State
	runs  int64
}

// NewEmulator returns an emulator with an idle state.
func NewEmulator() *Emulator {
	return &Emulator{state: State{AmplificationFactor: 1}}
}

// Process runs quantum cognition over text. focus holds concepts already
// recognised upstream; those naming a keyword group are merged in.
func (e *Emulator) Process(text string, focus []string) Result {
	start := time.Now()
	concepts := Detect(text, focus)

	ent, sup, coh := 0.7, 2, 0.85
	if slices.Contains(concepts, "entanglement") {
		ent, coh = 0.96, 0.92
	}
	if slices.Contains(concepts, "superposition") {
		sup, coh = 3, 0.88
	}
	if slices.Contains(concepts, "coherence") {
		coh = 0.95
	}

	pathways := make([]Pathway, 0, max(1, len(concepts)))
	for i, c := range concepts {
		pathways = append(pathways, Pathway{
			ID:                fmt.Sprintf("quantum_neural_%s_%d", c, i),
			Concept:           c,
			ActivationLevel:   0.8 + float64(len(concepts))*0.05,
			QuantumEnhanced:   true,
			EntanglementLinks: len(concepts) - 1,
		})
	}
	if len(pathways) == 0 {
		pathways = append(pathways, Pathway{
			ID:                "quantum_neural_basic_0",
			Concept:           "quantum_cognition",
			ActivationLevel:   0.7,
			QuantumEnhanced:   true,
			EntanglementLinks: 2,
		})
	}

	decoherence := 3.5
	if slices.Contains(concepts, "superposition") {
		decoherence = 7.2
	}
	state := State{
		NeuralEntanglement:  ent,
		SuperpositionCount:  sup,
		Coherence:           coh,
		AmplificationFactor: 1 + ent*0.5,
		ActiveQubits:        len(concepts) * 2,
		DecoherenceTime:     decoherence,
	}

	e.mu.Lock()
	e.state = state
	e.runs++
	e.mu.Unlock()

	return Result{
		Concepts:            concepts,
		Pathways:            pathways,
		Insights:            insights(concepts, ent, sup, coh, len(pathways)),
		Coherence:           coh,
		EntanglementLevel:   ent,
		SuperpositionCount:  sup,
		AmplificationFactor: state.AmplificationFactor,
		Metrics: Metrics{
			ProcessingTime:    time.Since(start),
			Efficiency:        efficiency,
			NeuralActivation:  len(pathways),
			ConceptsProcessed: len(concepts),
		},
		State: state,
	}
}

// Status reports the latest emulator state.
func (e *Emulator) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		State:       e.state,
		Runs:        e.runs,
		Operational: "OPTIMAL",
		Capabilities: []string{
			"neural_entanglement_simulation",
			"quantum_superposition_modeling",
			"coherence_maintenance",
			"quantum_neural_pathways",
		},
	}
}

// Detect returns the quantum concepts present in text, in keyword group order.
func Detect(text string, focus []string) []string {
	lower := strings.ToLower(text)
	out := []string{}
	for _, g := range groups {
		hit := slices.Contains(focus, g.concept)
		for _, kw := range g.keywords {
			if hit {
				break
			}
			hit = strings.Contains(lower, kw)
		}
		if hit {
			out = append(out, g.concept)
		}
	}
	return out
}

func insights(concepts []string, ent float64, sup int, coh float64, pathways int) []string {
	var out []string
	if slices.Contains(concepts, "entanglement") {
		out = append(out,
			fmt.Sprintf("Quantum entanglement level: %.2f - non-local correlation established", ent),
			"Entangled state coherence: optimal for quantum information transfer",
			fmt.Sprintf("Neural entanglement: %d pathways synchronized", pathways),
		)
	}
	if slices.Contains(concepts, "superposition") {
		out = append(out,
			fmt.Sprintf("Quantum superposition: %d simultaneous states maintained", sup),
			"Superposition coherence: stable across measurement boundaries",
			"Wave function optimization: probability amplitudes balanced",
		)
	}
	if slices.Contains(concepts, "coherence") {
		out = append(out,
			fmt.Sprintf("Quantum coherence: %.2f - optimal for cognitive processing", coh),
			"Quantum-classical boundary: clearly defined in analysis",
			"Decoherence resistance: enhanced through neural shielding",
		)
	}
	if len(out) == 0 {
		out = []string{
			"Basic quantum neural processing active",
			"Quantum cognitive pathways engaged",
			fmt.Sprintf("Quantum coherence: %.2f maintained", coh),
		}
	}
	return out
}
