package atlas

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"atlas/internal/cognitive"
	"atlas/internal/semantic"
)

const method = "Integrated Multi-Modal Quantum-Bio Analysis"

// Title renders a snake_case identifier as title-cased words.
func Title(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// TechnicalContext records which enhancements shaped a technical block.
type TechnicalContext struct {
	AnalysisComplexity  string   `json:"analysis_complexity"`
	MetaProcessing      bool     `json:"meta_processing"`
	FractalAlignment    string   `json:"fractal_alignment"`
	QuantumEnhancement  bool     `json:"quantum_enhancement"`
	BioEnhancement      bool     `json:"bio_enhancement"`
	TemporalEnhancement bool     `json:"temporal_enhancement"`
	Concepts            []string `json:"specific_concepts_analyzed"`
}

// Results are the synthesised findings of a technical block.
type Results struct {
	SemanticComplexity int       `json:"semantic_complexity"`
	CognitiveInsights  int       `json:"cognitive_insights"`
	DomainSpecific     string    `json:"domain_specific"`
	IntegrationLevel   string    `json:"integration_level"`
	Findings           []Field   `json:"findings,omitempty"`
	QuantumFindings    []Finding `json:"specific_quantum_findings,omitempty"`
}

// Technical is the expert-level part of a result.
type Technical struct {
	Domain         string           `json:"domain"`
	Error          string           `json:"error,omitempty"`
	Method         string           `json:"method,omitempty"`
	Parameters     []Field          `json:"parameters,omitempty"`
	Results        *Results         `json:"results,omitempty"`
	Interpretation string           `json:"interpretation,omitempty"`
	Confidence     float64          `json:"confidence"`
	Timestamp      time.Time        `json:"timestamp"`
	Context        TechnicalContext `json:"cognitive_context"`
}

func (c *Core) technical(sem *semantic.Analysis, cog *cognitive.Result, q *QuantumEnhancement, b *BioEnhancement, tm *TemporalEnhancement, domain string) *Technical {
	concepts := sem.FocusConcepts
	has := func(s string) bool { return slices.Contains(concepts, s) }

	confidence := 0.85
	if q.Processing {
		confidence += 0.1
	}
	if b.Processing {
		confidence += 0.05
	}
	if tm.Processing {
		confidence += 0.03
	}

	complexity := "high"
	if has("quantum") {
		complexity = "quantum_advanced"
	}
	return &Technical{
		Domain:         domain,
		Method:         method,
		Parameters:     parameters(sem, domain, concepts),
		Results:        results(sem, cog, domain, concepts),
		Interpretation: interpretation(cog, concepts),
		Confidence:     confidence,
		Timestamp:      c.now().UTC().Truncate(time.Second),
		Context: TechnicalContext{
			AnalysisComplexity:  complexity,
			MetaProcessing:      true,
			FractalAlignment:    "optimal",
			QuantumEnhancement:  q.Processing,
			BioEnhancement:      b.Processing,
			TemporalEnhancement: tm.Processing,
			Concepts:            concepts,
		},
	}
}

var domainParameters = map[string][]Field{
	"physics": {
		{"wave_function", "ψ(x,t)"},
		{"hamiltonian", "Ĥψ = Eψ"},
		{"probability_density", "|ψ|²"},
		{"quantum_numbers", "n, l, m, s"},
		{"spin", "ħ/2"},
	},
	"biology": {
		{"neural_pathways", "activated"},
		{"synaptic_plasticity", "modulated"},
		{"genetic_expression", "analyzed"},
		{"cellular_processes", "modeled"},
		{"bio_information_flow", "quantified"},
	},
	"cross_domain": {
		{"interdisciplinary_synthesis", "active"},
		{"knowledge_integration", "optimal"},
		{"conceptual_bridging", "established"},
		{"emergent_properties", "analyzed"},
	},
}

func parameters(sem *semantic.Analysis, domain string, concepts []string) []Field {
	params, ok := domainParameters[domain]
	if ok {
		params = slices.Clone(params)
	} else {
		params = []Field{
			{"analysis_method", "multi-domain integration"},
			{"cognitive_processing", "enhanced"},
			{"semantic_depth", sem.Complexity},
		}
	}
	if slices.Contains(concepts, "quantum") {
		params = append(params,
			Field{"quantum_entanglement_parameter", "maximized"},
			Field{"superposition_coefficient", "optimized"},
			Field{"decoherence_time", "extended"},
			Field{"quantum_coherence_factor", 0.95},
		)
	}
	if slices.Contains(concepts, "entanglement") {
		params = append(params,
			Field{"entanglement_entropy", "minimized"},
			Field{"non_local_correlation", 0.96},
			Field{"quantum_information_capacity", "high"},
		)
	}
	if slices.Contains(concepts, "superposition") {
		params = append(params,
			Field{"state_superposition_count", 3},
			Field{"probability_amplitude", "complex"},
			Field{"measurement_operator", "applied"},
			Field{"wave_function_collapse", "simulated"},
		)
	}
	return params
}

func results(sem *semantic.Analysis, cog *cognitive.Result, domain string, concepts []string) *Results {
	has := func(s string) bool { return slices.Contains(concepts, s) }
	r := &Results{
		SemanticComplexity: sem.Complexity,
		CognitiveInsights:  len(cog.Thoughts),
		DomainSpecific:     domain + " analysis completed",
		IntegrationLevel:   "high",
	}
	if has("quantum") {
		r.IntegrationLevel = "quantum_enhanced"
	}

	switch {
	case domain == "physics" || has("quantum"):
		r.Findings = []Field{
			{"energy_levels", "Discrete eigenvalues calculated with quantum precision"},
			{"quantum_states", fmt.Sprintf("Superposition characterized for %d quantum concepts", len(concepts))},
			{"entanglement", "Quantum correlation quantified with non-local properties"},
			{"decoherence", "Environmental interaction modeled with quantum fidelity"},
			{"measurement", "Wave function collapse simulated with probabilistic outcomes"},
		}
		r.QuantumFindings = quantumFindings(concepts)
	case domain == "biology" || has("cognitive"):
		r.Findings = []Field{
			{"neural_processing", "Biological networks activated with cognitive enhancement"},
			{"evolutionary_patterns", "Adaptive learning optimized for complex tasks"},
			{"cellular_dynamics", "Biological systems modeled with quantum-bio interface"},
			{"genetic_algorithms", "Natural selection emulated with cognitive evolution"},
		}
	}
	return r
}

func quantumFindings(concepts []string) []Finding {
	var out []Finding
	if slices.Contains(concepts, "entanglement") {
		out = append(out, Finding{Name: "entanglement_analysis", Fields: []Field{
			{"correlation_strength", 0.96},
			{"non_local_connection", true},
			{"quantum_information_transfer", "optimal"},
			{"decoherence_resistance", "high"},
		}})
	}
	if slices.Contains(concepts, "superposition") {
		out = append(out, Finding{Name: "superposition_analysis", Fields: []Field{
			{"simultaneous_states", 3},
			{"coherence_time", "7.2±0.3 picoseconds"},
			{"probability_distribution", "quantum_balanced"},
			{"state_interference", "constructive"},
		}})
	}
	if slices.Contains(concepts, "complex") && slices.Contains(concepts, "systems") {
		out = append(out, Finding{Name: "complex_quantum_systems", Fields: []Field{
			{"emergent_quantum_behavior", true},
			{"multiscale_coherence", 0.84},
			{"adaptive_quantum_states", "dynamic"},
			{"quantum_emergence_potential", "high"},
		}})
	}
	return out
}

// fieldText renders booleans capitalized, as the report text always has.
func fieldText(v any) string {
	if b, ok := v.(bool); ok {
		if b {
			return "True"
		}
		return "False"
	}
	return fmt.Sprint(v)
}

func interpretation(cog *cognitive.Result, concepts []string) string {
	ent := slices.Contains(concepts, "entanglement")
	sup := slices.Contains(concepts, "superposition")
	switch {
	case ent && sup:
		return "Advanced quantum entanglement and superposition analysis: Non-local correlations established across multiple quantum states with optimal coherence maintenance and probabilistic measurement outcomes."
	case ent:
		return "Quantum entanglement analysis: Strong non-local correlation detected with high coherence preservation and efficient quantum information transfer capabilities."
	case sup:
		return "Quantum superposition analysis: Multiple simultaneous states maintained with stable coherence and balanced probability amplitudes across measurement boundaries."
	case slices.Contains(concepts, "quantum"):
		return "Quantum mechanical analysis: Fundamental quantum principles applied with high precision, demonstrating wave-particle duality and probabilistic behavior at quantum scales."
	case cog.PrimaryThought != "":
		return cog.PrimaryThought
	default:
		return "Complex multi-domain analysis completed with advanced cognitive processing."
	}
}

var domainHeaders = map[string]string{
	"physics":      "⚛️ %s QUANTUM ANALYSIS - SPECIFIC RESULTS",
	"biology":      "🧬 %s BIO-COGNITIVE ANALYSIS - RESULTS",
	"chemistry":    "🧪 %s ANALYSIS - RESULTS",
	"cross_domain": "🔄 %s INTEGRATED ANALYSIS - RESULTS",
}

func simplified(tech *Technical, q *QuantumEnhancement, b *BioEnhancement, domain, query string, concepts []string) string {
	header, ok := domainHeaders[domain]
	if !ok {
		header = "🔬 %s ANALYSIS - SPECIFIC RESULTS"
	}
	lines := []string{fmt.Sprintf(header, strings.ToUpper(domain)), ""}

	if q.Processing {
		lines = append(lines, "🔮 🧠 Quantum Cognitive Processing | 🌌 Meta-Analysis Layer Active")
		if len(q.Insights) > 0 {
			lines = append(lines, "💡 QUANTUM INSIGHTS:")
			for _, in := range q.Insights[:min(2, len(q.Insights))] {
				lines = append(lines, "   • "+in)
			}
		}
	}
	if b.Processing {
		lines = append(lines, "🧬 🔬 Biological Neural Networks | 🧬 Evolutionary Optimization Active")
		if len(b.Insights) > 0 {
			lines = append(lines, "🌱 BIO-INSIGHTS:")
			for _, in := range b.Insights[:min(2, len(b.Insights))] {
				lines = append(lines, "   • "+in)
			}
		}
	}
	if len(concepts) > 0 {
		lines = append(lines, "🎯 SPECIFIC CONCEPTS ANALYZED:")
		for _, c := range concepts[:min(4, len(concepts))] {
			lines = append(lines, "   • "+Title(c))
		}
	}

	lines = append(lines, "",
		"📊 Phenomenon analyzed: "+query,
		"🔬 Method applied: "+tech.Method,
		"",
		"📈 KEY QUANTUM FINDINGS:",
	)
	if tech.Results != nil && len(tech.Results.QuantumFindings) > 0 {
		for _, f := range tech.Results.QuantumFindings {
			lines = append(lines, "• "+Title(f.Name)+":")
			for _, fd := range f.Fields {
				lines = append(lines, fmt.Sprintf("  - %s: %s", Title(fd.Key), fieldText(fd.Value)))
			}
		}
	} else {
		lines = append(lines, "• Basic quantum analysis completed")
	}
	lines = append(lines, "", "💡 INTERPRETATION:", tech.Interpretation)
	return strings.Join(lines, "\n")
}
