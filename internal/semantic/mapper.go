// Package semantic maps free text onto the concept knowledge base and derives
// relationships, context and quantum-semantic metrics from it.
package semantic

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	novelDomain       = "unknown"
	novelComplexity   = 3
	novelRelevance    = 0.5
	highRelevance     = 0.9
	relationThreshold = 0.3
	meaningCoherence  = 0.95
)

var (
	tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

	highRelevanceConcepts = []string{"quantum", "entanglement", "superposition", "complex", "systems", "neural", "cognitive"}
	quantumConcepts       = []string{"quantum", "entanglement", "superposition", "coherence"}
	complexConcepts       = []string{"complex", "systems"}
	focusConcepts         = []string{"quantum", "entanglement", "superposition", "coherence", "complex", "systems", "neural", "cognitive"}

	quantumInsights = map[string]string{
		"entanglement":  "Quantum entanglement detected: non-local correlation analysis required",
		"superposition": "Quantum superposition identified: multiple state analysis engaged",
		"coherence":     "Quantum coherence referenced: temporal stability analysis activated",
	}
	complexInsight = "Complex systems framework: emergent behavior analysis initialized"
)

// Relationship links two extracted concepts.
type Relationship struct {
	From     string  `json:"concept1"`
	To       string  `json:"concept2"`
	Strength float64 `json:"strength"`
	Type     string  `json:"type"`
}

// Context is the contextual interpretation of the extracted concepts.
type Context struct {
	ComplexityIndicator   float64 `json:"complexity_indicator"`
	DomainFocus           string  `json:"domain_focus"`
	SemanticRichness      float64 `json:"semantic_richness"`
	QuantumContext        bool    `json:"quantum_context"`
	ComplexSystemsContext bool    `json:"complex_systems_context"`
	AnalysisFocus         string  `json:"analysis_focus,omitempty"`
	InterpretationDepth   string  `json:"interpretation_depth"`
	CoherenceRequirement  float64 `json:"coherence_requirement,omitempty"`
	EmergenceAnalysis     bool    `json:"emergence_analysis,omitempty"`
}

// SpecificAnalysis captures the quantum and complex-systems concepts found in the text.
type SpecificAnalysis struct {
	QuantumConcepts        []string `json:"quantum_concepts_present"`
	ComplexSystemsConcepts []string `json:"complex_systems_present"`
	Insights               []string `json:"specific_insights"`
	Depth                  string   `json:"analysis_depth"`
}

// QuantumMetrics are the quantum-semantic indicators of an analysis.
type QuantumMetrics struct {
	EntanglementLevel       float64  `json:"entanglement_level"`
	SemanticSuperposition   bool     `json:"semantic_superposition"`
	ConceptualEntanglement  float64  `json:"conceptual_entanglement"`
	MeaningCoherence        float64  `json:"meaning_coherence"`
	InterpretationDepth     string   `json:"interpretation_depth"`
	QuantumConceptsDetected []string `json:"quantum_concepts_detected"`
	QuantumIntensity        float64  `json:"quantum_intensity"`
	Insights                []string `json:"specific_insights"`
}

// Analysis is the full semantic reading of one text.
type Analysis struct {
	Meaning         string             `json:"semantic_meaning"`
	Complexity      int                `json:"complexity"`
	LayerComplexity int                `json:"layer_complexity"`
	ConceptDensity  float64            `json:"concept_density"`
	DomainRelevance map[string]float64 `json:"domain_relevance"`
	DomainScores    map[string]float64 `json:"domain_scores"`
	Concepts        []Concept          `json:"concepts"`
	Relationships   []Relationship     `json:"relationships"`
	Context         Context            `json:"context"`
	Specific        SpecificAnalysis   `json:"specific_analysis"`
	Quantum         QuantumMetrics     `json:"quantum_metrics"`
	FocusConcepts   []string           `json:"specific_concepts"`
}

// HasConcept reports whether name is among the focus concepts.
func (a *Analysis) HasConcept(name string) bool {
	return slices.Contains(a.FocusConcepts, name)
}

// Status describes the mapper configuration.
type Status struct {
	Concepts          int     `json:"concepts_loaded"`
	Networks          int     `json:"semantic_networks"`
	FractalStructures int     `json:"fractal_structures"`
	Coherence         float64 `json:"semantic_coherence"`
}

// Mapper extracts concepts from text. It holds no mutable state and is safe for concurrent use.
type Mapper struct {
	kb *KnowledgeBase
}

// NewMapper creates a mapper over kb, or over the embedded knowledge base when kb is nil.
func NewMapper(kb *KnowledgeBase) *Mapper {
	if kb == nil {
		kb = DefaultKnowledgeBase()
	}
	return &Mapper{kb: kb}
}

// KnowledgeBase returns the knowledge base backing the mapper.
func (m *Mapper) KnowledgeBase() *KnowledgeBase { return m.kb }

// Status reports the mapper configuration.
func (m *Mapper) Status() Status {
	return Status{
		Concepts:          len(m.kb.Concepts),
		Networks:          m.kb.Networks,
		FractalStructures: m.kb.FractalStructures,
		Coherence:         m.kb.Coherence,
	}
}

// Analyze maps text onto the knowledge base. analysisType, when set, is recorded as the analysis focus.
func (m *Mapper) Analyze(text, analysisType string) Analysis {
	lower := strings.ToLower(text)

	concepts := m.extractConcepts(lower)
	scores := domainScores(concepts)
	rels := relationships(concepts, scores)
	ctx := interpret(concepts, analysisType)
	specific := specificAnalysis(concepts)

	hasQuantum := len(specific.QuantumConcepts) > 0
	relevance := map[string]float64{
		"cognitive_science": 0.9,
		"physics":           0.8,
		"biology":           0.6,
	}
	complexity, density := 6, 0.7
	if hasQuantum {
		relevance["physics"] = 0.95
		relevance["quantum_physics"] = 0.9
		complexity, density = 8, 0.85
	}

	n := len(concepts)
	return Analysis{
		Meaning:         primaryMeaning(lower),
		Complexity:      complexity,
		LayerComplexity: layerComplexity(concepts, rels),
		ConceptDensity:  density,
		DomainRelevance: relevance,
		DomainScores:    scores,
		Concepts:        concepts,
		Relationships:   rels,
		Context:         ctx,
		Specific:        specific,
		Quantum: QuantumMetrics{
			EntanglementLevel:       math.Min(1, float64(len(rels))/float64(max(1, 2*n))),
			SemanticSuperposition:   n > 3,
			ConceptualEntanglement:  float64(len(rels)) / float64(max(1, n)),
			MeaningCoherence:        meaningCoherence,
			InterpretationDepth:     ctx.InterpretationDepth,
			QuantumConceptsDetected: specific.QuantumConcepts,
			QuantumIntensity:        float64(len(specific.QuantumConcepts)) / 4,
			Insights:                specific.Insights,
		},
		FocusConcepts: focus(concepts),
	}
}

func (m *Mapper) extractConcepts(lower string) []Concept {
	words := len(strings.Fields(lower))
	var out []Concept
	for _, tok := range tokenPattern.FindAllString(lower, -1) {
		if known, ok := m.kb.Lookup(tok); ok {
			c := known
			if slices.Contains(highRelevanceConcepts, tok) {
				c.Relevance = highRelevance
			} else {
				c.Relevance = math.Min(1, float64(strings.Count(lower, tok))/float64(max(1, words))*10)
			}
			out = append(out, c)
			continue
		}
		if utf8.RuneCountInString(tok) > 3 {
			out = append(out, Concept{
				Name:       tok,
				Domain:     novelDomain,
				Complexity: novelComplexity,
				Attributes: []string{"novel"},
				Relevance:  novelRelevance,
			})
		}
	}
	return out
}

func domainScores(concepts []Concept) map[string]float64 {
	scores := make(map[string]float64)
	var total float64
	for _, c := range concepts {
		w := float64(c.Complexity) / 10 * c.Relevance
		scores[c.Domain] += w
		total += w
	}
	if total > 0 {
		for d := range scores {
			scores[d] /= total
		}
	}
	return scores
}

func scoreOr(scores map[string]float64, domain string) float64 {
	if v, ok := scores[domain]; ok {
		return v
	}
	return 0.1
}

func relationships(concepts []Concept, scores map[string]float64) []Relationship {
	var rels []Relationship
	for i, c1 := range concepts {
		for j, c2 := range concepts {
			if i == j {
				continue
			}
			var s float64
			if c1.Domain == c2.Domain && c1.Domain != novelDomain {
				s += 0.4
			}
			if c1.IsRelated(c2.Name) {
				s += 0.3
			}
			if c2.IsRelated(c1.Name) {
				s += 0.3
			}
			s += (scoreOr(scores, c1.Domain) + scoreOr(scores, c2.Domain)) * 0.2
			s += (c1.Relevance + c2.Relevance) * 0.1
			s = math.Min(1, s)
			if s <= relationThreshold {
				continue
			}

			kind := "conceptual_association"
			switch {
			case c1.Domain == c2.Domain:
				kind = "intra_domain"
			case c1.SharesAttribute(c2):
				kind = "attribute_similarity"
			}
			rels = append(rels, Relationship{From: c1.Name, To: c2.Name, Strength: s, Type: kind})
		}
	}
	return rels
}

func interpret(concepts []Concept, analysisType string) Context {
	ctx := Context{
		ComplexityIndicator: float64(len(concepts)) / 5,
		DomainFocus:         "general",
		SemanticRichness:    1,
		AnalysisFocus:       analysisType,
		InterpretationDepth: "standard",
	}
	if len(concepts) > 0 {
		ctx.DomainFocus = dominantDomain(concepts)
		var sum int
		for _, c := range concepts {
			sum += c.Complexity
			if strings.Contains(c.Name, "quantum") {
				ctx.QuantumContext = true
			}
			if strings.Contains(c.Name, "complex") || strings.Contains(c.Name, "systems") {
				ctx.ComplexSystemsContext = true
			}
		}
		ctx.SemanticRichness = float64(sum) / float64(len(concepts))
	}

	switch {
	case ctx.QuantumContext:
		ctx.InterpretationDepth = "quantum_advanced"
		ctx.CoherenceRequirement = meaningCoherence
	case ctx.ComplexSystemsContext:
		ctx.InterpretationDepth = "complex_systems"
		ctx.EmergenceAnalysis = true
	}
	return ctx
}

// dominantDomain returns the most frequent domain; ties go to the first seen.
func dominantDomain(concepts []Concept) string {
	counts := make(map[string]int)
	for _, c := range concepts {
		counts[c.Domain]++
	}
	best, bestCount := "", 0
	for _, c := range concepts {
		if counts[c.Domain] > bestCount {
			best, bestCount = c.Domain, counts[c.Domain]
		}
	}
	return best
}

func specificAnalysis(concepts []Concept) SpecificAnalysis {
	out := SpecificAnalysis{
		QuantumConcepts:        []string{},
		ComplexSystemsConcepts: []string{},
		Insights:               []string{},
		Depth:                  "basic",
	}
	for _, c := range concepts {
		switch {
		case slices.Contains(quantumConcepts, c.Name):
			out.QuantumConcepts = append(out.QuantumConcepts, c.Name)
			if insight, ok := quantumInsights[c.Name]; ok {
				out.Insights = append(out.Insights, insight)
			}
		case slices.Contains(complexConcepts, c.Name):
			// One insight per matching concept, repeats included.
			out.ComplexSystemsConcepts = append(out.ComplexSystemsConcepts, c.Name)
			out.Insights = append(out.Insights, complexInsight)
		}
	}
	if len(out.QuantumConcepts) > 0 || len(out.ComplexSystemsConcepts) > 0 {
		out.Depth = "advanced"
	}
	return out
}

func layerComplexity(concepts []Concept, rels []Relationship) int {
	var sum float64
	var hasQuantum, hasComplex bool
	for _, c := range concepts {
		sum += float64(c.Complexity)
		if strings.Contains(c.Name, "quantum") {
			hasQuantum = true
		}
		if strings.Contains(c.Name, "complex") {
			hasComplex = true
		}
	}
	sum += 0.5 * float64(len(rels))
	if hasQuantum {
		sum += 2
	}
	if hasComplex {
		sum += 1
	}
	return min(10, int(sum))
}

func focus(concepts []Concept) []string {
	out := []string{}
	for _, c := range concepts {
		if slices.Contains(focusConcepts, c.Name) && !slices.Contains(out, c.Name) {
			out = append(out, c.Name)
		}
	}
	return out
}

func primaryMeaning(lower string) string {
	has := func(s string) bool { return strings.Contains(lower, s) }
	switch {
	case has("entanglement") && has("superposition"):
		return "advanced_quantum_entanglement_superposition_analysis"
	case has("entanglement"):
		return "quantum_entanglement_correlation_analysis"
	case has("superposition"):
		return "quantum_superposition_state_analysis"
	case has("quantum"):
		return "quantum_mechanics_foundational_analysis"
	case has("complex") && has("systems"):
		return "complex_systems_emergent_behavior_analysis"
	default:
		return "advanced_semantic_synthesis"
	}
}
