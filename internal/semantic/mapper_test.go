package semantic

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKnowledgeBase(t *testing.T) {
	kb := DefaultKnowledgeBase()

	assert.Len(t, kb.Concepts, 10)
	assert.Equal(t, 48, kb.FractalStructures)
	assert.Equal(t, 5, kb.Networks)

	c, ok := kb.Lookup("meta_cognition")
	require.True(t, ok)
	assert.Equal(t, "cognitive_science", c.Domain)
	assert.Equal(t, 9, c.Complexity)
}

func TestLoadKnowledgeBase_Errors(t *testing.T) {
	_, err := LoadKnowledgeBase([]byte("concepts: []"))
	assert.ErrorIs(t, err, ErrEmptyKnowledgeBase)

	_, err = LoadKnowledgeBase([]byte("concepts: [::"))
	assert.Error(t, err)
}

func TestAnalyze_QuantumEntanglement(t *testing.T) {
	m := NewMapper(nil)

	a := m.Analyze("Quantum entanglement", "quantum_cognitive")

	assert.Equal(t, "quantum_entanglement_correlation_analysis", a.Meaning)
	assert.Equal(t, 8, a.Complexity)
	assert.Equal(t, 0.85, a.ConceptDensity)
	assert.Equal(t, 10, a.LayerComplexity)
	require.Len(t, a.Concepts, 2)
	assert.Equal(t, 0.9, a.Concepts[0].Relevance)
	assert.InDelta(t, 1.0, a.DomainScores["physics"], 1e-9)

	require.Len(t, a.Relationships, 2)
	for _, r := range a.Relationships {
		assert.Equal(t, "intra_domain", r.Type)
		assert.Equal(t, 1.0, r.Strength)
	}

	assert.Equal(t, "physics", a.Context.DomainFocus)
	assert.Equal(t, "quantum_cognitive", a.Context.AnalysisFocus)
	assert.Equal(t, "quantum_advanced", a.Context.InterpretationDepth)
	assert.Equal(t, 0.95, a.Context.CoherenceRequirement)
	assert.Equal(t, 9.0, a.Context.SemanticRichness)

	assert.Equal(t, 0.5, a.Quantum.EntanglementLevel)
	assert.Equal(t, 1.0, a.Quantum.ConceptualEntanglement)
	assert.False(t, a.Quantum.SemanticSuperposition)
	assert.Equal(t, 0.5, a.Quantum.QuantumIntensity)

	assert.Equal(t, "advanced", a.Specific.Depth)
	if diff := cmp.Diff([]string{"quantum", "entanglement"}, a.Specific.QuantumConcepts); diff != "" {
		t.Errorf("quantum concepts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Quantum entanglement detected: non-local correlation analysis required"}, a.Specific.Insights)
	assert.Equal(t, 0.9, a.DomainRelevance["quantum_physics"])
	assert.True(t, a.HasConcept("entanglement"))
}

func TestAnalyze_NovelConcepts(t *testing.T) {
	a := NewMapper(nil).Analyze("the protein folding", "")

	require.Len(t, a.Concepts, 2)
	for _, c := range a.Concepts {
		assert.Equal(t, "unknown", c.Domain)
		assert.Equal(t, 3, c.Complexity)
		assert.Equal(t, []string{"novel"}, c.Attributes)
		assert.Equal(t, 0.5, c.Relevance)
	}
	require.Len(t, a.Relationships, 2)
	assert.InDelta(t, 0.5, a.Relationships[0].Strength, 1e-9)
	assert.Equal(t, "intra_domain", a.Relationships[0].Type)

	assert.Equal(t, 7, a.LayerComplexity)
	assert.Equal(t, 6, a.Complexity)
	assert.Equal(t, 0.7, a.ConceptDensity)
	assert.Equal(t, "advanced_semantic_synthesis", a.Meaning)
	assert.Equal(t, "standard", a.Context.InterpretationDepth)
	assert.Equal(t, "basic", a.Specific.Depth)
	assert.Empty(t, a.FocusConcepts)
}

func TestAnalyze_Empty(t *testing.T) {
	a := NewMapper(nil).Analyze("", "")

	assert.Empty(t, a.Concepts)
	assert.Empty(t, a.Relationships)
	assert.Equal(t, "general", a.Context.DomainFocus)
	assert.Equal(t, 1.0, a.Context.SemanticRichness)
	assert.Equal(t, 0.0, a.Quantum.EntanglementLevel)
	assert.Equal(t, 0, a.LayerComplexity)
}

func TestAnalyze_ComplexSystems(t *testing.T) {
	a := NewMapper(nil).Analyze("emergence in complex systems", "")

	assert.Equal(t, "complex_systems_emergent_behavior_analysis", a.Meaning)
	assert.Equal(t, []string{"complex", "systems"}, a.Specific.ComplexSystemsConcepts)
	insight := "Complex systems framework: emergent behavior analysis initialized"
	assert.Equal(t, []string{insight, insight}, a.Specific.Insights)
	assert.Equal(t, "advanced", a.Specific.Depth)
	assert.Empty(t, a.Specific.QuantumConcepts)
	assert.Empty(t, a.Context.AnalysisFocus)
	assert.Equal(t, "complex_systems", a.Context.InterpretationDepth)
	assert.True(t, a.Context.EmergenceAnalysis)
	assert.Equal(t, []string{"complex", "systems"}, a.FocusConcepts)

	var kinds []string
	for _, r := range a.Relationships {
		if r.From == "complex" && r.To == "systems" {
			kinds = append(kinds, r.Type)
		}
	}
	assert.Equal(t, []string{"intra_domain"}, kinds)
}

func TestAnalyze_RelevanceByFrequency(t *testing.T) {
	a := NewMapper(nil).Analyze("fractal memory", "")
	require.NotEmpty(t, a.Concepts)
	assert.Equal(t, "fractal", a.Concepts[0].Name)
	assert.Equal(t, 1.0, a.Concepts[0].Relevance)

	long := "fractal " + strings.Repeat("and ", 19)
	a = NewMapper(nil).Analyze(long, "")
	assert.InDelta(t, 0.5, a.Concepts[0].Relevance, 1e-9)
}

func TestPrimaryMeaning(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"entanglement and superposition", "advanced_quantum_entanglement_superposition_analysis"},
		{"disentanglement", "quantum_entanglement_correlation_analysis"},
		{"superposition", "quantum_superposition_state_analysis"},
		{"quantum field", "quantum_mechanics_foundational_analysis"},
		{"complex adaptive systems", "complex_systems_emergent_behavior_analysis"},
		{"protein folding", "advanced_semantic_synthesis"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, primaryMeaning(tt.text))
		})
	}
}

func TestDominantDomain_TieGoesToFirst(t *testing.T) {
	got := dominantDomain([]Concept{{Domain: "biology"}, {Domain: "physics"}})
	assert.Equal(t, "biology", got)
}

func TestMapper_Status(t *testing.T) {
	s := NewMapper(nil).Status()
	assert.Equal(t, 10, s.Concepts)
	assert.Equal(t, 0.95, s.Coherence)
}
