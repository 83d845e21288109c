package cognitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThink_QuantumContext(t *testing.T) {
	a := NewAnalyzer()
	res := a.Think(Input{Query: "quantum entanglement in neural networks", Domain: "physics", QuantumContext: true})

	assert.Equal(t, []string{
		"logical_analysis", "pattern_matching",
		"quantitative_reasoning", "theoretical_analysis",
		"quantum_reasoning", "probabilistic_thinking",
	}, res.Trace.Context.Requirements)
	assert.Equal(t, 2.5, res.Trace.Context.ContextComplexity)
	assert.Equal(t, 0.8, res.Trace.Context.DomainSpecificity)

	assert.Len(t, res.Trace.Patterns.Patterns, 5)
	assert.InDelta(t, 0.7, res.Trace.Patterns.RecognitionConfidence, 1e-9)
	assert.False(t, res.Trace.Patterns.NovelPatterns)

	assert.InDelta(t, 0.8, res.Trace.Memory.ActivationLevel, 1e-9)
	assert.InDelta(t, 0.74, res.Reasoning.DecisionConfidence, 1e-9)
	assert.Equal(t, "medium", res.Reasoning.CognitiveLoad)

	assert.Equal(t, []string{
		"Comprehensive cognitive processing executed",
		"Quantum-enhanced reasoning detected",
	}, res.Trace.Monitoring.Insights)
	assert.Equal(t, "high", res.Trace.Monitoring.Quality)

	require.Len(t, res.Meta.Insights, 4)
	assert.Equal(t, "Moderate confidence in analysis", res.Meta.Insights[0])
	assert.Equal(t, "high", res.Meta.ReflectiveDepth)
	assert.Equal(t, "high", res.Meta.ProcessingQuality)

	assert.Equal(t, []string{
		"Developing understanding of patterns",
		"Cognitive processing in progress",
		"Moderate confidence in analysis",
		"Some uncertainty in reasoning",
		"Conscious awareness of reasoning process",
		"Reflective understanding of cognitive states",
	}, res.Thoughts)
	assert.Equal(t, 6, res.Reasoning.InsightGeneration)
	assert.Equal(t, "high", res.Context.Engagement)
	assert.Equal(t, 4, res.Context.MetaInsights)
	assert.Contains(t, res.PrimaryThought, "Solid cognitive analysis")
	assert.Equal(t, DefaultSignatures(), res.Signatures)
}

func TestThink_WithoutQuantum(t *testing.T) {
	res := NewAnalyzer().Think(Input{Query: "cells", Domain: "biology", BioContext: true})

	assert.InDelta(t, 0.64, res.Reasoning.DecisionConfidence, 1e-9)
	assert.Contains(t, res.Trace.Context.Requirements, "evolutionary_thinking")
	assert.NotContains(t, res.Trace.Context.Requirements, "quantum_reasoning")
	assert.Equal(t, "adequate", res.Trace.Monitoring.Quality)
	assert.Equal(t, "medium", res.Meta.ProcessingQuality)
	assert.Contains(t, res.PrimaryThought, "Developing cognitive analysis")
}

func TestThink_GeneralDomain(t *testing.T) {
	res := NewAnalyzer().Think(Input{Query: "hello"})
	assert.Equal(t, 0.3, res.Trace.Context.DomainSpecificity)
	assert.Equal(t, []string{"logical_analysis", "pattern_matching"}, res.Trace.Context.Requirements)
}

func TestCognitiveLoad(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{5, "low"},
		{10, "low"},
		{11, "medium"},
		{16, "high"},
		{21, "very_high"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cognitiveLoad(tt.total), "total=%d", tt.total)
	}
}

func TestReflect(t *testing.T) {
	m := reflect(5, 0.9, "high")
	assert.Equal(t, []string{
		"High confidence in cognitive processing",
		"Stable reasoning patterns detected",
		"High cognitive load - complex processing",
		"Multiple reasoning streams active",
		"Complete cognitive processing pipeline executed",
		"Multi-layer reasoning successfully integrated",
	}, m.Insights)

	m = reflect(3, 0.5, "low")
	assert.Equal(t, "Low confidence - reasoning requires verification", m.Insights[0])
	assert.Contains(t, m.Insights, "Streamlined reasoning patterns")
	assert.Equal(t, "high", m.ReflectiveDepth)
}

func TestSynthesize(t *testing.T) {
	assert.Contains(t, synthesize(0.9, "high"), "Advanced cognitive synthesis")
	assert.Contains(t, synthesize(0.9, "medium"), "Solid cognitive analysis")
	assert.Contains(t, synthesize(0.5, "high"), "Developing cognitive analysis")
}

func TestStatus(t *testing.T) {
	st := NewAnalyzer().Status()
	assert.Equal(t, "OPERATIONAL", st.State)
	assert.Equal(t, 7, st.Layers)
	assert.Equal(t, 5, st.Subsystems)
	assert.Equal(t, "ADVANCED", st.Capability)
}
