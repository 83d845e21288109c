// Package cognitive runs the five-stage meta-cognitive reasoning pipeline:
// context analysis, pattern recognition, memory integration, decision making
// and metacognitive monitoring.
package cognitive

import (
	"slices"
	"strings"
	"time"
)

const (
	layers              = 7
	metaDepth           = 5
	conceptualCoherence = 0.95
	reasoningComplexity = 7
	defaultComplexity   = 1
)

// Input is the context handed to the analyzer.
type Input struct {
	Query          string
	Domain         string
	QuantumContext bool
	BioContext     bool
}

// ContextAnalysis is the output of the reasoning stage.
type ContextAnalysis struct {
	ContextComplexity  float64  `json:"context_complexity"`
	DomainSpecificity  float64  `json:"domain_specificity"`
	Requirements       []string `json:"reasoning_requirements"`
	InferencePotential float64  `json:"inference_potential"`
	Complexity         int      `json:"complexity"`
}

// Patterns is the output of the pattern recognition stage.
type Patterns struct {
	Patterns              []string `json:"patterns"`
	PatternComplexity     float64  `json:"pattern_complexity"`
	RecognitionConfidence float64  `json:"recognition_confidence"`
	NovelPatterns         bool     `json:"novel_patterns_detected"`
}

// MemoryIntegration is the output of the memory integration stage.
type MemoryIntegration struct {
	ActivationLevel float64            `json:"memory_activation_level"`
	Systems         map[string]float64 `json:"memory_systems_engaged"`
	RecallAccuracy  float64            `json:"recall_accuracy"`
}

// Decision is the output of the decision stage.
type Decision struct {
	Confidence    float64 `json:"confidence"`
	ReasoningPath string  `json:"reasoning_path"`
	Alternatives  int     `json:"alternatives_considered"`
}

// Monitoring is the output of the metacognitive monitoring stage.
type Monitoring struct {
	AwarenessLevel string   `json:"awareness_level"`
	Insights       []string `json:"processing_insights"`
	Quality        string   `json:"quality_assessment"`
}

// Trace records every stage of one run.
type Trace struct {
	Context    ContextAnalysis   `json:"context_analysis"`
	Patterns   Patterns          `json:"pattern_recognition"`
	Memory     MemoryIntegration `json:"memory_integration"`
	Decision   Decision          `json:"decision_making"`
	Monitoring Monitoring        `json:"meta_cognitive_monitoring"`
}

// Context summarises the processing.
type Context struct {
	ProcessingStages    int     `json:"processing_stages"`
	MetaInsights        int     `json:"meta_cognitive_insights"`
	Engagement          string  `json:"consciousness_engagement"`
	ConceptualCoherence float64 `json:"conceptual_coherence"`
}

// ReasoningMetrics describe the reasoning outcome.
type ReasoningMetrics struct {
	ProcessingTime     time.Duration `json:"processing_time"`
	CognitiveLoad      string        `json:"cognitive_load"`
	DecisionConfidence float64       `json:"decision_confidence"`
	InsightGeneration  int           `json:"insight_generation"`
}

// MetaCognition is the reflective assessment of the run.
type MetaCognition struct {
	SelfMonitoring     bool     `json:"self_monitoring"`
	ReflectiveDepth    string   `json:"reflective_depth"`
	LearningAdaptation bool     `json:"learning_adaptation"`
	ProcessingQuality  string   `json:"processing_quality"`
	Insights           []string `json:"insights"`
}

// Signatures are the static consciousness signatures of the analyzer.
type Signatures struct {
	CognitiveLayers     float64 `json:"cognitive_layers"`
	FractalCoherence    float64 `json:"fractal_coherence"`
	MetaCognitiveDepth  int     `json:"meta_cognitive_depth"`
	ConceptualCoherence float64 `json:"conceptual_coherence"`
	FractalKnowledge    int     `json:"fractal_knowledge"`
	AwarenessLevel      string  `json:"awareness_level"`
	Reflective          bool    `json:"reflective_capability"`
}

// DefaultSignatures returns the analyzer signatures.
func DefaultSignatures() Signatures {
	return Signatures{
		CognitiveLayers:     7.1,
		FractalCoherence:    1.0,
		MetaCognitiveDepth:  metaDepth,
		ConceptualCoherence: conceptualCoherence,
		FractalKnowledge:    48,
		AwarenessLevel:      "high",
		Reflective:          true,
	}
}

// Result is the output of Think.
type Result struct {
	Thoughts       []string         `json:"thoughts"`
	PrimaryThought string           `json:"primary_thought"`
	Context        Context          `json:"cognitive_context"`
	Reasoning      ReasoningMetrics `json:"reasoning_metrics"`
	Meta           MetaCognition    `json:"meta_cognitive"`
	Signatures     Signatures       `json:"consciousness_signatures"`
	Trace          Trace            `json:"trace"`
}

// Status reports the analyzer configuration.
type Status struct {
	State               string     `json:"cognitive_system_status"`
	Layers              int        `json:"cognitive_layers"`
	MetaDepth           int        `json:"meta_cognitive_depth"`
	ConceptualCoherence float64    `json:"conceptual_coherence"`
	Subsystems          int        `json:"subsystems_operational"`
	Signatures          Signatures `json:"consciousness_signatures"`
	Capability          string     `json:"reasoning_capability"`
}

// Analyzer is stateless and safe for concurrent use.
type Analyzer struct{}

// NewAnalyzer returns a cognitive analyzer.
func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Status reports the analyzer configuration.
func (a *Analyzer) Status() Status {
	return Status{
		State:               "OPERATIONAL",
		Layers:              layers,
		MetaDepth:           metaDepth,
		ConceptualCoherence: conceptualCoherence,
		Subsystems:          5,
		Signatures:          DefaultSignatures(),
		Capability:          "ADVANCED",
	}
}

// Think runs the pipeline over in.
func (a *Analyzer) Think(in Input) Result {
	start := time.Now()

	tr := Trace{}
	tr.Context = analyzeContext(in)
	tr.Patterns = recognizePatterns(tr.Context)
	tr.Memory = integrateMemory(tr.Patterns)
	tr.Decision = decide(tr.Memory, in)
	tr.Monitoring = monitor(4, []float64{tr.Decision.Confidence}, in)

	// Only the reasoning stage reports a complexity; the other four count as one each.
	load := cognitiveLoad(tr.Context.Complexity + 4*defaultComplexity)
	const stages = 5
	meta := reflect(stages, tr.Decision.Confidence, load)
	thoughts := consciousThoughts(tr.Decision.Confidence, meta.Insights)
	engagement := "medium"
	if len(thoughts) > 4 {
		engagement = "high"
	}

	return Result{
		Thoughts:       thoughts,
		PrimaryThought: synthesize(tr.Decision.Confidence, load),
		Context: Context{
			ProcessingStages:    stages,
			MetaInsights:        len(meta.Insights),
			Engagement:          engagement,
			ConceptualCoherence: conceptualCoherence,
		},
		Reasoning: ReasoningMetrics{
			ProcessingTime:     time.Since(start),
			CognitiveLoad:      load,
			DecisionConfidence: tr.Decision.Confidence,
			InsightGeneration:  len(thoughts),
		},
		Meta:       meta,
		Signatures: DefaultSignatures(),
		Trace:      tr,
	}
}

func analyzeContext(in Input) ContextAnalysis {
	domain := in.Domain
	if domain == "" {
		domain = "general"
	}
	specificity := 0.8
	if domain == "general" {
		specificity = 0.3
	}

	req := []string{"logical_analysis", "pattern_matching"}
	if domain == "physics" || domain == "mathematics" {
		req = append(req, "quantitative_reasoning", "theoretical_analysis")
	}
	if in.QuantumContext {
		req = append(req, "quantum_reasoning", "probabilistic_thinking")
	}
	if in.BioContext {
		req = append(req, "biological_reasoning", "evolutionary_thinking")
	}

	return ContextAnalysis{
		ContextComplexity:  float64(len(strings.Fields(in.Query))) / 2,
		DomainSpecificity:  specificity,
		Requirements:       req,
		InferencePotential: 0.75,
		Complexity:         reasoningComplexity,
	}
}

func recognizePatterns(ctx ContextAnalysis) Patterns {
	c := ctx.Complexity
	var p []string
	if c > 5 {
		p = append(p, "complex_system_pattern", "emergent_behavior")
	}
	if c > 3 {
		p = append(p, "structured_information", "hierarchical_organization")
	}
	p = append(p, "basic_information_pattern")
	return Patterns{
		Patterns:              p,
		PatternComplexity:     float64(len(p)) * 0.8,
		RecognitionConfidence: min(0.95, float64(c)*0.1),
		NovelPatterns:         c > 7,
	}
}

func integrateMemory(p Patterns) MemoryIntegration {
	systems := map[string]float64{
		"semantic_memory":  0.8,
		"episodic_memory":  0.6,
		"working_memory":   0.9,
		"long_term_memory": 0.7,
	}
	if slices.Contains(p.Patterns, "complex_system_pattern") {
		systems["semantic_memory"] += 0.1
		systems["long_term_memory"] += 0.1
	}
	var sum float64
	for _, v := range systems {
		sum += v
	}
	return MemoryIntegration{
		ActivationLevel: sum / float64(len(systems)),
		Systems:         systems,
		RecallAccuracy:  0.85,
	}
}

func decide(m MemoryIntegration, in Input) Decision {
	conf := m.ActivationLevel * 0.8
	if in.QuantumContext {
		conf += 0.1
	}
	return Decision{
		Confidence:    min(0.95, conf),
		ReasoningPath: "integrated_cognitive_analysis",
		Alternatives:  3,
	}
}

func monitor(stageCount int, confidences []float64, in Input) Monitoring {
	avg := mean(confidences)
	var insights []string
	if stageCount >= 4 {
		insights = append(insights, "Comprehensive cognitive processing executed")
	}
	if avg > 0.8 {
		insights = append(insights, "High confidence in reasoning process")
	}
	if in.QuantumContext {
		insights = append(insights, "Quantum-enhanced reasoning detected")
	}
	awareness := "medium"
	if stageCount > 3 {
		awareness = "high"
	}
	quality := "adequate"
	if avg > 0.7 {
		quality = "high"
	}
	return Monitoring{AwarenessLevel: awareness, Insights: insights, Quality: quality}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0.5
	}
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

func cognitiveLoad(total int) string {
	switch {
	case total > 20:
		return "very_high"
	case total > 15:
		return "high"
	case total > 10:
		return "medium"
	default:
		return "low"
	}
}

func reflect(stages int, confidence float64, load string) MetaCognition {
	var insights []string
	switch {
	case confidence > 0.8:
		insights = append(insights, "High confidence in cognitive processing", "Stable reasoning patterns detected")
	case confidence > 0.6:
		insights = append(insights, "Moderate confidence in analysis", "Some uncertainty in reasoning")
	default:
		insights = append(insights, "Low confidence - reasoning requires verification", "Potential cognitive biases detected")
	}
	switch load {
	case "high":
		insights = append(insights, "High cognitive load - complex processing", "Multiple reasoning streams active")
	case "low":
		insights = append(insights, "Low cognitive load - efficient processing", "Streamlined reasoning patterns")
	}
	if stages >= 5 {
		insights = append(insights, "Complete cognitive processing pipeline executed", "Multi-layer reasoning successfully integrated")
	}

	depth := "medium"
	if len(insights) > 3 {
		depth = "high"
	}
	quality := "medium"
	if confidence > 0.7 {
		quality = "high"
	}
	return MetaCognition{
		SelfMonitoring:     true,
		ReflectiveDepth:    depth,
		LearningAdaptation: true,
		ProcessingQuality:  quality,
		Insights:           insights,
	}
}

func consciousThoughts(confidence float64, meta []string) []string {
	var t []string
	if confidence > 0.8 {
		t = append(t, "Confident cognitive synthesis achieved", "Clear understanding of complex patterns")
	} else {
		t = append(t, "Developing understanding of patterns", "Cognitive processing in progress")
	}
	t = append(t, meta[:min(2, len(meta))]...)
	return append(t, "Conscious awareness of reasoning process", "Reflective understanding of cognitive states")
}

func synthesize(confidence float64, load string) string {
	switch {
	case confidence > 0.85 && load == "high":
		return "Advanced cognitive synthesis: Complex patterns understood with high confidence and deep processing"
	case confidence > 0.7:
		return "Solid cognitive analysis: Clear understanding achieved through multi-layer reasoning"
	default:
		return "Developing cognitive analysis: Basic understanding with ongoing processing refinement"
	}
}
