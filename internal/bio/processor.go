// Package bio implements the bio-inspired cognitive processor: neural
// plasticity, evolutionary fitness and network activation derived from the
// biological vocabulary of a query.
package bio

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

const neuralEfficiency = 0.88

type keywordGroup struct {
	concept  string
	keywords []string
}

var groups = []keywordGroup{
	{"neural", []string{"neural", "neuron", "synaptic", "brain", "cognitive"}},
	{"evolutionary", []string{"evolution", "evolutionary", "adaptation", "fitness", "natural selection"}},
	{"genetic", []string{"genetic", "dna", "gene", "genome", "inheritance"}},
	{"cellular", []string{"cellular", "cell", "metabolic", "biological", "organic"}},
	{"complex", []string{"complex", "system", "emergence", "self-organizing", "adaptive"}},
}

var evolutionaryTraits = []string{
	"cognitive_adaptability",
	"learning_efficiency",
	"pattern_recognition",
	"environmental_responsiveness",
}

// NeuralEngagement describes plasticity-driven learning.
type NeuralEngagement struct {
	PlasticityLevel     float64 `json:"plasticity_level"`
	NeuralActivity      string  `json:"neural_activity"`
	LearningRate        float64 `json:"learning_rate"`
	MemoryConsolidation string  `json:"memory_consolidation"`
}

// NetworkActivation describes the biological networks engaged.
type NetworkActivation struct {
	ActiveNetworks     int    `json:"active_networks"`
	Complexity         int    `json:"complexity"`
	IntegrationLevel   string `json:"integration_level"`
	BioSynchronization bool   `json:"bio_synchronization"`
}

// Evolution is the evolutionary analysis of a query.
type Evolution struct {
	FitnessScore        float64  `json:"fitness_score"`
	AdaptationPotential float64  `json:"adaptation_potential"`
	ComplexityLevel     int      `json:"complexity_level"`
	Traits              []string `json:"evolutionary_traits"`
	SelectionPressure   string   `json:"selection_pressure"`
	SpeciationPotential string   `json:"speciation_potential"`
}

// Metrics describe a processing run.
type Metrics struct {
	ProcessingTime    time.Duration `json:"processing_time"`
	NeuralEfficiency  float64       `json:"neural_efficiency"`
	AdaptationLevel   float64       `json:"adaptation_level"`
	PlasticityEngaged float64       `json:"plasticity_engaged"`
}

// Signatures summarise the bio-cognitive profile.
type Signatures struct {
	NeuralComplexity     int     `json:"neural_complexity"`
	EvolutionaryFitness  float64 `json:"evolutionary_fitness"`
	AdaptiveIntelligence float64 `json:"adaptive_intelligence"`
}

// Result is the output of Process.
type Result struct {
	Concepts   []string          `json:"bio_concepts"`
	Engagement NeuralEngagement  `json:"neural_engagement"`
	Evolution  Evolution         `json:"evolutionary_analysis"`
	Network    NetworkActivation `json:"network_activation"`
	Insights   []string          `json:"bio_insights"`
	Metrics    Metrics           `json:"processing_metrics"`
	Signatures Signatures        `json:"bio_cognitive_signatures"`
}

// State is the processor state after the latest run.
type State struct {
	NeuralPlasticity    float64 `json:"neural_plasticity"`
	EvolutionaryFitness float64 `json:"evolutionary_fitness"`
	NetworkComplexity   int     `json:"network_complexity"`
	AdaptationRate      float64 `json:"adaptation_rate"`
	MetabolicEfficiency float64 `json:"metabolic_efficiency"`
	GeneticOptimization string  `json:"genetic_optimization"`
}

// Status is the processor status report.
type Status struct {
	State        State    `json:"system_state"`
	Runs         int64    `json:"processing_runs"`
	Operational  string   `json:"operational_status"`
	Capabilities []string `json:"bio_capabilities"`
}

// Processor is safe for concurrent use.
type Processor struct {
	mu    sync.Mutex
	state State
	runs  int64
}

// NewProcessor returns a processor with an idle state.
func NewProcessor() *Processor {
	return &Processor{state: State{GeneticOptimization: "active"}}
}

// Process runs bio-cognitive processing over text. The task type is informational.
func (p *Processor) Process(text, taskType string) Result {
	start := time.Now()
	concepts := Detect(text)
	has := func(c string) bool { return slices.Contains(concepts, c) }

	plasticity, adaptation, complexity := 0.6, 0.5, 3
	if has("neural") {
		plasticity, complexity = 0.85, 5
	}
	if has("evolutionary") {
		adaptation, plasticity = 0.8, 0.9
	}
	if has("complex") {
		complexity, adaptation = 7, 0.75
	}

	p.mu.Lock()
	p.state = State{
		NeuralPlasticity:    plasticity,
		EvolutionaryFitness: adaptation,
		NetworkComplexity:   complexity,
		AdaptationRate:      adaptation,
		MetabolicEfficiency: 0.7 + adaptation*0.3,
		GeneticOptimization: "active",
	}
	p.runs++
	p.mu.Unlock()

	activity := "medium"
	if plasticity > 0.7 {
		activity = "high"
	}
	integration := "medium"
	if complexity > 4 {
		integration = "high"
	}
	evo := evolution(concepts)

	return Result{
		Concepts: concepts,
		Engagement: NeuralEngagement{
			PlasticityLevel:     plasticity,
			NeuralActivity:      activity,
			LearningRate:        0.1 + plasticity*0.2,
			MemoryConsolidation: "optimal",
		},
		Evolution: evo,
		Network: NetworkActivation{
			ActiveNetworks:     complexity,
			Complexity:         complexity,
			IntegrationLevel:   integration,
			BioSynchronization: true,
		},
		Insights: insights(concepts, plasticity, adaptation),
		Metrics: Metrics{
			ProcessingTime:    time.Since(start),
			NeuralEfficiency:  neuralEfficiency,
			AdaptationLevel:   adaptation,
			PlasticityEngaged: plasticity,
		},
		Signatures: Signatures{
			NeuralComplexity:     complexity,
			EvolutionaryFitness:  evo.FitnessScore,
			AdaptiveIntelligence: adaptation,
		},
	}
}

// Status reports the latest processor state.
func (p *Processor) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		State:       p.state,
		Runs:        p.runs,
		Operational: "OPTIMAL",
		Capabilities: []string{
			"neural_plasticity_simulation",
			"evolutionary_optimization",
			"bio_cognitive_patterns",
			"adaptive_learning",
		},
	}
}

// Detect returns the biological concept groups present in text.
func Detect(text string) []string {
	lower := strings.ToLower(text)
	out := []string{}
	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				out = append(out, g.concept)
				break
			}
		}
	}
	return out
}

func evolution(concepts []string) Evolution {
	fitness, potential, level := 0.7, 0.6, 3
	if slices.Contains(concepts, "evolutionary") {
		fitness, potential = 0.88, 0.85
	}
	if slices.Contains(concepts, "complex") {
		level, fitness = 6, 0.82
	}
	pressure := "low"
	if fitness > 0.7 {
		pressure = "moderate"
	}
	speciation := "medium"
	if potential > 0.8 {
		speciation = "high"
	}
	return Evolution{
		FitnessScore:        fitness,
		AdaptationPotential: potential,
		ComplexityLevel:     level,
		Traits:              slices.Clone(evolutionaryTraits),
		SelectionPressure:   pressure,
		SpeciationPotential: speciation,
	}
}

func insights(concepts []string, plasticity, adaptation float64) []string {
	var out []string
	if slices.Contains(concepts, "neural") {
		out = append(out,
			fmt.Sprintf("Neural plasticity engaged: %.2f - optimal learning capacity", plasticity),
			"Synaptic reinforcement: cognitive pathways strengthened",
			"Bio-neural integration: biological algorithms enhancing cognition",
		)
	}
	if slices.Contains(concepts, "evolutionary") {
		out = append(out,
			fmt.Sprintf("Evolutionary adaptation: %.2f - high fitness for complex tasks", adaptation),
			"Natural selection emulation: optimal strategies preserved",
			"Adaptive intelligence: self-optimizing cognitive structures",
		)
	}
	if slices.Contains(concepts, "genetic") {
		out = append(out,
			"Genetic algorithm optimization: information inheritance active",
			"DNA-inspired computing: parallel processing efficiency maximized",
		)
	}
	if slices.Contains(concepts, "complex") {
		out = append(out,
			"Complex systems biology: emergent patterns detected",
			"Self-organizing networks: adaptive cognitive structures formed",
		)
	}
	if len(out) == 0 {
		out = []string{
			"Basic biological processing engaged",
			"Minimal neural plasticity required",
			"Standard evolutionary algorithms active",
		}
	}
	return out
}
