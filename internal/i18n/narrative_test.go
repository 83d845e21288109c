package i18n

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEvent(t *testing.T) {
	tests := []struct {
		lang  string
		event string
		data  EventData
		want  string
	}{
		{"en", EventQuantumStarted, EventData{Content: "superposition"}, "🔮 Quantum cognitive initiation: 'superposition'. Neural pathways priming..."},
		{"en", EventInsightGenerated, EventData{Insight: "coherent", Coherence: 0.926}, "💡 Quantum meta-cognition: 'coherent'. Entanglement level: 0.93"},
		{"it", EventPathwayActivation, EventData{Pathways: 3, Coherence: 0.9}, "🧠 Attivazione neurale quantistica: 3 percorsi. Coerenza: 0.90"},
		{"de", EventAnalysisCompleted, EventData{Domains: "physics, biology"}, "🌌 Multi-Domain-Quantensynthese: physics, biology integriert. Fraktale Kohärenz optimal."},
		{"fr", "custom", EventData{Content: "x"}, "Événement cognitif: custom - x"},
		{"pt", EventAnalysisCompleted, EventData{Content: "done"}, "[pt] analysis_completed: done"},
	}
	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.event, func(t *testing.T) {
			assert.Equal(t, tt.want, NewNarrative(tt.lang).LogEvent(tt.event, tt.data))
		})
	}
}

func TestLogEvent_TracksQuantumEvents(t *testing.T) {
	n := NewNarrative("en")
	n.LogEvent(EventQuantumStarted, EventData{Content: "q"})
	n.LogEvent(EventAnalysisCompleted, EventData{Domains: "physics"})

	log := n.Log()
	require.Len(t, log, 2)
	assert.True(t, log[0].QuantumContext)
	assert.False(t, log[1].QuantumContext)
	assert.Equal(t, 1, log[0].CognitiveDepth)
	assert.Equal(t, 1, n.Stats().QuantumEvents)

	assert.Equal(t, "System coherence: optimal. Quantum patterns tracked: 1. Neural awareness: active.", n.Respond("status report"))
}

func TestRespond_Conversation(t *testing.T) {
	n := NewNarrative("en")
	assert.Equal(t, "Quantum greetings. ATLAS cognitive system active. Ready for multi-domain scientific exploration.", n.Respond("hello"))
	assert.Contains(t, n.Respond("explain superposition"), "Quantum cognitive models active")
	assert.Equal(t, "The fractal architecture enables multi-layer quantum processing. Current depth: 8 meta-layers.", n.Respond("fractal"))
	assert.Contains(t, n.Respond("tell me more"), "Quantum cognitive processing engaged")

	st := n.Stats()
	assert.Equal(t, 4, st.Messages)
	assert.Equal(t, 2, st.Patterns)
}

func TestRespond_Languages(t *testing.T) {
	tests := []struct {
		lang, msg, want string
	}{
		{"it", "ciao", "Saluti quantistici. Sistema cognitivo ATLAS attivo. Pronto per esplorazione scientifica multi-dominio."},
		{"es", "entrelazamiento", "Modelos cognitivos cuánticos activos. Emulación neural ejecutándose en coherencia óptima. Listo para análisis avanzado."},
		{"zh", "量子", "量子认知模型已激活。神经模拟以最佳相干性运行。准备进行高级分析。"},
		{"ja", "システム", "システムコヒーレンス: 最適。追跡された量子パターン: 0。神経意識: 活性。"},
		{"xx", "anything", "Quantum cognitive processing: anything"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.want, NewNarrative(tt.lang).Respond(tt.msg))
		})
	}
}

func TestNarrative_Concurrent(t *testing.T) {
	n := NewNarrative("en")
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.LogEvent(EventQuantumStarted, EventData{Content: "x"})
			n.Respond("quantum")
		}()
	}
	wg.Wait()
	st := n.Stats()
	assert.Equal(t, 20, st.Events)
	assert.Equal(t, 20, st.Messages)
	assert.Equal(t, 18, st.Patterns)
}
