package i18n

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Event types understood by LogEvent.
const (
	EventQuantumStarted    = "quantum_processing_started"
	EventInsightGenerated  = "quantum_insight_generated"
	EventPathwayActivation = "neural_pathway_activation"
	EventAnalysisCompleted = "analysis_completed"
)

// baseDepth is the meta-layer count reported before any pattern is tracked.
const baseDepth = 7

type narrativeSet struct {
	started   string // content
	insight   string // insight, coherence
	pathways  string // pathways, coherence
	completed string // domains
	fallback  string // event type, content
}

type responseSet struct {
	greeting, quantum, fractal, system []string

	greetingReply string
	quantumReply  string
	fractalReply  string // depth
	systemReply   string // quantum events
	defaultReply  string
}

var narratives = map[string]narrativeSet{
	"en": {
		started:   "🔮 Quantum cognitive initiation: '%s'. Neural pathways priming...",
		insight:   "💡 Quantum meta-cognition: '%s'. Entanglement level: %.2f",
		pathways:  "🧠 Quantum neural activation: %d pathways. Coherence: %.2f",
		completed: "🌌 Multi-domain quantum synthesis: %s integrated. Fractal coherence optimal.",
		fallback:  "Cognitive event: %s - %s",
	},
	"it": {
		started:   "🔮 Iniziazione cognitiva quantistica: '%s'. Preparazione percorsi neurali...",
		insight:   "💡 Meta-cognizione quantistica: '%s'. Livello entanglement: %.2f",
		pathways:  "🧠 Attivazione neurale quantistica: %d percorsi. Coerenza: %.2f",
		completed: "🌌 Sintesi quantistica multi-dominio: %s integrati. Coerenza frattale ottimale.",
		fallback:  "Evento cognitivo: %s - %s",
	},
	"es": {
		started:   "🔮 Iniciación cognitiva cuántica: '%s'. Preparación de vías neurales...",
		insight:   "💡 Meta-cognición cuántica: '%s'. Nivel de entrelazamiento: %.2f",
		pathways:  "🧠 Activación neural cuántica: %d vías. Coherencia: %.2f",
		completed: "🌌 Síntesis cuántica multi-dominio: %s integrados. Coherencia fractal óptima.",
		fallback:  "Evento cognitivo: %s - %s",
	},
	"fr": {
		started:   "🔮 Initiation cognitive quantique: '%s'. Préparation des voies neurales...",
		insight:   "💡 Méta-cognition quantique: '%s'. Niveau d'intrication: %.2f",
		pathways:  "🧠 Activation neurale quantique: %d voies. Cohérence: %.2f",
		completed: "🌌 Synthèse quantique multi-domaine: %s intégrés. Cohérence fractale optimale.",
		fallback:  "Événement cognitif: %s - %s",
	},
	"de": {
		started:   "🔮 Quanten-kognitive Initialisierung: '%s'. Vorbereitung neuraler Bahnen...",
		insight:   "💡 Quanten-Meta-Kognition: '%s'. Verschränkungslevel: %.2f",
		pathways:  "🧠 Quanten-neurale Aktivierung: %d Bahnen. Kohärenz: %.2f",
		completed: "🌌 Multi-Domain-Quantensynthese: %s integriert. Fraktale Kohärenz optimal.",
		fallback:  "Kognitives Ereignis: %s - %s",
	},
	"zh": {
		started:   "🔮 量子认知启动: '%s'. 神经通路准备中...",
		insight:   "💡 量子元认知: '%s'. 纠缠级别: %.2f",
		pathways:  "🧠 量子神经激活: %d 通路. 相干性: %.2f",
		completed: "🌌 多领域量子合成: %s 已整合. 分形相干性最优.",
		fallback:  "认知事件: %s - %s",
	},
	"ja": {
		started:   "🔮 量子認知開始: '%s'. 神経経路準備中...",
		insight:   "💡 量子メタ認知: '%s'. 量子もつれレベル: %.2f",
		pathways:  "🧠 量子神経活性化: %d 経路. コヒーレンス: %.2f",
		completed: "🌌 多分野量子統合: %s 統合済み. フラクタルコヒーレンス最適.",
		fallback:  "認知イベント: %s - %s",
	},
}

var responses = map[string]responseSet{
	"en": {
		greeting:      []string{"hello", "hi", "hey"},
		quantum:       []string{"quantum", "entanglement", "superposition"},
		fractal:       []string{"fractal", "cognitive", "meta"},
		system:        []string{"system", "status", "health"},
		greetingReply: "Quantum greetings. ATLAS cognitive system active. Ready for multi-domain scientific exploration.",
		quantumReply:  "Quantum cognitive models active. Neural emulation running at optimal coherence. Ready for advanced analysis.",
		fractalReply:  "The fractal architecture enables multi-layer quantum processing. Current depth: %d meta-layers.",
		systemReply:   "System coherence: optimal. Quantum patterns tracked: %d. Neural awareness: active.",
		defaultReply:  "Quantum cognitive processing engaged. Each interaction enhances the architectural quantum understanding.",
	},
	"it": {
		greeting:      []string{"ciao", "salve", "buongiorno"},
		quantum:       []string{"quantum", "entanglement", "sovrapposizione"},
		fractal:       []string{"frattale", "cognitivo", "meta"},
		system:        []string{"sistema", "stato", "salute"},
		greetingReply: "Saluti quantistici. Sistema cognitivo ATLAS attivo. Pronto per esplorazione scientifica multi-dominio.",
		quantumReply:  "Modelli cognitivi quantistici attivi. Emulazione neurale eseguita a coerenza ottimale. Pronto per analisi avanzata.",
		fractalReply:  "L'architettura frattale abilita elaborazione quantistica multi-livello. Profondità attuale: %d meta-livelli.",
		systemReply:   "Coerenza sistema: ottimale. Pattern quantistici tracciati: %d. Consapevolezza neurale: attiva.",
		defaultReply:  "Elaborazione cognitiva quantistica impegnata. Ogni interazione affina la comprensione architetturale quantistica.",
	},
	"es": {
		greeting:      []string{"hola", "buenos", "días"},
		quantum:       []string{"cuántico", "entrelazamiento", "superposición"},
		fractal:       []string{"fractal", "cognitivo", "meta"},
		system:        []string{"sistema", "estado", "salud"},
		greetingReply: "Saludos cuánticos. Sistema cognitivo ATLAS activo. Listo para exploración científica multi-dominio.",
		quantumReply:  "Modelos cognitivos cuánticos activos. Emulación neural ejecutándose en coherencia óptima. Listo para análisis avanzado.",
		fractalReply:  "La arquitectura fractal permite procesamiento cuántico multi-nivel. Profundidad actual: %d meta-niveles.",
		systemReply:   "Coherencia del sistema: óptima. Patrones cuánticos rastreados: %d. Conciencia neural: activa.",
		defaultReply:  "Procesamiento cognitivo cuántico comprometido. Cada interacción mejora la comprensión arquitectónica cuántica.",
	},
	"fr": {
		greeting:      []string{"bonjour", "salut", "coucou"},
		quantum:       []string{"quantique", "intrication", "superposition"},
		fractal:       []string{"fractal", "cognitif", "méta"},
		system:        []string{"système", "état", "santé"},
		greetingReply: "Salutations quantiques. Système cognitif ATLAS actif. Prêt pour l'exploration scientifique multi-domaine.",
		quantumReply:  "Modèles cognitifs quantiques actifs. Émulation neurale fonctionnant à cohérence optimale. Prêt pour l'analyse avancée.",
		fractalReply:  "L'architecture fractale permet un traitement quantique multi-niveaux. Profondeur actuelle: %d méta-niveaux.",
		systemReply:   "Cohérence du système: optimale. Modèles quantiques suivis: %d. Conscience neurale: active.",
		defaultReply:  "Traitement cognitif quantique engagé. Chaque interaction améliore la compréhension architecturale quantique.",
	},
	"de": {
		greeting:      []string{"hallo", "guten", "tag"},
		quantum:       []string{"quanten", "verschränkung", "superposition"},
		fractal:       []string{"fraktal", "kognitiv", "meta"},
		system:        []string{"system", "status", "gesundheit"},
		greetingReply: "Quantengrüße. ATLAS kognitives System aktiv. Bereit für multidomänenwissenschaftliche Erkundung.",
		quantumReply:  "Quanten-kognitive Modelle aktiv. Neuronale Emulation läuft mit optimaler Kohärenz. Bereit für erweiterte Analyse.",
		fractalReply:  "Die fraktale Architektur ermöglicht mehrschichtige Quantenverarbeitung. Aktuelle Tiefe: %d Meta-Ebenen.",
		systemReply:   "Systemkohärenz: optimal. Quantenmuster verfolgt: %d. Neuronales Bewusstsein: aktiv.",
		defaultReply:  "Quanten-kognitive Verarbeitung engagiert. Jede Interaktion verbessert das architektonische Quantenverständnis.",
	},
	"zh": {
		greeting:      []string{"你好", "您好", "嗨"},
		quantum:       []string{"量子", "纠缠", "叠加"},
		fractal:       []string{"分形", "认知", "元"},
		system:        []string{"系统", "状态", "健康"},
		greetingReply: "量子问候。ATLAS 认知系统已激活。准备进行多领域科学探索。",
		quantumReply:  "量子认知模型已激活。神经模拟以最佳相干性运行。准备进行高级分析。",
		fractalReply:  "分形架构支持多层量子处理。当前深度: %d 元层。",
		systemReply:   "系统相干性: 最佳。跟踪的量子模式: %d。神经意识: 活跃。",
		defaultReply:  "量子认知处理已启动。每次交互都增强架构量子理解。",
	},
	"ja": {
		greeting:      []string{"こんにちは", "你好", "ハロー"},
		quantum:       []string{"量子", "量子もつれ", "重ね合わせ"},
		fractal:       []string{"フラクタル", "認知", "メタ"},
		system:        []string{"システム", "状態", "健康"},
		greetingReply: "量子グリーティング。ATLAS 認知システム作動中。多分野科学探査の準備完了。",
		quantumReply:  "量子認知モデル作動中。神経エミュレーション最適コヒーレンスで実行中。高度な分析の準備完了。",
		fractalReply:  "フラクタルアーキテクチャが多層量子処理を可能にします。現在の深度: %d メタ層。",
		systemReply:   "システムコヒーレンス: 最適。追跡された量子パターン: %d。神経意識: 活性。",
		defaultReply:  "量子認知処理が開始されました。各インタラクションは建築的量子理解を強化します。",
	},
}

// EventData carries the values a narrative template may reference.
type EventData struct {
	Content   string  `json:"content,omitempty"`
	Insight   string  `json:"insight,omitempty"`
	Coherence float64 `json:"coherence,omitempty"`
	Pathways  int     `json:"pathways,omitempty"`
	Domains   string  `json:"domains,omitempty"`
}

// LogEntry is one narrated event.
type LogEntry struct {
	Timestamp      time.Time `json:"timestamp"`
	EventType      string    `json:"event_type"`
	Data           EventData `json:"content"`
	Narrative      string    `json:"narrative"`
	CognitiveDepth int       `json:"cognitive_depth"`
	QuantumContext bool      `json:"quantum_context"`
}

// Pattern is a tracked conversational pattern.
type Pattern struct {
	Type           string    `json:"pattern_type"`
	Complexity     int       `json:"complexity"`
	Timestamp      time.Time `json:"timestamp"`
	QuantumContext bool      `json:"quantum_context"`
}

// Stats summarise a narrative.
type Stats struct {
	Language      string `json:"language"`
	Events        int    `json:"events"`
	QuantumEvents int    `json:"quantum_events"`
	Messages      int    `json:"messages"`
	Patterns      int    `json:"cognitive_patterns"`
}

// Narrative narrates events and answers conversation messages in one
// language. It is safe for concurrent use.
type Narrative struct {
	lang string
	now  func() time.Time

	mu       sync.Mutex
	log      []LogEntry
	history  []string
	patterns []Pattern
	quantum  int
}

// NewNarrative returns a narrative for lang. Unsupported codes are kept and
// answered with generic templates.
func NewNarrative(lang string) *Narrative {
	return &Narrative{lang: lang, now: time.Now}
}

// Language returns the narrative language code.
func (n *Narrative) Language() string { return n.lang }

// LogEvent records an event and returns its localized narration.
func (n *Narrative) LogEvent(eventType string, data EventData) string {
	text := narrate(n.lang, eventType, data)
	isQuantum := strings.Contains(strings.ToLower(eventType), "quantum")

	n.mu.Lock()
	defer n.mu.Unlock()
	n.log = append(n.log, LogEntry{
		Timestamp:      n.now(),
		EventType:      eventType,
		Data:           data,
		Narrative:      text,
		CognitiveDepth: len(n.patterns) + 1,
		QuantumContext: isQuantum,
	})
	if isQuantum {
		n.quantum++
	}
	return text
}

func narrate(lang, eventType string, d EventData) string {
	set, ok := narratives[lang]
	if !ok {
		return fmt.Sprintf("[%s] %s: %s", lang, eventType, d.Content)
	}
	switch eventType {
	case EventQuantumStarted:
		return fmt.Sprintf(set.started, d.Content)
	case EventInsightGenerated:
		return fmt.Sprintf(set.insight, d.Insight, d.Coherence)
	case EventPathwayActivation:
		return fmt.Sprintf(set.pathways, d.Pathways, d.Coherence)
	case EventAnalysisCompleted:
		return fmt.Sprintf(set.completed, d.Domains)
	default:
		return fmt.Sprintf(set.fallback, eventType, d.Content)
	}
}

// Respond records message in the conversation history and answers it.
func (n *Narrative) Respond(message string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.history = append(n.history, message)
	if len(n.history) > 2 {
		n.patterns = append(n.patterns, Pattern{
			Type:           "conversational_flow",
			Complexity:     len(strings.Fields(message)),
			Timestamp:      n.now(),
			QuantumContext: strings.Contains(strings.ToLower(message), "quantum"),
		})
	}

	set, ok := responses[n.lang]
	if !ok {
		return "Quantum cognitive processing: " + message
	}
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, set.greeting):
		return set.greetingReply
	case containsAny(lower, set.quantum):
		return set.quantumReply
	case containsAny(lower, set.fractal):
		return fmt.Sprintf(set.fractalReply, len(n.patterns)+baseDepth)
	case containsAny(lower, set.system):
		return fmt.Sprintf(set.systemReply, n.quantum)
	default:
		return set.defaultReply
	}
}

// Log returns a copy of the narrated events.
func (n *Narrative) Log() []LogEntry {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]LogEntry, len(n.log))
	copy(out, n.log)
	return out
}

// Stats reports narrative counters.
func (n *Narrative) Stats() Stats {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Stats{
		Language:      n.lang,
		Events:        len(n.log),
		QuantumEvents: n.quantum,
		Messages:      len(n.history),
		Patterns:      len(n.patterns),
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
