// Package interactive runs the line-oriented multilingual analysis session.
package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"atlas/internal/atlas"
	"atlas/internal/cognitive"
	"atlas/internal/i18n"
)

const (
	wideRule   = 70
	menuRule   = 65
	resultRule = 60
	headerRule = 50
)

// Analyzer is the part of atlas.Core the session drives.
type Analyzer interface {
	AnalyzeQuery(ctx context.Context, domain, query string) *atlas.Result
	Status(ctx context.Context) *atlas.Status
}

// Summary describes a finished session.
type Summary struct {
	Language    string  `json:"language"`
	Analyses    int     `json:"analyses"`
	Depth       float64 `json:"final_cognitive_depth"`
	Interrupted bool    `json:"interrupted"`
}

// Session is a single interactive conversation. It is not safe for
// concurrent use.
type Session struct {
	core    Analyzer
	catalog *i18n.Catalog
	in      *bufio.Scanner
	out     io.Writer
	err     error

	lang      string
	quantum   bool
	analyses  int
	depth     float64
	coherence float64
	sig       cognitive.Signatures
	now       func() time.Time
}

// NewSession builds a session reading answers from in and writing to out.
func NewSession(core Analyzer, in io.Reader, out io.Writer) *Session {
	return &Session{
		core:      core,
		catalog:   i18n.Default(),
		in:        bufio.NewScanner(in),
		out:       out,
		lang:      i18n.English,
		depth:     7,
		coherence: 0.95,
		sig:       cognitive.DefaultSignatures(),
		now:       time.Now,
	}
}

var errInputClosed = errors.New("input closed")

func (s *Session) t(key string) string { return s.catalog.Text(s.lang, key) }

func (s *Session) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.out, format, args...)
}

func (s *Session) rule(n int) { s.printf("%s\n", strings.Repeat("=", n)) }

func (s *Session) read(prompt string) (string, error) {
	s.printf("%s", prompt)
	if s.err != nil {
		return "", s.err
	}
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// Run drives the session until the user exits, input ends or ctx is done.
func (s *Session) Run(ctx context.Context) (Summary, error) {
	s.quantum = s.core.Status(ctx).State.Quantum == "ACTIVE"

	s.welcome()
	s.languageMenu()
	code, err := s.read("   → Enter language code: ")
	if err != nil {
		return s.finish(err)
	}
	if code = strings.ToLower(code); s.catalog.Supported(code) {
		s.lang = code
		s.depth += 0.1
		s.coherence += 0.05
		s.printf("   ✅ Language set to %s\n", s.catalog.Name(code))
	} else {
		s.printf("   ⚠️  Invalid language, using English as default\n")
	}

	for {
		if err := ctx.Err(); err != nil {
			return s.finish(err)
		}
		s.welcome()
		s.mainMenu()
		choice, err := s.read(fmt.Sprintf("\n   → %s", s.t("prompt_choice")))
		if err != nil {
			return s.finish(err)
		}
		n, _ := strconv.Atoi(choice)

		switch {
		case n >= 1 && n <= 10:
			domain, _ := i18n.MenuDomain(n)
			res, err := s.analyze(ctx, domain)
			if err != nil {
				return s.finish(err)
			}
			s.analyses++
			s.results(res)
		case n == i18n.ChoiceDiagnostics:
			s.diagnostics(ctx)
		case n == i18n.ChoiceExit:
			s.printf("\n%s\n", s.t("exiting"))
			s.printf("   🧠 Total Analyses: %d\n", s.analyses)
			s.printf("   🌌 Final Cognitive Depth: %.2f\n", s.depth)
			s.printf("   🔮 Consciousness Signatures: %.1f layers\n", s.sig.CognitiveLayers)
			if s.quantum {
				s.printf("   🔮 Quantum Processing: %d enhanced analyses\n", s.analyses)
			}
			return s.summary(false), s.err
		default:
			s.printf("\n%s\n", s.t("invalid_choice"))
			if _, err := s.read(fmt.Sprintf("\n%s", s.t("press_enter"))); err != nil {
				return s.finish(err)
			}
			continue
		}

		answer, err := s.read(fmt.Sprintf("\n   → %s", s.t("continue_analysis")))
		if err != nil {
			return s.finish(err)
		}
		if !i18n.IsContinue(answer) {
			s.printf("\n%s\n", s.t("exiting"))
			s.printf("   🧠 Cognitive Session Complete: %d analyses processed\n", s.analyses)
			s.printf("   🔮 Consciousness Evolution: %.1f layers\n", s.sig.CognitiveLayers)
			if s.quantum {
				s.printf("   🔮 Quantum Sessions: %d enhanced processes\n", s.analyses)
			}
			return s.summary(false), s.err
		}
	}
}

// finish ends the session after input closed or ctx was canceled. Those
// count as an interruption, not an error.
func (s *Session) finish(err error) (Summary, error) {
	if errors.Is(err, errInputClosed) || errors.Is(err, context.Canceled) {
		s.printf("\n\n%s\n", s.t("exiting"))
		s.printf("   🧠 Session Interrupted: %d analyses completed\n", s.analyses)
		return s.summary(true), s.err
	}
	return s.summary(true), err
}

func (s *Session) summary(interrupted bool) Summary {
	return Summary{Language: s.lang, Analyses: s.analyses, Depth: s.depth, Interrupted: interrupted}
}

func (s *Session) welcome() {
	s.printf("\n")
	s.rule(wideRule)
	s.printf("🔬 %s\n", s.t("welcome"))
	s.printf("   %s\n", s.t("subtitle"))
	s.rule(wideRule)
	s.printf("   🧠 %s:\n", s.t("consciousness_signature"))
	s.printf("      • %s: %.1f\n", s.t("cognitive_layers"), s.sig.CognitiveLayers)
	s.printf("      • %s: %.2f\n", s.t("fractal_coherence"), s.sig.FractalCoherence)
	s.printf("      • %s: %d\n", s.t("meta_cognitive_depth"), s.sig.MetaCognitiveDepth)
	s.printf("      • %s: %.2f\n", s.t("conceptual_coherence"), s.sig.ConceptualCoherence)
	s.printf("      • %s: %d\n", s.t("fractal_knowledge"), s.sig.FractalKnowledge)
	mode := "🔬 Multi-Domain"
	if s.quantum {
		mode = "🔮 Quantum Enhanced"
	}
	s.printf("   🧠 Cognitive Layers: %.1f | %s | 🌐 %s\n", s.depth, mode, s.t("real_analysis"))
	s.rule(wideRule)
}

func (s *Session) languageMenu() {
	s.printf("\n")
	s.rule(resultRule)
	s.printf("🌐 ATLAS MULTILINGUAL INTERFACE\n")
	s.printf("   Fractal Coherence: %.2f\n", s.coherence)
	if s.quantum {
		s.printf("   🔮 Quantum Layers: 3\n")
	}
	s.rule(resultRule)
	for _, l := range s.catalog.Languages() {
		s.printf("   %s: %s\n", strings.ToUpper(l.Code), l.Name)
	}
	s.rule(resultRule)
}

func (s *Session) mainMenu() {
	s.printf("\n📋 %s\n", s.t("main_menu"))
	s.printf("%s\n", strings.Repeat("-", menuRule))
	for i := 1; i <= i18n.ChoiceExit; i++ {
		s.printf("   🔹 %s\n", s.t(fmt.Sprintf("function_%d", i)))
	}
	s.printf("%s\n", strings.Repeat("-", menuRule))
}

func (s *Session) header(domain string) {
	mode := "🧠"
	if s.quantum {
		mode = "🔮"
	}
	s.printf("\n%s %s ANALYSIS %s\n", i18n.Icon(domain), strings.ToUpper(domain), mode)
	s.printf("%s\n", strings.Repeat("-", headerRule))
}

func (s *Session) progress(complexity int) {
	s.printf("\n%s\n", s.t("analyzing"))
	s.printf("   ✅ %s\n", s.t("analysis_complete"))
	s.depth += 0.01 * float64(complexity)
}

func (s *Session) analyze(ctx context.Context, domain string) (*atlas.Result, error) {
	s.header(domain)
	s.printf("\nEnter %s data to analyze:\n", domain)
	input, err := s.read(fmt.Sprintf("   → %s", s.t("input_prompt")))
	if err != nil {
		return nil, err
	}
	if input == "" {
		return &atlas.Result{
			Domain:  domain,
			Success: false,
			Error:   "No input provided",
			Meta:    atlas.MetaCognitive{ProcessingDepth: 1, FractalCoherence: 0.5},
		}, nil
	}
	complexity := 2
	if domain == "physics" || domain == "cross_domain" {
		complexity = 3
	}
	s.progress(complexity)
	return s.core.AnalyzeQuery(ctx, domain, input), nil
}

func (s *Session) results(res *atlas.Result) {
	s.printf("\n%s\n", s.t("results"))
	s.rule(resultRule)
	s.printf("🧠 %s:\n", s.t("consciousness_signature"))
	s.printf("   • %s: %.1f\n", s.t("cognitive_layers"), s.sig.CognitiveLayers)
	s.printf("   • %s: %.2f\n", s.t("fractal_coherence"), s.sig.FractalCoherence)
	s.printf("   • %s: %.2f\n", s.t("conceptual_coherence"), s.sig.ConceptualCoherence)

	if !res.Success {
		s.printf("\n❌ %s\n", res.Error)
		s.rule(resultRule)
		return
	}

	mode := "🧠 Cognitive Processing"
	if s.quantum {
		mode = "🔮 Quantum Cognitive Processing"
	}
	s.printf("🔬 Analysis Mode: %s\n", mode)
	s.printf("🧠 %s: %d\n", s.t("meta_cognitive_depth"), res.Meta.ProcessingDepth)
	s.printf("🌌 %s: %.2f\n", s.t("fractal_coherence"), res.Meta.FractalCoherence)
	if res.Meta.QuantumAvailable {
		s.printf("🔮 Quantum Enhancement: ACTIVE\n")
	}
	if q := res.Quantum; q != nil && q.Processing {
		s.quantumBlock(q)
	}

	s.printf("\n%s\n", res.Simplified)
	s.printf("\n%s: %.2f\n", s.t("confidence_score"), res.Confidence())
	s.printf("%s: %d\n", s.t("processing_phases"), res.Metrics.ModulesUsed)
	s.printf("%s: %s\n", s.t("processing_metrics"), res.Metrics.Duration.Round(time.Millisecond))
	s.rule(resultRule)
}

func (s *Session) quantumBlock(q *atlas.QuantumEnhancement) {
	s.printf("\n%s\n", s.t("quantum_enhancement"))
	s.printf("%s\n", strings.Repeat("-", 40))
	if n := len(q.Pathways); n > 0 {
		s.printf("🧠 %s: %d\n", s.t("neural_pathways"), n)
		for _, p := range q.Pathways[:min(3, n)] {
			s.printf("   • %s: %.2f\n", p.ID, p.ActivationLevel)
		}
		if n > 3 {
			s.printf("   • ... and %d more pathways\n", n-3)
		}
	}
	if len(q.Insights) > 0 {
		s.printf("💡 %s:\n", s.t("quantum_insights"))
		for _, in := range q.Insights[:min(2, len(q.Insights))] {
			s.printf("   • %s\n", in)
		}
	}
	s.printf("⚡ %s:\n", s.t("processing_metrics"))
	s.printf("   • %s: %.2f\n", s.t("quantum_coherence"), q.Metrics.Coherence)
}

func (s *Session) diagnostics(ctx context.Context) {
	s.header("system")
	s.progress(1)
	st := s.core.Status(ctx)

	health := "optimal"
	awareness := "high"
	if !st.State.Operational {
		health, awareness = "degraded", "limited"
	}
	s.printf("\n%s\n", s.t("results"))
	s.rule(resultRule)
	s.printf("   • system_health: %s\n", health)
	s.printf("   • modules_loaded: %d\n", st.ModulesLoaded)
	s.printf("   • performance_level: %s\n", st.State.PerformanceLevel)
	s.printf("   • quantum_processing: %s\n", st.State.Quantum)
	s.printf("   • %s: %.2f\n", s.t("fractal_coherence"), s.coherence)
	s.printf("   • %s: %.2f\n", s.t("meta_cognitive_depth"), s.depth)
	s.printf("   • system_self_awareness: %s\n", awareness)
	if st.Temporal != nil {
		s.printf("   • memories: %d (%s)\n", st.Temporal.TotalMemories, st.Temporal.Backend)
	}
	if st.TemporalError != "" {
		s.printf("   • temporal_error: %s\n", st.TemporalError)
	}
	s.printf("   • analysis_timestamp: %s\n", s.now().Format(time.DateTime))
	s.rule(resultRule)
}
