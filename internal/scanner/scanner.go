// Package scanner analyses a phenomenon within one of the supported
// scientific domains and renders localized reports for it.
package scanner

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	ErrEmptyCatalog  = errors.New("domain catalog is empty")
	ErrMissingText   = errors.New("domain text missing")
	ErrUnknownDomain = errors.New("domain not supported")
)

var (
	supportedLangs  = []language.Tag{language.English, language.Italian}
	languageMatcher = language.NewMatcher(supportedLangs)
)

const expertiseAdvanced = "advanced"

// Field is one entry of an ordered YAML mapping.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Fields keeps the document order of a YAML mapping.
type Fields []Field

// UnmarshalYAML decodes a mapping node preserving key order.
func (f *Fields) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	out := make(Fields, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, Field{Key: n.Content[i].Value, Value: n.Content[i+1].Value})
	}
	*f = out
	return nil
}

// Technical is the expert-level analysis of a domain.
type Technical struct {
	Domain         string    `yaml:"domain" json:"domain"`
	Method         string    `yaml:"method" json:"method"`
	Parameters     Fields    `yaml:"parameters" json:"parameters"`
	Results        Fields    `yaml:"results" json:"results"`
	Interpretation string    `yaml:"interpretation" json:"interpretation"`
	Confidence     float64   `yaml:"confidence" json:"confidence"`
	Timestamp      time.Time `yaml:"-" json:"timestamp"`
}

type reportTemplate struct {
	Method           string   `yaml:"method"`
	KeyResults       []string `yaml:"key_results"`
	TechnicalDetails []string `yaml:"technical_details"`
}

type domainText struct {
	Title          string `yaml:"title"`
	Sample         string `yaml:"sample"`
	Interpretation string `yaml:"interpretation"`
}

type labels struct {
	AnalysisComplete    string `yaml:"analysis_complete"`
	DomainNotSupported  string `yaml:"domain_not_supported"`
	PhenomenonAnalyzed  string `yaml:"phenomenon_analyzed"`
	MethodApplied       string `yaml:"method_applied"`
	KeyResults          string `yaml:"key_results"`
	Interpretation      string `yaml:"interpretation"`
	TechnicalDetails    string `yaml:"technical_details"`
	CognitiveProcessing string `yaml:"cognitive_processing"`
	MetaAnalysis        string `yaml:"meta_analysis"`
	FractalKnowledge    string `yaml:"fractal_knowledge"`
	ConceptualCoherence string `yaml:"conceptual_coherence"`
}

// Domain is one entry of the catalog.
type Domain struct {
	Key       string                `yaml:"key" json:"key"`
	Name      string                `yaml:"name" json:"name"`
	Technical Technical             `yaml:"technical" json:"-"`
	Report    reportTemplate        `yaml:"report" json:"-"`
	Text      map[string]domainText `yaml:"text" json:"-"`
}

type catalog struct {
	AnalysisDepth       int               `yaml:"analysis_depth"`
	ConceptualCoherence float64           `yaml:"conceptual_coherence"`
	FractalStructures   int               `yaml:"fractal_structures"`
	Languages           map[string]labels `yaml:"languages"`
	Domains             []Domain          `yaml:"domains"`
}

// Processing is the cognitive metadata attached to a report.
type Processing struct {
	AnalysisDepth       int     `json:"analysis_depth"`
	ConceptualCoherence float64 `json:"conceptual_coherence"`
	MetaIntegration     bool    `json:"meta_cognitive_integration"`
	FractalStructures   int     `json:"fractal_structures_utilized,omitempty"`
	ExpertiseLevel      string  `json:"domain_expertise_level,omitempty"`
}

// Report is the output of Scan.
type Report struct {
	Success    bool       `json:"success"`
	Error      string     `json:"error,omitempty"`
	Domain     string     `json:"domain,omitempty"`
	Language   string     `json:"language"`
	Technical  *Technical `json:"technical,omitempty"`
	Simplified string     `json:"simplified"`
	Processing Processing `json:"cognitive_processing"`
}

// Scanner is read-only after construction and safe for concurrent use.
type Scanner struct {
	cat   catalog
	index map[string]int
	now   func() time.Time
}

// Load parses a YAML domain catalog.
func Load(data []byte) (*Scanner, error) {
	var cat catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse domain catalog: %w", err)
	}
	if len(cat.Domains) == 0 {
		return nil, ErrEmptyCatalog
	}
	s := &Scanner{cat: cat, index: make(map[string]int, len(cat.Domains)), now: time.Now}
	for i, d := range cat.Domains {
		for _, tag := range supportedLangs {
			if _, ok := d.Text[tag.String()]; !ok {
				return nil, fmt.Errorf("%w: %s/%s", ErrMissingText, d.Key, tag)
			}
		}
		s.index[d.Key] = i
	}
	return s, nil
}

// New returns a scanner over the embedded catalog.
func New() *Scanner {
	s, err := Load(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return s
}

// Domains lists the supported domains in catalog order.
func (s *Scanner) Domains() []Domain {
	out := make([]Domain, len(s.cat.Domains))
	copy(out, s.cat.Domains)
	return out
}

// Supported reports whether domain is in the catalog.
func (s *Scanner) Supported(domain string) bool {
	_, ok := s.index[domain]
	return ok
}

// Sample returns the example phenomenon of domain in lang.
func (s *Scanner) Sample(domain, lang string) (string, error) {
	i, ok := s.index[domain]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
	return s.cat.Domains[i].Text[MatchLanguage(lang)].Sample, nil
}

// MatchLanguage resolves lang (a tag or Accept-Language value) to a
// supported report language, defaulting to English.
func MatchLanguage(lang string) string {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return language.English.String()
	}
	_, i, conf := languageMatcher.Match(tags...)
	if conf == language.No {
		return language.English.String()
	}
	return supportedLangs[i].String()
}

// Scan analyses input within domain. Unsupported domains produce a failed
// report rather than an error.
func (s *Scanner) Scan(domain, input, lang string) *Report {
	lang = MatchLanguage(lang)
	l := s.cat.Languages[lang]

	i, ok := s.index[domain]
	if !ok {
		return &Report{
			Success:    false,
			Error:      l.DomainNotSupported,
			Language:   lang,
			Simplified: l.DomainNotSupported,
			Processing: Processing{AnalysisDepth: 1, ConceptualCoherence: 0.5},
		}
	}
	d := s.cat.Domains[i]
	tech := d.Technical
	tech.Timestamp = s.now().UTC().Truncate(time.Second)

	return &Report{
		Success:    true,
		Domain:     domain,
		Language:   lang,
		Technical:  &tech,
		Simplified: s.render(d, l, lang, input),
		Processing: Processing{
			AnalysisDepth:       s.cat.AnalysisDepth,
			ConceptualCoherence: s.cat.ConceptualCoherence,
			MetaIntegration:     true,
			FractalStructures:   s.cat.FractalStructures,
			ExpertiseLevel:      expertiseAdvanced,
		},
	}
}

func (s *Scanner) render(d Domain, l labels, lang, input string) string {
	txt := d.Text[lang]
	var b strings.Builder

	fmt.Fprintf(&b, "\n🔮 %s | %s Active\n", l.CognitiveProcessing, l.MetaAnalysis)
	fmt.Fprintf(&b, "📊 %s: %d structures\n", l.FractalKnowledge, s.cat.FractalStructures)
	fmt.Fprintf(&b, "💡 %s: %.2f\n", l.ConceptualCoherence, s.cat.ConceptualCoherence)

	fmt.Fprintf(&b, "\n%s\n\n", txt.Title)
	fmt.Fprintf(&b, "%s: %s\n", l.PhenomenonAnalyzed, input)
	fmt.Fprintf(&b, "%s: %s\n\n", l.MethodApplied, d.Report.Method)
	fmt.Fprintf(&b, "%s:\n", l.KeyResults)
	for _, r := range d.Report.KeyResults {
		fmt.Fprintf(&b, "• %s\n", r)
	}
	fmt.Fprintf(&b, "\n%s:\n%s\n\n", l.Interpretation, txt.Interpretation)
	fmt.Fprintf(&b, "%s:\n", l.TechnicalDetails)
	for _, t := range d.Report.TechnicalDetails {
		fmt.Fprintf(&b, "%s\n", t)
	}
	return b.String()
}
