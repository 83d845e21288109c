// Package i18n holds the interface texts of the seven supported languages,
// language negotiation and the main menu mapping.
package i18n

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// English is the fallback language.
const English = "en"

// Menu choices that are not domains.
const (
	ChoiceDiagnostics = 11
	ChoiceExit        = 12
)

//go:embed translations.yaml
var defaultTranslations []byte

var ErrNoEnglish = errors.New("translations must include English")

var (
	menuDomains = []string{
		"physics", "biology", "chemistry", "medicine", "economics",
		"agricultural", "cosmology", "environmental", "materials", "cross_domain",
	}
	continueAnswers = []string{"y", "yes", "s", "si"}
	domainIcons     = map[string]string{
		"physics":       "⚛️",
		"biology":       "🧬",
		"chemistry":     "🧪",
		"medicine":      "💊",
		"economics":     "📈",
		"cosmology":     "🌌",
		"environmental": "🌍",
		"materials":     "⚙️",
		"cross_domain":  "🔄",
	}
)

// Language is a supported interface language.
type Language struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

type file struct {
	Languages []Language                   `yaml:"languages"`
	Texts     map[string]map[string]string `yaml:"texts"`
}

// Catalog is read-only after Load and safe for concurrent use.
type Catalog struct {
	langs   []Language
	texts   map[string]map[string]string
	matcher language.Matcher
}

// Load parses a translations document.
func Load(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse translations: %w", err)
	}
	if _, ok := f.Texts[English]; !ok {
		return nil, ErrNoEnglish
	}
	tags := make([]language.Tag, 0, len(f.Languages))
	for _, l := range f.Languages {
		tag, err := language.Parse(l.Code)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", l.Code, err)
		}
		tags = append(tags, tag)
	}
	return &Catalog{langs: f.Languages, texts: f.Texts, matcher: language.NewMatcher(tags)}, nil
}

var loadDefault = sync.OnceValue(func() *Catalog {
	c, err := Load(defaultTranslations)
	if err != nil {
		panic(err)
	}
	return c
})

// Default returns the embedded catalog.
func Default() *Catalog { return loadDefault() }

// Languages lists the supported languages in menu order.
func (c *Catalog) Languages() []Language { return slices.Clone(c.langs) }

// Supported reports whether code is an exact supported language code.
func (c *Catalog) Supported(code string) bool {
	return slices.ContainsFunc(c.langs, func(l Language) bool { return l.Code == code })
}

// Name returns the display name of code, or code itself.
func (c *Catalog) Name(code string) string {
	for _, l := range c.langs {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}

// Text returns key in lang, falling back to English and then to key.
func (c *Catalog) Text(lang, key string) string {
	if v, ok := c.texts[lang][key]; ok {
		return v
	}
	if v, ok := c.texts[English][key]; ok {
		return v
	}
	return key
}

// Match negotiates a supported language from a tag or an Accept-Language
// header value. Anything unrecognised resolves to English.
func (c *Catalog) Match(accept string) string {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, i, conf := c.matcher.Match(tags...)
	if conf == language.No || i >= len(c.langs) {
		return English
	}
	return c.langs[i].Code
}

// MenuDomain maps a main-menu choice 1-10 to its domain.
func MenuDomain(choice int) (string, bool) {
	if choice < 1 || choice > len(menuDomains) {
		return "", false
	}
	return menuDomains[choice-1], true
}

// MenuDomains lists the domains reachable from the main menu.
func MenuDomains() []string { return slices.Clone(menuDomains) }

// IsContinue reports whether answer asks for another analysis.
func IsContinue(answer string) bool {
	return slices.Contains(continueAnswers, strings.ToLower(strings.TrimSpace(answer)))
}

// Icon returns the display icon of domain.
func Icon(domain string) string {
	if i, ok := domainIcons[domain]; ok {
		return i
	}
	return "🔬"
}
