package semantic

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var defaultKnowledge []byte

// ErrEmptyKnowledgeBase is returned when a knowledge document declares no concepts.
var ErrEmptyKnowledgeBase = errors.New("knowledge base has no concepts")

// Concept is a knowledge base entry, or a concept extracted from text when Relevance is set.
type Concept struct {
	Name       string   `yaml:"name" json:"concept"`
	Domain     string   `yaml:"domain" json:"domain"`
	Complexity int      `yaml:"complexity" json:"complexity"`
	Related    []string `yaml:"related" json:"related_concepts,omitempty"`
	Attributes []string `yaml:"attributes" json:"attributes"`
	Relevance  float64  `yaml:"-" json:"relevance"`
}

// IsRelated reports whether other is listed among the related concepts.
func (c Concept) IsRelated(other string) bool {
	return slices.Contains(c.Related, other)
}

// SharesAttribute reports whether both concepts carry at least one common attribute.
func (c Concept) SharesAttribute(other Concept) bool {
	for _, a := range c.Attributes {
		if slices.Contains(other.Attributes, a) {
			return true
		}
	}
	return false
}

// KnowledgeBase is the static concept database backing the mapper.
type KnowledgeBase struct {
	Networks          int       `yaml:"semantic_networks"`
	FractalStructures int       `yaml:"fractal_structures"`
	Coherence         float64   `yaml:"semantic_coherence"`
	Concepts          []Concept `yaml:"concepts"`

	index map[string]Concept
}

// LoadKnowledgeBase parses a YAML knowledge document.
func LoadKnowledgeBase(data []byte) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	if len(kb.Concepts) == 0 {
		return nil, ErrEmptyKnowledgeBase
	}
	kb.index = make(map[string]Concept, len(kb.Concepts))
	for _, c := range kb.Concepts {
		kb.index[c.Name] = c
	}
	return &kb, nil
}

// DefaultKnowledgeBase returns the embedded knowledge base.
func DefaultKnowledgeBase() *KnowledgeBase {
	kb, err := LoadKnowledgeBase(defaultKnowledge)
	if err != nil {
		panic(fmt.Sprintf("embedded knowledge base: %v", err))
	}
	return kb
}

// Lookup returns the concept registered under name.
func (kb *KnowledgeBase) Lookup(name string) (Concept, bool) {
	c, ok := kb.index[name]
	return c, ok
}
