package service

import (
	"context"
	"strings"
	"sync"

	"atlas/internal/i18n"
)

// Reply is the answer to one conversation message.
type Reply struct {
	Language string     `json:"language"`
	Message  string     `json:"message"`
	Response string     `json:"response"`
	Stats    i18n.Stats `json:"stats"`
}

// ConversationService answers free-form messages with one narrative per language.
type ConversationService interface {
	Respond(ctx context.Context, lang, message string) (*Reply, error)
	Stats(ctx context.Context) []i18n.Stats
}

type conversationService struct {
	catalog *i18n.Catalog

	mu         sync.Mutex
	narratives map[string]*i18n.Narrative
}

// NewConversationService constructs a ConversationService.
func NewConversationService() ConversationService {
	return &conversationService{
		catalog:    i18n.Default(),
		narratives: make(map[string]*i18n.Narrative),
	}
}

func (s *conversationService) narrative(lang string) *i18n.Narrative {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.narratives[lang]
	if !ok {
		n = i18n.NewNarrative(lang)
		s.narratives[lang] = n
	}
	return n
}

// Respond negotiates lang against the supported languages and answers message.
func (s *conversationService) Respond(_ context.Context, lang, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrMessageRequired
	}
	code := s.catalog.Match(lang)
	n := s.narrative(code)
	resp := n.Respond(message)
	return &Reply{Language: code, Message: message, Response: resp, Stats: n.Stats()}, nil
}

// Stats reports every narrative started so far, in catalog order.
func (s *conversationService) Stats(context.Context) []i18n.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]i18n.Stats, 0, len(s.narratives))
	for _, l := range s.catalog.Languages() {
		if n, ok := s.narratives[l.Code]; ok {
			out = append(out, n.Stats())
		}
	}
	return out
}
