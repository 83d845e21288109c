package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"
)

type pattern struct {
	memoryID string
	ratio    float64
}

// InMemoryStore keeps memories in the process heap.
type InMemoryStore struct {
	mu       sync.Mutex
	entries  map[string]*Entry
	patterns map[string]pattern
	ratioSum float64
	now      func() time.Time
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemory returns an empty in-process store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		entries:  make(map[string]*Entry),
		patterns: make(map[string]pattern),
		now:      time.Now,
	}
}

func (s *InMemoryStore) Put(ctx context.Context, content string, metadata map[string]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	now := s.now()
	comp := Compress(content)

	s.mu.Lock()
	defer s.mu.Unlock()

	id := NewID(now, content)
	for n := 1; ; n++ {
		if _, taken := s.entries[id]; !taken {
			break
		}
		id = fmt.Sprintf("%s_%d", NewID(now, content), n)
	}

	s.entries[id] = &Entry{
		ID:        id,
		Content:   comp,
		Metadata:  maps.Clone(metadata),
		StoredAt:  now,
		Signature: Signature(content),
	}
	s.patterns[fmt.Sprintf("pattern_%d", len(s.patterns))] = pattern{memoryID: id, ratio: comp.Ratio}
	s.ratioSum += comp.Ratio
	return id, nil
}

func (s *InMemoryStore) Get(ctx context.Context, id string) (*Recall, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.AccessCount++
	return recall(e), nil
}

func (s *InMemoryStore) Metrics(ctx context.Context) (*Metrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return newMetrics(len(s.entries), len(s.patterns), s.ratioSum, "inmemory"), nil
}
