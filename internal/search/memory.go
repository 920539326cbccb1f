// Package search provides the in-process full-text index used when no
// external search backend is configured. Ranking is a simple weighted
// term-frequency score; relevance quality is a host concern.
package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/travel-cms/pkg/interfaces"
)

// field weights: title matches outrank body matches
var fieldWeights = map[string]float64{
	"title":       3.0,
	"description": 2.0,
	"tags":        2.0,
	"body":        1.0,
}

const defaultWeight = 1.0

// MemoryIndex is a concurrency-safe in-memory SearchIndex.
type MemoryIndex struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]map[string][]string
}

var _ interfaces.SearchIndex = (*MemoryIndex)(nil)

// NewMemoryIndex returns an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{docs: make(map[uuid.UUID]map[string][]string)}
}

// Index stores the tokenized fields for a node, replacing any previous
// document under the same id.
func (m *MemoryIndex) Index(_ context.Context, id uuid.UUID, fields map[string]string) error {
	tokenized := make(map[string][]string, len(fields))
	for name, value := range fields {
		tokens := tokenize(value)
		if len(tokens) == 0 {
			continue
		}
		tokenized[name] = tokens
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(tokenized) == 0 {
		delete(m.docs, id)
		return nil
	}
	m.docs[id] = tokenized
	return nil
}

// Remove drops a node from the index. Unknown ids are a no-op.
func (m *MemoryIndex) Remove(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

// Search returns matches ranked by weighted term frequency. An empty or
// whitespace query yields no hits.
func (m *MemoryIndex) Search(_ context.Context, query string) ([]interfaces.SearchHit, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var hits []interfaces.SearchHit
	for id, doc := range m.docs {
		score := 0.0
		for field, tokens := range doc {
			weight, ok := fieldWeights[field]
			if !ok {
				weight = defaultWeight
			}
			for _, term := range terms {
				for _, token := range tokens {
					if strings.HasPrefix(token, term) {
						score += weight
					}
				}
			}
		}
		if score > 0 {
			hits = append(hits, interfaces.SearchHit{NodeID: id, Score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].NodeID.String() < hits[j].NodeID.String()
	})
	return hits, nil
}

func tokenize(value string) []string {
	lowered := strings.ToLower(value)
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r >= 'à' && r <= 'ÿ')
	})
	out := fields[:0]
	for _, field := range fields {
		if len(field) > 1 {
			out = append(out, field)
		}
	}
	return out
}
