package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// SearchHit is one ranked match returned by a SearchIndex.
type SearchHit struct {
	NodeID uuid.UUID
	Score  float64
}

// SearchIndex is the full-text search collaborator. Implementations index
// live+public nodes only; an empty result set is the expected "no matches"
// outcome, never an error.
type SearchIndex interface {
	Index(ctx context.Context, id uuid.UUID, fields map[string]string) error
	Remove(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string) ([]SearchHit, error)
}
