package pages

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/travel-cms/internal/blocks"
	"github.com/goliatone/travel-cms/internal/identity"
)

// MemoryNodeRepository is an in-memory node store for scaffolding/tests.
type MemoryNodeRepository struct {
	mu    sync.RWMutex
	nodes map[uuid.UUID]*Node
	links []ArticleDestination
}

// NewMemoryNodeRepository constructs the repository.
func NewMemoryNodeRepository() *MemoryNodeRepository {
	return &MemoryNodeRepository{
		nodes: make(map[uuid.UUID]*Node),
	}
}

// Create inserts the supplied node.
func (m *MemoryNodeRepository) Create(_ context.Context, record *Node) (*Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cloneNode(record)
	m.nodes[copied.ID] = copied
	return cloneNode(copied), nil
}

// Update persists changes for an existing node.
func (m *MemoryNodeRepository) Update(_ context.Context, record *Node) (*Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.nodes[record.ID]; !ok {
		return nil, &NodeNotFoundError{Key: record.ID.String()}
	}
	copied := cloneNode(record)
	m.nodes[copied.ID] = copied
	return cloneNode(copied), nil
}

// Delete removes a node by identifier.
func (m *MemoryNodeRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.nodes[id]; !ok {
		return &NodeNotFoundError{Key: id.String()}
	}
	delete(m.nodes, id)
	return nil
}

// GetByID retrieves a node by identifier.
func (m *MemoryNodeRepository) GetByID(_ context.Context, id uuid.UUID) (*Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.nodes[id]
	if !ok {
		return nil, &NodeNotFoundError{Key: id.String()}
	}
	return cloneNode(record), nil
}

// GetChildBySlug retrieves the child of parentID carrying the slug. A nil
// parentID addresses root nodes.
func (m *MemoryNodeRepository) GetChildBySlug(_ context.Context, parentID *uuid.UUID, slug string) (*Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, record := range m.nodes {
		if record.Slug != slug {
			continue
		}
		if parentID == nil && record.ParentID == nil {
			return cloneNode(record), nil
		}
		if parentID != nil && record.ParentID != nil && *record.ParentID == *parentID {
			return cloneNode(record), nil
		}
	}
	return nil, &NodeNotFoundError{Key: slug}
}

// Children lists direct children ordered by title.
func (m *MemoryNodeRepository) Children(_ context.Context, parentID uuid.UUID) ([]*Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Node
	for _, record := range m.nodes {
		if record.ParentID != nil && *record.ParentID == parentID {
			out = append(out, cloneNode(record))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out, nil
}

// Roots lists nodes without a parent.
func (m *MemoryNodeRepository) Roots(_ context.Context) ([]*Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Node
	for _, record := range m.nodes {
		if record.ParentID == nil {
			out = append(out, cloneNode(record))
		}
	}
	return out, nil
}

// ListByKind returns every node of the supplied kinds; no kinds means all.
func (m *MemoryNodeRepository) ListByKind(_ context.Context, kinds ...Kind) ([]*Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	match := func(kind Kind) bool {
		if len(kinds) == 0 {
			return true
		}
		for _, k := range kinds {
			if k == kind {
				return true
			}
		}
		return false
	}
	var out []*Node
	for _, record := range m.nodes {
		if match(record.Kind) {
			out = append(out, cloneNode(record))
		}
	}
	return out, nil
}

// Link records the article/destination pair; duplicates fail.
func (m *MemoryNodeRepository) Link(_ context.Context, articleID, destinationID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, link := range m.links {
		if link.ArticleID == articleID && link.DestinationID == destinationID {
			return ErrLinkExists
		}
	}
	m.links = append(m.links, ArticleDestination{
		ID:            identity.LinkUUID(articleID, destinationID),
		ArticleID:     articleID,
		DestinationID: destinationID,
	})
	return nil
}

// Unlink drops the pair if present.
func (m *MemoryNodeRepository) Unlink(_ context.Context, articleID, destinationID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.links[:0]
	for _, link := range m.links {
		if link.ArticleID == articleID && link.DestinationID == destinationID {
			continue
		}
		kept = append(kept, link)
	}
	m.links = kept
	return nil
}

// DestinationIDs lists linked destinations in link order.
func (m *MemoryNodeRepository) DestinationIDs(_ context.Context, articleID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []uuid.UUID
	for _, link := range m.links {
		if link.ArticleID == articleID {
			out = append(out, link.DestinationID)
		}
	}
	return out, nil
}

// ArticleIDs lists linked articles in link order.
func (m *MemoryNodeRepository) ArticleIDs(_ context.Context, destinationID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []uuid.UUID
	for _, link := range m.links {
		if link.DestinationID == destinationID {
			out = append(out, link.ArticleID)
		}
	}
	return out, nil
}

func cloneNode(src *Node) *Node {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Parent = nil
	copied.Children = nil
	if src.ParentID != nil {
		parentID := *src.ParentID
		copied.ParentID = &parentID
	}
	if src.FirstPublishedAt != nil {
		published := *src.FirstPublishedAt
		copied.FirstPublishedAt = &published
	}
	if len(src.Tags) > 0 {
		copied.Tags = append([]string(nil), src.Tags...)
	}
	if len(src.Body) > 0 {
		copied.Body = append([]byte(nil), src.Body...)
	}
	if len(src.CTAOverride) > 0 {
		copied.CTAOverride = append([]blocks.CTAButton(nil), src.CTAOverride...)
	}
	if len(src.FAQ) > 0 {
		copied.FAQ = make([]blocks.FAQ, len(src.FAQ))
		for i, faq := range src.FAQ {
			copied.FAQ[i] = faq
			copied.FAQ[i].Items = append([]blocks.FAQItem(nil), faq.Items...)
		}
	}
	return &copied
}
