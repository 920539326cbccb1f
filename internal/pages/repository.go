package pages

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NodeRepository is the persistence contract for tree nodes. Ordered child
// lookup and sibling slug uniqueness are delegated here per the storage
// collaborator's transactional guarantees.
type NodeRepository interface {
	Create(ctx context.Context, record *Node) (*Node, error)
	Update(ctx context.Context, record *Node) (*Node, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Node, error)
	GetChildBySlug(ctx context.Context, parentID *uuid.UUID, slug string) (*Node, error)
	Children(ctx context.Context, parentID uuid.UUID) ([]*Node, error)
	Roots(ctx context.Context) ([]*Node, error)
	ListByKind(ctx context.Context, kinds ...Kind) ([]*Node, error)
}

// RelationRepository stores the article/destination many-to-many link.
type RelationRepository interface {
	Link(ctx context.Context, articleID, destinationID uuid.UUID) error
	Unlink(ctx context.Context, articleID, destinationID uuid.UUID) error
	DestinationIDs(ctx context.Context, articleID uuid.UUID) ([]uuid.UUID, error)
	ArticleIDs(ctx context.Context, destinationID uuid.UUID) ([]uuid.UUID, error)
}

// NewNodeRepository builds the generic bun-backed node repository.
func NewNodeRepository(db *bun.DB) repository.Repository[*Node] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Node]{
		NewRecord: func() *Node { return &Node{} },
		GetID: func(n *Node) uuid.UUID {
			return n.ID
		},
		SetID: func(n *Node, id uuid.UUID) {
			n.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(n *Node) string {
			return n.Slug
		},
	})
}

// NewArticleDestinationRepository builds the bun repository for the
// article/destination link rows.
func NewArticleDestinationRepository(db *bun.DB) repository.Repository[*ArticleDestination] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ArticleDestination]{
		NewRecord: func() *ArticleDestination { return &ArticleDestination{} },
		GetID: func(l *ArticleDestination) uuid.UUID {
			return l.ID
		},
		SetID: func(l *ArticleDestination, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return ""
		},
		GetIdentifierValue: func(*ArticleDestination) string {
			return ""
		},
	})
}
