package pages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/travel-cms/internal/identity"
)

// BunNodeRepository persists nodes and article/destination links via bun.
type BunNodeRepository struct {
	db    *bun.DB
	repo  repository.Repository[*Node]
	links repository.Repository[*ArticleDestination]
}

// NewBunNodeRepository constructs a repository without caching.
func NewBunNodeRepository(db *bun.DB) *BunNodeRepository {
	return NewBunNodeRepositoryWithCache(db, nil, nil)
}

// NewBunNodeRepositoryWithCache constructs a node repository backed by bun
// with an optional read-through cache layer.
func NewBunNodeRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunNodeRepository {
	return &BunNodeRepository{
		db:    db,
		repo:  wrapWithCache(NewNodeRepository(db), cacheService, keySerializer),
		links: wrapWithCache(NewArticleDestinationRepository(db), cacheService, keySerializer),
	}
}

func (r *BunNodeRepository) Create(ctx context.Context, record *Node) (*Node, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("node create: %w", err)
	}
	return created, nil
}

func (r *BunNodeRepository) Update(ctx context.Context, record *Node) (*Node, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "node", record.ID.String())
	}
	return updated, nil
}

func (r *BunNodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().Model((*Node)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("node delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("node delete rows affected: %w", err)
	}
	if affected == 0 {
		return &NodeNotFoundError{Key: id.String()}
	}
	return nil
}

func (r *BunNodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Node, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "node", id.String())
	}
	return record, nil
}

func (r *BunNodeRepository) GetChildBySlug(ctx context.Context, parentID *uuid.UUID, slug string) (*Node, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if parentID == nil {
				return q.Where("?TableAlias.parent_id IS NULL")
			}
			return q.Where("?TableAlias.parent_id = ?", *parentID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "node", slug)
	}
	if len(records) == 0 {
		return nil, &NodeNotFoundError{Key: slug}
	}
	return records[0], nil
}

func (r *BunNodeRepository) Children(ctx context.Context, parentID uuid.UUID) ([]*Node, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.parent_id = ?", parentID).
				Order("title ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "node", parentID.String())
	}
	return records, nil
}

func (r *BunNodeRepository) Roots(ctx context.Context) ([]*Node, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.parent_id IS NULL")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "node", "roots")
	}
	return records, nil
}

func (r *BunNodeRepository) ListByKind(ctx context.Context, kinds ...Kind) ([]*Node, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if len(kinds) == 0 {
				return q
			}
			values := make([]any, 0, len(kinds))
			for _, kind := range kinds {
				values = append(values, string(kind))
			}
			return q.Where("?TableAlias.kind IN (?)", bun.In(values))
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "node", "kinds")
	}
	return records, nil
}

// Link inserts the article/destination pair, surfacing ErrLinkExists on the
// unique constraint instead of a driver error.
func (r *BunNodeRepository) Link(ctx context.Context, articleID, destinationID uuid.UUID) error {
	exists, err := r.linkExists(ctx, articleID, destinationID)
	if err != nil {
		return err
	}
	if exists {
		return ErrLinkExists
	}
	_, err = r.links.Create(ctx, &ArticleDestination{
		ID:            identity.LinkUUID(articleID, destinationID),
		ArticleID:     articleID,
		DestinationID: destinationID,
	})
	if err != nil {
		return fmt.Errorf("link create: %w", err)
	}
	return nil
}

func (r *BunNodeRepository) Unlink(ctx context.Context, articleID, destinationID uuid.UUID) error {
	_, err := r.db.NewDelete().Model((*ArticleDestination)(nil)).
		Where("article_id = ?", articleID).
		Where("destination_id = ?", destinationID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("link delete: %w", err)
	}
	return nil
}

func (r *BunNodeRepository) DestinationIDs(ctx context.Context, articleID uuid.UUID) ([]uuid.UUID, error) {
	return r.linkIDs(ctx, "article_id", articleID, "destination_id")
}

func (r *BunNodeRepository) ArticleIDs(ctx context.Context, destinationID uuid.UUID) ([]uuid.UUID, error) {
	return r.linkIDs(ctx, "destination_id", destinationID, "article_id")
}

func (r *BunNodeRepository) linkIDs(ctx context.Context, whereColumn string, id uuid.UUID, selectColumn string) ([]uuid.UUID, error) {
	var out []uuid.UUID
	err := r.db.NewSelect().Model((*ArticleDestination)(nil)).
		Column(selectColumn).
		Where("? = ?", bun.Ident(whereColumn), id).
		Order("created_at ASC").
		Scan(ctx, &out)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("link lookup: %w", err)
	}
	return out, nil
}

func (r *BunNodeRepository) linkExists(ctx context.Context, articleID, destinationID uuid.UUID) (bool, error) {
	count, err := r.db.NewSelect().Model((*ArticleDestination)(nil)).
		Where("article_id = ?", articleID).
		Where("destination_id = ?", destinationID).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("link exists: %w", err)
	}
	return count > 0, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NodeNotFoundError{Key: key}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
