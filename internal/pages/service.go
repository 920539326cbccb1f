package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/travel-cms/internal/blocks"
	"github.com/goliatone/travel-cms/internal/identity"
	"github.com/goliatone/travel-cms/internal/logging"
	"github.com/goliatone/travel-cms/pkg/interfaces"
)

// HTMLImporter converts staged legacy HTML into content units. The concrete
// implementation lives in internal/importer; the indirection keeps the
// one-shot save trigger testable without real HTML parsing.
type HTMLImporter interface {
	ImportFlat(html string) []blocks.Unit
	ImportQuickSections(html string) []blocks.Unit
}

// Service manages the hierarchical page tree.
type Service interface {
	Create(ctx context.Context, req CreateNodeRequest) (*Node, error)
	Update(ctx context.Context, req UpdateNodeRequest) (*Node, error)
	SaveBody(ctx context.Context, req SaveBodyRequest) (*Node, error)
	Move(ctx context.Context, req MoveNodeRequest) (*Node, error)
	Publish(ctx context.Context, id uuid.UUID) (*Node, error)
	Unpublish(ctx context.Context, id uuid.UUID) (*Node, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Get(ctx context.Context, id uuid.UUID) (*Node, error)
	Resolve(ctx context.Context, path string) (*Node, error)
	Path(ctx context.Context, id uuid.UUID) (string, error)
	Children(ctx context.Context, parentID uuid.UUID, visibleOnly bool) ([]*Node, error)
	Siblings(ctx context.Context, id uuid.UUID) ([]*Node, error)
	Ancestors(ctx context.Context, id uuid.UUID) ([]*Node, error)
	ListVisible(ctx context.Context, kinds ...Kind) ([]*Node, error)

	LinkDestination(ctx context.Context, articleID, destinationID uuid.UUID) error
	UnlinkDestination(ctx context.Context, articleID, destinationID uuid.UUID) error
	Destinations(ctx context.Context, articleID uuid.UUID) ([]*Node, error)
	Articles(ctx context.Context, destinationID uuid.UUID) ([]*Node, error)
}

// CreateNodeRequest captures the payload required to create a node.
type CreateNodeRequest struct {
	Kind             Kind
	ParentID         *uuid.UUID
	Title            string
	Slug             string
	Live             bool
	Public           bool
	SEODescription   string
	ShortDescription string
	Intro            string
	HeroImageRef     string
	Tags             []string
	Body             []blocks.Unit
	BulkPaste        string
	CTAOverride      []blocks.CTAButton
	FAQ              []blocks.FAQ
}

// Validate enforces the structural invariants checkable without storage.
func (r CreateNodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error(ErrTitleRequired.Error())),
		validation.Field(&r.Kind, validation.Required.Error(ErrKindRequired.Error()), validation.By(func(any) error {
			if !KnownKind(r.Kind) {
				return validation.NewError("pages.kind_unknown", fmt.Sprintf("unknown node kind %q", r.Kind))
			}
			return nil
		})),
	)
}

// UpdateNodeRequest captures the mutable scalar fields of a node. Nil
// pointers leave the stored value untouched.
type UpdateNodeRequest struct {
	ID               uuid.UUID
	Title            *string
	SEODescription   *string
	ShortDescription *string
	Intro            *string
	HeroImageRef     *string
	Tags             []string
	CTAOverride      []blocks.CTAButton
	FAQ              []blocks.FAQ
	Public           *bool
}

// SaveBodyRequest replaces a node body and runs the one-shot bulk-paste
// import when staged HTML is present and the structured body is empty.
type SaveBodyRequest struct {
	ID        uuid.UUID
	Body      []blocks.Unit
	BulkPaste string
}

// MoveNodeRequest re-parents a node.
type MoveNodeRequest struct {
	ID          uuid.UUID
	NewParentID *uuid.UUID
}

type service struct {
	repo     NodeRepository
	links    RelationRepository
	importer HTMLImporter
	logger   interfaces.Logger
	now      func() time.Time
}

// ServiceOption customises service construction.
type ServiceOption func(*service)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithImporter wires the legacy HTML importer used by the bulk-paste trigger.
func WithImporter(importer HTMLImporter) ServiceOption {
	return func(s *service) {
		s.importer = importer
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs the page tree service. repo also serves relation
// storage when it implements RelationRepository (both built-in repositories
// do).
func NewService(repo NodeRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	if links, ok := repo.(RelationRepository); ok {
		s.links = links
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateNodeRequest) (*Node, error) {
	if s.repo == nil {
		return nil, ErrRepositoryMissing
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var parentKind *Kind
	if req.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		parentKind = &parent.Kind
	}
	if err := ValidateHierarchy(parentKind, req.Kind); err != nil {
		return nil, err
	}

	siblingSlugs, err := s.siblingSlugs(ctx, req.ParentID, uuid.Nil)
	if err != nil {
		return nil, err
	}

	slug := ChildSlug(req.Slug, req.Title, siblingSlugs)
	id := identity.RootNodeUUID(slug)
	if req.ParentID != nil {
		id = identity.NodeUUID(*req.ParentID, slug)
	}

	now := s.now()
	node := &Node{
		ID:               id,
		ParentID:         req.ParentID,
		Kind:             req.Kind,
		Slug:             slug,
		Title:            strings.TrimSpace(req.Title),
		Live:             req.Live,
		Public:           req.Public,
		SEODescription:   req.SEODescription,
		ShortDescription: req.ShortDescription,
		Intro:            req.Intro,
		HeroImageRef:     req.HeroImageRef,
		Tags:             normalizeTags(req.Tags),
		CTAOverride:      req.CTAOverride,
		FAQ:              req.FAQ,
		BulkPaste:        req.BulkPaste,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := node.SetUnits(req.Body); err != nil {
		return nil, err
	}
	if node.Live && node.FirstPublishedAt == nil {
		node.FirstPublishedAt = &now
	}

	s.applyBulkPaste(node)

	created, err := s.repo.Create(ctx, node)
	if err != nil {
		return nil, err
	}
	logging.WithNodeContext(s.logger, string(created.Kind), created.Slug).
		Info("node created")
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateNodeRequest) (*Node, error) {
	node, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		node.Title = title
	}
	if req.SEODescription != nil {
		node.SEODescription = *req.SEODescription
	}
	if req.ShortDescription != nil {
		node.ShortDescription = *req.ShortDescription
	}
	if req.Intro != nil {
		node.Intro = *req.Intro
	}
	if req.HeroImageRef != nil {
		node.HeroImageRef = *req.HeroImageRef
	}
	if req.Tags != nil {
		node.Tags = normalizeTags(req.Tags)
	}
	if req.CTAOverride != nil {
		node.CTAOverride = req.CTAOverride
	}
	if req.FAQ != nil {
		node.FAQ = req.FAQ
	}
	if req.Public != nil {
		node.Public = *req.Public
	}
	node.UpdatedAt = s.now()

	return s.repo.Update(ctx, node)
}

// SaveBody replaces the body and applies the bulk-paste convention: staged
// HTML imports once, only into an empty body, and is always cleared after.
func (s *service) SaveBody(ctx context.Context, req SaveBodyRequest) (*Node, error) {
	node, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Body != nil {
		if err := node.SetUnits(req.Body); err != nil {
			return nil, err
		}
	}
	node.BulkPaste = req.BulkPaste
	s.applyBulkPaste(node)
	node.UpdatedAt = s.now()

	return s.repo.Update(ctx, node)
}

func (s *service) Move(ctx context.Context, req MoveNodeRequest) (*Node, error) {
	node, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	var parentKind *Kind
	if req.NewParentID != nil {
		if *req.NewParentID == node.ID {
			return nil, &InvalidHierarchyError{Parent: node.Kind, Child: node.Kind}
		}
		parent, err := s.repo.GetByID(ctx, *req.NewParentID)
		if err != nil {
			return nil, err
		}
		if err := s.ensureNotDescendant(ctx, node.ID, parent); err != nil {
			return nil, err
		}
		parentKind = &parent.Kind
	}
	if err := ValidateHierarchy(parentKind, node.Kind); err != nil {
		return nil, err
	}

	siblingSlugs, err := s.siblingSlugs(ctx, req.NewParentID, node.ID)
	if err != nil {
		return nil, err
	}
	node.ParentID = req.NewParentID
	node.Slug = ChildSlug(node.Slug, node.Title, siblingSlugs)
	node.UpdatedAt = s.now()

	return s.repo.Update(ctx, node)
}

func (s *service) Publish(ctx context.Context, id uuid.UUID) (*Node, error) {
	node, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	node.Live = true
	if node.FirstPublishedAt == nil {
		node.FirstPublishedAt = &now
	}
	node.UpdatedAt = now
	return s.repo.Update(ctx, node)
}

func (s *service) Unpublish(ctx context.Context, id uuid.UUID) (*Node, error) {
	node, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	node.Live = false
	node.UpdatedAt = s.now()
	return s.repo.Update(ctx, node)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	children, err := s.repo.Children(ctx, id)
	if err != nil {
		return err
	}
	for _, child := range children {
		if child.Live {
			return fmt.Errorf("pages: node %s still has live children", id)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Node, error) {
	return s.repo.GetByID(ctx, id)
}

// Resolve walks the public tree from the home root along slug segments. Every
// node on the chain must be live and public; anything else is NotFound.
func (s *service) Resolve(ctx context.Context, path string) (*Node, error) {
	current, err := s.homeRoot(ctx)
	if err != nil {
		return nil, err
	}
	if !current.IsPubliclyVisible() {
		return nil, &NodeNotFoundError{Key: path}
	}

	for _, segment := range splitPath(path) {
		parentID := current.ID
		next, err := s.repo.GetChildBySlug(ctx, &parentID, segment)
		if err != nil {
			return nil, &NodeNotFoundError{Key: path}
		}
		if !next.IsPubliclyVisible() {
			return nil, &NodeNotFoundError{Key: path}
		}
		current = next
	}
	return current, nil
}

// Path renders the public URL path for a node (home root excluded).
func (s *service) Path(ctx context.Context, id uuid.UUID) (string, error) {
	node, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	segments := []string{}
	for node.ParentID != nil {
		segments = append([]string{node.Slug}, segments...)
		node, err = s.repo.GetByID(ctx, *node.ParentID)
		if err != nil {
			return "", err
		}
	}
	return "/" + strings.Join(segments, "/"), nil
}

func (s *service) Children(ctx context.Context, parentID uuid.UUID, visibleOnly bool) ([]*Node, error) {
	children, err := s.repo.Children(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !visibleOnly {
		return children, nil
	}
	visible := children[:0]
	for _, child := range children {
		if child.IsPubliclyVisible() {
			visible = append(visible, child)
		}
	}
	return visible, nil
}

func (s *service) Siblings(ctx context.Context, id uuid.UUID) ([]*Node, error) {
	node, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if node.ParentID == nil {
		return nil, nil
	}
	children, err := s.repo.Children(ctx, *node.ParentID)
	if err != nil {
		return nil, err
	}
	siblings := children[:0]
	for _, child := range children {
		if child.ID != id {
			siblings = append(siblings, child)
		}
	}
	return siblings, nil
}

// Ancestors returns the chain from the root down to the direct parent.
func (s *service) Ancestors(ctx context.Context, id uuid.UUID) ([]*Node, error) {
	node, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var chain []*Node
	for node.ParentID != nil {
		node, err = s.repo.GetByID(ctx, *node.ParentID)
		if err != nil {
			return nil, err
		}
		chain = append([]*Node{node}, chain...)
	}
	return chain, nil
}

func (s *service) ListVisible(ctx context.Context, kinds ...Kind) ([]*Node, error) {
	records, err := s.repo.ListByKind(ctx, kinds...)
	if err != nil {
		return nil, err
	}
	visible := records[:0]
	for _, record := range records {
		if record.IsPubliclyVisible() {
			visible = append(visible, record)
		}
	}
	return visible, nil
}

func (s *service) LinkDestination(ctx context.Context, articleID, destinationID uuid.UUID) error {
	if s.links == nil {
		return ErrRepositoryMissing
	}
	article, err := s.repo.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if article.Kind != KindArticle {
		return ErrNotAnArticle
	}
	destination, err := s.repo.GetByID(ctx, destinationID)
	if err != nil {
		return err
	}
	if destination.Kind != KindDestination {
		return ErrNotADestination
	}
	return s.links.Link(ctx, articleID, destinationID)
}

func (s *service) UnlinkDestination(ctx context.Context, articleID, destinationID uuid.UUID) error {
	if s.links == nil {
		return ErrRepositoryMissing
	}
	return s.links.Unlink(ctx, articleID, destinationID)
}

func (s *service) Destinations(ctx context.Context, articleID uuid.UUID) ([]*Node, error) {
	if s.links == nil {
		return nil, ErrRepositoryMissing
	}
	ids, err := s.links.DestinationIDs(ctx, articleID)
	if err != nil {
		return nil, err
	}
	return s.resolveIDs(ctx, ids)
}

func (s *service) Articles(ctx context.Context, destinationID uuid.UUID) ([]*Node, error) {
	if s.links == nil {
		return nil, ErrRepositoryMissing
	}
	ids, err := s.links.ArticleIDs(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	return s.resolveIDs(ctx, ids)
}

// applyBulkPaste runs the staged-HTML import once. The staging field is
// cleared afterwards either way, so a second save is a no-op: an already
// populated body is never overwritten by an import.
func (s *service) applyBulkPaste(node *Node) {
	staged := strings.TrimSpace(node.BulkPaste)
	if staged == "" {
		return
	}
	node.BulkPaste = ""

	if s.importer == nil || node.HasBody() {
		return
	}

	var units []blocks.Unit
	switch node.Kind {
	case KindDestination, KindCountry:
		units = s.importer.ImportQuickSections(staged)
	default:
		units = s.importer.ImportFlat(staged)
	}
	if err := node.SetUnits(units); err != nil {
		logging.WithNodeContext(s.logger, string(node.Kind), node.Slug).
			Error("bulk paste import failed", "error", err)
		return
	}
	logging.WithNodeContext(s.logger, string(node.Kind), node.Slug).
		Info("bulk paste imported", "units", len(units))
}

func (s *service) siblingSlugs(ctx context.Context, parentID *uuid.UUID, exclude uuid.UUID) ([]string, error) {
	var siblings []*Node
	var err error
	if parentID == nil {
		siblings, err = s.repo.Roots(ctx)
	} else {
		siblings, err = s.repo.Children(ctx, *parentID)
	}
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(siblings))
	for _, sibling := range siblings {
		if exclude != uuid.Nil && sibling.ID == exclude {
			continue
		}
		slugs = append(slugs, sibling.Slug)
	}
	return slugs, nil
}

func (s *service) ensureNotDescendant(ctx context.Context, nodeID uuid.UUID, candidate *Node) error {
	for candidate != nil && candidate.ParentID != nil {
		if *candidate.ParentID == nodeID {
			return &InvalidHierarchyError{Parent: candidate.Kind, Child: candidate.Kind}
		}
		parent, err := s.repo.GetByID(ctx, *candidate.ParentID)
		if err != nil {
			return err
		}
		candidate = parent
	}
	return nil
}

func (s *service) homeRoot(ctx context.Context) (*Node, error) {
	roots, err := s.repo.Roots(ctx)
	if err != nil {
		return nil, err
	}
	for _, root := range roots {
		if root.Kind == KindHome {
			return root, nil
		}
	}
	return nil, &NodeNotFoundError{Key: "home"}
}

func (s *service) resolveIDs(ctx context.Context, ids []uuid.UUID) ([]*Node, error) {
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		node, err := s.repo.GetByID(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, node)
	}
	return out, nil
}

func splitPath(path string) []string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		cleaned := strings.ToLower(strings.TrimSpace(tag))
		if cleaned == "" {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}
