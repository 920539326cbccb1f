// Package enrich computes the presentation context around a resolved node:
// breadcrumbs, related content, affiliate call-to-actions and FAQ structured
// data. It never mutates stored content.
package enrich

import (
	"context"
	"sort"
	"strings"

	"github.com/goliatone/travel-cms/internal/logging"
	"github.com/goliatone/travel-cms/internal/pages"
	"github.com/goliatone/travel-cms/pkg/interfaces"
)

// relatedLimit caps the related-content list.
const relatedLimit = 6

// Context is the enrichment payload handed to the template layer alongside
// the composed body.
type Context struct {
	Breadcrumbs        []*pages.Node `json:"breadcrumbs"`
	Related            []*pages.Node `json:"related,omitempty"`
	CTAs               []CTA         `json:"ctas,omitempty"`
	CTASource          string        `json:"ctas_source,omitempty"`
	FAQJSONLD          string        `json:"faq_jsonld,omitempty"`
	Listing            []*pages.Node `json:"listing,omitempty"`
	LatestDestinations []*pages.Node `json:"latest_destinations,omitempty"`
	LatestArticles     []*pages.Node `json:"latest_articles,omitempty"`
}

// Enricher derives per-node context from the page tree.
type Enricher struct {
	pages  pages.Service
	logger interfaces.Logger
}

// Option customises enricher construction.
type Option func(*Enricher)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Enricher) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New builds an enricher on top of the page service.
func New(svc pages.Service, opts ...Option) *Enricher {
	e := &Enricher{pages: svc, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich assembles the context for one node. Lookup failures degrade to
// partial context rather than failing the render.
func (e *Enricher) Enrich(ctx context.Context, node *pages.Node) (Context, error) {
	if node == nil {
		return Context{}, nil
	}

	out := Context{
		Breadcrumbs: []*pages.Node{},
		FAQJSONLD:   FAQJSONLD(node),
	}

	if crumbs, err := e.breadcrumbs(ctx, node); err == nil {
		out.Breadcrumbs = crumbs
	} else {
		e.logger.Warn("breadcrumbs unavailable", "slug", node.Slug, "error", err)
	}

	switch node.Kind {
	case pages.KindDestination:
		related, err := e.Related(ctx, node)
		if err != nil {
			e.logger.Warn("related lookup failed", "slug", node.Slug, "error", err)
		}
		out.Related = related
		out.CTAs, out.CTASource = SelectCTAs(node)
	case pages.KindHome:
		out.LatestDestinations = e.latest(ctx, pages.KindDestination)
		out.LatestArticles = e.latest(ctx, pages.KindArticle)
	case pages.KindGuidesIndex, pages.KindDestinationsIndex,
		pages.KindCategory, pages.KindCountry:
		listing, err := e.pages.Children(ctx, node.ID, true)
		if err != nil {
			e.logger.Warn("listing unavailable", "slug", node.Slug, "error", err)
		}
		out.Listing = listing
	}

	return out, nil
}

// latest returns the newest visible nodes of one kind, most recent first.
func (e *Enricher) latest(ctx context.Context, kind pages.Kind) []*pages.Node {
	nodes, err := e.pages.ListVisible(ctx, kind)
	if err != nil {
		e.logger.Warn("latest listing unavailable", "kind", string(kind), "error", err)
		return nil
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].PublishedOrder().After(nodes[j].PublishedOrder())
	})
	if len(nodes) > relatedLimit {
		nodes = nodes[:relatedLimit]
	}
	return nodes
}

// breadcrumbs returns the ancestor chain root-to-leaf, excluding the tree
// root and any home-style placeholder.
func (e *Enricher) breadcrumbs(ctx context.Context, node *pages.Node) ([]*pages.Node, error) {
	ancestors, err := e.pages.Ancestors(ctx, node.ID)
	if err != nil {
		return nil, err
	}
	crumbs := make([]*pages.Node, 0, len(ancestors))
	for _, ancestor := range ancestors {
		if ancestor.Kind == pages.KindHome {
			continue
		}
		if isPlaceholderTitle(ancestor.Title) {
			continue
		}
		if !ancestor.IsPubliclyVisible() {
			continue
		}
		crumbs = append(crumbs, ancestor)
	}
	return crumbs, nil
}

func isPlaceholderTitle(title string) bool {
	switch strings.ToLower(strings.TrimSpace(title)) {
	case "welcome", "home", "root":
		return true
	}
	return false
}
