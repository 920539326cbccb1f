// Package travelcms is the publishing core of a travel content site: a typed
// page tree (guides, categories, articles, countries, destinations), a
// structured block body per page, a legacy HTML importer, and the read-side
// composition that turns a page into TOC, markup and enrichment context.
package travelcms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/travel-cms/internal/blocks"
	"github.com/goliatone/travel-cms/internal/commands/pagescmd"
	"github.com/goliatone/travel-cms/internal/compose"
	"github.com/goliatone/travel-cms/internal/enrich"
	"github.com/goliatone/travel-cms/internal/generator"
	"github.com/goliatone/travel-cms/internal/importer"
	"github.com/goliatone/travel-cms/internal/logging"
	"github.com/goliatone/travel-cms/internal/logging/gologger"
	"github.com/goliatone/travel-cms/internal/media"
	"github.com/goliatone/travel-cms/internal/pages"
	"github.com/goliatone/travel-cms/internal/search"
	"github.com/goliatone/travel-cms/pkg/interfaces"
)

// Re-exported contracts for consumers of the module.
type (
	PageService  = pages.Service
	Node         = pages.Node
	Unit         = blocks.Unit
	TOCEntry     = compose.TOCEntry
	RenderedBody = compose.Result
	PageContext  = enrich.Context
)

// Import profiles accepted by ImportLegacyHTML.
const (
	ProfileFlat          = "flat"
	ProfileQuickSections = "quick_sections"
)

// Module is the top-level runtime façade.
type Module struct {
	cfg          Config
	db           *bun.DB
	provider     interfaces.LoggerProvider
	pages        pages.Service
	repoOverride pages.NodeRepository
	importer     *importer.Importer
	composer     *compose.Composer
	enricher     *enrich.Enricher
	generator    *generator.Generator
	media        interfaces.MediaProvider
	search       interfaces.SearchIndex
	renderer     interfaces.TemplateRenderer
}

// ErrNoTemplateRenderer reports a RenderPage call on a module wired without
// a template renderer.
var ErrNoTemplateRenderer = errors.New("travelcms: no template renderer configured")

// ModuleOption overrides default wiring.
type ModuleOption func(*Module)

// WithDB supplies an externally managed database handle (e.g. Postgres via
// NewPostgresDB). Without it, SQLite is opened from the config DSN.
func WithDB(db *bun.DB) ModuleOption {
	return func(m *Module) { m.db = db }
}

// WithLoggerProvider replaces the default go-logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) ModuleOption {
	return func(m *Module) {
		if provider != nil {
			m.provider = provider
		}
	}
}

// WithNodeRepository bypasses database wiring entirely, mostly for tests and
// embedded use.
func WithNodeRepository(repo pages.NodeRepository) ModuleOption {
	return func(m *Module) {
		m.repoOverride = repo
	}
}

// WithSearchIndex replaces the in-memory search index.
func WithSearchIndex(index interfaces.SearchIndex) ModuleOption {
	return func(m *Module) {
		if index != nil {
			m.search = index
		}
	}
}

// WithTemplateRenderer attaches the host's template layer, enabling RenderPage.
func WithTemplateRenderer(renderer interfaces.TemplateRenderer) ModuleOption {
	return func(m *Module) {
		m.renderer = renderer
	}
}

// WithMediaProvider replaces the static media resolver.
func WithMediaProvider(provider interfaces.MediaProvider) ModuleOption {
	return func(m *Module) {
		if provider != nil {
			m.media = provider
		}
	}
}

// New wires the module from configuration.
func New(cfg Config, opts ...ModuleOption) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("travelcms: configure logging: %w", err)
		}
		m.provider = provider
	}

	repo, err := m.nodeRepository()
	if err != nil {
		return nil, err
	}

	m.importer = importer.New(
		importer.WithLogger(logging.ImporterLogger(m.provider)),
	)
	m.pages = pages.NewService(
		repo,
		pages.WithLogger(logging.PagesLogger(m.provider)),
		pages.WithImporter(m.importer),
	)
	m.composer = compose.New(
		compose.WithLogger(logging.ComposeLogger(m.provider)),
	)
	m.enricher = enrich.New(
		m.pages,
		enrich.WithLogger(logging.EnrichLogger(m.provider)),
	)
	m.generator = generator.New(
		m.pages,
		cfg.BaseURL,
		generator.WithLogger(logging.GeneratorLogger(m.provider)),
	)
	if m.media == nil {
		m.media = media.NewStaticProvider(cfg.MediaBaseURL)
	}
	if m.search == nil {
		m.search = search.NewMemoryIndex()
	}
	return m, nil
}

// Commands bundles the message handlers bound to this module's services,
// ready to register on a dispatcher or call directly.
type Commands struct {
	ImportLegacyHTML *pagescmd.ImportLegacyHTMLHandler
	Publish          *pagescmd.PublishNodeHandler
	LinkDestination  *pagescmd.LinkDestinationHandler
}

// Commands constructs the command handler set.
func (m *Module) Commands() Commands {
	logger := logging.PagesLogger(m.provider)
	return Commands{
		ImportLegacyHTML: pagescmd.NewImportLegacyHTMLHandler(m.pages, logger),
		Publish:          pagescmd.NewPublishNodeHandler(m.pages, logger),
		LinkDestination:  pagescmd.NewLinkDestinationHandler(m.pages, logger),
	}
}

// Pages returns the page tree service.
func (m *Module) Pages() PageService { return m.pages }

// Media returns the configured media resolver.
func (m *Module) Media() interfaces.MediaProvider { return m.media }

// SearchIndex returns the configured search index.
func (m *Module) SearchIndex() interfaces.SearchIndex { return m.search }

// DB returns the underlying database handle, or nil when the module runs on
// an injected repository.
func (m *Module) DB() *bun.DB { return m.db }

// ResolveNode resolves a public URL path to its node. Unresolvable or
// non-visible paths return a not-found error (pages.IsNotFound).
func (m *Module) ResolveNode(ctx context.Context, path string) (*pages.Node, error) {
	return m.pages.Resolve(ctx, path)
}

// RenderBody composes a node body into its table of contents and markup.
func (m *Module) RenderBody(node *pages.Node) (RenderedBody, error) {
	if node == nil {
		return RenderedBody{}, nil
	}
	units, err := node.Units()
	if err != nil {
		return RenderedBody{}, err
	}
	return m.composer.Compose(units), nil
}

// EnrichContext computes breadcrumbs, related content, CTAs and FAQ
// structured data for a node.
func (m *Module) EnrichContext(ctx context.Context, node *pages.Node) (PageContext, error) {
	return m.enricher.Enrich(ctx, node)
}

// ImportLegacyHTML converts raw HTML into content units using the named
// profile. Unknown profiles fall back to flat.
func (m *Module) ImportLegacyHTML(html, profile string) []Unit {
	if profile == ProfileQuickSections {
		return m.importer.ImportQuickSections(html)
	}
	return m.importer.ImportFlat(html)
}

// RenderPage resolves a path, composes its body, enriches it, and hands the
// whole context to the configured template renderer.
func (m *Module) RenderPage(ctx context.Context, path, template string) (string, error) {
	if m.renderer == nil {
		return "", ErrNoTemplateRenderer
	}
	node, err := m.ResolveNode(ctx, path)
	if err != nil {
		return "", err
	}
	body, err := m.RenderBody(node)
	if err != nil {
		return "", err
	}
	pageCtx, err := m.EnrichContext(ctx, node)
	if err != nil {
		return "", err
	}
	data := map[string]any{
		"node":                node,
		"toc":                 body.TOC,
		"html":                body.HTML,
		"breadcrumbs":         pageCtx.Breadcrumbs,
		"related":             pageCtx.Related,
		"ctas":                pageCtx.CTAs,
		"ctas_source":         pageCtx.CTASource,
		"faq_jsonld":          pageCtx.FAQJSONLD,
		"listing":             pageCtx.Listing,
		"latest_destinations": pageCtx.LatestDestinations,
		"latest_articles":     pageCtx.LatestArticles,
	}
	return m.renderer.Render(ctx, template, data)
}

// Reindex rebuilds the search index from every publicly visible node. The
// previous index content for nodes that are still visible is replaced; nodes
// that disappeared since the last pass keep stale entries until the host
// removes them or swaps in a fresh index.
func (m *Module) Reindex(ctx context.Context) (int, error) {
	nodes, err := m.pages.ListVisible(ctx)
	if err != nil {
		return 0, err
	}
	indexed := 0
	for _, node := range nodes {
		fields := map[string]string{
			"title":       node.Title,
			"description": node.SEODescription,
			"tags":        strings.Join(node.Tags, " "),
		}
		if units, err := node.Units(); err == nil {
			fields["body"] = blocks.PlainText(units)
		}
		if err := m.search.Index(ctx, node.ID, fields); err != nil {
			return indexed, err
		}
		indexed++
	}
	return indexed, nil
}

// Search queries the configured index and loads the matching nodes in rank
// order. Hits whose node no longer exists are skipped.
func (m *Module) Search(ctx context.Context, query string) ([]*pages.Node, error) {
	hits, err := m.search.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	nodes := make([]*pages.Node, 0, len(hits))
	for _, hit := range hits {
		node, err := m.pages.Get(ctx, hit.NodeID)
		if err != nil {
			if pages.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// BuildSitemap renders sitemap.xml for the visible tree.
func (m *Module) BuildSitemap(ctx context.Context) (string, error) {
	return m.generator.BuildSitemap(ctx)
}

// BuildRobots renders robots.txt.
func (m *Module) BuildRobots() string {
	return m.generator.BuildRobots()
}

// Migrate applies the embedded schema. It is a no-op when the module runs on
// an injected repository.
func (m *Module) Migrate(ctx context.Context) error {
	if m.db == nil {
		return nil
	}
	return ApplyMigrations(ctx, m.db)
}

func (m *Module) nodeRepository() (pages.NodeRepository, error) {
	if m.repoOverride != nil {
		return m.repoOverride, nil
	}
	if m.db == nil {
		db, err := OpenSQLite(m.cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		m.db = db
	}
	if m.cfg.Cache.Enabled {
		cacheCfg := repocache.DefaultConfig()
		if m.cfg.Cache.TTL > 0 {
			cacheCfg.TTL = m.cfg.Cache.TTL
		}
		cacheService, err := repocache.NewCacheService(cacheCfg)
		if err == nil {
			return pages.NewBunNodeRepositoryWithCache(m.db, cacheService, repocache.NewDefaultKeySerializer()), nil
		}
	}
	return pages.NewBunNodeRepository(m.db), nil
}
