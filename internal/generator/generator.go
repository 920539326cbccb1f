// Package generator produces the crawl surface of a published site: a
// sitemap.xml covering every publicly reachable node and a matching
// robots.txt. Visibility is chain-based, so a hidden ancestor hides its
// whole subtree from the sitemap.
package generator

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/travel-cms/internal/logging"
	"github.com/goliatone/travel-cms/internal/pages"
	"github.com/goliatone/travel-cms/pkg/interfaces"
)

// Generator renders sitemap and robots output for one site.
type Generator struct {
	pages   pages.Service
	baseURL string
	logger  interfaces.Logger
	now     func() time.Time
}

// Option customises generator construction.
type Option func(*Generator)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithClock overrides the fallback lastmod time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// New builds a generator rooted at baseURL (scheme + host, no trailing
// slash required).
func New(svc pages.Service, baseURL string, opts ...Option) *Generator {
	g := &Generator{
		pages:   svc,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		logger:  logging.NoOp(),
		now:     time.Now,
	}
	if g.baseURL == "" {
		g.baseURL = "http://localhost"
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BuildSitemap walks the visible tree and renders the sitemap XML. A site
// without a visible home yields an empty urlset.
func (g *Generator) BuildSitemap(ctx context.Context) (string, error) {
	entries, err := g.collect(ctx)
	if err != nil {
		return "", err
	}
	g.logger.Info("sitemap built", "urls", len(entries))
	return renderSitemap(entries), nil
}

// BuildRobots renders robots.txt pointing at the sitemap.
func (g *Generator) BuildRobots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n\n")
	b.WriteString("Sitemap: " + g.baseURL + "/sitemap.xml\n")
	return b.String()
}

func (g *Generator) collect(ctx context.Context) ([]sitemapEntry, error) {
	home, err := g.pages.Resolve(ctx, "/")
	if err != nil {
		if pages.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []sitemapEntry
	var walk func(node *pages.Node, route string) error
	walk = func(node *pages.Node, route string) error {
		entries = append(entries, sitemapEntry{
			Location: g.baseURL + route,
			LastMod:  g.lastMod(node),
		})
		children, err := g.pages.Children(ctx, node.ID, true)
		if err != nil {
			return err
		}
		prefix := route
		if prefix == "/" {
			prefix = ""
		}
		for _, child := range children {
			if err := walk(child, prefix+"/"+child.Slug); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(home, "/"); err != nil {
		return nil, err
	}
	return entries, nil
}

func (g *Generator) lastMod(node *pages.Node) time.Time {
	if !node.UpdatedAt.IsZero() {
		return node.UpdatedAt
	}
	return g.now()
}
