// Package compose turns an ordered body of content units into its rendered
// markup plus a table of contents. Every heading-bearing unit contributes
// exactly one TOC entry and one anchored heading element, in body order,
// sharing a single collision-free anchor namespace per composition pass.
package compose

import (
	"strings"

	"github.com/goliatone/travel-cms/internal/blocks"
	"github.com/goliatone/travel-cms/internal/logging"
	"github.com/goliatone/travel-cms/internal/slugs"
	"github.com/goliatone/travel-cms/pkg/interfaces"
)

// anchorFallback is used when a title slugifies to nothing.
const anchorFallback = "seccion"

// TOCEntry is one table-of-contents item.
type TOCEntry struct {
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
	Level  int    `json:"level"`
}

// Result pairs the composed markup with its table of contents.
type Result struct {
	TOC  []TOCEntry `json:"toc"`
	HTML string     `json:"html"`
}

// Composer renders bodies. It is stateless; anchors are scoped to one
// Compose call, never shared across pages.
type Composer struct {
	logger interfaces.Logger
}

// Option customises composer construction.
type Option func(*Composer)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a composer.
func New(opts ...Option) *Composer {
	c := &Composer{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose renders the body. An empty body yields an empty TOC and empty
// markup, never an error.
func (c *Composer) Compose(units []blocks.Unit) Result {
	if len(units) == 0 {
		return Result{}
	}

	counter := slugs.NewCounter()
	var toc []TOCEntry
	var parts []string

	appendEntry := func(title string, level int) string {
		anchor := counter.Assign(slugs.Normalize(title, anchorFallback))
		toc = append(toc, TOCEntry{Title: title, Anchor: anchor, Level: level})
		return anchor
	}

	for _, unit := range units {
		switch unit.Type {
		case blocks.TypeHeading:
			if unit.Heading == nil {
				continue
			}
			title := strings.TrimSpace(unit.Heading.Title)
			if title == "" {
				continue
			}
			parts = append(parts, blocks.RenderHeading(*unit.Heading, appendEntry(title, 2)))

		case blocks.TypeQuickSection:
			if unit.QuickSection == nil {
				continue
			}
			anchor := ""
			if title := strings.TrimSpace(unit.QuickSection.Title); title != "" {
				anchor = appendEntry(title, 2)
			}
			parts = append(parts, blocks.RenderQuickSection(*unit.QuickSection, anchor))

		case blocks.TypeQuickSectionGroup:
			if unit.QuickSectionGroup == nil {
				continue
			}
			parts = append(parts, c.composeGroup(*unit.QuickSectionGroup, appendEntry))

		case blocks.TypeRichText:
			if unit.RichText == nil {
				continue
			}
			rewritten, found := AnchorEmbeddedHeadings(unit.RichText.HTML, func(title string) string {
				return appendEntry(title, 2)
			})
			if !found {
				rewritten = unit.RichText.HTML
			}
			parts = append(parts, blocks.Render(blocks.Unit{
				Type:     blocks.TypeRichText,
				RichText: &blocks.RichText{HTML: rewritten},
			}))

		default:
			parts = append(parts, blocks.Render(unit))
		}
	}

	html := strings.Join(parts, "\n")
	c.logger.Debug("body composed", "units", len(units), "toc_entries", len(toc))
	return Result{TOC: toc, HTML: html}
}

// composeGroup renders a quick-section group. A titled group contributes its
// own entry and nests its sections one level deeper.
func (c *Composer) composeGroup(group blocks.QuickSectionGroup, appendEntry func(string, int) string) string {
	sectionLevel := 2
	var b strings.Builder
	b.WriteString(`<section class="block block-quick-sections">`)
	if title := strings.TrimSpace(group.Title); title != "" {
		anchor := appendEntry(title, 2)
		b.WriteString(`<h2 id="` + anchor + `">` + escape(title) + `</h2>`)
		sectionLevel = 3
	}
	for _, section := range group.Sections {
		anchor := ""
		if title := strings.TrimSpace(section.Title); title != "" {
			anchor = appendEntry(title, sectionLevel)
		}
		b.WriteString(blocks.RenderQuickSection(section, anchor))
	}
	b.WriteString(`</section>`)
	return b.String()
}
