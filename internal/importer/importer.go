// Package importer converts legacy HTML fragments into ordered content
// units. It exists for migration: externally-authored markup gets pasted into
// a staging field and turned into structured blocks on save.
//
// The importer never fails. Messy markup degrades into the nearest text
// buffer or is skipped, so a migration is never blocked by bad source HTML.
package importer

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/travel-cms/internal/blocks"
	"github.com/goliatone/travel-cms/internal/logging"
	"github.com/goliatone/travel-cms/pkg/interfaces"
)

// Importer parses legacy HTML into content units using one of two profiles:
// flat (articles) or quick-section (destination guides).
type Importer struct {
	logger interfaces.Logger
}

// Option customises importer construction.
type Option func(*Importer)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New builds an importer.
func New(opts ...Option) *Importer {
	imp := &Importer{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// ImportFlat converts a fragment with the flat profile: every h2 becomes a
// Heading unit, text between boundaries collapses into rich text units,
// images become unresolved Image units and iframes are classified by URL.
func (i *Importer) ImportFlat(fragment string) []blocks.Unit {
	nodes := parseFragment(fragment)
	state := &flatState{}
	for _, node := range nodes {
		walkBlocks(node, state)
	}
	state.flush()
	logging.WithImportContext(i.logger, "flat").
		Debug("legacy html imported", "units", len(state.units))
	return state.units
}

// ImportQuickSections converts a fragment with the quick-section profile:
// every h2 opens a QuickSection, following text accumulates into its body
// and the first image per section becomes its inline image placeholder.
// Content before the first h2 becomes a leading rich text unit.
func (i *Importer) ImportQuickSections(fragment string) []blocks.Unit {
	nodes := parseFragment(fragment)
	state := &quickState{}
	for _, node := range nodes {
		walkBlocks(node, state)
	}
	state.flush()
	logging.WithImportContext(i.logger, "quick_section").
		Debug("legacy html imported", "units", len(state.units))
	return state.units
}

// blockSink receives structural events in document order.
type blockSink interface {
	OnHeading(text string)
	OnText(html string)
	OnImage(src, alt string)
	OnEmbed(src, title string)
}

// walkBlocks visits block-level elements in document order, descending
// through wrapper elements and dispatching content to the sink.
func walkBlocks(n *html.Node, sink blockSink) {
	if n.Type != html.ElementNode {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				sink.OnText("<p>" + html.EscapeString(text) + "</p>")
			}
		}
		return
	}

	switch n.DataAtom {
	case atom.H1, atom.H2:
		sink.OnHeading(textContent(n))
	case atom.H3, atom.H4:
		if text := textContent(n); text != "" {
			sink.OnText(fmt.Sprintf("<h3>%s</h3>", html.EscapeString(text)))
		}
	case atom.P:
		emitParagraph(n, sink)
	case atom.Ul, atom.Ol, atom.Blockquote, atom.Table:
		if markup := renderNode(n); strings.TrimSpace(textContent(n)) != "" {
			sink.OnText(markup)
		}
	case atom.Img:
		if src := attrValue(n, "src"); src != "" {
			sink.OnImage(src, attrValue(n, "alt"))
		}
	case atom.Iframe:
		if src := attrValue(n, "src"); src != "" {
			sink.OnEmbed(src, attrValue(n, "title"))
		}
	case atom.Figure:
		// Figures carry their image plus an optional caption.
		if img := findElement(n, atom.Img); img != nil {
			caption := ""
			if fc := findElement(n, atom.Figcaption); fc != nil {
				caption = textContent(fc)
			}
			if src := attrValue(img, "src"); src != "" {
				alt := attrValue(img, "alt")
				if caption != "" {
					alt = caption
				}
				sink.OnImage(src, alt)
			}
		}
	case atom.Script, atom.Style, atom.Head:
		// skipped
	default:
		// Generic containers (div, section, article, body, ...) are
		// structural wrappers: descend.
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walkBlocks(child, sink)
		}
	}
}

// emitParagraph extracts media out of a paragraph and forwards the rest as
// text. Paragraphs with no text and no media are dropped.
func emitParagraph(n *html.Node, sink blockSink) {
	for _, img := range collectElements(n, atom.Img) {
		if src := attrValue(img, "src"); src != "" {
			sink.OnImage(src, attrValue(img, "alt"))
		}
	}
	for _, frame := range collectElements(n, atom.Iframe) {
		if src := attrValue(frame, "src"); src != "" {
			sink.OnEmbed(src, attrValue(frame, "title"))
		}
	}
	if strings.TrimSpace(textContent(n)) == "" {
		return
	}
	sink.OnText(renderWithoutMedia(n))
}

// flatState implements the flat (article) profile.
type flatState struct {
	units  []blocks.Unit
	buffer []string
}

func (s *flatState) OnHeading(text string) {
	s.flush()
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.units = append(s.units, blocks.Unit{
		Type:    blocks.TypeHeading,
		Heading: &blocks.Heading{Title: text},
	})
}

func (s *flatState) OnText(markup string) {
	s.buffer = append(s.buffer, markup)
}

func (s *flatState) OnImage(src, alt string) {
	s.flush()
	s.units = append(s.units, blocks.Unit{
		Type:  blocks.TypeImage,
		Image: &blocks.Image{Ref: src, Caption: alt},
	})
}

func (s *flatState) OnEmbed(src, title string) {
	unit, ok := classifyEmbed(src, title)
	if !ok {
		s.buffer = append(s.buffer, embedNote(src))
		return
	}
	s.flush()
	s.units = append(s.units, unit)
}

func (s *flatState) flush() {
	joined := strings.TrimSpace(strings.Join(s.buffer, "\n"))
	s.buffer = nil
	if joined == "" {
		return
	}
	s.units = append(s.units, blocks.Unit{
		Type:     blocks.TypeRichText,
		RichText: &blocks.RichText{HTML: joined},
	})
}

// quickState implements the quick-section (destination) profile.
type quickState struct {
	units   []blocks.Unit
	leading []string
	section *blocks.QuickSection
	body    []string
	// standalone units gathered while a section is open, emitted after it
	pending []blocks.Unit
}

func (s *quickState) OnHeading(text string) {
	s.flush()
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.section = &blocks.QuickSection{Title: text}
}

func (s *quickState) OnText(markup string) {
	if s.section != nil {
		s.body = append(s.body, markup)
		return
	}
	s.leading = append(s.leading, markup)
}

func (s *quickState) OnImage(src, alt string) {
	if s.section != nil && s.section.ImageRef == "" {
		s.section.ImageRef = src
		s.section.Caption = alt
		return
	}
	unit := blocks.Unit{
		Type:  blocks.TypeImage,
		Image: &blocks.Image{Ref: src, Caption: alt},
	}
	if s.section != nil {
		s.pending = append(s.pending, unit)
		return
	}
	s.flushLeading()
	s.units = append(s.units, unit)
}

func (s *quickState) OnEmbed(src, title string) {
	unit, ok := classifyEmbed(src, title)
	if !ok {
		s.OnText(embedNote(src))
		return
	}
	if s.section != nil {
		s.pending = append(s.pending, unit)
		return
	}
	s.flushLeading()
	s.units = append(s.units, unit)
}

func (s *quickState) flush() {
	s.flushLeading()
	if s.section == nil {
		s.body = nil
		return
	}
	s.section.BodyHTML = strings.TrimSpace(strings.Join(s.body, "\n"))
	s.units = append(s.units, blocks.Unit{
		Type:         blocks.TypeQuickSection,
		QuickSection: s.section,
	})
	s.units = append(s.units, s.pending...)
	s.section = nil
	s.body = nil
	s.pending = nil
}

func (s *quickState) flushLeading() {
	joined := strings.TrimSpace(strings.Join(s.leading, "\n"))
	s.leading = nil
	if joined == "" {
		return
	}
	s.units = append(s.units, blocks.Unit{
		Type:     blocks.TypeRichText,
		RichText: &blocks.RichText{HTML: joined},
	})
}

// classifyEmbed maps an iframe URL to a typed unit. Unknown providers report
// ok=false so the caller can degrade to an inline note.
func classifyEmbed(src, title string) (blocks.Unit, bool) {
	lowered := strings.ToLower(src)
	switch {
	case strings.Contains(lowered, "youtube.com") || strings.Contains(lowered, "youtu.be"):
		return blocks.Unit{
			Type:    blocks.TypeYouTube,
			YouTube: &blocks.YouTubeEmbed{Title: title, VideoRef: src},
		}, true
	case strings.Contains(lowered, "google.com/maps") || strings.Contains(lowered, "maps.google"):
		return blocks.Unit{
			Type:     blocks.TypeMapEmbed,
			MapEmbed: &blocks.MapEmbed{Title: title, MapURL: src},
		}, true
	default:
		return blocks.Unit{}, false
	}
}

func embedNote(src string) string {
	escaped := html.EscapeString(src)
	return fmt.Sprintf(`<p class="embed-note">Contenido embebido: <a href=%q rel="nofollow noopener">%s</a></p>`, escaped, escaped)
}

// parseFragment parses an HTML fragment into its top-level nodes.
func parseFragment(fragment string) []*html.Node {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil
	}
	return nodes
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			buf.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(collapseWhitespace(buf.String()))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, a); found != nil {
			return found
		}
	}
	return nil
}

func collectElements(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.DataAtom == a {
			out = append(out, node)
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

func renderNode(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// renderWithoutMedia renders a paragraph with img and iframe children
// removed, since those were already lifted into their own units.
func renderWithoutMedia(n *html.Node) string {
	clone := cloneWithoutMedia(n)
	if clone == nil {
		return ""
	}
	return renderNode(clone)
}

func cloneWithoutMedia(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && (n.DataAtom == atom.Img || n.DataAtom == atom.Iframe) {
		return nil
	}
	clone := &html.Node{
		Type:     n.Type,
		Data:     n.Data,
		DataAtom: n.DataAtom,
		Attr:     append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if copied := cloneWithoutMedia(child); copied != nil {
			clone.AppendChild(copied)
		}
	}
	return clone
}
