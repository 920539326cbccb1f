package importer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/travel-cms/internal/blocks"
)

// FrontMatter carries the metadata block of a markdown source document used
// by seed and migration tooling.
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	Description string   `yaml:"description"`
	Intro       string   `yaml:"intro"`
	HeroImage   string   `yaml:"hero_image"`
	Tags        []string `yaml:"tags"`
	Live        bool     `yaml:"live"`
}

// Document is a parsed markdown source: its metadata plus the content units
// derived from the rendered body.
type Document struct {
	Meta  FrontMatter
	Units []blocks.Unit
}

// ParseMarkdown splits the frontmatter off a markdown source, renders the
// remainder to HTML and imports it with the flat profile. Frontmatter errors
// are the only hard failure; body conversion inherits the importer's
// fail-soft behaviour.
func (i *Importer) ParseMarkdown(source []byte) (Document, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Document{}, fmt.Errorf("importer: parse frontmatter: %w", err)
	}

	rendered, err := renderMarkdown(body)
	if err != nil {
		return Document{}, fmt.Errorf("importer: render markdown: %w", err)
	}

	return Document{
		Meta:  meta,
		Units: i.ImportFlat(rendered),
	}, nil
}

func renderMarkdown(body []byte) (string, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	var buf strings.Builder
	if err := engine.Convert(body, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
