package blocks

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags reduces an HTML fragment to whitespace-collapsed plain text.
func StripTags(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(tokenizer.Text())
			b.WriteByte(' ')
		}
	}
}

// PlainText flattens a body into searchable text: titles, captions, stripped
// rich text and quick-section bodies, FAQ questions and answers. Media refs
// and URLs are excluded.
func PlainText(units []Unit) string {
	var parts []string
	push := func(values ...string) {
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				parts = append(parts, v)
			}
		}
	}
	var section func(qs QuickSection)
	section = func(qs QuickSection) {
		push(qs.Title, qs.Subtitle, StripTags(qs.BodyHTML), qs.Caption, qs.CTAText)
	}

	for _, unit := range units {
		switch unit.Type {
		case TypeHeading:
			if unit.Heading != nil {
				push(unit.Heading.Title, unit.Heading.Subtitle)
			}
		case TypeRichText:
			if unit.RichText != nil {
				push(StripTags(unit.RichText.HTML))
			}
		case TypeImage:
			if unit.Image != nil {
				push(unit.Image.Caption)
			}
		case TypeGallery:
			if unit.Gallery != nil {
				push(unit.Gallery.Title)
			}
		case TypeHighlights:
			if unit.Highlights != nil {
				push(unit.Highlights.Title)
				for _, item := range unit.Highlights.Items {
					push(item.Title, item.Text)
				}
			}
		case TypeInfoGrid:
			if unit.InfoGrid != nil {
				push(unit.InfoGrid.Title)
				for _, row := range unit.InfoGrid.Rows {
					push(row.Label, row.Value)
				}
			}
		case TypeMapEmbed:
			if unit.MapEmbed != nil {
				push(unit.MapEmbed.Title)
			}
		case TypeYouTube:
			if unit.YouTube != nil {
				push(unit.YouTube.Title)
			}
		case TypeCTA:
			if unit.CTA != nil {
				push(unit.CTA.Text, unit.CTA.Note)
			}
		case TypeFAQ:
			if unit.FAQ != nil {
				push(unit.FAQ.Title)
				for _, item := range unit.FAQ.Items {
					push(item.Question, StripTags(item.Answer))
				}
			}
		case TypeQuickSection:
			if unit.QuickSection != nil {
				section(*unit.QuickSection)
			}
		case TypeQuickSectionGroup:
			if unit.QuickSectionGroup != nil {
				push(unit.QuickSectionGroup.Title)
				for _, qs := range unit.QuickSectionGroup.Sections {
					section(qs)
				}
			}
		}
	}
	return strings.Join(parts, " ")
}
