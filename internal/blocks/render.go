package blocks

import (
	"fmt"
	"html"
	"strings"
)

// Render produces the markup fragment for a single unit. Heading-bearing
// units rendered through the composer get their anchored title emitted there;
// this standalone render leaves headings un-anchored.
func Render(u Unit) string {
	switch u.Type {
	case TypeHeading:
		if u.Heading == nil {
			return ""
		}
		return RenderHeading(*u.Heading, "")
	case TypeRichText:
		if u.RichText == nil {
			return ""
		}
		return renderRichText(u.RichText.HTML)
	case TypeImage:
		if u.Image == nil {
			return ""
		}
		return renderImage(*u.Image)
	case TypeGallery:
		if u.Gallery == nil {
			return ""
		}
		return renderGallery(*u.Gallery)
	case TypeHighlights:
		if u.Highlights == nil {
			return ""
		}
		return renderHighlights(*u.Highlights)
	case TypeInfoGrid:
		if u.InfoGrid == nil {
			return ""
		}
		return renderInfoGrid(*u.InfoGrid)
	case TypeMapEmbed:
		if u.MapEmbed == nil {
			return ""
		}
		return renderMapEmbed(*u.MapEmbed)
	case TypeYouTube:
		if u.YouTube == nil {
			return ""
		}
		return renderYouTube(*u.YouTube)
	case TypeCTA:
		if u.CTA == nil {
			return ""
		}
		return RenderCTA(*u.CTA)
	case TypeFAQ:
		if u.FAQ == nil {
			return ""
		}
		return renderFAQ(*u.FAQ)
	case TypeQuickSection:
		if u.QuickSection == nil {
			return ""
		}
		return RenderQuickSection(*u.QuickSection, "")
	case TypeQuickSectionGroup:
		if u.QuickSectionGroup == nil {
			return ""
		}
		var b strings.Builder
		for _, section := range u.QuickSectionGroup.Sections {
			b.WriteString(RenderQuickSection(section, ""))
		}
		return b.String()
	default:
		return ""
	}
}

// RenderHeading emits the anchored section title block. An empty anchor omits
// the id attribute.
func RenderHeading(h Heading, anchor string) string {
	title := strings.TrimSpace(h.Title)
	if title == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<section class="block block-title">`)
	writeH2(&b, title, anchor)
	if subtitle := strings.TrimSpace(h.Subtitle); subtitle != "" {
		b.WriteString(`<p class="muted">` + html.EscapeString(subtitle) + `</p>`)
	}
	b.WriteString(`</section>`)
	return b.String()
}

// RenderQuickSection emits the full quick-section block. The composer passes
// the assigned anchor; the section body itself never repeats the title, so
// the heading appears exactly once in the output.
func RenderQuickSection(qs QuickSection, anchor string) string {
	var b strings.Builder
	b.WriteString(`<section class="block block-quick-section">`)
	if title := strings.TrimSpace(qs.Title); title != "" {
		writeH2(&b, title, anchor)
	}
	b.WriteString(RenderQuickSectionBody(qs))
	b.WriteString(`</section>`)
	return b.String()
}

// RenderQuickSectionBody renders everything below the section title.
func RenderQuickSectionBody(qs QuickSection) string {
	var b strings.Builder
	if subtitle := strings.TrimSpace(qs.Subtitle); subtitle != "" {
		b.WriteString(`<p class="muted">` + html.EscapeString(subtitle) + `</p>`)
	}
	if body := strings.TrimSpace(qs.BodyHTML); body != "" {
		b.WriteString(`<div class="rich-text">` + body + `</div>`)
	}
	if qs.ImageRef != "" {
		b.WriteString(renderImage(Image{Ref: qs.ImageRef, Caption: qs.Caption}))
	}
	if text := strings.TrimSpace(qs.CTAText); text != "" && qs.CTAURL != "" {
		b.WriteString(RenderCTA(CTAButton{Text: text, URL: qs.CTAURL, Note: qs.CTANote}))
	}
	return b.String()
}

// RenderCTA emits one call-to-action button.
func RenderCTA(cta CTAButton) string {
	text := strings.TrimSpace(cta.Text)
	if text == "" || strings.TrimSpace(cta.URL) == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="block block-cta">`)
	b.WriteString(`<a class="btn" href="` + html.EscapeString(cta.URL) + `" rel="nofollow sponsored">`)
	b.WriteString(html.EscapeString(text))
	b.WriteString(`</a>`)
	if note := strings.TrimSpace(cta.Note); note != "" {
		b.WriteString(`<p class="muted">` + html.EscapeString(note) + `</p>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func renderRichText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return `<div class="block block-rich-text">` + raw + `</div>`
}

func renderImage(img Image) string {
	if img.Ref == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<figure class="block block-image">`)
	// The ref stays opaque here; media resolution happens in the host
	// template layer via the data attribute.
	b.WriteString(`<img data-image-ref="` + html.EscapeString(img.Ref) + `" alt="` + html.EscapeString(img.Caption) + `">`)
	if caption := strings.TrimSpace(img.Caption); caption != "" {
		b.WriteString(`<figcaption>` + html.EscapeString(caption) + `</figcaption>`)
	}
	b.WriteString(`</figure>`)
	return b.String()
}

func renderGallery(g Gallery) string {
	if len(g.Images) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<section class="block block-gallery">`)
	if title := strings.TrimSpace(g.Title); title != "" {
		b.WriteString(`<h3>` + html.EscapeString(title) + `</h3>`)
	}
	b.WriteString(`<div class="gallery-grid">`)
	for _, ref := range g.Images {
		if ref == "" {
			continue
		}
		b.WriteString(`<img data-image-ref="` + html.EscapeString(ref) + `" alt="">`)
	}
	b.WriteString(`</div></section>`)
	return b.String()
}

func renderHighlights(h Highlights) string {
	if len(h.Items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<section class="block block-highlights">`)
	if title := strings.TrimSpace(h.Title); title != "" {
		b.WriteString(`<h3>` + html.EscapeString(title) + `</h3>`)
	}
	b.WriteString(`<ul>`)
	for _, item := range h.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		b.WriteString(`<li><strong>` + html.EscapeString(title) + `</strong>`)
		if text := strings.TrimSpace(item.Text); text != "" {
			b.WriteString(` <span>` + html.EscapeString(text) + `</span>`)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul></section>`)
	return b.String()
}

func renderInfoGrid(g InfoGrid) string {
	if len(g.Rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<section class="block block-info-grid">`)
	if title := strings.TrimSpace(g.Title); title != "" {
		b.WriteString(`<h3>` + html.EscapeString(title) + `</h3>`)
	}
	b.WriteString(`<dl>`)
	for _, row := range g.Rows {
		if strings.TrimSpace(row.Label) == "" {
			continue
		}
		b.WriteString(`<dt>` + html.EscapeString(row.Label) + `</dt>`)
		b.WriteString(`<dd>` + html.EscapeString(row.Value) + `</dd>`)
	}
	b.WriteString(`</dl></section>`)
	return b.String()
}

func renderMapEmbed(m MapEmbed) string {
	url := strings.TrimSpace(m.MapURL)
	if url == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<section class="block block-map">`)
	if title := strings.TrimSpace(m.Title); title != "" {
		b.WriteString(`<h3>` + html.EscapeString(title) + `</h3>`)
	}
	b.WriteString(`<iframe src="` + html.EscapeString(url) + `" loading="lazy" allowfullscreen></iframe>`)
	b.WriteString(`</section>`)
	return b.String()
}

func renderYouTube(y YouTubeEmbed) string {
	src := videoEmbedURL(y.VideoRef)
	if src == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<section class="block block-youtube">`)
	if title := strings.TrimSpace(y.Title); title != "" {
		b.WriteString(`<h3>` + html.EscapeString(title) + `</h3>`)
	}
	b.WriteString(`<iframe src="` + html.EscapeString(src) + `" loading="lazy" allowfullscreen></iframe>`)
	b.WriteString(`</section>`)
	return b.String()
}

func renderFAQ(f FAQ) string {
	if len(f.Items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<section class="block block-faq">`)
	if title := strings.TrimSpace(f.Title); title != "" {
		b.WriteString(`<h3>` + html.EscapeString(title) + `</h3>`)
	}
	for _, item := range f.Items {
		question := strings.TrimSpace(item.Question)
		if question == "" {
			continue
		}
		b.WriteString(`<details><summary>` + html.EscapeString(question) + `</summary>`)
		b.WriteString(`<div class="rich-text">` + item.Answer + `</div>`)
		b.WriteString(`</details>`)
	}
	b.WriteString(`</section>`)
	return b.String()
}

func writeH2(b *strings.Builder, title, anchor string) {
	if anchor != "" {
		b.WriteString(`<h2 id="` + html.EscapeString(anchor) + `">`)
	} else {
		b.WriteString(`<h2>`)
	}
	b.WriteString(html.EscapeString(title))
	b.WriteString(`</h2>`)
}

// videoEmbedURL normalizes common YouTube URL shapes into the embed form.
// Unrecognised refs pass through untouched so other embed hosts keep working.
func videoEmbedURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if idx := strings.Index(ref, "watch?v="); idx >= 0 {
		id := ref[idx+len("watch?v="):]
		if amp := strings.IndexAny(id, "&#"); amp >= 0 {
			id = id[:amp]
		}
		return fmt.Sprintf("https://www.youtube.com/embed/%s", id)
	}
	if idx := strings.Index(ref, "youtu.be/"); idx >= 0 {
		id := strings.Trim(ref[idx+len("youtu.be/"):], "/")
		if q := strings.IndexAny(id, "?&#"); q >= 0 {
			id = id[:q]
		}
		return fmt.Sprintf("https://www.youtube.com/embed/%s", id)
	}
	return ref
}
