package compose

import (
	"strings"
	"testing"

	"github.com/goliatone/travel-cms/internal/blocks"
)

func heading(title string) blocks.Unit {
	return blocks.Unit{Type: blocks.TypeHeading, Heading: &blocks.Heading{Title: title}}
}

func richText(html string) blocks.Unit {
	return blocks.Unit{Type: blocks.TypeRichText, RichText: &blocks.RichText{HTML: html}}
}

func quickSection(title, body string) blocks.Unit {
	return blocks.Unit{Type: blocks.TypeQuickSection, QuickSection: &blocks.QuickSection{Title: title, BodyHTML: body}}
}

func TestComposeEmptyBody(t *testing.T) {
	c := New()
	result := c.Compose(nil)
	if len(result.TOC) != 0 || result.HTML != "" {
		t.Fatalf("empty body should compose empty, got %+v", result)
	}
}

func TestComposeHeadingsInBodyOrder(t *testing.T) {
	c := New()
	result := c.Compose([]blocks.Unit{
		heading("Cómo Llegar"),
		richText("<p>texto</p>"),
		heading("Dónde Dormir"),
		quickSection("Playas", "<p>cuerpo</p>"),
	})

	if len(result.TOC) != 3 {
		t.Fatalf("expected 3 TOC entries, got %d: %+v", len(result.TOC), result.TOC)
	}
	wantAnchors := []string{"como-llegar", "donde-dormir", "playas"}
	for i, want := range wantAnchors {
		if result.TOC[i].Anchor != want {
			t.Fatalf("TOC[%d] anchor = %q, want %q", i, result.TOC[i].Anchor, want)
		}
	}
	for _, entry := range result.TOC {
		if !strings.Contains(result.HTML, `id="`+entry.Anchor+`"`) {
			t.Fatalf("anchor %q missing from markup", entry.Anchor)
		}
	}
}

func TestComposeDisambiguatesDuplicateAnchors(t *testing.T) {
	c := New()
	result := c.Compose([]blocks.Unit{
		heading("Intro"),
		heading("Intro"),
		heading("Intro"),
	})

	anchors := make([]string, len(result.TOC))
	for i, entry := range result.TOC {
		anchors[i] = entry.Anchor
	}
	want := []string{"intro", "intro-2", "intro-3"}
	for i := range want {
		if anchors[i] != want[i] {
			t.Fatalf("anchors = %v, want %v", anchors, want)
		}
	}
}

func TestComposeAnchorNamespaceIsPerPass(t *testing.T) {
	c := New()
	body := []blocks.Unit{heading("Intro")}
	first := c.Compose(body)
	second := c.Compose(body)
	if first.TOC[0].Anchor != "intro" || second.TOC[0].Anchor != "intro" {
		t.Fatalf("anchors leaked across passes: %q / %q", first.TOC[0].Anchor, second.TOC[0].Anchor)
	}
}

func TestComposePromotesRichTextHeadings(t *testing.T) {
	c := New()
	result := c.Compose([]blocks.Unit{
		richText("<h2>Intro</h2><p>a</p><h2>Intro</h2><p>b</p>"),
	})

	if len(result.TOC) != 2 {
		t.Fatalf("expected 2 TOC entries from embedded headings, got %d", len(result.TOC))
	}
	if result.TOC[0].Anchor != "intro" || result.TOC[1].Anchor != "intro-2" {
		t.Fatalf("unexpected anchors: %+v", result.TOC)
	}
	if !strings.Contains(result.HTML, `<h2 id="intro">`) || !strings.Contains(result.HTML, `<h2 id="intro-2">`) {
		t.Fatalf("rewritten markup missing anchored headings: %s", result.HTML)
	}
}

func TestComposeUnifiedAnchorNamespace(t *testing.T) {
	// A structured heading and an embedded rich-text h2 with the same title
	// share one namespace: both appear, disambiguated.
	c := New()
	result := c.Compose([]blocks.Unit{
		heading("Consejos"),
		richText("<h2>Consejos</h2><p>más</p>"),
	})

	if len(result.TOC) != 2 {
		t.Fatalf("expected 2 entries, got %+v", result.TOC)
	}
	if result.TOC[0].Anchor != "consejos" || result.TOC[1].Anchor != "consejos-2" {
		t.Fatalf("namespace not unified: %+v", result.TOC)
	}
}

func TestComposeQuickSectionTitleEmittedOnce(t *testing.T) {
	c := New()
	result := c.Compose([]blocks.Unit{quickSection("Playas", "<p>cuerpo</p>")})

	if got := strings.Count(result.HTML, "Playas"); got != 1 {
		t.Fatalf("section title should appear exactly once, got %d in %s", got, result.HTML)
	}
	if !strings.Contains(result.HTML, `<h2 id="playas">Playas</h2>`) {
		t.Fatalf("anchored section heading missing: %s", result.HTML)
	}
	if !strings.Contains(result.HTML, "<p>cuerpo</p>") {
		t.Fatalf("section body missing: %s", result.HTML)
	}
}

func TestComposeQuickSectionGroup(t *testing.T) {
	c := New()
	group := blocks.Unit{
		Type: blocks.TypeQuickSectionGroup,
		QuickSectionGroup: &blocks.QuickSectionGroup{
			Title: "Imperdibles",
			Sections: []blocks.QuickSection{
				{Title: "Playas", BodyHTML: "<p>a</p>"},
				{Title: "Museos", BodyHTML: "<p>b</p>"},
			},
		},
	}
	result := c.Compose([]blocks.Unit{group})

	if len(result.TOC) != 3 {
		t.Fatalf("expected group + 2 sections in TOC, got %+v", result.TOC)
	}
	if result.TOC[0].Level != 2 || result.TOC[1].Level != 3 || result.TOC[2].Level != 3 {
		t.Fatalf("unexpected levels: %+v", result.TOC)
	}
}

func TestComposeNonHeadingUnitsSkipTOC(t *testing.T) {
	c := New()
	result := c.Compose([]blocks.Unit{
		{Type: blocks.TypeImage, Image: &blocks.Image{Ref: "foto.jpg"}},
		{Type: blocks.TypeCTA, CTA: &blocks.CTAButton{Text: "Reservar", URL: "https://example.com"}},
	})
	if len(result.TOC) != 0 {
		t.Fatalf("media units must not enter the TOC: %+v", result.TOC)
	}
	if !strings.Contains(result.HTML, "foto.jpg") || !strings.Contains(result.HTML, "Reservar") {
		t.Fatalf("unit markup missing: %s", result.HTML)
	}
}

func TestAnchorEmbeddedHeadingsLeavesPlainMarkupUntouched(t *testing.T) {
	const fragment = "<p>sin títulos</p>"
	got, found := AnchorEmbeddedHeadings(fragment, func(string) string { return "x" })
	if found || got != fragment {
		t.Fatalf("expected untouched markup, got found=%v %q", found, got)
	}
}
