package blocks

import (
	"strings"
	"testing"
)

func TestBodyRoundTrip(t *testing.T) {
	body := []Unit{
		{Type: TypeHeading, Heading: &Heading{Title: "Qué Hacer", Subtitle: "Lo esencial"}},
		{Type: TypeRichText, RichText: &RichText{HTML: "<p>Texto con <strong>énfasis</strong>.</p>"}},
		{Type: TypeImage, Image: &Image{Ref: "tulum/playa.jpg", Caption: "Playa Paraíso"}},
		{Type: TypeFAQ, FAQ: &FAQ{Items: []FAQItem{{Question: "¿Cuándo ir?", Answer: "<p>De noviembre a abril.</p>"}}}},
	}

	encoded, err := MarshalBody(body)
	if err != nil {
		t.Fatalf("MarshalBody: %v", err)
	}
	decoded, err := UnmarshalBody(encoded)
	if err != nil {
		t.Fatalf("UnmarshalBody: %v", err)
	}
	if len(decoded) != len(body) {
		t.Fatalf("round trip lost units: got %d, want %d", len(decoded), len(body))
	}
	if decoded[0].Heading == nil || decoded[0].Heading.Title != "Qué Hacer" {
		t.Fatalf("heading did not survive: %+v", decoded[0])
	}
	if decoded[3].FAQ == nil || decoded[3].FAQ.Items[0].Question != "¿Cuándo ir?" {
		t.Fatalf("faq did not survive: %+v", decoded[3])
	}
}

func TestMarshalBodyEmpty(t *testing.T) {
	encoded, err := MarshalBody(nil)
	if err != nil {
		t.Fatalf("MarshalBody(nil): %v", err)
	}
	if string(encoded) != "[]" {
		t.Fatalf("empty body encoded as %q, want []", encoded)
	}
}

func TestUnmarshalBodyDropsUnknownTypes(t *testing.T) {
	raw := `[
		{"type":"heading","value":{"title":"Intro"}},
		{"type":"carousel_3d","value":{"speed":9}},
		{"type":"rich_text","value":{"html":"<p>hola</p>"}}
	]`
	units, err := UnmarshalBody([]byte(raw))
	if err != nil {
		t.Fatalf("UnmarshalBody: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2 (unknown tag dropped)", len(units))
	}
	if units[0].Type != TypeHeading || units[1].Type != TypeRichText {
		t.Fatalf("wrong survivors: %v, %v", units[0].Type, units[1].Type)
	}
}

func TestUnmarshalBodyNull(t *testing.T) {
	for _, raw := range []string{"", "null", "  "} {
		units, err := UnmarshalBody([]byte(raw))
		if err != nil {
			t.Fatalf("UnmarshalBody(%q): %v", raw, err)
		}
		if units != nil {
			t.Fatalf("UnmarshalBody(%q) = %v, want nil", raw, units)
		}
	}
}

func TestValidateBodyJSON(t *testing.T) {
	valid := `[{"type":"heading","value":{"title":"Intro"}},{"type":"map","value":null}]`
	if err := ValidateBodyJSON([]byte(valid)); err != nil {
		t.Fatalf("valid body rejected: %v", err)
	}
	if err := ValidateBodyJSON(nil); err != nil {
		t.Fatalf("empty body rejected: %v", err)
	}

	invalid := []string{
		`{"type":"heading"}`,                         // not an array
		`[{"value":{"title":"sin tipo"}}]`,           // missing type
		`[{"type":"heading","extra":true}]`,          // unknown envelope key
		`[{"type":"heading","value":"not-object"}]`,  // wrong value shape
		`[{"type":"heading","value":{"title":"x"}}`,  // malformed json
	}
	for _, raw := range invalid {
		if err := ValidateBodyJSON([]byte(raw)); err == nil {
			t.Fatalf("invalid body accepted: %s", raw)
		}
	}
}

func TestRenderHeadingAnchor(t *testing.T) {
	got := RenderHeading(Heading{Title: "Qué Hacer"}, "que-hacer")
	if !strings.Contains(got, `<h2 id="que-hacer">Qué Hacer</h2>`) {
		t.Fatalf("anchored heading missing: %s", got)
	}
	bare := RenderHeading(Heading{Title: "Qué Hacer"}, "")
	if strings.Contains(bare, "id=") {
		t.Fatalf("bare heading carries an id: %s", bare)
	}
}

func TestRenderQuickSectionTitleOnce(t *testing.T) {
	qs := QuickSection{Title: "Dónde Dormir", BodyHTML: "<p>Hoteles y hostales.</p>"}
	got := RenderQuickSection(qs, "donde-dormir")
	if n := strings.Count(got, "Dónde Dormir"); n != 1 {
		t.Fatalf("section title appears %d times, want 1: %s", n, got)
	}
	if !strings.Contains(got, `<h2 id="donde-dormir">`) {
		t.Fatalf("anchor missing: %s", got)
	}
	if !strings.Contains(RenderQuickSectionBody(qs), "Hoteles") {
		t.Fatalf("body missing")
	}
}

func TestRenderCTAEscapes(t *testing.T) {
	got := RenderCTA(CTAButton{Text: "Ver <tours>", URL: "https://example.com/?a=1&b=2"})
	if !strings.Contains(got, "Ver &lt;tours&gt;") {
		t.Fatalf("text not escaped: %s", got)
	}
	if !strings.Contains(got, `rel="nofollow sponsored"`) {
		t.Fatalf("rel attributes missing: %s", got)
	}
	if RenderCTA(CTAButton{Text: "Sin enlace"}) != "" {
		t.Fatalf("cta without url should render nothing")
	}
}

func TestRenderImageKeepsRefOpaque(t *testing.T) {
	got := Render(Unit{Type: TypeImage, Image: &Image{Ref: "cancun/hero.jpg", Caption: "Vista aérea"}})
	if !strings.Contains(got, `data-image-ref="cancun/hero.jpg"`) {
		t.Fatalf("image ref attribute missing: %s", got)
	}
	if !strings.Contains(got, "<figcaption>Vista aérea</figcaption>") {
		t.Fatalf("caption missing: %s", got)
	}
}

func TestVideoEmbedURL(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=abc123&t=9s": "https://www.youtube.com/embed/abc123",
		"https://youtu.be/abc123?si=xyz":              "https://www.youtube.com/embed/abc123",
		"https://www.youtube.com/embed/abc123":        "https://www.youtube.com/embed/abc123",
	}
	for in, want := range cases {
		if got := videoEmbedURL(in); got != want {
			t.Fatalf("videoEmbedURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlainText(t *testing.T) {
	units := []Unit{
		{Type: TypeHeading, Heading: &Heading{Title: "Qué Hacer"}},
		{Type: TypeRichText, RichText: &RichText{HTML: "<p>Cenotes y <em>ruinas</em>.</p>"}},
		{Type: TypeImage, Image: &Image{Ref: "x.jpg", Caption: "Gran Cenote"}},
		{Type: TypeQuickSectionGroup, QuickSectionGroup: &QuickSectionGroup{
			Title:    "Guía rápida",
			Sections: []QuickSection{{Title: "Transporte", BodyHTML: "<p>Colectivos en la 307.</p>"}},
		}},
	}
	got := PlainText(units)
	for _, want := range []string{"Qué Hacer", "Cenotes y ruinas", "Gran Cenote", "Transporte", "Colectivos en la 307."} {
		if !strings.Contains(got, want) {
			t.Fatalf("PlainText missing %q: %s", want, got)
		}
	}
	if strings.Contains(got, "x.jpg") {
		t.Fatalf("media ref leaked into text: %s", got)
	}
}
