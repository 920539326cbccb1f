package pages

import "testing"

func TestSlugifyTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"¿Qué Hacer?", "que-hacer"},
		{"Playas del Caribe", "playas-del-caribe"},
		{"  Guías   de  Viaje  ", "guias-de-viaje"},
		{"", "item"},
		{"???", "item"},
	}
	for _, tc := range cases {
		if got := SlugifyTitle(tc.title); got != tc.want {
			t.Fatalf("SlugifyTitle(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestChildSlugPrefersExplicitSlug(t *testing.T) {
	got := ChildSlug("Mi Slug", "Otro Título", nil)
	if got != "mi-slug" {
		t.Fatalf("expected explicit slug to win, got %q", got)
	}
}

func TestChildSlugDisambiguatesAgainstSiblings(t *testing.T) {
	siblings := []string{"que-hacer", "donde-dormir"}
	got := ChildSlug("", "¿Qué Hacer?", siblings)
	if got != "que-hacer-2" {
		t.Fatalf("expected que-hacer-2, got %q", got)
	}

	siblings = append(siblings, got)
	got = ChildSlug("", "¿Qué Hacer?", siblings)
	if got != "que-hacer-3" {
		t.Fatalf("expected que-hacer-3, got %q", got)
	}
}

func TestChildSlugIsDeterministic(t *testing.T) {
	first := ChildSlug("", "Cómo Llegar", []string{"intro"})
	second := ChildSlug("", "Cómo Llegar", []string{"intro"})
	if first != second {
		t.Fatalf("expected deterministic slugs, got %q and %q", first, second)
	}
}
