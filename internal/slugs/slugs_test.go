package slugs

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in       string
		fallback string
		want     string
	}{
		{"¿Qué Hacer?", "x", "que-hacer"},
		{"Dónde Dormir", "x", "donde-dormir"},
		{"Cómo Llegar", "x", "como-llegar"},
		{"Guías", "x", "guias"},
		{"Señal de Año Nuevo", "x", "senal-de-ano-nuevo"},
		{"  Playas   del  Caribe ", "x", "playas-del-caribe"},
		{"!!!", "seccion", "seccion"},
		{"", "seccion", "seccion"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in, tc.fallback); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTruncates(t *testing.T) {
	long := ""
	for i := 0; i < 20; i++ {
		long += "palabra "
	}
	got := Normalize(long, "x")
	if len(got) > 60 {
		t.Fatalf("Normalize produced %d chars, max is 60", len(got))
	}
	if got[len(got)-1] == '-' {
		t.Fatalf("truncated slug ends with hyphen: %q", got)
	}
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"que-hacer": true, "que-hacer-2": true}
	got := Unique("que-hacer", func(s string) bool { return taken[s] })
	if got != "que-hacer-3" {
		t.Fatalf("Unique = %q, want que-hacer-3", got)
	}
	if got := Unique("libre", func(s string) bool { return taken[s] }); got != "libre" {
		t.Fatalf("Unique on free base = %q, want libre", got)
	}
}

func TestCounterAssign(t *testing.T) {
	c := NewCounter()
	seq := []string{c.Assign("intro"), c.Assign("intro"), c.Assign("intro"), c.Assign("mapa")}
	want := []string{"intro", "intro-2", "intro-3", "mapa"}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("assign %d = %q, want %q", i, seq[i], want[i])
		}
	}
}

func TestCounterAssignLiteralSuffixCollision(t *testing.T) {
	c := NewCounter()
	seq := []string{c.Assign("intro"), c.Assign("intro-2"), c.Assign("intro")}
	seen := map[string]bool{}
	for i, anchor := range seq {
		if seen[anchor] {
			t.Fatalf("assign %d reissued anchor %q (sequence %v)", i, anchor, seq)
		}
		seen[anchor] = true
	}
	if seq[2] != "intro-3" {
		t.Fatalf("expected the second intro pushed to intro-3, got %q", seq[2])
	}
}
