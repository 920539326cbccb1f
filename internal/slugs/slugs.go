// Package slugs centralises slug normalization so sibling page slugs and
// in-page heading anchors share one deterministic rule set.
package slugs

import (
	"strconv"
	"strings"

	slug "github.com/goliatone/go-slug"
)

const maxLength = 60

// Normalize converts free text into a lowercase ASCII hyphenated slug.
// Accented and punctuation-heavy titles ("¿Qué Hacer?") reduce to their plain
// form ("que-hacer"): go-slug's charmap transliterates accents (é→e, í→i),
// then the ASCII strip removes whatever the charmap left behind (¿, ?).
// The fallback is returned when nothing survives.
func Normalize(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	transliterated, err := slug.HashNormalize(trimmed)
	if err != nil || transliterated == "" {
		transliterated = trimmed
	}
	normalized := manualNormalize(transliterated)
	if len(normalized) > maxLength {
		normalized = strings.Trim(normalized[:maxLength], "-")
	}
	if normalized == "" {
		return fallback
	}
	return normalized
}

// Unique suffixes base with -2, -3, ... until taken reports it free. The
// result is deterministic for a given base and taken set.
func Unique(base string, taken func(string) bool) string {
	if taken == nil || !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// Counter assigns anchors within one composition pass: the first use of a
// base keeps the bare form, repeats get an incrementing numeric suffix. The
// issued set guards against a literal title colliding with a generated
// suffix ("Intro 2" between two "Intro" headings).
type Counter struct {
	used   map[string]int
	issued map[string]bool
}

// NewCounter returns an empty anchor counter.
func NewCounter() *Counter {
	return &Counter{
		used:   make(map[string]int),
		issued: make(map[string]bool),
	}
}

// Assign returns the collision-free anchor for base.
func (c *Counter) Assign(base string) string {
	c.used[base]++
	candidate := base
	if c.used[base] > 1 {
		candidate = base + "-" + strconv.Itoa(c.used[base])
	}
	for c.issued[candidate] {
		c.used[base]++
		candidate = base + "-" + strconv.Itoa(c.used[base])
	}
	c.issued[candidate] = true
	return candidate
}

// manualNormalize strips to ASCII alphanumerics and hyphenates runs of
// separators. It runs after transliteration, so any multibyte rune left at
// this point has no ASCII mapping and folds into a separator.
func manualNormalize(value string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
