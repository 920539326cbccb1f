package pages

import (
	"strings"

	"github.com/goliatone/travel-cms/internal/slugs"
)

const slugFallback = "item"

// SlugifyTitle derives the base slug for a node title.
func SlugifyTitle(title string) string {
	return slugs.Normalize(title, slugFallback)
}

// ChildSlug produces a slug unique among the supplied sibling slugs,
// preferring the explicit slug over the title. Deterministic: for the same
// inputs the same value always comes back.
func ChildSlug(explicit, title string, siblings []string) string {
	base := strings.TrimSpace(explicit)
	if base != "" {
		base = slugs.Normalize(base, slugFallback)
	} else {
		base = SlugifyTitle(title)
	}

	taken := make(map[string]struct{}, len(siblings))
	for _, s := range siblings {
		taken[s] = struct{}{}
	}
	return slugs.Unique(base, func(candidate string) bool {
		_, exists := taken[candidate]
		return exists
	})
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
