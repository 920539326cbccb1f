package enrich

import (
	"context"
	"sort"

	"github.com/goliatone/travel-cms/internal/pages"
)

// Related computes up to six related nodes in two tiers: tag-overlap ranking
// first (shared-tag count descending, then recency), then visible siblings
// to fill remaining slots. The result never contains the node itself or
// duplicates.
func (e *Enricher) Related(ctx context.Context, node *pages.Node) ([]*pages.Node, error) {
	selected := make([]*pages.Node, 0, relatedLimit)
	seen := map[string]struct{}{node.ID.String(): {}}

	if len(node.Tags) > 0 {
		candidates, err := e.pages.ListVisible(ctx, node.Kind)
		if err != nil {
			return nil, err
		}
		for _, match := range rankByTagOverlap(node, candidates) {
			if len(selected) == relatedLimit {
				break
			}
			if _, dup := seen[match.ID.String()]; dup {
				continue
			}
			seen[match.ID.String()] = struct{}{}
			selected = append(selected, match)
		}
	}

	if len(selected) < relatedLimit {
		siblings, err := e.pages.Siblings(ctx, node.ID)
		if err != nil {
			return selected, err
		}
		visible := siblings[:0]
		for _, sibling := range siblings {
			if sibling.IsPubliclyVisible() {
				visible = append(visible, sibling)
			}
		}
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].PublishedOrder().After(visible[j].PublishedOrder())
		})
		for _, sibling := range visible {
			if len(selected) == relatedLimit {
				break
			}
			if _, dup := seen[sibling.ID.String()]; dup {
				continue
			}
			seen[sibling.ID.String()] = struct{}{}
			selected = append(selected, sibling)
		}
	}

	return selected, nil
}

// rankByTagOverlap orders candidates sharing at least one tag with node by
// shared-tag count descending, recency as tiebreaker.
func rankByTagOverlap(node *pages.Node, candidates []*pages.Node) []*pages.Node {
	type scored struct {
		node   *pages.Node
		shared int
	}
	var matches []scored
	for _, candidate := range candidates {
		if candidate.ID == node.ID {
			continue
		}
		shared := sharedTagCount(node, candidate)
		if shared == 0 {
			continue
		}
		matches = append(matches, scored{node: candidate, shared: shared})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].shared != matches[j].shared {
			return matches[i].shared > matches[j].shared
		}
		return matches[i].node.PublishedOrder().After(matches[j].node.PublishedOrder())
	})
	out := make([]*pages.Node, len(matches))
	for i, match := range matches {
		out[i] = match.node
	}
	return out
}

func sharedTagCount(a, b *pages.Node) int {
	count := 0
	for _, tag := range a.Tags {
		if b.HasTag(tag) {
			count++
		}
	}
	return count
}
