package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type sitemapEntry struct {
	Location string
	LastMod  time.Time
}

func renderSitemap(entries []sitemapEntry) string {
	seen := map[string]struct{}{}
	unique := entries[:0]
	for _, entry := range entries {
		if _, dup := seen[entry.Location]; dup {
			continue
		}
		seen[entry.Location] = struct{}{}
		unique = append(unique, entry)
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].Location < unique[j].Location
	})

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range unique {
		b.WriteString("  <url>\n")
		b.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", entry.Location))
		if !entry.LastMod.IsZero() {
			b.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", entry.LastMod.UTC().Format(time.RFC3339)))
		}
		b.WriteString("  </url>\n")
	}
	b.WriteString("</urlset>\n")
	return b.String()
}
