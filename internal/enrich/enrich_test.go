package enrich

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/travel-cms/internal/blocks"
	"github.com/goliatone/travel-cms/internal/pages"
)

type fixture struct {
	svc   pages.Service
	now   time.Time
	clock func() time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	repo := pages.NewMemoryNodeRepository()
	f.svc = pages.NewService(repo, pages.WithClock(func() time.Time {
		// each call advances the clock so publish order is deterministic
		f.now = f.now.Add(time.Minute)
		return f.now
	}))
	return f
}

func (f *fixture) create(t *testing.T, req pages.CreateNodeRequest) *pages.Node {
	t.Helper()
	node, err := f.svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create %q: %v", req.Title, err)
	}
	return node
}

// seedDestinations builds home > destinos > country with the given
// destinations underneath, all live and public.
func (f *fixture) seedDestinations(t *testing.T) (country *pages.Node) {
	t.Helper()
	home := f.create(t, pages.CreateNodeRequest{Kind: pages.KindHome, Title: "Home", Live: true, Public: true})
	index := f.create(t, pages.CreateNodeRequest{Kind: pages.KindDestinationsIndex, ParentID: &home.ID, Title: "Destinos", Live: true, Public: true})
	return f.create(t, pages.CreateNodeRequest{Kind: pages.KindCountry, ParentID: &index.ID, Title: "Argentina", Live: true, Public: true})
}

func (f *fixture) destination(t *testing.T, parent *pages.Node, title string, tags ...string) *pages.Node {
	t.Helper()
	return f.create(t, pages.CreateNodeRequest{
		Kind: pages.KindDestination, ParentID: &parent.ID,
		Title: title, Live: true, Public: true, Tags: tags,
	})
}

func TestRelatedTwoTierFill(t *testing.T) {
	f := newFixture(t)
	country := f.seedDestinations(t)

	subject := f.destination(t, country, "Bariloche", "montaña", "trekking")
	tagMatchA := f.destination(t, country, "El Chaltén", "montaña", "trekking")
	tagMatchB := f.destination(t, country, "Mendoza", "montaña")
	for _, title := range []string{"Salta", "Córdoba", "Ushuaia", "Rosario", "La Plata"} {
		f.destination(t, country, title)
	}

	enricher := New(f.svc)
	related, err := enricher.Related(context.Background(), subject)
	if err != nil {
		t.Fatalf("related: %v", err)
	}

	if len(related) != 6 {
		t.Fatalf("expected 6 related items, got %d", len(related))
	}
	// Tier 1: higher shared-tag count first.
	if related[0].ID != tagMatchA.ID {
		t.Fatalf("expected El Chaltén first (2 shared tags), got %s", related[0].Title)
	}
	if related[1].ID != tagMatchB.ID {
		t.Fatalf("expected Mendoza second (1 shared tag), got %s", related[1].Title)
	}
	// No duplicates, subject excluded.
	seen := map[uuid.UUID]struct{}{}
	for _, item := range related {
		if item.ID == subject.ID {
			t.Fatal("related list contains the node itself")
		}
		if _, dup := seen[item.ID]; dup {
			t.Fatalf("duplicate related item %s", item.Title)
		}
		seen[item.ID] = struct{}{}
	}
}

func TestRelatedSiblingFillPrefersRecency(t *testing.T) {
	f := newFixture(t)
	country := f.seedDestinations(t)
	subject := f.destination(t, country, "Bariloche")
	older := f.destination(t, country, "Salta")
	newer := f.destination(t, country, "Ushuaia")

	enricher := New(f.svc)
	related, err := enricher.Related(context.Background(), subject)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if len(related) != 2 {
		t.Fatalf("expected 2 siblings, got %d", len(related))
	}
	if related[0].ID != newer.ID || related[1].ID != older.ID {
		t.Fatalf("expected recency order [Ushuaia Salta], got [%s %s]", related[0].Title, related[1].Title)
	}
}

func TestRelatedSkipsHiddenSiblings(t *testing.T) {
	f := newFixture(t)
	country := f.seedDestinations(t)
	subject := f.destination(t, country, "Bariloche")
	f.create(t, pages.CreateNodeRequest{
		Kind: pages.KindDestination, ParentID: &country.ID,
		Title: "Borrador", Live: false, Public: true,
	})

	enricher := New(f.svc)
	related, err := enricher.Related(context.Background(), subject)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if len(related) != 0 {
		t.Fatalf("draft sibling leaked into related: %v", related)
	}
}

func TestSelectCTAsCompoundsAndDedupes(t *testing.T) {
	node := &pages.Node{Tags: []string{"playa", "ciudad", "presupuesto"}}
	ctas, source := SelectCTAs(node)

	if source != CTASourceAuto {
		t.Fatalf("expected auto source, got %q", source)
	}
	if len(ctas) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(ctas))
	}
	seen := map[[2]string]struct{}{}
	for _, cta := range ctas {
		key := [2]string{cta.URL, cta.ButtonText}
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate CTA %v", key)
		}
		seen[key] = struct{}{}
	}
	if ctas[0].ButtonText != "Ver alojamientos" {
		t.Fatalf("rule order not preserved: %+v", ctas[0])
	}
}

func TestSelectCTAsFallbackWhenNoRuleMatches(t *testing.T) {
	node := &pages.Node{Tags: []string{"desierto"}}
	ctas, source := SelectCTAs(node)
	if source != CTASourceAuto {
		t.Fatalf("expected auto source, got %q", source)
	}
	if len(ctas) != 2 {
		t.Fatalf("expected 2 fallback entries, got %d", len(ctas))
	}
	if ctas[0].URL != "https://www.booking.com/" || ctas[1].URL != "https://www.assistcard.com/" {
		t.Fatalf("unexpected fallback: %+v", ctas)
	}
}

func TestSelectCTAsManualOverrideWinsVerbatim(t *testing.T) {
	node := &pages.Node{
		Tags: []string{"playa"},
		CTAOverride: []blocks.CTAButton{
			{Text: "Reservar ya", URL: "https://example.com/promo"},
		},
	}
	ctas, source := SelectCTAs(node)
	if source != CTASourceManual {
		t.Fatalf("expected manual source, got %q", source)
	}
	if len(ctas) != 1 || ctas[0].ButtonText != "Reservar ya" {
		t.Fatalf("override not verbatim: %+v", ctas)
	}
}

func TestEnrichBreadcrumbsExcludeHome(t *testing.T) {
	f := newFixture(t)
	country := f.seedDestinations(t)
	destination := f.destination(t, country, "Bariloche")

	enricher := New(f.svc)
	ctx, err := enricher.Enrich(context.Background(), destination)
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if len(ctx.Breadcrumbs) != 2 {
		t.Fatalf("expected [Destinos Argentina], got %d crumbs", len(ctx.Breadcrumbs))
	}
	if ctx.Breadcrumbs[0].Title != "Destinos" || ctx.Breadcrumbs[1].Title != "Argentina" {
		t.Fatalf("unexpected crumb order: %s, %s", ctx.Breadcrumbs[0].Title, ctx.Breadcrumbs[1].Title)
	}
}

func TestFAQJSONLD(t *testing.T) {
	node := &pages.Node{
		FAQ: []blocks.FAQ{{
			Items: []blocks.FAQItem{
				{Question: "¿Hace falta visa?", Answer: "<p>No para <strong>estadías cortas</strong>.</p>"},
				{Question: "¿Sin respuesta?", Answer: "<p>   </p>"},
			},
		}},
	}

	payload := FAQJSONLD(node)
	if payload == "" {
		t.Fatal("expected JSON-LD output")
	}
	var parsed struct {
		Context    string `json:"@context"`
		Type       string `json:"@type"`
		MainEntity []struct {
			Name           string `json:"name"`
			AcceptedAnswer struct {
				Text string `json:"text"`
			} `json:"acceptedAnswer"`
		} `json:"mainEntity"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if parsed.Type != "FAQPage" || parsed.Context != "https://schema.org" {
		t.Fatalf("wrong envelope: %+v", parsed)
	}
	if len(parsed.MainEntity) != 1 {
		t.Fatalf("blank answers must be dropped, got %d entries", len(parsed.MainEntity))
	}
	answer := parsed.MainEntity[0].AcceptedAnswer.Text
	if strings.Contains(answer, "<") || !strings.Contains(answer, "estadías cortas") {
		t.Fatalf("answer not stripped to text: %q", answer)
	}
}

func TestFAQJSONLDEmptyWithoutQuestions(t *testing.T) {
	if got := FAQJSONLD(&pages.Node{}); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestEnrichHomeLatest(t *testing.T) {
	f := newFixture(t)
	home := f.create(t, pages.CreateNodeRequest{Kind: pages.KindHome, Title: "Home", Live: true, Public: true})
	index := f.create(t, pages.CreateNodeRequest{Kind: pages.KindDestinationsIndex, ParentID: &home.ID, Title: "Destinos", Live: true, Public: true})
	country := f.create(t, pages.CreateNodeRequest{Kind: pages.KindCountry, ParentID: &index.ID, Title: "Argentina", Live: true, Public: true})
	for _, title := range []string{"Salta", "Córdoba", "Ushuaia", "Rosario", "La Plata", "Mendoza"} {
		f.destination(t, country, title)
	}
	newest := f.destination(t, country, "Bariloche")

	guides := f.create(t, pages.CreateNodeRequest{Kind: pages.KindGuidesIndex, ParentID: &home.ID, Title: "Guías", Live: true, Public: true})
	category := f.create(t, pages.CreateNodeRequest{Kind: pages.KindCategory, ParentID: &guides.ID, Title: "Playas", Live: true, Public: true})
	article := f.create(t, pages.CreateNodeRequest{Kind: pages.KindArticle, ParentID: &category.ID, Title: "Mejores Playas", Live: true, Public: true})

	enricher := New(f.svc)
	ctx, err := enricher.Enrich(context.Background(), home)
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if len(ctx.LatestDestinations) != 6 {
		t.Fatalf("expected 6 latest destinations, got %d", len(ctx.LatestDestinations))
	}
	if ctx.LatestDestinations[0].ID != newest.ID {
		t.Fatalf("expected newest destination first, got %s", ctx.LatestDestinations[0].Title)
	}
	if len(ctx.LatestArticles) != 1 || ctx.LatestArticles[0].ID != article.ID {
		t.Fatalf("expected the article in latest articles: %+v", ctx.LatestArticles)
	}
	if len(ctx.Listing) != 0 {
		t.Fatalf("home should not carry a child listing, got %d", len(ctx.Listing))
	}
}

func TestEnrichIndexListing(t *testing.T) {
	f := newFixture(t)
	country := f.seedDestinations(t)
	f.destination(t, country, "Bariloche")
	f.create(t, pages.CreateNodeRequest{
		Kind: pages.KindDestination, ParentID: &country.ID,
		Title: "Oculto", Live: false, Public: true,
	})

	enricher := New(f.svc)
	ctx, err := enricher.Enrich(context.Background(), country)
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if len(ctx.Listing) != 1 || ctx.Listing[0].Title != "Bariloche" {
		t.Fatalf("listing should show only visible children: %+v", ctx.Listing)
	}
}
