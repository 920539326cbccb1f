package enrich

import (
	"strings"

	"github.com/goliatone/travel-cms/internal/pages"
)

// ctaLimit caps the automatic CTA list.
const ctaLimit = 3

// CTA sources reported alongside the selected list.
const (
	CTASourceManual = "manual"
	CTASourceAuto   = "auto"
)

// CTA is one affiliate call-to-action entry.
type CTA struct {
	Title      string `json:"title,omitempty"`
	URL        string `json:"url"`
	ButtonText string `json:"button_text"`
	Note       string `json:"note,omitempty"`
}

// ctaRule appends its entries when any of its tags is present on the node.
// Rules are not mutually exclusive; multiple matching tags compound.
type ctaRule struct {
	tags    []string
	entries []CTA
}

var ctaRules = []ctaRule{
	{
		tags: []string{"playa"},
		entries: []CTA{
			{Title: "Alojamientos cerca de la playa", URL: "https://www.booking.com/", ButtonText: "Ver alojamientos", Note: "Compará precios y disponibilidad"},
			{Title: "Snorkel y paseos en barco", URL: "https://www.getyourguide.com/", ButtonText: "Ver actividades", Note: "Experiencias típicas de playa"},
		},
	},
	{
		tags: []string{"montaña", "trekking"},
		entries: []CTA{
			{Title: "Excursiones y trekking guiado", URL: "https://www.getyourguide.com/", ButtonText: "Ver excursiones", Note: "Opciones según dificultad y tiempo"},
			{Title: "Seguro de viaje", URL: "https://www.assistcard.com/", ButtonText: "Cotizar seguro", Note: "Recomendado para actividades al aire libre"},
		},
	},
	{
		tags: []string{"ciudad"},
		entries: []CTA{
			{Title: "Tours y experiencias en la ciudad", URL: "https://www.getyourguide.com/", ButtonText: "Ver tours", Note: "Walking tours, museos y gastronomía"},
			{Title: "Alojamiento bien ubicado", URL: "https://www.booking.com/", ButtonText: "Buscar hotel", Note: "Mejor ubicación = menos traslados"},
		},
	},
	{
		tags: []string{"familia"},
		entries: []CTA{
			{Title: "Alojamientos ideales para familias", URL: "https://www.booking.com/", ButtonText: "Ver opciones", Note: "Filtrá por cocina, pileta y espacio"},
		},
	},
	{
		tags: []string{"pareja"},
		entries: []CTA{
			{Title: "Experiencias para parejas", URL: "https://www.getyourguide.com/", ButtonText: "Ver experiencias", Note: "Atardeceres, paseos y actividades románticas"},
		},
	},
	{
		tags: []string{"presupuesto", "barato"},
		entries: []CTA{
			{Title: "Opciones económicas", URL: "https://www.booking.com/", ButtonText: "Ver ofertas", Note: "Ordená por precio y mirá reviews"},
		},
	},
}

var ctaFallback = []CTA{
	{Title: "Buscar alojamientos", URL: "https://www.booking.com/", ButtonText: "Ver alojamientos", Note: "Compará opciones"},
	{Title: "Seguro de viaje", URL: "https://www.assistcard.com/", ButtonText: "Cotizar seguro"},
}

// SelectCTAs picks the call-to-action list for a node. A non-empty manual
// override wins verbatim; otherwise the tag rule table applies, deduplicated
// on (url, button text), capped at three, with a fixed fallback when no rule
// matched.
func SelectCTAs(node *pages.Node) ([]CTA, string) {
	if len(node.CTAOverride) > 0 {
		manual := make([]CTA, 0, len(node.CTAOverride))
		for _, cta := range node.CTAOverride {
			manual = append(manual, CTA{
				URL:        cta.URL,
				ButtonText: cta.Text,
				Note:       cta.Note,
			})
		}
		return manual, CTASourceManual
	}

	var auto []CTA
	for _, rule := range ctaRules {
		if !ruleMatches(rule, node) {
			continue
		}
		auto = append(auto, rule.entries...)
	}

	seen := map[[2]string]struct{}{}
	unique := auto[:0]
	for _, cta := range auto {
		key := [2]string{cta.URL, cta.ButtonText}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, cta)
	}

	if len(unique) == 0 {
		unique = append([]CTA(nil), ctaFallback...)
	}
	if len(unique) > ctaLimit {
		unique = unique[:ctaLimit]
	}
	return unique, CTASourceAuto
}

func ruleMatches(rule ctaRule, node *pages.Node) bool {
	for _, tag := range rule.tags {
		if node.HasTag(strings.ToLower(tag)) {
			return true
		}
	}
	return false
}
