package enrich

import (
	"encoding/json"
	"strings"

	"github.com/goliatone/travel-cms/internal/blocks"
	"github.com/goliatone/travel-cms/internal/pages"
)

type faqQuestion struct {
	Type           string    `json:"@type"`
	Name           string    `json:"name"`
	AcceptedAnswer faqAnswer `json:"acceptedAnswer"`
}

type faqAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type faqPage struct {
	Context    string        `json:"@context"`
	Type       string        `json:"@type"`
	MainEntity []faqQuestion `json:"mainEntity"`
}

// FAQJSONLD flattens every FAQ on the node (dedicated field plus body units)
// into a schema.org FAQPage JSON-LD string. Answers are stripped to plain
// text; an empty question set yields "".
func FAQJSONLD(node *pages.Node) string {
	groups := append([]blocks.FAQ(nil), node.FAQ...)
	if units, err := node.Units(); err == nil {
		for _, unit := range units {
			if unit.Type == blocks.TypeFAQ && unit.FAQ != nil {
				groups = append(groups, *unit.FAQ)
			}
		}
	}

	var entities []faqQuestion
	for _, group := range groups {
		for _, item := range group.Items {
			question := strings.TrimSpace(item.Question)
			answer := blocks.StripTags(item.Answer)
			if question == "" || answer == "" {
				continue
			}
			entities = append(entities, faqQuestion{
				Type: "Question",
				Name: question,
				AcceptedAnswer: faqAnswer{
					Type: "Answer",
					Text: answer,
				},
			})
		}
	}
	if len(entities) == 0 {
		return ""
	}

	payload, err := json.Marshal(faqPage{
		Context:    "https://schema.org",
		Type:       "FAQPage",
		MainEntity: entities,
	})
	if err != nil {
		return ""
	}
	return string(payload)
}
