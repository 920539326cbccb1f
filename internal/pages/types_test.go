package pages

import (
	"errors"
	"testing"

	"github.com/goliatone/travel-cms/internal/blocks"
)

func TestUnitsRejectsMalformedBody(t *testing.T) {
	malformed := []string{
		`{"type":"heading","value":{}}`,      // not an array
		`[{"value":{"title":"sin tipo"}}]`,   // envelope without a tag
		`[{"type":"heading","extra":true}]`,  // unknown envelope key
	}
	for _, raw := range malformed {
		node := &Node{Body: []byte(raw)}
		if _, err := node.Units(); !errors.Is(err, blocks.ErrBodyInvalid) {
			t.Fatalf("body %s should fail schema validation, got %v", raw, err)
		}
		if node.HasBody() {
			t.Fatalf("malformed body %s must not count as content", raw)
		}
	}
}

func TestUnitsKeepsLenientDecodeForUnknownTags(t *testing.T) {
	node := &Node{Body: []byte(`[{"type":"carousel_3d","value":{}},{"type":"heading","value":{"title":"Intro"}}]`)}
	units, err := node.Units()
	if err != nil {
		t.Fatalf("units: %v", err)
	}
	if len(units) != 1 || units[0].Type != blocks.TypeHeading {
		t.Fatalf("expected the unknown tag dropped and the heading kept, got %+v", units)
	}
}
