package blocks

import (
	"encoding/json"
	"fmt"
	"strings"
)

// envelope is the persisted shape of one unit: a tag plus its payload. The
// same layout is used for jsonb storage and the public read API.
type envelope struct {
	Type  Type            `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes the unit as a {type, value} envelope.
func (u Unit) MarshalJSON() ([]byte, error) {
	payload, err := u.payload()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("blocks: encode %s: %w", u.Type, err)
	}
	return json.Marshal(envelope{Type: u.Type, Value: raw})
}

// UnmarshalJSON decodes a {type, value} envelope into the matching variant.
// Unknown types yield a zero unit the body decoder skips.
func (u *Unit) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("blocks: decode envelope: %w", err)
	}

	decoded := Unit{Type: env.Type}
	target := decoded.allocate()
	if target == nil {
		*u = Unit{Type: env.Type}
		return nil
	}
	if len(env.Value) > 0 {
		if err := json.Unmarshal(env.Value, target); err != nil {
			return fmt.Errorf("blocks: decode %s: %w", env.Type, err)
		}
	}
	*u = decoded
	return nil
}

func (u Unit) payload() (any, error) {
	switch u.Type {
	case TypeHeading:
		return u.Heading, nil
	case TypeRichText:
		return u.RichText, nil
	case TypeImage:
		return u.Image, nil
	case TypeGallery:
		return u.Gallery, nil
	case TypeHighlights:
		return u.Highlights, nil
	case TypeInfoGrid:
		return u.InfoGrid, nil
	case TypeMapEmbed:
		return u.MapEmbed, nil
	case TypeYouTube:
		return u.YouTube, nil
	case TypeCTA:
		return u.CTA, nil
	case TypeFAQ:
		return u.FAQ, nil
	case TypeQuickSection:
		return u.QuickSection, nil
	case TypeQuickSectionGroup:
		return u.QuickSectionGroup, nil
	default:
		return nil, fmt.Errorf("blocks: unknown unit type %q", u.Type)
	}
}

// allocate sets the variant pointer matching u.Type and returns it for decoding.
func (u *Unit) allocate() any {
	switch u.Type {
	case TypeHeading:
		u.Heading = &Heading{}
		return u.Heading
	case TypeRichText:
		u.RichText = &RichText{}
		return u.RichText
	case TypeImage:
		u.Image = &Image{}
		return u.Image
	case TypeGallery:
		u.Gallery = &Gallery{}
		return u.Gallery
	case TypeHighlights:
		u.Highlights = &Highlights{}
		return u.Highlights
	case TypeInfoGrid:
		u.InfoGrid = &InfoGrid{}
		return u.InfoGrid
	case TypeMapEmbed:
		u.MapEmbed = &MapEmbed{}
		return u.MapEmbed
	case TypeYouTube:
		u.YouTube = &YouTubeEmbed{}
		return u.YouTube
	case TypeCTA:
		u.CTA = &CTAButton{}
		return u.CTA
	case TypeFAQ:
		u.FAQ = &FAQ{}
		return u.FAQ
	case TypeQuickSection:
		u.QuickSection = &QuickSection{}
		return u.QuickSection
	case TypeQuickSectionGroup:
		u.QuickSectionGroup = &QuickSectionGroup{}
		return u.QuickSectionGroup
	default:
		return nil
	}
}

// MarshalBody encodes an ordered body for jsonb storage. A nil or empty body
// encodes as an empty array, never null, so decode round-trips cleanly.
func MarshalBody(units []Unit) ([]byte, error) {
	if len(units) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(units)
}

// UnmarshalBody decodes a stored body, preserving authored order. Envelopes
// with unrecognised tags are dropped rather than failing the whole body.
func UnmarshalBody(data []byte) ([]Unit, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var units []Unit
	if err := json.Unmarshal([]byte(trimmed), &units); err != nil {
		return nil, fmt.Errorf("blocks: decode body: %w", err)
	}
	out := units[:0]
	for _, unit := range units {
		if unit.IsZero() {
			continue
		}
		out = append(out, unit)
	}
	return out, nil
}
