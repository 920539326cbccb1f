package blocks

import "strings"

// Type discriminates the content unit variants a body can carry. Values match
// the persisted envelope tags, so they are part of the storage contract.
type Type string

const (
	TypeHeading           Type = "heading"
	TypeRichText          Type = "rich_text"
	TypeImage             Type = "image"
	TypeGallery           Type = "gallery"
	TypeHighlights        Type = "highlights"
	TypeInfoGrid          Type = "info_grid"
	TypeMapEmbed          Type = "map"
	TypeYouTube           Type = "youtube"
	TypeCTA               Type = "cta"
	TypeFAQ               Type = "faq"
	TypeQuickSection      Type = "quick_section"
	TypeQuickSectionGroup Type = "quick_sections"
)

// Unit is one item of a node body. Exactly one variant field is set, selected
// by Type. A body is an ordered slice of units; order is render order.
type Unit struct {
	Type Type

	Heading           *Heading
	RichText          *RichText
	Image             *Image
	Gallery           *Gallery
	Highlights        *Highlights
	InfoGrid          *InfoGrid
	MapEmbed          *MapEmbed
	YouTube           *YouTubeEmbed
	CTA               *CTAButton
	FAQ               *FAQ
	QuickSection      *QuickSection
	QuickSectionGroup *QuickSectionGroup
}

// Heading is a section title that participates in the table of contents.
type Heading struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// RichText carries free-form editor HTML. Embedded h2 elements are promoted
// into the table of contents at composition time.
type RichText struct {
	HTML string `json:"html"`
}

// Image references a stored image. Ref stays unresolved until a
// MediaProvider resolves it at render time; imports never guess media.
type Image struct {
	Ref     string `json:"ref,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Gallery is an ordered set of image references with an optional title.
type Gallery struct {
	Title  string   `json:"title,omitempty"`
	Images []string `json:"images"`
}

// HighlightItem is a single highlight entry.
type HighlightItem struct {
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
}

// Highlights lists short selling points for a destination or article.
type Highlights struct {
	Title string          `json:"title,omitempty"`
	Items []HighlightItem `json:"items"`
}

// InfoRow is one label/value pair of an info grid.
type InfoRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// InfoGrid renders practical information (currency, language, best season).
type InfoGrid struct {
	Title string    `json:"title,omitempty"`
	Rows  []InfoRow `json:"rows"`
}

// MapEmbed embeds a maps iframe by URL.
type MapEmbed struct {
	Title  string `json:"title,omitempty"`
	MapURL string `json:"map_url,omitempty"`
}

// YouTubeEmbed embeds a video by watch/embed URL.
type YouTubeEmbed struct {
	Title    string `json:"title,omitempty"`
	VideoRef string `json:"video,omitempty"`
}

// CTAButton is a single outbound call-to-action.
type CTAButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
	Note string `json:"note,omitempty"`
}

// FAQItem pairs a question with a rich-text answer.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQ groups frequently asked questions under an optional title.
type FAQ struct {
	Title string    `json:"title,omitempty"`
	Items []FAQItem `json:"items"`
}

// QuickSection is a titled body fragment with optional inline image and CTA,
// used by destination pages. Its title is emitted by the composer so the
// section renderer must not repeat it.
type QuickSection struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	BodyHTML string `json:"body,omitempty"`
	ImageRef string `json:"image_ref,omitempty"`
	Caption  string `json:"caption,omitempty"`
	CTAText  string `json:"cta_text,omitempty"`
	CTAURL   string `json:"cta_url,omitempty"`
	CTANote  string `json:"cta_note,omitempty"`
}

// QuickSectionGroup nests quick sections under one container unit.
type QuickSectionGroup struct {
	Title    string         `json:"title,omitempty"`
	Sections []QuickSection `json:"sections"`
}

// TOCTitle returns the table-of-contents title contributed by the unit, or
// the empty string when the unit does not participate. QuickSectionGroup
// contributes per nested section and is handled by the composer directly.
func (u Unit) TOCTitle() string {
	switch u.Type {
	case TypeHeading:
		if u.Heading != nil {
			return strings.TrimSpace(u.Heading.Title)
		}
	case TypeQuickSection:
		if u.QuickSection != nil {
			return strings.TrimSpace(u.QuickSection.Title)
		}
	}
	return ""
}

// IsZero reports whether no variant payload is attached.
func (u Unit) IsZero() bool {
	return u.Heading == nil && u.RichText == nil && u.Image == nil &&
		u.Gallery == nil && u.Highlights == nil && u.InfoGrid == nil &&
		u.MapEmbed == nil && u.YouTube == nil && u.CTA == nil &&
		u.FAQ == nil && u.QuickSection == nil && u.QuickSectionGroup == nil
}
