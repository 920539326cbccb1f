package pages

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/travel-cms/internal/blocks"
)

// Kind identifies the node variant. The value is persisted, so renames are a
// data migration.
type Kind string

const (
	KindHome               Kind = "home"
	KindSimplePage         Kind = "simple_page"
	KindGuidesIndex        Kind = "guides_index"
	KindCategory           Kind = "category"
	KindArticle            Kind = "article"
	KindDestinationsIndex  Kind = "destinations_index"
	KindCountry            Kind = "country"
	KindDestination        Kind = "destination"
	KindDestinationSection Kind = "destination_section"
)

// Node is one entry in the hierarchical content tree. All variants share the
// row shape; kind-specific fields stay empty for kinds that do not use them.
type Node struct {
	bun.BaseModel `bun:"table:nodes,alias:n"`

	ID       uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	ParentID *uuid.UUID `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	Kind     Kind       `bun:"kind,notnull" json:"kind"`
	Slug     string     `bun:"slug,notnull" json:"slug"`
	Title    string     `bun:"title,notnull" json:"title"`

	// Both flags must hold for a node to be publicly resolvable.
	Live   bool `bun:"live,notnull,default:false" json:"live"`
	Public bool `bun:"public,notnull,default:true" json:"public"`

	SEODescription   string `bun:"seo_description" json:"seo_description,omitempty"`
	ShortDescription string `bun:"short_description" json:"short_description,omitempty"`
	Intro            string `bun:"intro" json:"intro,omitempty"`
	HeroImageRef     string `bun:"hero_image_ref" json:"hero_image_ref,omitempty"`

	Tags []string `bun:"tags,type:jsonb" json:"tags,omitempty"`

	// Body is the ordered content unit stream, stored in envelope form.
	Body json.RawMessage `bun:"body,type:jsonb" json:"body,omitempty"`

	// CTAOverride, when non-empty, replaces rule-derived CTAs verbatim.
	CTAOverride []blocks.CTAButton `bun:"cta_override,type:jsonb" json:"cta_override,omitempty"`

	// FAQ holds the destination FAQ stream rendered below the body and
	// flattened into FAQPage structured data.
	FAQ []blocks.FAQ `bun:"faq,type:jsonb" json:"faq,omitempty"`

	// BulkPaste stages raw legacy HTML. SaveBody consumes and clears it
	// exactly once when the structured body is still empty.
	BulkPaste string `bun:"bulk_paste" json:"bulk_paste,omitempty"`

	FirstPublishedAt *time.Time `bun:"first_published_at,nullzero" json:"first_published_at,omitempty"`
	CreatedAt        time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Parent   *Node   `bun:"rel:belongs-to,join:parent_id=id" json:"-"`
	Children []*Node `bun:"rel:has-many,join:id=parent_id" json:"-"`
}

// ArticleDestination links an article to a destination it covers. The
// (article, destination) pair is unique.
type ArticleDestination struct {
	bun.BaseModel `bun:"table:article_destinations,alias:ad"`

	ID            uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ArticleID     uuid.UUID `bun:"article_id,notnull,type:uuid,unique:article_destination" json:"article_id"`
	DestinationID uuid.UUID `bun:"destination_id,notnull,type:uuid,unique:article_destination" json:"destination_id"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// IsPubliclyVisible reports whether public resolution may return the node.
func (n *Node) IsPubliclyVisible() bool {
	return n != nil && n.Live && n.Public
}

// Units decodes the stored body into content units, preserving order. The
// raw document is checked against the envelope schema before decoding, so a
// corrupted stored body surfaces as blocks.ErrBodyInvalid instead of being
// silently skipped by the lenient decoder. A missing body yields a nil slice.
func (n *Node) Units() ([]blocks.Unit, error) {
	if n == nil || len(n.Body) == 0 {
		return nil, nil
	}
	if err := blocks.ValidateBodyJSON(n.Body); err != nil {
		return nil, err
	}
	return blocks.UnmarshalBody(n.Body)
}

// SetUnits replaces the stored body wholesale.
func (n *Node) SetUnits(units []blocks.Unit) error {
	encoded, err := blocks.MarshalBody(units)
	if err != nil {
		return err
	}
	n.Body = encoded
	return nil
}

// HasBody reports whether the node carries at least one content unit.
func (n *Node) HasBody() bool {
	if n == nil || len(n.Body) == 0 {
		return false
	}
	units, err := n.Units()
	return err == nil && len(units) > 0
}

// PublishedOrder is the recency key used for listings and related items:
// first publication time, falling back to creation time for drafts.
func (n *Node) PublishedOrder() time.Time {
	if n == nil {
		return time.Time{}
	}
	if n.FirstPublishedAt != nil {
		return *n.FirstPublishedAt
	}
	return n.CreatedAt
}

// HasTag reports tag membership, case-insensitively.
func (n *Node) HasTag(tag string) bool {
	if n == nil {
		return false
	}
	for _, t := range n.Tags {
		if equalFoldTrim(t, tag) {
			return true
		}
	}
	return false
}
