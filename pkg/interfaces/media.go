package interfaces

import "context"

// ImageAsset is the normalized view of a stored image returned by a
// MediaProvider. URL must be resolvable by public templates.
type ImageAsset struct {
	Ref      string
	URL      string
	Alt      string
	Width    int
	Height   int
	Metadata map[string]any
}

// MediaProvider resolves opaque image references (as carried by content
// units) into renderable assets. Import flows deliberately leave references
// unresolved; resolution is a read-time concern.
type MediaProvider interface {
	Resolve(ctx context.Context, ref string) (*ImageAsset, error)
}
