// Package media provides the default MediaProvider: a static resolver that
// maps opaque image references onto a base URL. Hosts with a real asset
// pipeline supply their own provider instead.
package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/travel-cms/pkg/interfaces"
)

// ErrEmptyRef reports a blank image reference.
var ErrEmptyRef = fmt.Errorf("media: empty image reference")

// StaticProvider resolves refs as paths below a fixed base URL. Absolute
// refs (http/https) pass through untouched.
type StaticProvider struct {
	baseURL string
}

var _ interfaces.MediaProvider = (*StaticProvider)(nil)

// NewStaticProvider builds a provider rooted at baseURL.
func NewStaticProvider(baseURL string) *StaticProvider {
	return &StaticProvider{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// Resolve maps a reference to its public URL.
func (p *StaticProvider) Resolve(_ context.Context, ref string) (*interfaces.ImageAsset, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return nil, ErrEmptyRef
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return &interfaces.ImageAsset{Ref: trimmed, URL: trimmed}, nil
	}
	return &interfaces.ImageAsset{
		Ref: trimmed,
		URL: p.baseURL + "/" + strings.TrimLeft(trimmed, "/"),
	}, nil
}
