package media

import (
	"context"
	"errors"
	"testing"
)

func TestStaticProviderResolve(t *testing.T) {
	p := NewStaticProvider("https://cdn.example.com/media/")

	asset, err := p.Resolve(context.Background(), "destinos/tulum.jpg")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if asset.URL != "https://cdn.example.com/media/destinos/tulum.jpg" {
		t.Fatalf("unexpected url: %q", asset.URL)
	}

	passthrough, err := p.Resolve(context.Background(), "https://other.example.com/x.jpg")
	if err != nil {
		t.Fatalf("resolve absolute: %v", err)
	}
	if passthrough.URL != "https://other.example.com/x.jpg" {
		t.Fatalf("absolute refs must pass through, got %q", passthrough.URL)
	}

	if _, err := p.Resolve(context.Background(), "  "); !errors.Is(err, ErrEmptyRef) {
		t.Fatalf("expected ErrEmptyRef, got %v", err)
	}
}
