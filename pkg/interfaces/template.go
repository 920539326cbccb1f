package interfaces

import "context"

// TemplateRenderer produces the final response body for a resolved node. The
// data map carries the composed body (toc, html) plus the enrichment context
// (breadcrumbs, related, ctas, faq). Template selection and markup are owned
// entirely by the host application.
type TemplateRenderer interface {
	Render(ctx context.Context, template string, data map[string]any) (string, error)
}
