// Package pagescmd exposes page tree operations as go-command messages so
// hosts can dispatch them through a command bus or CLI runner.
package pagescmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/travel-cms/internal/commands"
	"github.com/goliatone/travel-cms/internal/pages"
	"github.com/goliatone/travel-cms/pkg/interfaces"
)

const importLegacyHTMLMessageType = "travel.pages.import_legacy_html"

// ImportLegacyHTMLCommand stages raw HTML on a node and saves, triggering
// the one-shot importer when the body is empty.
type ImportLegacyHTMLCommand struct {
	NodeID uuid.UUID `json:"node_id"`
	HTML   string    `json:"html"`
}

// Type implements command.Message.
func (ImportLegacyHTMLCommand) Type() string { return importLegacyHTMLMessageType }

// Validate ensures the message carries the required fields.
func (m ImportLegacyHTMLCommand) Validate() error {
	errs := validation.Errors{}
	if m.NodeID == uuid.Nil {
		errs["node_id"] = validation.NewError("travel.pages.import.node_id_required", "node_id is required")
	}
	if strings.TrimSpace(m.HTML) == "" {
		errs["html"] = validation.NewError("travel.pages.import.html_required", "html is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportLegacyHTMLHandler applies staged HTML through the page service.
type ImportLegacyHTMLHandler struct {
	inner *commands.Handler[ImportLegacyHTMLCommand]
}

// NewImportLegacyHTMLHandler wires the handler to the page service.
func NewImportLegacyHTMLHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportLegacyHTMLCommand]) *ImportLegacyHTMLHandler {
	exec := func(ctx context.Context, msg ImportLegacyHTMLCommand) error {
		_, err := service.SaveBody(ctx, pages.SaveBodyRequest{
			ID:        msg.NodeID,
			BulkPaste: msg.HTML,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[ImportLegacyHTMLCommand]{
		commands.WithLogger[ImportLegacyHTMLCommand](logger),
		commands.WithOperation[ImportLegacyHTMLCommand]("pages.import_legacy_html"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportLegacyHTMLHandler{
		inner: commands.NewHandler[ImportLegacyHTMLCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportLegacyHTMLCommand].Execute.
func (h *ImportLegacyHTMLHandler) Execute(ctx context.Context, msg ImportLegacyHTMLCommand) error {
	return h.inner.Execute(ctx, msg)
}
