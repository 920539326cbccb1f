package pagescmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/travel-cms/internal/commands"
	"github.com/goliatone/travel-cms/internal/pages"
	"github.com/goliatone/travel-cms/pkg/interfaces"
)

const linkDestinationMessageType = "travel.pages.link_destination"

// LinkDestinationCommand connects an article to a destination it covers.
type LinkDestinationCommand struct {
	ArticleID     uuid.UUID `json:"article_id"`
	DestinationID uuid.UUID `json:"destination_id"`
	Unlink        bool      `json:"unlink,omitempty"`
}

// Type implements command.Message.
func (LinkDestinationCommand) Type() string { return linkDestinationMessageType }

// Validate ensures the message carries both endpoints.
func (m LinkDestinationCommand) Validate() error {
	errs := validation.Errors{}
	if m.ArticleID == uuid.Nil {
		errs["article_id"] = validation.NewError("travel.pages.link.article_id_required", "article_id is required")
	}
	if m.DestinationID == uuid.Nil {
		errs["destination_id"] = validation.NewError("travel.pages.link.destination_id_required", "destination_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LinkDestinationHandler maintains the article/destination relation.
type LinkDestinationHandler struct {
	inner *commands.Handler[LinkDestinationCommand]
}

// NewLinkDestinationHandler wires the handler to the page service.
func NewLinkDestinationHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[LinkDestinationCommand]) *LinkDestinationHandler {
	exec := func(ctx context.Context, msg LinkDestinationCommand) error {
		if msg.Unlink {
			return service.UnlinkDestination(ctx, msg.ArticleID, msg.DestinationID)
		}
		return service.LinkDestination(ctx, msg.ArticleID, msg.DestinationID)
	}

	handlerOpts := []commands.HandlerOption[LinkDestinationCommand]{
		commands.WithLogger[LinkDestinationCommand](logger),
		commands.WithOperation[LinkDestinationCommand]("pages.link_destination"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LinkDestinationHandler{
		inner: commands.NewHandler[LinkDestinationCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LinkDestinationCommand].Execute.
func (h *LinkDestinationHandler) Execute(ctx context.Context, msg LinkDestinationCommand) error {
	return h.inner.Execute(ctx, msg)
}
