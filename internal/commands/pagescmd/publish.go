package pagescmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/travel-cms/internal/commands"
	"github.com/goliatone/travel-cms/internal/pages"
	"github.com/goliatone/travel-cms/pkg/interfaces"
)

const publishNodeMessageType = "travel.pages.publish"

// PublishNodeCommand makes a node live (or takes it down again).
type PublishNodeCommand struct {
	NodeID    uuid.UUID `json:"node_id"`
	Unpublish bool      `json:"unpublish,omitempty"`
}

// Type implements command.Message.
func (PublishNodeCommand) Type() string { return publishNodeMessageType }

// Validate ensures the message carries the required fields.
func (m PublishNodeCommand) Validate() error {
	errs := validation.Errors{}
	if m.NodeID == uuid.Nil {
		errs["node_id"] = validation.NewError("travel.pages.publish.node_id_required", "node_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishNodeHandler toggles node visibility via the page service.
type PublishNodeHandler struct {
	inner *commands.Handler[PublishNodeCommand]
}

// NewPublishNodeHandler wires the handler to the page service.
func NewPublishNodeHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishNodeCommand]) *PublishNodeHandler {
	exec := func(ctx context.Context, msg PublishNodeCommand) error {
		var err error
		if msg.Unpublish {
			_, err = service.Unpublish(ctx, msg.NodeID)
		} else {
			_, err = service.Publish(ctx, msg.NodeID)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishNodeCommand]{
		commands.WithLogger[PublishNodeCommand](logger),
		commands.WithOperation[PublishNodeCommand]("pages.publish"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishNodeHandler{
		inner: commands.NewHandler[PublishNodeCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishNodeCommand].Execute.
func (h *PublishNodeHandler) Execute(ctx context.Context, msg PublishNodeCommand) error {
	return h.inner.Execute(ctx, msg)
}
