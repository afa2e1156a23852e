package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"parking/entity"
)

func (h Handler) OpenEntryGateHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"OpenEntryGateHandler",
		func(ctx context.Context, event *entity.TicketIssued) error {
			log.FromContext(ctx).WithField("ticket_number", event.TicketNumber).Info("Opening entry gate")

			if err := h.gateService.OpenEntry(ctx, event.TicketNumber); err != nil {
				return fmt.Errorf("failed to open entry gate: %w", err)
			}

			return nil
		},
	)
}

func (h Handler) OpenExitGateHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"OpenExitGateHandler",
		func(ctx context.Context, event *entity.TicketPaid) error {
			log.FromContext(ctx).WithField("ticket_number", event.TicketNumber).Info("Releasing exit gate")

			if err := h.gateService.OpenExit(ctx, event.TicketNumber); err != nil {
				return fmt.Errorf("failed to release exit gate: %w", err)
			}

			return nil
		},
	)
}
