package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"parking/entity"
)

func (h Handler) PrintReceiptHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"PrintReceiptHandler",
		func(ctx context.Context, event *entity.TicketPaid) error {
			log.FromContext(ctx).WithField("ticket_number", event.TicketNumber).Info("Printing receipt")

			request := entity.PrintReceiptRequest{
				TicketNumber:   event.TicketNumber,
				Amount:         event.Amount,
				PaymentMethod:  event.PaymentMethod,
				PaidAt:         event.PaidAt,
				IdempotencyKey: event.Header.IdempotencyKey,
			}

			if err := h.receiptPrinter.PrintReceipt(ctx, request); err != nil {
				return fmt.Errorf("failed to print receipt: %w", err)
			}

			return nil
		},
	)
}
