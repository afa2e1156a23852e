package event

import (
	"context"

	"parking/entity"
)

type Handler struct {
	gateService    GateService
	receiptPrinter ReceiptPrinter
}

func NewHandler(
	gateService GateService,
	receiptPrinter ReceiptPrinter,
) Handler {
	if gateService == nil {
		panic("missing gateService")
	}
	if receiptPrinter == nil {
		panic("missing receiptPrinter")
	}

	return Handler{
		gateService:    gateService,
		receiptPrinter: receiptPrinter,
	}
}

type GateService interface {
	OpenEntry(ctx context.Context, ticketNumber string) error
	OpenExit(ctx context.Context, ticketNumber string) error
}

type ReceiptPrinter interface {
	PrintReceipt(ctx context.Context, request entity.PrintReceiptRequest) error
}
