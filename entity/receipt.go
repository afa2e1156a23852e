package entity

import "time"

type PrintReceiptRequest struct {
	TicketNumber   string
	Amount         int
	PaymentMethod  PaymentMethod
	PaidAt         time.Time
	IdempotencyKey string
}
