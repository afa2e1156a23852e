package entity

import "time"

type TicketStatus string

const (
	TicketStatusPending TicketStatus = "pending"
	TicketStatusPaid    TicketStatus = "paid"
)

type PaymentMethod string

const (
	PaymentMethodPix    PaymentMethod = "pix"
	PaymentMethodCredit PaymentMethod = "credit"
	PaymentMethodDebit  PaymentMethod = "debit"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodPix, PaymentMethodCredit, PaymentMethodDebit:
		return true
	}
	return false
}

// Ticket is a single parking session. CurrentValue is zero while the
// ticket is pending (the live fee is recomputed on demand) and is frozen
// to the final charged amount at the moment of payment.
type Ticket struct {
	ID            string        `json:"id"`
	Number        string        `json:"number"`
	EntryTime     time.Time     `json:"entryTime"`
	PaymentTime   *time.Time    `json:"paymentTime"`
	Status        TicketStatus  `json:"status"`
	CurrentValue  int           `json:"currentValue"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
}

func (t Ticket) IsPending() bool {
	return t.Status == TicketStatusPending
}

func (t Ticket) IsZero() bool {
	return t.ID == ""
}
