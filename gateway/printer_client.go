package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"parking/entity"
)

type PrinterClient struct {
	addr       string
	httpClient *http.Client
}

func NewPrinterClient(addr string) PrinterClient {
	return PrinterClient{
		addr: addr,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type printReceiptRequest struct {
	TicketNumber   string    `json:"ticket_number"`
	Amount         int       `json:"amount"`
	PaymentMethod  string    `json:"payment_method"`
	PaidAt         time.Time `json:"paid_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func (c PrinterClient) PrintReceipt(ctx context.Context, request entity.PrintReceiptRequest) error {
	payload, err := json.Marshal(printReceiptRequest{
		TicketNumber:   request.TicketNumber,
		Amount:         request.Amount,
		PaymentMethod:  string(request.PaymentMethod),
		PaidAt:         request.PaidAt,
		IdempotencyKey: request.IdempotencyKey,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+"/receipts", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// receipt was already printed for this payment
		return nil
	case http.StatusCreated:
		return nil
	default:
		return fmt.Errorf("unexpected status code for POST /receipts: %d", resp.StatusCode)
	}
}
