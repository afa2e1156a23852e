// Package gateway holds clients for the facility hardware: the barrier
// gates and the receipt printer kiosk.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type GateClient struct {
	addr       string
	httpClient *http.Client
}

func NewGateClient(addr string) GateClient {
	return GateClient{
		addr: addr,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type openGateRequest struct {
	TicketNumber string `json:"ticket_number"`
}

func (c GateClient) OpenEntry(ctx context.Context, ticketNumber string) error {
	return c.open(ctx, "entry", ticketNumber)
}

func (c GateClient) OpenExit(ctx context.Context, ticketNumber string) error {
	return c.open(ctx, "exit", ticketNumber)
}

func (c GateClient) open(ctx context.Context, gate string, ticketNumber string) error {
	payload, err := json.Marshal(openGateRequest{TicketNumber: ticketNumber})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/gates/%s/open", c.addr, gate)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code for POST /gates/%s/open: %d", gate, resp.StatusCode)
	}

	return nil
}
