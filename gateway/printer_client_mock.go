package gateway

import (
	"context"
	"sync"

	"parking/entity"
)

type PrinterMock struct {
	lock sync.Mutex

	PrintedReceipts map[string]entity.PrintReceiptRequest
}

func (c *PrinterMock) PrintReceipt(ctx context.Context, request entity.PrintReceiptRequest) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.PrintedReceipts == nil {
		c.PrintedReceipts = make(map[string]entity.PrintReceiptRequest)
	}

	c.PrintedReceipts[request.IdempotencyKey] = request
	return nil
}

func (c *PrinterMock) Printed() []entity.PrintReceiptRequest {
	c.lock.Lock()
	defer c.lock.Unlock()

	printed := make([]entity.PrintReceiptRequest, 0, len(c.PrintedReceipts))
	for _, request := range c.PrintedReceipts {
		printed = append(printed, request)
	}
	return printed
}
