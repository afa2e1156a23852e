package gateway

import (
	"context"
	"sync"
)

type GateMock struct {
	lock sync.Mutex

	EntryOpenedFor []string
	ExitOpenedFor  []string
}

func (c *GateMock) OpenEntry(ctx context.Context, ticketNumber string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.EntryOpenedFor = append(c.EntryOpenedFor, ticketNumber)
	return nil
}

func (c *GateMock) OpenExit(ctx context.Context, ticketNumber string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.ExitOpenedFor = append(c.ExitOpenedFor, ticketNumber)
	return nil
}

func (c *GateMock) Entries() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	return append([]string(nil), c.EntryOpenedFor...)
}

func (c *GateMock) Exits() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	return append([]string(nil), c.ExitOpenedFor...)
}
