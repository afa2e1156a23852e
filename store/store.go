// Package store owns the ticket collection. It is the only writer: the
// presentation layer and the message consumers hold read-only snapshots
// or trigger operations here.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"parking/clock"
	"parking/db"
	"parking/entity"
	"parking/fee"
	"parking/metrics"
)

// storageKey holds the whole ticket collection as one JSON array. The
// snapshot is overwritten on every mutation and reloaded wholesale at
// startup.
const storageKey = "tickets"

// maxNumberAttempts bounds the uniqueness retry when drawing a ticket
// number; with ~90M possible values collisions are practically free.
const maxNumberAttempts = 10

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

type Store struct {
	kv       db.KV
	clock    clock.Clock
	eventBus EventPublisher

	mu      sync.RWMutex
	tickets []entity.Ticket
}

func New(kv db.KV, clk clock.Clock, eventBus EventPublisher) *Store {
	if kv == nil {
		panic("kv is nil")
	}
	if clk == nil {
		panic("clock is nil")
	}
	if eventBus == nil {
		panic("eventBus is nil")
	}

	return &Store{
		kv:       kv,
		clock:    clk,
		eventBus: eventBus,
	}
}

// Load replaces the in-memory collection with the persisted snapshot.
// A missing key means a fresh start; any other failure leaves the store
// empty and is returned so the caller can decide to continue anyway.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tickets = nil

	raw, err := s.kv.Get(ctx, storageKey)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not load tickets: %w", err)
	}

	var tickets []entity.Ticket
	if err := json.Unmarshal(raw, &tickets); err != nil {
		return fmt.Errorf("could not unmarshal stored tickets: %w", err)
	}

	s.tickets = tickets
	return nil
}

// Issue creates a new pending ticket. At most one ticket may be pending
// across the whole store; while one exists Issue fails with
// entity.ErrPendingTicketExists and changes nothing.
//
// A persistence failure does not undo the creation: the in-memory
// collection stays authoritative and the snapshot is rewritten on the
// next mutation. The error is returned so callers can report it.
func (s *Store) Issue(ctx context.Context) (entity.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pendingLocked(); ok {
		return entity.Ticket{}, entity.ErrPendingTicketExists
	}

	number, err := s.uniqueNumberLocked()
	if err != nil {
		return entity.Ticket{}, err
	}

	ticket := entity.Ticket{
		ID:        uuid.NewString(),
		Number:    number,
		EntryTime: s.clock.Now(),
		Status:    entity.TicketStatusPending,
	}
	s.tickets = append(s.tickets, ticket)
	metrics.TicketsIssued.Inc()

	persistErr := s.persistLocked(ctx)

	s.publish(ctx, entity.TicketIssued{
		Header:       entity.NewEventHeaderWithIdempotencyKey(ticket.ID),
		TicketID:     ticket.ID,
		TicketNumber: ticket.Number,
		EntryTime:    ticket.EntryTime,
	})

	return ticket, persistErr
}

// Lookup returns the ticket whose number exactly matches. It does no
// format validation; callers validate user input before calling.
func (s *Store) Lookup(number string) (entity.Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Find(s.tickets, func(t entity.Ticket) bool {
		return t.Number == number
	})
}

// Pay finalizes a pending ticket: payment time is stamped, the fee is
// frozen at its value for that instant and the method is recorded. An
// already-paid ticket is passed through unchanged and an unknown number
// yields a zero Ticket; neither is an error, callers detect
// non-application by inspecting Status and PaymentMethod.
func (s *Store) Pay(ctx context.Context, number string, method entity.PaymentMethod) (entity.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, idx, ok := lo.FindIndexOf(s.tickets, func(t entity.Ticket) bool {
		return t.Number == number
	})
	if !ok {
		return entity.Ticket{}, nil
	}
	if !ticket.IsPending() {
		return ticket, nil
	}

	now := s.clock.Now()
	ticket.PaymentTime = &now
	ticket.CurrentValue = fee.Calculate(ticket.EntryTime, now)
	ticket.Status = entity.TicketStatusPaid
	ticket.PaymentMethod = method
	s.tickets[idx] = ticket

	metrics.TicketsPaid.WithLabelValues(string(method)).Inc()

	persistErr := s.persistLocked(ctx)

	s.publish(ctx, entity.TicketPaid{
		Header:        entity.NewEventHeaderWithIdempotencyKey(ticket.ID),
		TicketID:      ticket.ID,
		TicketNumber:  ticket.Number,
		Amount:        ticket.CurrentValue,
		PaymentMethod: ticket.PaymentMethod,
		PaidAt:        now,
	})

	return ticket, persistErr
}

// LiveFee prices a ticket as of now without mutating it. For paid
// tickets the frozen amount is returned instead.
func (s *Store) LiveFee(ticket entity.Ticket) int {
	if !ticket.IsPending() {
		return ticket.CurrentValue
	}
	return fee.Calculate(ticket.EntryTime, s.clock.Now())
}

// FreeMinutesLeft returns the grace-period minutes a pending ticket has
// left before it starts accruing a fee.
func (s *Store) FreeMinutesLeft(ticket entity.Ticket) int {
	if !ticket.IsPending() {
		return 0
	}
	return fee.RemainingFreeMinutes(ticket.EntryTime, s.clock.Now())
}

// Current returns the active ticket: the unique pending one, if any.
// It is a computed view, re-derived on every call rather than stored,
// so it cannot diverge from the collection.
func (s *Store) Current() (entity.Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pendingLocked()
}

func (s *Store) HasPending() bool {
	_, ok := s.Current()
	return ok
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []entity.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entity.Ticket(nil), s.tickets...)
}

func (s *Store) pendingLocked() (entity.Ticket, bool) {
	return lo.Find(s.tickets, func(t entity.Ticket) bool {
		return t.IsPending()
	})
}

func (s *Store) uniqueNumberLocked() (string, error) {
	for i := 0; i < maxNumberAttempts; i++ {
		number := entity.NewTicketNumber()
		taken := lo.SomeBy(s.tickets, func(t entity.Ticket) bool {
			return t.Number == number
		})
		if !taken {
			return number, nil
		}
	}

	return "", errors.New("could not draw an unused ticket number")
}

func (s *Store) persistLocked(ctx context.Context) error {
	tickets := s.tickets
	if tickets == nil {
		tickets = []entity.Ticket{}
	}

	raw, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("could not marshal tickets: %w", err)
	}

	if err := s.kv.Set(ctx, storageKey, raw); err != nil {
		metrics.PersistenceFailures.Inc()
		return fmt.Errorf("could not persist tickets: %w", err)
	}

	return nil
}

// publish is best effort: gates and receipts are collaborators, not
// part of the mutation, and a broker outage must not fail the operation.
func (s *Store) publish(ctx context.Context, event any) {
	if err := s.eventBus.Publish(ctx, event); err != nil {
		log.FromContext(ctx).WithError(err).Error("Failed to publish domain event")
	}
}
