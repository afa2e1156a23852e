package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking/clock"
	"parking/db"
	"parking/entity"
	"parking/store"
)

type eventBusStub struct {
	lock      sync.Mutex
	published []any
}

func (b *eventBusStub) Publish(ctx context.Context, event any) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.published = append(b.published, event)
	return nil
}

func (b *eventBusStub) Published() []any {
	b.lock.Lock()
	defer b.lock.Unlock()

	return append([]any(nil), b.published...)
}

var entryTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*store.Store, *db.KVMock, *clock.Fixed, *eventBusStub) {
	t.Helper()

	kv := &db.KVMock{}
	clk := clock.NewFixed(entryTime)
	eventBus := &eventBusStub{}

	s := store.New(kv, clk, eventBus)
	require.NoError(t, s.Load(context.Background()))

	return s, kv, clk, eventBus
}

func TestIssue(t *testing.T) {
	ctx := context.Background()
	s, kv, _, eventBus := newTestStore(t)

	ticket, err := s.Issue(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, ticket.ID)
	assert.True(t, entity.IsValidTicketNumber(ticket.Number))
	assert.Equal(t, entryTime, ticket.EntryTime)
	assert.Equal(t, entity.TicketStatusPending, ticket.Status)
	assert.Zero(t, ticket.CurrentValue)
	assert.Nil(t, ticket.PaymentTime)
	assert.Empty(t, ticket.PaymentMethod)

	// the snapshot was written and the issued event published
	assert.Contains(t, kv.Values, "tickets")
	require.Len(t, eventBus.Published(), 1)
	issued, ok := eventBus.Published()[0].(entity.TicketIssued)
	require.True(t, ok)
	assert.Equal(t, ticket.Number, issued.TicketNumber)
}

func TestIssue_singlePendingInvariant(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	first, err := s.Issue(ctx)
	require.NoError(t, err)

	second, err := s.Issue(ctx)
	require.ErrorIs(t, err, entity.ErrPendingTicketExists)
	assert.True(t, second.IsZero())

	// the existing pending ticket is untouched
	unchanged, ok := s.Lookup(first.Number)
	require.True(t, ok)
	assert.Equal(t, first, unchanged)
	assert.Len(t, s.All(), 1)
}

func TestPay(t *testing.T) {
	ctx := context.Background()
	s, _, clk, eventBus := newTestStore(t)

	ticket, err := s.Issue(ctx)
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	paidAt := clk.Now()

	paid, err := s.Pay(ctx, ticket.Number, entity.PaymentMethodPix)
	require.NoError(t, err)

	assert.Equal(t, entity.TicketStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentTime)
	assert.Equal(t, paidAt, *paid.PaymentTime)
	assert.Equal(t, 15, paid.CurrentValue)
	assert.Equal(t, entity.PaymentMethodPix, paid.PaymentMethod)

	require.Len(t, eventBus.Published(), 2)
	event, ok := eventBus.Published()[1].(entity.TicketPaid)
	require.True(t, ok)
	assert.Equal(t, 15, event.Amount)
	assert.Equal(t, entity.PaymentMethodPix, event.PaymentMethod)
}

func TestPay_freezesFee(t *testing.T) {
	ctx := context.Background()
	s, _, clk, _ := newTestStore(t)

	ticket, err := s.Issue(ctx)
	require.NoError(t, err)

	clk.Advance(13*time.Hour + 30*time.Minute)
	paid, err := s.Pay(ctx, ticket.Number, entity.PaymentMethodCredit)
	require.NoError(t, err)
	assert.Equal(t, 25, paid.CurrentValue)

	// the amount stays frozen as time keeps passing
	clk.Advance(5 * time.Hour)
	assert.Equal(t, 25, s.LiveFee(paid))
}

func TestPay_isNoOpWhenNotPending(t *testing.T) {
	ctx := context.Background()
	s, _, clk, eventBus := newTestStore(t)

	ticket, err := s.Issue(ctx)
	require.NoError(t, err)

	clk.Advance(time.Hour)
	paid, err := s.Pay(ctx, ticket.Number, entity.PaymentMethodDebit)
	require.NoError(t, err)

	// paying again passes the entry through unchanged
	clk.Advance(time.Hour)
	again, err := s.Pay(ctx, ticket.Number, entity.PaymentMethodPix)
	require.NoError(t, err)
	assert.Equal(t, paid, again)
	assert.Equal(t, entity.PaymentMethodDebit, again.PaymentMethod)

	// paying an unknown number yields a zero ticket and no error
	missing, err := s.Pay(ctx, "00000000", entity.PaymentMethodPix)
	require.NoError(t, err)
	assert.True(t, missing.IsZero())

	// only the original payment published an event
	assert.Len(t, eventBus.Published(), 2)
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	ticket, err := s.Issue(ctx)
	require.NoError(t, err)

	found, ok := s.Lookup(ticket.Number)
	require.True(t, ok)
	assert.Equal(t, ticket, found)

	_, ok = s.Lookup("00000000")
	assert.False(t, ok)
}

func TestLiveFee(t *testing.T) {
	ctx := context.Background()
	s, _, clk, _ := newTestStore(t)

	ticket, err := s.Issue(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, s.LiveFee(ticket))
	assert.Equal(t, 15, s.FreeMinutesLeft(ticket))

	clk.Advance(30 * time.Minute)
	assert.Equal(t, 15, s.LiveFee(ticket))
	assert.Equal(t, 0, s.FreeMinutesLeft(ticket))

	// pricing a ticket never mutates it
	unchanged, ok := s.Lookup(ticket.Number)
	require.True(t, ok)
	assert.Zero(t, unchanged.CurrentValue)
}

func TestCurrent(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	_, ok := s.Current()
	assert.False(t, ok)
	assert.False(t, s.HasPending())

	ticket, err := s.Issue(ctx)
	require.NoError(t, err)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, ticket.Number, current.Number)

	_, err = s.Pay(ctx, ticket.Number, entity.PaymentMethodPix)
	require.NoError(t, err)

	_, ok = s.Current()
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, kv, clk, _ := newTestStore(t)

	first, err := s.Issue(ctx)
	require.NoError(t, err)
	clk.Advance(time.Hour)
	_, err = s.Pay(ctx, first.Number, entity.PaymentMethodPix)
	require.NoError(t, err)

	second, err := s.Issue(ctx)
	require.NoError(t, err)

	// a fresh store over the same storage sees the same collection and
	// re-derives the pending pointer
	reloaded := store.New(kv, clk, &eventBusStub{})
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, s.All(), reloaded.All())

	current, ok := reloaded.Current()
	require.True(t, ok)
	assert.Equal(t, second.Number, current.Number)
}

func TestLoad_failuresDegradeToEmpty(t *testing.T) {
	ctx := context.Background()

	kv := &db.KVMock{}
	require.NoError(t, kv.Set(ctx, "tickets", []byte("not json")))

	s := store.New(kv, clock.NewFixed(entryTime), &eventBusStub{})
	require.Error(t, s.Load(ctx))
	assert.Empty(t, s.All())

	kv.GetErr = errors.New("storage unavailable")
	require.Error(t, s.Load(ctx))
	assert.Empty(t, s.All())
}

func TestPersistenceFailure_memoryStaysAuthoritative(t *testing.T) {
	ctx := context.Background()
	s, kv, clk, _ := newTestStore(t)

	kv.SetErr = errors.New("storage unavailable")

	ticket, err := s.Issue(ctx)
	require.Error(t, err)
	assert.False(t, ticket.IsZero())

	// the collection still has the ticket despite the failed write
	found, ok := s.Lookup(ticket.Number)
	require.True(t, ok)
	assert.Equal(t, ticket.Number, found.Number)

	// the next mutation rewrites the whole snapshot
	kv.SetErr = nil
	clk.Advance(time.Hour)
	_, err = s.Pay(ctx, ticket.Number, entity.PaymentMethodDebit)
	require.NoError(t, err)

	reloaded := store.New(kv, clk, &eventBusStub{})
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, s.All(), reloaded.All())
}

func TestScenario_fullLifecycle(t *testing.T) {
	ctx := context.Background()
	s, _, clk, _ := newTestStore(t)

	ticketA, err := s.Issue(ctx)
	require.NoError(t, err)

	found, ok := s.Lookup(ticketA.Number)
	require.True(t, ok)
	assert.Equal(t, entity.TicketStatusPending, found.Status)

	_, err = s.Issue(ctx)
	require.ErrorIs(t, err, entity.ErrPendingTicketExists)
	unchanged, ok := s.Lookup(ticketA.Number)
	require.True(t, ok)
	assert.Equal(t, ticketA, unchanged)

	clk.Advance(time.Hour)
	paid, err := s.Pay(ctx, ticketA.Number, entity.PaymentMethodPix)
	require.NoError(t, err)
	assert.Equal(t, entity.TicketStatusPaid, paid.Status)
	assert.Equal(t, entity.PaymentMethodPix, paid.PaymentMethod)

	ticketC, err := s.Issue(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, ticketA.Number, ticketC.Number)
	assert.Len(t, s.All(), 2)
}
