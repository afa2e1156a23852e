package pubsub_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"parking/db"
	"parking/entity"
	"parking/gateway"
	"parking/pubsub"
	"parking/pubsub/bus"
	"parking/pubsub/event"
)

// newGoChannelProcessorConfig mirrors the redis processor config with an
// in-process pub/sub, so the router can be exercised without a broker.
func newGoChannelProcessorConfig(pubSub *gochannel.GoChannel, watermillLogger watermill.LoggerAdapter) cqrs.EventProcessorConfig {
	return cqrs.EventProcessorConfig{
		SubscriberConstructor: func(params cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return pubSub, nil
		},
		GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
			return "events." + params.EventName, nil
		},
		Marshaler: cqrs.JSONMarshaler{
			GenerateName: cqrs.StructName,
		},
		Logger: watermillLogger,
	}
}

func TestRouter_consumesDomainEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watermillLogger := watermill.NopLogger{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	eventBus, err := bus.NewEventBus(pubSub)
	require.NoError(t, err)

	gateMock := &gateway.GateMock{}
	printerMock := &gateway.PrinterMock{}
	auditLog := db.NewAuditLog(&db.KVMock{})

	router, err := pubsub.NewWatermillRouter(
		newGoChannelProcessorConfig(pubSub, watermillLogger),
		event.NewHandler(gateMock, printerMock),
		auditLog,
		watermillLogger,
	)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, router.Run(ctx))
		close(done)
	}()
	<-router.Running()

	issued := entity.TicketIssued{
		Header:       entity.NewEventHeaderWithIdempotencyKey(uuid.NewString()),
		TicketID:     uuid.NewString(),
		TicketNumber: "12345678",
		EntryTime:    time.Now().UTC(),
	}
	require.NoError(t, eventBus.Publish(ctx, issued))

	paid := entity.TicketPaid{
		Header:        entity.NewEventHeaderWithIdempotencyKey(uuid.NewString()),
		TicketID:      issued.TicketID,
		TicketNumber:  issued.TicketNumber,
		Amount:        15,
		PaymentMethod: entity.PaymentMethodPix,
		PaidAt:        time.Now().UTC(),
	}
	require.NoError(t, eventBus.Publish(ctx, paid))

	assert.Eventually(t, func() bool {
		events, err := auditLog.Events(ctx)
		if err != nil {
			return false
		}

		return len(gateMock.Entries()) == 1 &&
			len(gateMock.Exits()) == 1 &&
			len(printerMock.Printed()) == 1 &&
			len(events) == 2
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"12345678"}, gateMock.Entries())
	assert.Equal(t, []string{"12345678"}, gateMock.Exits())

	printed := printerMock.Printed()
	require.Len(t, printed, 1)
	assert.Equal(t, 15, printed[0].Amount)
	assert.Equal(t, entity.PaymentMethodPix, printed[0].PaymentMethod)

	cancel()
	<-done
	require.NoError(t, pubSub.Close())
}
