package service

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"parking/clock"
	"parking/db"
	"parking/http"
	"parking/pubsub"
	"parking/pubsub/bus"
	"parking/pubsub/event"
	"parking/store"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	ticketStore     *store.Store
	watermillRouter *message.Router
	httpServer      *http.Server
}

func New(
	addr string,
	redisClient *redis.Client,
	gateService event.GateService,
	receiptPrinter event.ReceiptPrinter,
) Service {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	var redisPublisher message.Publisher
	redisPublisher = pubsub.NewRedisPublisher(redisClient, watermillLogger)
	redisPublisher = log.CorrelationPublisherDecorator{Publisher: redisPublisher}

	eventBus, err := bus.NewEventBus(redisPublisher)
	if err != nil {
		panic(fmt.Errorf("failed to create event bus: %w", err))
	}

	kv := db.NewRedisKV(redisClient)
	ticketStore := store.New(kv, clock.NewSystem(), eventBus)
	auditLog := db.NewAuditLog(kv)

	eventsHandler := event.NewHandler(gateService, receiptPrinter)
	eventProcessorConfig := event.NewProcessorConfig(redisClient, watermillLogger)

	watermillRouter, err := pubsub.NewWatermillRouter(
		eventProcessorConfig,
		eventsHandler,
		auditLog,
		watermillLogger,
	)
	if err != nil {
		panic(fmt.Errorf("failed to create watermill router: %w", err))
	}

	httpServer := http.NewServer(addr, ticketStore)

	return Service{
		ticketStore,
		watermillRouter,
		httpServer,
	}
}

func (s Service) Run(ctx context.Context) error {
	// a broken snapshot must not keep the facility closed
	if err := s.ticketStore.Load(ctx); err != nil {
		log.FromContext(ctx).WithError(err).Warn("could not load stored tickets, starting empty")
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	g.Go(func() error {
		// don't start HTTP before the router is consuming, so the service
		// isn't reported healthy before it is ready
		<-s.watermillRouter.Running()

		return s.httpServer.Run(ctx)
	})

	return g.Wait()
}
