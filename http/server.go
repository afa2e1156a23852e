// Package http is the presentation facade. Handlers call ticket store
// operations and render the results; no business rules live here.
package http

import (
	"context"
	"errors"
	"net/http"

	echoHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"parking/entity"
)

type TicketStore interface {
	Issue(ctx context.Context) (entity.Ticket, error)
	Lookup(number string) (entity.Ticket, bool)
	Pay(ctx context.Context, number string, method entity.PaymentMethod) (entity.Ticket, error)
	LiveFee(ticket entity.Ticket) int
	FreeMinutesLeft(ticket entity.Ticket) int
	Current() (entity.Ticket, bool)
	All() []entity.Ticket
}

type Server struct {
	addr  string
	e     *echo.Echo
	store TicketStore
}

func NewServer(addr string, store TicketStore) *Server {
	e := echoHTTP.NewEcho()
	e.Use(otelecho.Middleware("parking"))

	server := &Server{
		addr:  addr,
		e:     e,
		store: store,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/tickets", server.PostTicket)
	e.GET("/tickets", server.GetTickets)
	e.GET("/tickets/current", server.GetCurrentTicket)
	e.GET("/tickets/:number", server.GetTicket)
	e.GET("/tickets/:number/fee", server.GetTicketFee)
	e.POST("/tickets/:number/payment", server.PostTicketPayment)

	e.GET("/pricing", server.GetPricing)
	e.GET("/support/contact", server.GetSupportContact)

	return server
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		err := s.e.Shutdown(ctx)
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()

	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
