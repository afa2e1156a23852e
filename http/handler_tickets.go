package http

import (
	"errors"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"

	"parking/entity"
)

type paymentRequest struct {
	Method entity.PaymentMethod `json:"method"`
}

type feeResponse struct {
	Number               string `json:"number"`
	Amount               int    `json:"amount"`
	Formatted            string `json:"formatted"`
	RemainingFreeMinutes int    `json:"remainingFreeMinutes"`
}

func (s *Server) PostTicket(c echo.Context) error {
	ticket, err := s.store.Issue(c.Request().Context())
	if errors.Is(err, entity.ErrPendingTicketExists) {
		return echo.NewHTTPError(http.StatusConflict, "a pending ticket already exists")
	}
	if err != nil {
		if ticket.IsZero() {
			return err
		}
		// the ticket exists in memory; the snapshot write is retried on
		// the next mutation
		log.FromContext(c.Request().Context()).WithError(err).Error("ticket issued but snapshot write failed")
	}

	return c.JSON(http.StatusCreated, ticket)
}

func (s *Server) GetTickets(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.All())
}

func (s *Server) GetCurrentTicket(c echo.Context) error {
	ticket, ok := s.store.Current()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no pending ticket")
	}

	return c.JSON(http.StatusOK, ticket)
}

func (s *Server) GetTicket(c echo.Context) error {
	number := c.Param("number")
	if !entity.IsValidTicketNumber(number) {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket number must be exactly 8 digits")
	}

	ticket, ok := s.store.Lookup(number)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, entity.ErrTicketNotFound.Error())
	}

	return c.JSON(http.StatusOK, ticket)
}

func (s *Server) GetTicketFee(c echo.Context) error {
	number := c.Param("number")
	if !entity.IsValidTicketNumber(number) {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket number must be exactly 8 digits")
	}

	ticket, ok := s.store.Lookup(number)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, entity.ErrTicketNotFound.Error())
	}

	amount := s.store.LiveFee(ticket)

	return c.JSON(http.StatusOK, feeResponse{
		Number:               ticket.Number,
		Amount:               amount,
		Formatted:            entity.FormatCurrency(amount),
		RemainingFreeMinutes: s.store.FreeMinutesLeft(ticket),
	})
}

func (s *Server) PostTicketPayment(c echo.Context) error {
	number := c.Param("number")
	if !entity.IsValidTicketNumber(number) {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket number must be exactly 8 digits")
	}

	var request paymentRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if !request.Method.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "payment method must be one of: pix, credit, debit")
	}

	if _, ok := s.store.Lookup(number); !ok {
		return echo.NewHTTPError(http.StatusNotFound, entity.ErrTicketNotFound.Error())
	}

	ticket, err := s.store.Pay(c.Request().Context(), number, request.Method)
	if err != nil {
		log.FromContext(c.Request().Context()).WithError(err).Error("payment recorded but snapshot write failed")
	}

	// an already-paid ticket comes back unchanged; the client can tell
	// by comparing paymentTime with what it already had
	return c.JSON(http.StatusOK, ticket)
}
