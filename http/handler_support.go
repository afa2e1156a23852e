package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"parking/entity"
)

const (
	supportPhone = "tel:+551199999999"
	supportEmail = "mailto:suporte@parkingshopping.com"
)

type supportContactResponse struct {
	WhatsApp string `json:"whatsapp"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// GetSupportContact builds the deep links the kiosk hands to the
// messaging apps. Pure pass-through, no validation of the ticket query.
func (s *Server) GetSupportContact(c echo.Context) error {
	ticketNumber := c.QueryParam("ticket")

	return c.JSON(http.StatusOK, supportContactResponse{
		WhatsApp: entity.SupportWhatsAppURL(ticketNumber),
		Phone:    supportPhone,
		Email:    supportEmail,
	})
}
