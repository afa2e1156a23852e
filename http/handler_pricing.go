package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"parking/entity"
	"parking/fee"
)

type pricingRow struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Amount      int    `json:"amount"`
	Formatted   string `json:"formatted"`
}

func (s *Server) GetPricing(c echo.Context) error {
	bands := fee.Bands()

	rows := make([]pricingRow, 0, len(bands))
	for _, band := range bands {
		rows = append(rows, pricingRow{
			Title:       band.Title,
			Description: band.Description,
			Amount:      band.Amount,
			Formatted:   entity.FormatCurrency(band.Amount),
		})
	}

	return c.JSON(http.StatusOK, rows)
}
