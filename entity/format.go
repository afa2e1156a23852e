package entity

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// FormatCurrency renders a whole amount of reais in pt-BR style,
// e.g. 15 -> "R$ 15,00" and 1234 -> "R$ 1.234,00".
func FormatCurrency(amount int) string {
	digits := strconv.Itoa(amount)
	grouped := make([]byte, 0, len(digits)+len(digits)/3)
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}
	return fmt.Sprintf("R$ %s,00", grouped)
}

// FormatElapsed renders the time spent in the facility, e.g.
// "45 minutos" or "3 horas e 12 minutos".
func FormatElapsed(from, to time.Time) string {
	elapsed := to.Sub(from)
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60

	if hours == 0 {
		return fmt.Sprintf("%d minutos", minutes)
	}
	return fmt.Sprintf("%d horas e %d minutos", hours, minutes)
}

const supportWhatsAppNumber = "5511999999999"

// SupportWhatsAppURL builds the wa.me deep link for the support contact,
// mentioning the ticket number when one is given.
func SupportWhatsAppURL(ticketNumber string) string {
	message := "Olá, preciso de ajuda com o estacionamento."
	if ticketNumber != "" {
		message = fmt.Sprintf("Olá, preciso de ajuda com o ticket %s.", ticketNumber)
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", supportWhatsAppNumber, url.QueryEscape(message))
}
