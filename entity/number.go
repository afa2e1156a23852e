package entity

import (
	"math/rand"
	"regexp"
	"strconv"
)

// Ticket numbers are drawn uniformly over the full 8-digit range.
const (
	ticketNumberMin = 10_000_000
	ticketNumberMax = 100_000_000
)

var ticketNumberPattern = regexp.MustCompile(`^[0-9]{8}$`)

func NewTicketNumber() string {
	return strconv.Itoa(ticketNumberMin + rand.Intn(ticketNumberMax-ticketNumberMin))
}

// IsValidTicketNumber reports whether s is exactly 8 ASCII digits.
func IsValidTicketNumber(s string) bool {
	return ticketNumberPattern.MatchString(s)
}
