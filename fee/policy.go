// Package fee implements the parking pricing policy: a grace period on
// entry, a flat rate up to twelve hours and a per-hour charge beyond it.
package fee

import (
	"math"
	"time"
)

const (
	// GracePeriod is free parking time counted from entry.
	GracePeriod = 15 * time.Minute
	// FlatRate is charged for any stay longer than the grace period,
	// up to FlatRateWindow.
	FlatRate       = 15
	FlatRateWindow = 12 * time.Hour
	// ExtraHourRate is charged per started hour past FlatRateWindow.
	ExtraHourRate = 5
)

// Calculate prices a stay that started at entryTime and is evaluated at
// now. Any fraction of an hour past the flat-rate window counts as a
// full extra hour.
func Calculate(entryTime, now time.Time) int {
	elapsed := now.Sub(entryTime)

	if elapsed <= GracePeriod {
		return 0
	}
	if elapsed <= FlatRateWindow {
		return FlatRate
	}

	extraHours := int(math.Ceil((elapsed - FlatRateWindow).Hours()))
	return FlatRate + extraHours*ExtraHourRate
}

// RemainingFreeMinutes returns how many whole minutes of the grace
// period are left, or zero once it has run out.
func RemainingFreeMinutes(entryTime, now time.Time) int {
	minutes := int(now.Sub(entryTime).Minutes())
	if minutes < int(GracePeriod.Minutes()) {
		return int(GracePeriod.Minutes()) - minutes
	}
	return 0
}

// Band is one row of the pricing table shown to drivers.
type Band struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Amount      int    `json:"amount"`
}

func Bands() []Band {
	return []Band{
		{
			Title:       "Primeiros 15 minutos",
			Description: "Tolerância para entrada e saída do shopping",
			Amount:      0,
		},
		{
			Title:       "Até 12 horas",
			Description: "Valor fixo para período regular",
			Amount:      FlatRate,
		},
		{
			Title:       "Após 12 horas",
			Description: "Valor adicional por hora excedente",
			Amount:      ExtraHourRate,
		},
	}
}
