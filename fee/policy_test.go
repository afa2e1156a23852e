package fee_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"parking/fee"
)

var entry = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"immediately after entry", 0, 0},
		{"within grace period", 10 * time.Minute, 0},
		{"exactly at grace period", 15 * time.Minute, 0},
		{"just past grace period", 15*time.Minute + time.Second, 15},
		{"one hour", time.Hour, 15},
		{"exactly twelve hours", 12 * time.Hour, 15},
		{"one second past twelve hours", 12*time.Hour + time.Second, 20},
		{"thirteen and a half hours", 13*time.Hour + 30*time.Minute, 25},
		{"exactly fourteen hours", 14 * time.Hour, 25},
		{"a full day", 24 * time.Hour, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fee.Calculate(entry, entry.Add(tt.elapsed)))
		})
	}
}

func TestCalculate_monotonic(t *testing.T) {
	previous := 0
	for elapsed := time.Duration(0); elapsed <= 26*time.Hour; elapsed += 7 * time.Minute {
		amount := fee.Calculate(entry, entry.Add(elapsed))

		assert.GreaterOrEqual(t, amount, previous, "fee decreased at elapsed=%s", elapsed)
		assert.GreaterOrEqual(t, amount, 0)
		previous = amount
	}
}

func TestRemainingFreeMinutes(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"at entry", 0, 15},
		{"five minutes in", 5 * time.Minute, 10},
		{"fourteen and a half minutes in", 14*time.Minute + 30*time.Second, 1},
		{"exactly at grace period", 15 * time.Minute, 0},
		{"past grace period", time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fee.RemainingFreeMinutes(entry, entry.Add(tt.elapsed)))
		})
	}
}

func TestBands(t *testing.T) {
	bands := fee.Bands()

	assert.Len(t, bands, 3)
	assert.Equal(t, 0, bands[0].Amount)
	assert.Equal(t, fee.FlatRate, bands[1].Amount)
	assert.Equal(t, fee.ExtraHourRate, bands[2].Amount)
}
