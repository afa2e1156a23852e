package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking/entity"
)

func TestNewTicketNumber_format(t *testing.T) {
	for i := 0; i < 1000; i++ {
		number := entity.NewTicketNumber()

		require.Len(t, number, 8)
		require.True(t, entity.IsValidTicketNumber(number), "generated %q", number)
	}
}

func TestIsValidTicketNumber(t *testing.T) {
	assert.True(t, entity.IsValidTicketNumber("12345678"))
	assert.False(t, entity.IsValidTicketNumber(""))
	assert.False(t, entity.IsValidTicketNumber("1234567"))
	assert.False(t, entity.IsValidTicketNumber("123456789"))
	assert.False(t, entity.IsValidTicketNumber("1234567a"))
	assert.False(t, entity.IsValidTicketNumber(" 2345678"))
}
