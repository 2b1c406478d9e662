package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTicketCode(t *testing.T) {
	createdAt := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "20240305-0007", FormatTicketCode(7, &createdAt))
}

func TestFormatTicketCodeUsesHomeTimeZone(t *testing.T) {
	// 02:00 UTC is still the previous day in Bogota (UTC-5).
	createdAt := time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "20240304-0007", FormatTicketCode(7, &createdAt))
}

func TestFormatTicketCodeWidensPastFourDigits(t *testing.T) {
	createdAt := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "20240305-12345", FormatTicketCode(12345, &createdAt))
}

func TestFormatTicketCodeNilTimestampFallsBack(t *testing.T) {
	code := FormatTicketCode(1, nil)
	assert.Regexp(t, `^\d{8}-0001$`, code)
}

func TestSameCodeDay(t *testing.T) {
	// Both instants are 2024-03-04 in Bogota even though the second is
	// 2024-03-05 in UTC.
	a := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC)
	assert.True(t, SameCodeDay(a, b))

	c := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	assert.False(t, SameCodeDay(a, c))
}
