package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	instant := time.Date(2026, 8, 25, 1, 30, 0, 0, ist)

	start := startOfDay(instant)

	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, ist), start)
	assert.Equal(t, ist, start.Location())
	// 01:30 IST is still the previous day in UTC; the window must follow
	// the local clock, not UTC midnight.
	assert.NotEqual(t, instant.Truncate(24*time.Hour), start)
}
