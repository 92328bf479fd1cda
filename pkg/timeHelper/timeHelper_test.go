package timehelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestamp_FixedWidthKeepsLexicalOrder(t *testing.T) {
	whole := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	later := whole.Add(time.Millisecond)

	a := Timestamp(whole)
	b := Timestamp(later)

	assert.Equal(t, "2024-03-01T12:00:00.000Z", a, "whole seconds keep the fractional digits")
	assert.Equal(t, "2024-03-01T12:00:00.001Z", b)
	assert.True(t, a < b, "encoded timestamps must sort chronologically")
}

func TestTimestamp_RoundTripsThroughRFC3339(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 42_000_000, time.UTC)

	parsed, err := time.Parse(time.RFC3339Nano, Timestamp(now))
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(now))
}
