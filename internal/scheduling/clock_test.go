package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	minutes, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, minutes)
}

func TestParseClockRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "9", "9:30:00", "24:00", "12:60", "ab:cd"} {
		_, err := ParseClock(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestFormatClockRoundTrips(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "13:45", FormatClock(825))
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	assert.True(t, overlaps(540, 600, 570, 630))
	assert.True(t, overlaps(540, 600, 540, 600))
	// Back-to-back intervals do not overlap.
	assert.False(t, overlaps(540, 600, 600, 660))
	assert.False(t, overlaps(540, 600, 660, 720))
}

func TestBreakRespected(t *testing.T) {
	assert.True(t, breakRespected(600, 615, 15))
	assert.True(t, breakRespected(600, 700, 15))
	assert.False(t, breakRespected(600, 610, 15))
	assert.False(t, breakRespected(600, 600, 15))
}
