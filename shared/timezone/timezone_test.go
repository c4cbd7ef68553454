package timezone_test

import (
	"testing"
	"time"

	"quickcourt/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneInit(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestTimezoneFormatAndParse(t *testing.T) {
	formatted := timezone.Format(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "2006-01-02 15:04:05 MST")
	assert.NotEmpty(t, formatted)

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, timezone.GetLocation(), parsed.Location())
}

func TestStartOfDay(t *testing.T) {
	day := timezone.ToAppTime(time.Date(2025, 6, 14, 18, 45, 12, 0, time.UTC))

	start := timezone.StartOfDay(day)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, day.Day(), start.Day())
	assert.False(t, start.After(day))
}

func TestAt(t *testing.T) {
	day, err := timezone.Parse("2006-01-02", "2025-06-14")
	require.NoError(t, err)

	opening, err := timezone.At(day, "06:30")
	require.NoError(t, err)

	assert.Equal(t, 6, opening.Hour())
	assert.Equal(t, 30, opening.Minute())
	assert.Equal(t, 14, opening.Day())
	assert.Equal(t, timezone.GetLocation(), opening.Location())

	_, err = timezone.At(day, "25:00")
	assert.Error(t, err)
}
