package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickcourt/internal/domains/court/model"
	"quickcourt/shared/timezone"
)

func TestCourt_Contains(t *testing.T) {
	court := model.Court{OpenTime: "08:00", CloseTime: "22:00"}
	day := timezone.StartOfDay(time.Date(2026, 5, 10, 12, 0, 0, 0, timezone.GetLocation()))

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"first slot", day.Add(8 * time.Hour), day.Add(9 * time.Hour), true},
		{"last slot", day.Add(21 * time.Hour), day.Add(22 * time.Hour), true},
		{"before opening", day.Add(7 * time.Hour), day.Add(9 * time.Hour), false},
		{"past closing", day.Add(21 * time.Hour), day.Add(23 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := court.Contains(tt.start, tt.end)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCourt_WindowInvalidClock(t *testing.T) {
	court := model.Court{OpenTime: "8am", CloseTime: "22:00"}

	_, _, err := court.Window(time.Now())

	assert.Error(t, err)
}
