package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quickcourt/internal/domains/booking/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusCompleted, true},
		{model.StatusPending, model.StatusCompleted, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
		{model.StatusCompleted, model.StatusCancelled, false},
		{model.StatusConfirmed, model.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestBooking_Overlaps(t *testing.T) {
	base := time.Date(2026, 5, 10, 10, 0, 0, 0, time.UTC)
	booking := model.Booking{StartTime: base, EndTime: base.Add(2 * time.Hour)}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"same range", base, base.Add(2 * time.Hour), true},
		{"inside", base.Add(30 * time.Minute), base.Add(time.Hour), true},
		{"straddles start", base.Add(-time.Hour), base.Add(time.Hour), true},
		{"ends at start", base.Add(-time.Hour), base, false},
		{"starts at end", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Overlaps(tt.start, tt.end))
		})
	}
}
