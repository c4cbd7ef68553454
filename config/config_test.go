package config_test

import (
	"testing"
	"time"

	"quickcourt/config"

	"github.com/stretchr/testify/assert"
)

func TestGet_AppliesBookingDefaults(t *testing.T) {
	cfg := config.Get()

	assert.NotNil(t, cfg)
	assert.Equal(t, 60, cfg.App.Booking.SlotMinutes)
	assert.Equal(t, 8, cfg.App.Booking.MaxHours)
	assert.Equal(t, 120, cfg.App.Booking.CancellationCutoffMinute)
	assert.InDelta(t, 5.0, cfg.App.Booking.ServiceFeePercent, 0.0001)
	assert.Equal(t, "quickcourt.booking", cfg.Kafka.BookingTopic)
	assert.Equal(t, 60, cfg.Worker.SweepIntervalSeconds)
}

func TestGet_ReturnsSameInstance(t *testing.T) {
	assert.Same(t, config.Get(), config.Get())
}

func TestBooking_SlotSize(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    time.Duration
		wantErr bool
	}{
		{name: "one hour", minutes: 60, want: time.Hour},
		{name: "two hours", minutes: 120, want: 2 * time.Hour},
		{name: "half hour falls back", minutes: 30, want: time.Hour, wantErr: true},
		{name: "ninety minutes falls back", minutes: 90, want: time.Hour, wantErr: true},
		{name: "unset falls back", minutes: 0, want: time.Hour, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := config.Booking{SlotMinutes: tt.minutes}

			assert.Equal(t, tt.want, booking.SlotSize())

			if tt.wantErr {
				assert.Error(t, booking.Validate())
			} else {
				assert.NoError(t, booking.Validate())
			}
		})
	}
}
