package timezone

import (
	"fmt"
	"time"

	"quickcourt/config"

	"github.com/rs/zerolog/log"
)

const clockLayout = "15:04"

var venueLocation *time.Location

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("APP_TIMEZONE not set, venue calendar runs on UTC")

		venueLocation = time.UTC

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, venue calendar runs on UTC")

		venueLocation = time.UTC

		return
	}

	venueLocation = loc

	log.Info().Str("timezone", loc.String()).Msg("venue timezone loaded")
}

func location() *time.Location {
	if venueLocation == nil {
		return time.UTC
	}

	return venueLocation
}

// GetLocation returns the venue timezone.
func GetLocation() *time.Location {
	return location()
}

// Now returns the wall clock in the venue timezone.
func Now() time.Time {
	return time.Now().In(location())
}

// ToAppTime converts t to the venue timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

// Parse reads value as a venue-local time.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// StartOfDay returns venue-local midnight of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	year, month, day := ToAppTime(t).Date()

	return time.Date(year, month, day, 0, 0, 0, 0, location())
}

// At returns the instant at the "HH:MM" clock time on day's venue-local date.
func At(day time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}

	year, month, date := ToAppTime(day).Date()

	return time.Date(year, month, date, parsed.Hour(), parsed.Minute(), 0, 0, location()), nil
}
