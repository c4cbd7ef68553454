// Package timezone anchors calendar rules to the venue timezone set by APP_TIMEZONE.
//
// Court opening hours are plain "HH:MM" clock times, so a booking window is
// resolved against the calendar date in this timezone:
//
//	day := timezone.StartOfDay(booking.StartTime)
//	opens, err := timezone.At(day, court.OpenTime)
//
// An unknown or empty APP_TIMEZONE falls back to UTC.
package timezone
