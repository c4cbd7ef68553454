package model

import "time"

const (
	EventCreated   = "booking.created"
	EventConfirmed = "booking.confirmed"
	EventCancelled = "booking.cancelled"
	EventCompleted = "booking.completed"

	EventHeaderType = "event_type"
)

// Event is published to the booking topic after every state change.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	CourtID    string    `json:"court_id"`
	VenueID    string    `json:"venue_id"`
	Status     string    `json:"status"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	TotalPrice int64     `json:"total_price"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventFor describes booking after it entered its current status.
func EventFor(eventType string, booking Booking, occurredAt time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		CourtID:    booking.CourtID,
		VenueID:    booking.VenueID,
		Status:     booking.Status,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		TotalPrice: booking.TotalPrice,
		Reason:     booking.CancelReason,
		OccurredAt: occurredAt,
	}
}
