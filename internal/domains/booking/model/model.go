package model

import (
	"slices"
	"time"

	"quickcourt/shared/constant"
	"quickcourt/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldCourtID      = "court_id"
	FieldVenueID      = "venue_id"
	FieldStartTime    = "start_time"
	FieldEndTime      = "end_time"
	FieldHours        = "hours"
	FieldHourlyRate   = "hourly_rate"
	FieldSubtotal     = "subtotal"
	FieldServiceFee   = "service_fee"
	FieldTax          = "tax"
	FieldTotalPrice   = "total_price"
	FieldStatus       = "status"
	FieldCancelledAt  = "cancelled_at"
	FieldCancelReason = "cancel_reason"
)

// SortableFields are the columns a list request may sort by.
var SortableFields = []string{
	FieldStartTime,
	FieldEndTime,
	FieldTotalPrice,
	FieldStatus,
	constant.FieldCreatedAt,
}

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// ActiveStatuses hold a court slot.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// CanTransition reports whether a booking in status from may move to status to.
func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

type Booking struct {
	ID           string     `db:"id"`
	UserID       string     `db:"user_id"`
	CourtID      string     `db:"court_id"`
	VenueID      string     `db:"venue_id"`
	StartTime    time.Time  `db:"start_time"`
	EndTime      time.Time  `db:"end_time"`
	Hours        int        `db:"hours"`
	HourlyRate   int64      `db:"hourly_rate"`
	Subtotal     int64      `db:"subtotal"`
	ServiceFee   int64      `db:"service_fee"`
	Tax          int64      `db:"tax"`
	TotalPrice   int64      `db:"total_price"`
	Status       string     `db:"status"`
	CancelledAt  *time.Time `db:"cancelled_at"`
	CancelReason string     `db:"cancel_reason"`
	model.Metadata
}

// Overlaps reports whether [start, end) intersects the booking's range.
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// StatusCount is one row of a per-status aggregate.
type StatusCount struct {
	Status string `db:"status"`
	Total  int    `db:"total"`
}
