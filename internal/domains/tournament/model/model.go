package model

import (
	"time"

	"quickcourt/shared/constant"
	"quickcourt/shared/model"
)

const (
	TableName  = "tournaments"
	EntityName = "tournament"

	FieldID                   = "id"
	FieldVenueID              = "venue_id"
	FieldName                 = "name"
	FieldSport                = "sport"
	FieldDescription          = "description"
	FieldStartDate            = "start_date"
	FieldEndDate              = "end_date"
	FieldRegistrationDeadline = "registration_deadline"
	FieldMaxParticipants      = "max_participants"
	FieldEntryFee             = "entry_fee"
	FieldStatus               = "status"
)

// SortableFields are the columns a list request may sort by.
var SortableFields = []string{
	FieldName,
	FieldStartDate,
	FieldRegistrationDeadline,
	FieldEntryFee,
	FieldStatus,
	constant.FieldCreatedAt,
}

const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Tournament struct {
	ID                   string    `db:"id"`
	VenueID              string    `db:"venue_id"`
	Name                 string    `db:"name"`
	Sport                string    `db:"sport"`
	Description          string    `db:"description"`
	StartDate            time.Time `db:"start_date"`
	EndDate              time.Time `db:"end_date"`
	RegistrationDeadline time.Time `db:"registration_deadline"`
	MaxParticipants      int       `db:"max_participants"`
	EntryFee             int64     `db:"entry_fee"`
	Status               string    `db:"status"`
	model.Metadata
}

// RegistrationOpen reports whether teams may still sign up at now.
func (t Tournament) RegistrationOpen(now time.Time) bool {
	return t.Status == StatusUpcoming && now.Before(t.RegistrationDeadline)
}

// ValidateSchedule checks that registration closes no later than the start
// and that the tournament ends after it starts.
func ValidateSchedule(start, end, deadline time.Time) error {
	if !end.After(start) {
		return ErrEndBeforeStart
	}

	if deadline.After(start) {
		return ErrDeadlineAfterStart
	}

	return nil
}
