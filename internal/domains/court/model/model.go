package model

import (
	"fmt"
	"time"

	"quickcourt/shared/constant"
	"quickcourt/shared/model"
	"quickcourt/shared/timezone"
)

const (
	TableName  = "courts"
	EntityName = "court"

	FieldID         = "id"
	FieldVenueID    = "venue_id"
	FieldName       = "name"
	FieldSport      = "sport"
	FieldHourlyRate = "hourly_rate"
	FieldOpenTime   = "open_time"
	FieldCloseTime  = "close_time"
	FieldActive     = "active"
)

// SortableFields are the columns a list request may sort by.
var SortableFields = []string{
	FieldName,
	FieldSport,
	FieldHourlyRate,
	constant.FieldCreatedAt,
}

type Court struct {
	ID         string `db:"id"`
	VenueID    string `db:"venue_id"`
	Name       string `db:"name"`
	Sport      string `db:"sport"`
	HourlyRate int64  `db:"hourly_rate"`
	OpenTime   string `db:"open_time"`
	CloseTime  string `db:"close_time"`
	Active     bool   `db:"active"`
	model.Metadata
}

// Window returns the opening hours of the court on day's local calendar date.
func (c Court) Window(day time.Time) (opensAt, closesAt time.Time, err error) {
	opensAt, err = timezone.At(day, c.OpenTime)
	if err != nil {
		return opensAt, closesAt, fmt.Errorf("court open time: %w", err)
	}

	closesAt, err = timezone.At(day, c.CloseTime)
	if err != nil {
		return opensAt, closesAt, fmt.Errorf("court close time: %w", err)
	}

	return opensAt, closesAt, nil
}

// Contains reports whether [start, end) lies inside the court's opening hours
// of start's local date.
func (c Court) Contains(start, end time.Time) (bool, error) {
	opensAt, closesAt, err := c.Window(start)
	if err != nil {
		return false, err
	}

	return !start.Before(opensAt) && !end.After(closesAt), nil
}
