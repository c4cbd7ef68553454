package model

import "errors"

var (
	ErrEndBeforeStart     = errors.New("end_date must be after start_date")
	ErrDeadlineAfterStart = errors.New("registration_deadline must not be after start_date")
)
