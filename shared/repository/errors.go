package repository

import (
	"errors"
	"fmt"

	"quickcourt/shared/constant"
	"quickcourt/shared/failure"

	"github.com/lib/pq"
)

// TranslateError maps constraint violations reported by postgres to failures
// carrying an HTTP code. It returns nil when err is not a known violation.
func TranslateError(entity string, err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation:
		return failure.Conflict(fmt.Sprintf("%s already exists", entity)) // nolint:wrapcheck
	case constant.PqErrorCodeExclusionViolation:
		return failure.Conflict(fmt.Sprintf("%s overlaps an existing %s", entity, entity)) // nolint:wrapcheck
	case constant.PqErrorCodeFkViolation:
		return failure.BadRequestFromString(fmt.Sprintf("%s references a record that does not exist", entity)) // nolint:wrapcheck
	default:
		return nil
	}
}
