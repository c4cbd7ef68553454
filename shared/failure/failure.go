package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is an error that knows which HTTP status it should be answered with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest turns a validation or parse error into a 400.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound reports a missing entity, e.g. NotFound("booking") → "booking not found".
func NotFound(entity string) error {
	return newFailure(http.StatusNotFound, entity+" not found")
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

// InvalidTransition is the 409 for a lifecycle action the current status does not allow.
func InvalidTransition(entity, status, action string) error {
	return newFailure(http.StatusConflict, fmt.Sprintf("a %s %s cannot be %s", status, entity, action))
}

// StaleWrite is the 409 for a guarded update that matched no row because the status moved.
func StaleWrite(entity string) error {
	return newFailure(http.StatusConflict, entity+" status changed, reload and try again")
}

// GetCode returns the HTTP status carried by err, 500 when it carries none.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
