package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickcourt/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("end_time must be after start_time")),
			code:    http.StatusBadRequest,
			message: "end_time must be after start_time",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("court is closed at that time"),
			code:    http.StatusBadRequest,
			message: "court is closed at that time",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("invalid token"),
			code:    http.StatusUnauthorized,
			message: "invalid token",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("account is banned"),
			code:    http.StatusForbidden,
			message: "account is banned",
		},
		{
			name:    "not found",
			err:     failure.NotFound("venue"),
			code:    http.StatusNotFound,
			message: "venue not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("email already registered"),
			code:    http.StatusConflict,
			message: "email already registered",
		},
		{
			name:    "invalid transition",
			err:     failure.InvalidTransition("booking", "completed", "cancelled"),
			code:    http.StatusConflict,
			message: "a completed booking cannot be cancelled",
		},
		{
			name:    "stale write",
			err:     failure.StaleWrite("tournament"),
			code:    http.StatusConflict,
			message: "tournament status changed, reload and try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure
			require.ErrorAs(t, tt.err, &fail)
			assert.Equal(t, tt.code, fail.Code)
			assert.Equal(t, tt.message, fail.Error())
		})
	}
}

func TestBadRequestNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "failure", err: failure.NotFound("court"), code: http.StatusNotFound},
		{name: "wrapped failure", err: fmt.Errorf("cancel booking: %w", failure.Conflict("taken")), code: http.StatusConflict},
		{name: "plain error", err: errors.New("connection reset"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}
