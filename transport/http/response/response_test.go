package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickcourt/shared/constant"
	"quickcourt/shared/failure"
	"quickcourt/transport/http/response"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	response.WithJSON(recorder, http.StatusCreated, map[string]string{"id": "booking-1"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, constant.ContentTypeJSON, recorder.Header().Get(constant.RequestHeaderContentType))
	assert.Equal(t, map[string]any{"data": map[string]any{"id": "booking-1"}}, decode(t, recorder))
}

func TestWithMessage(t *testing.T) {
	recorder := httptest.NewRecorder()
	response.WithMessage(recorder, http.StatusOK, "Booking cancelled")

	assert.Equal(t, map[string]any{"message": "Booking cancelled"}, decode(t, recorder))
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "client failure keeps its message",
			err:     fmt.Errorf("create booking: %w", failure.Conflict("court is already booked for that time")),
			code:    http.StatusConflict,
			message: "court is already booked for that time",
		},
		{
			name:    "unexpected error is masked",
			err:     errors.New("pq: password authentication failed"),
			code:    http.StatusInternalServerError,
			message: constant.ResponseErrorInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.code, recorder.Code)
			assert.Equal(t, map[string]any{"error": tt.message}, decode(t, recorder))
		})
	}
}
