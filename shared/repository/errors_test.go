package repository_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"quickcourt/shared/failure"
	"quickcourt/shared/repository"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "unique violation",
			err:      &pq.Error{Code: "23505"},
			wantCode: http.StatusConflict,
			wantMsg:  "user already exists",
		},
		{
			name:     "exclusion violation wrapped",
			err:      fmt.Errorf("insert: %w", &pq.Error{Code: "23P01"}),
			wantCode: http.StatusConflict,
			wantMsg:  "user overlaps an existing user",
		},
		{
			name:     "foreign key violation",
			err:      &pq.Error{Code: "23503"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "user references a record that does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.TranslateError("user", tt.err)

			assert.Equal(t, tt.wantCode, failure.GetCode(got))
			assert.EqualError(t, got, tt.wantMsg)
		})
	}
}

func TestTranslateError_Unknown(t *testing.T) {
	assert.NoError(t, repository.TranslateError("user", errors.New("connection reset")))
	assert.NoError(t, repository.TranslateError("user", &pq.Error{Code: "42P01"}))
}
