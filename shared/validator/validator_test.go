package validator_test

import (
	"strings"
	"testing"

	"quickcourt/shared/validator"

	"github.com/stretchr/testify/assert"
)

type courtForm struct {
	Name       string `json:"name"        validate:"required"`
	Sport      string `json:"sport"       validate:"required,oneof=badminton tennis football"`
	HourlyRate int64  `json:"hourly_rate" validate:"gt=0"`
	OpenTime   string `json:"open_time"   validate:"required,hhmm"`
	CloseTime  string `json:"close_time"  validate:"required,hhmm"`
}

type contactForm struct {
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age"   validate:"gte=0,lte=120"`
}

func validCourtForm() courtForm {
	return courtForm{
		Name:       "Court A",
		Sport:      "badminton",
		HourlyRate: 15000,
		OpenTime:   "06:00",
		CloseTime:  "22:00",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *courtForm)
		wantError string
	}{
		{
			name:   "valid",
			mutate: func(_ *courtForm) {},
		},
		{
			name:      "missing name",
			mutate:    func(f *courtForm) { f.Name = "" },
			wantError: "Name is required",
		},
		{
			name:      "unknown sport",
			mutate:    func(f *courtForm) { f.Sport = "curling" },
			wantError: "Sport must be one of badminton tennis football",
		},
		{
			name:      "zero rate",
			mutate:    func(f *courtForm) { f.HourlyRate = 0 },
			wantError: "HourlyRate must be greater than 0",
		},
		{
			name:      "clock without leading zero",
			mutate:    func(f *courtForm) { f.OpenTime = "6:00" },
			wantError: "OpenTime must be a clock time formatted as HH:MM",
		},
		{
			name:      "clock out of range",
			mutate:    func(f *courtForm) { f.CloseTime = "24:00" },
			wantError: "CloseTime must be a clock time formatted as HH:MM",
		},
		{
			name:      "clock with seconds",
			mutate:    func(f *courtForm) { f.CloseTime = "22:00:00" },
			wantError: "CloseTime must be a clock time formatted as HH:MM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validCourtForm()
			tt.mutate(&form)

			err := validator.ValidateStruct(&form)

			if tt.wantError == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantError)
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "valid email", field: "test@example.com", tag: "email"},
		{name: "invalid email", field: "invalid-email", tag: "email", expectError: true},
		{name: "number in range", field: 25, tag: "gte=0,lte=100"},
		{name: "number out of range", field: 150, tag: "gte=0,lte=100", expectError: true},
		{name: "valid clock", field: "23:59", tag: "hhmm"},
		{name: "invalid clock", field: "7pm", tag: "hhmm", expectError: true},
		{name: "valid uuid", field: "0b6f0d1e-1f0c-4c8e-9d59-3a4a1f0b8c11", tag: "uuid"},
		{name: "invalid uuid", field: "court-1", tag: "uuid", expectError: true},
		{name: "valid date", field: "2026-05-10", tag: "required,datetime=2006-01-02"},
		{name: "invalid date", field: "10/05/2026", tag: "required,datetime=2006-01-02", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar("value", tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"email":"player@example.com","age":25}`,
		},
		{
			name:        "invalid field",
			jsonBody:    `{"email":"not-an-email","age":25}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data contactForm
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_DecodeErrorIsBadRequest(t *testing.T) {
	var data contactForm
	err := validator.Validate(strings.NewReader(`[`), &data)

	assert.ErrorContains(t, err, "failed to decode request body")
}

func TestValidateVarNamesTheParameter(t *testing.T) {
	assert.EqualError(t, validator.ValidateVar("date", "", "required"), "date is required")
	assert.EqualError(t, validator.ValidateVar("date", "tomorrow", "datetime=2006-01-02"), "date must be formatted as 2006-01-02")
}
