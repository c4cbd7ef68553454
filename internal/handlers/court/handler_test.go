package court_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"quickcourt/infras/otel/mocks"
	"quickcourt/internal/domains/court/model/dto"
	courtMocks "quickcourt/internal/domains/court/service/mocks"
	"quickcourt/internal/handlers/court"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
)

func withID(r *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(constant.RequestParamID, id)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func TestGetAvailability(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode int
		wantBody string
		called   bool
	}{
		{name: "valid date", query: "?date=2026-05-10", wantCode: http.StatusOK, called: true},
		{name: "missing date", query: "", wantCode: http.StatusBadRequest, wantBody: "date is required"},
		{name: "wrong layout", query: "?date=10-05-2026", wantCode: http.StatusBadRequest, wantBody: "date must be formatted as 2006-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := courtMocks.NewMockCourt(gomock.NewController(t))
			handler := court.New(svc, mocks.NewOtel())

			if tt.called {
				svc.EXPECT().Availability(gomock.Any(), "court-1", "2026-05-10").
					Return(dto.AvailabilityResponse{CourtID: "court-1", Date: "2026-05-10"}, nil)
			}

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/v1/courts/court-1/availability"+tt.query, nil)
			handler.GetAvailability(recorder, withID(request, "court-1"))

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}

func TestGetVenueCourtsSort(t *testing.T) {
	svc := courtMocks.NewMockCourt(gomock.NewController(t))
	handler := court.New(svc, mocks.NewOtel())

	svc.EXPECT().GetByVenue(gomock.Any(), "venue-1", gDto.QueryParams{
		Page:    1,
		Limit:   10,
		SortBy:  constant.DefaultValueSortBy,
		SortDir: gDto.SortDirAsc,
	}).Return(dto.GetCourtsResponse{}, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/v1/venues/venue-1/courts?sort_by=name%20ASC,%20(SELECT%201)&sort_dir=asc", nil)
	handler.GetVenueCourts(recorder, withID(request, "venue-1"))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
