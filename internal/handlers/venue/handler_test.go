package venue_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"quickcourt/infras/otel/mocks"
	"quickcourt/internal/domains/venue/model/dto"
	venueMocks "quickcourt/internal/domains/venue/service/mocks"
	"quickcourt/internal/handlers/venue"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
)

func TestGetVenuesSort(t *testing.T) {
	tests := []struct {
		name    string
		sortBy  string
		sortDir string
		want    gDto.QueryParams
	}{
		{
			name:    "allowed column",
			sortBy:  "city",
			sortDir: "asc",
			want:    gDto.QueryParams{Page: 1, Limit: 10, SortBy: "city", SortDir: gDto.SortDirAsc},
		},
		{
			name:    "subquery in sort_by",
			sortBy:  "id,(CASE WHEN (SELECT substr(password,1,1) FROM users LIMIT 1)='$' THEN name ELSE city END)",
			sortDir: "asc",
			want:    gDto.QueryParams{Page: 1, Limit: 10, SortBy: constant.DefaultValueSortBy, SortDir: gDto.SortDirAsc},
		},
		{
			name:   "column outside the list",
			sortBy: "owner_id",
			want:   gDto.QueryParams{Page: 1, Limit: 10, SortBy: constant.DefaultValueSortBy, SortDir: constant.DefaultValueSortDir},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := venueMocks.NewMockVenue(gomock.NewController(t))
			handler := venue.New(svc, mocks.NewOtel())

			var got gDto.QueryParams

			svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) (dto.GetVenuesResponse, error) {
					got = params

					return dto.GetVenuesResponse{Venues: []dto.VenueResponse{}, TotalPage: 1}, nil
				})

			query := url.Values{}
			query.Set(constant.RequestParamSortBy, tt.sortBy)
			query.Set(constant.RequestParamSortDir, tt.sortDir)

			recorder := httptest.NewRecorder()
			handler.GetVenues(recorder, httptest.NewRequest(http.MethodGet, "/v1/venues?"+query.Encode(), nil))

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}
