package tournament_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"quickcourt/infras/otel/mocks"
	"quickcourt/internal/domains/tournament/model/dto"
	tournamentMocks "quickcourt/internal/domains/tournament/service/mocks"
	"quickcourt/internal/handlers/tournament"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
)

func TestGetTournamentsSort(t *testing.T) {
	svc := tournamentMocks.NewMockTournament(gomock.NewController(t))
	handler := tournament.New(svc, mocks.NewOtel())

	var got []gDto.QueryParams

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) (dto.GetTournamentsResponse, error) {
			got = append(got, params)

			return dto.GetTournamentsResponse{}, nil
		}).Times(2)

	for _, target := range []string{
		"/v1/tournaments?sort_by=start_date&sort_dir=asc",
		"/v1/tournaments?sort_by=entry_fee%20DESC,%20(SELECT%201)&sort_dir=desc",
	} {
		recorder := httptest.NewRecorder()
		handler.GetTournaments(recorder, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	}

	assert.Equal(t, "start_date", got[0].SortBy)
	assert.Equal(t, gDto.SortDirAsc, got[0].SortDir)
	assert.Equal(t, constant.DefaultValueSortBy, got[1].SortBy)
	assert.Equal(t, gDto.SortDirDesc, got[1].SortDir)
}
