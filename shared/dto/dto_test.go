package dto_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"quickcourt/shared/constant"
	"quickcourt/shared/dto"
	"quickcourt/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "owner-1",
		ModifiedBy: "admin-1",
	})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "owner-1", metadata.CreatedBy)
	assert.Equal(t, "admin-1", metadata.ModifiedBy)
}

func TestMetadata_FromModelNeverModified(t *testing.T) {
	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), CreatedBy: "owner-1"})

	assert.Equal(t, "owner-1", metadata.CreatedBy)
	assert.Empty(t, metadata.ModifiedAt)
	assert.Empty(t, metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "all parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "name",
				"sort_dir": "asc",
			},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: "ASC"},
		},
		{
			name:           "defaults when empty",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "no defaults when disabled",
			queryParams: map[string]string{},
			expected:    dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			queryParams:    map[string]string{"page": "abc", "limit": "-10"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "unknown sort direction is ignored",
			queryParams:    map[string]string{"sort_dir": "sideways"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := url.Values{}
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/venues?"+query.Encode(), nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_RestrictSort(t *testing.T) {
	params := dto.QueryParams{SortBy: "name; DROP TABLE venues", SortDir: ""}
	params.RestrictSort("name", "city")

	assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)
	assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)

	params = dto.QueryParams{SortBy: "city", SortDir: dto.SortDirAsc}
	params.RestrictSort("name", "city")

	assert.Equal(t, "city", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "court_id", Value: "c-1", Operator: dto.FilterOperatorEq, Table: "bookings"},
			dto.Filter{Field: "status", Value: []string{"pending", "confirmed"}, Operator: dto.FilterOperatorIn},
			dto.Filter{Field: "start_time", ArgName: "window_end", Value: "2025-01-01T10:00:00Z", Operator: dto.FilterOperatorLessEq},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.court_id = :court_id AND status IN (:status_0, :status_1)  AND start_time <= :window_end)", where)
	assert.Equal(t, map[string]any{
		"court_id":   "c-1",
		"status_0":   "pending",
		"status_1":   "confirmed",
		"window_end": "2025-01-01T10:00:00Z",
	}, args)
}

func TestFilter_Like(t *testing.T) {
	filter := dto.Filter{Field: "name", Value: "arena", Operator: dto.FilterOperatorLike}

	where, args := filter.GetWhereClause()

	assert.Equal(t, "LOWER(name) LIKE LOWER(:name) ", where)
	assert.Equal(t, "%arena%", args["name"])
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilterGroup_SkipsEmptyAndDefaultsToAnd(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.FilterGroup{},
			dto.Filter{Field: "owner_id", Value: "u-1", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "status", Value: "x", Operator: "unknown"},
			dto.Or(
				dto.Filter{Field: "city", Value: "Pune", Operator: dto.FilterOperatorEq},
				dto.Filter{Field: "city", ArgName: "city_alt", Value: "Mumbai", Operator: dto.FilterOperatorEq},
			),
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(owner_id = :owner_id AND (city = :city OR city = :city_alt))", where)
	assert.Len(t, args, 3)
}

func TestFilter_InEmptySliceMatchesNothing(t *testing.T) {
	filter := dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn}

	where, args := filter.GetWhereClause()

	assert.Equal(t, "FALSE", where)
	assert.Empty(t, args)
}

func TestFilter_AnyMatchesArrayElement(t *testing.T) {
	filter := dto.Filter{Field: "sports", Table: "venues", Value: "tennis", Operator: dto.FilterOperatorAny, ArgName: "sport"}

	where, args := filter.GetWhereClause()

	assert.Equal(t, ":sport = ANY(venues.sports)", where)
	assert.Equal(t, map[string]any{"sport": "tennis"}, args)
}

func TestQueryParams_FromRequestCapsLimit(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/v1/venues?limit=5000", nil)

	params := dto.QueryParams{}
	params.FromRequest(request, true)

	assert.Equal(t, constant.MaxValueLimit, params.Limit)
	assert.Equal(t, constant.DefaultValuePage, params.Page)
}
