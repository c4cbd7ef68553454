package court

import (
	"net/http"
	"quickcourt/infras/otel"
	courtModel "quickcourt/internal/domains/court/model"
	"quickcourt/internal/domains/court/model/dto"
	"quickcourt/internal/domains/court/service"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/validator"
	"quickcourt/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Court
	otel    otel.Otel
}

func New(service service.Court, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/courts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCourt)
		routerGroup.Get("/{id}", handler.GetCourtByID)
		routerGroup.Get("/{id}/availability", handler.GetAvailability)
		routerGroup.Patch("/{id}", handler.UpdateCourt)
		routerGroup.Delete("/{id}", handler.DeleteCourt)
	})

	router.Get("/venues/{id}/courts", handler.GetVenueCourts)
}

// CreateCourt adds a court to a venue owned by the caller.
// @Summary Create a new court
// @Tags Court
// @Accept json
// @Produce json
// @Param request body dto.CreateCourtRequest true "Create Court Request"
// @Success 201 {object} response.Data[dto.CourtResponse] "Court created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts [post]
// @Security BearerAuth
func (handler *Handler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCourt")
	defer scope.End()

	req := dto.CreateCourtRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	court, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create court")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Court created successfully")

	response.WithJSON(w, http.StatusCreated, court)
}

// GetVenueCourts lists the courts of a venue.
// @Summary Get courts of a venue
// @Tags Court
// @Produce json
// @Param id path string true "Venue ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetCourtsResponse] "List of courts"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/courts [get]
func (handler *Handler) GetVenueCourts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueCourts")
	defer scope.End()

	venueID := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(courtModel.SortableFields...)

	courts, err := handler.service.GetByVenue(ctx, venueID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get courts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, courts)
}

// GetCourtByID retrieves a court by its ID.
// @Summary Get a court by ID
// @Tags Court
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} response.Data[dto.CourtResponse] "Court details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [get]
func (handler *Handler) GetCourtByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourtByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	court, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get court by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, court)
}

// GetAvailability lists the hourly slots of a court for a date.
// @Summary Get court availability
// @Tags Court
// @Produce json
// @Param id path string true "Court ID"
// @Param date query string true "Date as YYYY-MM-DD"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Court availability"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id}/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	date := r.URL.Query().Get(constant.RequestParamDate)

	if err := validator.ValidateVar(constant.RequestParamDate, date, "required,datetime="+constant.DayFormat); err != nil {
		log.Warn().Err(err).Msg("invalid availability date")

		response.WithError(w, err)

		return
	}

	availability, err := handler.service.Availability(ctx, id, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get court availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, availability)
}

// UpdateCourt updates a court of a venue owned by the caller.
// @Summary Update a court by ID
// @Tags Court
// @Accept json
// @Produce json
// @Param id path string true "Court ID"
// @Param request body dto.UpdateCourtRequest true "Update Court Request"
// @Success 200 {object} response.Message "Court updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCourt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateCourtRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update court")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Court updated successfully")

	response.WithMessage(w, http.StatusOK, "Court updated successfully")
}

// DeleteCourt deletes a court of a venue owned by the caller.
// @Summary Delete a court by ID
// @Tags Court
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} response.Message "Court deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCourt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete court")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Court deleted successfully")

	response.WithMessage(w, http.StatusOK, "Court deleted successfully")
}
