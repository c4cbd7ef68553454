package venue

import (
	"context"
	"net/http"
	"quickcourt/infras/otel"
	"quickcourt/internal/domains/venue/model"
	"quickcourt/internal/domains/venue/model/dto"
	"quickcourt/internal/domains/venue/service"
	"quickcourt/shared"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/validator"
	"quickcourt/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formName        = "name"
	formDescription = "description"
	formAddress     = "address"
	formCity        = "city"
	formSports      = "sports"
	formAmenities   = "amenities"
	formImage       = "image"

	querySport = "sport"
)

type Handler struct {
	service service.Venue
	otel    otel.Otel
}

func New(service service.Venue, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/venues", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetVenues)
		routerGroup.Post("/", handler.CreateVenue)
		routerGroup.Get("/mine", handler.GetMyVenues)
		routerGroup.Get("/{id}", handler.GetVenueByID)
		routerGroup.Patch("/{id}", handler.UpdateVenue)
		routerGroup.Delete("/{id}", handler.DeleteVenue)
		routerGroup.Post("/{id}/approve", handler.ApproveVenue)
		routerGroup.Post("/{id}/reject", handler.RejectVenue)
	})

	router.Get("/admin/venues", handler.GetAllVenues)
}

// CreateVenue submits a new venue for approval.
// @Summary Create a new venue
// @Description Create a venue owned by the caller. New venues start as pending.
// @Tags Venue
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Venue name"
// @Param description formData string false "Venue description"
// @Param address formData string true "Venue address"
// @Param city formData string true "Venue city"
// @Param sports formData string true "Comma separated sports"
// @Param amenities formData string false "Comma separated amenities"
// @Param image formData file false "Venue image"
// @Success 201 {object} response.Data[dto.VenueResponse] "Venue created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues [post]
// @Security BearerAuth
func (handler *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVenue")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.CreateVenueRequest{
		Name:        r.FormValue(formName),
		Description: r.FormValue(formDescription),
		Address:     r.FormValue(formAddress),
		City:        r.FormValue(formCity),
		Sports:      formList(r, formSports),
		Amenities:   formList(r, formAmenities),
	}

	file, fileHeader, err := r.FormFile(formImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	venue, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue created successfully by user " + shared.ActorFromContext(ctx).UserID)

	response.WithJSON(w, http.StatusCreated, venue)
}

// GetVenues lists approved venues.
// @Summary Get approved venues
// @Description Retrieve approved venues with optional filtering and pagination.
// @Tags Venue
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param city query string false "Filter by city"
// @Param sport query string false "Filter by sport"
// @Success 200 {object} response.Data[dto.GetVenuesResponse] "List of venues"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues [get]
func (handler *Handler) GetVenues(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenues")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.SortableFields...)

	filterGroup := searchFilter(r)
	filterGroup.Append(statusFilter(model.StatusApproved))

	handler.list(ctx, scope, w, queryParams, filterGroup)
}

// GetMyVenues lists the venues owned by the caller.
// @Summary Get own venues
// @Tags Venue
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetVenuesResponse] "List of venues"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyVenues(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyVenues")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.SortableFields...)

	filterGroup := gDto.And(gDto.Filter{
		Field:    model.FieldOwnerID,
		Operator: gDto.FilterOperatorEq,
		Value:    shared.ActorFromContext(ctx).UserID,
		Table:    model.TableName,
	})

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Append(statusFilter(status))
	}

	handler.list(ctx, scope, w, queryParams, filterGroup)
}

// GetAllVenues lists venues of any status for review.
// @Summary Get all venues
// @Tags Venue
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param name query string false "Filter by name"
// @Param city query string false "Filter by city"
// @Param sport query string false "Filter by sport"
// @Success 200 {object} response.Data[dto.GetVenuesResponse] "List of venues"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/venues [get]
// @Security BearerAuth
func (handler *Handler) GetAllVenues(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllVenues")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.SortableFields...)

	filterGroup := searchFilter(r)
	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Append(statusFilter(status))
	}

	handler.list(ctx, scope, w, queryParams, filterGroup)
}

// GetVenueByID retrieves a venue by its ID.
// @Summary Get a venue by ID
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Data[dto.VenueResponse] "Venue details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [get]
func (handler *Handler) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	venue, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, venue)
}

// UpdateVenue updates a venue owned by the caller.
// @Summary Update a venue by ID
// @Description Update venue details. Editing a rejected venue resubmits it for review.
// @Tags Venue
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Venue ID"
// @Param name formData string false "Venue name"
// @Param description formData string false "Venue description"
// @Param address formData string false "Venue address"
// @Param city formData string false "Venue city"
// @Param sports formData string false "Comma separated sports"
// @Param amenities formData string false "Comma separated amenities"
// @Param image formData file false "Venue image"
// @Success 200 {object} response.Message "Venue updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVenue")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateVenueRequest{
		Name:        r.FormValue(formName),
		Description: r.FormValue(formDescription),
		Address:     r.FormValue(formAddress),
		City:        r.FormValue(formCity),
	}

	if sports := formList(r, formSports); len(sports) > 0 {
		req.Sports = sports
	}

	if amenities := formList(r, formAmenities); len(amenities) > 0 {
		req.Amenities = amenities
	}

	file, fileHeader, err := r.FormFile(formImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue updated successfully by user " + shared.ActorFromContext(ctx).UserID)

	response.WithMessage(w, http.StatusOK, "Venue updated successfully")
}

// DeleteVenue deletes a venue owned by the caller.
// @Summary Delete a venue by ID
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Message "Venue deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteVenue")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue deleted successfully by user " + shared.ActorFromContext(ctx).UserID)

	response.WithMessage(w, http.StatusOK, "Venue deleted successfully")
}

// ApproveVenue approves a pending venue.
// @Summary Approve a venue
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Message "Venue approved successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveVenue")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Approve(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve venue")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Venue approved successfully")
}

// RejectVenue rejects a pending venue with a reason.
// @Summary Reject a venue
// @Tags Venue
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param request body dto.RejectVenueRequest true "Reject Venue Request"
// @Success 200 {object} response.Message "Venue rejected successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectVenue")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RejectVenueRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Reject(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject venue")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Venue rejected successfully")
}

func (handler *Handler) list(ctx context.Context, scope otel.Scope, w http.ResponseWriter, queryParams gDto.QueryParams, filterGroup gDto.FilterGroup) {
	venues, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venues")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, venues)
}

func searchFilter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()
	filterGroup := gDto.And()

	if name := query.Get(model.FieldName); name != "" {
		filterGroup.Append(gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if city := query.Get(model.FieldCity); city != "" {
		filterGroup.Append(gDto.Filter{
			Field:    model.FieldCity,
			Operator: gDto.FilterOperatorLike,
			Value:    city,
			Table:    model.TableName,
		})
	}

	if sport := query.Get(querySport); sport != "" {
		filterGroup.Append(gDto.Filter{
			Field:    model.FieldSports,
			ArgName:  querySport,
			Operator: gDto.FilterOperatorAny,
			Value:    sport,
			Table:    model.TableName,
		})
	}

	return filterGroup
}

func statusFilter(status string) gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    status,
		Table:    model.TableName,
	}
}

// formList reads a multi-value form field, accepting repeated keys and comma separated values.
func formList(r *http.Request, key string) []string {
	if r.MultipartForm == nil {
		return nil
	}

	res := []string{}
	for _, value := range r.MultipartForm.Value[key] {
		res = append(res, shared.SplitCSV(value)...)
	}

	return res
}
