package tournament

import (
	"net/http"
	"quickcourt/infras/otel"
	"quickcourt/internal/domains/tournament/model"
	"quickcourt/internal/domains/tournament/model/dto"
	"quickcourt/internal/domains/tournament/service"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/validator"
	"quickcourt/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Tournament
	otel    otel.Otel
}

func New(service service.Tournament, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tournaments", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTournaments)
		routerGroup.Post("/", handler.CreateTournament)
		routerGroup.Get("/registrations/mine", handler.GetMyRegistrations)
		routerGroup.Get("/{id}", handler.GetTournamentByID)
		routerGroup.Patch("/{id}", handler.UpdateTournament)
		routerGroup.Post("/{id}/cancel", handler.CancelTournament)
		routerGroup.Post("/{id}/register", handler.Register)
		routerGroup.Post("/{id}/withdraw", handler.Withdraw)
		routerGroup.Get("/{id}/registrations", handler.GetRegistrations)
	})
}

// CreateTournament schedules a tournament at a venue.
// @Summary Create a new tournament
// @Tags Tournament
// @Accept json
// @Produce json
// @Param request body dto.CreateTournamentRequest true "Create Tournament Request"
// @Success 201 {object} response.Data[dto.TournamentResponse] "Tournament created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tournaments [post]
// @Security BearerAuth
func (handler *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTournament")
	defer scope.End()

	req := dto.CreateTournamentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	tournament, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create tournament")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tournament created successfully")

	response.WithJSON(w, http.StatusCreated, tournament)
}

// GetTournaments lists tournaments.
// @Summary Get all tournaments
// @Tags Tournament
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param sport query string false "Filter by sport"
// @Param status query string false "Filter by status"
// @Param venue_id query string false "Filter by venue"
// @Success 200 {object} response.Data[dto.GetTournamentsResponse] "List of tournaments"
// @Failure 500 {object} response.Error
// @Router /v1/tournaments [get]
func (handler *Handler) GetTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTournaments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.SortableFields...)

	query := r.URL.Query()
	filterGroup := gDto.And()

	for _, field := range []string{model.FieldSport, model.FieldStatus, model.FieldVenueID} {
		if value := query.Get(field); value != "" {
			filterGroup.Append(gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	tournaments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tournaments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tournaments)
}

// GetTournamentByID retrieves a tournament by its ID.
// @Summary Get a tournament by ID
// @Tags Tournament
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} response.Data[dto.TournamentResponse] "Tournament details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tournaments/{id} [get]
func (handler *Handler) GetTournamentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTournamentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	tournament, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tournament by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tournament)
}

// UpdateTournament updates an upcoming tournament.
// @Summary Update a tournament by ID
// @Tags Tournament
// @Accept json
// @Produce json
// @Param id path string true "Tournament ID"
// @Param request body dto.UpdateTournamentRequest true "Update Tournament Request"
// @Success 200 {object} response.Message "Tournament updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tournaments/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTournament")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTournamentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update tournament")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tournament updated successfully")

	response.WithMessage(w, http.StatusOK, "Tournament updated successfully")
}

// CancelTournament cancels an upcoming or ongoing tournament.
// @Summary Cancel a tournament
// @Tags Tournament
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} response.Message "Tournament cancelled successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tournaments/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelTournament(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelTournament")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel tournament")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tournament cancelled successfully")

	response.WithMessage(w, http.StatusOK, "Tournament cancelled successfully")
}

// Register enters the caller into a tournament.
// @Summary Register for a tournament
// @Tags Tournament
// @Accept json
// @Produce json
// @Param id path string true "Tournament ID"
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Data[dto.RegistrationResponse] "Registered successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tournaments/{id}/register [post]
// @Security BearerAuth
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RegisterRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	registration, err := handler.service.Register(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register for tournament")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Registered for tournament successfully")

	response.WithJSON(w, http.StatusCreated, registration)
}

// Withdraw removes the caller from a tournament before it starts.
// @Summary Withdraw from a tournament
// @Tags Tournament
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} response.Message "Withdrawn successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tournaments/{id}/withdraw [post]
// @Security BearerAuth
func (handler *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Withdraw")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Withdraw(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to withdraw from tournament")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Withdrawn from tournament successfully")

	response.WithMessage(w, http.StatusOK, "Withdrawn successfully")
}

// GetRegistrations lists the entries of a tournament.
// @Summary Get tournament registrations
// @Tags Tournament
// @Produce json
// @Param id path string true "Tournament ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetRegistrationsResponse] "List of registrations"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tournaments/{id}/registrations [get]
// @Security BearerAuth
func (handler *Handler) GetRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRegistrations")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.RegistrationSortableFields...)

	registrations, err := handler.service.GetRegistrations(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tournament registrations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, registrations)
}

// GetMyRegistrations lists the tournament entries of the caller.
// @Summary Get own registrations
// @Tags Tournament
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetRegistrationsResponse] "List of registrations"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tournaments/registrations/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyRegistrations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.RegistrationSortableFields...)

	registrations, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my registrations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, registrations)
}
