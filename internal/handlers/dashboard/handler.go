package dashboard

import (
	"net/http"
	"quickcourt/infras/otel"
	"quickcourt/internal/domains/dashboard/service"
	"quickcourt/shared/constant"
	"quickcourt/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/owner", handler.GetOwnerSummary)
	})
}

// GetOwnerSummary returns venue, court, booking and revenue totals for the caller.
// @Summary Get owner dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.OwnerSummary] "Owner summary"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/owner [get]
// @Security BearerAuth
func (handler *Handler) GetOwnerSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnerSummary")
	defer scope.End()

	summary, err := handler.service.Owner(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get owner dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}
