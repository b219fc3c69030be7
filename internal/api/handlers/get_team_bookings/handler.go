package get_team_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkspaceService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkspaceService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkspaceService/internal/service/bookings"
	"github.com/m04kA/SMC-WorkspaceService/internal/service/bookings/models"
)

const (
	msgInvalidTeamID          = "некорректный ID команды"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod          = "конец периода раньше начала"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgForbidden              = "бронирования команды доступны только ее участникам"
	msgTeamServiceUnavailable = "сервис команд недоступен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/teams/{teamId}/bookings?startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	teamID, err := handlers.ParseID(mux.Vars(r)["teamId"])
	if err != nil {
		h.logger.Warn("GET /teams/{teamId}/bookings - Invalid team ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeamID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /teams/{teamId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	startDate, err := handlers.ParseOptionalDate(r, "startDate")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := handlers.ParseOptionalDate(r, "endDate")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetTeamBookings(r.Context(), &models.GetTeamBookingsRequest{
		ActorUserID: actorID,
		TeamID:      teamID,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /teams/{teamId}/bookings - Access denied: team_id=%d, user_id=%d", teamID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidTeamID)

		case errors.Is(err, bookings.ErrTeamServiceUnavailable):
			h.logger.Error("GET /teams/{teamId}/bookings - Team service unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgTeamServiceUnavailable)

		default:
			h.logger.Error("GET /teams/{teamId}/bookings - Failed to get bookings: team_id=%d, error=%v", teamID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /teams/{teamId}/bookings - Bookings retrieved successfully: team_id=%d, count=%d",
		teamID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
