package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkspaceService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkspaceService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkspaceService/internal/service/bookings"
)

const (
	msgInvalidToken           = "некорректный токен бронирования"
	msgNotFound               = "бронирование не найдено"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgForbidden              = "доступ запрещен"
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

// Handle GET /api/v1/bookings/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{token} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем бронирование (сервис сам проверит права доступа)
	booking, err := h.service.GetByToken(r.Context(), token, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{token} - Invalid token")
			handlers.RespondBadRequest(w, msgInvalidToken)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{token} - Booking not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{token} - Access denied: token=%s, user_id=%d", token, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrTeamServiceUnavailable):
			h.logger.Error("GET /bookings/{token} - Team service unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgTeamServiceUnavailable)

		default:
			h.logger.Error("GET /bookings/{token} - Failed to get booking: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{token} - Booking retrieved successfully: booking_id=%d, user_id=%d",
		booking.ID, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
