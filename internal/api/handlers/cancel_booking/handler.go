package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkspaceService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkspaceService/internal/api/middleware"
	cancelBooking "github.com/m04kA/SMC-WorkspaceService/internal/usecase/cancel_booking"
)

const retryAfterSeconds = 1

const (
	msgInvalidToken           = "некорректный токен бронирования"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgNotFound               = "бронирование не найдено"
	msgForbidden              = "доступ запрещен"
	msgTransientConflict      = "сервис перегружен, повторите запрос позже"
	msgTeamServiceUnavailable = "сервис команд недоступен"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{token}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{token}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{Token: token, UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{token}/cancel - Invalid token: %q", token)
			handlers.RespondBadRequest(w, msgInvalidToken)

		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{token}/cancel - Booking not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrForbidden):
			h.logger.Warn("POST /bookings/{token}/cancel - Access denied: token=%s, user_id=%d", token, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelBooking.ErrTransientConflict):
			h.logger.Warn("POST /bookings/{token}/cancel - Transient conflict: token=%s", token)
			handlers.RespondRetryLater(w, retryAfterSeconds, msgTransientConflict)

		case errors.Is(err, cancelBooking.ErrTeamServiceUnavailable):
			h.logger.Error("POST /bookings/{token}/cancel - Team service unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgTeamServiceUnavailable)

		default:
			h.logger.Error("POST /bookings/{token}/cancel - Failed to cancel booking: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{token}/cancel - Booking cancelled successfully: token=%s, user_id=%d, slot=%s",
		token, userID, result.FreedSlot)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
