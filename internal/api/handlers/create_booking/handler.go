package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkspaceService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkspaceService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	createBooking "github.com/m04kA/SMC-WorkspaceService/internal/usecase/create_booking"
)

// retryAfterSeconds подсказка клиенту при временном конфликте
const retryAfterSeconds = 1

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDate            = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidRequester       = "нужно указать ровно одно из полей userId или teamId"
	msgInvalidInput           = "некорректные данные бронирования"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgForbidden              = "нельзя бронировать от имени другого пользователя или чужой команды"
	msgRoomNotFound           = "комната не найдена"
	msgTeamNotFound           = "команда не найдена"
	msgSlotTaken              = "слот уже занят"
	msgSharedDeskFull         = "все места в общей комнате на это время заняты"
	msgUserAlreadyBooked      = "у пользователя уже есть бронирование на это время"
	msgTeamAlreadyBooked      = "у команды уже есть бронирование на это время"
	msgIneligibleRoomType     = "этот тип комнаты недоступен для данного владельца брони"
	msgTeamTooSmall           = "в команде слишком мало участников для этой комнаты"
	msgTransientConflict      = "сервис перегружен, повторите запрос позже"
	msgTeamServiceUnavailable = "сервис команд недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и владельца)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, domain.ErrInvalidRequester) {
			handlers.RespondBadRequest(w, msgInvalidRequester)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, &req, userID, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, room_id=%d, owner=%s",
		result.ID, result.RoomID, useCaseReq.Requester)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, req *CreateBookingRequest, userID int64, err error) {
	switch {
	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: user_id=%d, room_id=%d: %v", userID, req.RoomID, err)
		if reason, ok := domain.DenialReason(err); ok {
			handlers.RespondDenied(w, http.StatusBadRequest, reason, msgInvalidInput)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, domain.ErrDenied):
		reason, _ := domain.DenialReason(err)
		h.logger.Info("POST /bookings - Denied: user_id=%d, room_id=%d, reason=%s", userID, req.RoomID, reason)
		handlers.RespondDenied(w, denialStatus(reason), reason, denialMessage(reason))

	case errors.Is(err, createBooking.ErrForbidden):
		h.logger.Warn("POST /bookings - Forbidden: user_id=%d", userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, createBooking.ErrRoomNotFound):
		h.logger.Warn("POST /bookings - Room not found: room_id=%d", req.RoomID)
		handlers.RespondNotFound(w, msgRoomNotFound)

	case errors.Is(err, createBooking.ErrTeamNotFound):
		h.logger.Warn("POST /bookings - Team not found: team_id=%v", req.TeamID)
		handlers.RespondNotFound(w, msgTeamNotFound)

	case errors.Is(err, createBooking.ErrTransientConflict):
		h.logger.Warn("POST /bookings - Transient conflict: user_id=%d, room_id=%d", userID, req.RoomID)
		handlers.RespondRetryLater(w, retryAfterSeconds, msgTransientConflict)

	case errors.Is(err, createBooking.ErrTeamServiceUnavailable):
		h.logger.Error("POST /bookings - Team service unavailable: %v", err)
		handlers.RespondServiceUnavailable(w, msgTeamServiceUnavailable)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
	}
}

// denialStatus отказ по правилам допуска - 422, конфликт занятости - 409
func denialStatus(reason string) int {
	switch reason {
	case domain.ReasonIneligibleRoomType, domain.ReasonTeamTooSmall:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusConflict
	}
}

func denialMessage(reason string) string {
	switch reason {
	case domain.ReasonSlotTaken:
		return msgSlotTaken
	case domain.ReasonSharedDeskFull:
		return msgSharedDeskFull
	case domain.ReasonUserAlreadyBooked:
		return msgUserAlreadyBooked
	case domain.ReasonTeamAlreadyBooked:
		return msgTeamAlreadyBooked
	case domain.ReasonIneligibleRoomType:
		return msgIneligibleRoomType
	case domain.ReasonTeamTooSmall:
		return msgTeamTooSmall
	default:
		return msgSlotTaken
	}
}
