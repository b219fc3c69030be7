package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkspaceService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-WorkspaceService/internal/usecase/get_available_slots"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgRoomNotFound  = "комната не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.ParseID(mux.Vars(r)["roomId"])
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/slots - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /rooms/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(roomID, dateStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/slots - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRoomID)

		default:
			h.logger.Error("GET /rooms/{id}/slots - Failed to get slots: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/slots - Slots retrieved successfully: room_id=%d, slots_count=%d",
		roomID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
