package list_rooms

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkspaceService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkspaceService/internal/service/rooms"
	"github.com/m04kA/SMC-WorkspaceService/internal/service/rooms/models"
)

const (
	msgInvalidType = "некорректный тип комнаты"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms?type=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListRoomsRequest{Type: handlers.ParseOptionalString(r, "type")}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, rooms.ErrInvalidInput) {
			h.logger.Warn("GET /rooms - Invalid room type: %v", err)
			handlers.RespondBadRequest(w, msgInvalidType)
			return
		}
		h.logger.Error("GET /rooms - Failed to list rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms - Rooms retrieved successfully: count=%d", len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, result)
}
