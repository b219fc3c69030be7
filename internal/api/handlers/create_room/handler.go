package create_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkspaceService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkspaceService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkspaceService/internal/service/rooms"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "создавать комнаты может только администратор каталога"
	msgInvalidRoom        = "некорректные данные комнаты"
	msgRoomExists         = "комната с таким названием уже существует"
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

// Handle POST /api/v1/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /rooms - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	room, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("POST /rooms - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("POST /rooms - Invalid room: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRoom)

		case errors.Is(err, rooms.ErrRoomAlreadyExists):
			h.logger.Warn("POST /rooms - Room already exists: name=%q", req.Name)
			handlers.RespondConflict(w, msgRoomExists)

		default:
			h.logger.Error("POST /rooms - Failed to create room: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms - Room created successfully: room_id=%d, user_id=%d", room.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, room)
}
