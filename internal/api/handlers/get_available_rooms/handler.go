package get_available_rooms

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkspaceService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	getAvailableRooms "github.com/m04kA/SMC-WorkspaceService/internal/usecase/get_available_rooms"
)

const (
	msgInvalidQuery = "некорректные параметры запроса: type, date (YYYY-MM-DD), hour (9..18)"
	msgDateAndHour  = "параметры date и hour задаются вместе"
)

type Handler struct {
	useCase GetAvailableRoomsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableRoomsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/available?type=&date=&hour=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r)
	if err != nil {
		h.logger.Warn("GET /rooms/available - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableRooms.ErrInvalidInput):
			h.logger.Warn("GET /rooms/available - Invalid input: %v", err)
			if reason, ok := domain.DenialReason(err); ok {
				handlers.RespondDenied(w, http.StatusBadRequest, reason, msgInvalidQuery)
				return
			}
			handlers.RespondBadRequest(w, msgDateAndHour)

		default:
			h.logger.Error("GET /rooms/available - Failed to list rooms: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/available - Rooms retrieved successfully: count=%d", len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
