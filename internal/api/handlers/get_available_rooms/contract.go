package get_available_rooms

import (
	"context"

	getAvailableRooms "github.com/m04kA/SMC-WorkspaceService/internal/usecase/get_available_rooms"
)

type GetAvailableRoomsUseCase interface {
	Execute(ctx context.Context, req *getAvailableRooms.Request) (*getAvailableRooms.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
