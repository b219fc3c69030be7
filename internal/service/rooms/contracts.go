package rooms

import (
	"context"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// RoomRepository интерфейс репозитория каталога комнат
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, roomType *domain.RoomType) ([]*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
