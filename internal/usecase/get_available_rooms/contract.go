package get_available_rooms

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// RoomRepository интерфейс каталога комнат
type RoomRepository interface {
	List(ctx context.Context, roomType *domain.RoomType) ([]*domain.Room, error)
}

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	// CountBySlotForRooms количество бронирований по комнатам на дату и час
	CountBySlotForRooms(ctx context.Context, date time.Time, hour int) (map[int64]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
