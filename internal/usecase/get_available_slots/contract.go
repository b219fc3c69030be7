package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// RoomRepository интерфейс каталога комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	// CountByHourForRoom количество бронирований комнаты по часам на дату
	CountByHourForRoom(ctx context.Context, roomID int64, date time.Time) (map[int]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
