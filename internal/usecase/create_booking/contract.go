package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	LockSlot(ctx context.Context, slot domain.SlotKey) error
	LockRequester(ctx context.Context, requester domain.Requester, date time.Time, hour int) error
	CountForSlot(ctx context.Context, slot domain.SlotKey) (int, error)
	ExistsForSlot(ctx context.Context, slot domain.SlotKey) (bool, error)
	ExistsForUserAtTime(ctx context.Context, userID int64, date time.Time, hour int) (bool, error)
	ExistsForTeamAtTime(ctx context.Context, teamID int64, date time.Time, hour int) (bool, error)
	Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// RoomRepository интерфейс каталога комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// TeamServiceClient интерфейс клиента для TeamService
type TeamServiceClient interface {
	GetTeam(ctx context.Context, teamID int64) (*domain.Team, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует событие после коммита
type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
}

// Metrics счетчики исходов бронирования
type Metrics interface {
	ObserveAdmission(roomType, outcome, reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
