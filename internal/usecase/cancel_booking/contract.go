package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	LockSlot(ctx context.Context, slot domain.SlotKey) error
	DeleteByToken(ctx context.Context, token string) (*domain.Booking, error)
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
	BookingCancelled(ctx context.Context, booking *domain.Booking) error
}

// Metrics счетчики исходов отмены
type Metrics interface {
	ObserveCancellation(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
