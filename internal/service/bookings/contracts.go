package bookings

import (
	"context"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	GetByTeamID(ctx context.Context, teamID int64) ([]*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TeamServiceClient интерфейс клиента для TeamService
type TeamServiceClient interface {
	IsMember(ctx context.Context, teamID, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
