package get_booking

import (
	"context"

	"github.com/m04kA/SMC-WorkspaceService/internal/service/bookings/models"
)

type BookingService interface {
	GetByToken(ctx context.Context, token string, userID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
