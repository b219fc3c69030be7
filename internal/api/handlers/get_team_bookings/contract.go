package get_team_bookings

import (
	"context"

	"github.com/m04kA/SMC-WorkspaceService/internal/service/bookings/models"
)

type BookingService interface {
	GetTeamBookings(ctx context.Context, req *models.GetTeamBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
