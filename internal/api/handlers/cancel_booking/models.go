package cancel_booking

import (
	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-WorkspaceService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Token     string    `json:"token"`
	RoomID    int64     `json:"roomId"`
	RoomName  string    `json:"roomName"`
	RoomType  string    `json:"roomType"`
	UserID    *int64    `json:"userId,omitempty"`
	TeamID    *int64    `json:"teamId,omitempty"`
	Date      string    `json:"date"`
	Hour      int       `json:"hour"`
	FreedSlot FreedSlot `json:"freedSlot"`
}

// FreedSlot слот, который снова доступен для бронирования
type FreedSlot struct {
	RoomID int64  `json:"roomId"`
	Date   string `json:"date"`
	Hour   int    `json:"hour"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Token:    resp.Token,
		RoomID:   resp.RoomID,
		RoomName: resp.RoomName,
		RoomType: string(resp.RoomType),
		UserID:   resp.UserID,
		TeamID:   resp.TeamID,
		Date:     resp.Date.Format(domain.DateFormat),
		Hour:     resp.Hour,
		FreedSlot: FreedSlot{
			RoomID: resp.FreedSlot.RoomID,
			Date:   resp.FreedSlot.Date.Format(domain.DateFormat),
			Hour:   resp.FreedSlot.Hour,
		},
	}
}
