package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	Token  string // Токен бронирования
	UserID int64  // Кто отменяет (X-User-ID)
}

// Response отмененное бронирование и освобожденный слот
type Response struct {
	Token     string
	RoomID    int64
	RoomName  string
	RoomType  domain.RoomType
	UserID    *int64
	TeamID    *int64
	Date      time.Time
	Hour      int
	FreedSlot domain.SlotKey
}

func newResponse(b *domain.Booking) *Response {
	return &Response{
		Token:     b.Token,
		RoomID:    b.RoomID,
		RoomName:  b.RoomName,
		RoomType:  b.RoomType,
		UserID:    b.UserID,
		TeamID:    b.TeamID,
		Date:      b.Date,
		Hour:      b.Hour,
		FreedSlot: b.Slot(),
	}
}
