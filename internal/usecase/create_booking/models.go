package create_booking

import (
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	RoomID      int64            // ID комнаты
	Date        time.Time        // Дата бронирования (без времени)
	Hour        int              // Час начала слота, 9..18
	Requester   domain.Requester // Владелец брони: пользователь или команда
	ActorUserID int64            // Кто выполняет запрос (X-User-ID)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	Token     string
	RoomID    int64
	RoomName  string
	RoomType  domain.RoomType
	UserID    *int64
	TeamID    *int64
	Date      time.Time
	Hour      int
	CreatedAt time.Time
}

func newResponse(b *domain.Booking) *Response {
	return &Response{
		ID:        b.ID,
		Token:     b.Token,
		RoomID:    b.RoomID,
		RoomName:  b.RoomName,
		RoomType:  b.RoomType,
		UserID:    b.UserID,
		TeamID:    b.TeamID,
		Date:      b.Date,
		Hour:      b.Hour,
		CreatedAt: b.CreatedAt,
	}
}
