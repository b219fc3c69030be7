package create_booking

import (
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	createBooking "github.com/m04kA/SMC-WorkspaceService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// Задается ровно одно из полей userId или teamId
type CreateBookingRequest struct {
	RoomID int64  `json:"roomId" validate:"required,gt=0"`
	Date   string `json:"date" validate:"required"` // "2026-03-10"
	Hour   *int   `json:"hour" validate:"required"`
	UserID *int64 `json:"userId,omitempty" validate:"omitempty,gt=0"`
	TeamID *int64 `json:"teamId,omitempty" validate:"omitempty,gt=0"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	Token     string `json:"token"`
	RoomID    int64  `json:"roomId"`
	RoomName  string `json:"roomName"`
	RoomType  string `json:"roomType"`
	UserID    *int64 `json:"userId,omitempty"`
	TeamID    *int64 `json:"teamId,omitempty"`
	Date      string `json:"date"`
	Hour      int    `json:"hour"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actorUserID int64) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	requester, err := domain.NewRequester(r.UserID, r.TeamID)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		RoomID:      r.RoomID,
		Date:        date,
		Hour:        *r.Hour,
		Requester:   requester,
		ActorUserID: actorUserID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		Token:     resp.Token,
		RoomID:    resp.RoomID,
		RoomName:  resp.RoomName,
		RoomType:  string(resp.RoomType),
		UserID:    resp.UserID,
		TeamID:    resp.TeamID,
		Date:      resp.Date.Format(domain.DateFormat),
		Hour:      resp.Hour,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
