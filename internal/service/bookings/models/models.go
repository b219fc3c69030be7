package models

import (
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	ActorUserID int64      `json:"-"`                   // Кто запрашивает
	UserID      int64      `json:"userId"`              // Чьи бронирования
	StartDate   *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate     *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
}

// GetTeamBookingsRequest запрос на получение бронирований команды
type GetTeamBookingsRequest struct {
	ActorUserID int64      `json:"-"`
	TeamID      int64      `json:"teamId"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

// HasPeriod true, если задана хотя бы одна граница периода
func (r *GetUserBookingsRequest) HasPeriod() bool {
	return r.StartDate != nil || r.EndDate != nil
}

// HasPeriod true, если задана хотя бы одна граница периода
func (r *GetTeamBookingsRequest) HasPeriod() bool {
	return r.StartDate != nil || r.EndDate != nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	Token       string `json:"token"`
	RoomID      int64  `json:"roomId"`
	UserID      *int64 `json:"userId,omitempty"`
	TeamID      *int64 `json:"teamId,omitempty"`
	BookingDate string `json:"bookingDate"` // "2026-03-10"
	Hour        int    `json:"hour"`

	// Денормализованные данные комнаты
	RoomName string `json:"roomName"`
	RoomType string `json:"roomType"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		Token:       b.Token,
		RoomID:      b.RoomID,
		UserID:      b.UserID,
		TeamID:      b.TeamID,
		BookingDate: b.Date.Format(domain.DateFormat),
		Hour:        b.Hour,
		RoomName:    b.RoomName,
		RoomType:    string(b.RoomType),
		CreatedAt:   b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
