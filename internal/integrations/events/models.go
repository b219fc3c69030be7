package events

import (
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// EventType тип доменного события
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingCancelled EventType = "booking.cancelled"
)

// BookingEvent сообщение о создании или отмене бронирования
type BookingEvent struct {
	EventID    string    `json:"event_id"`
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	BookingToken string `json:"booking_token"`
	RoomID       int64  `json:"room_id"`
	RoomName     string `json:"room_name"`
	RoomType     string `json:"room_type"`
	UserID       *int64 `json:"user_id,omitempty"`
	TeamID       *int64 `json:"team_id,omitempty"`
	Date         string `json:"date"`
	Hour         int    `json:"hour"`
}

func newBookingEvent(eventID string, eventType EventType, at time.Time, b *domain.Booking) BookingEvent {
	return BookingEvent{
		EventID:      eventID,
		Type:         eventType,
		OccurredAt:   at.UTC(),
		BookingToken: b.Token,
		RoomID:       b.RoomID,
		RoomName:     b.RoomName,
		RoomType:     string(b.RoomType),
		UserID:       b.UserID,
		TeamID:       b.TeamID,
		Date:         b.Date.Format(domain.DateFormat),
		Hour:         b.Hour,
	}
}
