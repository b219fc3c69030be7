package domain

import "time"

// Booking represents an active reservation of one slot by a user or a team.
// Bookings are never mutated: they are created by admission and removed by cancellation.
type Booking struct {
	ID     int64
	Token  string // external reference, used for cancellation
	RoomID int64
	UserID *int64
	TeamID *int64
	Date   time.Time
	Hour   int

	// Denormalized room data for history
	RoomName string
	RoomType RoomType

	CreatedAt time.Time
}

// Requester returns the owner of the booking
func (b *Booking) Requester() Requester {
	if b.TeamID != nil {
		return TeamRequester(*b.TeamID)
	}
	if b.UserID != nil {
		return UserRequester(*b.UserID)
	}
	return Requester{}
}

// Slot returns the slot occupied by the booking
func (b *Booking) Slot() SlotKey {
	return NewSlotKey(b.RoomID, b.Date, b.Hour)
}

// IsTeamBooking returns true if the booking belongs to a team
func (b *Booking) IsTeamBooking() bool {
	return b.TeamID != nil
}

// Validate checks the structural invariants of a booking
func (b *Booking) Validate() error {
	if (b.UserID == nil) == (b.TeamID == nil) {
		return ErrInvalidRequester
	}
	if b.Date.IsZero() {
		return ErrInvalidDate
	}
	return ValidateHour(b.Hour)
}

// BookingsFilter filters bookings of a user or a team
type BookingsFilter struct {
	UserID    *int64
	TeamID    *int64
	StartDate *time.Time
	EndDate   *time.Time
}
