package domain

import (
	"fmt"
	"time"
)

// SlotKey identifies a bookable unit of time: (room, date, hour)
type SlotKey struct {
	RoomID int64
	Date   time.Time
	Hour   int
}

// NewSlotKey builds a slot key with the date normalized to UTC midnight
func NewSlotKey(roomID int64, date time.Time, hour int) SlotKey {
	return SlotKey{RoomID: roomID, Date: NormalizeDate(date), Hour: hour}
}

// String returns a stable textual key, also used as the lock key
func (s SlotKey) String() string {
	return fmt.Sprintf("slot:%d:%s:%02d", s.RoomID, s.Date.Format(DateFormat), s.Hour)
}

// NormalizeDate drops the time-of-day part and returns the date at UTC midnight
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateHour checks that the hour is on the booking grid
func ValidateHour(hour int) error {
	if hour < OpeningHour || hour > ClosingHour {
		return ErrInvalidHour
	}
	return nil
}

// RequesterTimeKey is the lock key for "this requester at this date and hour"
func RequesterTimeKey(r Requester, date time.Time, hour int) string {
	return fmt.Sprintf("%s:%s:%02d", r, NormalizeDate(date).Format(DateFormat), hour)
}
