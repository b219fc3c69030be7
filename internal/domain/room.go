package domain

import (
	"strings"
	"time"
)

// RoomType represents the kind of room and its booking policy
type RoomType string

const (
	RoomTypeExclusive RoomType = "exclusive"
	RoomTypeShared    RoomType = "shared"
	RoomTypeTeamOnly  RoomType = "team_only"
)

// RoomTypes all known room types
var RoomTypes = []RoomType{RoomTypeExclusive, RoomTypeShared, RoomTypeTeamOnly}

// IsValid returns true for a known room type
func (t RoomType) IsValid() bool {
	switch t {
	case RoomTypeExclusive, RoomTypeShared, RoomTypeTeamOnly:
		return true
	default:
		return false
	}
}

// ParseRoomType parses a room type; legacy names "private" and "conference"
// are accepted as aliases of exclusive and team_only
func ParseRoomType(s string) (RoomType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoomTypeExclusive), "private":
		return RoomTypeExclusive, nil
	case string(RoomTypeShared), "shared_desk":
		return RoomTypeShared, nil
	case string(RoomTypeTeamOnly), "team-only", "conference":
		return RoomTypeTeamOnly, nil
	default:
		return "", ErrInvalidRoomType
	}
}

// Room represents a bookable room. Type is immutable after creation.
type Room struct {
	ID        int64
	Name      string
	Type      RoomType
	Capacity  int
	CreatedAt time.Time
}

// EffectiveCapacity returns how many bookings one slot of the room can hold:
// the configured capacity for shared rooms, 1 otherwise
func (r *Room) EffectiveCapacity() int {
	if r.Type == RoomTypeShared {
		return r.Capacity
	}
	return 1
}

// IsSingleOccupancy returns true if a slot holds at most one booking
func (r *Room) IsSingleOccupancy() bool {
	return r.Type != RoomTypeShared
}
