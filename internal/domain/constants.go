package domain

// Booking grid: fixed 1-hour slots from opening to closing hour (inclusive)
const (
	OpeningHour = 9
	ClosingHour = 18
)

// Business validation constants
const (
	MinTeamSizeForTeamRoom = 3
	MinRoomCapacity        = 1
	MaxRoomCapacity        = 500
	MaxRoomNameLength      = 50
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Denial reason codes exposed to API clients
const (
	ReasonInvalidHour        = "invalid-hour"
	ReasonSlotTaken          = "slot-taken"
	ReasonSharedDeskFull     = "shared-desk-full"
	ReasonUserAlreadyBooked  = "user-already-booked"
	ReasonTeamAlreadyBooked  = "team-already-booked"
	ReasonIneligibleRoomType = "ineligible-room-type"
	ReasonTeamTooSmall       = "team-too-small"
)
