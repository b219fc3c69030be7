package domain

import (
	"errors"
	"fmt"
)

// ErrValidation malformed input; never retried
var ErrValidation = errors.New("validation error")

var (
	ErrInvalidHour      = fmt.Errorf("%w: hour must be between %d and %d", ErrValidation, OpeningHour, ClosingHour)
	ErrInvalidRequester = fmt.Errorf("%w: exactly one of user or team must be set", ErrValidation)
	ErrInvalidRoomType  = fmt.Errorf("%w: unknown room type", ErrValidation)
	ErrInvalidDate      = fmt.Errorf("%w: date is required", ErrValidation)
)

// ErrDenied business-rule conflict; the request was well-formed but cannot be granted
var ErrDenied = errors.New("booking denied")

var (
	ErrSlotTaken         = fmt.Errorf("%w: slot already taken", ErrDenied)
	ErrSharedDeskFull    = fmt.Errorf("%w: shared desk is full", ErrDenied)
	ErrUserAlreadyBooked = fmt.Errorf("%w: user already has a booking at this time", ErrDenied)
	ErrTeamAlreadyBooked = fmt.Errorf("%w: team already has a booking at this time", ErrDenied)

	ErrRequiresIndividual = fmt.Errorf("%w: room requires individual booking", ErrDenied)
	ErrRequiresTeam       = fmt.Errorf("%w: room requires team booking", ErrDenied)
	ErrTeamTooSmall       = fmt.Errorf("%w: team too small", ErrDenied)
)

// DenialReason returns the machine-readable reason code for a denial or
// validation error, and false for any other error
func DenialReason(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrInvalidHour):
		return ReasonInvalidHour, true
	case errors.Is(err, ErrSlotTaken):
		return ReasonSlotTaken, true
	case errors.Is(err, ErrSharedDeskFull):
		return ReasonSharedDeskFull, true
	case errors.Is(err, ErrUserAlreadyBooked):
		return ReasonUserAlreadyBooked, true
	case errors.Is(err, ErrTeamAlreadyBooked):
		return ReasonTeamAlreadyBooked, true
	case errors.Is(err, ErrRequiresIndividual), errors.Is(err, ErrRequiresTeam):
		return ReasonIneligibleRoomType, true
	case errors.Is(err, ErrTeamTooSmall):
		return ReasonTeamTooSmall, true
	default:
		return "", false
	}
}
