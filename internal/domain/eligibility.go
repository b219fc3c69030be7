package domain

// CheckRequesterKind decides whether a requester kind may book a room type
// at all. It needs no team data, so it runs before any team lookup.
//
//   - exclusive and shared rooms accept only individual users
//   - team-only rooms accept only teams
func CheckRequesterKind(roomType RoomType, kind RequesterKind) error {
	switch roomType {
	case RoomTypeExclusive, RoomTypeShared:
		switch kind {
		case RequesterUser:
			return nil
		case RequesterTeam:
			return ErrRequiresIndividual
		default:
			return ErrInvalidRequester
		}
	case RoomTypeTeamOnly:
		switch kind {
		case RequesterTeam:
			return nil
		case RequesterUser:
			return ErrRequiresTeam
		default:
			return ErrInvalidRequester
		}
	default:
		return ErrInvalidRoomType
	}
}

// CheckEligibility decides whether a requester may book a room type.
// It is pure and lock-free; nil means allowed.
// Team size only matters for team-only rooms, which need at least
// MinTeamSizeForTeamRoom members.
func CheckEligibility(roomType RoomType, kind RequesterKind, teamSize int) error {
	if err := CheckRequesterKind(roomType, kind); err != nil {
		return err
	}
	if roomType == RoomTypeTeamOnly && teamSize < MinTeamSizeForTeamRoom {
		return ErrTeamTooSmall
	}
	return nil
}
