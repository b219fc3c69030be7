package domain

import "fmt"

// RequesterKind distinguishes individual and team bookings
type RequesterKind string

const (
	RequesterUser RequesterKind = "user"
	RequesterTeam RequesterKind = "team"
)

// Requester is either a single user or a single team, never both
type Requester struct {
	Kind RequesterKind
	ID   int64
}

// UserRequester builds a user requester
func UserRequester(userID int64) Requester {
	return Requester{Kind: RequesterUser, ID: userID}
}

// TeamRequester builds a team requester
func TeamRequester(teamID int64) Requester {
	return Requester{Kind: RequesterTeam, ID: teamID}
}

// NewRequester builds a requester from optional user and team ids;
// exactly one must be set
func NewRequester(userID, teamID *int64) (Requester, error) {
	switch {
	case userID != nil && teamID == nil:
		return UserRequester(*userID), nil
	case teamID != nil && userID == nil:
		return TeamRequester(*teamID), nil
	default:
		return Requester{}, ErrInvalidRequester
	}
}

// Validate checks the kind and id
func (r Requester) Validate() error {
	switch r.Kind {
	case RequesterUser, RequesterTeam:
	default:
		return ErrInvalidRequester
	}
	if r.ID <= 0 {
		return fmt.Errorf("%w: %s id must be positive", ErrValidation, r.Kind)
	}
	return nil
}

// IsUser returns true for user requesters
func (r Requester) IsUser() bool { return r.Kind == RequesterUser }

// IsTeam returns true for team requesters
func (r Requester) IsTeam() bool { return r.Kind == RequesterTeam }

// String returns "user:42" / "team:7"
func (r Requester) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}
