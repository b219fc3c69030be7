package domain

// Team is reference data owned by the team service
type Team struct {
	ID        int64
	Name      string
	MemberIDs []int64
}

// Size returns the number of members
func (t *Team) Size() int {
	return len(t.MemberIDs)
}

// HasMember returns true if the user is a member of the team
func (t *Team) HasMember(userID int64) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
