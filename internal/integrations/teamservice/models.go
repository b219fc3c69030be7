package teamservice

import "github.com/m04kA/SMC-WorkspaceService/internal/domain"

// Team модель команды из TeamService
type Team struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	MemberIDs []int64 `json:"member_ids"`
}

func (t *Team) toDomain() *domain.Team {
	members := make([]int64, len(t.MemberIDs))
	copy(members, t.MemberIDs)
	return &domain.Team{ID: t.ID, Name: t.Name, MemberIDs: members}
}
