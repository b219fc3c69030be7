package create_room

import (
	"github.com/m04kA/SMC-WorkspaceService/internal/service/rooms/models"
)

// CreateRoomRequest HTTP request model
type CreateRoomRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Type     string `json:"type" validate:"required"`
	Capacity int    `json:"capacity" validate:"gte=0,lte=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateRoomRequest) ToServiceRequest(userID int64) *models.CreateRoomRequest {
	return &models.CreateRoomRequest{
		UserID:   userID,
		Name:     r.Name,
		Type:     r.Type,
		Capacity: r.Capacity,
	}
}
