package models

import (
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// Request модели

// CreateRoomRequest запрос на создание комнаты
type CreateRoomRequest struct {
	UserID   int64  `json:"-"`
	Name     string `json:"name"`
	Type     string `json:"type"`     // exclusive, shared, team_only
	Capacity int    `json:"capacity"` // Учитывается только для shared, 0 = 1
}

// ListRoomsRequest запрос на получение каталога комнат
type ListRoomsRequest struct {
	Type *string `json:"type,omitempty"` // nil означает все типы
}

// Response модели

// RoomResponse ответ с данными комнаты
type RoomResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	Capacity          int       `json:"capacity"`
	EffectiveCapacity int       `json:"effectiveCapacity"` // Мест в одном слоте
	CreatedAt         time.Time `json:"createdAt"`
}

// RoomListResponse ответ со списком комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// Методы конвертации

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}

	return &RoomResponse{
		ID:                r.ID,
		Name:              r.Name,
		Type:              string(r.Type),
		Capacity:          r.Capacity,
		EffectiveCapacity: r.EffectiveCapacity(),
		CreatedAt:         r.CreatedAt,
	}
}

// FromDomainRoomList конвертирует список domain моделей в DTO
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	resp := &RoomListResponse{
		Rooms: make([]RoomResponse, 0, len(rooms)),
	}

	for _, room := range rooms {
		if roomResp := FromDomainRoom(room); roomResp != nil {
			resp.Rooms = append(resp.Rooms, *roomResp)
		}
	}

	return resp
}
