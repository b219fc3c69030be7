package get_available_rooms

import (
	"net/http"

	"github.com/m04kA/SMC-WorkspaceService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	getAvailableRooms "github.com/m04kA/SMC-WorkspaceService/internal/usecase/get_available_rooms"
)

// AvailableRoomsResponse HTTP response model
type AvailableRoomsResponse struct {
	Date  *string                 `json:"date,omitempty"`
	Hour  *int                    `json:"hour,omitempty"`
	Rooms []RoomAvailableResponse `json:"rooms"`
}

// RoomAvailableResponse комната и ее свободная вместимость
type RoomAvailableResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Type              string `json:"type"`
	Capacity          int    `json:"capacity"`
	AvailableCapacity int    `json:"availableCapacity"`
}

// ToUseCaseRequest собирает запрос use case из query параметров type, date, hour
func ToUseCaseRequest(r *http.Request) (*getAvailableRooms.Request, error) {
	req := &getAvailableRooms.Request{}

	if raw := handlers.ParseOptionalString(r, "type"); raw != nil {
		roomType, err := domain.ParseRoomType(*raw)
		if err != nil {
			return nil, err
		}
		req.Type = &roomType
	}

	date, err := handlers.ParseOptionalDate(r, "date")
	if err != nil {
		return nil, err
	}
	req.Date = date

	hour, err := handlers.ParseOptionalInt(r, "hour")
	if err != nil {
		return nil, err
	}
	req.Hour = hour

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableRooms.Response) *AvailableRoomsResponse {
	out := &AvailableRoomsResponse{
		Hour:  resp.Hour,
		Rooms: make([]RoomAvailableResponse, 0, len(resp.Rooms)),
	}
	if resp.Date != nil {
		date := resp.Date.Format(domain.DateFormat)
		out.Date = &date
	}

	for _, ra := range resp.Rooms {
		out.Rooms = append(out.Rooms, RoomAvailableResponse{
			ID:                ra.Room.ID,
			Name:              ra.Room.Name,
			Type:              string(ra.Room.Type),
			Capacity:          ra.Room.Capacity,
			AvailableCapacity: ra.AvailableCapacity,
		})
	}

	return out
}
