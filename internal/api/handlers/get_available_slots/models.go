package get_available_slots

import (
	"github.com/m04kA/SMC-WorkspaceService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-WorkspaceService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	RoomID   int64          `json:"roomId"`
	RoomName string         `json:"roomName"`
	RoomType string         `json:"roomType"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse часовой слот комнаты
type SlotResponse struct {
	Hour           int  `json:"hour"`
	AvailableSpots int  `json:"availableSpots"`
	TotalSpots     int  `json:"totalSpots"`
	Available      bool `json:"available"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(roomID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		RoomID: roomID,
		Date:   date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			Hour:           slot.Hour,
			AvailableSpots: slot.AvailableSpots,
			TotalSpots:     slot.TotalSpots,
			Available:      slot.AvailableSpots > 0,
		})
	}

	return &AvailableSlotsResponse{
		RoomID:   resp.Room.ID,
		RoomName: resp.Room.Name,
		RoomType: string(resp.Room.Type),
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
	}
}
