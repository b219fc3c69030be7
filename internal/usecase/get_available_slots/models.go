package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// Request модель запроса расписания комнаты на день
type Request struct {
	RoomID int64     // ID комнаты
	Date   time.Time // Дата (без времени)
}

// Response модель ответа со слотами комнаты
type Response struct {
	Room  *domain.Room
	Date  time.Time
	Slots []Slot // Все часы сетки, по возрастанию
}

// Slot модель часового слота
type Slot struct {
	Hour           int // Час начала слота
	AvailableSpots int // Количество свободных мест
	TotalSpots     int // Общее количество мест
}
