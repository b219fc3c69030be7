package get_available_rooms

import (
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// Request модель запроса списка доступных комнат.
// Date и Hour задаются вместе или не задаются вовсе.
type Request struct {
	Type *domain.RoomType // Фильтр по типу (опционально)
	Date *time.Time       // Дата (опционально)
	Hour *int             // Час 9..18 (опционально)
}

// Response модель ответа со списком комнат
type Response struct {
	Date  *time.Time
	Hour  *int
	Rooms []RoomAvailability
}

// RoomAvailability комната и сколько бронирований она еще может принять в слот
type RoomAvailability struct {
	Room              *domain.Room
	AvailableCapacity int
}
