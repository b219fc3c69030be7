package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	roomRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/room"
)

// UseCase use case для получения часовых слотов комнаты на день
type UseCase struct {
	roomRepo    RoomRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(roomRepo RoomRepository, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: room=%d, date=%s", req.RoomID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем комнату
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("GetAvailableSlots: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 3. Получаем занятость по часам
	date := domain.NormalizeDate(req.Date)
	counts, err := uc.bookingRepo.CountByHourForRoom(ctx, room.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	// 4. Строим сетку слотов
	total := room.EffectiveCapacity()
	slots := make([]Slot, 0, domain.ClosingHour-domain.OpeningHour+1)
	for hour := domain.OpeningHour; hour <= domain.ClosingHour; hour++ {
		available := total - counts[hour]
		if available < 0 {
			available = 0
		}
		slots = append(slots, Slot{Hour: hour, AvailableSpots: available, TotalSpots: total})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for room=%d, date=%s",
		len(slots), room.ID, date.Format(domain.DateFormat))

	return &Response{Room: room, Date: date, Slots: slots}, nil
}
