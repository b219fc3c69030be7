package get_available_rooms

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// UseCase use case для получения доступных комнат (listAvailable)
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

// Execute возвращает комнаты и их свободную вместимость.
// Результат справочный: выполняется вне транзакции, окончательное решение принимает admit.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableRooms: type=%v, date=%v, hour=%v", typeOrAny(req.Type), dateOrAny(req), hourOrAny(req.Hour))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableRooms: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем комнаты
	rooms, err := uc.roomRepo.List(ctx, req.Type)
	if err != nil {
		uc.logger.Error("GetAvailableRooms: failed to list rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}

	resp := &Response{Date: req.Date, Hour: req.Hour, Rooms: make([]RoomAvailability, 0, len(rooms))}

	// 3. Без слота - полная вместимость каждой комнаты
	if req.Date == nil {
		for _, room := range rooms {
			resp.Rooms = append(resp.Rooms, RoomAvailability{Room: room, AvailableCapacity: room.EffectiveCapacity()})
		}
		return resp, nil
	}

	// 4. Для слота вычитаем занятые места, полностью занятые комнаты не показываем
	date := domain.NormalizeDate(*req.Date)
	counts, err := uc.bookingRepo.CountBySlotForRooms(ctx, date, *req.Hour)
	if err != nil {
		uc.logger.Error("GetAvailableRooms: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	for _, room := range rooms {
		available := room.EffectiveCapacity() - counts[room.ID]
		if available <= 0 {
			continue
		}
		resp.Rooms = append(resp.Rooms, RoomAvailability{Room: room, AvailableCapacity: available})
	}

	uc.logger.Info("GetAvailableRooms: %d of %d rooms available on %s at %d",
		len(resp.Rooms), len(rooms), date.Format(domain.DateFormat), *req.Hour)

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if (req.Date == nil) != (req.Hour == nil) {
		return fmt.Errorf("%w: date and hour must be given together", ErrInvalidInput)
	}

	if req.Type != nil && !req.Type.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrInvalidRoomType)
	}

	if req.Hour != nil {
		if err := domain.ValidateHour(*req.Hour); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	return nil
}

func typeOrAny(t *domain.RoomType) string {
	if t == nil {
		return "any"
	}
	return string(*t)
}

func dateOrAny(req *Request) string {
	if req.Date == nil {
		return "any"
	}
	return req.Date.Format(domain.DateFormat)
}

func hourOrAny(h *int) string {
	if h == nil {
		return "any"
	}
	return fmt.Sprintf("%d", *h)
}
