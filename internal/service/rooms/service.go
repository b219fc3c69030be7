package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	roomRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/room"
	"github.com/m04kA/SMC-WorkspaceService/internal/service/rooms/models"
)

// Service сервис для работы с каталогом комнат
type Service struct {
	roomRepo RoomRepository
	admins   map[int64]struct{}
	logger   Logger
}

// NewService создает новый экземпляр сервиса комнат
// adminIDs - пользователи, которым разрешено создавать комнаты
func NewService(roomRepo RoomRepository, adminIDs []int64, logger Logger) *Service {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &Service{
		roomRepo: roomRepo,
		admins:   admins,
		logger:   logger,
	}
}

// Create создает новую комнату
// Доступно только администраторам каталога
func (s *Service) Create(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Create: creating room name=%q, type=%s, capacity=%d by user=%d",
		req.Name, req.Type, req.Capacity, req.UserID)

	// 1. Проверяем права доступа
	if !s.isAdmin(req.UserID) {
		s.logger.Warn("Create: user=%d is not a catalog admin", req.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем входные данные
	room, err := s.buildRoom(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	created, err := s.roomRepo.Create(ctx, room)
	if err != nil {
		if errors.Is(err, roomRepo.ErrDuplicateName) {
			s.logger.Warn("Create: room name=%q already exists", room.Name)
			return nil, ErrRoomAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created room id=%d", created.ID)
	return models.FromDomainRoom(created), nil
}

// GetByID получает комнату по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RoomResponse, error) {
	s.logger.Info("GetByID: fetching room id=%d", id)

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetByID: room id=%d not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetByID: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRoom(room), nil
}

// List получает каталог комнат, опционально по типу
func (s *Service) List(ctx context.Context, req *models.ListRoomsRequest) (*models.RoomListResponse, error) {
	var roomType *domain.RoomType
	if req.Type != nil {
		t, err := domain.ParseRoomType(*req.Type)
		if err != nil {
			s.logger.Warn("List: invalid room type=%q", *req.Type)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		roomType = &t
	}

	rooms, err := s.roomRepo.List(ctx, roomType)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d rooms", len(rooms))
	return models.FromDomainRoomList(rooms), nil
}

// Вспомогательные методы

func (s *Service) isAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}

// buildRoom валидирует запрос и собирает domain модель
func (s *Service) buildRoom(req *models.CreateRoomRequest) (*domain.Room, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxRoomNameLength {
		return nil, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxRoomNameLength)
	}

	roomType, err := domain.ParseRoomType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = domain.MinRoomCapacity
	}
	if capacity < domain.MinRoomCapacity || capacity > domain.MaxRoomCapacity {
		return nil, fmt.Errorf("%w: capacity must be in %d..%d",
			ErrInvalidInput, domain.MinRoomCapacity, domain.MaxRoomCapacity)
	}

	return &domain.Room{Name: name, Type: roomType, Capacity: capacity}, nil
}
