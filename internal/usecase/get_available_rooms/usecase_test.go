package get_available_rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	"github.com/m04kA/SMC-WorkspaceService/pkg/logger"
)

type roomRepoMock struct{ mock.Mock }

func (m *roomRepoMock) List(ctx context.Context, roomType *domain.RoomType) ([]*domain.Room, error) {
	args := m.Called(ctx, roomType)
	rooms, _ := args.Get(0).([]*domain.Room)
	return rooms, args.Error(1)
}

type bookingRepoMock struct{ mock.Mock }

func (m *bookingRepoMock) CountBySlotForRooms(ctx context.Context, date time.Time, hour int) (map[int64]int, error) {
	args := m.Called(ctx, date, hour)
	counts, _ := args.Get(0).(map[int64]int)
	return counts, args.Error(1)
}

var (
	focus = &domain.Room{ID: 1, Name: "Focus", Type: domain.RoomTypeExclusive, Capacity: 1}
	open  = &domain.Room{ID: 2, Name: "Open Space", Type: domain.RoomTypeShared, Capacity: 4}
	board = &domain.Room{ID: 3, Name: "Board", Type: domain.RoomTypeTeamOnly, Capacity: 12}
	date  = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
)

func ptr[T any](v T) *T { return &v }

func TestExecute_NoSlotListsFullCapacity(t *testing.T) {
	rooms := &roomRepoMock{}
	bookings := &bookingRepoMock{}
	rooms.On("List", mock.Anything, (*domain.RoomType)(nil)).Return([]*domain.Room{focus, open, board}, nil)

	uc := NewUseCase(rooms, bookings, logger.Nop())
	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	require.Len(t, resp.Rooms, 3)
	assert.Equal(t, 1, resp.Rooms[0].AvailableCapacity)
	assert.Equal(t, 4, resp.Rooms[1].AvailableCapacity)
	assert.Equal(t, 1, resp.Rooms[2].AvailableCapacity)
	bookings.AssertNotCalled(t, "CountBySlotForRooms", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_SlotOmitsFullRooms(t *testing.T) {
	rooms := &roomRepoMock{}
	bookings := &bookingRepoMock{}
	rooms.On("List", mock.Anything, (*domain.RoomType)(nil)).Return([]*domain.Room{focus, open, board}, nil)
	bookings.On("CountBySlotForRooms", mock.Anything, date, 10).Return(map[int64]int{1: 1, 2: 3}, nil)

	uc := NewUseCase(rooms, bookings, logger.Nop())
	resp, err := uc.Execute(context.Background(), &Request{Date: ptr(date.Add(5 * time.Hour)), Hour: ptr(10)})
	require.NoError(t, err)

	require.Len(t, resp.Rooms, 2)
	assert.Equal(t, open.ID, resp.Rooms[0].Room.ID)
	assert.Equal(t, 1, resp.Rooms[0].AvailableCapacity)
	assert.Equal(t, board.ID, resp.Rooms[1].Room.ID)
	assert.Equal(t, 1, resp.Rooms[1].AvailableCapacity)
	bookings.AssertExpectations(t)
}

func TestExecute_TypeFilter(t *testing.T) {
	rooms := &roomRepoMock{}
	bookings := &bookingRepoMock{}
	shared := domain.RoomTypeShared
	rooms.On("List", mock.Anything, &shared).Return([]*domain.Room{open}, nil)
	bookings.On("CountBySlotForRooms", mock.Anything, date, 9).Return(map[int64]int{2: 4}, nil)

	uc := NewUseCase(rooms, bookings, logger.Nop())
	resp, err := uc.Execute(context.Background(), &Request{Type: &shared, Date: &date, Hour: ptr(9)})
	require.NoError(t, err)
	assert.Empty(t, resp.Rooms)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&roomRepoMock{}, &bookingRepoMock{}, logger.Nop())
	bad := domain.RoomType("garage")

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{"date without hour", &Request{Date: &date}, ErrInvalidInput},
		{"hour without date", &Request{Hour: ptr(10)}, ErrInvalidInput},
		{"hour too early", &Request{Date: &date, Hour: ptr(8)}, domain.ErrInvalidHour},
		{"hour too late", &Request{Date: &date, Hour: ptr(19)}, domain.ErrInvalidHour},
		{"unknown type", &Request{Type: &bad}, domain.ErrInvalidRoomType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_RepositoryError(t *testing.T) {
	rooms := &roomRepoMock{}
	rooms.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	uc := NewUseCase(rooms, &bookingRepoMock{}, logger.Nop())
	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInternal)
}
