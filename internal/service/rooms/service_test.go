package rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	roomRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/room"
	"github.com/m04kA/SMC-WorkspaceService/internal/service/rooms/models"
	"github.com/m04kA/SMC-WorkspaceService/pkg/logger"
)

type repoMock struct{ mock.Mock }

func (m *repoMock) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	args := m.Called(ctx, room)
	r, _ := args.Get(0).(*domain.Room)
	return r, args.Error(1)
}

func (m *repoMock) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Room)
	return r, args.Error(1)
}

func (m *repoMock) List(ctx context.Context, roomType *domain.RoomType) ([]*domain.Room, error) {
	args := m.Called(ctx, roomType)
	r, _ := args.Get(0).([]*domain.Room)
	return r, args.Error(1)
}

const adminID = int64(1)

func TestCreate(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, []int64{adminID}, logger.Nop())

	repo.On("Create", mock.Anything, &domain.Room{Name: "Desk A", Type: domain.RoomTypeShared, Capacity: 4}).
		Return(&domain.Room{ID: 7, Name: "Desk A", Type: domain.RoomTypeShared, Capacity: 4, CreatedAt: time.Now()}, nil)

	resp, err := svc.Create(context.Background(), &models.CreateRoomRequest{
		UserID: adminID, Name: " Desk A ", Type: "shared_desk", Capacity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "shared", resp.Type)
	assert.Equal(t, 4, resp.EffectiveCapacity)
}

func TestCreate_DefaultCapacity(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, []int64{adminID}, logger.Nop())

	repo.On("Create", mock.Anything, &domain.Room{Name: "R1", Type: domain.RoomTypeExclusive, Capacity: 1}).
		Return(&domain.Room{ID: 1, Name: "R1", Type: domain.RoomTypeExclusive, Capacity: 1}, nil)

	resp, err := svc.Create(context.Background(), &models.CreateRoomRequest{UserID: adminID, Name: "R1", Type: "exclusive"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Capacity)
}

func TestCreate_Errors(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, []int64{adminID}, logger.Nop())
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Room) bool { return r.Name == "dup" })).
		Return(nil, roomRepo.ErrDuplicateName)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Room) bool { return r.Name == "broken" })).
		Return(nil, errors.New("db down"))

	tests := []struct {
		name    string
		req     models.CreateRoomRequest
		wantErr error
	}{
		{"not admin", models.CreateRoomRequest{UserID: 2, Name: "x", Type: "shared"}, ErrAccessDenied},
		{"empty name", models.CreateRoomRequest{UserID: adminID, Name: "  ", Type: "shared"}, ErrInvalidInput},
		{"bad type", models.CreateRoomRequest{UserID: adminID, Name: "x", Type: "lounge"}, ErrInvalidInput},
		{"capacity too large", models.CreateRoomRequest{UserID: adminID, Name: "x", Type: "shared", Capacity: 501}, ErrInvalidInput},
		{"negative capacity", models.CreateRoomRequest{UserID: adminID, Name: "x", Type: "shared", Capacity: -1}, ErrInvalidInput},
		{"duplicate", models.CreateRoomRequest{UserID: adminID, Name: "dup", Type: "shared"}, ErrRoomAlreadyExists},
		{"repository failure", models.CreateRoomRequest{UserID: adminID, Name: "broken", Type: "shared"}, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetByID(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nil, logger.Nop())
	repo.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.Room{ID: 3, Name: "C1", Type: domain.RoomTypeTeamOnly, Capacity: 10}, nil)
	repo.On("GetByID", mock.Anything, int64(4)).Return(nil, roomRepo.ErrRoomNotFound)

	resp, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.EffectiveCapacity)

	_, err = svc.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestList(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nil, logger.Nop())
	shared := domain.RoomTypeShared
	repo.On("List", mock.Anything, &shared).
		Return([]*domain.Room{{ID: 2, Name: "S1", Type: domain.RoomTypeShared, Capacity: 4}}, nil)
	repo.On("List", mock.Anything, (*domain.RoomType)(nil)).Return([]*domain.Room{}, nil)

	typ := "shared"
	resp, err := svc.List(context.Background(), &models.ListRoomsRequest{Type: &typ})
	require.NoError(t, err)
	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, "S1", resp.Rooms[0].Name)

	resp, err = svc.List(context.Background(), &models.ListRoomsRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Rooms)

	bad := "lounge"
	_, err = svc.List(context.Background(), &models.ListRoomsRequest{Type: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
