package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/booking"
	teamClient "github.com/m04kA/SMC-WorkspaceService/internal/integrations/teamservice"
	"github.com/m04kA/SMC-WorkspaceService/internal/service/bookings/models"
	"github.com/m04kA/SMC-WorkspaceService/pkg/logger"
)

type repoMock struct{ mock.Mock }

func (m *repoMock) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	args := m.Called(ctx, token)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *repoMock) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *repoMock) GetByTeamID(ctx context.Context, teamID int64) ([]*domain.Booking, error) {
	args := m.Called(ctx, teamID)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *repoMock) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

type teamMock struct{ mock.Mock }

func (m *teamMock) IsMember(ctx context.Context, teamID, userID int64) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func int64Ptr(v int64) *int64 { return &v }

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

const (
	tokUser    = "0b6f2a52-3c1e-4d7a-9a3e-5f1d2c4b6a01"
	tokTeam    = "0b6f2a52-3c1e-4d7a-9a3e-5f1d2c4b6a02"
	tokMissing = "0b6f2a52-3c1e-4d7a-9a3e-5f1d2c4b6a03"
	tokBroken  = "0b6f2a52-3c1e-4d7a-9a3e-5f1d2c4b6a04"
)

func userBooking(id, userID int64) *domain.Booking {
	return &domain.Booking{
		ID: id, Token: tokUser, RoomID: 1, UserID: int64Ptr(userID),
		Date: day, Hour: 10, RoomName: "R1", RoomType: domain.RoomTypeExclusive,
	}
}

func teamBooking(id, teamID int64) *domain.Booking {
	return &domain.Booking{
		ID: id, Token: tokTeam, RoomID: 3, TeamID: int64Ptr(teamID),
		Date: day, Hour: 11, RoomName: "C1", RoomType: domain.RoomTypeTeamOnly,
	}
}

func newTestService() (*Service, *repoMock, *teamMock) {
	repo := &repoMock{}
	team := &teamMock{}
	return NewService(repo, team, logger.Nop()), repo, team
}

func TestGetByToken_Owner(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.On("GetByToken", mock.Anything, tokUser).Return(userBooking(1, 42), nil)

	resp, err := svc.GetByToken(context.Background(), tokUser, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-03-10", resp.BookingDate)
	assert.Equal(t, "exclusive", resp.RoomType)
	assert.Nil(t, resp.TeamID)
}

func TestGetByToken_OtherUserDenied(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.On("GetByToken", mock.Anything, tokUser).Return(userBooking(1, 42), nil)

	_, err := svc.GetByToken(context.Background(), tokUser, 43)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByToken_TeamMember(t *testing.T) {
	svc, repo, team := newTestService()
	repo.On("GetByToken", mock.Anything, tokTeam).Return(teamBooking(2, 20), nil)
	team.On("IsMember", mock.Anything, int64(20), int64(200)).Return(true, nil)
	team.On("IsMember", mock.Anything, int64(20), int64(999)).Return(false, nil)

	resp, err := svc.GetByToken(context.Background(), tokTeam, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(20), *resp.TeamID)

	_, err = svc.GetByToken(context.Background(), tokTeam, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByToken_Errors(t *testing.T) {
	svc, repo, team := newTestService()
	repo.On("GetByToken", mock.Anything, tokMissing).Return(nil, bookingRepo.ErrBookingNotFound)
	repo.On("GetByToken", mock.Anything, tokBroken).Return(nil, errors.New("db down"))
	repo.On("GetByToken", mock.Anything, tokTeam).Return(teamBooking(2, 20), nil)
	team.On("IsMember", mock.Anything, int64(20), int64(200)).
		Return(false, teamClient.ErrServiceUnavailable)

	_, err := svc.GetByToken(context.Background(), "", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetByToken(context.Background(), tokMissing, 1)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByToken(context.Background(), tokBroken, 1)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.GetByToken(context.Background(), tokTeam, 200)
	assert.ErrorIs(t, err, ErrTeamServiceUnavailable)
}

func TestGetUserBookings(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.On("GetByUserID", mock.Anything, int64(42)).
		Return([]*domain.Booking{userBooking(2, 42), userBooking(1, 42)}, nil)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{ActorUserID: 42, UserID: 42})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
}

func TestGetUserBookings_WithPeriod(t *testing.T) {
	svc, repo, _ := newTestService()
	start := day
	end := day.AddDate(0, 0, 7)
	repo.On("GetWithFilter", mock.Anything, domain.BookingsFilter{
		UserID: int64Ptr(42), StartDate: &start, EndDate: &end,
	}).Return([]*domain.Booking{}, nil)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		ActorUserID: 42, UserID: 42, StartDate: &start, EndDate: &end,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
	assert.NotNil(t, resp.Bookings)
}

func TestGetUserBookings_Errors(t *testing.T) {
	svc, _, _ := newTestService()
	start := day
	end := day.AddDate(0, 0, -1)

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{ActorUserID: 42, UserID: 43})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{ActorUserID: 0, UserID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		ActorUserID: 42, UserID: 42, StartDate: &start, EndDate: &end,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestGetTeamBookings(t *testing.T) {
	svc, repo, team := newTestService()
	team.On("IsMember", mock.Anything, int64(20), int64(200)).Return(true, nil)
	team.On("IsMember", mock.Anything, int64(20), int64(100)).Return(false, nil)
	repo.On("GetByTeamID", mock.Anything, int64(20)).Return([]*domain.Booking{teamBooking(5, 20)}, nil)

	resp, err := svc.GetTeamBookings(context.Background(), &models.GetTeamBookingsRequest{ActorUserID: 200, TeamID: 20})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "C1", resp.Bookings[0].RoomName)

	_, err = svc.GetTeamBookings(context.Background(), &models.GetTeamBookingsRequest{ActorUserID: 100, TeamID: 20})
	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNumberOfCalls(t, "GetByTeamID", 1)
}

func TestGetByToken_MalformedTokenNeverReachesRepository(t *testing.T) {
	svc, repo, _ := newTestService()

	for _, token := range []string{"tok", "not-a-uuid", "0b6f2a52-3c1e-4d7a-9a3e"} {
		_, err := svc.GetByToken(context.Background(), token, 42)
		assert.ErrorIs(t, err, ErrInvalidInput, token)
	}

	repo.AssertNotCalled(t, "GetByToken", mock.Anything, mock.Anything)
}
