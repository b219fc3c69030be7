package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/booking"
	teamClient "github.com/m04kA/SMC-WorkspaceService/internal/integrations/teamservice"
	"github.com/m04kA/SMC-WorkspaceService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	teamClient  TeamServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	teamClient TeamServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		teamClient:  teamClient,
		logger:      logger,
	}
}

// GetByToken получает бронирование по токену
// Пользователь видит своё бронирование или бронирование команды, в которой состоит
func (s *Service) GetByToken(ctx context.Context, token string, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByToken: fetching booking token=%s for user=%d", token, userID)

	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	if _, err := uuid.Parse(token); err != nil {
		s.logger.Warn("GetByToken: malformed token %q", token)
		return nil, fmt.Errorf("%w: malformed booking token", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByToken: booking token=%s not found", token)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByToken: repository error for booking token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: GetByToken - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByToken: access denied for user=%d to booking id=%d", userID, booking.ID)
		return nil, err
	}

	s.logger.Info("GetByToken: successfully fetched booking id=%d", booking.ID)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя, сначала новые
// Пользователь видит только свои бронирования
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d by user=%d", req.UserID, req.ActorUserID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ActorUserID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d cannot view bookings of user=%d", req.ActorUserID, req.UserID)
		return nil, ErrAccessDenied
	}
	if err := validatePeriod(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	var (
		bookings []*domain.Booking
		err      error
	)
	if req.HasPeriod() {
		bookings, err = s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
			UserID:    &req.UserID,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		})
	} else {
		bookings, err = s.bookingRepo.GetByUserID(ctx, req.UserID)
	}
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTeamBookings получает бронирования команды, сначала новые
// Доступно только участникам команды
func (s *Service) GetTeamBookings(ctx context.Context, req *models.GetTeamBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTeamBookings: fetching bookings for team=%d by user=%d", req.TeamID, req.ActorUserID)

	if req.TeamID <= 0 {
		return nil, fmt.Errorf("%w: teamID must be positive", ErrInvalidInput)
	}
	if err := validatePeriod(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	if err := s.checkMemberAccess(ctx, req.TeamID, req.ActorUserID); err != nil {
		return nil, err
	}

	var (
		bookings []*domain.Booking
		err      error
	)
	if req.HasPeriod() {
		bookings, err = s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
			TeamID:    &req.TeamID,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		})
	} else {
		bookings, err = s.bookingRepo.GetByTeamID(ctx, req.TeamID)
	}
	if err != nil {
		s.logger.Error("GetTeamBookings: repository error for team=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: GetTeamBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTeamBookings: successfully fetched %d bookings for team=%d", len(bookings), req.TeamID)
	return models.FromDomainBookingList(bookings), nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID != nil && *booking.UserID == userID {
		return nil
	}

	if booking.TeamID != nil {
		return s.checkMemberAccess(ctx, *booking.TeamID, userID)
	}

	return ErrAccessDenied
}

// checkMemberAccess проверяет, что пользователь состоит в команде
// Несуществующая команда считается командой без участников
func (s *Service) checkMemberAccess(ctx context.Context, teamID, userID int64) error {
	isMember, err := s.teamClient.IsMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, teamClient.ErrServiceUnavailable) {
			s.logger.Error("checkMemberAccess: team service unavailable: %v", err)
			return ErrTeamServiceUnavailable
		}
		s.logger.Error("checkMemberAccess: failed to get team id=%d: %v", teamID, err)
		return fmt.Errorf("%w: checkMemberAccess - failed to get team: %v", ErrInternal, err)
	}

	if !isMember {
		s.logger.Warn("checkMemberAccess: user=%d is not a member of team=%d", userID, teamID)
		return ErrAccessDenied
	}

	return nil
}

func validatePeriod(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidTimeRange)
	}
	return nil
}
