package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/booking"
	teamClient "github.com/m04kA/SMC-WorkspaceService/internal/integrations/teamservice"
	"github.com/m04kA/SMC-WorkspaceService/pkg/metrics"
	"github.com/m04kA/SMC-WorkspaceService/pkg/txmanager"
)

// UseCase use case отмены бронирования
type UseCase struct {
	bookingRepo BookingRepository
	teamClient  TeamServiceClient
	txManager   TransactionManager
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	teamClient TeamServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		teamClient:  teamClient,
		txManager:   txManager,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute отменяет бронирование. Отмена окончательная: запись удаляется.
//
// Свою бронь отменяет пользователь-владелец, командную - любой текущий участник команды.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: token=%s, user=%d", req.Token, req.UserID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if _, err := uuid.Parse(req.Token); err != nil {
		uc.logger.Warn("CancelBooking: malformed token %q", req.Token)
		return nil, fmt.Errorf("%w: malformed booking token", ErrInvalidInput)
	}

	// 1. Получаем бронирование
	booking, err := uc.bookingRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking %s not found", req.Token)
			uc.observe(metrics.OutcomeNotFound)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: repository error for booking %s: %v", req.Token, err)
		uc.observe(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 2. Проверяем права
	if err := uc.checkAccess(ctx, booking, req.UserID); err != nil {
		if errors.Is(err, ErrForbidden) {
			uc.observe(metrics.OutcomeForbidden)
		}
		return nil, err
	}

	// 3. Удаляем под блокировкой слота, чтобы не пересечься с admit того же слота
	var deleted *domain.Booking
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		deleted = nil
		if err := uc.bookingRepo.LockSlot(txCtx, booking.Slot()); err != nil {
			return fmt.Errorf("%w: lock slot: %w", ErrInternal, err)
		}

		removed, err := uc.bookingRepo.DeleteByToken(txCtx, req.Token)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: delete booking: %w", ErrInternal, err)
		}

		deleted = removed
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, txmanager.ErrRetriesExhausted):
			uc.logger.Warn("CancelBooking: retries exhausted for booking %s: %v", req.Token, err)
			uc.observe(metrics.OutcomeTransient)
			return nil, fmt.Errorf("%w: %v", ErrTransientConflict, err)
		case errors.Is(err, ErrBookingNotFound):
			// Отменили параллельным запросом
			uc.logger.Warn("CancelBooking: booking %s already cancelled", req.Token)
			uc.observe(metrics.OutcomeNotFound)
			return nil, ErrBookingNotFound
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CancelBooking: %v", err)
			uc.observe(metrics.OutcomeError)
			return nil, err
		default:
			uc.logger.Error("CancelBooking: transaction failed: %v", err)
			uc.observe(metrics.OutcomeError)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CancelBooking: cancelled booking %s, freed %s", deleted.Token, deleted.Slot())
	uc.observe(metrics.OutcomeCancelled)

	if uc.publisher != nil {
		if err := uc.publisher.BookingCancelled(ctx, deleted); err != nil {
			uc.logger.Warn("CancelBooking: failed to publish event for booking %s: %v", deleted.Token, err)
		}
	}

	return newResponse(deleted), nil
}

// checkAccess проверяет, может ли пользователь отменить бронирование
func (uc *UseCase) checkAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	owner := booking.Requester()

	switch owner.Kind {
	case domain.RequesterUser:
		if owner.ID != userID {
			uc.logger.Warn("CancelBooking: user=%d is not the owner of booking %s", userID, booking.Token)
			return ErrForbidden
		}
		return nil
	case domain.RequesterTeam:
		team, err := uc.teamClient.GetTeam(ctx, owner.ID)
		if err != nil {
			switch {
			case errors.Is(err, teamClient.ErrTeamNotFound):
				uc.logger.Warn("CancelBooking: owning team id=%d no longer exists", owner.ID)
				return ErrForbidden
			case errors.Is(err, teamClient.ErrServiceUnavailable):
				uc.logger.Error("CancelBooking: team service unavailable: %v", err)
				return fmt.Errorf("%w: %v", ErrTeamServiceUnavailable, err)
			default:
				uc.logger.Error("CancelBooking: failed to get team id=%d: %v", owner.ID, err)
				return fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
			}
		}
		if !team.HasMember(userID) {
			uc.logger.Warn("CancelBooking: user=%d is not a member of team=%d", userID, owner.ID)
			return ErrForbidden
		}
		return nil
	default:
		return fmt.Errorf("%w: booking %s has no owner", ErrInternal, booking.Token)
	}
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ObserveCancellation(outcome)
}
