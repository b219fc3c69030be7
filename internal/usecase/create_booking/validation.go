package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/booking"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.ActorUserID <= 0 {
		return fmt.Errorf("%w: actor userID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrInvalidDate)
	}

	if err := req.Requester.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := domain.ValidateHour(req.Hour); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}

// authorize проверяет, что пользователь бронирует от своего имени
// или от имени команды, в которой состоит
func authorize(req *Request, team *domain.Team) error {
	switch req.Requester.Kind {
	case domain.RequesterUser:
		if req.Requester.ID != req.ActorUserID {
			return ErrForbidden
		}
	case domain.RequesterTeam:
		if team == nil || !team.HasMember(req.ActorUserID) {
			return ErrForbidden
		}
	}
	return nil
}

// conflictToDenial переводит нарушение уникального индекса в отказ.
// Срабатывает, только если блокировки не удержали гонку.
func conflictToDenial(constraint string) error {
	switch constraint {
	case bookingRepo.ConstraintExclusiveSlot:
		return domain.ErrSlotTaken
	case bookingRepo.ConstraintUserSlot:
		return domain.ErrUserAlreadyBooked
	case bookingRepo.ConstraintTeamSlot:
		return domain.ErrTeamAlreadyBooked
	default:
		return nil
	}
}
