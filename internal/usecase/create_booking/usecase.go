package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/room"
	teamClient "github.com/m04kA/SMC-WorkspaceService/internal/integrations/teamservice"
	"github.com/m04kA/SMC-WorkspaceService/pkg/metrics"
	"github.com/m04kA/SMC-WorkspaceService/pkg/txmanager"
)

// UseCase use case для создания бронирования (admit)
type UseCase struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	teamClient  TeamServiceClient
	txManager   TransactionManager
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
	newToken    func() string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	teamClient TeamServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		teamClient:  teamClient,
		txManager:   txManager,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
		newToken:    uuid.NewString,
	}
}

// Execute выполняет use case создания бронирования.
// Решение принимается в транзакции под advisory-блокировками слота и заявителя:
// из конкурентных запросов на один слот выигрывает первый, взявший блокировку,
// остальные после ее освобождения видят его бронь и получают отказ.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: room=%d, requester=%s, actor=%d, date=%s, hour=%d",
		req.RoomID, req.Requester, req.ActorUserID, req.Date.Format(domain.DateFormat), req.Hour)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		reason, _ := domain.DenialReason(err)
		uc.observe("", metrics.OutcomeInvalid, reason)
		return nil, err
	}

	// 2. Получаем комнату
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 3. Тип заявителя против типа комнаты, состав команды для этого не нужен
	if err := domain.CheckRequesterKind(room.Type, req.Requester.Kind); err != nil {
		return nil, uc.fail(room.Type, err)
	}

	// 4. Для командной брони получаем состав команды
	var team *domain.Team
	if req.Requester.IsTeam() {
		team, err = uc.getTeam(ctx, req.Requester.ID)
		if err != nil {
			return nil, err
		}
	}

	// 5. Пользователь бронирует только от своего имени или от имени своей команды
	if err := authorize(req, team); err != nil {
		uc.logger.Warn("CreateBooking: actor=%d cannot book as %s", req.ActorUserID, req.Requester)
		return nil, err
	}

	teamSize := 0
	if team != nil {
		teamSize = team.Size()
	}

	// 6. Размер команды для командной комнаты
	if err := domain.CheckEligibility(room.Type, req.Requester.Kind, teamSize); err != nil {
		return nil, uc.fail(room.Type, err)
	}

	// 7. Решение о бронировании (READ COMMITTED: чтения после блокировки видят чужие коммиты)
	var created *domain.Booking
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created = nil
		booking, err := uc.admit(txCtx, req, teamSize)
		if err != nil {
			return err
		}
		created = booking
		return nil
	})
	if err != nil {
		return nil, uc.fail(room.Type, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d token=%s", created.ID, created.Token)
	uc.observe(room.Type, metrics.OutcomeAdmitted, "")

	// 8. Событие публикуем только после коммита; ошибка публикации не отменяет бронь
	if uc.publisher != nil {
		if err := uc.publisher.BookingCreated(ctx, created); err != nil {
			uc.logger.Warn("CreateBooking: failed to publish event for booking %s: %v", created.Token, err)
		}
	}

	return newResponse(created), nil
}

// admit выполняется внутри транзакции.
// Первые запросы транзакции - блокировки: слот, затем заявитель.
// Все чтения идут после них.
func (uc *UseCase) admit(ctx context.Context, req *Request, teamSize int) (*domain.Booking, error) {
	slot := domain.NewSlotKey(req.RoomID, req.Date, req.Hour)

	if err := uc.bookingRepo.LockSlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("%w: lock slot %s: %w", ErrInternal, slot, err)
	}
	if err := uc.bookingRepo.LockRequester(ctx, req.Requester, slot.Date, slot.Hour); err != nil {
		return nil, fmt.Errorf("%w: lock requester %s: %w", ErrInternal, req.Requester, err)
	}

	// Перечитываем комнату под блокировкой, решение принимается по этим данным
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w: reload room: %w", ErrInternal, err)
	}

	if err := domain.CheckEligibility(room.Type, req.Requester.Kind, teamSize); err != nil {
		return nil, err
	}

	// Вместимость слота
	if room.IsSingleOccupancy() {
		taken, err := uc.bookingRepo.ExistsForSlot(ctx, slot)
		if err != nil {
			return nil, fmt.Errorf("%w: check slot: %w", ErrInternal, err)
		}
		if taken {
			return nil, domain.ErrSlotTaken
		}
	} else {
		count, err := uc.bookingRepo.CountForSlot(ctx, slot)
		if err != nil {
			return nil, fmt.Errorf("%w: count slot: %w", ErrInternal, err)
		}
		if count >= room.EffectiveCapacity() {
			uc.logger.Info("CreateBooking: shared room id=%d full, %d/%d", room.ID, count, room.EffectiveCapacity())
			return nil, domain.ErrSharedDeskFull
		}
	}

	// Одна бронь на заявителя в один час
	booking := &domain.Booking{
		Token:    uc.newToken(),
		RoomID:   room.ID,
		Date:     slot.Date,
		Hour:     slot.Hour,
		RoomName: room.Name,
		RoomType: room.Type,
	}

	switch req.Requester.Kind {
	case domain.RequesterUser:
		busy, err := uc.bookingRepo.ExistsForUserAtTime(ctx, req.Requester.ID, slot.Date, slot.Hour)
		if err != nil {
			return nil, fmt.Errorf("%w: check user: %w", ErrInternal, err)
		}
		if busy {
			return nil, domain.ErrUserAlreadyBooked
		}
		userID := req.Requester.ID
		booking.UserID = &userID
	case domain.RequesterTeam:
		busy, err := uc.bookingRepo.ExistsForTeamAtTime(ctx, req.Requester.ID, slot.Date, slot.Hour)
		if err != nil {
			return nil, fmt.Errorf("%w: check team: %w", ErrInternal, err)
		}
		if busy {
			return nil, domain.ErrTeamAlreadyBooked
		}
		teamID := req.Requester.ID
		booking.TeamID = &teamID
	default:
		return nil, domain.ErrInvalidRequester
	}

	created, err := uc.bookingRepo.Insert(ctx, booking)
	if err != nil {
		var conflict *bookingRepo.ConflictError
		if errors.As(err, &conflict) {
			if denial := conflictToDenial(conflict.Constraint); denial != nil {
				uc.logger.Warn("CreateBooking: insert hit constraint %s", conflict.Constraint)
				return nil, denial
			}
		}
		return nil, fmt.Errorf("%w: insert booking: %w", ErrInternal, err)
	}

	return created, nil
}

func (uc *UseCase) getTeam(ctx context.Context, teamID int64) (*domain.Team, error) {
	team, err := uc.teamClient.GetTeam(ctx, teamID)
	if err == nil {
		return team, nil
	}

	switch {
	case errors.Is(err, teamClient.ErrTeamNotFound):
		uc.logger.Warn("CreateBooking: team id=%d not found", teamID)
		return nil, ErrTeamNotFound
	case errors.Is(err, teamClient.ErrServiceUnavailable):
		uc.logger.Error("CreateBooking: team service unavailable for team id=%d: %v", teamID, err)
		return nil, fmt.Errorf("%w: %v", ErrTeamServiceUnavailable, err)
	default:
		uc.logger.Error("CreateBooking: failed to get team id=%d: %v", teamID, err)
		return nil, fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
	}
}

// fail классифицирует ошибку, пишет лог и метрику
func (uc *UseCase) fail(roomType domain.RoomType, err error) error {
	switch {
	case errors.Is(err, txmanager.ErrRetriesExhausted):
		uc.logger.Warn("CreateBooking: retries exhausted: %v", err)
		uc.observe(roomType, metrics.OutcomeTransient, "")
		return fmt.Errorf("%w: %v", ErrTransientConflict, err)
	case errors.Is(err, domain.ErrDenied):
		reason, _ := domain.DenialReason(err)
		uc.logger.Info("CreateBooking: denied, reason=%s", reason)
		uc.observe(roomType, metrics.OutcomeDenied, reason)
		return err
	case errors.Is(err, ErrRoomNotFound):
		uc.logger.Warn("CreateBooking: room disappeared during admission")
		return err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: %v", err)
		uc.observe(roomType, metrics.OutcomeError, "")
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		uc.observe(roomType, metrics.OutcomeError, "")
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) observe(roomType domain.RoomType, outcome, reason string) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ObserveAdmission(string(roomType), outcome, reason)
}
