package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	"github.com/m04kA/SMC-WorkspaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkspaceService/pkg/pgerr"
	"github.com/m04kA/SMC-WorkspaceService/pkg/psqlbuilder"
)

// Блокировка живет до конца транзакции, отдельно снимать не нужно
const advisoryLockQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

var bookingColumns = []string{
	"id",
	"booking_token",
	"room_id",
	"user_id",
	"team_id",
	"booking_date",
	"hour",
	"room_name",
	"room_type",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockSlot берет эксклюзивную блокировку слота до конца текущей транзакции.
// Все проверки вместимости слота выполняются после этой блокировки,
// поэтому две конкурентные брони одного слота выстраиваются в очередь.
func (r *Repository) LockSlot(ctx context.Context, slot domain.SlotKey) error {
	return r.lock(ctx, "LockSlot", slot.String())
}

// LockRequester берет блокировку "заявитель в это время".
// Всегда вызывается после LockSlot, порядок блокировок одинаковый у всех транзакций.
func (r *Repository) LockRequester(ctx context.Context, requester domain.Requester, date time.Time, hour int) error {
	return r.lock(ctx, "LockRequester", domain.RequesterTimeKey(requester, date, hour))
}

func (r *Repository) lock(ctx context.Context, op, key string) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: %s - key %s", ErrNoTransaction, op, key)
	}

	if _, err := tx.ExecContext(ctx, advisoryLockQuery, key); err != nil {
		return fmt.Errorf("%w: %s - acquire lock: %w", ErrExecQuery, op, err)
	}

	return nil
}

// CountForSlot возвращает количество бронирований слота
func (r *Repository) CountForSlot(ctx context.Context, slot domain.SlotKey) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(slotCondition(slot)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountForSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountForSlot - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// ExistsForSlot true, если слот уже занят хотя бы одним бронированием
func (r *Repository) ExistsForSlot(ctx context.Context, slot domain.SlotKey) (bool, error) {
	return r.exists(ctx, "ExistsForSlot", slotCondition(slot))
}

// ExistsForUserAtTime true, если у пользователя есть бронь в любой комнате в это время
func (r *Repository) ExistsForUserAtTime(ctx context.Context, userID int64, date time.Time, hour int) (bool, error) {
	return r.exists(ctx, "ExistsForUserAtTime", squirrel.And{
		squirrel.Eq{"user_id": userID},
		squirrel.Eq{"booking_date": domain.NormalizeDate(date)},
		squirrel.Eq{"hour": hour},
	})
}

// ExistsForTeamAtTime true, если у команды есть бронь в любой комнате в это время
func (r *Repository) ExistsForTeamAtTime(ctx context.Context, teamID int64, date time.Time, hour int) (bool, error) {
	return r.exists(ctx, "ExistsForTeamAtTime", squirrel.And{
		squirrel.Eq{"team_id": teamID},
		squirrel.Eq{"booking_date": domain.NormalizeDate(date)},
		squirrel.Eq{"hour": hour},
	})
}

func (r *Repository) exists(ctx context.Context, op string, cond squirrel.Sqlizer) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(cond).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %s - scan exists: %w", ErrScanRow, op, err)
	}

	return exists, nil
}

// Insert создает бронирование.
// Нарушение уникального индекса возвращается как *ConflictError.
func (r *Repository) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slotExclusive := booking.RoomType != domain.RoomTypeShared

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_token",
			"room_id",
			"user_id",
			"team_id",
			"booking_date",
			"hour",
			"room_name",
			"room_type",
			"slot_exclusive",
		).
		Values(
			booking.Token,
			booking.RoomID,
			booking.UserID,
			booking.TeamID,
			domain.NormalizeDate(booking.Date),
			booking.Hour,
			booking.RoomName,
			string(booking.RoomType),
			slotExclusive,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, &ConflictError{Constraint: pgerr.Constraint(err), Err: err}
		}
		return nil, fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}

	booking.Date = domain.NormalizeDate(booking.Date)

	return booking, nil
}

// DeleteByToken удаляет бронирование и возвращает удаленную запись
func (r *Repository) DeleteByToken(ctx context.Context, token string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"booking_token": token}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DeleteByToken - build delete query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: DeleteByToken - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByToken получает бронирование по внешнему токену
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает бронирования пользователя, сначала новые
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return r.GetWithFilter(ctx, domain.BookingsFilter{UserID: &userID})
}

// GetByTeamID получает бронирования команды, сначала новые
func (r *Repository) GetByTeamID(ctx context.Context, teamID int64) ([]*domain.Booking, error) {
	return r.GetWithFilter(ctx, domain.BookingsFilter{TeamID: &teamID})
}

// GetWithFilter получает бронирования с фильтрацией по владельцу и периоду
//
// Примеры использования:
//
// 1. Все бронирования команды:
//    filter := domain.BookingsFilter{TeamID: &teamID}
//
// 2. Бронирования пользователя на конкретную дату:
//    filter := domain.BookingsFilter{UserID: &userID, StartDate: &date, EndDate: &date}
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.TeamID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"team_id": *filter.TeamID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": domain.NormalizeDate(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": domain.NormalizeDate(*filter.EndDate)})
	}

	query, args, err := selectBuilder.
		OrderBy("booking_date DESC", "hour DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWithFilter - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// CountBySlotForRooms возвращает количество бронирований по комнатам на дату и час.
// Комнаты без бронирований в результат не попадают.
func (r *Repository) CountBySlotForRooms(ctx context.Context, date time.Time, hour int) (map[int64]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("room_id", "COUNT(*)").
		From("bookings").
		Where(squirrel.And{
			squirrel.Eq{"booking_date": domain.NormalizeDate(date)},
			squirrel.Eq{"hour": hour},
		}).
		GroupBy("room_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountBySlotForRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountBySlotForRooms - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var roomID int64
		var count int
		if err := rows.Scan(&roomID, &count); err != nil {
			return nil, fmt.Errorf("%w: CountBySlotForRooms - scan row: %v", ErrScanRow, err)
		}
		counts[roomID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountBySlotForRooms - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CountByHourForRoom возвращает количество бронирований комнаты по часам на дату.
// Часы без бронирований в результат не попадают.
func (r *Repository) CountByHourForRoom(ctx context.Context, roomID int64, date time.Time) (map[int]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("hour", "COUNT(*)").
		From("bookings").
		Where(squirrel.And{
			squirrel.Eq{"room_id": roomID},
			squirrel.Eq{"booking_date": domain.NormalizeDate(date)},
		}).
		GroupBy("hour").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByHourForRoom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByHourForRoom - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var hour, count int
		if err := rows.Scan(&hour, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByHourForRoom - scan row: %v", ErrScanRow, err)
		}
		counts[hour] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByHourForRoom - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

func slotCondition(slot domain.SlotKey) squirrel.And {
	return squirrel.And{
		squirrel.Eq{"room_id": slot.RoomID},
		squirrel.Eq{"booking_date": domain.NormalizeDate(slot.Date)},
		squirrel.Eq{"hour": slot.Hour},
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var userID, teamID sql.NullInt64
	var roomType string

	err := row.Scan(
		&booking.ID,
		&booking.Token,
		&booking.RoomID,
		&userID,
		&teamID,
		&booking.Date,
		&booking.Hour,
		&booking.RoomName,
		&roomType,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		booking.UserID = &userID.Int64
	}
	if teamID.Valid {
		booking.TeamID = &teamID.Int64
	}
	booking.RoomType = domain.RoomType(roomType)
	booking.Date = domain.NormalizeDate(booking.Date)

	return &booking, nil
}
