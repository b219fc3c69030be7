package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrConflict возвращается при нарушении уникального ограничения
	ErrConflict = errors.New("booking.repository: unique constraint violated")

	// ErrNoTransaction возвращается при попытке взять блокировку вне транзакции
	ErrNoTransaction = errors.New("booking.repository: lock requires an active transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// Имена уникальных ограничений из migrations/001_init.sql
const (
	ConstraintToken         = "uq_bookings_token"
	ConstraintUserSlot      = "uq_bookings_user_slot"
	ConstraintTeamSlot      = "uq_bookings_team_slot"
	ConstraintExclusiveSlot = "uq_bookings_exclusive_slot"
)

// ConflictError нарушение уникального ограничения при вставке
type ConflictError struct {
	Constraint string
	Err        error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConflict.Error(), e.Constraint)
}

// Is позволяет проверять errors.Is(err, ErrConflict)
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
