package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено или уже отменено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrForbidden возвращается, когда пользователь не владеет бронированием
	// и не состоит в команде-владельце
	ErrForbidden = errors.New("cancel_booking: not allowed to cancel this booking")

	// ErrTeamServiceUnavailable возвращается, когда не удалось проверить членство в команде
	ErrTeamServiceUnavailable = errors.New("cancel_booking: team service unavailable")

	// ErrTransientConflict возвращается, когда транзакция не прошла после всех повторов
	ErrTransientConflict = errors.New("cancel_booking: transient conflict, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
