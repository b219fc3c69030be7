package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrTeamNotFound возвращается, когда команда не найдена в TeamService
	ErrTeamNotFound = errors.New("create_booking: team not found")

	// ErrForbidden возвращается, когда пользователь бронирует не от своего имени
	// или не состоит в команде, от имени которой бронирует
	ErrForbidden = errors.New("create_booking: requester is not allowed to book on behalf of this owner")

	// ErrTeamServiceUnavailable возвращается, когда не удалось получить состав команды
	ErrTeamServiceUnavailable = errors.New("create_booking: team service unavailable")

	// ErrTransientConflict возвращается, когда транзакция не прошла после всех повторов.
	// Запрос можно повторить.
	ErrTransientConflict = errors.New("create_booking: transient conflict, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
