package create_group_reservation

import "errors"

var (
	// ErrGuestNotFound возвращается, когда гость с переданным ID не найден
	ErrGuestNotFound = errors.New("create_group_reservation: guest not found")

	// ErrRoomNotFound возвращается, когда одна из комнат не найдена
	ErrRoomNotFound = errors.New("create_group_reservation: room not found")

	// ErrRoomInactive возвращается, когда одна из комнат выведена из продажи
	ErrRoomInactive = errors.New("create_group_reservation: room is inactive")

	// ErrCapacityExceeded возвращается, когда число гостей превышает
	// вместимость одной из комнат
	ErrCapacityExceeded = errors.New("create_group_reservation: guest count exceeds room capacity")

	// ErrInvalidDateRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidDateRange = errors.New("create_group_reservation: checkout must be after checkin")

	// ErrOverlapConflict возвращается, когда интервал пересекается с активным
	// бронированием хотя бы одной комнаты группы; в этом случае не создается
	// ни одного бронирования
	ErrOverlapConflict = errors.New("create_group_reservation: room is already reserved for these dates")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_group_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_group_reservation: internal error")
)
