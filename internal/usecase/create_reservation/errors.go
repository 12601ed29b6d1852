package create_reservation

import "errors"

var (
	// ErrGuestNotFound возвращается, когда гость с переданным ID не найден
	ErrGuestNotFound = errors.New("create_reservation: guest not found")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_reservation: room not found")

	// ErrRoomInactive возвращается, когда комната выведена из продажи
	ErrRoomInactive = errors.New("create_reservation: room is inactive")

	// ErrCapacityExceeded возвращается, когда число гостей превышает
	// вместимость типа комнаты
	ErrCapacityExceeded = errors.New("create_reservation: guest count exceeds room capacity")

	// ErrInvalidDateRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidDateRange = errors.New("create_reservation: checkout must be after checkin")

	// ErrOverlapConflict возвращается, когда интервал пересекается с активным
	// бронированием той же комнаты
	ErrOverlapConflict = errors.New("create_reservation: room is already reserved for these dates")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
