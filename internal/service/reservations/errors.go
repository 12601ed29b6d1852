package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса;
	// сообщение называет текущий и запрошенный статусы
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidStateForEdit возвращается при попытке изменить бронирование
	// в терминальном статусе
	ErrInvalidStateForEdit = errors.New("reservation can no longer be edited")

	// ErrOverlapConflict возвращается, когда новые даты пересекаются с другим
	// активным бронированием той же комнаты
	ErrOverlapConflict = errors.New("room is already reserved for these dates")

	// ErrCapacityExceeded возвращается, когда новое число гостей превышает
	// вместимость комнаты
	ErrCapacityExceeded = errors.New("guest count exceeds room capacity")

	// ErrCannotDeletePending возвращается при попытке удалить pending-бронь:
	// нерешенное бронирование нельзя молча выбросить
	ErrCannotDeletePending = errors.New("pending reservation cannot be deleted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations service: internal error")
)
