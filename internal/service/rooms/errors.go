package rooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room not found")

	// ErrStateNotAssignable возвращается при попытке вручную назначить
	// состояние, выводимое только из жизненного цикла брони (occupied)
	ErrStateNotAssignable = errors.New("room state cannot be assigned manually")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rooms service: internal error")
)
