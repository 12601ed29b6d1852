package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrOverlapViolation возвращается, когда вставка или изменение дат
	// нарушает exclusion constraint непересекающихся интервалов.
	// Это страховка уровня хранилища: конкурирующая запись, проскочившая
	// мимо проверки доступности, завершается этой ошибкой, а не второй строкой.
	ErrOverlapViolation = errors.New("reservation.repository: overlapping reservation exists")

	// ErrStatusConflict возвращается, когда guarded-обновление статуса не
	// нашло строку в ожидаемом исходном статусе (конкурентный переход успел раньше)
	ErrStatusConflict = errors.New("reservation.repository: reservation is not in the expected status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
