package notify

import "errors"

var (
	// ErrMarshalEvent возвращается при ошибке сериализации события
	ErrMarshalEvent = errors.New("notify: failed to marshal event")

	// ErrPublish возвращается при ошибке публикации события в Kafka
	ErrPublish = errors.New("notify: failed to publish event")
)
