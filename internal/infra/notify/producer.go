package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// Producer публикует события жизненного цикла бронирований в Kafka.
// Доставка выполняется после фиксации изменения; сбой публикации
// логируется вызывающей стороной и никогда не откатывает бронирование.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer создает Kafka-продюсер событий
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:  kafka.TCP(brokers...),
		Topic: topic,
		// Хеширование по ключу сохраняет порядок событий одного бронирования
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
	}

	return &Producer{writer: writer}
}

// Emit публикует событие; ключ сообщения — reference code бронирования
func (p *Producer) Emit(ctx context.Context, event domain.ReservationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshalEvent, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ReferenceCode),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}

// Close закрывает продюсер
func (p *Producer) Close() error {
	return p.writer.Close()
}
