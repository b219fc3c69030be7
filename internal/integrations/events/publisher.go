package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// ErrPublish возвращается, если событие не удалось записать в Kafka
var ErrPublish = errors.New("events: failed to publish event")

// Publisher публикует события бронирований в Kafka.
// Ключ сообщения - комната, чтобы события одной комнаты шли по порядку.
type Publisher struct {
	writer       MessageWriter
	writeTimeout time.Duration
	log          Logger
	now          func() time.Time
}

// NewKafkaPublisher создает издателя поверх kafka.Writer
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration, log Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("%w: at least one broker is required", ErrPublish)
	}
	if topic == "" {
		return nil, fmt.Errorf("%w: topic cannot be empty", ErrPublish)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: writeTimeout,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(log.Error),
	}

	return NewPublisher(writer, writeTimeout, log), nil
}

// NewPublisher создает издателя поверх произвольного writer
func NewPublisher(writer MessageWriter, writeTimeout time.Duration, log Logger) *Publisher {
	return &Publisher{
		writer:       writer,
		writeTimeout: writeTimeout,
		log:          log,
		now:          time.Now,
	}
}

// BookingCreated публикует событие о новом бронировании
func (p *Publisher) BookingCreated(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, EventBookingCreated, booking)
}

// BookingCancelled публикует событие об отмене бронирования
func (p *Publisher) BookingCancelled(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, EventBookingCancelled, booking)
}

func (p *Publisher) publish(ctx context.Context, eventType EventType, booking *domain.Booking) error {
	event := newBookingEvent(uuid.NewString(), eventType, p.now(), booking)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, eventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(booking.RoomID, 10)),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
			{Key: "event-id", Value: []byte(event.EventID)},
		},
	}

	// Бронирование уже закоммичено: отмена запроса не должна обрывать запись события
	ctx = context.WithoutCancel(ctx)
	if p.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.writeTimeout)
		defer cancel()
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s token=%s: %v", ErrPublish, eventType, booking.Token, err)
	}

	p.log.Info("Published %s for booking %s", eventType, booking.Token)
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher ничего не публикует; используется, когда события выключены
type NopPublisher struct{}

func (NopPublisher) BookingCreated(context.Context, *domain.Booking) error   { return nil }
func (NopPublisher) BookingCancelled(context.Context, *domain.Booking) error { return nil }
func (NopPublisher) Close() error                                            { return nil }
