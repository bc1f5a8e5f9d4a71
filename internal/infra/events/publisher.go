// Package events publishes committed booking changes to Kafka.
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

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"

	source = "room-scheduler"
)

var (
	// ErrPublish возвращается, если сообщение не удалось записать в kafka
	ErrPublish = errors.New("events: publish failed")

	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("events: encoding failed")
)

// MessageWriter часть *kafka.Writer, нужная издателю
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Payload тело сообщения
type Payload struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	BookingIDs []int64   `json:"bookingIds"`
	SeriesID   *string   `json:"seriesId,omitempty"`
	RoomID     int64     `json:"roomId,omitempty"`
	StaffID    int64     `json:"staffId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// KafkaPublisher публикует события бронирований в один топик
// Ключ сообщения - ID комнаты (или серии), чтобы события одной комнаты шли по порядку
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaPublisher создает kafka-go writer для брокеров и топика
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...interface{}) {}),
	})
}

// NewKafkaPublisherWithWriter оборачивает готовый writer
func NewKafkaPublisherWithWriter(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish синхронно отправляет событие
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	message, err := NewMessage(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, event.Type, err)
	}
	return nil
}

// Close сбрасывает буферы writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NewMessage собирает kafka сообщение из события
func NewMessage(event domain.BookingEvent) (kafka.Message, error) {
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	bookingIDs := event.BookingIDs
	if bookingIDs == nil {
		bookingIDs = []int64{}
	}

	payload := Payload{
		EventID:    uuid.NewString(),
		Type:       string(event.Type),
		BookingIDs: bookingIDs,
		SeriesID:   event.SeriesID,
		RoomID:     event.RoomID,
		StaffID:    event.StaffID,
		OccurredAt: occurredAt,
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return kafka.Message{
		Key:   []byte(messageKey(event)),
		Value: value,
		Time:  occurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(payload.EventID)},
			{Key: HeaderEventType, Value: []byte(payload.Type)},
			{Key: HeaderSource, Value: []byte(source)},
		},
	}, nil
}

func messageKey(event domain.BookingEvent) string {
	if event.RoomID != 0 {
		return "room:" + strconv.FormatInt(event.RoomID, 10)
	}
	if event.SeriesID != nil {
		return "series:" + *event.SeriesID
	}
	return string(event.Type)
}

// Noop издатель-заглушка, когда события выключены в конфиге
type Noop struct{}

func (Noop) Publish(context.Context, domain.BookingEvent) error { return nil }
func (Noop) Close() error                                       { return nil }
