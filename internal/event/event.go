// Package event publishes booking lifecycle events.
package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Type string

const (
	BookingCreated   Type = "booking.created"
	BookingPaid      Type = "booking.paid"
	BookingCancelled Type = "booking.cancelled"
	BookingExpired   Type = "booking.expired"
)

type Event struct {
	Type          Type      `json:"type"`
	BookingID     string    `json:"bookingId"`
	ScheduleID    string    `json:"scheduleId"`
	CompanyID     string    `json:"companyId"`
	UserID        string    `json:"userId"`
	Seats         []string  `json:"seats"`
	Amount        float64   `json:"amount"`
	BookingStatus string    `json:"bookingStatus"`
	PaymentStatus string    `json:"paymentStatus"`
	TransactionID string    `json:"transactionId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// KafkaPublisher writes events keyed by schedule id, so a schedule's events stay ordered in one partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
	})
	return &KafkaPublisher{
		writer: writer,
		log:    log.With(zap.String("publisher", "kafka"), zap.String("topic", topic)),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	msg, err := Message(e)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to publish event",
			zap.Error(err),
			zap.String("type", string(e.Type)),
			zap.String("booking_id", e.BookingID))
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Message encodes e as a Kafka message.
func Message(e Event) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(e.ScheduleID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
		Time: e.OccurredAt,
	}, nil
}

// LogPublisher only logs events. Used when Kafka is disabled.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log.With(zap.String("publisher", "log"))}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	p.log.Info("Booking event",
		zap.String("type", string(e.Type)),
		zap.String("booking_id", e.BookingID),
		zap.String("schedule_id", e.ScheduleID),
		zap.Strings("seats", e.Seats))
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
