package repository

import (
	"context"

	"KronosServe/internal/domain/models"
	"KronosServe/internal/domain/repository"
	pkgkafka "KronosServe/pkg/kafka"
)

// KafkaAuditPublisher implements AuditPublisher over a Kafka topic.
// Events are keyed by symbol so one symbol's audit trail stays ordered.
type KafkaAuditPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaAuditPublisher creates a Kafka-backed audit publisher.
func NewKafkaAuditPublisher(producer *pkgkafka.Producer, topic string) repository.AuditPublisher {
	return &KafkaAuditPublisher{producer: producer, topic: topic}
}

func (p *KafkaAuditPublisher) Publish(ctx context.Context, event models.AuditEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(event.Symbol), event)
}

func (p *KafkaAuditPublisher) Close() error {
	return p.producer.Close()
}
