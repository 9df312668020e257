// Package events provides the Kafka-backed risk event publisher.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/aimuhasebi/platform/internal/config"
	"github.com/aimuhasebi/platform/internal/domain/models"
	domainservice "github.com/aimuhasebi/platform/internal/domain/service"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
)

// observationEvent is the wire shape published to the observations topic.
type observationEvent struct {
	TenantID   string    `json:"tenant_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Score      float64   `json:"score"`
	Severity   string    `json:"severity"`
	RecordedAt time.Time `json:"recorded_at"`
}

// kafkaPublisher implements domain/service.RiskEventPublisher using a
// kafka-go writer. Messages are keyed by tenant so one tenant's observations
// stay ordered within a partition.
type kafkaPublisher struct {
	writer *kafka.Writer
	log    logger.Logger
}

// NewKafkaPublisher creates the Kafka risk event publisher.
func NewKafkaPublisher(cfg *config.KafkaConfig, log logger.Logger) domainservice.RiskEventPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.ObservationsTopic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BatchSize:    cfg.BatchSize,
		BatchTimeout: time.Duration(cfg.BatchTimeout) * time.Millisecond,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Async:        false,
	}

	return &kafkaPublisher{
		writer: writer,
		log:    log.WithComponent("kafka_publisher"),
	}
}

func (p *kafkaPublisher) PublishObservation(ctx context.Context, obs *models.RiskScoreObservation) error {
	payload, err := json.Marshal(observationEvent{
		TenantID:   obs.TenantID,
		EntityType: string(obs.EntityType),
		EntityID:   obs.EntityID,
		Score:      obs.Score,
		Severity:   string(obs.Severity),
		RecordedAt: obs.RecordedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal observation event")
	}

	msg := kafka.Message{
		Key:   []byte(obs.TenantID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "entity_type", Value: []byte(obs.EntityType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to publish observation event")
	}

	p.log.Debug(ctx, "Observation event published",
		logger.String("tenant_id", obs.TenantID),
		logger.String("entity_id", obs.EntityID),
	)
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
