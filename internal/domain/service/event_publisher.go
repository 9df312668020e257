// Package service defines domain-level service contracts implemented by the
// infrastructure layer.
package service

import (
	"context"

	"github.com/aimuhasebi/platform/internal/domain/models"
)

// RiskEventPublisher emits risk score observations to the platform event bus
// for downstream consumers (notifications, search indexing, BI exports).
// Publishing is a side channel: callers log failures and continue.
type RiskEventPublisher interface {
	PublishObservation(ctx context.Context, obs *models.RiskScoreObservation) error
	Close() error
}

// noopPublisher discards events. Used when the event bus is not configured.
type noopPublisher struct{}

// NewNoopPublisher returns a RiskEventPublisher that discards everything.
func NewNoopPublisher() RiskEventPublisher {
	return &noopPublisher{}
}

func (n *noopPublisher) PublishObservation(ctx context.Context, obs *models.RiskScoreObservation) error {
	return nil
}

func (n *noopPublisher) Close() error { return nil }
