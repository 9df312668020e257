package dto

import "time"

// RecordObservationRequest is the internal endpoint payload for persisting a
// freshly computed risk score.
type RecordObservationRequest struct {
	EntityType         string    `json:"entity_type" binding:"required"`
	EntityID           string    `json:"entity_id" binding:"required"`
	Score              float64   `json:"score" binding:"min=0,max=100"`
	Severity           string    `json:"severity" binding:"required"`
	TriggeredRuleCodes []string  `json:"triggered_rule_codes"`
	RecordedAt         time.Time `json:"recorded_at"`
}

// IncrementUsageRequest is the payload for recording completed consumption.
type IncrementUsageRequest struct {
	Metric string `json:"metric" binding:"required"`
	Delta  int64  `json:"delta"`
}

// ConsumeUsageRequest is the payload for atomically claiming one unit ahead
// of a creation flow.
type ConsumeUsageRequest struct {
	Metric string `json:"metric" binding:"required"`
}
