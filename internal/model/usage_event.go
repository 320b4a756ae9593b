package model

import "time"

// UsageEvent records one accepted unit of metered consumption.
type UsageEvent struct {
	EventID    string            `json:"event_id"`
	CustomerID string            `json:"customer_id"`
	FeatureID  string            `json:"feature_id"`
	Amount     int               `json:"amount"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
