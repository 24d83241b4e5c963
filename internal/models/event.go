package models

import "time"

// Portfolio event types published to Kafka
const (
	EventPortfolioSynced   = "PORTFOLIO_SYNCED"
	EventAnalysisGenerated = "ANALYSIS_GENERATED"
)

// PortfolioEvent represents a Kafka event for portfolio lifecycle changes
type PortfolioEvent struct {
	EventType     string    `json:"event_type"`
	UserEmail     string    `json:"user_email"`
	HoldingsCount int       `json:"holdings_count"`
	TotalValue    float64   `json:"total_value,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// HoldingsSnapshotEvent carries a full holdings snapshot from an external
// feed. Raw records use the same loose field names the brokerage returns.
type HoldingsSnapshotEvent struct {
	EventType string                   `json:"event_type"`
	UserEmail string                   `json:"user_email"`
	Holdings  []map[string]interface{} `json:"holdings"`
	Timestamp time.Time                `json:"timestamp"`
}

// EventHoldingsSnapshot is the event type consumed by the holdings consumer
const EventHoldingsSnapshot = "HOLDINGS_SNAPSHOT"
