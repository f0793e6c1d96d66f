package models

import (
	"context"
	"time"
)

// History record kinds.
const (
	HistoryKindChat        = "chat"
	HistoryKindCalculation = "calculation"
)

// HistoryRecord is one persisted interaction. TotalKgCO2e and Rating are
// only set for calculation records.
type HistoryRecord struct {
	ID          string    `json:"id" db:"id"`
	SessionID   string    `json:"sessionId" db:"session_id"`
	Kind        string    `json:"kind" db:"kind"`
	Intent      string    `json:"intent,omitempty" db:"intent"`
	Message     string    `json:"message,omitempty" db:"message"`
	Response    string    `json:"response,omitempty" db:"response"`
	TotalKgCO2e *float64  `json:"totalKgCo2e,omitempty" db:"total_kg_co2e"`
	Rating      string    `json:"rating,omitempty" db:"rating"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// IsCalculation reports whether the record carries a computed footprint.
func (r *HistoryRecord) IsCalculation() bool {
	return r.Kind == HistoryKindCalculation
}

// HistorySummary aggregates the stored interactions.
type HistorySummary struct {
	TotalMessages    int64            `json:"totalMessages"`
	ByIntent         map[string]int64 `json:"byIntent"`
	Calculations     int64            `json:"calculations"`
	AvgCalculationKg float64          `json:"avgCalculationKg"`
}

// HistoryRepository defines interaction history data access.
type HistoryRepository interface {
	Save(ctx context.Context, record *HistoryRecord) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]*HistoryRecord, error)
	Summary(ctx context.Context) (*HistorySummary, error)
}
