// Package contextstore keeps per-session conversation context with bounded
// history.
package contextstore

import (
	"context"
	"time"
)

// History bounds per session. Appends are fully applied before truncation,
// so the newest entries always survive.
const (
	MaxIntentHistory = 10
	MaxEntityHistory = 20
)

// IntentRecord is one remembered classification.
type IntentRecord struct {
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence"`
	At         time.Time `json:"at"`
}

// EntityRecord is one remembered extraction.
type EntityRecord struct {
	Type       string    `json:"type"`
	Value      string    `json:"value"`
	Confidence float64   `json:"confidence"`
	At         time.Time `json:"at"`
}

// Context is a snapshot of one session's remembered state. The zero value is
// the context of a session that was never updated.
type Context struct {
	Intents    []IntentRecord `json:"intents"`
	Entities   []EntityRecord `json:"entities"`
	LastAction string         `json:"lastAction"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// Store is the session context contract the pipeline depends on. Context
// never fails for a merely unknown session id; it returns the zero value.
type Store interface {
	Update(ctx context.Context, sessionID string, intent IntentRecord, entities []EntityRecord) error
	Context(ctx context.Context, sessionID string) (Context, error)
}

// trimContext truncates both histories to their bounds, keeping the most
// recent entries. Runs after the append so a full update is never lost
// mid-application.
func trimContext(c *Context) {
	if n := len(c.Intents); n > MaxIntentHistory {
		c.Intents = append([]IntentRecord(nil), c.Intents[n-MaxIntentHistory:]...)
	}
	if n := len(c.Entities); n > MaxEntityHistory {
		c.Entities = append([]EntityRecord(nil), c.Entities[n-MaxEntityHistory:]...)
	}
}

// clone deep-copies a context so callers can hold snapshots safely.
func (c Context) clone() Context {
	out := Context{
		LastAction: c.LastAction,
		UpdatedAt:  c.UpdatedAt,
	}
	if len(c.Intents) > 0 {
		out.Intents = append([]IntentRecord(nil), c.Intents...)
	}
	if len(c.Entities) > 0 {
		out.Entities = append([]EntityRecord(nil), c.Entities...)
	}
	return out
}
