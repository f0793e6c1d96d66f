// Package history persists interactions to Postgres so past conversations
// and calculations survive restarts. The whole feature is optional; when the
// database is disabled the service runs chat-only.
package history

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/google/uuid"

	"carbon-assistant/internal/common/database"
	"carbon-assistant/internal/common/errors"
	"carbon-assistant/internal/common/logger"
	"carbon-assistant/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS interaction_history (
	id UUID PRIMARY KEY,
	session_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	intent TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL DEFAULT '',
	response TEXT NOT NULL DEFAULT '',
	total_kg_co2e DOUBLE PRECISION,
	rating TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_interaction_history_session
	ON interaction_history (session_id, created_at DESC);`

const insertSQL = `
INSERT INTO interaction_history
	(id, session_id, kind, intent, message, response, total_kg_co2e, rating, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const listSQL = `
SELECT id, session_id, kind, intent, message, response, total_kg_co2e, rating, created_at
FROM interaction_history
WHERE session_id = $1
ORDER BY created_at DESC
LIMIT $2`

const countsSQL = `
SELECT intent, COUNT(*)
FROM interaction_history
WHERE kind = 'chat'
GROUP BY intent`

const calculationsSQL = `
SELECT COUNT(*), COALESCE(AVG(total_kg_co2e), 0)
FROM interaction_history
WHERE kind = 'calculation'`

// PostgresStore implements models.HistoryRepository on Postgres.
type PostgresStore struct {
	client *database.PostgresClient
	logger logger.Logger
}

func NewPostgresStore(client *database.PostgresClient, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		client: client,
		logger: log.With(map[string]interface{}{"component": "history_store"}),
	}
}

// EnsureSchema creates the history table and index when they do not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.client.Exec(ctx, schemaSQL); err != nil {
		return errors.NewDatabaseConnectionFailedError(err)
	}
	s.logger.Debug("history schema ensured", nil)
	return nil
}

// Save writes one record, minting an id and timestamp when absent.
func (s *PostgresStore) Save(ctx context.Context, record *models.HistoryRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.client.Exec(ctx, insertSQL,
		record.ID,
		record.SessionID,
		record.Kind,
		record.Intent,
		record.Message,
		record.Response,
		record.TotalKgCO2e,
		record.Rating,
		record.CreatedAt,
	)
	if err != nil {
		s.logger.WithError(err).Error("failed to insert history record", map[string]interface{}{
			"session_id": record.SessionID,
			"kind":       record.Kind,
		})
		return errors.NewHistoryInsertFailedError(err)
	}
	return nil
}

// ListBySession returns a session's interactions, newest first.
func (s *PostgresStore) ListBySession(ctx context.Context, sessionID string, limit int) ([]*models.HistoryRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.client.Query(ctx, listSQL, sessionID, limit)
	if err != nil {
		return nil, errors.NewHistoryQueryFailedError(err)
	}
	defer rows.Close()

	records := make([]*models.HistoryRecord, 0, limit)
	for rows.Next() {
		var (
			record models.HistoryRecord
			total  sql.NullFloat64
		)
		if err := rows.Scan(
			&record.ID,
			&record.SessionID,
			&record.Kind,
			&record.Intent,
			&record.Message,
			&record.Response,
			&total,
			&record.Rating,
			&record.CreatedAt,
		); err != nil {
			return nil, errors.NewHistoryQueryFailedError(err)
		}
		if total.Valid {
			v := total.Float64
			record.TotalKgCO2e = &v
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewHistoryQueryFailedError(err)
	}
	return records, nil
}

// Summary aggregates everything stored so far.
func (s *PostgresStore) Summary(ctx context.Context) (*models.HistorySummary, error) {
	summary := &models.HistorySummary{ByIntent: make(map[string]int64)}

	rows, err := s.client.Query(ctx, countsSQL)
	if err != nil {
		return nil, errors.NewHistoryQueryFailedError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			intentName string
			count      int64
		)
		if err := rows.Scan(&intentName, &count); err != nil {
			return nil, errors.NewHistoryQueryFailedError(err)
		}
		summary.ByIntent[intentName] = count
		summary.TotalMessages += count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewHistoryQueryFailedError(err)
	}

	row := s.client.QueryRow(ctx, calculationsSQL)
	if err := row.Scan(&summary.Calculations, &summary.AvgCalculationKg); err != nil {
		return nil, errors.NewHistoryQueryFailedError(err)
	}
	summary.AvgCalculationKg = math.Round(summary.AvgCalculationKg*100) / 100

	return summary, nil
}
