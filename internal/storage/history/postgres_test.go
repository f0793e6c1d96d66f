package history

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbon-assistant/internal/common/database"
	"carbon-assistant/internal/common/errors"
	"carbon-assistant/internal/common/logger"
	"carbon-assistant/internal/models"
)

func setupMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	client := &database.PostgresClient{DB: db}
	return NewPostgresStore(client, logger.NewNoOpLogger()), mock
}

// ==========================
// Save
// ==========================

func TestSave_MintsIDAndTimestamp(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectExec("INSERT INTO interaction_history").
		WithArgs(sqlmock.AnyArg(), "session-1", models.HistoryKindChat, "greeting", "hello", "Hi there!", nil, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	record := &models.HistoryRecord{
		SessionID: "session-1",
		Kind:      models.HistoryKindChat,
		Intent:    "greeting",
		Message:   "hello",
		Response:  "Hi there!",
	}
	err := store.Save(context.Background(), record)

	require.NoError(t, err)
	_, parseErr := uuid.Parse(record.ID)
	assert.NoError(t, parseErr, "generated id should be a UUID")
	assert.False(t, record.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_KeepsProvidedID(t *testing.T) {
	store, mock := setupMockStore(t)
	id := uuid.NewString()
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	total := 5840.0

	mock.ExpectExec("INSERT INTO interaction_history").
		WithArgs(id, "session-1", models.HistoryKindCalculation, "", "", "", &total, "medium", createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	record := &models.HistoryRecord{
		ID:          id,
		SessionID:   "session-1",
		Kind:        models.HistoryKindCalculation,
		TotalKgCO2e: &total,
		Rating:      "medium",
		CreatedAt:   createdAt,
	}
	err := store.Save(context.Background(), record)

	require.NoError(t, err)
	assert.Equal(t, id, record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_WrapsDatabaseError(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectExec("INSERT INTO interaction_history").
		WillReturnError(stderrors.New("connection refused"))

	err := store.Save(context.Background(), &models.HistoryRecord{SessionID: "session-1", Kind: models.HistoryKindChat})

	require.Error(t, err)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeHistoryInsertFailed, stdErr.Code)
}

// ==========================
// ListBySession
// ==========================

func TestListBySession(t *testing.T) {
	store, mock := setupMockStore(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "session_id", "kind", "intent", "message", "response", "total_kg_co2e", "rating", "created_at"}).
		AddRow(uuid.NewString(), "session-1", "calculation", "", "", "", 5840.0, "medium", now).
		AddRow(uuid.NewString(), "session-1", "chat", "greeting", "hello", "Hi there!", nil, "", now.Add(-time.Minute))

	mock.ExpectQuery("FROM interaction_history").
		WithArgs("session-1", 10).
		WillReturnRows(rows)

	records, err := store.ListBySession(context.Background(), "session-1", 10)

	require.NoError(t, err)
	require.Len(t, records, 2)

	require.NotNil(t, records[0].TotalKgCO2e)
	assert.Equal(t, 5840.0, *records[0].TotalKgCO2e)
	assert.True(t, records[0].IsCalculation())

	assert.Nil(t, records[1].TotalKgCO2e)
	assert.Equal(t, "greeting", records[1].Intent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySession_DefaultsLimit(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("FROM interaction_history").
		WithArgs("session-1", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "kind", "intent", "message", "response", "total_kg_co2e", "rating", "created_at"}))

	records, err := store.ListBySession(context.Background(), "session-1", 0)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySession_WrapsQueryError(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("FROM interaction_history").
		WillReturnError(stderrors.New("timeout"))

	_, err := store.ListBySession(context.Background(), "session-1", 10)

	require.Error(t, err)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeHistoryQueryFailed, stdErr.Code)
}

// ==========================
// Summary
// ==========================

func TestSummary(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT intent, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"intent", "count"}).
			AddRow("greeting", 5).
			AddRow("calculate_carbon", 3))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(3, 5840.456))

	summary, err := store.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(8), summary.TotalMessages)
	assert.Equal(t, int64(5), summary.ByIntent["greeting"])
	assert.Equal(t, int64(3), summary.ByIntent["calculate_carbon"])
	assert.Equal(t, int64(3), summary.Calculations)
	assert.Equal(t, 5840.46, summary.AvgCalculationKg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummary_EmptyDatabase(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT intent, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"intent", "count"}))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(0, 0.0))

	summary, err := store.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalMessages)
	assert.Empty(t, summary.ByIntent)
	assert.Equal(t, 0.0, summary.AvgCalculationKg)
}

func TestEnsureSchema(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS interaction_history").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
