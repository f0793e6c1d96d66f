package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"carbon-assistant/internal/analytics"
	"carbon-assistant/internal/assistant/knowledge"
	"carbon-assistant/internal/carbon"
	"carbon-assistant/internal/common/errors"
	"carbon-assistant/internal/common/metrics"
	"carbon-assistant/internal/models"
	"carbon-assistant/pkg/schemas"
)

const maxBodyBytes = 1 << 20

// decodeAndValidate reads the body once, checks it against the operation's
// request schema, and decodes it into out.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, operation string, out interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, errors.NewRequestValidationFailedError("request body unreadable or too large"))
		return false
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		s.writeError(w, errors.NewRequestValidationFailedError("invalid JSON body"))
		return false
	}

	result, err := s.schemas.Validate(operation, payload)
	if err != nil {
		s.writeError(w, errors.NewSchemaNotFoundError(operation))
		return false
	}
	if !result.Valid {
		details := make([]string, 0, len(result.Errors))
		for _, ve := range result.Errors {
			details = append(details, ve.Field+": "+ve.Message)
		}
		s.writeError(w, errors.NewRequestValidationFailedError(strings.Join(details, "; ")))
		return false
	}

	if err := json.Unmarshal(body, out); err != nil {
		s.writeError(w, errors.NewRequestValidationFailedError("invalid JSON body"))
		return false
	}
	return true
}

// sessionIDFor picks the session id from the request body, then the
// X-Session-Id header, and mints one for a fresh conversation.
func sessionIDFor(r *http.Request, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	return uuid.NewString()
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if !s.decodeAndValidate(w, r, schemas.OpChat, &req) {
		return
	}

	sessionID := sessionIDFor(r, req.SessionID)
	turn := s.assistant.ProcessMessage(r.Context(), sessionID, req.Message)

	s.saveHistory(r, &models.HistoryRecord{
		SessionID: sessionID,
		Kind:      models.HistoryKindChat,
		Intent:    turn.Intent.Name,
		Message:   req.Message,
		Response:  turn.Response.Text,
	})

	entities := make([]models.ChatEntity, 0, len(turn.Entities))
	for _, ent := range turn.Entities {
		entities = append(entities, models.ChatEntity{
			Type:       string(ent.Type),
			Value:      ent.Value,
			Confidence: ent.Confidence,
		})
	}

	w.Header().Set("X-Session-Id", sessionID)
	s.writeJSON(w, http.StatusOK, models.ChatResponse{
		SessionID:      sessionID,
		Intent:         turn.Intent.Name,
		Confidence:     turn.Intent.Confidence,
		Entities:       entities,
		Text:           turn.Response.Text,
		Suggestions:    turn.Response.Suggestions,
		Data:           turn.Response.Data,
		RulesetVersion: s.assistant.Classifier().Version(),
		Timestamp:      time.Now().UTC(),
	})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req models.CalculationRequest
	if !s.decodeAndValidate(w, r, schemas.OpCalculate, &req) {
		return
	}

	result := s.engine.Calculate(carbon.Input{
		ElectricityKWh: req.ElectricityKWh,
		FuelLiters:     req.FuelLiters,
		TravelKM:       req.TravelKM,
		WasteKG:        req.WasteKG,
		Employees:      req.Employees,
	})
	metrics.CalculationsPerformed.WithLabelValues(result.Rating).Inc()

	recommendations := s.engine.Recommendations(result)
	if req.Industry != "" {
		recommendations = append(s.kb.Recommendations(req.Industry, knowledge.LevelBeginner), recommendations...)
	}

	resp := models.CalculationResponse{
		TotalKgCO2e:     result.TotalKgCO2e,
		Breakdown:       result.Breakdown,
		Shares:          result.Shares,
		Rating:          result.Rating,
		Recommendations: recommendations,
	}
	if req.Industry != "" && req.Employees > 0 {
		b := analytics.Benchmark(req.Industry, result.TotalKgCO2e, req.Employees)
		resp.Benchmark = &models.IndustryBenchmark{
			Industry:              b.Industry,
			IndustryKgPerEmployee: b.IndustryKgPerEmployee,
			YourKgPerEmployee:     b.YourKgPerEmployee,
			DeltaPct:              b.DeltaPct,
			Standing:              b.Standing,
		}
	}

	if req.SessionID != "" {
		total := result.TotalKgCO2e
		s.saveHistory(r, &models.HistoryRecord{
			SessionID:   req.SessionID,
			Kind:        models.HistoryKindCalculation,
			TotalKgCO2e: &total,
			Rating:      result.Rating,
		})
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var req models.ProjectionRequest
	if !s.decodeAndValidate(w, r, schemas.OpProjection, &req) {
		return
	}

	growth := analytics.DefaultGrowthRate
	if req.GrowthRate != nil {
		growth = *req.GrowthRate
	}

	resp := models.ProjectionResponse{
		GrowthRate: growth,
		Trend:      toYearProjections(analytics.Trend(req.BaselineKgCO2e, req.Years, growth)),
	}
	if req.TargetReduction != nil {
		resp.ReductionPath = toYearProjections(analytics.ReductionPath(req.BaselineKgCO2e, *req.TargetReduction, req.Years))
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func toYearProjections(path []analytics.Projection) []models.YearProjection {
	out := make([]models.YearProjection, 0, len(path))
	for _, p := range path {
		out = append(out, models.YearProjection{Year: p.Year, KgCO2e: p.KgCO2e})
	}
	return out
}

// saveHistory persists a record when history is enabled. Failures only cost
// us the record, never the response.
func (s *Server) saveHistory(r *http.Request, record *models.HistoryRecord) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(r.Context(), record); err != nil {
		s.logger.WithError(err).Warn("failed to save history record", map[string]interface{}{
			"session_id": record.SessionID,
			"kind":       record.Kind,
		})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("failed to encode response", nil)
	}
}

func (s *Server) writeError(w http.ResponseWriter, stdErr *errors.StandardError) {
	s.writeJSON(w, errors.HTTPStatus(stdErr.Code), errors.ToAPIError(stdErr))
}
