package server

import (
	"net/http"
	"strconv"

	"carbon-assistant/internal/common/errors"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, errors.NewHistoryDisabledError())
		return
	}

	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		s.writeError(w, errors.NewRequestValidationFailedError("sessionId query parameter is required"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.writeError(w, errors.NewRequestValidationFailedError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	records, err := s.history.ListBySession(r.Context(), sessionID, limit)
	if err != nil {
		s.logger.WithError(err).Error("failed to load session history", map[string]interface{}{
			"session_id": sessionID,
		})
		s.writeError(w, errors.NewHistoryQueryFailedError(err))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId": sessionID,
		"records":   records,
	})
}

func (s *Server) handleHistorySummary(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, errors.NewHistoryDisabledError())
		return
	}

	summary, err := s.history.Summary(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to build history summary", nil)
		s.writeError(w, errors.NewHistoryQueryFailedError(err))
		return
	}

	s.writeJSON(w, http.StatusOK, summary)
}
