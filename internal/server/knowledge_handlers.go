package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// pathKey turns a URL path segment into a knowledge base key. Segments use
// dashes where the keys use spaces ("carbon-footprint" -> "carbon footprint").
func pathKey(r *http.Request, param string) string {
	raw := chi.URLParam(r, param)
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.ReplaceAll(raw, "-", " ")
}

func (s *Server) handleConcept(w http.ResponseWriter, r *http.Request) {
	key := pathKey(r, "key")
	concept := s.kb.ExplainConcept(key)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"concept":    key,
		"text":       concept.Text,
		"related":    concept.Related,
		"confidence": concept.Confidence,
	})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	industry := pathKey(r, "industry")
	level := r.URL.Query().Get("level")

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"industry":        industry,
		"level":           level,
		"recommendations": s.kb.Recommendations(industry, level),
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	industry := pathKey(r, "industry")
	questionType := r.URL.Query().Get("type")
	insight := s.kb.IndustryInsights(industry, questionType)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"industry":          industry,
		"questionType":      questionType,
		"answer":            insight.Answer,
		"followUpQuestions": insight.FollowUpQuestions,
	})
}

func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
	standard := pathKey(r, "standard")
	region := r.URL.Query().Get("region")
	info := s.kb.ComplianceInfo(standard, region)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"standard":    standard,
		"region":      region,
		"information": info.Information,
	})
}
