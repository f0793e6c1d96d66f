// Package assistant wires the message pipeline: classify, extract, recall
// session context, respond, remember. Each stage is synchronous; the only
// I/O is the context store on either side of the response.
package assistant

import (
	"context"
	"sync"
	"time"

	"carbon-assistant/internal/assistant/contextstore"
	"carbon-assistant/internal/assistant/entity"
	"carbon-assistant/internal/assistant/intent"
	"carbon-assistant/internal/assistant/respond"
	"carbon-assistant/internal/common/logger"
	"carbon-assistant/internal/common/metrics"
	"carbon-assistant/internal/common/observability"
)

// Turn is the outcome of processing one message.
type Turn struct {
	SessionID string           `json:"sessionId"`
	Intent    intent.Intent    `json:"intent"`
	Entities  []entity.Entity  `json:"entities"`
	Response  respond.Response `json:"response"`
}

// Assistant runs the pipeline. It is stateless apart from the context store
// and safe for concurrent sessions; the classifier can be swapped while
// serving.
type Assistant struct {
	mu         sync.RWMutex
	classifier *intent.Classifier

	extractor *entity.Extractor
	store     contextstore.Store
	responder *respond.Responder
	logger    logger.Logger
	obs       *observability.Observability
}

func New(classifier *intent.Classifier, extractor *entity.Extractor, store contextstore.Store, responder *respond.Responder, log logger.Logger, obs *observability.Observability) *Assistant {
	return &Assistant{
		classifier: classifier,
		extractor:  extractor,
		store:      store,
		responder:  responder,
		logger:     log,
		obs:        obs,
	}
}

// Classifier returns the active classifier, e.g. to report its ruleset
// version.
func (a *Assistant) Classifier() *intent.Classifier {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.classifier
}

// Swap replaces the classifier after a retrain. Messages already in flight
// finish on the classifier they started with.
func (a *Assistant) Swap(c *intent.Classifier) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.classifier = c
}

// ProcessMessage always produces a turn with a response. Context store
// failures degrade to an empty session history; a panic anywhere in the
// pipeline degrades to the fallback response.
func (a *Assistant) ProcessMessage(ctx context.Context, sessionID, text string) (turn Turn) {
	start := time.Now()
	turn.SessionID = sessionID

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("message pipeline panicked, serving fallback", map[string]interface{}{
				"session_id": sessionID,
				"panic":      r,
			})
			metrics.FallbackResponses.WithLabelValues("panic").Inc()
			turn.Intent = intent.Intent{Name: intent.IntentUnknown, Confidence: respond.FallbackConfidence}
			turn.Entities = nil
			turn.Response = respond.Fallback()
		}
		metrics.MessagesProcessed.WithLabelValues(turn.Intent.Name).Inc()
		metrics.MessageDuration.WithLabelValues(turn.Intent.Name).Observe(time.Since(start).Seconds())
		if a.obs != nil {
			a.obs.RecordMessageProcessed(ctx, turn.Intent.Name)
			a.obs.RecordMessageDuration(ctx, time.Since(start), turn.Intent.Name)
		}
	}()

	turn.Intent = a.Classifier().Classify(text)
	turn.Entities = a.extractor.Extract(text)
	for _, ent := range turn.Entities {
		metrics.EntitiesExtracted.WithLabelValues(string(ent.Type)).Inc()
	}

	sessionCtx, err := a.store.Context(ctx, sessionID)
	if err != nil {
		a.logger.WithError(err).Warn("session context unavailable, continuing without history", map[string]interface{}{
			"session_id": sessionID,
		})
		sessionCtx = contextstore.Context{}
	}

	turn.Response = a.responder.Respond(text, turn.Intent, turn.Entities, sessionCtx)
	if turn.Intent.Name == intent.IntentUnknown {
		metrics.FallbackResponses.WithLabelValues("unknown_intent").Inc()
	}

	a.remember(ctx, sessionID, turn)

	a.logger.Debug("message processed", map[string]interface{}{
		"session_id": sessionID,
		"intent":     turn.Intent.Name,
		"confidence": turn.Intent.Confidence,
		"entities":   len(turn.Entities),
	})
	return turn
}

// remember persists the turn into session context. Failures are logged and
// swallowed so the user still gets their response.
func (a *Assistant) remember(ctx context.Context, sessionID string, turn Turn) {
	now := time.Now().UTC()
	intentRec := contextstore.IntentRecord{
		Name:       turn.Intent.Name,
		Confidence: turn.Intent.Confidence,
		At:         now,
	}
	entityRecs := make([]contextstore.EntityRecord, 0, len(turn.Entities))
	for _, ent := range turn.Entities {
		entityRecs = append(entityRecs, contextstore.EntityRecord{
			Type:       string(ent.Type),
			Value:      ent.Value,
			Confidence: ent.Confidence,
			At:         now,
		})
	}

	if err := a.store.Update(ctx, sessionID, intentRec, entityRecs); err != nil {
		a.logger.WithError(err).Warn("failed to persist session context", map[string]interface{}{
			"session_id": sessionID,
		})
	}
}
