package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbon-assistant/internal/assistant/contextstore"
	"carbon-assistant/internal/assistant/entity"
	"carbon-assistant/internal/assistant/intent"
	"carbon-assistant/internal/assistant/knowledge"
	"carbon-assistant/internal/assistant/respond"
	"carbon-assistant/internal/carbon"
	"carbon-assistant/internal/common/logger"
)

func newTestAssistant(t *testing.T) (*Assistant, *contextstore.MemoryStore) {
	t.Helper()
	store := contextstore.NewMemoryStore(time.Minute, 100)
	a := New(
		intent.NewDefaultClassifier(),
		entity.NewExtractor(),
		store,
		respond.NewResponder(knowledge.NewBase(), carbon.NewEngine()),
		logger.NewTestLogger(t),
		nil,
	)
	return a, store
}

// ==========================
// Pipeline
// ==========================

func TestProcessMessage_Greeting(t *testing.T) {
	a, store := newTestAssistant(t)

	turn := a.ProcessMessage(context.Background(), "session-1", "hello")

	assert.Equal(t, "session-1", turn.SessionID)
	assert.Equal(t, intent.IntentGreeting, turn.Intent.Name)
	assert.Equal(t, 0.95, turn.Intent.Confidence)
	assert.NotEmpty(t, turn.Response.Text)
	assert.Len(t, turn.Response.Suggestions, 4)

	// The turn must be remembered.
	ctx, err := store.Context(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, ctx.Intents, 1)
	assert.Equal(t, intent.IntentGreeting, ctx.Intents[0].Name)
	assert.Equal(t, intent.IntentGreeting, ctx.LastAction)
}

func TestProcessMessage_ExtractsAndRemembersEntities(t *testing.T) {
	a, store := newTestAssistant(t)

	turn := a.ProcessMessage(context.Background(), "session-1", "calculate my footprint, we used 4000 kwh")

	assert.Equal(t, intent.IntentCalculateCarbon, turn.Intent.Name)
	require.Len(t, turn.Entities, 1)
	assert.Equal(t, entity.TypeEnergy, turn.Entities[0].Type)
	assert.Equal(t, "4000", turn.Entities[0].Value)

	ctx, err := store.Context(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, ctx.Entities, 1)
	assert.Equal(t, "energy", ctx.Entities[0].Type)
	assert.Equal(t, "4000", ctx.Entities[0].Value)
}

func TestProcessMessage_SessionCarriesIndustryAcrossTurns(t *testing.T) {
	a, _ := newTestAssistant(t)
	ctx := context.Background()

	// First turn mentions the industry, second asks for recommendations
	// without repeating it.
	a.ProcessMessage(ctx, "session-1", "we work in retail, what is typical for our sector?")
	turn := a.ProcessMessage(ctx, "session-1", "give me suggestions to improve")

	assert.Equal(t, intent.IntentRecommendations, turn.Intent.Name)
	assert.Equal(t, "retail", turn.Response.Data["industry"])
}

func TestProcessMessage_SessionsDoNotLeakIntoEachOther(t *testing.T) {
	a, _ := newTestAssistant(t)
	ctx := context.Background()

	a.ProcessMessage(ctx, "session-a", "we work in retail, what is typical for our sector?")
	turn := a.ProcessMessage(ctx, "session-b", "give me suggestions to improve")

	assert.Equal(t, "", turn.Response.Data["industry"])
}

func TestProcessMessage_UnknownInputStillAnswers(t *testing.T) {
	a, _ := newTestAssistant(t)

	turn := a.ProcessMessage(context.Background(), "session-1", "xyzzy plugh")

	assert.Equal(t, intent.IntentUnknown, turn.Intent.Name)
	assert.Equal(t, respond.FallbackConfidence, turn.Response.Confidence)
	assert.NotEmpty(t, turn.Response.Text)
}

// ==========================
// Degradation
// ==========================

// failingStore errors on every call.
type failingStore struct{}

func (failingStore) Update(context.Context, string, contextstore.IntentRecord, []contextstore.EntityRecord) error {
	return errors.New("store down")
}

func (failingStore) Context(context.Context, string) (contextstore.Context, error) {
	return contextstore.Context{}, errors.New("store down")
}

func TestProcessMessage_StoreFailureDegradesGracefully(t *testing.T) {
	a := New(
		intent.NewDefaultClassifier(),
		entity.NewExtractor(),
		failingStore{},
		respond.NewResponder(knowledge.NewBase(), carbon.NewEngine()),
		logger.NewNoOpLogger(),
		nil,
	)

	turn := a.ProcessMessage(context.Background(), "session-1", "hello")

	assert.Equal(t, intent.IntentGreeting, turn.Intent.Name)
	assert.NotEmpty(t, turn.Response.Text)
}

func TestProcessMessage_PanicServesFallback(t *testing.T) {
	// A nil classifier makes the first pipeline stage panic.
	a := New(
		nil,
		entity.NewExtractor(),
		contextstore.NewMemoryStore(time.Minute, 10),
		respond.NewResponder(knowledge.NewBase(), carbon.NewEngine()),
		logger.NewNoOpLogger(),
		nil,
	)

	turn := a.ProcessMessage(context.Background(), "session-1", "hello")

	assert.Equal(t, intent.IntentUnknown, turn.Intent.Name)
	assert.Equal(t, respond.FallbackConfidence, turn.Response.Confidence)
	assert.NotEmpty(t, turn.Response.Text)
}

func TestSwapReplacesClassifier(t *testing.T) {
	a, _ := newTestAssistant(t)

	rs := intent.Ruleset{
		Version: "2.0.0",
		Rules: []intent.Rule{
			{Name: "greeting", Keywords: []string{"ahoy"}},
		},
	}
	replacement, err := intent.NewClassifier(rs)
	require.NoError(t, err)

	a.Swap(replacement)

	assert.Equal(t, "2.0.0", a.Classifier().Version())
	turn := a.ProcessMessage(context.Background(), "session-1", "ahoy")
	assert.Equal(t, intent.IntentGreeting, turn.Intent.Name)
}

func TestProcessMessage_ConcurrentSessions(t *testing.T) {
	a, store := newTestAssistant(t)
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(id byte) {
			defer func() { done <- struct{}{} }()
			session := "session-" + string('a'+id)
			for j := 0; j < 20; j++ {
				a.ProcessMessage(ctx, session, "hello")
			}
		}(byte(i))
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	snapshot, err := store.Context(ctx, "session-a")
	require.NoError(t, err)
	assert.Len(t, snapshot.Intents, 10)
}
