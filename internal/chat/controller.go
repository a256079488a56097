// Package chat drives one conversation turn end to end: select resume
// context, dispatch to the configured model backend, log the
// interaction and extend the transcript.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/one-front/airesume/internal/ledger"
	"github.com/one-front/airesume/internal/llm"
	"github.com/one-front/airesume/internal/observability"
	"github.com/one-front/airesume/internal/resume"
	"github.com/one-front/airesume/pkg/models"
)

// Settings selects the backend for a turn. Credential may be empty; the
// controller refuses to dispatch an HTTP provider without one.
type Settings struct {
	Provider   llm.Provider
	Model      string
	Credential string
}

// needsOpenRouterKey is shown instead of dispatching when the
// OpenRouter provider is selected without a key.
const needsOpenRouterKey = `🔑 **OpenRouter API Key Required**

To chat with AI, you need a free OpenRouter API key:

1. **Get Free Key**: Visit [OpenRouter.ai](https://openrouter.ai) and sign up
2. **Add Key**: Run the key setup or export OPENROUTER_API_KEY
3. **Start Chatting**: Ask any questions about the resume!`

const needsOpenAIKey = "Please add your OpenAI API key first!"

const needsProvider = "⚠️ Please configure an LLM provider first!"

// Controller owns one chat session's transcript and pipeline.
type Controller struct {
	dispatcher *llm.Dispatcher
	resume     resume.Service
	records    ledger.RecordKeeper
	events     observability.EventLog

	userID    string
	sessionID string
	messages  []models.ChatMessage
	now       func() time.Time
}

// NewController creates a Controller for a fresh session. events may be
// nil when no side-channel log is configured.
func NewController(dispatcher *llm.Dispatcher, svc resume.Service, records ledger.RecordKeeper, events observability.EventLog, userID string) *Controller {
	return &Controller{
		dispatcher: dispatcher,
		resume:     svc,
		records:    records,
		events:     events,
		userID:     userID,
		sessionID:  uuid.NewString(),
		now:        time.Now,
	}
}

// SessionID identifies this conversation in the interaction ledger.
func (c *Controller) SessionID() string { return c.sessionID }

// Messages returns the transcript so far.
func (c *Controller) Messages() []models.ChatMessage { return c.messages }

// Reset clears the transcript and starts a new session.
func (c *Controller) Reset() {
	c.messages = nil
	c.sessionID = uuid.NewString()
}

// ProcessTurn runs one full turn and returns the assistant response.
// Upstream failures surface as the response text, never as an error;
// the interaction is logged either way.
func (c *Controller) ProcessTurn(ctx context.Context, input string, settings Settings) string {
	c.messages = append(c.messages, models.ChatMessage{Role: "user", Content: input})

	started := c.now()
	resumeContext := c.resume.SelectContext(input)
	response := c.respond(ctx, input, resumeContext, settings)
	elapsed := int(c.now().Sub(started) / time.Millisecond)

	if _, err := c.records.LogInteraction(c.userID, c.sessionID, input, response, settings.Model, elapsed, nil); err != nil {
		// The in-memory state is still good; note the failure and keep
		// the chat alive.
		c.logEvent(observability.Event{
			Level:   "ERROR",
			Type:    observability.EventPersistFailed,
			Message: "interaction log write failed",
			Data:    map[string]any{"error": err.Error(), "session_id": c.sessionID},
		})
	}

	c.logEvent(observability.Event{
		Level:   "INFO",
		Type:    observability.EventChatTurn,
		Message: "chat turn completed",
		Data: map[string]any{
			"session_id":    c.sessionID,
			"provider":      string(settings.Provider),
			"model":         settings.Model,
			"elapsed_ms":    elapsed,
			"input_length":  len(input),
			"output_length": len(response),
		},
	})

	c.messages = append(c.messages, models.ChatMessage{Role: "assistant", Content: response})
	return response
}

// respond produces the assistant text, short-circuiting before any
// network dispatch when the provider is unusable.
func (c *Controller) respond(ctx context.Context, input, resumeContext string, settings Settings) string {
	if settings.Provider == "" || settings.Model == "" {
		return needsProvider
	}

	switch settings.Provider {
	case llm.ProviderOpenRouter:
		if strings.TrimSpace(settings.Credential) == "" {
			return needsOpenRouterKey
		}
	case llm.ProviderOpenAI:
		if settings.Credential == "" {
			return needsOpenAIKey
		}
	}

	// Only the latest user turn goes upstream; prior turns stay local.
	turn := []llm.Message{{Role: "user", Content: input}}
	return c.dispatcher.Chat(ctx, settings.Provider, settings.Model, turn, resumeContext, settings.Credential)
}

func (c *Controller) logEvent(event observability.Event) {
	if c.events == nil {
		return
	}
	event.Time = c.now()
	_ = c.events.Write(event)
}
