// Package llm routes chat requests to one of several interchangeable
// model backends and normalizes every outcome, success or failure, into
// a single display string. The chat surface has exactly one rendering
// path, so upstream errors become chat responses instead of Go errors.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Provider names a chat backend.
type Provider string

const (
	ProviderOllama     Provider = "ollama"
	ProviderOpenRouter Provider = "openrouter"
	ProviderOpenAI     Provider = "openai"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// openRouterKeyPrefix is the format OpenRouter issues keys in. Requests
// with a key that cannot possibly be valid are rejected locally.
const openRouterKeyPrefix = "sk-or-"

// Message is one conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Dispatcher sends chat requests to a selected provider. The zero value
// is not usable; construct with New.
type Dispatcher struct {
	client    *http.Client
	ollamaURL string
	getenv    func(string) string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the HTTP client used for all outbound calls.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Dispatcher) { d.client = client }
}

// WithOllamaURL points the local-daemon provider at the given base URL.
// Without it the ollama provider reports itself unavailable.
func WithOllamaURL(url string) Option {
	return func(d *Dispatcher) { d.ollamaURL = strings.TrimSuffix(url, "/") }
}

// New creates a Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client: &http.Client{},
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AvailableProviders lists the providers the current process can reach.
// OpenRouter is always offered since the user supplies its key at chat
// time. Ollama is offered only if the daemon answers a liveness probe,
// OpenAI only if a key is present in the environment.
func (d *Dispatcher) AvailableProviders(ctx context.Context) []Provider {
	providers := []Provider{ProviderOpenRouter}

	if d.ollamaURL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.ollamaURL+"/api/tags", nil)
		if err == nil {
			if resp, err := d.client.Do(req); err == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					providers = append(providers, ProviderOllama)
				}
			}
		}
	}

	if d.getenv("OPENAI_API_KEY") != "" {
		providers = append(providers, ProviderOpenAI)
	}

	return providers
}

// systemPrompt builds the instruction block sent ahead of the
// conversation, embedding the selected resume context.
func systemPrompt(resumeContext string) string {
	return fmt.Sprintf(`You are an AI assistant helping users explore this candidate's professional resume.

CONTEXT: %s

FORMATTING GUIDELINES:
- Use proper Markdown formatting in all responses
- Use **bold** for important terms, names, and key points
- Use ##### for headers and section titles
- Use - for bullet points in lists and achievements
- Use `+"`code blocks`"+` for technical skills and technologies
- Keep responses well-structured and easy to scan
- Be professional but conversational
- Focus on relevant details from the provided context`, resumeContext)
}

// Chat sends the conversation to the named provider and returns the
// assistant text. Every failure path is folded into the returned string.
func (d *Dispatcher) Chat(ctx context.Context, provider Provider, model string, messages []Message, resumeContext, credential string) string {
	switch provider {
	case ProviderOllama:
		return d.chatOllama(ctx, model, messages, resumeContext)
	case ProviderOpenRouter:
		return d.chatOpenRouter(ctx, model, messages, resumeContext, credential)
	case ProviderOpenAI:
		return d.chatOpenAI(ctx, model, messages, resumeContext, credential)
	default:
		return fmt.Sprintf("Unknown provider: %s", provider)
	}
}

func (d *Dispatcher) chatOllama(ctx context.Context, model string, messages []Message, resumeContext string) string {
	if d.ollamaURL == "" {
		return "Ollama not available"
	}
	if len(messages) == 0 {
		return "Ollama error: empty conversation"
	}

	prompt := systemPrompt(resumeContext) + "\n\nUSER QUESTION: " + messages[len(messages)-1].Content

	body, err := json.Marshal(map[string]any{
		"model":    model,
		"messages": []Message{{Role: "user", Content: prompt}},
		"stream":   false,
	})
	if err != nil {
		return fmt.Sprintf("Ollama error: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.ollamaURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return fmt.Sprintf("Ollama error: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Ollama error: %v", err)
	}
	defer resp.Body.Close()

	var parsed struct {
		Message Message `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Sprintf("Ollama error: %v", err)
	}
	return parsed.Message.Content
}

func (d *Dispatcher) chatOpenRouter(ctx context.Context, model string, messages []Message, resumeContext, credential string) string {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "OpenRouter API key required"
	}
	if !strings.HasPrefix(credential, openRouterKeyPrefix) {
		shown := credential
		if len(shown) > 10 {
			shown = shown[:10]
		}
		return fmt.Sprintf("Invalid API key format. Expected format: sk-or-... but got: %s...", shown)
	}

	full := append([]Message{{Role: "system", Content: systemPrompt(resumeContext)}}, messages...)
	body, err := json.Marshal(map[string]any{
		"model":    model,
		"messages": full,
	})
	if err != nil {
		return fmt.Sprintf("OpenRouter error: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openRouterURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Sprintf("OpenRouter error: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "https://one-front.github.io/airesume")
	req.Header.Set("X-Title", "AI Resume Chat Interface")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Network error: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("Network error: %v", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return authFailedMessage(credential)
	case resp.StatusCode != http.StatusOK:
		return fmt.Sprintf(`❌ **OpenRouter API Error (%d)**

%s

Please check:
1. Your API key is valid and active
2. You have credits/quota remaining
3. The model '%s' is available`, resp.StatusCode, raw, model)
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Sprintf("OpenRouter error: %v", err)
	}
	if content, ok := firstChoiceContent(parsed); ok {
		return content
	}
	return fmt.Sprintf("Unexpected response format: %v", parsed)
}

// authFailedMessage redacts the key to its first 15 and last 4
// characters. Short keys show the prefix only so the tail never
// overlaps what was already shown.
func authFailedMessage(credential string) string {
	redacted := credential
	if len(redacted) > 15 {
		redacted = redacted[:15]
	}
	tail := ""
	if len(credential) > 20 {
		tail = credential[len(credential)-4:]
	}
	return fmt.Sprintf(`🔑 **Authentication Failed (401)**

Your API key is not being accepted by OpenRouter. Please:

1. **Double-check Key**: Make sure you copied the complete API key from OpenRouter.ai
2. **Key Format**: Should start with 'sk-or-v1-' and be about 70+ characters long
3. **Account Status**: Ensure your OpenRouter account is active and verified
4. **Generate New Key**: Try creating a fresh API key at [OpenRouter.ai](https://openrouter.ai)

**Current key format**: %s...%s`, redacted, tail)
}

// firstChoiceContent pulls choices[0].message.content out of a parsed
// chat-completions response.
func firstChoiceContent(parsed map[string]any) (string, bool) {
	choices, ok := parsed["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}
	choice, ok := choices[0].(map[string]any)
	if !ok {
		return "", false
	}
	message, ok := choice["message"].(map[string]any)
	if !ok {
		return "", false
	}
	content, ok := message["content"].(string)
	return content, ok
}

func (d *Dispatcher) chatOpenAI(ctx context.Context, model string, messages []Message, resumeContext, credential string) string {
	if credential == "" {
		return "OpenAI API key required"
	}

	cfg := openai.DefaultConfig(credential)
	cfg.HTTPClient = d.client
	client := openai.NewClientWithConfig(cfg)

	full := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	full = append(full, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt(resumeContext),
	})
	for _, m := range messages {
		full = append(full, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: full,
	})
	if err != nil {
		return fmt.Sprintf("OpenAI error: %v", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Sprintf("Unexpected response format: %+v", resp)
	}
	return resp.Choices[0].Message.Content
}
