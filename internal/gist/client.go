// Package gist publishes resume JSON to GitHub gists so the chat
// application can load it from a stable raw URL.
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	apiBaseURL     = "https://api.github.com"
	resumeFileName = "resume.json"
	requestTimeout = 15 * time.Second
)

// Info captures the identifiers of a published resume gist. It is
// persisted alongside the ledgers so later uploads update the same gist.
type Info struct {
	GistID    string `json:"gist_id"`
	HTMLURL   string `json:"html_url"`
	RawURL    string `json:"raw_url"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Client creates and updates resume gists via the GitHub API.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithBaseURL overrides the GitHub API base URL, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a gist Client authenticating with the given token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: apiBaseURL,
		token:   token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type gistFile struct {
	Content string `json:"content"`
	RawURL  string `json:"raw_url,omitempty"`
}

type gistPayload struct {
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	Files       map[string]gistFile `json:"files"`
}

type gistResponse struct {
	ID        string              `json:"id"`
	HTMLURL   string              `json:"html_url"`
	Files     map[string]gistFile `json:"files"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}

// Upload publishes the given resume JSON as a public gist. When gistID
// is non-empty the existing gist is updated in place, otherwise a new
// gist is created. The resume content must be valid JSON.
func (c *Client) Upload(ctx context.Context, resumeJSON []byte, gistID string) (*Info, error) {
	if c.token == "" {
		return nil, fmt.Errorf("github token is required, get one at https://github.com/settings/tokens with the gist scope")
	}
	if !json.Valid(resumeJSON) {
		return nil, fmt.Errorf("resume content is not valid JSON")
	}

	payload := gistPayload{
		Description: "Professional Resume (JSON Resume Format)",
		Public:      true,
		Files: map[string]gistFile{
			resumeFileName: {Content: string(resumeJSON)},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling gist payload: %w", err)
	}

	method := http.MethodPost
	url := c.baseURL + "/gists"
	action := "creating"
	if gistID != "" {
		method = http.MethodPatch
		url = c.baseURL + "/gists/" + gistID
		action = "updating"
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s gist: %w", action, err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s gist: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s gist: github returned status %d: %s", action, resp.StatusCode, string(raw))
	}

	var result gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding gist response: %w", err)
	}

	info := &Info{
		GistID:    result.ID,
		HTMLURL:   result.HTMLURL,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}
	if file, ok := result.Files[resumeFileName]; ok {
		info.RawURL = file.RawURL
	}
	return info, nil
}
