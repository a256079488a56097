// Package resume loads resume data, normalizes it from the JSON Resume
// interchange format and selects question-relevant context slices for
// the chat prompt.
package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// fetchTimeout bounds the remote gist fetch so startup never hangs on a
// slow network.
const fetchTimeout = 10 * time.Second

// Loader resolves resume data from, in order, a public gist, local JSON
// files, and finally a built-in minimal fallback.
type Loader struct {
	client   *http.Client
	gistURL  string
	basePath string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithClient replaces the HTTP client used for the gist fetch.
func WithClient(client *http.Client) LoaderOption {
	return func(l *Loader) { l.client = client }
}

// WithGistURL sets the raw URL of the published resume gist. An empty
// URL skips the remote fetch entirely.
func WithGistURL(url string) LoaderOption {
	return func(l *Loader) { l.gistURL = url }
}

// NewLoader creates a Loader that looks for local files under basePath.
func NewLoader(basePath string, opts ...LoaderOption) *Loader {
	l := &Loader{
		client:   &http.Client{Timeout: fetchTimeout},
		basePath: basePath,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// localCandidates are checked in order when the gist is unreachable.
var localCandidates = []string{"resume.json", "candidate_resume.json"}

// Load resolves the resume and reports where it came from: "gist",
// "file:<path>" or "fallback". Load never fails; when every source is
// unavailable it returns the minimal built-in resume.
func (l *Loader) Load(ctx context.Context) (Service, string) {
	if l.gistURL != "" {
		if raw, err := l.fetchGist(ctx); err == nil {
			return NewService(ConvertJSONResume(raw)), "gist"
		}
	}

	for _, name := range localCandidates {
		path := filepath.Join(l.basePath, "data", name)
		raw, err := readResumeFile(path)
		if err != nil {
			continue
		}
		return NewService(ConvertJSONResume(raw)), "file:" + path
	}

	return NewService(fallbackResume()), "fallback"
}

func (l *Loader) fetchGist(ctx context.Context) (JSONResume, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.gistURL, nil)
	if err != nil {
		return JSONResume{}, fmt.Errorf("building gist request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return JSONResume{}, fmt.Errorf("fetching resume gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return JSONResume{}, fmt.Errorf("fetching resume gist: status %d", resp.StatusCode)
	}

	var raw JSONResume
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return JSONResume{}, fmt.Errorf("decoding resume gist: %w", err)
	}
	return raw, nil
}

func readResumeFile(path string) (JSONResume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return JSONResume{}, fmt.Errorf("reading resume file: %w", err)
	}
	var raw JSONResume
	if err := json.Unmarshal(data, &raw); err != nil {
		return JSONResume{}, fmt.Errorf("parsing resume file %s: %w", path, err)
	}
	return raw, nil
}
