package gist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/one-front/airesume/internal/store"
)

const infoFileName = "gist_info.json"

// localResumeCandidates lists the resume files an upload looks for,
// in order of preference.
var localResumeCandidates = []string{"resume.json", "candidate_resume.json"}

// Uploader publishes the local resume file and remembers the resulting
// gist so subsequent uploads update it instead of creating duplicates.
type Uploader struct {
	client   *Client
	basePath string
}

// NewUploader creates an Uploader reading resume files and gist info
// from the data directory under basePath.
func NewUploader(client *Client, basePath string) *Uploader {
	return &Uploader{client: client, basePath: basePath}
}

// infoPath is where the published gist identifiers are persisted.
func (u *Uploader) infoPath() string {
	return filepath.Join(u.basePath, "data", infoFileName)
}

// SavedInfo returns the persisted gist info from a previous upload, or
// nil if no upload has been recorded yet.
func (u *Uploader) SavedInfo() (*Info, error) {
	var info Info
	if err := store.Load(u.infoPath(), &info); err != nil {
		return nil, err
	}
	if info.GistID == "" {
		return nil, nil
	}
	return &info, nil
}

// Upload reads the local resume file, publishes it as a gist, and
// persists the gist identifiers for future updates. An existing
// recorded gist is updated in place.
func (u *Uploader) Upload(ctx context.Context) (*Info, error) {
	resumeJSON, path, err := u.readLocalResume()
	if err != nil {
		return nil, err
	}

	gistID := ""
	if saved, err := u.SavedInfo(); err == nil && saved != nil {
		gistID = saved.GistID
	}

	info, err := u.client.Upload(ctx, resumeJSON, gistID)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", path, err)
	}

	if err := store.Save(u.infoPath(), info); err != nil {
		return info, fmt.Errorf("saving gist info: %w", err)
	}
	return info, nil
}

// readLocalResume returns the contents of the first resume file found
// under the data directory.
func (u *Uploader) readLocalResume() ([]byte, string, error) {
	for _, name := range localResumeCandidates {
		path := filepath.Join(u.basePath, "data", name)
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return content, path, nil
	}
	return nil, "", fmt.Errorf("no resume file found under %s", filepath.Join(u.basePath, "data"))
}
