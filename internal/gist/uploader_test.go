package gist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newTestUploader(t *testing.T, server *httptest.Server) (*Uploader, string) {
	t.Helper()
	base := t.TempDir()
	client := NewClient("ghp_token", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	return NewUploader(client, base), base
}

func writeResume(t *testing.T, base, name, content string) {
	t.Helper()
	dir := filepath.Join(base, "data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUploaderCreatesAndRemembers(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(gistResponseBody))
	}))
	defer server.Close()

	uploader, base := newTestUploader(t, server)
	writeResume(t, base, "resume.json", `{"basics": {"name": "Jane"}}`)

	info, err := uploader.Upload(context.Background())
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if info.GistID != "abc123" {
		t.Errorf("GistID = %q", info.GistID)
	}

	saved, err := uploader.SavedInfo()
	if err != nil {
		t.Fatalf("SavedInfo: %v", err)
	}
	if saved == nil || saved.GistID != "abc123" {
		t.Fatalf("saved = %+v", saved)
	}

	// A second upload should update the recorded gist, not create a new one.
	if _, err := uploader.Upload(context.Background()); err != nil {
		t.Fatalf("second Upload: %v", err)
	}
	want := []string{"POST /gists", "PATCH /gists/abc123"}
	if len(paths) != len(want) {
		t.Fatalf("requests = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("request %d = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestUploaderFallsBackToCandidateFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(gistResponseBody))
	}))
	defer server.Close()

	uploader, base := newTestUploader(t, server)
	writeResume(t, base, "candidate_resume.json", `{"basics": {"name": "Jane"}}`)

	if _, err := uploader.Upload(context.Background()); err != nil {
		t.Fatalf("Upload: %v", err)
	}
}

func TestUploaderMissingResume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	uploader, _ := newTestUploader(t, server)
	if _, err := uploader.Upload(context.Background()); err == nil {
		t.Fatal("expected error when no resume file exists")
	}
}

func TestUploaderSavedInfoEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	uploader, _ := newTestUploader(t, server)
	saved, err := uploader.SavedInfo()
	if err != nil {
		t.Fatalf("SavedInfo: %v", err)
	}
	if saved != nil {
		t.Errorf("saved = %+v, want nil", saved)
	}
}
