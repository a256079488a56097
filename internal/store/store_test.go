package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testRecord struct {
	ID   string `json:"id"`
	Note string `json:"note"`
}

func (r testRecord) RecordID() string { return r.ID }

type testDoc struct {
	Entries     Collection[testRecord] `json:"entries"`
	LastUpdated string                 `json:"last_updated"`
}

func TestLoadMissingFileLeavesZeroValue(t *testing.T) {
	var doc testDoc
	path := filepath.Join(t.TempDir(), "absent.json")

	if err := Load(path, &doc); err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if doc.Entries.Len() != 0 {
		t.Errorf("expected empty collection, got %d entries", doc.Entries.Len())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	var doc testDoc
	err := Load(path, &doc)
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected *CorruptError, got %v", err)
	}
	if corrupt.Path != path {
		t.Errorf("CorruptError.Path = %q, want %q", corrupt.Path, path)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "doc.json")

	doc := testDoc{LastUpdated: "2025-06-01T12:00:00"}
	doc.Entries.Append(testRecord{ID: "R-001", Note: "first"})
	doc.Entries.Append(testRecord{ID: "R-002", Note: "second"})

	if err := Save(path, &doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got testDoc
	if err := Load(path, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.LastUpdated != doc.LastUpdated {
		t.Errorf("LastUpdated = %q, want %q", got.LastUpdated, doc.LastUpdated)
	}
	if got.Entries.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", got.Entries.Len())
	}
	if rec, ok := got.Entries.Get("R-002"); !ok || rec.Note != "second" {
		t.Errorf("Get(R-002) = %+v, %v", rec, ok)
	}
}

func TestSaveFailureReturnsPersistError(t *testing.T) {
	dir := t.TempDir()
	// A file in place of the parent directory makes MkdirAll fail.
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := Save(filepath.Join(blocker, "doc.json"), &testDoc{})
	var persist *PersistError
	if !errors.As(err, &persist) {
		t.Fatalf("expected *PersistError, got %v", err)
	}
}

func TestEmptyCollectionMarshalsAsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := Save(path, &testDoc{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"entries": []`) {
		t.Errorf("empty collection should marshal as [], got:\n%s", data)
	}
}

func TestCollectionUpdate(t *testing.T) {
	var c Collection[testRecord]
	c.Append(testRecord{ID: "R-001", Note: "old"})

	if !c.Update("R-001", func(r *testRecord) { r.Note = "new" }) {
		t.Fatal("Update returned false for existing record")
	}
	if rec, _ := c.Get("R-001"); rec.Note != "new" {
		t.Errorf("Note = %q, want %q", rec.Note, "new")
	}
	if c.Update("R-999", func(r *testRecord) {}) {
		t.Error("Update returned true for missing record")
	}
}

func TestNextSeqID(t *testing.T) {
	tests := []struct {
		prefix string
		count  int
		want   string
	}{
		{"RISK", 0, "RISK-001"},
		{"DQ", 2, "DQ-003"},
		{"DOC", 99, "DOC-100"},
		{"DP", 999, "DP-1000"},
	}
	for _, tt := range tests {
		if got := NextSeqID(tt.prefix, tt.count); got != tt.want {
			t.Errorf("NextSeqID(%q, %d) = %q, want %q", tt.prefix, tt.count, got, tt.want)
		}
	}
}
