package observability

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestEventLog(t *testing.T) EventLog {
	t.Helper()
	log, err := NewJSONLEventLog(filepath.Join(t.TempDir(), "logs", "events.jsonl"))
	if err != nil {
		t.Fatalf("NewJSONLEventLog: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func TestEventLogWriteRead(t *testing.T) {
	log := newTestEventLog(t)

	events := []Event{
		{Level: "INFO", Type: EventChatTurn, Message: "chat turn completed", Data: map[string]any{"session_id": "s1", "elapsed_ms": 120.0}},
		{Level: "ERROR", Type: EventPersistFailed, Message: "interaction log write failed"},
		{Level: "INFO", Type: EventResumeLoaded, Message: "resume loaded", Data: map[string]any{"source": "gist"}},
	}
	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	all, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("events = %d, want 3", len(all))
	}
	if all[0].Time.IsZero() {
		t.Error("write should stamp a zero time")
	}

	errors, err := log.Read(EventFilter{Level: "ERROR"})
	if err != nil {
		t.Fatal(err)
	}
	if len(errors) != 1 || errors[0].Type != EventPersistFailed {
		t.Errorf("error events = %+v", errors)
	}

	turns, err := log.Read(EventFilter{Type: EventChatTurn})
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 1 || turns[0].Data["session_id"] != "s1" {
		t.Errorf("turn events = %+v", turns)
	}
}

func TestEventLogTimeFilter(t *testing.T) {
	log := newTestEventLog(t)

	past := time.Now().UTC().Add(-2 * time.Hour)
	if err := log.Write(Event{Time: past, Level: "INFO", Type: EventSessionStart}); err != nil {
		t.Fatal(err)
	}
	if err := log.Write(Event{Level: "INFO", Type: EventSessionStart}); err != nil {
		t.Fatal(err)
	}

	cutoff := time.Now().UTC().Add(-time.Hour)
	recent, err := log.Read(EventFilter{Since: &cutoff})
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 {
		t.Errorf("recent events = %d, want 1", len(recent))
	}

	old, err := log.Read(EventFilter{Until: &cutoff})
	if err != nil {
		t.Fatal(err)
	}
	if len(old) != 1 {
		t.Errorf("old events = %d, want 1", len(old))
	}
}

func TestEventLogSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	if err := log.Write(Event{Level: "INFO", Type: EventChatTurn}); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{corrupt\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := log.Write(Event{Level: "INFO", Type: EventChatTurn}); err != nil {
		t.Fatal(err)
	}

	events, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("events = %d, want 2 with corrupt line skipped", len(events))
	}
}

func TestEventLogReadMissingFile(t *testing.T) {
	log := &jsonlEventLog{path: filepath.Join(t.TempDir(), "nope.jsonl")}

	events, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if events != nil {
		t.Errorf("events = %v, want nil", events)
	}
}
