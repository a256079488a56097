package observability

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSlackNotifierPostsAlerts(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewSlackNotifier(server.URL, server.Client())
	alerts := []Alert{
		{
			ID:          "persist-failures",
			Condition:   "ledger_persist_failing",
			Severity:    SeverityHigh,
			Message:     "5 ledger writes failed in the last 24h; compliance records are being lost",
			TriggeredAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:          "slow-turns",
			Condition:   "chat_turns_slow",
			Severity:    SeverityMedium,
			Message:     "1 chat turns exceeded 20000ms (worst 45000ms) in the last 24h",
			TriggeredAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	if err := notifier.Notify(alerts); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	var msg slackMessage
	if err := json.Unmarshal(gotBody, &msg); err != nil {
		t.Fatalf("unmarshal posted body: %v", err)
	}
	if len(msg.Blocks) == 0 || msg.Blocks[0].Text == nil {
		t.Fatalf("blocks = %+v", msg.Blocks)
	}
	if msg.Blocks[0].Text.Text != "airesume Alert Summary" {
		t.Errorf("header = %q", msg.Blocks[0].Text.Text)
	}

	body := string(gotBody)
	if !strings.Contains(body, "ledger writes failed") {
		t.Errorf("body missing first alert message: %s", body)
	}
	if !strings.Contains(body, "*[HIGH]*") || !strings.Contains(body, "*[MEDIUM]*") {
		t.Errorf("body missing severity labels: %s", body)
	}
	if !strings.Contains(body, "2025-06-01 12:00 UTC") {
		t.Errorf("body missing timestamp: %s", body)
	}
}

func TestSlackNotifierEmptyAlerts(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	notifier := NewSlackNotifier(server.URL, server.Client())
	if err := notifier.Notify(nil); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0", requests)
	}
}

func TestSlackNotifierWebhookError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	notifier := NewSlackNotifier(server.URL, server.Client())
	err := notifier.Notify([]Alert{{Severity: SeverityLow, Message: "x", TriggeredAt: time.Now()}})
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("err = %v", err)
	}
}
