package observability

import (
	"testing"
)

func TestAlertEngineQuietLog(t *testing.T) {
	log := newTestEventLog(t)
	writeAll(t, log,
		Event{Level: "INFO", Type: EventChatTurn, Data: map[string]any{"session_id": "s1", "elapsed_ms": 150.0}},
	)

	alerts, err := NewAlertEngine(log, DefaultAlertThresholds()).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("alerts = %+v, want none", alerts)
	}
}

func TestAlertEnginePersistFailures(t *testing.T) {
	log := newTestEventLog(t)
	for i := 0; i < 3; i++ {
		writeAll(t, log, Event{Level: "ERROR", Type: EventPersistFailed})
	}

	alerts, err := NewAlertEngine(log, DefaultAlertThresholds()).Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if len(alerts) != 1 {
		t.Fatalf("alerts = %+v", alerts)
	}
	if alerts[0].Condition != "ledger_persist_failing" || alerts[0].Severity != SeverityHigh {
		t.Errorf("alert = %+v", alerts[0])
	}
}

func TestAlertEngineSlowTurns(t *testing.T) {
	log := newTestEventLog(t)
	writeAll(t, log,
		Event{Level: "INFO", Type: EventChatTurn, Data: map[string]any{"session_id": "s1", "elapsed_ms": 100.0}},
		Event{Level: "INFO", Type: EventChatTurn, Data: map[string]any{"session_id": "s1", "elapsed_ms": 45000.0}},
	)

	thresholds := DefaultAlertThresholds()
	alerts, err := NewAlertEngine(log, thresholds).Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if len(alerts) != 1 || alerts[0].Condition != "chat_turns_slow" {
		t.Fatalf("alerts = %+v", alerts)
	}
	if alerts[0].Severity != SeverityMedium {
		t.Errorf("severity = %q", alerts[0].Severity)
	}
}

func TestAlertEngineRunawaySession(t *testing.T) {
	log := newTestEventLog(t)
	thresholds := DefaultAlertThresholds()
	thresholds.MaxSessionTurns = 2

	writeAll(t, log,
		Event{Level: "INFO", Type: EventChatTurn, Data: map[string]any{"session_id": "s1", "elapsed_ms": 10.0}},
		Event{Level: "INFO", Type: EventChatTurn, Data: map[string]any{"session_id": "s1", "elapsed_ms": 10.0}},
		Event{Level: "INFO", Type: EventChatTurn, Data: map[string]any{"session_id": "s1", "elapsed_ms": 10.0}},
		Event{Level: "INFO", Type: EventChatTurn, Data: map[string]any{"session_id": "s2", "elapsed_ms": 10.0}},
	)

	alerts, err := NewAlertEngine(log, thresholds).Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if len(alerts) != 1 || alerts[0].Condition != "session_too_long" {
		t.Fatalf("alerts = %+v", alerts)
	}
	if alerts[0].ID != "session-s1" {
		t.Errorf("alert id = %q", alerts[0].ID)
	}
}
