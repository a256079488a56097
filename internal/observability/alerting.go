package observability

import (
	"fmt"
	"time"
)

// AlertSeverity represents the urgency of an operational alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert represents a triggered operational condition.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when operational alerts fire.
type AlertThresholds struct {
	PersistFailureCount int `yaml:"persist_failure_count" json:"persist_failure_count"`
	SlowTurnMS          int `yaml:"slow_turn_ms" json:"slow_turn_ms"`
	MaxSessionTurns     int `yaml:"max_session_turns" json:"max_session_turns"`
	WindowHours         int `yaml:"window_hours" json:"window_hours"`
}

// DefaultAlertThresholds returns sensible defaults.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		PersistFailureCount: 3,
		SlowTurnMS:          20000,
		MaxSessionTurns:     200,
		WindowHours:         24,
	}
}

// AlertEngine evaluates alert conditions against the event log.
type AlertEngine interface {
	Evaluate() ([]Alert, error)
}

type alertEngine struct {
	eventLog   EventLog
	thresholds AlertThresholds
}

// NewAlertEngine creates an AlertEngine over the given EventLog.
func NewAlertEngine(eventLog EventLog, thresholds AlertThresholds) AlertEngine {
	return &alertEngine{
		eventLog:   eventLog,
		thresholds: thresholds,
	}
}

// Evaluate reads recent events and checks all alert conditions.
func (ae *alertEngine) Evaluate() ([]Alert, error) {
	now := time.Now().UTC()
	since := now.Add(-time.Duration(ae.thresholds.WindowHours) * time.Hour)

	persistAlerts, err := ae.checkPersistFailures(now, since)
	if err != nil {
		return nil, fmt.Errorf("checking persist failures: %w", err)
	}
	alerts := persistAlerts

	slowAlerts, err := ae.checkSlowTurns(now, since)
	if err != nil {
		return nil, fmt.Errorf("checking slow turns: %w", err)
	}
	alerts = append(alerts, slowAlerts...)

	sessionAlerts, err := ae.checkRunawaySessions(now, since)
	if err != nil {
		return nil, fmt.Errorf("checking session sizes: %w", err)
	}
	alerts = append(alerts, sessionAlerts...)

	return alerts, nil
}

// checkPersistFailures alerts when ledger writes keep failing, which
// means compliance records are being dropped.
func (ae *alertEngine) checkPersistFailures(now, since time.Time) ([]Alert, error) {
	events, err := ae.eventLog.Read(EventFilter{Type: EventPersistFailed, Since: &since})
	if err != nil {
		return nil, err
	}

	if len(events) < ae.thresholds.PersistFailureCount {
		return nil, nil
	}
	return []Alert{{
		ID:          "persist-failures",
		Condition:   "ledger_persist_failing",
		Severity:    SeverityHigh,
		Message:     fmt.Sprintf("%d ledger writes failed in the last %dh; compliance records are being lost", len(events), ae.thresholds.WindowHours),
		TriggeredAt: now,
	}}, nil
}

// checkSlowTurns alerts when any chat turn exceeds the latency budget.
func (ae *alertEngine) checkSlowTurns(now, since time.Time) ([]Alert, error) {
	events, err := ae.eventLog.Read(EventFilter{Type: EventChatTurn, Since: &since})
	if err != nil {
		return nil, err
	}

	slow := 0
	worst := 0
	for _, event := range events {
		ms, ok := event.Data["elapsed_ms"].(float64)
		if !ok {
			continue
		}
		if int(ms) > ae.thresholds.SlowTurnMS {
			slow++
			if int(ms) > worst {
				worst = int(ms)
			}
		}
	}

	if slow == 0 {
		return nil, nil
	}
	return []Alert{{
		ID:          "slow-turns",
		Condition:   "chat_turns_slow",
		Severity:    SeverityMedium,
		Message:     fmt.Sprintf("%d chat turns exceeded %dms (worst %dms) in the last %dh", slow, ae.thresholds.SlowTurnMS, worst, ae.thresholds.WindowHours),
		TriggeredAt: now,
	}}, nil
}

// checkRunawaySessions alerts when a single session accumulates an
// unusually large number of turns.
func (ae *alertEngine) checkRunawaySessions(now, since time.Time) ([]Alert, error) {
	events, err := ae.eventLog.Read(EventFilter{Type: EventChatTurn, Since: &since})
	if err != nil {
		return nil, err
	}

	turnsBySession := make(map[string]int)
	for _, event := range events {
		if sessionID, ok := event.Data["session_id"].(string); ok && sessionID != "" {
			turnsBySession[sessionID]++
		}
	}

	var alerts []Alert
	for sessionID, turns := range turnsBySession {
		if turns > ae.thresholds.MaxSessionTurns {
			alerts = append(alerts, Alert{
				ID:          "session-" + sessionID,
				Condition:   "session_too_long",
				Severity:    SeverityLow,
				Message:     fmt.Sprintf("session %s has %d turns, exceeding the maximum of %d", sessionID, turns, ae.thresholds.MaxSessionTurns),
				TriggeredAt: now,
			})
		}
	}

	return alerts, nil
}
