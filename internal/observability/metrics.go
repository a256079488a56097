package observability

import (
	"fmt"
	"time"
)

// Metrics holds aggregates derived from the event log.
type Metrics struct {
	ChatTurns       int            `json:"chat_turns"`
	Sessions        int            `json:"sessions"`
	PersistFailures int            `json:"persist_failures"`
	AlertsRaised    int            `json:"alerts_raised"`
	TurnsByProvider map[string]int `json:"turns_by_provider"`
	AvgTurnMS       float64        `json:"avg_turn_ms"`
	MaxTurnMS       int            `json:"max_turn_ms"`
	EventCount      int            `json:"event_count"`
	OldestEvent     *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent     *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator that reads from the
// given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		TurnsByProvider: make(map[string]int),
	}
	m.EventCount = len(events)

	var totalMS int
	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case EventChatTurn:
			m.ChatTurns++
			if provider, ok := event.Data["provider"].(string); ok {
				m.TurnsByProvider[provider]++
			}
			if ms, ok := event.Data["elapsed_ms"].(float64); ok {
				totalMS += int(ms)
				if int(ms) > m.MaxTurnMS {
					m.MaxTurnMS = int(ms)
				}
			}
		case EventSessionStart:
			m.Sessions++
		case EventPersistFailed:
			m.PersistFailures++
		case EventAlertRaised:
			m.AlertsRaised++
		}
	}

	if m.ChatTurns > 0 {
		m.AvgTurnMS = float64(totalMS) / float64(m.ChatTurns)
	}

	return m, nil
}
