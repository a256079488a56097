package cli

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/one-front/airesume/internal/observability"
)

func TestParseSinceDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{"empty defaults to 7d", "", false, ""},
		{"whitespace defaults to 7d", "  ", false, ""},
		{"valid 7d", "7d", false, ""},
		{"valid 30d", "30d", false, ""},
		{"valid 24h", "24h", false, ""},
		{"valid 1h", "1h", false, ""},
		{"invalid suffix", "abc", true, "unsupported duration format"},
		{"invalid day number", "xd", true, "invalid day duration"},
		{"invalid hour number", "yh", true, "invalid hour duration"},
		{"negative day is still valid", "-5d", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSinceDuration(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

type metricsMock struct {
	calcFn func(since time.Time) (*observability.Metrics, error)
}

func (m *metricsMock) Calculate(since time.Time) (*observability.Metrics, error) {
	return m.calcFn(since)
}

func TestMetricsCmd_NilCalculator(t *testing.T) {
	orig := MetricsCalc
	defer func() { MetricsCalc = orig }()
	MetricsCalc = nil

	err := metricsCmd.RunE(metricsCmd, []string{})
	if err == nil {
		t.Fatal("expected error when MetricsCalc is nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMetricsCmd_InvalidSinceFormat(t *testing.T) {
	orig := MetricsCalc
	origSince := metricsSince
	defer func() {
		MetricsCalc = orig
		metricsSince = origSince
	}()

	MetricsCalc = &metricsMock{
		calcFn: func(since time.Time) (*observability.Metrics, error) {
			return &observability.Metrics{}, nil
		},
	}

	metricsSince = "abc"
	err := metricsCmd.RunE(metricsCmd, []string{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unsupported duration format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMetricsCmd_Success(t *testing.T) {
	orig := MetricsCalc
	origSince := metricsSince
	origJSON := metricsJSON
	defer func() {
		MetricsCalc = orig
		metricsSince = origSince
		metricsJSON = origJSON
	}()
	metricsSince = "7d"
	metricsJSON = false

	var gotSince time.Time
	MetricsCalc = &metricsMock{
		calcFn: func(since time.Time) (*observability.Metrics, error) {
			gotSince = since
			return &observability.Metrics{
				EventCount:      12,
				ChatTurns:       8,
				Sessions:        2,
				AvgTurnMS:       420,
				MaxTurnMS:       900,
				TurnsByProvider: map[string]int{"openrouter": 8},
			}, nil
		},
	}

	err := metricsCmd.RunE(metricsCmd, []string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSince := time.Now().UTC().AddDate(0, 0, -7)
	if diff := gotSince.Sub(wantSince); diff < -time.Minute || diff > time.Minute {
		t.Errorf("since = %v, want roughly %v", gotSince, wantSince)
	}
}

func TestMetricsCmd_JSONFormat(t *testing.T) {
	orig := MetricsCalc
	origJSON := metricsJSON
	defer func() {
		MetricsCalc = orig
		metricsJSON = origJSON
	}()
	metricsJSON = true

	MetricsCalc = &metricsMock{
		calcFn: func(since time.Time) (*observability.Metrics, error) {
			return &observability.Metrics{ChatTurns: 3}, nil
		},
	}

	err := metricsCmd.RunE(metricsCmd, []string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMetricsCmd_CalculateError(t *testing.T) {
	orig := MetricsCalc
	defer func() { MetricsCalc = orig }()

	MetricsCalc = &metricsMock{
		calcFn: func(since time.Time) (*observability.Metrics, error) {
			return nil, fmt.Errorf("event log unreadable")
		},
	}

	err := metricsCmd.RunE(metricsCmd, []string{})
	if err == nil {
		t.Fatal("expected error from Calculate")
	}
	if !strings.Contains(err.Error(), "calculating metrics") {
		t.Errorf("unexpected error: %v", err)
	}
}
