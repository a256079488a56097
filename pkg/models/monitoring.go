package models

// AlertLevel is the severity of a compliance alert.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "info"
	AlertWarning  AlertLevel = "warning"
	AlertError    AlertLevel = "error"
	AlertCritical AlertLevel = "critical"
)

// MetricType names a monitored compliance signal.
type MetricType string

const (
	MetricRiskLevel         MetricType = "risk_level"
	MetricDataQuality       MetricType = "data_quality"
	MetricHumanOversight    MetricType = "human_oversight"
	MetricSystemPerformance MetricType = "system_performance"
	MetricComplianceScore   MetricType = "compliance_score"
	MetricUserInteraction   MetricType = "user_interaction"
)

// HigherIsWorse reports whether larger readings of the metric indicate
// degraded compliance. Risk and load metrics alarm on high values, the
// rest alarm on low values.
func (m MetricType) HigherIsWorse() bool {
	return m == MetricRiskLevel || m == MetricSystemPerformance
}

// AlertStatus is the lifecycle state of an alert.
type AlertStatus string

const (
	AlertActive       AlertStatus = "active"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertResolved     AlertStatus = "resolved"
)

// ComplianceAlert records a threshold breach and its handling.
type ComplianceAlert struct {
	ID              string      `json:"id"`
	Timestamp       string      `json:"timestamp"`
	Level           AlertLevel  `json:"level"`
	MetricType      MetricType  `json:"metric_type"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	ThresholdValue  float64     `json:"threshold_value"`
	CurrentValue    float64     `json:"current_value"`
	Status          AlertStatus `json:"status"`
	AssignedTo      string      `json:"assigned_to,omitempty"`
	ResolutionNotes string      `json:"resolution_notes,omitempty"`
	ResolvedAt      string      `json:"resolved_at,omitempty"`
}

// RecordID implements store.Record.
func (a ComplianceAlert) RecordID() string { return a.ID }

// ComplianceMetric is one recorded reading of a monitored signal.
type ComplianceMetric struct {
	ID                string         `json:"id"`
	MetricType        MetricType     `json:"metric_type"`
	Timestamp         string         `json:"timestamp"`
	Value             float64        `json:"value"`
	ThresholdWarning  float64        `json:"threshold_warning"`
	ThresholdCritical float64        `json:"threshold_critical"`
	Metadata          map[string]any `json:"metadata"`
}

// RecordID implements store.Record.
func (m ComplianceMetric) RecordID() string { return m.ID }

// MetricStats summarises readings of one metric over a window.
type MetricStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Latest  float64 `json:"latest"`
}

// AlertsSummary aggregates alerts over a reporting period.
type AlertsSummary struct {
	TotalAlerts    int            `json:"total_alerts"`
	ActiveAlerts   int            `json:"active_alerts"`
	ResolvedAlerts int            `json:"resolved_alerts"`
	AlertsByLevel  map[string]int `json:"alerts_by_level"`
	AlertsByType   map[string]int `json:"alerts_by_type"`
}

// ComplianceReport is a periodic compliance scorecard.
type ComplianceReport struct {
	ID               string                 `json:"id"`
	ReportDate       string                 `json:"report_date"`
	PeriodStart      string                 `json:"period_start"`
	PeriodEnd        string                 `json:"period_end"`
	OverallScore     float64                `json:"overall_score"`
	MetricsSummary   map[string]MetricStats `json:"metrics_summary"`
	AlertsSummary    AlertsSummary          `json:"alerts_summary"`
	Recommendations  []string               `json:"recommendations"`
	ComplianceStatus string                 `json:"compliance_status"`
}

// RecordID implements store.Record.
func (r ComplianceReport) RecordID() string { return r.ID }
