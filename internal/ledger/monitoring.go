package ledger

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/one-front/airesume/internal/store"
	"github.com/one-front/airesume/pkg/models"
)

// metricThreshold pairs the warning and critical cut lines for one metric.
type metricThreshold struct {
	warning  float64
	critical float64
}

// defaultThresholds are applied when a metric is recorded. Direction
// depends on the metric; see models.MetricType.HigherIsWorse.
var defaultThresholds = map[models.MetricType]metricThreshold{
	models.MetricRiskLevel:         {warning: 0.7, critical: 0.9},
	models.MetricDataQuality:       {warning: 0.8, critical: 0.6},
	models.MetricHumanOversight:    {warning: 0.1, critical: 0.05},
	models.MetricSystemPerformance: {warning: 0.9, critical: 0.95},
	models.MetricComplianceScore:   {warning: 0.8, critical: 0.7},
	models.MetricUserInteraction:   {warning: 100, critical: 50},
}

// AlertFunc receives every newly created alert.
type AlertFunc func(models.ComplianceAlert)

// ComplianceMonitor records metric readings, raises threshold alerts and
// produces periodic compliance reports.
type ComplianceMonitor interface {
	RecordMetric(metricType models.MetricType, value float64, metadata map[string]any) (string, error)
	CreateAlert(level models.AlertLevel, metricType models.MetricType, title, description string, threshold, current float64) (string, error)
	AcknowledgeAlert(alertID, assignedTo string) error
	ResolveAlert(alertID, notes string) error
	ActiveAlerts() []models.ComplianceAlert
	AlertsByLevel(level models.AlertLevel) []models.ComplianceAlert
	MetricsSummary(window time.Duration) map[string]models.MetricStats
	GenerateReport(periodDays int) (models.ComplianceReport, error)
	Report(reportID string) (models.ComplianceReport, bool)
	DashboardData() map[string]any
	OnAlert(fn AlertFunc)
	Run(ctx context.Context, interval time.Duration, collect func(ComplianceMonitor))

	Load() error
	Save() error
}

type monitoringDoc struct {
	Alerts      store.Collection[models.ComplianceAlert]  `json:"alerts"`
	Metrics     store.Collection[models.ComplianceMetric] `json:"metrics"`
	Reports     store.Collection[models.ComplianceReport] `json:"reports"`
	LastUpdated string                                    `json:"last_updated"`
}

type fileComplianceMonitor struct {
	path string
	doc  monitoringDoc
	now  func() string

	mu        sync.Mutex
	callbacks []AlertFunc
	running   bool
}

// NewComplianceMonitor returns a monitor persisting to
// data/compliance_monitoring.json under basePath.
func NewComplianceMonitor(basePath string) ComplianceMonitor {
	return &fileComplianceMonitor{
		path: filepath.Join(basePath, "data", "compliance_monitoring.json"),
		now:  timestamp,
	}
}

func (m *fileComplianceMonitor) Load() error {
	if err := store.Load(m.path, &m.doc); err != nil {
		return fmt.Errorf("loading monitoring data: %w", err)
	}
	return nil
}

func (m *fileComplianceMonitor) Save() error {
	m.doc.LastUpdated = m.now()
	if err := store.Save(m.path, &m.doc); err != nil {
		return fmt.Errorf("saving monitoring data: %w", err)
	}
	return nil
}

func (m *fileComplianceMonitor) OnAlert(fn AlertFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

func (m *fileComplianceMonitor) RecordMetric(metricType models.MetricType, value float64, metadata map[string]any) (string, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	th, ok := defaultThresholds[metricType]
	if !ok {
		th = metricThreshold{warning: 0.8, critical: 0.6}
	}

	metric := models.ComplianceMetric{
		ID:                uuid.NewString(),
		MetricType:        metricType,
		Timestamp:         m.now(),
		Value:             value,
		ThresholdWarning:  th.warning,
		ThresholdCritical: th.critical,
		Metadata:          metadata,
	}
	m.doc.Metrics.Append(metric)
	if err := m.Save(); err != nil {
		return metric.ID, err
	}

	if err := m.checkThresholds(metric); err != nil {
		return metric.ID, err
	}
	return metric.ID, nil
}

func (m *fileComplianceMonitor) checkThresholds(metric models.ComplianceMetric) error {
	var level models.AlertLevel
	var threshold float64
	var breached bool

	if metric.MetricType.HigherIsWorse() {
		switch {
		case metric.Value >= metric.ThresholdCritical:
			level, threshold, breached = models.AlertCritical, metric.ThresholdCritical, true
		case metric.Value >= metric.ThresholdWarning:
			level, threshold, breached = models.AlertWarning, metric.ThresholdWarning, true
		}
	} else {
		switch {
		case metric.Value <= metric.ThresholdCritical:
			level, threshold, breached = models.AlertCritical, metric.ThresholdCritical, true
		case metric.Value <= metric.ThresholdWarning:
			level, threshold, breached = models.AlertWarning, metric.ThresholdWarning, true
		}
	}
	if !breached {
		return nil
	}

	direction := "falls below"
	if metric.MetricType.HigherIsWorse() {
		direction = "exceeds"
	}
	_, err := m.CreateAlert(level, metric.MetricType,
		metricTitle(metric.MetricType)+" Threshold Exceeded",
		fmt.Sprintf("Current value %.2f %s threshold of %.2f", metric.Value, direction, threshold),
		threshold, metric.Value)
	return err
}

// metricTitle renders a metric type as a display heading, for example
// "risk_level" becomes "Risk Level".
func metricTitle(metricType models.MetricType) string {
	words := strings.Split(string(metricType), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func (m *fileComplianceMonitor) CreateAlert(level models.AlertLevel, metricType models.MetricType, title, description string, threshold, current float64) (string, error) {
	alert := models.ComplianceAlert{
		ID:             uuid.NewString(),
		Timestamp:      m.now(),
		Level:          level,
		MetricType:     metricType,
		Title:          title,
		Description:    description,
		ThresholdValue: threshold,
		CurrentValue:   current,
		Status:         models.AlertActive,
	}
	m.doc.Alerts.Append(alert)
	err := m.Save()

	m.mu.Lock()
	callbacks := make([]AlertFunc, len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()
	for _, fn := range callbacks {
		fn(alert)
	}

	return alert.ID, err
}

func (m *fileComplianceMonitor) AcknowledgeAlert(alertID, assignedTo string) error {
	alert, ok := m.doc.Alerts.Get(alertID)
	if !ok {
		return fmt.Errorf("acknowledging alert: %q not found", alertID)
	}
	if alert.Status != models.AlertActive {
		return fmt.Errorf("acknowledging alert %s: status is %q, want %q", alertID, alert.Status, models.AlertActive)
	}
	m.doc.Alerts.Update(alertID, func(a *models.ComplianceAlert) {
		a.Status = models.AlertAcknowledged
		a.AssignedTo = assignedTo
	})
	return m.Save()
}

func (m *fileComplianceMonitor) ResolveAlert(alertID, notes string) error {
	alert, ok := m.doc.Alerts.Get(alertID)
	if !ok {
		return fmt.Errorf("resolving alert: %q not found", alertID)
	}
	if alert.Status == models.AlertResolved {
		return fmt.Errorf("resolving alert %s: already resolved", alertID)
	}
	m.doc.Alerts.Update(alertID, func(a *models.ComplianceAlert) {
		a.Status = models.AlertResolved
		a.ResolutionNotes = notes
		a.ResolvedAt = m.now()
	})
	return m.Save()
}

func (m *fileComplianceMonitor) ActiveAlerts() []models.ComplianceAlert {
	return m.doc.Alerts.Find(func(a models.ComplianceAlert) bool {
		return a.Status == models.AlertActive
	})
}

func (m *fileComplianceMonitor) AlertsByLevel(level models.AlertLevel) []models.ComplianceAlert {
	return m.doc.Alerts.Find(func(a models.ComplianceAlert) bool {
		return a.Level == level
	})
}

func (m *fileComplianceMonitor) MetricsSummary(window time.Duration) map[string]models.MetricStats {
	cutoff := time.Now().Add(-window).Format(timestampLayout)

	byType := map[string][]float64{}
	for _, metric := range m.doc.Metrics.Items() {
		if metric.Timestamp >= cutoff {
			byType[string(metric.MetricType)] = append(byType[string(metric.MetricType)], metric.Value)
		}
	}

	summary := make(map[string]models.MetricStats, len(byType))
	for metricType, values := range byType {
		stats := models.MetricStats{
			Count:  len(values),
			Min:    values[0],
			Max:    values[0],
			Latest: values[len(values)-1],
		}
		var sum float64
		for _, v := range values {
			sum += v
			if v < stats.Min {
				stats.Min = v
			}
			if v > stats.Max {
				stats.Max = v
			}
		}
		stats.Average = sum / float64(len(values))
		summary[metricType] = stats
	}
	return summary
}

func (m *fileComplianceMonitor) GenerateReport(periodDays int) (models.ComplianceReport, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -periodDays)
	startStr := start.Format(timestampLayout)
	endStr := end.Format(timestampLayout)

	periodMetrics := m.doc.Metrics.Find(func(metric models.ComplianceMetric) bool {
		return metric.Timestamp >= startStr && metric.Timestamp <= endStr
	})
	periodAlerts := m.doc.Alerts.Find(func(a models.ComplianceAlert) bool {
		return a.Timestamp >= startStr && a.Timestamp <= endStr
	})

	score := complianceScore(periodMetrics, periodAlerts)

	status := "non_compliant"
	if score >= 0.8 {
		status = "compliant"
	}

	report := models.ComplianceReport{
		ID:               uuid.NewString(),
		ReportDate:       endStr,
		PeriodStart:      startStr,
		PeriodEnd:        endStr,
		OverallScore:     score,
		MetricsSummary:   m.MetricsSummary(time.Duration(periodDays) * 24 * time.Hour),
		AlertsSummary:    alertsSummary(periodAlerts),
		Recommendations:  recommendations(periodMetrics, periodAlerts),
		ComplianceStatus: status,
	}
	m.doc.Reports.Append(report)
	return report, m.Save()
}

func (m *fileComplianceMonitor) Report(reportID string) (models.ComplianceReport, bool) {
	return m.doc.Reports.Get(reportID)
}

// complianceScore averages oriented metric readings and subtracts
// penalties for still-active alerts, clamped to [0, 1].
func complianceScore(metrics []models.ComplianceMetric, alerts []models.ComplianceAlert) float64 {
	if len(metrics) == 0 {
		return 0
	}

	var sum float64
	for _, metric := range metrics {
		if metric.MetricType.HigherIsWorse() {
			score := 1 - metric.Value
			if score < 0 {
				score = 0
			}
			sum += score
		} else {
			sum += metric.Value
		}
	}
	score := sum / float64(len(metrics))

	for _, a := range alerts {
		if a.Status != models.AlertActive {
			continue
		}
		switch a.Level {
		case models.AlertCritical:
			score -= 0.1
		case models.AlertError:
			score -= 0.05
		case models.AlertWarning:
			score -= 0.02
		}
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func alertsSummary(alerts []models.ComplianceAlert) models.AlertsSummary {
	summary := models.AlertsSummary{
		TotalAlerts:   len(alerts),
		AlertsByLevel: map[string]int{},
		AlertsByType:  map[string]int{},
	}
	for _, a := range alerts {
		switch a.Status {
		case models.AlertActive:
			summary.ActiveAlerts++
		case models.AlertResolved:
			summary.ResolvedAlerts++
		}
		summary.AlertsByLevel[string(a.Level)]++
		summary.AlertsByType[string(a.MetricType)]++
	}
	return summary
}

func recommendations(metrics []models.ComplianceMetric, alerts []models.ComplianceAlert) []string {
	var recs []string

	highRisk := false
	lowQuality := false
	for _, metric := range metrics {
		if metric.MetricType == models.MetricRiskLevel && metric.Value > 0.7 {
			highRisk = true
		}
		if metric.MetricType == models.MetricDataQuality && metric.Value < 0.8 {
			lowQuality = true
		}
	}
	if highRisk {
		recs = append(recs, "Review and update risk mitigation strategies for high-risk areas")
	}
	if lowQuality {
		recs = append(recs, "Improve data quality procedures and validation processes")
	}

	var active, critical int
	for _, a := range alerts {
		if a.Status != models.AlertActive {
			continue
		}
		active++
		if a.Level == models.AlertCritical {
			critical++
		}
	}
	if active > 5 {
		recs = append(recs, "Address high number of active alerts to improve compliance status")
	}
	if critical > 0 {
		recs = append(recs, "Immediately address critical alerts to prevent compliance violations")
	}

	if len(recs) == 0 {
		recs = append(recs, "Continue current compliance practices and monitoring")
	}
	return recs
}

func (m *fileComplianceMonitor) DashboardData() map[string]any {
	m.mu.Lock()
	running := m.running
	m.mu.Unlock()

	status := "inactive"
	if running {
		status = "active"
	}

	var latest any
	reports := m.doc.Reports.Items()
	if len(reports) > 0 {
		latest = reports[len(reports)-1]
	}

	return map[string]any{
		"active_alerts":     len(m.ActiveAlerts()),
		"critical_alerts":   len(m.AlertsByLevel(models.AlertCritical)),
		"metrics_summary":   m.MetricsSummary(24 * time.Hour),
		"latest_report":     latest,
		"monitoring_status": status,
	}
}

// Run invokes collect on the given interval until ctx is cancelled. The
// collector typically samples the other ledgers and records metrics.
func (m *fileComplianceMonitor) Run(ctx context.Context, interval time.Duration, collect func(ComplianceMonitor)) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	collect(m)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			collect(m)
		}
	}
}
