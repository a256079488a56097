package ledger

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/one-front/airesume/internal/store"
	"github.com/one-front/airesume/pkg/models"
)

// TimeRange selects the lookback window for analytics queries.
type TimeRange string

const (
	RangeHour    TimeRange = "hour"
	RangeDay     TimeRange = "day"
	RangeWeek    TimeRange = "week"
	RangeMonth   TimeRange = "month"
	RangeQuarter TimeRange = "quarter"
	RangeYear    TimeRange = "year"
)

// Duration returns the window length. Unknown ranges fall back to a day.
func (r TimeRange) Duration() time.Duration {
	switch r {
	case RangeHour:
		return time.Hour
	case RangeWeek:
		return 7 * 24 * time.Hour
	case RangeMonth:
		return 30 * 24 * time.Hour
	case RangeQuarter:
		return 90 * 24 * time.Hour
	case RangeYear:
		return 365 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// PerformanceAnalytics records named performance readings and derives
// statistics, trends and periodic reports from them.
type PerformanceAnalytics interface {
	RecordMetric(category models.MetricCategory, name string, value float64, unit string, metadata map[string]any) (string, error)
	MetricsByCategory(category models.MetricCategory, timeRange TimeRange) []models.PerformanceMetric
	MetricsByName(name string, timeRange TimeRange) []models.PerformanceMetric
	AnalyzeTrend(name string, timeRange TimeRange) models.TrendAnalysis
	GenerateReport(timeRange TimeRange) (models.AnalyticsReport, error)
	Report(reportID string) (models.AnalyticsReport, bool)
	LatestReport() (models.AnalyticsReport, bool)
	DashboardMetrics() map[string]any

	Load() error
	Save() error
}

type analyticsDoc struct {
	Metrics     store.Collection[models.PerformanceMetric] `json:"metrics"`
	Reports     store.Collection[models.AnalyticsReport]   `json:"reports"`
	LastUpdated string                                     `json:"last_updated"`
}

type filePerformanceAnalytics struct {
	path string
	doc  analyticsDoc
	now  func() string
}

// NewPerformanceAnalytics returns an analytics store persisting to
// data/performance_analytics.json under basePath.
func NewPerformanceAnalytics(basePath string) PerformanceAnalytics {
	return &filePerformanceAnalytics{
		path: filepath.Join(basePath, "data", "performance_analytics.json"),
		now:  timestamp,
	}
}

func (p *filePerformanceAnalytics) Load() error {
	if err := store.Load(p.path, &p.doc); err != nil {
		return fmt.Errorf("loading analytics data: %w", err)
	}
	return nil
}

func (p *filePerformanceAnalytics) Save() error {
	p.doc.LastUpdated = p.now()
	if err := store.Save(p.path, &p.doc); err != nil {
		return fmt.Errorf("saving analytics data: %w", err)
	}
	return nil
}

func (p *filePerformanceAnalytics) RecordMetric(category models.MetricCategory, name string, value float64, unit string, metadata map[string]any) (string, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	metric := models.PerformanceMetric{
		ID:        uuid.NewString(),
		Category:  category,
		Name:      name,
		Value:     value,
		Unit:      unit,
		Timestamp: p.now(),
		Metadata:  metadata,
	}
	p.doc.Metrics.Append(metric)
	return metric.ID, p.Save()
}

func (p *filePerformanceAnalytics) cutoff(timeRange TimeRange) string {
	return time.Now().Add(-timeRange.Duration()).Format(timestampLayout)
}

func (p *filePerformanceAnalytics) MetricsByCategory(category models.MetricCategory, timeRange TimeRange) []models.PerformanceMetric {
	cutoff := p.cutoff(timeRange)
	return p.doc.Metrics.Find(func(m models.PerformanceMetric) bool {
		return m.Category == category && m.Timestamp >= cutoff
	})
}

func (p *filePerformanceAnalytics) MetricsByName(name string, timeRange TimeRange) []models.PerformanceMetric {
	cutoff := p.cutoff(timeRange)
	return p.doc.Metrics.Find(func(m models.PerformanceMetric) bool {
		return m.Name == name && m.Timestamp >= cutoff
	})
}

// MetricStatistics computes descriptive statistics for a batch of
// readings. Standard deviation uses the sample form.
func MetricStatistics(metrics []models.PerformanceMetric) (models.MetricStatistics, bool) {
	if len(metrics) == 0 {
		return models.MetricStatistics{}, false
	}

	values := make([]float64, len(metrics))
	for i, m := range metrics {
		values[i] = m.Value
	}
	sort.Float64s(values)

	n := len(values)
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	median := values[n/2]
	if n%2 == 0 {
		median = (values[n/2-1] + values[n/2]) / 2
	}

	var variance float64
	if n > 1 {
		var ss float64
		for _, v := range values {
			d := v - mean
			ss += d * d
		}
		variance = ss / float64(n-1)
	}

	return models.MetricStatistics{
		Count:    n,
		Mean:     mean,
		Median:   median,
		Min:      values[0],
		Max:      values[n-1],
		Range:    values[n-1] - values[0],
		StdDev:   math.Sqrt(variance),
		Variance: variance,
	}, true
}

func (p *filePerformanceAnalytics) AnalyzeTrend(name string, timeRange TimeRange) models.TrendAnalysis {
	metrics := p.MetricsByName(name, timeRange)
	if len(metrics) < 2 {
		return models.TrendAnalysis{
			MetricName:     name,
			TrendDirection: models.TrendInsufficientData,
			Significance:   "low",
		}
	}

	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Timestamp < metrics[j].Timestamp
	})

	// Least-squares fit over reading index.
	n := float64(len(metrics))
	var sumX, sumY, sumXY, sumX2 float64
	for i, m := range metrics {
		x := float64(i)
		sumX += x
		sumY += m.Value
		sumXY += x * m.Value
		sumX2 += x * x
	}
	slope := (n*sumXY - sumX*sumY) / (n*sumX2 - sumX*sumX)
	intercept := (sumY - slope*sumX) / n

	direction := models.TrendStable
	if slope > 0.01 {
		direction = models.TrendIncreasing
	} else if slope < -0.01 {
		direction = models.TrendDecreasing
	}

	yMean := sumY / n
	var ssTot, ssRes float64
	for i, m := range metrics {
		ssTot += (m.Value - yMean) * (m.Value - yMean)
		fit := slope*float64(i) + intercept
		ssRes += (m.Value - fit) * (m.Value - fit)
	}
	var rSquared float64
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}
	strength := math.Abs(rSquared)

	first := metrics[0].Value
	last := metrics[len(metrics)-1].Value
	var change float64
	if first != 0 {
		change = (last - first) / first * 100
	}

	significance := "low"
	if strength > 0.7 {
		significance = "high"
	} else if strength > 0.4 {
		significance = "medium"
	}

	return models.TrendAnalysis{
		MetricName:       name,
		TrendDirection:   direction,
		TrendStrength:    strength,
		ChangePercentage: change,
		Significance:     significance,
	}
}

func (p *filePerformanceAnalytics) GenerateReport(timeRange TimeRange) (models.AnalyticsReport, error) {
	end := time.Now()
	start := end.Add(-timeRange.Duration())
	startStr := start.Format(timestampLayout)
	endStr := end.Format(timestampLayout)

	period := p.doc.Metrics.Find(func(m models.PerformanceMetric) bool {
		return m.Timestamp >= startStr && m.Timestamp <= endStr
	})

	summary := map[string]models.MetricStatistics{}
	for _, category := range models.MetricCategories {
		var batch []models.PerformanceMetric
		for _, m := range period {
			if m.Category == category {
				batch = append(batch, m)
			}
		}
		if stats, ok := MetricStatistics(batch); ok {
			summary[string(category)] = stats
		}
	}

	trends := map[string]models.TrendAnalysis{}
	for _, m := range period {
		if _, done := trends[m.Name]; !done {
			trends[m.Name] = p.AnalyzeTrend(m.Name, timeRange)
		}
	}

	report := models.AnalyticsReport{
		ID:              uuid.NewString(),
		ReportType:      "performance_report_" + string(timeRange),
		PeriodStart:     startStr,
		PeriodEnd:       endStr,
		MetricsSummary:  summary,
		Trends:          trends,
		Insights:        analyticsInsights(summary, trends),
		Recommendations: analyticsRecommendations(summary, trends),
		GeneratedAt:     endStr,
	}
	p.doc.Reports.Append(report)
	return report, p.Save()
}

func analyticsInsights(summary map[string]models.MetricStatistics, trends map[string]models.TrendAnalysis) []string {
	var insights []string

	if stats, ok := summary[string(models.CategorySystemPerformance)]; ok {
		switch {
		case stats.Mean > 0.9:
			insights = append(insights, "System performance is excellent with high reliability")
		case stats.Mean > 0.8:
			insights = append(insights, "System performance is good with room for optimization")
		default:
			insights = append(insights, "System performance needs attention and improvement")
		}
	}

	if stats, ok := summary[string(models.CategoryComplianceMetrics)]; ok {
		switch {
		case stats.Mean > 0.9:
			insights = append(insights, "Compliance metrics show excellent adherence to AI Act requirements")
		case stats.Mean > 0.8:
			insights = append(insights, "Compliance metrics show good adherence with minor improvements needed")
		default:
			insights = append(insights, "Compliance metrics indicate areas requiring immediate attention")
		}
	}

	for name, trend := range trends {
		if trend.Significance != "high" {
			continue
		}
		lower := strings.ToLower(name)
		switch {
		case trend.TrendDirection == models.TrendIncreasing && strings.Contains(lower, "performance"):
			insights = append(insights, fmt.Sprintf("Strong positive trend in %s indicates system improvement", name))
		case trend.TrendDirection == models.TrendDecreasing && strings.Contains(lower, "risk"):
			insights = append(insights, fmt.Sprintf("Strong decreasing trend in %s shows effective risk mitigation", name))
		case trend.TrendDirection == models.TrendDecreasing && strings.Contains(lower, "performance"):
			insights = append(insights, fmt.Sprintf("Concerning decreasing trend in %s requires investigation", name))
		}
	}

	if len(insights) == 0 {
		insights = append(insights, "System performance is stable with no significant trends detected")
	}
	return insights
}

func analyticsRecommendations(summary map[string]models.MetricStatistics, trends map[string]models.TrendAnalysis) []string {
	var recs []string

	if stats, ok := summary[string(models.CategorySystemPerformance)]; ok && stats.Mean < 0.8 {
		recs = append(recs, "Implement system performance optimization measures")
	}
	if stats, ok := summary[string(models.CategoryComplianceMetrics)]; ok && stats.Mean < 0.8 {
		recs = append(recs, "Review and strengthen compliance procedures")
	}
	if stats, ok := summary[string(models.CategoryRiskMetrics)]; ok && stats.Mean > 0.7 {
		recs = append(recs, "Enhance risk mitigation strategies")
	}
	if stats, ok := summary[string(models.CategoryDataQuality)]; ok && stats.Mean < 0.8 {
		recs = append(recs, "Improve data quality validation processes")
	}

	for name, trend := range trends {
		if trend.Significance != "high" || trend.TrendDirection != models.TrendDecreasing {
			continue
		}
		lower := strings.ToLower(name)
		if strings.Contains(lower, "performance") {
			recs = append(recs, fmt.Sprintf("Investigate and address declining %s", name))
		} else if strings.Contains(lower, "compliance") {
			recs = append(recs, fmt.Sprintf("Take corrective action for declining %s", name))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "Continue current performance monitoring and optimization efforts")
	}
	return recs
}

func (p *filePerformanceAnalytics) Report(reportID string) (models.AnalyticsReport, bool) {
	return p.doc.Reports.Get(reportID)
}

func (p *filePerformanceAnalytics) LatestReport() (models.AnalyticsReport, bool) {
	reports := p.doc.Reports.Items()
	if len(reports) == 0 {
		return models.AnalyticsReport{}, false
	}
	latest := reports[0]
	for _, r := range reports[1:] {
		if r.GeneratedAt > latest.GeneratedAt {
			latest = r
		}
	}
	return latest, true
}

func (p *filePerformanceAnalytics) DashboardMetrics() map[string]any {
	cutoff := p.cutoff(RangeDay)
	recent := p.doc.Metrics.Find(func(m models.PerformanceMetric) bool {
		return m.Timestamp >= cutoff
	})
	if len(recent) == 0 {
		return map[string]any{"message": "No recent metrics available"}
	}

	kpis := map[string]models.CategoryKPI{}
	var lastUpdated string
	for _, category := range models.MetricCategories {
		var batch []models.PerformanceMetric
		for _, m := range recent {
			if m.Category == category {
				batch = append(batch, m)
			}
		}
		stats, ok := MetricStatistics(batch)
		if !ok {
			continue
		}
		kpis[string(category)] = models.CategoryKPI{
			CurrentValue: stats.Mean,
			Trend:        p.AnalyzeTrend(batch[0].Name, RangeDay).TrendDirection,
			Count:        stats.Count,
		}
	}
	for _, m := range recent {
		if m.Timestamp > lastUpdated {
			lastUpdated = m.Timestamp
		}
	}

	return map[string]any{
		"kpis":          kpis,
		"total_metrics": len(recent),
		"last_updated":  lastUpdated,
	}
}
