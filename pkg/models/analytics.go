package models

// MetricCategory groups performance metrics by compliance concern.
type MetricCategory string

const (
	CategorySystemPerformance MetricCategory = "system_performance"
	CategoryUserExperience    MetricCategory = "user_experience"
	CategoryComplianceMetrics MetricCategory = "compliance_metrics"
	CategoryRiskMetrics       MetricCategory = "risk_metrics"
	CategoryDataQuality       MetricCategory = "data_quality"
	CategoryHumanOversight    MetricCategory = "human_oversight"
)

// MetricCategories lists every category in reporting order.
var MetricCategories = []MetricCategory{
	CategorySystemPerformance,
	CategoryUserExperience,
	CategoryComplianceMetrics,
	CategoryRiskMetrics,
	CategoryDataQuality,
	CategoryHumanOversight,
}

// PerformanceMetric is one named performance reading.
type PerformanceMetric struct {
	ID        string         `json:"id"`
	Category  MetricCategory `json:"category"`
	Name      string         `json:"name"`
	Value     float64        `json:"value"`
	Unit      string         `json:"unit"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
}

// RecordID implements store.Record.
func (m PerformanceMetric) RecordID() string { return m.ID }

// MetricStatistics are descriptive statistics over a set of readings.
type MetricStatistics struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
}

// TrendDirection classifies the slope of a metric over time.
type TrendDirection string

const (
	TrendIncreasing       TrendDirection = "increasing"
	TrendDecreasing       TrendDirection = "decreasing"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// TrendAnalysis is a least-squares trend fit over one metric's readings.
type TrendAnalysis struct {
	MetricName       string         `json:"metric_name"`
	TrendDirection   TrendDirection `json:"trend_direction"`
	TrendStrength    float64        `json:"trend_strength"`
	ChangePercentage float64        `json:"change_percentage"`
	Significance     string         `json:"significance"`
}

// AnalyticsReport is a periodic performance analysis.
type AnalyticsReport struct {
	ID              string                      `json:"id"`
	ReportType      string                      `json:"report_type"`
	PeriodStart     string                      `json:"period_start"`
	PeriodEnd       string                      `json:"period_end"`
	MetricsSummary  map[string]MetricStatistics `json:"metrics_summary"`
	Trends          map[string]TrendAnalysis    `json:"trends"`
	Insights        []string                    `json:"insights"`
	Recommendations []string                    `json:"recommendations"`
	GeneratedAt     string                      `json:"generated_at"`
}

// RecordID implements store.Record.
func (r AnalyticsReport) RecordID() string { return r.ID }

// CategoryKPI is the dashboard view of one metric category.
type CategoryKPI struct {
	CurrentValue float64        `json:"current_value"`
	Trend        TrendDirection `json:"trend"`
	Count        int            `json:"count"`
}
