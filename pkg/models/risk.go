package models

// RiskLevel is the severity assigned to an identified risk.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// Rank orders risk levels from low (1) to critical (4). Unknown levels
// rank below low.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLevelLow:
		return 1
	case RiskLevelMedium:
		return 2
	case RiskLevelHigh:
		return 3
	case RiskLevelCritical:
		return 4
	default:
		return 0
	}
}

// RiskCategory classifies the concern a risk belongs to.
type RiskCategory string

const (
	RiskCategoryAccuracy          RiskCategory = "accuracy"
	RiskCategoryBias              RiskCategory = "bias"
	RiskCategoryPrivacy           RiskCategory = "privacy"
	RiskCategorySecurity          RiskCategory = "security"
	RiskCategoryTransparency      RiskCategory = "transparency"
	RiskCategoryHumanOversight    RiskCategory = "human_oversight"
	RiskCategoryDataQuality       RiskCategory = "data_quality"
	RiskCategorySystemReliability RiskCategory = "system_reliability"
)

// RiskStatus is the handling state of a risk.
type RiskStatus string

const (
	RiskStatusIdentified RiskStatus = "identified"
	RiskStatusAssessed   RiskStatus = "assessed"
	RiskStatusMitigated  RiskStatus = "mitigated"
	RiskStatusMonitored  RiskStatus = "monitored"
)

// Risk is a single register entry describing an identified risk and its
// mitigation plan.
type Risk struct {
	ID                 string       `json:"id"`
	Category           RiskCategory `json:"category"`
	Level              RiskLevel    `json:"level"`
	Description        string       `json:"description"`
	Impact             string       `json:"impact"`
	Likelihood         string       `json:"likelihood"`
	MitigationMeasures []string     `json:"mitigation_measures"`
	Status             RiskStatus   `json:"status"`
	CreatedDate        string       `json:"created_date"`
	LastUpdated        string       `json:"last_updated"`
	Owner              string       `json:"owner"`
}

// RecordID implements store.Record.
func (r Risk) RecordID() string { return r.ID }

// RiskAssessment records one review of an existing risk.
type RiskAssessment struct {
	RiskID                  string    `json:"risk_id"`
	AssessmentDate          string    `json:"assessment_date"`
	Assessor                string    `json:"assessor"`
	CurrentLevel            RiskLevel `json:"current_level"`
	PreviousLevel           RiskLevel `json:"previous_level,omitempty"`
	MitigationEffectiveness string    `json:"mitigation_effectiveness"`
	Notes                   string    `json:"notes"`
}

// RecordID implements store.Record. Assessments are keyed by the risk they
// review plus their date; the pair is unique in practice.
func (a RiskAssessment) RecordID() string { return a.RiskID + "@" + a.AssessmentDate }

// RiskSummary aggregates the register for compliance reporting.
type RiskSummary struct {
	TotalRisks       int            `json:"total_risks"`
	RisksByLevel     map[string]int `json:"risks_by_level"`
	RisksByCategory  map[string]int `json:"risks_by_category"`
	RisksByStatus    map[string]int `json:"risks_by_status"`
	LastAssessment   string         `json:"last_assessment,omitempty"`
	TotalAssessments int            `json:"total_assessments"`
}
