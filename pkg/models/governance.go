package models

// DataQualityLevel bands an overall quality score.
type DataQualityLevel string

const (
	DataQualityExcellent DataQualityLevel = "excellent"
	DataQualityGood      DataQualityLevel = "good"
	DataQualityFair      DataQualityLevel = "fair"
	DataQualityPoor      DataQualityLevel = "poor"
	DataQualityCritical  DataQualityLevel = "critical"
)

// DataCategory names a governed class of data.
type DataCategory string

const (
	DataCategoryPersonalInfo   DataCategory = "personal_info"
	DataCategoryWorkExperience DataCategory = "work_experience"
	DataCategorySkills         DataCategory = "skills"
	DataCategoryEducation      DataCategory = "education"
	DataCategoryReferences     DataCategory = "references"
	DataCategoryUserQueries    DataCategory = "user_queries"
	DataCategoryAIResponses    DataCategory = "ai_responses"
)

// DataCategories lists every governed category in a stable order.
var DataCategories = []DataCategory{
	DataCategoryPersonalInfo,
	DataCategoryWorkExperience,
	DataCategorySkills,
	DataCategoryEducation,
	DataCategoryReferences,
	DataCategoryUserQueries,
	DataCategoryAIResponses,
}

// DataQualityAssessment scores one data category on four axes, 0 to 100
// each.
type DataQualityAssessment struct {
	ID                 string           `json:"id"`
	Category           DataCategory     `json:"category"`
	AssessmentDate     string           `json:"assessment_date"`
	Assessor           string           `json:"assessor"`
	QualityLevel       DataQualityLevel `json:"quality_level"`
	CompletenessScore  float64          `json:"completeness_score"`
	AccuracyScore      float64          `json:"accuracy_score"`
	ConsistencyScore   float64          `json:"consistency_score"`
	TimelinessScore    float64          `json:"timeliness_score"`
	IssuesFound        []string         `json:"issues_found"`
	RemediationActions []string         `json:"remediation_actions"`
	NextAssessmentDate string           `json:"next_assessment_date"`
}

// RecordID implements store.Record.
func (a DataQualityAssessment) RecordID() string { return a.ID }

// OverallScore is the mean of the four axis scores.
func (a DataQualityAssessment) OverallScore() float64 {
	return (a.CompletenessScore + a.AccuracyScore + a.ConsistencyScore + a.TimelinessScore) / 4
}

// DataProcessingRecord documents one processing activity.
type DataProcessingRecord struct {
	ID                string       `json:"id"`
	Timestamp         string       `json:"timestamp"`
	DataCategory      DataCategory `json:"data_category"`
	ProcessingPurpose string       `json:"processing_purpose"`
	DataSubjects      int          `json:"data_subjects"`
	RetentionPeriod   string       `json:"retention_period"`
	LegalBasis        string       `json:"legal_basis"`
	SecurityMeasures  []string     `json:"security_measures"`
	AccessControls    []string     `json:"access_controls"`
}

// RecordID implements store.Record.
func (r DataProcessingRecord) RecordID() string { return r.ID }

// CategoryQuality is the latest quality snapshot for one category.
type CategoryQuality struct {
	Date         string           `json:"date"`
	Level        DataQualityLevel `json:"level"`
	OverallScore float64          `json:"overall_score"`
}

// DataQualitySummary reports per-category quality and its direction of
// movement.
type DataQualitySummary struct {
	LatestAssessments      map[string]CategoryQuality `json:"latest_assessments"`
	QualityTrends          map[string]string          `json:"quality_trends"`
	TotalAssessments       int                        `json:"total_assessments"`
	TotalProcessingRecords int                        `json:"total_processing_records"`
	LastAssessmentDate     string                     `json:"last_assessment_date,omitempty"`
}

// GovernanceStatus is the overall data-governance compliance snapshot.
type GovernanceStatus struct {
	OverallCompliance    bool               `json:"overall_compliance"`
	ComplianceIndicators map[string]bool    `json:"compliance_indicators"`
	QualitySummary       DataQualitySummary `json:"quality_summary"`
	LastUpdated          string             `json:"last_updated"`
}
