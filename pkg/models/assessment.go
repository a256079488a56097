package models

// AssessmentType names how a conformity assessment is conducted.
type AssessmentType string

const (
	AssessmentSelf          AssessmentType = "self_assessment"
	AssessmentThirdParty    AssessmentType = "third_party_assessment"
	AssessmentRegulatory    AssessmentType = "regulatory_assessment"
	AssessmentCertification AssessmentType = "certification_assessment"
)

// AssessmentStatus is the lifecycle state of a conformity assessment.
type AssessmentStatus string

const (
	AssessmentPlanned    AssessmentStatus = "planned"
	AssessmentInProgress AssessmentStatus = "in_progress"
	AssessmentCompleted  AssessmentStatus = "completed"
	AssessmentFailed     AssessmentStatus = "failed"
	AssessmentCertified  AssessmentStatus = "certified"
)

// ComplianceLevel bands a weighted assessment score.
type ComplianceLevel string

const (
	FullyCompliant         ComplianceLevel = "fully_compliant"
	SubstantiallyCompliant ComplianceLevel = "substantially_compliant"
	PartiallyCompliant     ComplianceLevel = "partially_compliant"
	NonCompliant           ComplianceLevel = "non_compliant"
)

// AssessmentCriteria is one regulatory requirement an assessment scores
// against.
type AssessmentCriteria struct {
	ID               string  `json:"id"`
	Article          string  `json:"article"`
	Requirement      string  `json:"requirement"`
	Description      string  `json:"description"`
	EvidenceRequired string  `json:"evidence_required"`
	AssessmentMethod string  `json:"assessment_method"`
	Weight           float64 `json:"weight"`
	Mandatory        bool    `json:"mandatory"`
}

// RecordID implements store.Record.
func (c AssessmentCriteria) RecordID() string { return c.ID }

// AssessmentResult is the scored outcome for one criteria inside an
// assessment.
type AssessmentResult struct {
	CriteriaID       string   `json:"criteria_id"`
	Score            float64  `json:"score"`
	EvidenceProvided string   `json:"evidence_provided"`
	AssessorNotes    string   `json:"assessor_notes"`
	ComplianceStatus string   `json:"compliance_status"`
	Recommendations  []string `json:"recommendations"`
}

// ConformityAssessment is one assessment run over the criteria catalog.
type ConformityAssessment struct {
	ID                 string             `json:"id"`
	AssessmentType     AssessmentType     `json:"assessment_type"`
	AssessmentDate     string             `json:"assessment_date"`
	Assessor           string             `json:"assessor"`
	Status             AssessmentStatus   `json:"status"`
	OverallScore       *float64           `json:"overall_score,omitempty"`
	ComplianceLevel    ComplianceLevel    `json:"compliance_level,omitempty"`
	CriteriaResults    []AssessmentResult `json:"criteria_results"`
	Findings           []string           `json:"findings"`
	Recommendations    []string           `json:"recommendations"`
	CertificationReady bool               `json:"certification_ready"`
	NextAssessmentDate string             `json:"next_assessment_date,omitempty"`
}

// RecordID implements store.Record.
func (a ConformityAssessment) RecordID() string { return a.ID }
