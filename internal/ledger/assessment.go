package ledger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/one-front/airesume/internal/store"
	"github.com/one-front/airesume/pkg/models"
)

// AssessmentLedger manages conformity assessments against the Article 9-15
// criteria catalog.
type AssessmentLedger interface {
	CreateAssessment(assessmentType models.AssessmentType, assessor string) (string, error)
	StartAssessment(assessmentID string) error
	UpdateCriteriaResult(assessmentID, criteriaID string, score float64, evidence, notes string, recommendations []string) error
	CompleteAssessment(assessmentID string, findings, recommendations []string) error
	Assessment(assessmentID string) (*models.ConformityAssessment, bool)
	LatestAssessment() (*models.ConformityAssessment, bool)
	Criteria() []models.AssessmentCriteria
	Summary() map[string]any
	CertificationReadiness() map[string]any
	Load() error
	Save() error
}

type assessmentDocument struct {
	Assessments store.Collection[models.ConformityAssessment] `json:"assessments"`
	Criteria    store.Collection[models.AssessmentCriteria]   `json:"criteria"`
	LastUpdated string                                        `json:"last_updated"`
}

type fileAssessmentLedger struct {
	path  string
	doc   assessmentDocument
	now   func() string
	newID func() string
}

// NewAssessmentLedger creates an AssessmentLedger backed by
// data/conformity_assessment.json under the given base directory.
func NewAssessmentLedger(basePath string) AssessmentLedger {
	return &fileAssessmentLedger{
		path:  filepath.Join(basePath, "data", "conformity_assessment.json"),
		now:   timestamp,
		newID: uuid.NewString,
	}
}

// Load reads the ledger and seeds the criteria catalog when empty.
func (l *fileAssessmentLedger) Load() error {
	err := store.Load(l.path, &l.doc)
	if l.doc.Criteria.Len() == 0 {
		l.seedCriteria()
		if saveErr := l.Save(); saveErr != nil && err == nil {
			err = saveErr
		}
	}
	return err
}

// Save persists the ledger and stamps last_updated.
func (l *fileAssessmentLedger) Save() error {
	l.doc.LastUpdated = l.now()
	return store.Save(l.path, &l.doc)
}

// Criteria returns the assessment criteria catalog.
func (l *fileAssessmentLedger) Criteria() []models.AssessmentCriteria {
	return l.doc.Criteria.Items()
}

// CreateAssessment opens a planned assessment with a pending result per
// catalog criteria.
func (l *fileAssessmentLedger) CreateAssessment(assessmentType models.AssessmentType, assessor string) (string, error) {
	results := make([]models.AssessmentResult, 0, l.doc.Criteria.Len())
	for _, c := range l.doc.Criteria.Items() {
		results = append(results, models.AssessmentResult{
			CriteriaID:       c.ID,
			ComplianceStatus: "pending",
			Recommendations:  []string{},
		})
	}
	assessment := models.ConformityAssessment{
		ID:              l.newID(),
		AssessmentType:  assessmentType,
		AssessmentDate:  l.now(),
		Assessor:        assessor,
		Status:          models.AssessmentPlanned,
		CriteriaResults: results,
		Findings:        []string{},
		Recommendations: []string{},
	}
	l.doc.Assessments.Append(assessment)
	return assessment.ID, l.Save()
}

// StartAssessment moves a planned assessment to in progress.
func (l *fileAssessmentLedger) StartAssessment(assessmentID string) error {
	moved := false
	l.doc.Assessments.Update(assessmentID, func(a *models.ConformityAssessment) {
		if a.Status == models.AssessmentPlanned {
			a.Status = models.AssessmentInProgress
			moved = true
		}
	})
	if !moved {
		return fmt.Errorf("starting assessment: %s is not a planned assessment", assessmentID)
	}
	return l.Save()
}

// UpdateCriteriaResult scores one criteria inside an assessment. The
// per-criteria status bands at 0.9 compliant and 0.7 partially compliant.
func (l *fileAssessmentLedger) UpdateCriteriaResult(assessmentID, criteriaID string, score float64, evidence, notes string, recommendations []string) error {
	done := false
	l.doc.Assessments.Update(assessmentID, func(a *models.ConformityAssessment) {
		for i := range a.CriteriaResults {
			if a.CriteriaResults[i].CriteriaID != criteriaID {
				continue
			}
			a.CriteriaResults[i].Score = score
			a.CriteriaResults[i].EvidenceProvided = evidence
			a.CriteriaResults[i].AssessorNotes = notes
			a.CriteriaResults[i].Recommendations = recommendations
			switch {
			case score >= 0.9:
				a.CriteriaResults[i].ComplianceStatus = "compliant"
			case score >= 0.7:
				a.CriteriaResults[i].ComplianceStatus = "partially_compliant"
			default:
				a.CriteriaResults[i].ComplianceStatus = "non_compliant"
			}
			done = true
			return
		}
	})
	if !done {
		return fmt.Errorf("updating criteria result: %s/%s not found", assessmentID, criteriaID)
	}
	return l.Save()
}

// CompleteAssessment computes the weight-normalized overall score, bands
// the compliance level (0.9 fully, 0.8 substantially, 0.6 partially), and
// marks certification readiness when the level is at least substantial and
// no criteria scored non-compliant.
func (l *fileAssessmentLedger) CompleteAssessment(assessmentID string, findings, recommendations []string) error {
	completed := false
	l.doc.Assessments.Update(assessmentID, func(a *models.ConformityAssessment) {
		if a.Status != models.AssessmentInProgress {
			return
		}
		weightedScore := 0.0
		totalWeight := 0.0
		for _, result := range a.CriteriaResults {
			if c, ok := l.doc.Criteria.Get(result.CriteriaID); ok {
				weightedScore += result.Score * c.Weight
				totalWeight += c.Weight
			}
		}
		score := 0.0
		if totalWeight > 0 {
			score = weightedScore / totalWeight
		}
		a.OverallScore = &score
		switch {
		case score >= 0.9:
			a.ComplianceLevel = models.FullyCompliant
		case score >= 0.8:
			a.ComplianceLevel = models.SubstantiallyCompliant
		case score >= 0.6:
			a.ComplianceLevel = models.PartiallyCompliant
		default:
			a.ComplianceLevel = models.NonCompliant
		}
		allAcceptable := true
		for _, result := range a.CriteriaResults {
			if result.ComplianceStatus != "compliant" && result.ComplianceStatus != "partially_compliant" {
				allAcceptable = false
				break
			}
		}
		a.CertificationReady = allAcceptable &&
			(a.ComplianceLevel == models.FullyCompliant || a.ComplianceLevel == models.SubstantiallyCompliant)
		a.Findings = findings
		a.Recommendations = recommendations
		a.Status = models.AssessmentCompleted
		a.NextAssessmentDate = time.Now().AddDate(1, 0, 0).Format(timestampLayout)
		completed = true
	})
	if !completed {
		return fmt.Errorf("completing assessment: %s is not in progress", assessmentID)
	}
	return l.Save()
}

// Assessment returns a copy of the assessment with the given ID.
func (l *fileAssessmentLedger) Assessment(assessmentID string) (*models.ConformityAssessment, bool) {
	a, ok := l.doc.Assessments.Get(assessmentID)
	if !ok {
		return nil, false
	}
	return &a, true
}

// LatestAssessment returns the most recent assessment by date.
func (l *fileAssessmentLedger) LatestAssessment() (*models.ConformityAssessment, bool) {
	items := l.doc.Assessments.Items()
	if len(items) == 0 {
		return nil, false
	}
	latest := items[0]
	for _, a := range items[1:] {
		if a.AssessmentDate > latest.AssessmentDate {
			latest = a
		}
	}
	return &latest, true
}

// Summary aggregates the assessment ledger for reporting.
func (l *fileAssessmentLedger) Summary() map[string]any {
	completed := 0
	levels := map[string]int{}
	types := map[string]int{}
	for _, a := range l.doc.Assessments.Items() {
		if a.Status == models.AssessmentCompleted {
			completed++
		}
		if a.ComplianceLevel != "" {
			levels[string(a.ComplianceLevel)]++
		}
		types[string(a.AssessmentType)]++
	}
	summary := map[string]any{
		"total_assessments":     l.doc.Assessments.Len(),
		"completed_assessments": completed,
		"compliance_levels":     levels,
		"assessment_types":      types,
	}
	if latest, ok := l.LatestAssessment(); ok {
		summary["latest_assessment"] = map[string]any{
			"id":                  latest.ID,
			"type":                string(latest.AssessmentType),
			"date":                latest.AssessmentDate,
			"score":               latest.OverallScore,
			"compliance_level":    string(latest.ComplianceLevel),
			"certification_ready": latest.CertificationReady,
		}
	}
	return summary
}

// CertificationReadiness evaluates the latest completed assessment against
// the mandatory criteria.
func (l *fileAssessmentLedger) CertificationReadiness() map[string]any {
	latest, ok := l.LatestAssessment()
	if !ok || latest.Status != models.AssessmentCompleted {
		return map[string]any{
			"status":  "no_completed_assessment",
			"message": "No completed assessment available for certification readiness evaluation",
		}
	}
	var details []map[string]any
	allMandatoryCompliant := true
	for _, c := range l.doc.Criteria.Items() {
		if !c.Mandatory {
			continue
		}
		for _, result := range latest.CriteriaResults {
			if result.CriteriaID != c.ID {
				continue
			}
			details = append(details, map[string]any{
				"criteria_id":       c.ID,
				"article":           c.Article,
				"requirement":       c.Requirement,
				"score":             result.Score,
				"compliance_status": result.ComplianceStatus,
			})
			if result.ComplianceStatus != "compliant" && result.ComplianceStatus != "partially_compliant" {
				allMandatoryCompliant = false
			}
		}
	}
	return map[string]any{
		"overall_readiness":             latest.CertificationReady,
		"compliance_level":              string(latest.ComplianceLevel),
		"overall_score":                 latest.OverallScore,
		"mandatory_criteria_compliance": allMandatoryCompliant,
		"mandatory_criteria_details":    details,
		"recommendations":               latest.Recommendations,
		"next_assessment_date":          latest.NextAssessmentDate,
	}
}

func (l *fileAssessmentLedger) seedCriteria() {
	catalog := []models.AssessmentCriteria{
		{
			ID:               "ART9-001",
			Article:          "Article 9",
			Requirement:      "Risk Management System",
			Description:      "Establishment and maintenance of a risk management system",
			EvidenceRequired: "Risk management procedures, risk register, mitigation plans",
			AssessmentMethod: "Document review, system testing, risk assessment validation",
		},
		{
			ID:               "ART10-001",
			Article:          "Article 10",
			Requirement:      "Data Governance and Quality Management",
			Description:      "Data governance and quality management procedures",
			EvidenceRequired: "Data quality procedures, processing records, quality assessments",
			AssessmentMethod: "Data quality review, governance documentation analysis",
		},
		{
			ID:               "ART11-001",
			Article:          "Article 11",
			Requirement:      "Technical Documentation",
			Description:      "Technical documentation of the AI system",
			EvidenceRequired: "System architecture, algorithm documentation, training data info",
			AssessmentMethod: "Documentation review, technical validation",
		},
		{
			ID:               "ART12-001",
			Article:          "Article 12",
			Requirement:      "Record Keeping",
			Description:      "Record keeping of the AI system",
			EvidenceRequired: "System operation logs, audit trails, decision records",
			AssessmentMethod: "Log analysis, record validation, audit trail review",
		},
		{
			ID:               "ART13-001",
			Article:          "Article 13",
			Requirement:      "Transparency and Provision of Information",
			Description:      "Transparency and provision of information to users",
			EvidenceRequired: "User notices, transparency documentation, user interface",
			AssessmentMethod: "User interface review, transparency notice validation",
		},
		{
			ID:               "ART14-001",
			Article:          "Article 14",
			Requirement:      "Human Oversight",
			Description:      "Human oversight of the AI system",
			EvidenceRequired: "Oversight procedures, human review mechanisms, override capabilities",
			AssessmentMethod: "Oversight mechanism testing, procedure validation",
		},
		{
			ID:               "ART15-001",
			Article:          "Article 15",
			Requirement:      "Accuracy, Robustness and Cybersecurity",
			Description:      "Accuracy, robustness and cybersecurity measures",
			EvidenceRequired: "Performance testing, security measures, robustness validation",
			AssessmentMethod: "Performance testing, security assessment, robustness validation",
		},
	}
	for i := range catalog {
		catalog[i].Weight = 1.0
		catalog[i].Mandatory = true
		l.doc.Criteria.Append(catalog[i])
	}
}
