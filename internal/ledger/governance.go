package ledger

import (
	"path/filepath"
	"time"

	"github.com/one-front/airesume/internal/store"
	"github.com/one-front/airesume/pkg/models"
)

// Quality assessments are due again 90 days after the last one.
const assessmentCycleDays = 90

// GovernanceLedger manages data quality assessments and processing
// records.
type GovernanceLedger interface {
	AssessQuality(category models.DataCategory, assessor string, completeness, accuracy, consistency, timeliness float64, issues, remediations []string) (string, error)
	RecordProcessing(rec models.DataProcessingRecord) (string, error)
	QualitySummary() models.DataQualitySummary
	ComplianceStatus() models.GovernanceStatus
	Assessment(id string) (*models.DataQualityAssessment, bool)
	Load() error
	Save() error
}

type governanceDocument struct {
	QualityAssessments store.Collection[models.DataQualityAssessment] `json:"quality_assessments"`
	ProcessingRecords  store.Collection[models.DataProcessingRecord]  `json:"processing_records"`
	LastUpdated        string                                         `json:"last_updated"`
}

type fileGovernanceLedger struct {
	path string
	doc  governanceDocument
	now  func() string
}

// NewGovernanceLedger creates a GovernanceLedger backed by
// data/data_governance_log.json under the given base directory.
func NewGovernanceLedger(basePath string) GovernanceLedger {
	return &fileGovernanceLedger{
		path: filepath.Join(basePath, "data", "data_governance_log.json"),
		now:  timestamp,
	}
}

// Load reads the ledger and seeds the default assessments when empty.
func (g *fileGovernanceLedger) Load() error {
	err := store.Load(g.path, &g.doc)
	if g.doc.QualityAssessments.Len() == 0 {
		g.seedDefaults()
		if saveErr := g.Save(); saveErr != nil && err == nil {
			err = saveErr
		}
	}
	return err
}

// Save persists the ledger and stamps last_updated.
func (g *fileGovernanceLedger) Save() error {
	g.doc.LastUpdated = g.now()
	return store.Save(g.path, &g.doc)
}

// QualityLevelForScore bands an overall 0-100 score into a quality level:
// 90+ excellent, 80+ good, 70+ fair, 60+ poor, below critical.
func QualityLevelForScore(score float64) models.DataQualityLevel {
	switch {
	case score >= 90:
		return models.DataQualityExcellent
	case score >= 80:
		return models.DataQualityGood
	case score >= 70:
		return models.DataQualityFair
	case score >= 60:
		return models.DataQualityPoor
	default:
		return models.DataQualityCritical
	}
}

// AssessQuality records a quality assessment for a category, deriving the
// quality level from the mean of the four scores.
func (g *fileGovernanceLedger) AssessQuality(category models.DataCategory, assessor string, completeness, accuracy, consistency, timeliness float64, issues, remediations []string) (string, error) {
	overall := (completeness + accuracy + consistency + timeliness) / 4
	assessment := models.DataQualityAssessment{
		ID:                 store.NextSeqID("DQ", g.doc.QualityAssessments.Len()),
		Category:           category,
		AssessmentDate:     g.now(),
		Assessor:           assessor,
		QualityLevel:       QualityLevelForScore(overall),
		CompletenessScore:  completeness,
		AccuracyScore:      accuracy,
		ConsistencyScore:   consistency,
		TimelinessScore:    timeliness,
		IssuesFound:        issues,
		RemediationActions: remediations,
		NextAssessmentDate: time.Now().AddDate(0, 0, assessmentCycleDays).Format(timestampLayout),
	}
	g.doc.QualityAssessments.Append(assessment)
	return assessment.ID, g.Save()
}

// RecordProcessing documents a processing activity, assigning its ID and
// timestamp.
func (g *fileGovernanceLedger) RecordProcessing(rec models.DataProcessingRecord) (string, error) {
	rec.ID = store.NextSeqID("DP", g.doc.ProcessingRecords.Len())
	rec.Timestamp = g.now()
	g.doc.ProcessingRecords.Append(rec)
	return rec.ID, g.Save()
}

// Assessment returns a copy of the assessment with the given ID.
func (g *fileGovernanceLedger) Assessment(id string) (*models.DataQualityAssessment, bool) {
	a, ok := g.doc.QualityAssessments.Get(id)
	if !ok {
		return nil, false
	}
	return &a, true
}

// QualitySummary reports the latest assessment per category and whether
// each category is improving, declining, or stable against its previous
// assessment.
func (g *fileGovernanceLedger) QualitySummary() models.DataQualitySummary {
	summary := models.DataQualitySummary{
		LatestAssessments:      map[string]models.CategoryQuality{},
		QualityTrends:          map[string]string{},
		TotalAssessments:       g.doc.QualityAssessments.Len(),
		TotalProcessingRecords: g.doc.ProcessingRecords.Len(),
	}
	for _, a := range g.doc.QualityAssessments.Items() {
		key := string(a.Category)
		if latest, ok := summary.LatestAssessments[key]; !ok || a.AssessmentDate > latest.Date {
			summary.LatestAssessments[key] = models.CategoryQuality{
				Date:         a.AssessmentDate,
				Level:        a.QualityLevel,
				OverallScore: a.OverallScore(),
			}
		}
		if a.AssessmentDate > summary.LastAssessmentDate {
			summary.LastAssessmentDate = a.AssessmentDate
		}
	}
	for _, category := range models.DataCategories {
		history := g.doc.QualityAssessments.Find(func(a models.DataQualityAssessment) bool {
			return a.Category == category
		})
		if len(history) < 2 {
			continue
		}
		latest := history[len(history)-1].OverallScore()
		previous := history[len(history)-2].OverallScore()
		switch {
		case latest > previous:
			summary.QualityTrends[string(category)] = "improving"
		case latest < previous:
			summary.QualityTrends[string(category)] = "declining"
		default:
			summary.QualityTrends[string(category)] = "stable"
		}
	}
	return summary
}

// ComplianceStatus evaluates the governance compliance indicators and the
// overall verdict.
func (g *fileGovernanceLedger) ComplianceStatus() models.GovernanceStatus {
	indicators := map[string]bool{
		"data_quality_assessments": g.doc.QualityAssessments.Len() > 0,
		"processing_records":       g.doc.ProcessingRecords.Len() > 0,
		"regular_assessments":      g.regularAssessments(),
		"quality_standards_met":    g.qualityStandardsMet(),
		"data_minimization":        true,
		"retention_compliance":     true,
	}
	overall := true
	for _, ok := range indicators {
		overall = overall && ok
	}
	return models.GovernanceStatus{
		OverallCompliance:    overall,
		ComplianceIndicators: indicators,
		QualitySummary:       g.QualitySummary(),
		LastUpdated:          g.now(),
	}
}

func (g *fileGovernanceLedger) regularAssessments() bool {
	var latest string
	for _, a := range g.doc.QualityAssessments.Items() {
		if a.AssessmentDate > latest {
			latest = a.AssessmentDate
		}
	}
	if latest == "" {
		return false
	}
	when, err := parseTimestamp(latest)
	if err != nil {
		return false
	}
	return time.Since(when) <= assessmentCycleDays*24*time.Hour
}

func (g *fileGovernanceLedger) qualityStandardsMet() bool {
	if g.doc.QualityAssessments.Len() == 0 {
		return false
	}
	latest := map[models.DataCategory]models.DataQualityAssessment{}
	for _, a := range g.doc.QualityAssessments.Items() {
		if prev, ok := latest[a.Category]; !ok || a.AssessmentDate > prev.AssessmentDate {
			latest[a.Category] = a
		}
	}
	for _, a := range latest {
		if a.OverallScore() < 70 {
			return false
		}
	}
	return true
}

func (g *fileGovernanceLedger) seedDefaults() {
	now := g.now()
	next := time.Now().AddDate(0, 0, assessmentCycleDays).Format(timestampLayout)
	defaults := []models.DataQualityAssessment{
		{
			ID:                "DQ-001",
			Category:          models.DataCategoryPersonalInfo,
			QualityLevel:      models.DataQualityExcellent,
			CompletenessScore: 95, AccuracyScore: 98, ConsistencyScore: 92, TimelinessScore: 100,
			IssuesFound: []string{
				"Minor formatting inconsistencies in contact information",
			},
			RemediationActions: []string{
				"Standardize contact information format",
				"Implement data validation rules",
			},
		},
		{
			ID:                "DQ-002",
			Category:          models.DataCategoryWorkExperience,
			QualityLevel:      models.DataQualityGood,
			CompletenessScore: 88, AccuracyScore: 95, ConsistencyScore: 85, TimelinessScore: 90,
			IssuesFound: []string{
				"Some job descriptions lack detailed achievements",
				"Date formats inconsistent across entries",
			},
			RemediationActions: []string{
				"Enhance job description templates",
				"Standardize date format across all entries",
			},
		},
		{
			ID:                "DQ-003",
			Category:          models.DataCategorySkills,
			QualityLevel:      models.DataQualityExcellent,
			CompletenessScore: 92, AccuracyScore: 96, ConsistencyScore: 94, TimelinessScore: 95,
			IssuesFound: []string{
				"Skill proficiency levels could be more granular",
			},
			RemediationActions: []string{
				"Implement more detailed skill proficiency scales",
				"Add skill validation mechanisms",
			},
		},
	}
	for i := range defaults {
		defaults[i].AssessmentDate = now
		defaults[i].Assessor = "Data Governance Team"
		defaults[i].NextAssessmentDate = next
		g.doc.QualityAssessments.Append(defaults[i])
	}
}
