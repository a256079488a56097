package ledger

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/one-front/airesume/internal/store"
	"github.com/one-front/airesume/pkg/models"
)

// RiskRegister manages the identified-risk register and its assessment
// history.
type RiskRegister interface {
	IdentifyRisk(category models.RiskCategory, description, impact, likelihood string, mitigations []string, owner string) (string, error)
	AssessRisk(riskID, assessor string, level models.RiskLevel, effectiveness, notes string) error
	UpdateStatus(riskID string, status models.RiskStatus) error
	Risk(riskID string) (*models.Risk, bool)
	HighPriorityRisks() []models.Risk
	Summary() models.RiskSummary
	Load() error
	Save() error
}

type riskDocument struct {
	Risks       store.Collection[models.Risk]           `json:"risks"`
	Assessments store.Collection[models.RiskAssessment] `json:"assessments"`
	LastUpdated string                                  `json:"last_updated"`
}

type fileRiskRegister struct {
	path string
	doc  riskDocument
	now  func() string
}

// NewRiskRegister creates a RiskRegister backed by
// data/risk_management_log.json under the given base directory.
func NewRiskRegister(basePath string) RiskRegister {
	return &fileRiskRegister{
		path: filepath.Join(basePath, "data", "risk_management_log.json"),
		now:  timestamp,
	}
}

// Load reads the register from disk and seeds the default risk catalog when
// the register is empty. A corrupt document is reported and treated as empty.
func (r *fileRiskRegister) Load() error {
	err := store.Load(r.path, &r.doc)
	if r.doc.Risks.Len() == 0 {
		r.seedDefaults()
		if saveErr := r.Save(); saveErr != nil && err == nil {
			err = saveErr
		}
	}
	return err
}

// Save persists the register and stamps last_updated.
func (r *fileRiskRegister) Save() error {
	r.doc.LastUpdated = r.now()
	return store.Save(r.path, &r.doc)
}

// IdentifyRisk registers a new risk with a level derived from the impact
// and likelihood wording, returning the assigned identifier.
func (r *fileRiskRegister) IdentifyRisk(category models.RiskCategory, description, impact, likelihood string, mitigations []string, owner string) (string, error) {
	if owner == "" {
		owner = "Compliance Team"
	}
	now := r.now()
	risk := models.Risk{
		ID:                 store.NextSeqID("RISK", r.doc.Risks.Len()),
		Category:           category,
		Level:              ClassifyRisk(impact, likelihood),
		Description:        description,
		Impact:             impact,
		Likelihood:         likelihood,
		MitigationMeasures: mitigations,
		Status:             models.RiskStatusIdentified,
		CreatedDate:        now,
		LastUpdated:        now,
		Owner:              owner,
	}
	r.doc.Risks.Append(risk)
	return risk.ID, r.Save()
}

// AssessRisk records a review of an existing risk, moving its level to the
// assessed value and appending an assessment entry.
func (r *fileRiskRegister) AssessRisk(riskID, assessor string, level models.RiskLevel, effectiveness, notes string) error {
	var previous models.RiskLevel
	found := r.doc.Risks.Update(riskID, func(risk *models.Risk) {
		previous = risk.Level
		risk.Level = level
		risk.LastUpdated = r.now()
	})
	if !found {
		return fmt.Errorf("assessing risk: %s not found", riskID)
	}
	r.doc.Assessments.Append(models.RiskAssessment{
		RiskID:                  riskID,
		AssessmentDate:          r.now(),
		Assessor:                assessor,
		CurrentLevel:            level,
		PreviousLevel:           previous,
		MitigationEffectiveness: effectiveness,
		Notes:                   notes,
	})
	return r.Save()
}

// UpdateStatus moves a risk to a new handling status.
func (r *fileRiskRegister) UpdateStatus(riskID string, status models.RiskStatus) error {
	found := r.doc.Risks.Update(riskID, func(risk *models.Risk) {
		risk.Status = status
		risk.LastUpdated = r.now()
	})
	if !found {
		return fmt.Errorf("updating risk status: %s not found", riskID)
	}
	return r.Save()
}

// Risk returns a copy of the risk with the given ID.
func (r *fileRiskRegister) Risk(riskID string) (*models.Risk, bool) {
	risk, ok := r.doc.Risks.Get(riskID)
	if !ok {
		return nil, false
	}
	return &risk, true
}

// HighPriorityRisks returns high and critical risks, most severe first.
func (r *fileRiskRegister) HighPriorityRisks() []models.Risk {
	risks := r.doc.Risks.Find(func(risk models.Risk) bool {
		return risk.Level == models.RiskLevelHigh || risk.Level == models.RiskLevelCritical
	})
	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].Level.Rank() > risks[j].Level.Rank()
	})
	return risks
}

// Summary aggregates the register for compliance reporting.
func (r *fileRiskRegister) Summary() models.RiskSummary {
	summary := models.RiskSummary{
		TotalRisks:       r.doc.Risks.Len(),
		RisksByLevel:     map[string]int{},
		RisksByCategory:  map[string]int{},
		RisksByStatus:    map[string]int{},
		TotalAssessments: r.doc.Assessments.Len(),
	}
	for _, risk := range r.doc.Risks.Items() {
		summary.RisksByLevel[string(risk.Level)]++
		summary.RisksByCategory[string(risk.Category)]++
		summary.RisksByStatus[string(risk.Status)]++
	}
	if n := r.doc.Assessments.Len(); n > 0 {
		summary.LastAssessment = r.doc.Assessments.Items()[n-1].AssessmentDate
	}
	return summary
}

// ClassifyRisk derives a risk level from free-text impact and likelihood
// descriptions. Each axis scores 1 to 4 on keyword matches and the combined
// score maps to a level: 7+ critical, 5+ high, 3+ medium, otherwise low.
func ClassifyRisk(impact, likelihood string) models.RiskLevel {
	impactScore := 1
	switch lower := strings.ToLower(impact); {
	case strings.Contains(lower, "critical") || strings.Contains(lower, "severe"):
		impactScore = 4
	case strings.Contains(lower, "high") || strings.Contains(lower, "significant"):
		impactScore = 3
	case strings.Contains(lower, "medium") || strings.Contains(lower, "moderate"):
		impactScore = 2
	}

	likelihoodScore := 1
	switch lower := strings.ToLower(likelihood); {
	case strings.Contains(lower, "high") || strings.Contains(lower, "frequent"):
		likelihoodScore = 4
	case strings.Contains(lower, "medium") || strings.Contains(lower, "occasional"):
		likelihoodScore = 3
	case strings.Contains(lower, "low") || strings.Contains(lower, "rare"):
		likelihoodScore = 2
	}

	switch total := impactScore + likelihoodScore; {
	case total >= 7:
		return models.RiskLevelCritical
	case total >= 5:
		return models.RiskLevelHigh
	case total >= 3:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

func (r *fileRiskRegister) seedDefaults() {
	now := r.now()
	defaults := []models.Risk{
		{
			ID:          "RISK-001",
			Category:    models.RiskCategoryAccuracy,
			Level:       models.RiskLevelMedium,
			Description: "AI responses may contain inaccuracies about candidate information",
			Impact:      "Incorrect information could mislead recruiters and affect hiring decisions",
			Likelihood:  "Medium - AI models may hallucinate or misinterpret data",
			MitigationMeasures: []string{
				"Human oversight and response flagging system",
				"Regular accuracy monitoring and validation",
				"Clear disclaimers about AI-generated content",
				"User feedback collection and analysis",
			},
			Status: models.RiskStatusIdentified,
		},
		{
			ID:          "RISK-002",
			Category:    models.RiskCategoryBias,
			Level:       models.RiskLevelMedium,
			Description: "AI models may exhibit bias in resume analysis and presentation",
			Impact:      "Biased responses could lead to unfair hiring practices",
			Likelihood:  "Medium - AI models trained on potentially biased data",
			MitigationMeasures: []string{
				"Diverse training data validation",
				"Bias detection and monitoring",
				"Regular model performance audits",
				"Human review of flagged responses",
			},
			Status: models.RiskStatusIdentified,
		},
		{
			ID:          "RISK-003",
			Category:    models.RiskCategoryPrivacy,
			Level:       models.RiskLevelHigh,
			Description: "Personal data processing without proper safeguards",
			Impact:      "Privacy violations could result in regulatory penalties and user trust loss",
			Likelihood:  "Low - Data minimization principles applied",
			MitigationMeasures: []string{
				"Data minimization and purpose limitation",
				"Encryption of sensitive data",
				"Access controls and audit trails",
				"Privacy impact assessments",
			},
			Status: models.RiskStatusIdentified,
		},
		{
			ID:          "RISK-004",
			Category:    models.RiskCategoryTransparency,
			Level:       models.RiskLevelLow,
			Description: "Users may not understand AI system limitations and capabilities",
			Impact:      "Misunderstanding could lead to over-reliance on AI responses",
			Likelihood:  "Low - Transparency notices implemented",
			MitigationMeasures: []string{
				"Clear AI transparency notices",
				"Detailed system information",
				"User education and guidance",
				"Regular transparency audits",
			},
			Status: models.RiskStatusMitigated,
		},
		{
			ID:          "RISK-005",
			Category:    models.RiskCategoryHumanOversight,
			Level:       models.RiskLevelLow,
			Description: "Insufficient human control over AI system decisions",
			Impact:      "Lack of human oversight could lead to automated decision-making errors",
			Likelihood:  "Low - Human oversight mechanisms implemented",
			MitigationMeasures: []string{
				"Response flagging and review system",
				"Human oversight dashboard",
				"Override mechanisms for AI decisions",
				"Regular oversight effectiveness monitoring",
			},
			Status: models.RiskStatusMitigated,
		},
	}
	for i := range defaults {
		defaults[i].CreatedDate = now
		defaults[i].LastUpdated = now
		defaults[i].Owner = "Compliance Team"
		r.doc.Risks.Append(defaults[i])
	}
}
