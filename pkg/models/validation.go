package models

// ValidationType names how a compliance validation is performed.
type ValidationType string

const (
	ValidationAutomated  ValidationType = "automated_validation"
	ValidationManual     ValidationType = "manual_validation"
	ValidationThirdParty ValidationType = "third_party_validation"
	ValidationRegulatory ValidationType = "regulatory_validation"
)

// ValidationStatus is the state of a validation or one of its results.
type ValidationStatus string

const (
	ValidationPending           ValidationStatus = "pending"
	ValidationInProgress        ValidationStatus = "in_progress"
	ValidationPassed            ValidationStatus = "passed"
	ValidationFailed            ValidationStatus = "failed"
	ValidationRequiresAttention ValidationStatus = "requires_attention"
)

// ValidationSeverity ranks the weight of a validation rule.
type ValidationSeverity string

const (
	ValidationSeverityCritical ValidationSeverity = "critical"
	ValidationSeverityHigh     ValidationSeverity = "high"
	ValidationSeverityMedium   ValidationSeverity = "medium"
	ValidationSeverityLow      ValidationSeverity = "low"
	ValidationSeverityInfo     ValidationSeverity = "info"
)

// ValidationRule is one check in the validation catalog.
type ValidationRule struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Article        string             `json:"article"`
	Requirement    string             `json:"requirement"`
	ValidationType ValidationType     `json:"validation_type"`
	Automated      bool               `json:"automated"`
	Severity       ValidationSeverity `json:"severity"`
	Weight         float64            `json:"weight"`
}

// RecordID implements store.Record.
func (r ValidationRule) RecordID() string { return r.ID }

// ValidationRuleResult is the outcome of running one rule inside a
// validation.
type ValidationRuleResult struct {
	RuleID          string           `json:"rule_id"`
	Status          ValidationStatus `json:"status"`
	Score           float64          `json:"score"`
	Message         string           `json:"message"`
	Evidence        string           `json:"evidence"`
	Recommendations []string         `json:"recommendations"`
	ValidatedAt     string           `json:"validated_at,omitempty"`
	Validator       string           `json:"validator,omitempty"`
}

// ComplianceValidation is one validation run over the rule catalog.
type ComplianceValidation struct {
	ID                 string                 `json:"id"`
	ValidationType     ValidationType         `json:"validation_type"`
	ValidationDate     string                 `json:"validation_date"`
	Validator          string                 `json:"validator"`
	Status             ValidationStatus       `json:"status"`
	OverallScore       *float64               `json:"overall_score,omitempty"`
	ValidationResults  []ValidationRuleResult `json:"validation_results"`
	Findings           []string               `json:"findings"`
	Recommendations    []string               `json:"recommendations"`
	CertificationReady bool                   `json:"certification_ready"`
	NextValidationDate string                 `json:"next_validation_date,omitempty"`
}

// RecordID implements store.Record.
func (v ComplianceValidation) RecordID() string { return v.ID }
