package models

// AuditType names a category of audit.
type AuditType string

const (
	AuditTypeCompliance    AuditType = "compliance_audit"
	AuditTypeRisk          AuditType = "risk_assessment"
	AuditTypeDataQuality   AuditType = "data_quality_audit"
	AuditTypeSecurity      AuditType = "security_audit"
	AuditTypePerformance   AuditType = "performance_audit"
	AuditTypeDocumentation AuditType = "documentation_audit"
)

// AuditStatus is the lifecycle state of an audit.
type AuditStatus string

const (
	AuditStatusPlanned    AuditStatus = "planned"
	AuditStatusInProgress AuditStatus = "in_progress"
	AuditStatusCompleted  AuditStatus = "completed"
	AuditStatusFailed     AuditStatus = "failed"
	AuditStatusCancelled  AuditStatus = "cancelled"
)

// AuditResult is the verdict of a completed audit.
type AuditResult string

const (
	AuditResultCompliant          AuditResult = "compliant"
	AuditResultNonCompliant       AuditResult = "non_compliant"
	AuditResultPartiallyCompliant AuditResult = "partially_compliant"
	AuditResultRequiresAction     AuditResult = "requires_action"
)

// ChecklistStatus is the state of one checklist item.
type ChecklistStatus string

const (
	ChecklistPending       ChecklistStatus = "pending"
	ChecklistPassed        ChecklistStatus = "passed"
	ChecklistFailed        ChecklistStatus = "failed"
	ChecklistNotApplicable ChecklistStatus = "not_applicable"
)

// AuditChecklistItem is one verifiable requirement inside an audit.
type AuditChecklistItem struct {
	ID               string          `json:"id"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	Requirement      string          `json:"requirement"`
	EvidenceRequired string          `json:"evidence_required"`
	Status           ChecklistStatus `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	EvidenceProvided string          `json:"evidence_provided,omitempty"`
	AuditorNotes     string          `json:"auditor_notes,omitempty"`
}

// FindingSeverity ranks an audit finding.
type FindingSeverity string

const (
	FindingCritical    FindingSeverity = "critical"
	FindingMajor       FindingSeverity = "major"
	FindingMinor       FindingSeverity = "minor"
	FindingObservation FindingSeverity = "observation"
)

// AuditFinding is a recorded deficiency or observation.
type AuditFinding struct {
	ID               string          `json:"id"`
	Severity         FindingSeverity `json:"severity"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	Evidence         string          `json:"evidence"`
	Recommendation   string          `json:"recommendation"`
	ResponsibleParty string          `json:"responsible_party"`
	DueDate          string          `json:"due_date"`
	Status           string          `json:"status"`
	ResolutionNotes  string          `json:"resolution_notes,omitempty"`
}

// AuditReport is one audit with its checklist, findings, and outcome.
type AuditReport struct {
	ID               string               `json:"id"`
	AuditType        AuditType            `json:"audit_type"`
	AuditDate        string               `json:"audit_date"`
	Auditor          string               `json:"auditor"`
	Scope            string               `json:"scope"`
	Status           AuditStatus          `json:"status"`
	Result           AuditResult          `json:"result,omitempty"`
	OverallScore     *float64             `json:"overall_score,omitempty"`
	ChecklistItems   []AuditChecklistItem `json:"checklist_items"`
	Findings         []AuditFinding       `json:"findings"`
	Recommendations  []string             `json:"recommendations"`
	NextAuditDate    string               `json:"next_audit_date,omitempty"`
	ComplianceStatus string               `json:"compliance_status"`
}

// RecordID implements store.Record.
func (r AuditReport) RecordID() string { return r.ID }

// AuditSummary aggregates all audits for reporting.
type AuditSummary struct {
	TotalAudits     int            `json:"total_audits"`
	CompletedAudits int            `json:"completed_audits"`
	AuditsByResult  map[string]int `json:"audits_by_result"`
	AuditsByType    map[string]int `json:"audits_by_type"`
	LatestAudit     *AuditSnapshot `json:"latest_audit,omitempty"`
}

// AuditSnapshot is the headline view of one audit.
type AuditSnapshot struct {
	ID     string      `json:"id"`
	Type   AuditType   `json:"type"`
	Date   string      `json:"date"`
	Result AuditResult `json:"result,omitempty"`
	Score  *float64    `json:"score,omitempty"`
}
