package ledger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/one-front/airesume/internal/store"
	"github.com/one-front/airesume/pkg/models"
)

// AuditLedger manages audit reports through their planned, in-progress,
// and completed lifecycle.
type AuditLedger interface {
	CreateAudit(auditType models.AuditType, auditor, scope string) (string, error)
	StartAudit(auditID string) error
	CompleteChecklistItem(auditID, itemID string, status models.ChecklistStatus, evidence, notes string) error
	AddFinding(auditID string, finding models.AuditFinding) (string, error)
	CompleteAudit(auditID string, recommendations []string) error
	Audit(auditID string) (*models.AuditReport, bool)
	AuditsByType(auditType models.AuditType) []models.AuditReport
	Summary() models.AuditSummary
	ComplianceStatus() map[string]any
	Load() error
	Save() error
}

type auditLedgerDocument struct {
	AuditReports store.Collection[models.AuditReport] `json:"audit_reports"`
	LastUpdated  string                               `json:"last_updated"`
}

type fileAuditLedger struct {
	path  string
	doc   auditLedgerDocument
	now   func() string
	newID func() string
}

// NewAuditLedger creates an AuditLedger backed by data/audit_procedures.json
// under the given base directory.
func NewAuditLedger(basePath string) AuditLedger {
	return &fileAuditLedger{
		path:  filepath.Join(basePath, "data", "audit_procedures.json"),
		now:   timestamp,
		newID: uuid.NewString,
	}
}

// Load reads the ledger from disk. Checklist catalogs are static and not
// persisted until an audit uses them.
func (a *fileAuditLedger) Load() error {
	return store.Load(a.path, &a.doc)
}

// Save persists the ledger and stamps last_updated.
func (a *fileAuditLedger) Save() error {
	a.doc.LastUpdated = a.now()
	return store.Save(a.path, &a.doc)
}

// CreateAudit opens a new planned audit seeded with the checklist catalog
// for its type.
func (a *fileAuditLedger) CreateAudit(auditType models.AuditType, auditor, scope string) (string, error) {
	report := models.AuditReport{
		ID:               a.newID(),
		AuditType:        auditType,
		AuditDate:        a.now(),
		Auditor:          auditor,
		Scope:            scope,
		Status:           models.AuditStatusPlanned,
		ChecklistItems:   ChecklistCatalog(auditType),
		Findings:         []models.AuditFinding{},
		Recommendations:  []string{},
		ComplianceStatus: "pending",
	}
	a.doc.AuditReports.Append(report)
	return report.ID, a.Save()
}

// StartAudit moves a planned audit to in progress.
func (a *fileAuditLedger) StartAudit(auditID string) error {
	moved := false
	a.doc.AuditReports.Update(auditID, func(r *models.AuditReport) {
		if r.Status == models.AuditStatusPlanned {
			r.Status = models.AuditStatusInProgress
			moved = true
		}
	})
	if !moved {
		return fmt.Errorf("starting audit: %s is not a planned audit", auditID)
	}
	return a.Save()
}

// CompleteChecklistItem records the outcome of one checklist item.
func (a *fileAuditLedger) CompleteChecklistItem(auditID, itemID string, status models.ChecklistStatus, evidence, notes string) error {
	done := false
	a.doc.AuditReports.Update(auditID, func(r *models.AuditReport) {
		for i := range r.ChecklistItems {
			if r.ChecklistItems[i].ID == itemID {
				r.ChecklistItems[i].Status = status
				r.ChecklistItems[i].EvidenceProvided = evidence
				r.ChecklistItems[i].AuditorNotes = notes
				done = true
				return
			}
		}
	})
	if !done {
		return fmt.Errorf("completing checklist item: %s/%s not found", auditID, itemID)
	}
	return a.Save()
}

// AddFinding attaches a finding to an audit, assigning its ID and opening
// it.
func (a *fileAuditLedger) AddFinding(auditID string, finding models.AuditFinding) (string, error) {
	finding.ID = a.newID()
	finding.Status = "open"
	added := false
	a.doc.AuditReports.Update(auditID, func(r *models.AuditReport) {
		r.Findings = append(r.Findings, finding)
		added = true
	})
	if !added {
		return "", fmt.Errorf("adding finding: audit %s not found", auditID)
	}
	return finding.ID, a.Save()
}

// CompleteAudit scores an in-progress audit from its checklist and assigns
// the verdict: 0.9+ compliant, 0.7+ partially compliant, below that
// non-compliant. The next audit falls due in one year.
func (a *fileAuditLedger) CompleteAudit(auditID string, recommendations []string) error {
	completed := false
	a.doc.AuditReports.Update(auditID, func(r *models.AuditReport) {
		if r.Status != models.AuditStatusInProgress {
			return
		}
		passed := 0
		for _, item := range r.ChecklistItems {
			if item.Status == models.ChecklistPassed {
				passed++
			}
		}
		score := 0.0
		if len(r.ChecklistItems) > 0 {
			score = float64(passed) / float64(len(r.ChecklistItems))
		}
		r.OverallScore = &score
		switch {
		case score >= 0.9:
			r.Result = models.AuditResultCompliant
			r.ComplianceStatus = "compliant"
		case score >= 0.7:
			r.Result = models.AuditResultPartiallyCompliant
			r.ComplianceStatus = "partially_compliant"
		default:
			r.Result = models.AuditResultNonCompliant
			r.ComplianceStatus = "non_compliant"
		}
		r.Recommendations = recommendations
		r.Status = models.AuditStatusCompleted
		r.NextAuditDate = time.Now().AddDate(1, 0, 0).Format(timestampLayout)
		completed = true
	})
	if !completed {
		return fmt.Errorf("completing audit: %s is not in progress", auditID)
	}
	return a.Save()
}

// Audit returns a copy of the report with the given ID.
func (a *fileAuditLedger) Audit(auditID string) (*models.AuditReport, bool) {
	r, ok := a.doc.AuditReports.Get(auditID)
	if !ok {
		return nil, false
	}
	return &r, true
}

// AuditsByType returns every audit of the given type.
func (a *fileAuditLedger) AuditsByType(auditType models.AuditType) []models.AuditReport {
	return a.doc.AuditReports.Find(func(r models.AuditReport) bool {
		return r.AuditType == auditType
	})
}

// Summary aggregates the audit ledger for reporting.
func (a *fileAuditLedger) Summary() models.AuditSummary {
	summary := models.AuditSummary{
		TotalAudits:    a.doc.AuditReports.Len(),
		AuditsByResult: map[string]int{},
		AuditsByType:   map[string]int{},
	}
	var latest *models.AuditReport
	for i, r := range a.doc.AuditReports.Items() {
		if r.Status == models.AuditStatusCompleted {
			summary.CompletedAudits++
		}
		if r.Result != "" {
			summary.AuditsByResult[string(r.Result)]++
		}
		summary.AuditsByType[string(r.AuditType)]++
		if latest == nil || r.AuditDate > latest.AuditDate {
			latest = &a.doc.AuditReports.Items()[i]
		}
	}
	if latest != nil {
		summary.LatestAudit = &models.AuditSnapshot{
			ID:     latest.ID,
			Type:   latest.AuditType,
			Date:   latest.AuditDate,
			Result: latest.Result,
			Score:  latest.OverallScore,
		}
	}
	return summary
}

// ComplianceStatus reports the state of the latest compliance audit.
func (a *fileAuditLedger) ComplianceStatus() map[string]any {
	if a.doc.AuditReports.Len() == 0 {
		return map[string]any{"status": "no_audits", "message": "No audits have been conducted"}
	}
	audits := a.AuditsByType(models.AuditTypeCompliance)
	if len(audits) == 0 {
		return map[string]any{"status": "no_compliance_audit", "message": "No compliance audits have been conducted"}
	}
	latest := audits[0]
	for _, r := range audits[1:] {
		if r.AuditDate > latest.AuditDate {
			latest = r
		}
	}
	open := 0
	for _, f := range latest.Findings {
		if f.Status == "open" {
			open++
		}
	}
	return map[string]any{
		"status":          latest.ComplianceStatus,
		"last_audit_date": latest.AuditDate,
		"audit_score":     latest.OverallScore,
		"audit_result":    string(latest.Result),
		"next_audit_date": latest.NextAuditDate,
		"open_findings":   open,
		"total_findings":  len(latest.Findings),
	}
}

// ChecklistCatalog returns the fixed checklist for an audit type. Types
// without a catalog start with an empty checklist.
func ChecklistCatalog(auditType models.AuditType) []models.AuditChecklistItem {
	switch auditType {
	case models.AuditTypeCompliance:
		return []models.AuditChecklistItem{
			{
				ID:               "COMP-001",
				Category:         "AI Transparency",
				Description:      "AI transparency notices are displayed to users",
				Requirement:      "Article 13 - Transparency and provision of information to users",
				EvidenceRequired: "Screenshots of transparency notices in application",
				Status:           models.ChecklistPending,
			},
			{
				ID:               "COMP-002",
				Category:         "Human Oversight",
				Description:      "Human oversight mechanisms are implemented",
				Requirement:      "Article 14 - Human oversight",
				EvidenceRequired: "Documentation of oversight procedures and user interface",
				Status:           models.ChecklistPending,
			},
			{
				ID:               "COMP-003",
				Category:         "Risk Management",
				Description:      "Risk management system is operational",
				Requirement:      "Article 9 - Risk management system",
				EvidenceRequired: "Risk assessment reports and mitigation procedures",
				Status:           models.ChecklistPending,
			},
			{
				ID:               "COMP-004",
				Category:         "Data Governance",
				Description:      "Data governance procedures are implemented",
				Requirement:      "Article 10 - Data governance and quality management",
				EvidenceRequired: "Data quality assessments and processing records",
				Status:           models.ChecklistPending,
			},
			{
				ID:               "COMP-005",
				Category:         "Technical Documentation",
				Description:      "Technical documentation is complete and up-to-date",
				Requirement:      "Article 11 - Technical documentation",
				EvidenceRequired: "System architecture and algorithm documentation",
				Status:           models.ChecklistPending,
			},
			{
				ID:               "COMP-006",
				Category:         "Record Keeping",
				Description:      "Record keeping system is operational",
				Requirement:      "Article 12 - Record keeping",
				EvidenceRequired: "System operation logs and audit trails",
				Status:           models.ChecklistPending,
			},
		}
	case models.AuditTypeRisk:
		return []models.AuditChecklistItem{
			{
				ID:               "RISK-001",
				Category:         "Risk Identification",
				Description:      "All system risks have been identified and documented",
				Requirement:      "Comprehensive risk identification",
				EvidenceRequired: "Risk register and assessment reports",
				Status:           models.ChecklistPending,
			},
			{
				ID:               "RISK-002",
				Category:         "Risk Mitigation",
				Description:      "Risk mitigation measures are implemented and effective",
				Requirement:      "Effective risk mitigation",
				EvidenceRequired: "Mitigation action plans and effectiveness assessments",
				Status:           models.ChecklistPending,
			},
		}
	case models.AuditTypeDataQuality:
		return []models.AuditChecklistItem{
			{
				ID:               "DATA-001",
				Category:         "Data Quality",
				Description:      "Data quality standards are met",
				Requirement:      "High-quality training and validation data",
				EvidenceRequired: "Data quality assessment reports",
				Status:           models.ChecklistPending,
			},
			{
				ID:               "DATA-002",
				Category:         "Data Processing",
				Description:      "Data processing procedures are compliant",
				Requirement:      "Compliant data processing",
				EvidenceRequired: "Data processing records and procedures",
				Status:           models.ChecklistPending,
			},
		}
	default:
		return []models.AuditChecklistItem{}
	}
}
