package ledger

import (
	"testing"

	"github.com/one-front/airesume/pkg/models"
)

func newTestAuditLedger(t *testing.T) AuditLedger {
	t.Helper()
	a := NewAuditLedger(t.TempDir())
	if err := a.Load(); err != nil {
		t.Fatalf("loading audit ledger: %v", err)
	}
	return a
}

func passAll(t *testing.T, a AuditLedger, auditID string, except map[string]models.ChecklistStatus) {
	t.Helper()
	report, ok := a.Audit(auditID)
	if !ok {
		t.Fatalf("audit %s not found", auditID)
	}
	for _, item := range report.ChecklistItems {
		status := models.ChecklistPassed
		if s, ok := except[item.ID]; ok {
			status = s
		}
		if err := a.CompleteChecklistItem(auditID, item.ID, status, "evidence on file", ""); err != nil {
			t.Fatalf("completing %s: %v", item.ID, err)
		}
	}
}

func TestCreateAuditSeedsChecklist(t *testing.T) {
	a := newTestAuditLedger(t)

	id, err := a.CreateAudit(models.AuditTypeCompliance, "lead auditor", "full system")
	if err != nil {
		t.Fatalf("CreateAudit: %v", err)
	}
	report, ok := a.Audit(id)
	if !ok {
		t.Fatal("audit not found after creation")
	}
	if report.Status != models.AuditStatusPlanned {
		t.Errorf("status %q, want planned", report.Status)
	}
	if len(report.ChecklistItems) != 6 {
		t.Errorf("compliance checklist has %d items, want 6", len(report.ChecklistItems))
	}
	if report.ChecklistItems[0].ID != "COMP-001" {
		t.Errorf("first item %q, want COMP-001", report.ChecklistItems[0].ID)
	}
}

func TestAuditLifecycleCompliant(t *testing.T) {
	a := newTestAuditLedger(t)

	id, _ := a.CreateAudit(models.AuditTypeCompliance, "auditor", "scope")
	if err := a.StartAudit(id); err != nil {
		t.Fatalf("StartAudit: %v", err)
	}
	passAll(t, a, id, nil)
	if err := a.CompleteAudit(id, []string{"keep monitoring"}); err != nil {
		t.Fatalf("CompleteAudit: %v", err)
	}

	report, _ := a.Audit(id)
	if report.Status != models.AuditStatusCompleted {
		t.Errorf("status %q, want completed", report.Status)
	}
	if report.Result != models.AuditResultCompliant {
		t.Errorf("result %q, want compliant", report.Result)
	}
	if report.OverallScore == nil || *report.OverallScore != 1.0 {
		t.Errorf("score %v, want 1.0", report.OverallScore)
	}
	if report.NextAuditDate == "" {
		t.Error("completed audit should schedule the next one")
	}
}

func TestAuditScoreBands(t *testing.T) {
	tests := []struct {
		name   string
		failed int
		want   models.AuditResult
	}{
		{"five of six passed", 1, models.AuditResultPartiallyCompliant},
		{"three of six passed", 3, models.AuditResultNonCompliant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAuditLedger(t)
			id, _ := a.CreateAudit(models.AuditTypeCompliance, "auditor", "scope")
			if err := a.StartAudit(id); err != nil {
				t.Fatal(err)
			}
			except := map[string]models.ChecklistStatus{}
			report, _ := a.Audit(id)
			for i := 0; i < tt.failed; i++ {
				except[report.ChecklistItems[i].ID] = models.ChecklistFailed
			}
			passAll(t, a, id, except)
			if err := a.CompleteAudit(id, nil); err != nil {
				t.Fatal(err)
			}
			got, _ := a.Audit(id)
			if got.Result != tt.want {
				t.Errorf("result %q, want %q", got.Result, tt.want)
			}
		})
	}
}

func TestAuditLifecycleGuards(t *testing.T) {
	a := newTestAuditLedger(t)
	id, _ := a.CreateAudit(models.AuditTypeRisk, "auditor", "scope")

	if err := a.CompleteAudit(id, nil); err == nil {
		t.Error("completing a planned audit should fail")
	}
	if err := a.StartAudit(id); err != nil {
		t.Fatal(err)
	}
	if err := a.StartAudit(id); err == nil {
		t.Error("starting an in-progress audit again should fail")
	}
	if err := a.StartAudit("missing"); err == nil {
		t.Error("starting an unknown audit should fail")
	}
}

func TestAddFinding(t *testing.T) {
	a := newTestAuditLedger(t)
	id, _ := a.CreateAudit(models.AuditTypeCompliance, "auditor", "scope")

	findingID, err := a.AddFinding(id, models.AuditFinding{
		Severity:         models.FindingMajor,
		Category:         "Record Keeping",
		Description:      "audit trails missing for March",
		Recommendation:   "backfill from event log",
		ResponsibleParty: "platform team",
		DueDate:          "2026-09-30",
	})
	if err != nil {
		t.Fatalf("AddFinding: %v", err)
	}
	if findingID == "" {
		t.Fatal("finding ID should be assigned")
	}
	report, _ := a.Audit(id)
	if len(report.Findings) != 1 || report.Findings[0].Status != "open" {
		t.Errorf("findings = %+v", report.Findings)
	}
	if _, err := a.AddFinding("missing", models.AuditFinding{}); err == nil {
		t.Error("adding a finding to an unknown audit should fail")
	}
}

func TestAuditSummaryAndComplianceStatus(t *testing.T) {
	a := newTestAuditLedger(t)

	if got := a.ComplianceStatus(); got["status"] != "no_audits" {
		t.Errorf("empty ledger status = %v", got["status"])
	}

	if _, err := a.CreateAudit(models.AuditTypeRisk, "auditor", "risk scope"); err != nil {
		t.Fatal(err)
	}
	if got := a.ComplianceStatus(); got["status"] != "no_compliance_audit" {
		t.Errorf("status without compliance audit = %v", got["status"])
	}

	compID, _ := a.CreateAudit(models.AuditTypeCompliance, "auditor", "scope")
	if err := a.StartAudit(compID); err != nil {
		t.Fatal(err)
	}
	passAll(t, a, compID, nil)
	if err := a.CompleteAudit(compID, nil); err != nil {
		t.Fatal(err)
	}

	summary := a.Summary()
	if summary.TotalAudits != 2 || summary.CompletedAudits != 1 {
		t.Errorf("summary totals = %d/%d, want 2/1", summary.TotalAudits, summary.CompletedAudits)
	}
	if summary.AuditsByType["compliance_audit"] != 1 || summary.AuditsByType["risk_assessment"] != 1 {
		t.Errorf("AuditsByType = %v", summary.AuditsByType)
	}

	status := a.ComplianceStatus()
	if status["status"] != "compliant" {
		t.Errorf("compliance status = %v, want compliant", status["status"])
	}
	if status["total_findings"] != 0 {
		t.Errorf("total_findings = %v, want 0", status["total_findings"])
	}
}
