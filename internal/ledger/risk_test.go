package ledger

import (
	"testing"

	"github.com/one-front/airesume/pkg/models"
)

func newTestRiskRegister(t *testing.T) RiskRegister {
	t.Helper()
	r := NewRiskRegister(t.TempDir())
	if err := r.Load(); err != nil {
		t.Fatalf("loading risk register: %v", err)
	}
	return r
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name       string
		impact     string
		likelihood string
		want       models.RiskLevel
	}{
		{"critical impact high likelihood", "severe regulatory penalties", "high chance of recurrence", models.RiskLevelCritical},
		{"critical impact medium likelihood", "critical data loss", "occasional during peak load", models.RiskLevelCritical},
		{"high impact high likelihood", "significant reputational damage", "frequent in production", models.RiskLevelCritical},
		{"high impact medium likelihood", "high cost to remediate", "medium probability", models.RiskLevelHigh},
		{"high impact low likelihood", "significant user harm", "rare edge case", models.RiskLevelHigh},
		{"medium impact medium likelihood", "moderate service disruption", "occasional", models.RiskLevelHigh},
		{"medium impact low likelihood", "medium inconvenience", "low likelihood", models.RiskLevelMedium},
		{"minor impact low likelihood", "negligible", "rare", models.RiskLevelMedium},
		{"minor impact unknown likelihood", "cosmetic only", "unknown", models.RiskLevelLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRisk(tt.impact, tt.likelihood); got != tt.want {
				t.Errorf("ClassifyRisk(%q, %q) = %q, want %q", tt.impact, tt.likelihood, got, tt.want)
			}
		})
	}
}

func TestRiskRegisterSeedsDefaults(t *testing.T) {
	r := newTestRiskRegister(t)

	summary := r.Summary()
	if summary.TotalRisks != 5 {
		t.Fatalf("expected 5 seeded risks, got %d", summary.TotalRisks)
	}
	risk, ok := r.Risk("RISK-003")
	if !ok {
		t.Fatal("seeded RISK-003 not found")
	}
	if risk.Category != models.RiskCategoryPrivacy || risk.Level != models.RiskLevelHigh {
		t.Errorf("RISK-003 = %s/%s, want privacy/high", risk.Category, risk.Level)
	}
}

func TestRiskRegisterSeedsOnlyWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	r := NewRiskRegister(dir)
	if err := r.Load(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.IdentifyRisk(models.RiskCategorySecurity, "token leakage", "high impact", "rare", nil, ""); err != nil {
		t.Fatal(err)
	}

	reopened := NewRiskRegister(dir)
	if err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	if got := reopened.Summary().TotalRisks; got != 6 {
		t.Errorf("reopened register has %d risks, want 6 (no reseeding)", got)
	}
}

func TestIdentifyRiskAssignsSequentialIDs(t *testing.T) {
	r := newTestRiskRegister(t)

	id, err := r.IdentifyRisk(models.RiskCategorySecurity, "credential exposure in logs",
		"high impact on trust", "low likelihood", []string{"log redaction"}, "")
	if err != nil {
		t.Fatalf("IdentifyRisk: %v", err)
	}
	if id != "RISK-006" {
		t.Errorf("assigned ID %q, want RISK-006 after 5 seeded risks", id)
	}
	risk, _ := r.Risk(id)
	if risk.Level != models.RiskLevelHigh {
		t.Errorf("derived level %q, want high", risk.Level)
	}
	if risk.Owner != "Compliance Team" {
		t.Errorf("default owner %q, want Compliance Team", risk.Owner)
	}
}

func TestAssessRiskTracksPreviousLevel(t *testing.T) {
	r := newTestRiskRegister(t)

	if err := r.AssessRisk("RISK-001", "auditor", models.RiskLevelLow, "effective", "mitigations verified"); err != nil {
		t.Fatalf("AssessRisk: %v", err)
	}
	risk, _ := r.Risk("RISK-001")
	if risk.Level != models.RiskLevelLow {
		t.Errorf("level after assessment %q, want low", risk.Level)
	}
	summary := r.Summary()
	if summary.TotalAssessments != 1 {
		t.Errorf("TotalAssessments = %d, want 1", summary.TotalAssessments)
	}
	if summary.LastAssessment == "" {
		t.Error("LastAssessment should be set after an assessment")
	}

	if err := r.AssessRisk("RISK-999", "auditor", models.RiskLevelLow, "", ""); err == nil {
		t.Error("expected error assessing unknown risk")
	}
}

func TestUpdateStatus(t *testing.T) {
	r := newTestRiskRegister(t)

	if err := r.UpdateStatus("RISK-002", models.RiskStatusMonitored); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	risk, _ := r.Risk("RISK-002")
	if risk.Status != models.RiskStatusMonitored {
		t.Errorf("status %q, want monitored", risk.Status)
	}
	if err := r.UpdateStatus("RISK-999", models.RiskStatusMitigated); err == nil {
		t.Error("expected error for unknown risk")
	}
}

func TestHighPriorityRisksOrdering(t *testing.T) {
	r := newTestRiskRegister(t)

	// Seed catalog has one high risk; add a critical one.
	if _, err := r.IdentifyRisk(models.RiskCategorySecurity, "unpatched dependency",
		"critical outage", "frequent exploitation attempts", nil, ""); err != nil {
		t.Fatal(err)
	}

	high := r.HighPriorityRisks()
	if len(high) != 2 {
		t.Fatalf("expected 2 high-priority risks, got %d", len(high))
	}
	if high[0].Level != models.RiskLevelCritical {
		t.Errorf("first entry level %q, want critical first", high[0].Level)
	}
}

func TestRiskSummaryPartitionsTotals(t *testing.T) {
	r := newTestRiskRegister(t)
	summary := r.Summary()

	byLevel := 0
	for _, n := range summary.RisksByLevel {
		byLevel += n
	}
	byStatus := 0
	for _, n := range summary.RisksByStatus {
		byStatus += n
	}
	if byLevel != summary.TotalRisks || byStatus != summary.TotalRisks {
		t.Errorf("level/status counts (%d/%d) do not partition total %d", byLevel, byStatus, summary.TotalRisks)
	}
}
