package ledger

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/one-front/airesume/pkg/models"
)

func newTestCertificationLedger(t *testing.T) CertificationLedger {
	t.Helper()
	l := NewCertificationLedger(t.TempDir())
	if err := l.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return l
}

// seedCatalog mirrors the document dossier the ledger creates on first use.
const seedCatalog = `
- id: DOC-001
  type: technical_documentation
  evidence: technical_specification
- id: DOC-002
  type: conformity_assessment
  evidence: assessment_report
- id: DOC-003
  type: risk_assessment
  evidence: risk_analysis
- id: DOC-004
  type: data_governance
  evidence: governance_procedures
- id: DOC-005
  type: audit_reports
  evidence: audit_evidence
- id: DOC-006
  type: declaration_of_conformity
  evidence: legal_declaration
`

func TestCertificationSeedCatalog(t *testing.T) {
	l := newTestCertificationLedger(t)

	var want []struct {
		ID       string `yaml:"id"`
		Type     string `yaml:"type"`
		Evidence string `yaml:"evidence"`
	}
	if err := yaml.Unmarshal([]byte(seedCatalog), &want); err != nil {
		t.Fatalf("unmarshal catalog: %v", err)
	}

	for _, w := range want {
		d, ok := l.Document(w.ID)
		if !ok {
			t.Fatalf("seed document %s missing", w.ID)
		}
		if string(d.DocumentType) != w.Type {
			t.Errorf("%s: document type = %q, want %q", w.ID, d.DocumentType, w.Type)
		}
		if d.EvidenceType != w.Evidence {
			t.Errorf("%s: evidence type = %q, want %q", w.ID, d.EvidenceType, w.Evidence)
		}
		if d.Status != models.DocStatusDraft {
			t.Errorf("%s: status = %q, want draft", w.ID, d.Status)
		}
		if !d.Required || d.Version != "1.0" {
			t.Errorf("%s: required = %v, version = %q", w.ID, d.Required, d.Version)
		}
	}
}

func TestBumpVersion(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1.0", "1.1"},
		{"1.1", "1.2"},
		{"1.9", "2.0"},
		{"2.3", "2.4"},
		{"draft", "1.1"},
		{"", "1.1"},
	}
	for _, tt := range tests {
		if got := bumpVersion(tt.in); got != tt.want {
			t.Errorf("bumpVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUpdateDocumentVersioning(t *testing.T) {
	l := newTestCertificationLedger(t)

	if err := l.UpdateDocument("DOC-001", "architecture overview", ""); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	d, _ := l.Document("DOC-001")
	if d.Version != "1.1" {
		t.Errorf("auto-bumped version = %q, want 1.1", d.Version)
	}
	if d.Content != "architecture overview" {
		t.Errorf("content = %q", d.Content)
	}

	if err := l.UpdateDocument("DOC-001", "revised", "3.0"); err != nil {
		t.Fatalf("UpdateDocument explicit version: %v", err)
	}
	d, _ = l.Document("DOC-001")
	if d.Version != "3.0" {
		t.Errorf("explicit version = %q, want 3.0", d.Version)
	}

	if err := l.UpdateDocument("DOC-999", "x", ""); err == nil {
		t.Error("expected error for unknown document")
	}
}

func TestDocumentReviewFlow(t *testing.T) {
	l := newTestCertificationLedger(t)

	if err := l.SubmitForReview("DOC-002"); err != nil {
		t.Fatalf("SubmitForReview: %v", err)
	}
	d, _ := l.Document("DOC-002")
	if d.Status != models.DocStatusReview {
		t.Errorf("status = %q, want review", d.Status)
	}

	if err := l.ApproveDocument("DOC-002"); err != nil {
		t.Fatalf("ApproveDocument: %v", err)
	}
	d, _ = l.Document("DOC-002")
	if d.Status != models.DocStatusApproved {
		t.Errorf("status = %q, want approved", d.Status)
	}
}

func approveAllDocuments(t *testing.T, l CertificationLedger) {
	t.Helper()
	for _, id := range []string{"DOC-001", "DOC-002", "DOC-003", "DOC-004", "DOC-005", "DOC-006"} {
		if err := l.UpdateDocument(id, "evidence body for "+id, ""); err != nil {
			t.Fatalf("UpdateDocument %s: %v", id, err)
		}
		if err := l.ApproveDocument(id); err != nil {
			t.Fatalf("ApproveDocument %s: %v", id, err)
		}
	}
}

func TestSubmitApplicationGate(t *testing.T) {
	l := newTestCertificationLedger(t)

	appID, err := l.CreateApplication(models.CertCEMarking, "One Front GmbH", "EU Notified Body 1234", map[string]string{
		"email": "compliance@example.com",
	})
	if err != nil {
		t.Fatalf("CreateApplication: %v", err)
	}

	app, ok := l.Application(appID)
	if !ok {
		t.Fatal("application not found")
	}
	if app.Status != models.CertStatusPreparing {
		t.Errorf("status = %q, want preparing", app.Status)
	}
	if len(app.DocumentIDs) != 6 {
		t.Errorf("document refs = %d, want 6", len(app.DocumentIDs))
	}

	// Blocked while documents are still drafts.
	if err := l.SubmitApplication(appID); err == nil {
		t.Fatal("expected submission to fail with unapproved documents")
	}

	approveAllDocuments(t, l)

	if err := l.SubmitApplication(appID); err != nil {
		t.Fatalf("SubmitApplication: %v", err)
	}
	app, _ = l.Application(appID)
	if app.Status != models.CertStatusSubmitted {
		t.Errorf("status = %q, want submitted", app.Status)
	}

	// A submitted application cannot be submitted again.
	if err := l.SubmitApplication(appID); err == nil {
		t.Error("expected resubmission to fail")
	}
}

func TestCertificationReadiness(t *testing.T) {
	l := newTestCertificationLedger(t)

	r := l.Readiness()
	if r.TotalRequiredDocuments != 6 || r.ApprovedDocuments != 0 {
		t.Fatalf("readiness = %d/%d approved", r.ApprovedDocuments, r.TotalRequiredDocuments)
	}
	if r.ReadyForSubmission || r.ReadinessPercentage != 0 {
		t.Errorf("fresh ledger should not be ready: %+v", r)
	}
	if len(r.MissingDocuments) != 6 {
		t.Errorf("missing = %d, want 6", len(r.MissingDocuments))
	}

	if err := l.ApproveDocument("DOC-001"); err != nil {
		t.Fatal(err)
	}
	if err := l.ApproveDocument("DOC-003"); err != nil {
		t.Fatal(err)
	}

	r = l.Readiness()
	if r.ApprovedDocuments != 2 {
		t.Errorf("approved = %d, want 2", r.ApprovedDocuments)
	}
	if want := 2.0 / 6.0 * 100; r.ReadinessPercentage != want {
		t.Errorf("percentage = %v, want %v", r.ReadinessPercentage, want)
	}
	state, ok := r.DocumentStatus["technical_documentation"]
	if !ok || state.Status != models.DocStatusApproved {
		t.Errorf("technical_documentation state = %+v", state)
	}

	approveAllDocuments(t, l)
	r = l.Readiness()
	if !r.ReadyForSubmission || r.ReadinessPercentage != 100 {
		t.Errorf("fully approved dossier should be ready: %+v", r)
	}
}

func TestCertificationPackage(t *testing.T) {
	l := newTestCertificationLedger(t)
	approveAllDocuments(t, l)

	appID, err := l.CreateApplication(models.CertConformityAssessment, "One Front GmbH", "EU Notified Body 1234", nil)
	if err != nil {
		t.Fatal(err)
	}

	pkg, err := l.Package(appID)
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	info, ok := pkg["application_info"].(map[string]any)
	if !ok {
		t.Fatal("missing application_info")
	}
	if info["type"] != "conformity_assessment" {
		t.Errorf("type = %v", info["type"])
	}
	docs, ok := pkg["documents"].([]map[string]any)
	if !ok || len(docs) != 6 {
		t.Fatalf("documents = %v", pkg["documents"])
	}
	if docs[0]["content"] != "evidence body for DOC-001" {
		t.Errorf("document content = %v", docs[0]["content"])
	}

	if _, err := l.Package("missing"); err == nil {
		t.Error("expected error for unknown application")
	}
}

func TestCertificationSummary(t *testing.T) {
	l := newTestCertificationLedger(t)

	if _, err := l.CreateApplication(models.CertSelfDeclaration, "One Front GmbH", "Internal", nil); err != nil {
		t.Fatal(err)
	}

	s := l.Summary()
	if s["total_applications"] != 1 || s["total_documents"] != 6 {
		t.Errorf("totals = %v / %v", s["total_applications"], s["total_documents"])
	}
	byStatus := s["applications_by_status"].(map[string]int)
	if byStatus["preparing"] != 1 {
		t.Errorf("applications_by_status = %v", byStatus)
	}
	latest, ok := s["latest_application"].(map[string]any)
	if !ok || latest["type"] != "self_declaration" {
		t.Errorf("latest_application = %v", s["latest_application"])
	}
}

func TestCertificationPersistence(t *testing.T) {
	dir := t.TempDir()

	l := NewCertificationLedger(dir)
	if err := l.Load(); err != nil {
		t.Fatal(err)
	}
	if err := l.ApproveDocument("DOC-001"); err != nil {
		t.Fatal(err)
	}

	reopened := NewCertificationLedger(dir)
	if err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	d, ok := reopened.Document("DOC-001")
	if !ok || d.Status != models.DocStatusApproved {
		t.Errorf("reopened DOC-001 = %+v", d)
	}
	// Reopening must not reseed the dossier.
	if got := reopened.Readiness().TotalRequiredDocuments; got != 6 {
		t.Errorf("documents after reopen = %d, want 6", got)
	}
}
