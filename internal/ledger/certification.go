package ledger

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/one-front/airesume/internal/store"
	"github.com/one-front/airesume/pkg/models"
)

// CertificationLedger assembles the certification dossier and tracks
// applications through submission.
type CertificationLedger interface {
	CreateApplication(certType models.CertificationType, applicant, regulatoryBody string, contact map[string]string) (string, error)
	UpdateDocument(documentID, content, version string) error
	SubmitForReview(documentID string) error
	ApproveDocument(documentID string) error
	SubmitApplication(applicationID string) error
	Application(applicationID string) (models.CertificationApplication, bool)
	Document(documentID string) (models.CertificationDocument, bool)
	Readiness() models.CertificationReadiness
	Package(applicationID string) (map[string]any, error)
	Summary() map[string]any

	Load() error
	Save() error
}

type certificationDoc struct {
	Applications store.Collection[models.CertificationApplication] `json:"applications"`
	Documents    store.Collection[models.CertificationDocument]    `json:"documents"`
	LastUpdated  string                                            `json:"last_updated"`
}

type fileCertificationLedger struct {
	path string
	doc  certificationDoc
	now  func() string
}

// NewCertificationLedger returns a ledger persisting to
// data/certification_preparation.json under basePath.
func NewCertificationLedger(basePath string) CertificationLedger {
	return &fileCertificationLedger{
		path: filepath.Join(basePath, "data", "certification_preparation.json"),
		now:  timestamp,
	}
}

func (l *fileCertificationLedger) Load() error {
	if err := store.Load(l.path, &l.doc); err != nil {
		return fmt.Errorf("loading certification ledger: %w", err)
	}
	if l.doc.Documents.Len() == 0 {
		l.seedDocuments()
		return l.Save()
	}
	return nil
}

func (l *fileCertificationLedger) Save() error {
	l.doc.LastUpdated = l.now()
	if err := store.Save(l.path, &l.doc); err != nil {
		return fmt.Errorf("saving certification ledger: %w", err)
	}
	return nil
}

func (l *fileCertificationLedger) seedDocuments() {
	now := l.now()
	seed := func(id string, docType models.DocumentType, title, description, evidenceType string) {
		l.doc.Documents.Append(models.CertificationDocument{
			ID:           id,
			DocumentType: docType,
			Title:        title,
			Description:  description,
			Version:      "1.0",
			CreatedDate:  now,
			LastUpdated:  now,
			Status:       models.DocStatusDraft,
			Required:     true,
			EvidenceType: evidenceType,
		})
	}

	seed("DOC-001", models.DocTechnicalDocumentation, "Technical Documentation",
		"Complete technical documentation of the AI system including architecture, algorithms, and training data",
		"technical_specification")
	seed("DOC-002", models.DocConformityAssessment, "Conformity Assessment Report",
		"Comprehensive conformity assessment report demonstrating compliance with AI Act requirements",
		"assessment_report")
	seed("DOC-003", models.DocRiskAssessment, "Risk Assessment Report",
		"Detailed risk assessment report including identified risks and mitigation measures",
		"risk_analysis")
	seed("DOC-004", models.DocDataGovernance, "Data Governance Documentation",
		"Data governance procedures and quality management documentation",
		"governance_procedures")
	seed("DOC-005", models.DocAuditReports, "Audit Reports",
		"Comprehensive audit reports demonstrating ongoing compliance monitoring",
		"audit_evidence")
	seed("DOC-006", models.DocDeclarationOfConformity, "Declaration of Conformity",
		"Official declaration of conformity with EU AI Act requirements",
		"legal_declaration")
}

func (l *fileCertificationLedger) CreateApplication(certType models.CertificationType, applicant, regulatoryBody string, contact map[string]string) (string, error) {
	if contact == nil {
		contact = map[string]string{}
	}

	var docIDs []string
	for _, d := range l.doc.Documents.Items() {
		if d.Required {
			docIDs = append(docIDs, d.ID)
		}
	}

	app := models.CertificationApplication{
		ID:                 uuid.NewString(),
		CertificationType:  certType,
		ApplicationDate:    l.now(),
		Applicant:          applicant,
		Status:             models.CertStatusPreparing,
		DocumentIDs:        docIDs,
		ReviewNotes:        []string{},
		RegulatoryBody:     regulatoryBody,
		ContactInformation: contact,
	}
	l.doc.Applications.Append(app)

	return app.ID, l.Save()
}

// bumpVersion raises the minor part of a numeric version string. Versions
// that do not parse as numbers reset to "1.1".
func bumpVersion(version string) string {
	v, err := strconv.ParseFloat(version, 64)
	if err != nil {
		return "1.1"
	}
	return strconv.FormatFloat(v+0.1, 'f', 1, 64)
}

func (l *fileCertificationLedger) UpdateDocument(documentID, content, version string) error {
	ok := l.doc.Documents.Update(documentID, func(d *models.CertificationDocument) {
		d.Content = content
		d.LastUpdated = l.now()
		if version != "" {
			d.Version = version
		} else {
			d.Version = bumpVersion(d.Version)
		}
	})
	if !ok {
		return fmt.Errorf("updating document: %q not found", documentID)
	}
	return l.Save()
}

func (l *fileCertificationLedger) SubmitForReview(documentID string) error {
	return l.setDocumentStatus(documentID, models.DocStatusReview)
}

func (l *fileCertificationLedger) ApproveDocument(documentID string) error {
	return l.setDocumentStatus(documentID, models.DocStatusApproved)
}

func (l *fileCertificationLedger) setDocumentStatus(documentID string, status models.DocumentStatus) error {
	ok := l.doc.Documents.Update(documentID, func(d *models.CertificationDocument) {
		d.Status = status
		d.LastUpdated = l.now()
	})
	if !ok {
		return fmt.Errorf("setting document status: %q not found", documentID)
	}
	return l.Save()
}

func (l *fileCertificationLedger) SubmitApplication(applicationID string) error {
	app, ok := l.doc.Applications.Get(applicationID)
	if !ok {
		return fmt.Errorf("submitting application: %q not found", applicationID)
	}
	if app.Status != models.CertStatusPreparing {
		return fmt.Errorf("submitting application %s: status is %q, want %q", applicationID, app.Status, models.CertStatusPreparing)
	}
	for _, id := range app.DocumentIDs {
		d, found := l.doc.Documents.Get(id)
		if !found || (d.Required && d.Status != models.DocStatusApproved) {
			return fmt.Errorf("submitting application %s: document %s is not approved", applicationID, id)
		}
	}
	l.doc.Applications.Update(applicationID, func(a *models.CertificationApplication) {
		a.Status = models.CertStatusSubmitted
	})
	return l.Save()
}

func (l *fileCertificationLedger) Application(applicationID string) (models.CertificationApplication, bool) {
	return l.doc.Applications.Get(applicationID)
}

func (l *fileCertificationLedger) Document(documentID string) (models.CertificationDocument, bool) {
	return l.doc.Documents.Get(documentID)
}

func (l *fileCertificationLedger) Readiness() models.CertificationReadiness {
	var required []models.CertificationDocument
	for _, d := range l.doc.Documents.Items() {
		if d.Required {
			required = append(required, d)
		}
	}

	status := make(map[string]models.DocumentState, len(required))
	approved := 0
	var missing []string
	for _, d := range required {
		status[string(d.DocumentType)] = models.DocumentState{
			Status:      d.Status,
			Version:     d.Version,
			LastUpdated: d.LastUpdated,
			HasContent:  d.Content != "",
		}
		if d.Status == models.DocStatusApproved {
			approved++
		} else {
			missing = append(missing, string(d.DocumentType))
		}
	}

	var pct float64
	if len(required) > 0 {
		pct = float64(approved) / float64(len(required)) * 100
	}

	return models.CertificationReadiness{
		ReadinessPercentage:    pct,
		ReadyForSubmission:     len(missing) == 0 && len(required) > 0,
		TotalRequiredDocuments: len(required),
		ApprovedDocuments:      approved,
		DocumentStatus:         status,
		MissingDocuments:       missing,
	}
}

func (l *fileCertificationLedger) Package(applicationID string) (map[string]any, error) {
	app, ok := l.doc.Applications.Get(applicationID)
	if !ok {
		return nil, fmt.Errorf("generating certification package: application %q not found", applicationID)
	}

	documents := make([]map[string]any, 0, len(app.DocumentIDs))
	for _, id := range app.DocumentIDs {
		d, found := l.doc.Documents.Get(id)
		if !found {
			continue
		}
		documents = append(documents, map[string]any{
			"id":            d.ID,
			"type":          string(d.DocumentType),
			"title":         d.Title,
			"description":   d.Description,
			"version":       d.Version,
			"status":        string(d.Status),
			"content":       d.Content,
			"evidence_type": d.EvidenceType,
		})
	}

	return map[string]any{
		"application_info": map[string]any{
			"id":               app.ID,
			"type":             string(app.CertificationType),
			"applicant":        app.Applicant,
			"regulatory_body":  app.RegulatoryBody,
			"application_date": app.ApplicationDate,
			"status":           string(app.Status),
		},
		"documents":           documents,
		"contact_information": app.ContactInformation,
		"generated_at":        l.now(),
	}, nil
}

func (l *fileCertificationLedger) Summary() map[string]any {
	apps := l.doc.Applications.Items()

	appStatus := map[string]int{}
	for _, a := range apps {
		appStatus[string(a.Status)]++
	}
	docStatus := map[string]int{}
	for _, d := range l.doc.Documents.Items() {
		docStatus[string(d.Status)]++
	}

	var latest map[string]any
	if len(apps) > 0 {
		sorted := make([]models.CertificationApplication, len(apps))
		copy(sorted, apps)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].ApplicationDate > sorted[j].ApplicationDate
		})
		latest = map[string]any{
			"id":     sorted[0].ID,
			"type":   string(sorted[0].CertificationType),
			"date":   sorted[0].ApplicationDate,
			"status": string(sorted[0].Status),
		}
	}

	return map[string]any{
		"total_applications":      len(apps),
		"total_documents":         l.doc.Documents.Len(),
		"applications_by_status":  appStatus,
		"documents_by_status":     docStatus,
		"latest_application":      latest,
		"certification_readiness": l.Readiness(),
	}
}
