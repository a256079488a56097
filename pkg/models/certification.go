package models

// CertificationType names the certification route being pursued.
type CertificationType string

const (
	CertCEMarking            CertificationType = "ce_marking"
	CertConformityAssessment CertificationType = "conformity_assessment"
	CertThirdParty           CertificationType = "third_party_certification"
	CertSelfDeclaration      CertificationType = "self_declaration"
)

// CertificationStatus is the lifecycle state of an application.
type CertificationStatus string

const (
	CertStatusPreparing   CertificationStatus = "preparing"
	CertStatusSubmitted   CertificationStatus = "submitted"
	CertStatusUnderReview CertificationStatus = "under_review"
	CertStatusApproved    CertificationStatus = "approved"
	CertStatusRejected    CertificationStatus = "rejected"
	CertStatusExpired     CertificationStatus = "expired"
)

// DocumentType classifies a certification document.
type DocumentType string

const (
	DocTechnicalDocumentation  DocumentType = "technical_documentation"
	DocConformityAssessment    DocumentType = "conformity_assessment"
	DocRiskAssessment          DocumentType = "risk_assessment"
	DocDataGovernance          DocumentType = "data_governance"
	DocAuditReports            DocumentType = "audit_reports"
	DocComplianceEvidence      DocumentType = "compliance_evidence"
	DocUserManual              DocumentType = "user_manual"
	DocDeclarationOfConformity DocumentType = "declaration_of_conformity"
)

// DocumentStatus is the review state of a certification document.
type DocumentStatus string

const (
	DocStatusDraft     DocumentStatus = "draft"
	DocStatusReview    DocumentStatus = "review"
	DocStatusApproved  DocumentStatus = "approved"
	DocStatusSubmitted DocumentStatus = "submitted"
)

// CertificationDocument is one document in the certification dossier.
type CertificationDocument struct {
	ID           string         `json:"id"`
	DocumentType DocumentType   `json:"document_type"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	FilePath     string         `json:"file_path,omitempty"`
	Content      string         `json:"content,omitempty"`
	Version      string         `json:"version"`
	CreatedDate  string         `json:"created_date"`
	LastUpdated  string         `json:"last_updated"`
	Status       DocumentStatus `json:"status"`
	Required     bool           `json:"required"`
	EvidenceType string         `json:"evidence_type"`
}

// RecordID implements store.Record.
func (d CertificationDocument) RecordID() string { return d.ID }

// CertificationApplication is one certification submission and its
// document references.
type CertificationApplication struct {
	ID                 string              `json:"id"`
	CertificationType  CertificationType   `json:"certification_type"`
	ApplicationDate    string              `json:"application_date"`
	Applicant          string              `json:"applicant"`
	Status             CertificationStatus `json:"status"`
	DocumentIDs        []string            `json:"document_ids"`
	ReviewNotes        []string            `json:"review_notes"`
	ApprovalDate       string              `json:"approval_date,omitempty"`
	ExpiryDate         string              `json:"expiry_date,omitempty"`
	CertificateNumber  string              `json:"certificate_number,omitempty"`
	RegulatoryBody     string              `json:"regulatory_body"`
	ContactInformation map[string]string   `json:"contact_information"`
}

// RecordID implements store.Record.
func (a CertificationApplication) RecordID() string { return a.ID }

// CertificationReadiness reports how far the required dossier is from
// submission.
type CertificationReadiness struct {
	ReadinessPercentage    float64                  `json:"readiness_percentage"`
	ReadyForSubmission     bool                     `json:"ready_for_submission"`
	TotalRequiredDocuments int                      `json:"total_required_documents"`
	ApprovedDocuments      int                      `json:"approved_documents"`
	DocumentStatus         map[string]DocumentState `json:"document_status"`
	MissingDocuments       []string                 `json:"missing_documents"`
}

// DocumentState is the readiness view of one required document.
type DocumentState struct {
	Status      DocumentStatus `json:"status"`
	Version     string         `json:"version"`
	LastUpdated string         `json:"last_updated"`
	HasContent  bool           `json:"has_content"`
}
