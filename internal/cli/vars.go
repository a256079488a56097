package cli

import (
	"github.com/one-front/airesume/internal/gist"
	"github.com/one-front/airesume/internal/ledger"
	"github.com/one-front/airesume/internal/llm"
	"github.com/one-front/airesume/internal/observability"
	"github.com/one-front/airesume/internal/resume"
	"github.com/one-front/airesume/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath string
	Config   *models.AppConfig

	Dispatcher   *llm.Dispatcher
	Resume       resume.Service
	ResumeSource string

	Risks         ledger.RiskRegister
	Records       ledger.RecordKeeper
	Governance    ledger.GovernanceLedger
	Audits        ledger.AuditLedger
	Assessments   ledger.AssessmentLedger
	Validations   ledger.ValidationLedger
	Certification ledger.CertificationLedger
	Monitor       ledger.ComplianceMonitor
	Analytics     ledger.PerformanceAnalytics

	GistUploader *gist.Uploader
)

// Observability service instances, set during app initialization in app.go.
var (
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
)
