// Package internal provides the App struct that wires all components of
// the AI Resume system together and initializes the CLI layer.
package internal

import (
	"context"
	"os"
	"path/filepath"

	"github.com/one-front/airesume/internal/chat"
	"github.com/one-front/airesume/internal/cli"
	"github.com/one-front/airesume/internal/config"
	"github.com/one-front/airesume/internal/gist"
	"github.com/one-front/airesume/internal/ledger"
	"github.com/one-front/airesume/internal/llm"
	"github.com/one-front/airesume/internal/observability"
	"github.com/one-front/airesume/internal/resume"
	"github.com/one-front/airesume/pkg/models"
)

// App holds all service dependencies for the AI Resume system.
type App struct {
	BasePath string
	Config   *models.AppConfig

	// Chat pipeline
	Dispatcher   *llm.Dispatcher
	Resume       resume.Service
	ResumeSource string
	Controller   *chat.Controller

	// Compliance ledgers
	Risks         ledger.RiskRegister
	Records       ledger.RecordKeeper
	Governance    ledger.GovernanceLedger
	Audits        ledger.AuditLedger
	Assessments   ledger.AssessmentLedger
	Validations   ledger.ValidationLedger
	Certification ledger.CertificationLedger
	Monitor       ledger.ComplianceMonitor
	Analytics     ledger.PerformanceAnalytics

	// Publishing
	GistUploader *gist.Uploader

	// Observability
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
}

// NewApp creates and wires all components of the AI Resume system.
// basePath is the root directory where the data directory lives.
func NewApp(ctx context.Context, basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	loader := config.NewLoader(basePath)
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := loader.Validate(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".airesume_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable observability if the log can't be created.
		app.EventLog = nil
	}
	if app.EventLog != nil {
		app.AlertEngine = observability.NewAlertEngine(app.EventLog, observability.DefaultAlertThresholds())
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}
	if cfg.SlackWebhookURL != "" {
		app.Notifier = observability.NewSlackNotifier(cfg.SlackWebhookURL, nil)
	}

	// --- Compliance ledgers ---
	app.Risks = ledger.NewRiskRegister(basePath)
	app.Records = ledger.NewRecordKeeper(basePath)
	app.Governance = ledger.NewGovernanceLedger(basePath)
	app.Audits = ledger.NewAuditLedger(basePath)
	app.Assessments = ledger.NewAssessmentLedger(basePath)
	app.Validations = ledger.NewValidationLedger(basePath)
	app.Certification = ledger.NewCertificationLedger(basePath)
	app.Monitor = ledger.NewComplianceMonitor(basePath)
	app.Analytics = ledger.NewPerformanceAnalytics(basePath)

	for name, l := range map[string]interface{ Load() error }{
		"risk register":        app.Risks,
		"record keeper":        app.Records,
		"governance ledger":    app.Governance,
		"audit ledger":         app.Audits,
		"assessment ledger":    app.Assessments,
		"validation ledger":    app.Validations,
		"certification ledger": app.Certification,
		"compliance monitor":   app.Monitor,
		"analytics":            app.Analytics,
	} {
		if loadErr := l.Load(); loadErr != nil {
			app.logEvent("ERROR", observability.EventPersistFailed, name+" load failed",
				map[string]any{"error": loadErr.Error()})
		}
	}

	// Raised compliance alerts also land in the event log.
	app.Monitor.OnAlert(func(alert models.ComplianceAlert) {
		app.logEvent("WARN", observability.EventAlertRaised, alert.Title, map[string]any{
			"alert_id": alert.ID,
			"level":    string(alert.Level),
			"metric":   string(alert.MetricType),
		})
	})

	// --- Chat pipeline ---
	dispatcherOpts := []llm.Option{}
	if cfg.Ollama.BaseURL != "" {
		dispatcherOpts = append(dispatcherOpts, llm.WithOllamaURL(cfg.Ollama.BaseURL))
	}
	app.Dispatcher = llm.New(dispatcherOpts...)

	resumeOpts := []resume.LoaderOption{}
	if cfg.ResumeGistURL != "" {
		resumeOpts = append(resumeOpts, resume.WithGistURL(cfg.ResumeGistURL))
	}
	app.Resume, app.ResumeSource = resume.NewLoader(basePath, resumeOpts...).Load(ctx)
	app.logEvent("INFO", observability.EventResumeLoaded, "resume loaded",
		map[string]any{"source": app.ResumeSource})

	app.Controller = chat.NewController(app.Dispatcher, app.Resume, app.Records, app.EventLog, cfg.UserID)
	app.logEvent("INFO", observability.EventSessionStart, "session started",
		map[string]any{"session_id": app.Controller.SessionID()})

	// --- Publishing ---
	if cfg.GitHubToken != "" {
		app.GistUploader = gist.NewUploader(gist.NewClient(cfg.GitHubToken), basePath)
	}

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = cfg
	cli.Dispatcher = app.Dispatcher
	cli.Resume = app.Resume
	cli.ResumeSource = app.ResumeSource
	cli.Risks = app.Risks
	cli.Records = app.Records
	cli.Governance = app.Governance
	cli.Audits = app.Audits
	cli.Assessments = app.Assessments
	cli.Validations = app.Validations
	cli.Certification = app.Certification
	cli.Monitor = app.Monitor
	cli.Analytics = app.Analytics
	cli.GistUploader = app.GistUploader

	cli.EventLog = app.EventLog
	cli.AlertEngine = app.AlertEngine
	cli.MetricsCalc = app.MetricsCalc
	cli.Notifier = app.Notifier

	return app, nil
}

// logEvent writes to the event log when one is configured.
func (a *App) logEvent(level, eventType, message string, data map[string]any) {
	if a.EventLog == nil {
		return
	}
	_ = a.EventLog.Write(observability.Event{
		Level:   level,
		Type:    eventType,
		Message: message,
		Data:    data,
	})
}

// Close releases resources held by the App, such as the event log file
// handle. It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base path for the AI Resume data
// directory. It checks the AIRESUME_HOME env var, then walks up looking
// for a directory containing .airesume.yaml, then falls back to cwd.
func ResolveBasePath() string {
	if home := os.Getenv("AIRESUME_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".airesume.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}
