package ledger

import (
	"errors"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/one-front/airesume/internal/store"
	"github.com/one-front/airesume/pkg/models"
)

// Records are kept for at least ten years.
const retentionPeriodDays = 3650

// RecordKeeper manages the system-record and audit-trail ledgers. Every
// logged operation also produces an audit-trail entry.
type RecordKeeper interface {
	LogOperation(op models.SystemRecord) (string, error)
	LogInteraction(userID, sessionID, query, response, model string, processingMS int, confidence *float64) (string, error)
	LogOversight(userID, recordID, action, reviewResult, notes string) (string, error)
	LogIncident(incidentType, description, severity, userID string, affected []string) (string, error)
	AddAuditTrail(trail models.AuditTrail) (string, error)
	Record(recordID string) (*models.SystemRecord, bool)
	RecordsByType(recordType models.RecordType) []models.SystemRecord
	InteractionHistory(userID string, limit int) []models.SystemRecord
	AuditTrails(resource string) []models.AuditTrail
	ArchiveOldRecords(olderThanDays int) (int, error)
	Summary() models.RecordKeepingSummary
	Load() error
}

type recordsDocument struct {
	Records     store.Collection[models.SystemRecord] `json:"records"`
	LastUpdated string                                `json:"last_updated"`
}

type auditDocument struct {
	AuditTrails store.Collection[models.AuditTrail] `json:"audit_trails"`
	LastUpdated string                              `json:"last_updated"`
}

type fileRecordKeeper struct {
	recordsPath string
	auditPath   string
	records     recordsDocument
	audit       auditDocument
	now         func() string
	newID       func() string
}

// NewRecordKeeper creates a RecordKeeper backed by data/system_records.json
// and data/audit_trails.json under the given base directory.
func NewRecordKeeper(basePath string) RecordKeeper {
	return &fileRecordKeeper{
		recordsPath: filepath.Join(basePath, "data", "system_records.json"),
		auditPath:   filepath.Join(basePath, "data", "audit_trails.json"),
		now:         timestamp,
		newID:       uuid.NewString,
	}
}

// Load reads both ledgers from disk. Missing files start empty.
func (k *fileRecordKeeper) Load() error {
	err := store.Load(k.recordsPath, &k.records)
	if auditErr := store.Load(k.auditPath, &k.audit); auditErr != nil {
		err = errors.Join(err, auditErr)
	}
	return err
}

func (k *fileRecordKeeper) saveRecords() error {
	k.records.LastUpdated = k.now()
	return store.Save(k.recordsPath, &k.records)
}

func (k *fileRecordKeeper) saveAudit() error {
	k.audit.LastUpdated = k.now()
	return store.Save(k.auditPath, &k.audit)
}

// LogOperation stores a system record with a fresh UUID and emits the
// paired audit-trail entry. The record ID is returned even when
// persistence fails; the caller decides how to report the error.
func (k *fileRecordKeeper) LogOperation(op models.SystemRecord) (string, error) {
	op.ID = k.newID()
	op.Timestamp = k.now()
	op.Status = models.RecordStatusActive
	if op.InputData == nil {
		op.InputData = map[string]any{}
	}
	if op.OutputData == nil {
		op.OutputData = map[string]any{}
	}
	if op.Metadata == nil {
		op.Metadata = map[string]any{}
	}
	k.records.Records.Append(op)
	err := k.saveRecords()

	_, auditErr := k.AddAuditTrail(models.AuditTrail{
		UserID:   op.UserID,
		Action:   "system_operation_" + op.Action,
		Resource: "record_" + op.ID,
		NewValue: op.Action,
		Reason:   "System operation logged: " + op.Action,
	})
	return op.ID, errors.Join(err, auditErr)
}

// LogInteraction records one chat turn in the interaction ledger.
func (k *fileRecordKeeper) LogInteraction(userID, sessionID, query, response, model string, processingMS int, confidence *float64) (string, error) {
	return k.LogOperation(models.SystemRecord{
		RecordType:       models.RecordTypeUserInteraction,
		UserID:           userID,
		SessionID:        sessionID,
		Action:           "user_query_processed",
		InputData:        map[string]any{"query": query},
		OutputData:       map[string]any{"response": response},
		ProcessingTimeMS: processingMS,
		AIModelUsed:      model,
		ConfidenceScore:  confidence,
		Metadata:         map[string]any{"interaction_type": "chat"},
	})
}

// LogOversight records a human review of an earlier record.
func (k *fileRecordKeeper) LogOversight(userID, recordID, action, reviewResult, notes string) (string, error) {
	return k.LogOperation(models.SystemRecord{
		RecordType:    models.RecordTypeHumanOversight,
		UserID:        userID,
		Action:        "human_review_" + action,
		InputData:     map[string]any{"reviewed_record_id": recordID},
		OutputData:    map[string]any{"review_result": reviewResult, "notes": notes},
		AIModelUsed:   "human_reviewer",
		HumanReviewed: true,
		Metadata:      map[string]any{"oversight_type": action},
	})
}

// LogIncident records a system incident.
func (k *fileRecordKeeper) LogIncident(incidentType, description, severity, userID string, affected []string) (string, error) {
	if affected == nil {
		affected = []string{}
	}
	return k.LogOperation(models.SystemRecord{
		RecordType:  models.RecordTypeIncident,
		UserID:      userID,
		Action:      "incident_logged",
		InputData:   map[string]any{"incident_type": incidentType, "description": description},
		OutputData:  map[string]any{"severity": severity, "affected_records": affected},
		AIModelUsed: "system",
		Metadata:    map[string]any{"incident_severity": severity},
	})
}

// AddAuditTrail appends a raw audit-trail entry, assigning its ID and
// timestamp.
func (k *fileRecordKeeper) AddAuditTrail(trail models.AuditTrail) (string, error) {
	trail.ID = k.newID()
	trail.Timestamp = k.now()
	k.audit.AuditTrails.Append(trail)
	return trail.ID, k.saveAudit()
}

// Record returns a copy of the system record with the given ID.
func (k *fileRecordKeeper) Record(recordID string) (*models.SystemRecord, bool) {
	rec, ok := k.records.Records.Get(recordID)
	if !ok {
		return nil, false
	}
	return &rec, true
}

// RecordsByType returns records of the given type, newest first.
func (k *fileRecordKeeper) RecordsByType(recordType models.RecordType) []models.SystemRecord {
	out := k.records.Records.Find(func(r models.SystemRecord) bool {
		return r.RecordType == recordType
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}

// InteractionHistory returns a user's chat interactions, newest first,
// capped at limit.
func (k *fileRecordKeeper) InteractionHistory(userID string, limit int) []models.SystemRecord {
	out := k.records.Records.Find(func(r models.SystemRecord) bool {
		return r.UserID == userID && r.RecordType == models.RecordTypeUserInteraction
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AuditTrails returns audit entries, optionally filtered to one resource,
// newest first.
func (k *fileRecordKeeper) AuditTrails(resource string) []models.AuditTrail {
	out := k.audit.AuditTrails.Find(func(t models.AuditTrail) bool {
		return resource == "" || t.Resource == resource
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}

// ArchiveOldRecords flips active records older than the cutoff to archived
// without deleting them, returning the number archived.
func (k *fileRecordKeeper) ArchiveOldRecords(olderThanDays int) (int, error) {
	if olderThanDays <= 0 {
		olderThanDays = retentionPeriodDays
	}
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	archived := 0
	for _, rec := range k.records.Records.Items() {
		if rec.Status != models.RecordStatusActive {
			continue
		}
		when, err := parseTimestamp(rec.Timestamp)
		if err != nil {
			continue
		}
		if when.Before(cutoff) {
			k.records.Records.Update(rec.ID, func(r *models.SystemRecord) {
				r.Status = models.RecordStatusArchived
			})
			archived++
		}
	}
	if archived == 0 {
		return 0, nil
	}
	return archived, k.saveRecords()
}

// Summary aggregates both ledgers for compliance reporting.
func (k *fileRecordKeeper) Summary() models.RecordKeepingSummary {
	summary := models.RecordKeepingSummary{
		TotalRecords:        k.records.Records.Len(),
		RecordsByType:       map[string]int{},
		TotalAuditTrails:    k.audit.AuditTrails.Len(),
		RetentionCompliance: k.retentionCompliance(),
	}
	weekAgo := time.Now().AddDate(0, 0, -7)
	for _, rec := range k.records.Records.Items() {
		summary.RecordsByType[string(rec.RecordType)]++
		if when, err := parseTimestamp(rec.Timestamp); err == nil && when.After(weekAgo) {
			summary.RecordsLast7Days++
		}
		if rec.Timestamp > summary.LastRecordDate {
			summary.LastRecordDate = rec.Timestamp
		}
	}
	for _, trail := range k.audit.AuditTrails.Items() {
		if when, err := parseTimestamp(trail.Timestamp); err == nil && when.After(weekAgo) {
			summary.AuditTrailsLast7Days++
		}
		if trail.Timestamp > summary.LastAuditDate {
			summary.LastAuditDate = trail.Timestamp
		}
	}
	return summary
}

func (k *fileRecordKeeper) retentionCompliance() models.RetentionCompliance {
	rc := models.RetentionCompliance{RetentionPeriodDays: retentionPeriodDays}
	cutoff := time.Now().AddDate(0, 0, -retentionPeriodDays)
	for _, rec := range k.records.Records.Items() {
		when, err := parseTimestamp(rec.Timestamp)
		if err != nil || when.Before(cutoff) {
			rc.RecordsOutsideRetention++
		} else {
			rc.RecordsWithinRetention++
		}
	}
	if total := k.records.Records.Len(); total > 0 {
		rc.CompliancePercentage = float64(rc.RecordsWithinRetention) / float64(total) * 100
	}
	return rc
}
