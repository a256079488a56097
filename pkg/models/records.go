package models

// RecordType classifies a system record.
type RecordType string

const (
	RecordTypeSystemOperation RecordType = "system_operation"
	RecordTypeUserInteraction RecordType = "user_interaction"
	RecordTypeAIDecision      RecordType = "ai_decision"
	RecordTypeHumanOversight  RecordType = "human_oversight"
	RecordTypeRiskAssessment  RecordType = "risk_assessment"
	RecordTypeDataProcessing  RecordType = "data_processing"
	RecordTypeIncident        RecordType = "incident"
	RecordTypeComplianceAudit RecordType = "compliance_audit"
)

// RecordStatus is the retention state of a system record.
type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "active"
	RecordStatusArchived RecordStatus = "archived"
	RecordStatusDeleted  RecordStatus = "deleted"
)

// SystemRecord is one operation log entry in the record-keeping ledger.
type SystemRecord struct {
	ID               string         `json:"id"`
	RecordType       RecordType     `json:"record_type"`
	Timestamp        string         `json:"timestamp"`
	UserID           string         `json:"user_id,omitempty"`
	SessionID        string         `json:"session_id,omitempty"`
	Action           string         `json:"action"`
	InputData        map[string]any `json:"input_data"`
	OutputData       map[string]any `json:"output_data"`
	ProcessingTimeMS int            `json:"processing_time_ms"`
	AIModelUsed      string         `json:"ai_model_used"`
	ConfidenceScore  *float64       `json:"confidence_score,omitempty"`
	HumanReviewed    bool           `json:"human_reviewed"`
	Status           RecordStatus   `json:"status"`
	Metadata         map[string]any `json:"metadata"`
}

// RecordID implements store.Record.
func (r SystemRecord) RecordID() string { return r.ID }

// AuditTrail is one entry in the audit-trail ledger, written alongside
// every logged operation and on direct resource changes.
type AuditTrail struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id,omitempty"`
	Action    string `json:"action"`
	Resource  string `json:"resource"`
	OldValue  any    `json:"old_value"`
	NewValue  any    `json:"new_value"`
	Reason    string `json:"reason"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// RecordID implements store.Record.
func (t AuditTrail) RecordID() string { return t.ID }

// RetentionCompliance reports how many records sit inside the mandated
// retention window.
type RetentionCompliance struct {
	RetentionPeriodDays     int     `json:"retention_period_days"`
	RecordsWithinRetention  int     `json:"records_within_retention"`
	RecordsOutsideRetention int     `json:"records_outside_retention"`
	CompliancePercentage    float64 `json:"compliance_percentage"`
}

// RecordKeepingSummary aggregates the record-keeping ledger for reporting.
type RecordKeepingSummary struct {
	TotalRecords         int                 `json:"total_records"`
	RecordsByType        map[string]int      `json:"records_by_type"`
	TotalAuditTrails     int                 `json:"total_audit_trails"`
	RetentionCompliance  RetentionCompliance `json:"retention_compliance"`
	RecordsLast7Days     int                 `json:"records_last_7_days"`
	AuditTrailsLast7Days int                 `json:"audit_trails_last_7_days"`
	LastRecordDate       string              `json:"last_record_date,omitempty"`
	LastAuditDate        string              `json:"last_audit_date,omitempty"`
}
