package models

import "time"

// NarrativeType selects the audience format of a generated narrative
type NarrativeType string

const (
	NarrativeFlashNote        NarrativeType = "flash_note"
	NarrativeClientMessage    NarrativeType = "client_message"
	NarrativeNewsletter       NarrativeType = "newsletter"
	NarrativeExecutiveSummary NarrativeType = "executive_summary"
)

// NarrativeTypes lists the supported narrative types in display order
var NarrativeTypes = []NarrativeType{
	NarrativeFlashNote,
	NarrativeClientMessage,
	NarrativeNewsletter,
	NarrativeExecutiveSummary,
}

// ComplianceChecks is the persisted subset of a check result
type ComplianceChecks struct {
	Violations      []Violation `json:"violations"`
	Warnings        []Warning   `json:"warnings"`
	AutoCorrections []string    `json:"autoCorrections"`
}

// GeneratedNarrative is the record kept for every generated narrative.
// ReviewedAt is set only when the narrative was approved.
type GeneratedNarrative struct {
	ID                  string           `json:"id"`
	SourceEventID       string           `json:"market_event_id"`
	NarrativeType       NarrativeType    `json:"narrative_type"`
	TargetAudience      string           `json:"target_audience,omitempty"`
	ClientID            string           `json:"client_id,omitempty"`
	RawNarrative        string           `json:"raw_narrative"`
	ComplianceStatus    ComplianceStatus `json:"compliance_status"`
	ComplianceChecks    ComplianceChecks `json:"compliance_checks"`
	RequiredDisclaimers []string         `json:"required_disclaimers,omitempty"`
	FinalNarrative      string           `json:"final_narrative"`
	CreatedAt           time.Time        `json:"created_at"`
	ReviewedAt          *time.Time       `json:"reviewed_at,omitempty"`
}

// AuditCheckResult is the outcome recorded in an audit entry
type AuditCheckResult string

const (
	AuditFail AuditCheckResult = "fail"
)

// AuditDetails carries the violation summary of an audit entry
type AuditDetails struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// AuditLogEntry records one violation against a generated narrative
type AuditLogEntry struct {
	ID          string           `json:"id"`
	NarrativeID string           `json:"narrative_id"`
	EventID     string           `json:"market_event_id"`
	RuleID      string           `json:"rule_id"`
	CheckResult AuditCheckResult `json:"check_result"`
	Details     AuditDetails     `json:"details"`
	CreatedAt   time.Time        `json:"created_at"`
}
