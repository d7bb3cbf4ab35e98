package models

// ComplianceStatus is the verdict of a compliance check
type ComplianceStatus string

const (
	StatusApproved    ComplianceStatus = "approved"
	StatusRejected    ComplianceStatus = "rejected"
	StatusNeedsReview ComplianceStatus = "needs_review"
)

// Violation is a rule breach found in a narrative
type Violation struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Category string   `json:"category"`
}

// Warning is advisory feedback that does not fail the check
type Warning struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Message  string `json:"message"`
}

// ComplianceCheckResult is the outcome of evaluating one narrative.
// Status is derived from Violations and never set independently.
type ComplianceCheckResult struct {
	Passed              bool             `json:"passed"`
	Status              ComplianceStatus `json:"status"`
	Violations          []Violation      `json:"violations"`
	Warnings            []Warning        `json:"warnings"`
	RequiredDisclaimers []string         `json:"requiredDisclaimers"`
	AutoCorrections     []string         `json:"autoCorrections"`
}
