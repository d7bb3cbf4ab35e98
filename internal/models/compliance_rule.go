package models

// Severity ranks how serious a rule breach is
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// RuleAction is what a trigger rule does when one of its phrases matches.
// Values other than the constants below are tolerated and have no effect.
type RuleAction string

const (
	ActionReject            RuleAction = "reject"
	ActionRequireDisclaimer RuleAction = "require_disclaimer"
)

// Requirement is a condition a narrative must satisfy.
// Values other than the constants below are tolerated and have no effect.
type Requirement string

const (
	RequirementRiskDisclosure    Requirement = "risk disclosure"
	RequirementClientRiskProfile Requirement = "client_risk_profile"
)

// RuleKind reports which logic a rule carries
type RuleKind string

const (
	RuleKindNone        RuleKind = "none"
	RuleKindTrigger     RuleKind = "trigger"
	RuleKindRequirement RuleKind = "requirement"
	RuleKindBoth        RuleKind = "both"
)

// TriggerLogic fires when any phrase appears in the narrative (case-insensitive)
type TriggerLogic struct {
	Phrases    []string   `json:"triggers" toml:"phrases" yaml:"phrases"`
	Action     RuleAction `json:"action" toml:"action" yaml:"action"`
	Disclaimer string     `json:"disclaimer,omitempty" toml:"disclaimer" yaml:"disclaimer"`
	Message    string     `json:"message,omitempty" toml:"message" yaml:"message"`
}

// RequirementLogic lists the conditions a narrative is checked against
type RequirementLogic struct {
	Conditions []Requirement `json:"requires" toml:"conditions" yaml:"conditions"`
}

// RuleLogic holds trigger logic, requirement logic, or both
type RuleLogic struct {
	Trigger     *TriggerLogic     `json:"trigger,omitempty" toml:"trigger" yaml:"trigger"`
	Requirement *RequirementLogic `json:"requirement,omitempty" toml:"requirement" yaml:"requirement"`
}

// Kind reports whether the logic carries a trigger, a requirement, both or neither
func (l RuleLogic) Kind() RuleKind {
	switch {
	case l.Trigger != nil && l.Requirement != nil:
		return RuleKindBoth
	case l.Trigger != nil:
		return RuleKindTrigger
	case l.Requirement != nil:
		return RuleKindRequirement
	default:
		return RuleKindNone
	}
}

// ComplianceRule is a single regulatory check. Category carries the citation tag (e.g. FINRA_2210).
type ComplianceRule struct {
	ID          string    `json:"id" toml:"id" yaml:"id"`
	Name        string    `json:"rule_name" toml:"name" yaml:"name"`
	Category    string    `json:"rule_category" toml:"category" yaml:"category"`
	Description string    `json:"rule_description" toml:"description" yaml:"description"`
	Severity    Severity  `json:"severity" toml:"severity" yaml:"severity"`
	IsActive    bool      `json:"is_active" toml:"is_active" yaml:"is_active"`
	Logic       RuleLogic `json:"rule_logic" toml:"logic" yaml:"logic"`
	Order       int       `json:"order" toml:"order" yaml:"order"` // Evaluation position, assigned from file order when zero
}
