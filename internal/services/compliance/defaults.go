package compliance

import "github.com/ternarybob/storyteller/internal/models"

// Disclaimer texts used by the default rule set. None of them contains a
// phrase that any default reject rule triggers on.
const (
	PerformanceDisclaimer    = "Historical results are not indicative of future returns. Investing involves risk, including possible loss of principal."
	ForwardLookingDisclaimer = "This communication may contain forward-looking statements that involve risks and uncertainties. Actual results may differ materially."
)

// DefaultRules returns the illustrative rule set seeded into a new store.
// A fresh slice is returned on every call.
func DefaultRules() []models.ComplianceRule {
	return []models.ComplianceRule{
		{
			ID:          "r1",
			Name:        "Anti-Misrepresentation",
			Category:    "SEC_REG_BI",
			Description: "Prohibits false or misleading statements",
			Severity:    models.SeverityHigh,
			IsActive:    true,
			Logic: models.RuleLogic{
				Trigger: &models.TriggerLogic{
					Phrases: []string{"guarantee", "risk-free", "cannot lose", "will definitely"},
					Action:  models.ActionReject,
					Message: "Contains prohibited guarantee language",
				},
			},
		},
		{
			ID:          "r2",
			Name:        "Balanced Presentation",
			Category:    "FINRA_2210",
			Description: "Requires balanced disclosure of risks and benefits",
			Severity:    models.SeverityHigh,
			IsActive:    true,
			Logic: models.RuleLogic{
				Requirement: &models.RequirementLogic{
					Conditions: []models.Requirement{models.RequirementRiskDisclosure},
				},
			},
		},
		{
			ID:          "r3",
			Name:        "Performance Claims",
			Category:    "SEC_206_4_1",
			Description: "Performance references must carry a results disclaimer",
			Severity:    models.SeverityMedium,
			IsActive:    true,
			Logic: models.RuleLogic{
				Trigger: &models.TriggerLogic{
					Phrases:    []string{"past performance", "record high", "outperform"},
					Action:     models.ActionRequireDisclaimer,
					Disclaimer: PerformanceDisclaimer,
				},
			},
		},
		{
			ID:          "r4",
			Name:        "Suitability",
			Category:    "FINRA_2111",
			Description: "Content must suit the recipient's risk profile",
			Severity:    models.SeverityMedium,
			IsActive:    true,
			Logic: models.RuleLogic{
				Requirement: &models.RequirementLogic{
					Conditions: []models.Requirement{models.RequirementClientRiskProfile},
				},
			},
		},
		{
			ID:          "r5",
			Name:        "Forward-Looking Statements",
			Category:    "SEC_PSLRA",
			Description: "Guidance and forecasts must carry a safe-harbor notice",
			Severity:    models.SeverityLow,
			IsActive:    true,
			Logic: models.RuleLogic{
				Trigger: &models.TriggerLogic{
					Phrases:    []string{"guidance", "forecast", "outlook"},
					Action:     models.ActionRequireDisclaimer,
					Disclaimer: ForwardLookingDisclaimer,
				},
			},
		},
		{
			ID:          "r6",
			Name:        "Promissory Language",
			Category:    "FINRA_2210",
			Description: "Flags promotional language for review",
			Severity:    models.SeverityMedium,
			IsActive:    true,
			Logic: models.RuleLogic{
				Trigger: &models.TriggerLogic{
					Phrases: []string{"sure thing", "can't miss", "no-brainer"},
					Action:  models.ActionReject,
				},
			},
		},
		{
			ID:          "r7",
			Name:        "Speculative Hype",
			Category:    "FINRA_2210",
			Description: "Retired in favour of Promissory Language",
			Severity:    models.SeverityHigh,
			IsActive:    false,
			Logic: models.RuleLogic{
				Trigger: &models.TriggerLogic{
					Phrases: []string{"to the moon"},
					Action:  models.ActionReject,
				},
			},
		},
	}
}
