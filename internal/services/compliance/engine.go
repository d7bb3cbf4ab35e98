// Package compliance screens narrative text against compliance rules.
// All functions are stateless and perform no I/O.
package compliance

import (
	"fmt"
	"strings"

	"github.com/ternarybob/storyteller/internal/models"
)

const (
	msgMissingRiskDisclosure  = "Missing required risk disclosure"
	msgConsiderRiskDisclosure = "Consider adding risk disclosure"
	msgUnsuitableForProfile   = "Content not suitable for client risk profile"
)

// Check evaluates a narrative against every active rule, in rule order.
// Matching is case-insensitive. The result is always populated; unknown
// actions and requirements have no effect.
func Check(narrative string, rules []models.ComplianceRule, profile *models.ClientProfile) models.ComplianceCheckResult {
	text := strings.ToLower(narrative)

	violations := make([]models.Violation, 0)
	warnings := make([]models.Warning, 0)
	disclaimers := make([]string, 0)
	corrections := make([]string, 0)

	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}

		if trigger := rule.Logic.Trigger; trigger != nil {
			for _, phrase := range trigger.Phrases {
				if phrase == "" || !strings.Contains(text, strings.ToLower(phrase)) {
					continue
				}

				switch trigger.Action {
				case models.ActionReject:
					message := trigger.Message
					if message == "" {
						message = fmt.Sprintf("Contains prohibited language: \"%s\"", phrase)
					}
					violations = append(violations, violationFor(rule, rule.Severity, message))
				case models.ActionRequireDisclaimer:
					if trigger.Disclaimer != "" {
						disclaimers = append(disclaimers, trigger.Disclaimer)
						corrections = append(corrections, "Added disclaimer for: "+rule.Name)
					}
				}
			}
		}

		if requirement := rule.Logic.Requirement; requirement != nil {
			for _, condition := range requirement.Conditions {
				switch condition {
				case models.RequirementRiskDisclosure:
					if strings.Contains(text, "risk") || strings.Contains(text, "disclaimer") {
						continue
					}
					if rule.Severity == models.SeverityHigh {
						violations = append(violations, violationFor(rule, rule.Severity, msgMissingRiskDisclosure))
					} else {
						warnings = append(warnings, models.Warning{
							RuleID:   rule.ID,
							RuleName: rule.Name,
							Message:  msgConsiderRiskDisclosure,
						})
					}
				case models.RequirementClientRiskProfile:
					if profile == nil {
						continue
					}
					if strings.Contains(text, "aggressive") && profile.RiskProfile == models.RiskProfileConservative {
						// Suitability breaches are always high regardless of the rule's own severity
						violations = append(violations, violationFor(rule, models.SeverityHigh, msgUnsuitableForProfile))
					}
				}
			}
		}
	}

	return models.ComplianceCheckResult{
		Passed:              len(violations) == 0,
		Status:              statusFor(violations),
		Violations:          violations,
		Warnings:            warnings,
		RequiredDisclaimers: dedupe(disclaimers),
		AutoCorrections:     corrections,
	}
}

// ActiveRules returns the rules with IsActive set, preserving order
func ActiveRules(rules []models.ComplianceRule) []models.ComplianceRule {
	active := make([]models.ComplianceRule, 0, len(rules))
	for _, rule := range rules {
		if rule.IsActive {
			active = append(active, rule)
		}
	}
	return active
}

func violationFor(rule models.ComplianceRule, severity models.Severity, message string) models.Violation {
	return models.Violation{
		RuleID:   rule.ID,
		RuleName: rule.Name,
		Severity: severity,
		Message:  message,
		Category: rule.Category,
	}
}

// statusFor derives the verdict from the violations alone
func statusFor(violations []models.Violation) models.ComplianceStatus {
	if len(violations) == 0 {
		return models.StatusApproved
	}
	for _, v := range violations {
		if v.Severity == models.SeverityHigh {
			return models.StatusRejected
		}
	}
	return models.StatusNeedsReview
}

// dedupe keeps the first occurrence of each string
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
