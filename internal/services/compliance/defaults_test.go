package compliance_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/storyteller/internal/models"
	"github.com/ternarybob/storyteller/internal/services/compliance"
	"github.com/ternarybob/storyteller/internal/services/narrative"
)

func sampleEvents() []models.MarketEvent {
	at := time.Date(2024, 11, 13, 13, 30, 0, 0, time.UTC)
	return []models.MarketEvent{
		{
			ID: "1", Type: models.EventTypeEarningsRelease, Ticker: "AAPL", EventDate: at,
			Data: models.EarningsPayload{
				Company: "Apple Inc.", Quarter: "Q4 2024",
				EPS: models.Float(2.18), EPSEstimate: models.Float(2.1),
				Revenue: "124.3B", RevenueEstimate: "122.0B", BeatEstimate: models.Bool(true),
				KeyHighlights: []string{"iPhone revenue up 6%", "Services at record high", "Gross margin 46.2%"},
			},
		},
		{
			ID: "2", Type: models.EventTypeEconomicIndicator, Ticker: "SPY", EventDate: at,
			Data: models.EconomicIndicatorPayload{
				Indicator: "CPI", Value: models.Float(2.6), Previous: models.Float(2.4), Expected: models.Float(2.5),
				Direction: "up", Impact: "negative", Description: "Consumer prices rose more than forecast",
			},
		},
		{
			ID: "3", Type: models.EventTypeMarketVolatility, Ticker: "VIX", EventDate: at,
			Data: models.VolatilityPayload{
				Current: models.Float(18.5), PreviousClose: models.Float(15.2), ChangePercent: models.Float(21.7),
				Trigger: "geopolitical tensions", MarketSentiment: "cautious",
			},
		},
		{
			ID: "4", Type: models.EventTypeCorporateAction, Ticker: "MSFT", EventDate: at,
			Data: models.CorporateActionPayload{Company: "Microsoft", Action: "acquisition", Target: "Contoso"},
		},
	}
}

func TestDefaultRules_DisclaimersContainNoRejectTriggers(t *testing.T) {
	rules := compliance.DefaultRules()

	for _, rule := range rules {
		trigger := rule.Logic.Trigger
		if trigger == nil || trigger.Disclaimer == "" {
			continue
		}
		for _, other := range rules {
			if other.Logic.Trigger == nil || other.Logic.Trigger.Action != models.ActionReject {
				continue
			}
			for _, phrase := range other.Logic.Trigger.Phrases {
				assert.NotContains(t, strings.ToLower(trigger.Disclaimer), strings.ToLower(phrase),
					"disclaimer of %s triggers %s", rule.ID, other.ID)
			}
		}
	}
}

func TestDefaultRules_RecheckAfterCorrectionsAddsNoViolations(t *testing.T) {
	rules := compliance.DefaultRules()
	profiles := []*models.ClientProfile{
		nil,
		{ID: "c1", Name: "Jane Doe", RiskProfile: models.RiskProfileConservative},
		{ID: "c2", Name: "Sam Lee", RiskProfile: models.RiskProfileAggressive},
	}

	for _, event := range sampleEvents() {
		for _, narrativeType := range models.NarrativeTypes {
			for _, profile := range profiles {
				raw, err := narrative.Generate(event, narrative.Options{NarrativeType: narrativeType, ClientProfile: profile})
				require.NoError(t, err)

				first := compliance.Check(raw, rules, profile)
				corrected := compliance.ApplyCorrections(raw, first)
				second := compliance.Check(corrected, rules, profile)

				for _, v := range second.Violations {
					assert.Contains(t, first.Violations, v, "event %s type %s", event.ID, narrativeType)
				}
			}
		}
	}
}

func TestDefaultRules_FlashNoteRejected(t *testing.T) {
	event := sampleEvents()[0]

	raw, err := narrative.Generate(event, narrative.Options{NarrativeType: models.NarrativeFlashNote})
	require.NoError(t, err)

	result := compliance.Check(raw, compliance.DefaultRules(), nil)

	assert.Equal(t, models.StatusRejected, result.Status)
	require.NotEmpty(t, result.Violations)
	assert.Equal(t, "r1", result.Violations[0].RuleID)
	assert.Equal(t, "Contains prohibited guarantee language", result.Violations[0].Message)
	assert.Contains(t, result.RequiredDisclaimers, compliance.PerformanceDisclaimer)
}

func TestDefaultRules_VolatilityApproved(t *testing.T) {
	event := sampleEvents()[2]

	raw, err := narrative.Generate(event, narrative.Options{NarrativeType: models.NarrativeNewsletter})
	require.NoError(t, err)

	result := compliance.Check(raw, compliance.DefaultRules(), nil)

	assert.Equal(t, models.StatusApproved, result.Status)
	assert.True(t, result.Passed)
	assert.Empty(t, result.RequiredDisclaimers)
}

func TestDefaultRules_FreshSlice(t *testing.T) {
	a := compliance.DefaultRules()
	a[0].Name = "changed"

	b := compliance.DefaultRules()

	assert.Equal(t, "Anti-Misrepresentation", b[0].Name)
}
