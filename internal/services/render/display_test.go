package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/storyteller/internal/models"
)

func TestEventTitleAndDescription(t *testing.T) {
	tests := []struct {
		name        string
		event       models.MarketEvent
		title       string
		description string
	}{
		{
			name: "earnings",
			event: models.MarketEvent{
				Type:   models.EventTypeEarningsRelease,
				Ticker: "AAPL",
				Data: models.EarningsPayload{
					Company: "Apple Inc.", Quarter: "Q4 2024",
					EPS: models.Float(2.18), EPSEstimate: models.Float(2.1), Revenue: "124.3B",
				},
			},
			title:       "Apple Inc. (AAPL) - Q4 2024 Earnings",
			description: "EPS: $2.18 (Est. $2.1) | Revenue: 124.3B",
		},
		{
			name: "economic",
			event: models.MarketEvent{
				Type: models.EventTypeEconomicIndicator,
				Data: models.EconomicIndicatorPayload{
					Indicator: "CPI", Value: models.Float(3.2), Previous: models.Float(3.4), Expected: models.Float(3.3),
					Description: "Inflation continues to moderate",
				},
			},
			title:       "CPI Update - 3.2%",
			description: "Inflation continues to moderate (Prev: 3.4%, Exp: 3.3%)",
		},
		{
			name: "volatility",
			event: models.MarketEvent{
				Type: models.EventTypeMarketVolatility,
				Data: models.VolatilityPayload{Current: models.Float(16.8), Trigger: "Fed commentary", MarketSentiment: "cautious"},
			},
			title:       "Market Volatility Alert - VIX 16.8",
			description: "Fed commentary | Market sentiment: cautious",
		},
		{
			name:        "corporate action",
			event:       models.MarketEvent{Type: models.EventTypeCorporateAction, Data: models.CorporateActionPayload{Company: "Oracle Corp."}},
			title:       "corporate_action",
			description: "Market event",
		},
		{
			name:        "missing payload",
			event:       models.MarketEvent{Type: models.EventTypeEarningsRelease},
			title:       "earnings_release",
			description: "Market event",
		},
		{
			name: "absent numbers",
			event: models.MarketEvent{
				Type: models.EventTypeEarningsRelease,
				Data: models.EarningsPayload{Company: "Apple Inc.", Quarter: "Q4 2024", Revenue: "1B"},
			},
			title:       "Apple Inc. - Q4 2024 Earnings",
			description: "EPS: $n/a (Est. $n/a) | Revenue: 1B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.title, EventTitle(tt.event))
			assert.Equal(t, tt.description, EventDescription(tt.event))
		})
	}
}

func TestEventTypeLabel(t *testing.T) {
	assert.Equal(t, "earnings release", EventTypeLabel(models.EventTypeEarningsRelease))
	assert.Equal(t, "other", EventTypeLabel(""))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 11, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{ago: 0, want: "0 minutes ago"},
		{ago: 59 * time.Second, want: "0 minutes ago"},
		{ago: 45 * time.Minute, want: "45 minutes ago"},
		{ago: 59*time.Minute + 59*time.Second, want: "59 minutes ago"},
		{ago: time.Hour, want: "1 hours ago"},
		{ago: 23*time.Hour + 59*time.Minute, want: "23 hours ago"},
		{ago: 24 * time.Hour, want: "1 days ago"},
		{ago: 10 * 24 * time.Hour, want: "10 days ago"},
		{ago: -time.Hour, want: "0 minutes ago"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(now.Add(-tt.ago), now))
		})
	}
}

func TestStatusDisplay(t *testing.T) {
	tests := []struct {
		status models.ComplianceStatus
		color  string
		icon   string
		label  string
	}{
		{models.StatusApproved, "green", "✓", "approved"},
		{models.StatusRejected, "red", "✗", "rejected"},
		{models.StatusNeedsReview, "yellow", "⚠", "needs review"},
		{models.ComplianceStatus("draft"), "gray", "○", "draft"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.color, StatusColor(tt.status))
			assert.Equal(t, tt.icon, StatusIcon(tt.status))
			assert.Equal(t, tt.label, StatusLabel(tt.status))
		})
	}
}
