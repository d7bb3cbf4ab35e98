// Package render turns stored events and narratives into reader-facing text:
// event cards, status display tokens and compliance reports.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ternarybob/storyteller/internal/models"
)

// EventTitle returns the one-line heading shown for an event
func EventTitle(event models.MarketEvent) string {
	switch data := event.Data.(type) {
	case models.EarningsPayload:
		company := data.Company
		if event.Ticker != "" {
			company += " (" + event.Ticker + ")"
		}
		return fmt.Sprintf("%s - %s Earnings", company, data.Quarter)
	case models.EconomicIndicatorPayload:
		return fmt.Sprintf("%s Update - %s%%", data.Indicator, number(data.Value))
	case models.VolatilityPayload:
		return "Market Volatility Alert - VIX " + number(data.Current)
	default:
		return eventTypeName(event.Type)
	}
}

// EventDescription returns the summary line shown under an event title
func EventDescription(event models.MarketEvent) string {
	switch data := event.Data.(type) {
	case models.EarningsPayload:
		return fmt.Sprintf("EPS: $%s (Est. $%s) | Revenue: %s", number(data.EPS), number(data.EPSEstimate), data.Revenue)
	case models.EconomicIndicatorPayload:
		return fmt.Sprintf("%s (Prev: %s%%, Exp: %s%%)", data.Description, number(data.Previous), number(data.Expected))
	case models.VolatilityPayload:
		return fmt.Sprintf("%s | Market sentiment: %s", data.Trigger, data.MarketSentiment)
	default:
		return "Market event"
	}
}

// EventTypeLabel returns the event type with underscores shown as spaces
func EventTypeLabel(t models.EventType) string {
	return strings.ReplaceAll(eventTypeName(t), "_", " ")
}

// TimeAgo describes how long before now the instant was, in whole minutes,
// hours or days. Instants after now read as "0 minutes ago".
func TimeAgo(then, now time.Time) string {
	seconds := int64(now.Sub(then) / time.Second)
	if seconds < 0 {
		seconds = 0
	}

	switch {
	case seconds < 3600:
		return fmt.Sprintf("%d minutes ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%d hours ago", seconds/3600)
	default:
		return fmt.Sprintf("%d days ago", seconds/86400)
	}
}

// StatusColor maps a compliance status to its display color token
func StatusColor(status models.ComplianceStatus) string {
	switch status {
	case models.StatusApproved:
		return "green"
	case models.StatusRejected:
		return "red"
	case models.StatusNeedsReview:
		return "yellow"
	default:
		return "gray"
	}
}

// StatusIcon maps a compliance status to its display glyph
func StatusIcon(status models.ComplianceStatus) string {
	switch status {
	case models.StatusApproved:
		return "✓"
	case models.StatusRejected:
		return "✗"
	case models.StatusNeedsReview:
		return "⚠"
	default:
		return "○"
	}
}

// StatusLabel returns the status with underscores shown as spaces
func StatusLabel(status models.ComplianceStatus) string {
	return strings.ReplaceAll(string(status), "_", " ")
}

func eventTypeName(t models.EventType) string {
	if t == "" {
		return string(models.EventTypeOther)
	}
	return string(t)
}

// number prints a payload value in its shortest form, "n/a" when absent
func number(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return decimal.NewFromFloat(*v).String()
}
