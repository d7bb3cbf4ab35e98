package narrative

import (
	"fmt"
	"strings"

	"github.com/ternarybob/storyteller/internal/models"
)

// displayDateLayout matches the month/day/year short date shown to readers
const displayDateLayout = "1/2/2006"

// generateGeneric only uses the event type, ticker and the event's own date
func generateGeneric(event models.MarketEvent) string {
	subject := event.Ticker
	if strings.TrimSpace(subject) == "" {
		subject = "broader markets"
	}

	eventType := string(event.Type)
	if eventType == "" {
		eventType = string(models.EventTypeOther)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Market Update: %s\n\n", eventType))
	sb.WriteString(fmt.Sprintf("Recent market activity related to %s on %s.\n\n", subject, event.EventDate.Format(displayDateLayout)))
	sb.WriteString("This information is provided for educational purposes only and does not constitute investment advice. All investments carry risk.")
	return sb.String()
}
