package narrative

import (
	"fmt"
	"strings"

	"github.com/ternarybob/storyteller/internal/models"
)

// generateVolatility uses one template for every narrative type
func generateVolatility(data models.VolatilityPayload) string {
	var sb strings.Builder

	sb.WriteString("Market Volatility Update\n\n")
	sb.WriteString(fmt.Sprintf("Market volatility has increased, with the VIX rising %s%% to %s, triggered by %s. Current market sentiment is %s.\n\n",
		formatFixed1(*data.ChangePercent), formatNumber(*data.Current), data.Trigger, data.MarketSentiment))
	sb.WriteString("Context: Elevated volatility is a normal part of market cycles and can present both risks and opportunities depending on individual circumstances and time horizons.\n\n")
	sb.WriteString("Investors should maintain a long-term perspective and avoid making emotional decisions during periods of increased volatility. This is not a recommendation to buy or sell any security.")
	return sb.String()
}
