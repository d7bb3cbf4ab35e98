package narrative

import (
	"fmt"
	"strings"

	"github.com/ternarybob/storyteller/internal/models"
)

func generateEconomic(data models.EconomicIndicatorPayload, opts Options) string {
	falling := strings.EqualFold(data.Direction, "down")

	trend := "increased"
	if falling {
		trend = "declined"
	}

	compared := "above"
	if *data.Value < *data.Expected {
		compared = "below"
	}

	value := formatNumber(*data.Value)
	previous := formatNumber(*data.Previous)
	expected := formatNumber(*data.Expected)

	var sb strings.Builder

	if opts.NarrativeType == models.NarrativeExecutiveSummary {
		outlook := "continued economic strength"
		implication := "Could influence central bank policy decisions."
		if falling {
			outlook = "easing inflationary pressures"
			implication = "May support more accommodative monetary policy."
		}

		sb.WriteString(fmt.Sprintf("ECONOMIC UPDATE: %s\n\n", data.Indicator))
		sb.WriteString(fmt.Sprintf("The latest %s reading came in at %s%%, %s from %s%% and %s the expected %s%%. %s\n\n",
			data.Indicator, value, trend, previous, compared, expected, data.Description))
		sb.WriteString(fmt.Sprintf("Market Impact: This data is viewed as %s for equity markets, suggesting %s.\n\n", data.Impact, outlook))
		sb.WriteString(fmt.Sprintf("Strategic Implications: %s\n\n", implication))
		sb.WriteString("Data source: Bureau of Labor Statistics. Economic indicators are subject to revision.")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%s Update: %s\n\n", data.Indicator, data.Description))
	sb.WriteString(fmt.Sprintf("The %s %s to %s%% from %s%%, coming in %s expectations of %s%%. ",
		data.Indicator, trend, value, previous, compared, expected))
	sb.WriteString(fmt.Sprintf("This development is generally viewed as %s for markets.\n\n", data.Impact))
	sb.WriteString("Economic data is subject to revision and should be considered as one of many factors in investment decisions.")
	return sb.String()
}
