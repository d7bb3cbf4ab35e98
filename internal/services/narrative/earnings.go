package narrative

import (
	"fmt"
	"strings"

	"github.com/ternarybob/storyteller/internal/models"
)

const (
	// FlashNoteDisclaimer closes every earnings flash note
	FlashNoteDisclaimer = "Past performance does not guarantee future results. All investments carry risk."

	// ClientMessageDisclaimer closes every earnings client message
	ClientMessageDisclaimer = "This communication is for informational purposes only and does not constitute investment advice. Past performance does not guarantee future results."

	defaultClientName = "Valued Client"
)

func generateEarnings(ticker string, data models.EarningsPayload, opts Options) string {
	beat := *data.BeatEstimate

	performance := "missed"
	sentiment := "mixed"
	if beat {
		performance = "exceeded"
		sentiment = "strong"
	}

	eps := formatNumber(*data.EPS)
	epsEstimate := formatNumber(*data.EPSEstimate)

	var sb strings.Builder

	switch opts.NarrativeType {
	case models.NarrativeFlashNote:
		sb.WriteString(fmt.Sprintf("FLASH NOTE: %s%s %s Earnings\n\n", data.Company, tickerLabel(ticker), data.Quarter))
		sb.WriteString(fmt.Sprintf("%s reported %s results that %s analyst expectations. ", data.Company, data.Quarter, performance))
		sb.WriteString(fmt.Sprintf("The company posted earnings per share of $%s versus estimates of $%s, with revenue reaching %s.\n\n", eps, epsEstimate, data.Revenue))
		sb.WriteString("Key Highlights:\n")
		for _, h := range data.KeyHighlights {
			sb.WriteString(fmt.Sprintf("• %s\n", h))
		}
		sb.WriteString(fmt.Sprintf("\nMarket Reaction: The results reflect %s operational performance in the current market environment.\n\n", sentiment))
		sb.WriteString("This analysis is based on publicly available earnings data. " + FlashNoteDisclaimer)
		return sb.String()

	case models.NarrativeClientMessage:
		clientName := defaultClientName
		if opts.ClientProfile != nil && opts.ClientProfile.Name != "" {
			clientName = opts.ClientProfile.Name
		}

		closing := "We will continue to evaluate how this development aligns with your investment objectives."
		if opts.ClientProfile != nil && opts.ClientProfile.RiskProfile == models.RiskProfileConservative {
			closing = "Given your conservative investment strategy, we continue to monitor the stability and dividend safety of portfolio holdings."
		}

		sb.WriteString(fmt.Sprintf("Dear %s,\n\n", clientName))
		sb.WriteString(fmt.Sprintf("We wanted to update you on recent developments with %s%s, which reported %s earnings earlier today.\n\n", data.Company, tickerLabel(ticker), data.Quarter))
		sb.WriteString(fmt.Sprintf("The company %s expectations with earnings of $%s per share. Revenue came in at %s. ", performance, eps, data.Revenue))
		sb.WriteString(fmt.Sprintf("Notable highlights include %s.\n\n", strings.Join(firstN(data.KeyHighlights, 2), " and ")))
		sb.WriteString(closing + "\n\n")
		sb.WriteString("As always, we are here to discuss any questions you may have about your portfolio.\n\n")
		sb.WriteString(ClientMessageDisclaimer)
		return sb.String()

	default:
		headline := "Miss"
		if beat {
			headline = "Beat"
		}
		sb.WriteString(fmt.Sprintf("%s %s Earnings: %s\n\n", data.Company, data.Quarter, headline))
		sb.WriteString(fmt.Sprintf("%s reported %s earnings with EPS of $%s (est. $%s) and revenue of %s. ", data.Company, data.Quarter, eps, epsEstimate, data.Revenue))
		sb.WriteString(fmt.Sprintf("Key developments include %s.", strings.Join(data.KeyHighlights, ", ")))
		return sb.String()
	}
}
