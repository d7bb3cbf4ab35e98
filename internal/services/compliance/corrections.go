package compliance

import (
	"strings"

	"github.com/ternarybob/storyteller/internal/models"
)

// disclaimerPrefix introduces each appended disclaimer block
const disclaimerPrefix = "\n\nDISCLAIMER: "

// ApplyCorrections appends every required disclaimer to the narrative, in order.
// It is not idempotent: call it once per narrative and check result, since
// applying the same non-empty result twice appends the disclaimers twice.
func ApplyCorrections(narrative string, result models.ComplianceCheckResult) string {
	if len(result.RequiredDisclaimers) == 0 {
		return narrative
	}

	var sb strings.Builder
	sb.WriteString(narrative)
	for _, disclaimer := range result.RequiredDisclaimers {
		sb.WriteString(disclaimerPrefix)
		sb.WriteString(disclaimer)
	}
	return sb.String()
}
