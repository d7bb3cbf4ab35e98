// Package narrative turns market events into audience-specific prose.
// All functions are pure: no I/O and no wall-clock reads.
package narrative

import (
	"fmt"

	"github.com/ternarybob/storyteller/internal/models"
)

// Options selects the narrative format and audience
type Options struct {
	NarrativeType  models.NarrativeType
	TargetAudience string
	ClientProfile  *models.ClientProfile
}

// Generate renders the draft narrative for an event.
// Dispatch is on the event type; corporate actions, "other" and unrecognised
// types get the generic narrative whatever payload they carry.
// Unknown narrative types fall back to each generator's default template.
func Generate(event models.MarketEvent, opts Options) (string, error) {
	switch event.Type {
	case models.EventTypeEarningsRelease:
		data, err := payloadAs[models.EarningsPayload](event)
		if err != nil {
			return "", err
		}
		return generateEarnings(event.Ticker, data, opts), nil
	case models.EventTypeEconomicIndicator:
		data, err := payloadAs[models.EconomicIndicatorPayload](event)
		if err != nil {
			return "", err
		}
		return generateEconomic(data, opts), nil
	case models.EventTypeMarketVolatility:
		data, err := payloadAs[models.VolatilityPayload](event)
		if err != nil {
			return "", err
		}
		return generateVolatility(data), nil
	default:
		return generateGeneric(event), nil
	}
}

// payloadAs extracts and validates the payload a templated event type requires
func payloadAs[T models.EventPayload](event models.MarketEvent) (T, error) {
	var zero T
	if event.Data == nil {
		return zero, &PayloadError{EventType: event.Type, Field: "event_data", Reason: "is missing"}
	}
	data, ok := event.Data.(T)
	if !ok {
		return zero, &PayloadError{
			EventType: event.Type,
			Field:     "event_data",
			Reason:    fmt.Sprintf("holds a %s payload", models.PayloadType(event.Data)),
		}
	}
	if err := validatePayload(event.Type, data); err != nil {
		return zero, err
	}
	return data, nil
}
