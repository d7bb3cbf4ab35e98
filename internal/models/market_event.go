package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType identifies the kind of market event and therefore the shape of its payload
type EventType string

const (
	EventTypeEarningsRelease   EventType = "earnings_release"
	EventTypeEconomicIndicator EventType = "economic_indicator"
	EventTypeMarketVolatility  EventType = "market_volatility"
	EventTypeCorporateAction   EventType = "corporate_action"
	EventTypeOther             EventType = "other"
)

// MarketEvent is an immutable market event produced by ingestion.
// Ticker is empty when the event is not tied to a single instrument.
type MarketEvent struct {
	ID        string       `json:"id"`
	Type      EventType    `json:"event_type"`
	Ticker    string       `json:"ticker,omitempty"`
	EventDate time.Time    `json:"event_date"`
	CreatedAt time.Time    `json:"created_at"`
	Data      EventPayload `json:"-"`
}

// EventPayload is the closed set of event payloads. The marker method keeps
// implementations inside this package.
type EventPayload interface {
	payloadType() EventType
}

// EarningsPayload is the payload of an earnings_release event
type EarningsPayload struct {
	Company         string   `json:"company" toml:"company" yaml:"company" validate:"required"`
	Quarter         string   `json:"quarter" toml:"quarter" yaml:"quarter" validate:"required"`
	EPS             *float64 `json:"eps" toml:"eps" yaml:"eps" validate:"required"`
	EPSEstimate     *float64 `json:"eps_estimate" toml:"eps_estimate" yaml:"eps_estimate" validate:"required"`
	Revenue         string   `json:"revenue" toml:"revenue" yaml:"revenue" validate:"required"`
	RevenueEstimate string   `json:"revenue_estimate,omitempty" toml:"revenue_estimate" yaml:"revenue_estimate"`
	BeatEstimate    *bool    `json:"beat_estimate" toml:"beat_estimate" yaml:"beat_estimate" validate:"required"`
	KeyHighlights   []string `json:"key_highlights" toml:"key_highlights" yaml:"key_highlights" validate:"required"`
}

// EconomicIndicatorPayload is the payload of an economic_indicator event
type EconomicIndicatorPayload struct {
	Indicator   string   `json:"indicator" toml:"indicator" yaml:"indicator" validate:"required"`
	Value       *float64 `json:"value" toml:"value" yaml:"value" validate:"required"`
	Previous    *float64 `json:"previous" toml:"previous" yaml:"previous" validate:"required"`
	Expected    *float64 `json:"expected" toml:"expected" yaml:"expected" validate:"required"`
	Direction   string   `json:"direction" toml:"direction" yaml:"direction" validate:"required"` // "up" or "down"
	Impact      string   `json:"impact" toml:"impact" yaml:"impact" validate:"required"`
	Description string   `json:"description" toml:"description" yaml:"description" validate:"required"`
}

// VolatilityPayload is the payload of a market_volatility event
type VolatilityPayload struct {
	Current         *float64 `json:"current" toml:"current" yaml:"current" validate:"required"`
	PreviousClose   *float64 `json:"previous_close" toml:"previous_close" yaml:"previous_close" validate:"required"`
	ChangePercent   *float64 `json:"change_percent" toml:"change_percent" yaml:"change_percent" validate:"required"`
	Trigger         string   `json:"trigger" toml:"trigger" yaml:"trigger" validate:"required"`
	MarketSentiment string   `json:"market_sentiment" toml:"market_sentiment" yaml:"market_sentiment" validate:"required"`
}

// CorporateActionPayload is the payload of a corporate_action event
type CorporateActionPayload struct {
	Company string `json:"company" toml:"company" yaml:"company"`
	Action  string `json:"action" toml:"action" yaml:"action"`
	Target  string `json:"target,omitempty" toml:"target" yaml:"target"`
	Details string `json:"details,omitempty" toml:"details" yaml:"details"`
}

// GenericPayload carries the free-form data of any other event type
type GenericPayload struct {
	Fields map[string]string `json:"fields,omitempty" toml:"fields" yaml:"fields"`
}

func (EarningsPayload) payloadType() EventType          { return EventTypeEarningsRelease }
func (EconomicIndicatorPayload) payloadType() EventType { return EventTypeEconomicIndicator }
func (VolatilityPayload) payloadType() EventType        { return EventTypeMarketVolatility }
func (CorporateActionPayload) payloadType() EventType   { return EventTypeCorporateAction }
func (GenericPayload) payloadType() EventType           { return EventTypeOther }

// PayloadType returns the event type a payload belongs to, or "" for nil
func PayloadType(p EventPayload) EventType {
	if p == nil {
		return ""
	}
	return p.payloadType()
}

// Float returns a pointer to v, for building payloads in code
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for building payloads in code
func Bool(v bool) *bool { return &v }

// marketEventJSON is the wire shape of MarketEvent: the payload travels as
// raw JSON under event_data and is decoded according to event_type.
type marketEventJSON struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"event_type"`
	Ticker    string          `json:"ticker,omitempty"`
	EventDate time.Time       `json:"event_date"`
	CreatedAt time.Time       `json:"created_at"`
	Data      json.RawMessage `json:"event_data,omitempty"`
}

// MarshalJSON encodes the payload under event_data
func (e MarketEvent) MarshalJSON() ([]byte, error) {
	wire := marketEventJSON{
		ID:        e.ID,
		Type:      e.Type,
		Ticker:    e.Ticker,
		EventDate: e.EventDate,
		CreatedAt: e.CreatedAt,
	}
	if e.Data != nil {
		data, err := json.Marshal(e.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal event data: %w", err)
		}
		wire.Data = data
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes event_data into the payload type selected by event_type
func (e *MarketEvent) UnmarshalJSON(b []byte) error {
	var wire marketEventJSON
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	e.ID = wire.ID
	e.Type = wire.Type
	e.Ticker = wire.Ticker
	e.EventDate = wire.EventDate
	e.CreatedAt = wire.CreatedAt
	e.Data = nil

	if len(wire.Data) == 0 || string(wire.Data) == "null" {
		return nil
	}

	payload, err := decodePayload(wire.Type, wire.Data)
	if err != nil {
		return fmt.Errorf("event %s: %w", wire.ID, err)
	}
	e.Data = payload
	return nil
}

func decodePayload(eventType EventType, data json.RawMessage) (EventPayload, error) {
	switch eventType {
	case EventTypeEarningsRelease:
		var p EarningsPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode earnings payload: %w", err)
		}
		return p, nil
	case EventTypeEconomicIndicator:
		var p EconomicIndicatorPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode economic indicator payload: %w", err)
		}
		return p, nil
	case EventTypeMarketVolatility:
		var p VolatilityPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode volatility payload: %w", err)
		}
		return p, nil
	case EventTypeCorporateAction:
		var p CorporateActionPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode corporate action payload: %w", err)
		}
		return p, nil
	default:
		var p GenericPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode event payload: %w", err)
		}
		return p, nil
	}
}
