package narrative

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/storyteller/internal/models"
)

func earningsEvent(beat bool, highlights ...string) models.MarketEvent {
	return models.MarketEvent{
		ID:        "1",
		Type:      models.EventTypeEarningsRelease,
		Ticker:    "AAPL",
		EventDate: time.Date(2024, 10, 31, 20, 30, 0, 0, time.UTC),
		Data: models.EarningsPayload{
			Company:       "Apple Inc.",
			Quarter:       "Q4 2024",
			EPS:           models.Float(2.18),
			EPSEstimate:   models.Float(2.1),
			Revenue:       "124.3B",
			BeatEstimate:  models.Bool(beat),
			KeyHighlights: highlights,
		},
	}
}

func economicEvent(value, expected float64, direction string) models.MarketEvent {
	return models.MarketEvent{
		ID:        "2",
		Type:      models.EventTypeEconomicIndicator,
		Ticker:    "SPY",
		EventDate: time.Date(2024, 11, 13, 13, 30, 0, 0, time.UTC),
		Data: models.EconomicIndicatorPayload{
			Indicator:   "CPI",
			Value:       models.Float(value),
			Previous:    models.Float(3.4),
			Expected:    models.Float(expected),
			Direction:   direction,
			Impact:      "positive",
			Description: "Inflation continues to moderate",
		},
	}
}

func volatilityEvent(change float64) models.MarketEvent {
	return models.MarketEvent{
		ID:        "3",
		Type:      models.EventTypeMarketVolatility,
		Ticker:    "VIX",
		EventDate: time.Date(2024, 11, 14, 15, 0, 0, 0, time.UTC),
		Data: models.VolatilityPayload{
			Current:         models.Float(16.8),
			PreviousClose:   models.Float(14.2),
			ChangePercent:   models.Float(change),
			Trigger:         "Fed commentary",
			MarketSentiment: "cautious",
		},
	}
}

func TestGenerateEarnings_FlashNote(t *testing.T) {
	event := earningsEvent(true, "iPhone sales up 8%", "Services revenue record high", "Strong guidance for Q1 2025")

	text, err := Generate(event, Options{NarrativeType: models.NarrativeFlashNote})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "FLASH NOTE: Apple Inc. (AAPL) Q4 2024 Earnings\n\n"))
	assert.Contains(t, text, "results that exceeded analyst expectations")
	assert.Contains(t, text, "earnings per share of $2.18 versus estimates of $2.1, with revenue reaching 124.3B.")
	assert.Contains(t, text, "Key Highlights:\n• iPhone sales up 8%\n• Services revenue record high\n• Strong guidance for Q1 2025\n")
	assert.Contains(t, text, "reflect strong operational performance")
	assert.True(t, strings.HasSuffix(text, FlashNoteDisclaimer))
}

func TestGenerateEarnings_FlashNoteMiss(t *testing.T) {
	text, err := Generate(earningsEvent(false, "A"), Options{NarrativeType: models.NarrativeFlashNote})
	require.NoError(t, err)

	assert.Contains(t, text, "results that missed analyst expectations")
	assert.Contains(t, text, "reflect mixed operational performance")
}

func TestGenerateEarnings_ClientMessage(t *testing.T) {
	tests := []struct {
		name        string
		profile     *models.ClientProfile
		highlights  []string
		wantName    string
		wantPhrase  string
		wantClosing string
	}{
		{
			name:        "first two highlights only",
			profile:     &models.ClientProfile{Name: "Moderate HNW Client", RiskProfile: models.RiskProfileModerate},
			highlights:  []string{"A", "B", "C"},
			wantName:    "Dear Moderate HNW Client,",
			wantPhrase:  "Notable highlights include A and B.",
			wantClosing: "We will continue to evaluate how this development aligns with your investment objectives.",
		},
		{
			name:        "conservative closing",
			profile:     &models.ClientProfile{Name: "Conservative Retail Client", RiskProfile: models.RiskProfileConservative},
			highlights:  []string{"A", "B"},
			wantName:    "Dear Conservative Retail Client,",
			wantPhrase:  "Notable highlights include A and B.",
			wantClosing: "Given your conservative investment strategy",
		},
		{
			name:        "no profile falls back to valued client",
			profile:     nil,
			highlights:  []string{"Only one"},
			wantName:    "Dear Valued Client,",
			wantPhrase:  "Notable highlights include Only one.",
			wantClosing: "We will continue to evaluate",
		},
		{
			name:        "no highlights does not error",
			profile:     nil,
			highlights:  []string{},
			wantName:    "Dear Valued Client,",
			wantPhrase:  "Notable highlights include .",
			wantClosing: "We will continue to evaluate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Generate(earningsEvent(true, tt.highlights...), Options{
				NarrativeType: models.NarrativeClientMessage,
				ClientProfile: tt.profile,
			})
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(text, tt.wantName))
			assert.Contains(t, text, tt.wantPhrase)
			assert.Contains(t, text, tt.wantClosing)
			assert.True(t, strings.HasSuffix(text, ClientMessageDisclaimer))
			assert.NotContains(t, text, "C.")
		})
	}
}

func TestGenerateEarnings_DefaultTemplate(t *testing.T) {
	for _, nt := range []models.NarrativeType{models.NarrativeNewsletter, models.NarrativeExecutiveSummary, "", "press_release"} {
		t.Run(string(nt), func(t *testing.T) {
			text, err := Generate(earningsEvent(true, "A", "B", "C"), Options{NarrativeType: nt})
			require.NoError(t, err)

			assert.Equal(t, "Apple Inc. Q4 2024 Earnings: Beat\n\n"+
				"Apple Inc. reported Q4 2024 earnings with EPS of $2.18 (est. $2.1) and revenue of 124.3B. "+
				"Key developments include A, B, C.", text)
		})
	}

	text, err := Generate(earningsEvent(false, "A"), Options{NarrativeType: models.NarrativeNewsletter})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Apple Inc. Q4 2024 Earnings: Miss"))
}

func TestGenerateEarnings_NoTicker(t *testing.T) {
	event := earningsEvent(true, "A")
	event.Ticker = ""

	text, err := Generate(event, Options{NarrativeType: models.NarrativeFlashNote})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "FLASH NOTE: Apple Inc. Q4 2024 Earnings"))
}

func TestGenerateEconomic(t *testing.T) {
	tests := []struct {
		name      string
		event     models.MarketEvent
		nt        models.NarrativeType
		contains  []string
		hasPrefix string
	}{
		{
			name:      "executive summary below expectations and falling",
			event:     economicEvent(3.2, 3.3, "down"),
			nt:        models.NarrativeExecutiveSummary,
			hasPrefix: "ECONOMIC UPDATE: CPI\n\n",
			contains: []string{
				"The latest CPI reading came in at 3.2%, declined from 3.4% and below the expected 3.3%. Inflation continues to moderate",
				"suggesting easing inflationary pressures.",
				"Strategic Implications: May support more accommodative monetary policy.",
				"Economic indicators are subject to revision.",
			},
		},
		{
			name:      "executive summary above expectations and rising",
			event:     economicEvent(3.5, 3.3, "up"),
			nt:        models.NarrativeExecutiveSummary,
			hasPrefix: "ECONOMIC UPDATE: CPI",
			contains: []string{
				"increased from 3.4% and above the expected 3.3%",
				"suggesting continued economic strength.",
				"Could influence central bank policy decisions.",
			},
		},
		{
			name:      "equal to expectations reads above",
			event:     economicEvent(3.3, 3.3, "down"),
			nt:        models.NarrativeFlashNote,
			hasPrefix: "CPI Update: Inflation continues to moderate\n\n",
			contains: []string{
				"The CPI declined to 3.3% from 3.4%, coming in above expectations of 3.3%.",
				"generally viewed as positive for markets.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Generate(tt.event, Options{NarrativeType: tt.nt})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(text, tt.hasPrefix), text)
			for _, want := range tt.contains {
				assert.Contains(t, text, want)
			}
		})
	}
}

func TestGenerateVolatility_SameForAllTypes(t *testing.T) {
	event := volatilityEvent(18.3)

	var first string
	for i, nt := range models.NarrativeTypes {
		text, err := Generate(event, Options{NarrativeType: nt})
		require.NoError(t, err)
		if i == 0 {
			first = text
			continue
		}
		assert.Equal(t, first, text)
	}

	assert.True(t, strings.HasPrefix(first, "Market Volatility Update\n\n"))
	assert.Contains(t, first, "with the VIX rising 18.3% to 16.8, triggered by Fed commentary. Current market sentiment is cautious.")
}

func TestGenerateVolatility_OneDecimalPlace(t *testing.T) {
	tests := map[float64]string{
		18:     "rising 18.0%",
		18.25:  "rising 18.3%",
		7.04:   "rising 7.0%",
		-2.349: "rising -2.3%",
		1.45:   "rising 1.4%",
		0.15:   "rising 0.1%",
		2.675:  "rising 2.7%",
		-0.25:  "rising -0.3%",
	}
	for change, want := range tests {
		text, err := Generate(volatilityEvent(change), Options{})
		require.NoError(t, err)
		assert.Contains(t, text, want)
	}
}

func TestGenerateGeneric(t *testing.T) {
	event := models.MarketEvent{
		ID:        "7",
		Type:      models.EventTypeCorporateAction,
		Ticker:    "ORCL",
		EventDate: time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC),
		Data: models.CorporateActionPayload{
			Company: "Oracle Corp.",
			Action:  "acquisition",
		},
	}

	text, err := Generate(event, Options{NarrativeType: models.NarrativeFlashNote})
	require.NoError(t, err)
	assert.Equal(t, "Market Update: corporate_action\n\n"+
		"Recent market activity related to ORCL on 3/5/2024.\n\n"+
		"This information is provided for educational purposes only and does not constitute investment advice. All investments carry risk.", text)

	event.Ticker = ""
	event.Type = "ipo_filing"
	event.Data = models.GenericPayload{}
	text, err = Generate(event, Options{})
	require.NoError(t, err)
	assert.Contains(t, text, "Market Update: ipo_filing")
	assert.Contains(t, text, "related to broader markets on 3/5/2024.")
}

// Only the event type selects a template; a templated payload on another type is ignored.
func TestGenerate_DispatchesOnEventType(t *testing.T) {
	tests := []struct {
		name      string
		eventType models.EventType
	}{
		{name: "other", eventType: models.EventTypeOther},
		{name: "corporate action", eventType: models.EventTypeCorporateAction},
		{name: "unrecognised", eventType: "ipo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := earningsEvent(true, "A")
			event.Type = tt.eventType

			text, err := Generate(event, Options{NarrativeType: models.NarrativeFlashNote})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(text, "Market Update: "+string(tt.eventType)+"\n\n"), text)
			assert.NotContains(t, text, "FLASH NOTE")
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	event := models.MarketEvent{Type: models.EventTypeOther, EventDate: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)}

	a, err := Generate(event, Options{})
	require.NoError(t, err)
	b, err := Generate(event, Options{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "1/2/2020")
}

// Missing required fields are rejected instead of rendered as placeholder text.
func TestGenerate_InvalidPayloadHardening(t *testing.T) {
	tests := []struct {
		name      string
		event     models.MarketEvent
		wantField string
	}{
		{
			name: "earnings missing eps estimate",
			event: func() models.MarketEvent {
				e := earningsEvent(true, "A")
				p := e.Data.(models.EarningsPayload)
				p.EPSEstimate = nil
				e.Data = p
				return e
			}(),
			wantField: "eps_estimate",
		},
		{
			name: "earnings missing highlights",
			event: func() models.MarketEvent {
				e := earningsEvent(true)
				p := e.Data.(models.EarningsPayload)
				p.KeyHighlights = nil
				e.Data = p
				return e
			}(),
			wantField: "key_highlights",
		},
		{
			name: "economic missing indicator",
			event: func() models.MarketEvent {
				e := economicEvent(3.2, 3.3, "down")
				p := e.Data.(models.EconomicIndicatorPayload)
				p.Indicator = ""
				e.Data = p
				return e
			}(),
			wantField: "indicator",
		},
		{
			name: "volatility missing change percent",
			event: func() models.MarketEvent {
				e := volatilityEvent(1)
				p := e.Data.(models.VolatilityPayload)
				p.ChangePercent = nil
				e.Data = p
				return e
			}(),
			wantField: "change_percent",
		},
		{
			name:      "earnings event without payload",
			event:     models.MarketEvent{Type: models.EventTypeEarningsRelease},
			wantField: "event_data",
		},
		{
			name: "payload kind does not match event type",
			event: func() models.MarketEvent {
				e := volatilityEvent(1)
				e.Type = models.EventTypeEarningsRelease
				return e
			}(),
			wantField: "event_data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Generate(tt.event, Options{NarrativeType: models.NarrativeFlashNote})
			require.Error(t, err)
			assert.Empty(t, text)
			assert.True(t, errors.Is(err, ErrInvalidPayload))

			var perr *PayloadError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantField, perr.Field)
		})
	}
}

func TestGenerate_ZeroValuesArePresent(t *testing.T) {
	event := volatilityEvent(0)
	text, err := Generate(event, Options{})
	require.NoError(t, err)
	assert.Contains(t, text, "rising 0.0%")
}

func TestGenerate_Concurrent(t *testing.T) {
	event := earningsEvent(true, "A", "B", "C")
	want, err := Generate(event, Options{NarrativeType: models.NarrativeClientMessage})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Generate(event, Options{NarrativeType: models.NarrativeClientMessage})
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
