package common

import (
	"strings"
)

// Ticker represents a parsed, optionally exchange-qualified ticker.
// Format: EXCHANGE:CODE (e.g., "NYSE:IBM", "NASDAQ:AAPL") or a bare CODE.
type Ticker struct {
	// Exchange is the exchange code, empty when the input carried none
	Exchange string
	// Code is the security code (e.g., "AAPL", "SPY", "VIX")
	Code string
	// Raw is the original ticker string
	Raw string
}

// knownExchanges are accepted as an EXCHANGE.CODE prefix
var knownExchanges = map[string]struct{}{
	"NYSE":   {},
	"NASDAQ": {},
	"AMEX":   {},
	"CBOE":   {},
	"ASX":    {},
	"LSE":    {},
	"TSX":    {},
}

// ParseTicker parses a ticker string.
// Supports formats:
//   - "NASDAQ:AAPL" -> Exchange="NASDAQ", Code="AAPL" (colon separator)
//   - "NYSE.IBM" -> Exchange="NYSE", Code="IBM" (dot separator, known exchanges only)
//   - "aapl" -> Exchange="", Code="AAPL" (normalized to uppercase)
//
// Codes containing dots such as "BRK.B" are kept whole.
func ParseTicker(ticker string) Ticker {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return Ticker{}
	}

	if idx := strings.Index(ticker, ":"); idx > 0 {
		return Ticker{
			Exchange: strings.ToUpper(ticker[:idx]),
			Code:     strings.ToUpper(strings.TrimSpace(ticker[idx+1:])),
			Raw:      ticker,
		}
	}

	if idx := strings.Index(ticker, "."); idx > 0 {
		possibleExchange := strings.ToUpper(ticker[:idx])
		if _, ok := knownExchanges[possibleExchange]; ok {
			return Ticker{
				Exchange: possibleExchange,
				Code:     strings.ToUpper(ticker[idx+1:]),
				Raw:      ticker,
			}
		}
	}

	return Ticker{
		Code: strings.ToUpper(ticker),
		Raw:  ticker,
	}
}

// String returns the exchange-qualified ticker, or the bare code without an exchange.
func (t Ticker) String() string {
	if t.Exchange == "" || t.Code == "" {
		return t.Code
	}
	return t.Exchange + ":" + t.Code
}

// NormalizeTicker returns the uppercase security code for any accepted form
func NormalizeTicker(ticker string) string {
	return ParseTicker(ticker).Code
}
