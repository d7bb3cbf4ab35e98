package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicker(t *testing.T) {
	tests := []struct {
		input    string
		exchange string
		code     string
		str      string
	}{
		{input: "NASDAQ:AAPL", exchange: "NASDAQ", code: "AAPL", str: "NASDAQ:AAPL"},
		{input: "nyse:ibm", exchange: "NYSE", code: "IBM", str: "NYSE:IBM"},
		{input: "NYSE.IBM", exchange: "NYSE", code: "IBM", str: "NYSE:IBM"},
		{input: "BRK.B", exchange: "", code: "BRK.B", str: "BRK.B"},
		{input: " spy ", exchange: "", code: "SPY", str: "SPY"},
		{input: "", exchange: "", code: "", str: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ticker := ParseTicker(tt.input)
			assert.Equal(t, tt.exchange, ticker.Exchange)
			assert.Equal(t, tt.code, ticker.Code)
			assert.Equal(t, tt.str, ticker.String())
		})
	}
}

func TestNormalizeTicker(t *testing.T) {
	assert.Equal(t, "AAPL", NormalizeTicker("nasdaq:aapl"))
	assert.Equal(t, "VIX", NormalizeTicker("vix"))
	assert.Equal(t, "", NormalizeTicker("   "))
}
