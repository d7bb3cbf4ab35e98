package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/storyteller/internal/models"
)

func TestApplyCorrections(t *testing.T) {
	tests := []struct {
		name        string
		disclaimers []string
		want        string
	}{
		{name: "none", disclaimers: nil, want: "Body"},
		{name: "empty", disclaimers: []string{}, want: "Body"},
		{name: "single", disclaimers: []string{"X"}, want: "Body\n\nDISCLAIMER: X"},
		{name: "ordered", disclaimers: []string{"X", "Y"}, want: "Body\n\nDISCLAIMER: X\n\nDISCLAIMER: Y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := models.ComplianceCheckResult{RequiredDisclaimers: tt.disclaimers}
			assert.Equal(t, tt.want, ApplyCorrections("Body", result))
		})
	}
}

func TestApplyCorrections_NotIdempotent(t *testing.T) {
	result := models.ComplianceCheckResult{RequiredDisclaimers: []string{"X"}}

	once := ApplyCorrections("Body", result)
	twice := ApplyCorrections(once, result)

	assert.Equal(t, "Body\n\nDISCLAIMER: X\n\nDISCLAIMER: X", twice)
}
