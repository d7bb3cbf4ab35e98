package models

// RiskProfile is a client's stated appetite for investment risk
type RiskProfile string

const (
	RiskProfileConservative RiskProfile = "conservative"
	RiskProfileModerate     RiskProfile = "moderate"
	RiskProfileAggressive   RiskProfile = "aggressive"
)

// ClientProfile describes the audience a client message is written for
type ClientProfile struct {
	ID               string      `json:"id" toml:"id" yaml:"id"`
	Name             string      `json:"client_name" toml:"name" yaml:"name"`
	RiskProfile      RiskProfile `json:"risk_profile" toml:"risk_profile" yaml:"risk_profile"`
	Segment          string      `json:"segment" toml:"segment" yaml:"segment"`
	Objectives       []string    `json:"investment_objectives,omitempty" toml:"objectives" yaml:"objectives"`
	EligibleProducts []string    `json:"eligible_products,omitempty" toml:"eligible_products" yaml:"eligible_products"`
}
