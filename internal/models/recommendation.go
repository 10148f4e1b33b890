package models

import (
	"bytes"
	"encoding/json"
)

// RateAmount is one entry of breakdown_with_rates.
type RateAmount struct {
	Rate   float64 `json:"rate" yaml:"rate"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// UnmarshalJSON accepts either an object or a bare number, since some service
// versions send plain amounts under breakdown_with_rates.
func (r *RateAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var amount float64
		if err := json.Unmarshal(data, &amount); err != nil {
			return err
		}
		*r = RateAmount{Amount: amount}
		return nil
	}
	type plain RateAmount
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = RateAmount(p)
	return nil
}

// CardRecommendation is one card as scored by the remote service. ccopt only
// displays and aggregates these numbers.
type CardRecommendation struct {
	CardID               string                `json:"card_id" yaml:"card_id"`
	CardName             string                `json:"card_name" yaml:"card_name"`
	Issuer               string                `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	Notes                string                `json:"notes,omitempty" yaml:"notes,omitempty"`
	AnnualRewards        float64               `json:"annual_rewards" yaml:"annual_rewards"`
	AnnualFee            float64               `json:"annual_fee" yaml:"annual_fee"`
	Credits              float64               `json:"credits" yaml:"credits"`
	TotalPossibleCredits float64               `json:"total_possible_credits" yaml:"total_possible_credits"`
	NetRewards           float64               `json:"net_rewards" yaml:"net_rewards"`
	FirstYearRewards     float64               `json:"first_year_rewards" yaml:"first_year_rewards"`
	Breakdown            map[string]float64    `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
	BreakdownWithRates   map[string]RateAmount `json:"breakdown_with_rates,omitempty" yaml:"breakdown_with_rates,omitempty"`

	SignupBonus            float64 `json:"signup_bonus,omitempty" yaml:"signup_bonus,omitempty"`
	SignupBonusValue       float64 `json:"signup_bonus_value,omitempty" yaml:"signup_bonus_value,omitempty"`
	SignupSpendRequirement float64 `json:"signup_spend_requirement,omitempty" yaml:"signup_spend_requirement,omitempty"`
	SignupMonths           int     `json:"signup_months,omitempty" yaml:"signup_months,omitempty"`

	IsMultiCard  bool     `json:"is_multi_card,omitempty" yaml:"is_multi_card,omitempty"`
	CardNames    []string `json:"card_names,omitempty" yaml:"card_names,omitempty"`
	StrategyName string   `json:"strategy_name,omitempty" yaml:"strategy_name,omitempty"`
}

// HasSignupBonus reports whether a signup bonus should be shown.
func (c CardRecommendation) HasSignupBonus() bool {
	return c.SignupBonus > 0
}

// SignupValue is the dollar value of the signup bonus.
func (c CardRecommendation) SignupValue() float64 {
	if c.SignupBonusValue > 0 {
		return c.SignupBonusValue
	}
	return c.SignupBonus * PointValueUSD
}

// Strategy is a multi-card bundle computed by the service.
type Strategy struct {
	Name               string             `json:"name" yaml:"name"`
	Description        string             `json:"description,omitempty" yaml:"description,omitempty"`
	Cards              []string           `json:"cards" yaml:"cards"`
	TotalAnnualRewards float64            `json:"total_annual_rewards" yaml:"total_annual_rewards"`
	TotalAnnualFees    float64            `json:"total_annual_fees" yaml:"total_annual_fees"`
	TotalCredits       float64            `json:"total_credits,omitempty" yaml:"total_credits,omitempty"`
	NetRewards         float64            `json:"net_rewards" yaml:"net_rewards"`
	Breakdown          map[string]float64 `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
}

// RecommendationResponse is the service's reply.
type RecommendationResponse struct {
	Success              bool                 `json:"success" yaml:"success"`
	Error                string               `json:"error,omitempty" yaml:"error,omitempty"`
	TotalMonthlySpending float64              `json:"total_monthly_spending" yaml:"total_monthly_spending"`
	TotalAnnualSpending  float64              `json:"total_annual_spending" yaml:"total_annual_spending"`
	Recommendations      []CardRecommendation `json:"recommendations" yaml:"recommendations"`
	MultiCardStrategies  []Strategy           `json:"multi_card_strategies,omitempty" yaml:"multi_card_strategies,omitempty"`
}

// PortfolioSummary aggregates a user-selected set of recommendations.
type PortfolioSummary struct {
	TotalRewards float64 `json:"total_rewards" yaml:"total_rewards"`
	TotalFees    float64 `json:"total_fees" yaml:"total_fees"`
	TotalCredits float64 `json:"total_credits" yaml:"total_credits"`
	NetValue     float64 `json:"net_value" yaml:"net_value"`
}
