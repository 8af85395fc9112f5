package domain

import (
	"github.com/shopspring/decimal"

	money "github.com/finassess/assessment-engine/pkg/decimal"
)

// DebtAccount is one debt as the simulators see it. All fields are non-negative.
type DebtAccount struct {
	Type                      string          `json:"type"`
	Balance                   decimal.Decimal `json:"balance"`
	MinimumPayment            decimal.Decimal `json:"minimum_payment"`
	AnnualInterestRatePercent decimal.Decimal `json:"annual_interest_rate_percent"`
}

// RawDebt is a debt row as submitted by the form layer.
type RawDebt struct {
	Type                      string `yaml:"type" json:"type"`
	Balance                   string `yaml:"balance" json:"balance"`
	MinimumPayment            string `yaml:"minimum_payment" json:"minimum_payment"`
	AnnualInterestRatePercent string `yaml:"annual_interest_rate_percent" json:"annual_interest_rate_percent"`
}

// ParseDebt converts a raw debt row; malformed numbers become zero.
func ParseDebt(raw RawDebt) DebtAccount {
	return DebtAccount{
		Type:                      raw.Type,
		Balance:                   money.ParseAmount(raw.Balance),
		MinimumPayment:            money.ParseAmount(raw.MinimumPayment),
		AnnualInterestRatePercent: money.ParseAmount(raw.AnnualInterestRatePercent),
	}
}

// ParseDebts converts every raw debt row.
func ParseDebts(raw []RawDebt) []DebtAccount {
	debts := make([]DebtAccount, 0, len(raw))
	for _, r := range raw {
		debts = append(debts, ParseDebt(r))
	}
	return debts
}

// PayoffStrategy selects which debt receives the extra budget first.
type PayoffStrategy string

const (
	// Avalanche targets the highest interest rate first.
	Avalanche PayoffStrategy = "avalanche"
	// Snowball targets the lowest balance first.
	Snowball PayoffStrategy = "snowball"
)

// RolloverPolicy controls what happens to the minimum payment of a debt once it is paid off.
type RolloverPolicy string

const (
	// RolloverNone drops a paid-off debt's minimum from the monthly outflow.
	RolloverNone RolloverPolicy = "none"
	// RolloverFreedMinimums adds freed minimums to the extra budget and lets
	// unspent extra cascade to the next target in the same month.
	RolloverFreedMinimums RolloverPolicy = "freed_minimums"
)

// PayoffOptions parameterises a multi-debt simulation.
type PayoffOptions struct {
	Strategy           PayoffStrategy  `json:"strategy"`
	ExtraMonthlyBudget decimal.Decimal `json:"extra_monthly_budget"`
	Rollover           RolloverPolicy  `json:"rollover"`
	ReorderMonthly     bool            `json:"reorder_monthly"`
	MaxMonths          int             `json:"max_months,omitempty"`
}
