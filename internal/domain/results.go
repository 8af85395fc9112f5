package domain

import "github.com/shopspring/decimal"

// BalancePoint is a remaining balance sampled at a period (month) index.
type BalancePoint struct {
	Period  int             `json:"period"`
	Balance decimal.Decimal `json:"balance"`
}

// AmortizationResult is the outcome of simulating one loan to payoff.
//
// When Infinite is set the payment never amortizes the loan (or the
// iteration cap was reached); TermMonths and TotalInterest are then
// meaningless and must not be formatted as durations or amounts.
type AmortizationResult struct {
	TermMonths    int             `json:"term_months"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	Infinite      bool            `json:"infinite"`
	BalanceSeries []BalancePoint  `json:"balance_series"`
}

// Series converts the balance samples into a chartable series.
func (r AmortizationResult) Series() Series {
	s := make(Series, 0, len(r.BalanceSeries))
	for _, p := range r.BalanceSeries {
		s = append(s, SeriesPoint{Period: p.Period, Value: p.Balance})
	}
	return s
}

// AmortizationComparison describes how a candidate repayment plan compares with a baseline.
// The saved figures are only meaningful when Improved is set.
type AmortizationComparison struct {
	TimeSavedMonths int             `json:"time_saved_months"`
	InterestSaved   decimal.Decimal `json:"interest_saved"`
	Improved        bool            `json:"improved"`
}

// PayoffPeriod is the state of every debt at the end of a month.
type PayoffPeriod struct {
	Month        int               `json:"month"`
	TotalBalance decimal.Decimal   `json:"total_balance"`
	Balances     []decimal.Decimal `json:"balances"`
}

// DebtPayoff summarises one debt within a multi-debt simulation.
type DebtPayoff struct {
	Type         string          `json:"type"`
	PaidOffMonth int             `json:"paid_off_month"` // 0 when never paid off
	InterestPaid decimal.Decimal `json:"interest_paid"`
}

// PayoffResult is the outcome of a multi-debt simulation.
// Converged is false when the month cap was reached before every debt cleared.
type PayoffResult struct {
	Strategy          PayoffStrategy  `json:"strategy"`
	Schedule          []PayoffPeriod  `json:"schedule"`
	PayoffMonth       int             `json:"payoff_month"`
	TotalInterestPaid decimal.Decimal `json:"total_interest_paid"`
	Converged         bool            `json:"converged"`
	Debts             []DebtPayoff    `json:"debts"`
}

// Series converts the total remaining balance per month into a chartable series.
func (r PayoffResult) Series() Series {
	s := make(Series, 0, len(r.Schedule))
	for _, p := range r.Schedule {
		s = append(s, SeriesPoint{Period: p.Month, Value: p.TotalBalance})
	}
	return s
}

// GrowthPoint is one month of a compound growth projection.
type GrowthPoint struct {
	Month                   int             `json:"month"`
	Balance                 decimal.Decimal `json:"balance"`
	CumulativeContributions decimal.Decimal `json:"cumulative_contributions"`
}

// InterestEarned returns growth above contributions, never negative.
func (p GrowthPoint) InterestEarned() decimal.Decimal {
	earned := p.Balance.Sub(p.CumulativeContributions)
	if earned.IsNegative() {
		return decimal.Zero
	}
	return earned
}
