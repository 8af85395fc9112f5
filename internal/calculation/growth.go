package calculation

import (
	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxGrowthMonths caps a growth projection at the same horizon as a loan.
const MaxGrowthMonths = MaxAmortizationMonths

// ProjectGrowth compounds a balance monthly and adds a contribution at the end
// of every month. The first sample is month 0, where the initial balance
// counts as contributed capital. totalMonths is clamped to [0, MaxGrowthMonths].
func ProjectGrowth(initialBalance, monthlyContribution, annualRatePercent decimal.Decimal, totalMonths int) []domain.GrowthPoint {
	if totalMonths < 0 {
		totalMonths = 0
	}
	if totalMonths > MaxGrowthMonths {
		totalMonths = MaxGrowthMonths
	}
	balance := nonNegative(initialBalance)
	contribution := nonNegative(monthlyContribution)
	factor := decimal.NewFromInt(1).Add(annualRatePercent.Div(twelveHundred))
	if factor.IsNegative() {
		factor = decimal.Zero
	}

	points := make([]domain.GrowthPoint, 0, totalMonths+1)
	contributed := balance
	points = append(points, domain.GrowthPoint{Month: 0, Balance: balance, CumulativeContributions: contributed})
	for month := 1; month <= totalMonths; month++ {
		balance = balance.Mul(factor).Add(contribution).Round(internalScale)
		contributed = contributed.Add(contribution)
		points = append(points, domain.GrowthPoint{Month: month, Balance: balance, CumulativeContributions: contributed})
	}
	return points
}

// YearlySamples keeps month 0, every twelfth month and the final month.
func YearlySamples(points []domain.GrowthPoint) []domain.GrowthPoint {
	var out []domain.GrowthPoint
	for i, p := range points {
		if p.Month%12 == 0 || i == len(points)-1 {
			out = append(out, p)
		}
	}
	return out
}

// GrowthSeries converts projected balances into a chartable series.
func GrowthSeries(points []domain.GrowthPoint) domain.Series {
	s := make(domain.Series, 0, len(points))
	for _, p := range points {
		s = append(s, domain.SeriesPoint{Period: p.Month, Value: p.Balance})
	}
	return s
}
