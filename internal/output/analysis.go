package output

import (
	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation is the headline of a report: the debt strategy to follow and
// the home-loan extra repayment that saves the most interest.
type Recommendation struct {
	DebtStrategy       domain.PayoffStrategy
	DebtFreeMonths     int
	DebtInterestSaved  decimal.Decimal
	LoanScenario       string
	LoanInterestSaved  decimal.Decimal
	LoanTimeSavedMonths int
}

// AnalyzeReport extracts the headline recommendation.
// Extracted from the console formatter for testability.
func AnalyzeReport(report *domain.AssessmentReport) Recommendation {
	var rec Recommendation
	if d := report.Debts; d != nil {
		if best := d.Strategy(d.Recommended); best.Converged {
			rec.DebtStrategy = d.Recommended
			rec.DebtFreeMonths = best.PayoffMonth
			rec.DebtInterestSaved = d.InterestSaved
		}
	}
	if l := report.HomeLoan; l != nil {
		for _, s := range l.Scenarios {
			if !s.Comparison.Improved {
				continue
			}
			if rec.LoanScenario == "" || s.Comparison.InterestSaved.GreaterThan(rec.LoanInterestSaved) {
				rec.LoanScenario = s.Label
				rec.LoanInterestSaved = s.Comparison.InterestSaved
				rec.LoanTimeSavedMonths = s.Comparison.TimeSavedMonths
			}
		}
	}
	return rec
}
