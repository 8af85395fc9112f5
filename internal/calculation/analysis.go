package calculation

import (
	"fmt"

	"github.com/finassess/assessment-engine/internal/domain"
	money "github.com/finassess/assessment-engine/pkg/decimal"
	"github.com/finassess/assessment-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// lowSavingsRatePercent is the savings rate below which the report suggests trimming expenses.
var lowSavingsRatePercent = decimal.NewFromInt(10)

func formatMoney(d decimal.Decimal) string {
	return money.NewMoneyFromDecimal(d).Format()
}

// generateRecommendations turns the derived figures into plain-language next steps.
func (ce *CalculationEngine) generateRecommendations(report *domain.AssessmentReport) []string {
	var recs []string
	budget := report.Budget

	switch {
	case budget.MonthlySurplus.IsNegative():
		recs = append(recs, fmt.Sprintf("Spending and repayments exceed take-home pay by %s per month; reduce expenses before committing to extra repayments.",
			formatMoney(budget.MonthlySurplus.Neg())))
	case budget.SavingsRatePercent.LessThan(lowSavingsRatePercent):
		recs = append(recs, fmt.Sprintf("Only %s%% of take-home pay is left each month (%s); review the largest expense categories.",
			budget.SavingsRatePercent.StringFixed(1), formatMoney(budget.MonthlySurplus)))
	default:
		recs = append(recs, fmt.Sprintf("%s per month is available after expenses and repayments.", formatMoney(budget.MonthlySurplus)))
	}

	if d := report.Debts; d != nil {
		best := d.Strategy(d.Recommended)
		if best.Converged {
			msg := fmt.Sprintf("Use the %s strategy to clear all debts in %s", d.Recommended, dateutil.FormatMonths(best.PayoffMonth))
			if d.InterestSaved.GreaterThanOrEqual(cent) {
				msg += fmt.Sprintf(", saving %s in interest versus minimum payments", formatMoney(d.InterestSaved))
			}
			recs = append(recs, msg+".")
		} else {
			recs = append(recs, fmt.Sprintf("Current payments do not clear the debts within %s; increase the monthly repayment budget.",
				dateutil.FormatMonths(MaxPayoffMonths)))
		}
	}

	if l := report.HomeLoan; l != nil && len(l.Scenarios) > 0 {
		if l.Scenarios[0].Result.Infinite {
			recs = append(recs, fmt.Sprintf("The home loan repayment of %s per month does not cover the interest charged.", formatMoney(l.MonthlyRepayment)))
		} else if best, ok := bestLoanScenario(l.Scenarios[1:]); ok {
			recs = append(recs, fmt.Sprintf("Paying %s on the home loan saves %s in interest and %s.",
				best.Label, formatMoney(best.Comparison.InterestSaved), dateutil.FormatMonths(best.Comparison.TimeSavedMonths)))
		}
		if l.RequiredExtra != nil && l.RequiredExtra.IsPositive() {
			recs = append(recs, fmt.Sprintf("An extra %s per month repays the home loan within %s.",
				formatMoney(*l.RequiredExtra), dateutil.FormatMonths(l.TargetMonths)))
		}
	}

	for _, g := range []*domain.GrowthReport{report.Superannuation, report.Investment} {
		if g == nil {
			continue
		}
		recs = append(recs, fmt.Sprintf("%s is projected to reach %s in %s, including %s of growth.",
			g.Name, formatMoney(g.FinalBalance), dateutil.FormatMonths(g.Months), formatMoney(g.InterestEarned)))
	}
	return recs
}

// bestLoanScenario picks the improved scenario saving the most interest.
func bestLoanScenario(scenarios []domain.LoanScenario) (domain.LoanScenario, bool) {
	var best domain.LoanScenario
	found := false
	for _, s := range scenarios {
		if !s.Comparison.Improved {
			continue
		}
		if !found || s.Comparison.InterestSaved.GreaterThan(best.Comparison.InterestSaved) {
			best = s
			found = true
		}
	}
	return best, found
}
