package output

import (
	"fmt"

	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/finassess/assessment-engine/pkg/dateutil"
)

// SummaryRow is one display-ready line of the summary table. Values are
// already formatted ("$12,345.67", "3 years 4 months", "Jan 2030" or "-").
type SummaryRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// BuildSummaryTable flattens a report into label/value rows. It is the
// contract consumed by the narrative layer and the simple CSV export.
func BuildSummaryTable(report *domain.AssessmentReport) []SummaryRow {
	var rows []SummaryRow
	add := func(label, value string) { rows = append(rows, SummaryRow{Label: label, Value: value}) }

	b := report.Budget
	add("Monthly gross income", FormatCurrency(b.MonthlyGrossIncome))
	add("Monthly take-home pay", FormatCurrency(b.MonthlyNetIncome))
	add(fmt.Sprintf("Annual tax (%s)", report.Tax.FinancialYear), FormatCurrency(report.Tax.AnnualTax))
	add("Effective tax rate", FormatPercentage(report.Tax.EffectiveRatePercent))
	add("Monthly expenses", FormatCurrency(b.MonthlyExpenses))
	add("Monthly repayments", FormatCurrency(b.MonthlyDebtRepayments))
	add("Monthly surplus", FormatCurrency(b.MonthlySurplus))
	add("Savings rate", FormatPercentage(b.SavingsRatePercent))
	add("Debt-to-income ratio", FormatPercentage(b.DebtToIncomePercent))

	if l := report.HomeLoan; l != nil {
		add("Home loan balance", FormatCurrency(l.Principal))
		add("Home loan repayment", FormatCurrency(l.MonthlyRepayment))
		for i, s := range l.Scenarios {
			payoff := FormatTerm(s.Result)
			if s.PayoffDate != nil {
				payoff = fmt.Sprintf("%s (%s)", payoff, dateutil.FormatMonthYear(*s.PayoffDate))
			}
			add(fmt.Sprintf("Home loan payoff (%s)", s.Label), payoff)
			add(fmt.Sprintf("Home loan interest (%s)", s.Label), FormatInterest(s.Result))
			if i == 0 {
				continue
			}
			add(fmt.Sprintf("Time saved (%s)", s.Label), FormatTimeSaved(s.Comparison))
			add(fmt.Sprintf("Interest saved (%s)", s.Label), FormatInterestSaved(s.Comparison))
		}
		if l.TargetMonths > 0 {
			value := NotApplicable
			if l.RequiredExtra != nil {
				value = FormatCurrency(*l.RequiredExtra) + " per month"
			}
			add(fmt.Sprintf("Extra needed to repay in %s", dateutil.FormatMonths(l.TargetMonths)), value)
		}
	}

	if d := report.Debts; d != nil {
		add("Total debt", FormatCurrency(d.TotalBalance))
		add("Recommended strategy", string(d.Recommended))
		add("Debt free in", FormatPayoff(d.Strategy(d.Recommended)))
		plans := []struct {
			label  string
			result domain.PayoffResult
		}{
			{"minimums only", d.MinimumsOnly},
			{string(domain.Avalanche), d.Avalanche},
			{string(domain.Snowball), d.Snowball},
		}
		for _, p := range plans {
			interest := NotApplicable
			if p.result.Converged {
				interest = FormatCurrency(p.result.TotalInterestPaid)
			}
			add(fmt.Sprintf("Debt interest (%s)", p.label), interest)
		}
		saved := NotApplicable
		if d.InterestSaved.IsPositive() {
			saved = FormatCurrency(d.InterestSaved)
		}
		add("Interest saved vs minimums", saved)
	}

	for _, g := range []*domain.GrowthReport{report.Superannuation, report.Investment} {
		if g == nil {
			continue
		}
		add(fmt.Sprintf("%s balance in %s", g.Name, dateutil.FormatMonths(g.Months)), FormatCurrency(g.FinalBalance))
		add(fmt.Sprintf("%s growth", g.Name), FormatCurrency(g.InterestEarned))
		for _, s := range g.Scenarios[min(1, len(g.Scenarios)):] {
			add(fmt.Sprintf("%s balance (%s)", g.Name, s.Label), FormatCurrency(s.FinalBalance))
		}
	}
	return rows
}
