package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/finassess/assessment-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders the detailed console report via the pluggable interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.AssessmentReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "DETAILED FINANCIAL ASSESSMENT")
	fmt.Fprintln(&buf, "=================================================================================")
	if report.Name != "" {
		fmt.Fprintf(&buf, "Assessment: %s\n", report.Name)
	}
	fmt.Fprintf(&buf, "Projection start: %s\n", dateutil.FormatMonthYear(report.StartDate))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeBudget(&buf, report)
	if report.HomeLoan != nil {
		WriteHomeLoan(&buf, report.HomeLoan)
	}
	if report.Debts != nil {
		WriteDebts(&buf, report.Debts)
	}
	for _, g := range []*domain.GrowthReport{report.Superannuation, report.Investment} {
		if g != nil {
			WriteGrowth(&buf, g)
		}
	}

	if len(report.Recommendations) > 0 {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		for _, r := range report.Recommendations {
			fmt.Fprintf(&buf, "• %s\n", r)
		}
	}
	return buf.Bytes(), nil
}

func writeBudget(buf io.Writer, report *domain.AssessmentReport) {
	b := report.Budget
	fmt.Fprintln(buf, "MONTHLY CASH FLOW")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintln(buf, "INCOME SOURCES:")
	for _, c := range b.IncomeByCategory {
		amountLine(buf, "  "+c.Category, c.Monthly)
	}
	amountLine(buf, "TOTAL GROSS INCOME", b.MonthlyGrossIncome)
	amountLine(buf, fmt.Sprintf("  Income tax (%s)", report.Tax.FinancialYear), report.Tax.AnnualTax.Div(decimal.NewFromInt(12)))
	amountLine(buf, "NET TAKE-HOME PAY", b.MonthlyNetIncome)
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "EXPENSES:")
	for _, c := range b.ExpensesByCategory {
		amountLine(buf, "  "+c.Category, c.Monthly)
	}
	amountLine(buf, "TOTAL EXPENSES", b.MonthlyExpenses)
	amountLine(buf, "TOTAL REPAYMENTS", b.MonthlyDebtRepayments)
	fmt.Fprintln(buf, strings.Repeat("-", 50))
	amountLine(buf, "SURPLUS", b.MonthlySurplus)
	fmt.Fprintf(buf, "%-35s %15s\n", "Savings rate", FormatPercentage(b.SavingsRatePercent))
	fmt.Fprintf(buf, "%-35s %15s\n", "Debt-to-income", FormatPercentage(b.DebtToIncomePercent))
	fmt.Fprintf(buf, "%-35s %15s\n", "Effective tax rate", FormatPercentage(report.Tax.EffectiveRatePercent))
	fmt.Fprintln(buf)
}

// WriteHomeLoan renders the home loan scenario table.
func WriteHomeLoan(buf io.Writer, l *domain.LoanReport) {
	fmt.Fprintln(buf, "HOME LOAN")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	amountLine(buf, "Balance", l.Principal)
	fmt.Fprintf(buf, "%-35s %15s\n", "Interest rate", FormatPercentage(l.AnnualRatePercent))
	amountLine(buf, "Monthly repayment", l.MonthlyRepayment)
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%-22s %18s %15s %15s %18s %10s\n", "SCENARIO", "TERM", "INTEREST", "SAVED", "TIME SAVED", "PAID OFF")
	fmt.Fprintln(buf, strings.Repeat("-", 103))
	for _, s := range l.Scenarios {
		paidOff := NotApplicable
		if s.PayoffDate != nil {
			paidOff = dateutil.FormatMonthYear(*s.PayoffDate)
		}
		fmt.Fprintf(buf, "%-22s %18s %15s %15s %18s %10s\n",
			s.Label, FormatTerm(s.Result), FormatInterest(s.Result),
			FormatInterestSaved(s.Comparison), FormatTimeSaved(s.Comparison), paidOff)
	}
	if l.TargetMonths > 0 {
		fmt.Fprintln(buf)
		if l.RequiredExtra != nil {
			fmt.Fprintf(buf, "To repay within %s pay an extra %s per month\n", dateutil.FormatMonths(l.TargetMonths), FormatCurrency(*l.RequiredExtra))
		} else {
			fmt.Fprintf(buf, "The loan cannot be repaid within %s\n", dateutil.FormatMonths(l.TargetMonths))
		}
	}
	fmt.Fprintln(buf)
}

// WriteDebts renders the debt strategy comparison and payoff order.
func WriteDebts(buf io.Writer, d *domain.DebtReport) {
	fmt.Fprintln(buf, "DEBT REPAYMENT")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	amountLine(buf, "Total balance", d.TotalBalance)
	amountLine(buf, "Minimum repayments", d.TotalMinimums)
	amountLine(buf, "Extra budget", d.ExtraMonthlyBudget)
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%-22s %18s %15s\n", "STRATEGY", "DEBT FREE IN", "INTEREST")
	fmt.Fprintln(buf, strings.Repeat("-", 57))
	for _, r := range []struct {
		label  string
		result domain.PayoffResult
	}{{"minimums only", d.MinimumsOnly}, {"avalanche", d.Avalanche}, {"snowball", d.Snowball}} {
		interest := NotApplicable
		if r.result.Converged {
			interest = FormatCurrency(r.result.TotalInterestPaid)
		}
		fmt.Fprintf(buf, "%-22s %18s %15s\n", r.label, FormatPayoff(r.result), interest)
	}
	fmt.Fprintln(buf)
	best := d.Strategy(d.Recommended)
	fmt.Fprintf(buf, "PAYOFF ORDER (%s):\n", strings.ToUpper(string(d.Recommended)))
	for _, debt := range best.Debts {
		when := NotApplicable
		if debt.PaidOffMonth > 0 {
			when = "month " + intToString(debt.PaidOffMonth)
		}
		fmt.Fprintf(buf, "  %-33s %15s  interest %s\n", debt.Type, when, FormatCurrency(debt.InterestPaid))
	}
	fmt.Fprintln(buf)
}

// WriteGrowth renders a yearly growth projection.
func WriteGrowth(buf io.Writer, g *domain.GrowthReport) {
	fmt.Fprintln(buf, strings.ToUpper(g.Name))
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	amountLine(buf, "Starting balance", g.InitialBalance)
	amountLine(buf, "Monthly contribution", g.MonthlyContribution)
	fmt.Fprintf(buf, "%-35s %15s\n", "Annual return", FormatPercentage(g.AnnualRatePercent))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%-10s %18s %18s %15s\n", "YEAR", "BALANCE", "CONTRIBUTED", "GROWTH")
	for _, p := range g.Projection {
		fmt.Fprintf(buf, "%-10s %18s %18s %15s\n", intToString(p.Month/12), FormatCurrency(p.Balance), FormatCurrency(p.CumulativeContributions), FormatCurrency(p.InterestEarned()))
	}
	if len(g.Scenarios) > 1 {
		fmt.Fprintln(buf)
		for _, s := range g.Scenarios {
			amountLine(buf, "  "+s.Label, s.FinalBalance)
		}
	}
	fmt.Fprintln(buf)
}

func amountLine(buf io.Writer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "%-35s %15s\n", label, FormatCurrency(amount))
}
