package output

import (
	"strconv"

	"github.com/finassess/assessment-engine/internal/domain"
	money "github.com/finassess/assessment-engine/pkg/decimal"
	"github.com/finassess/assessment-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// NotApplicable is shown wherever a figure has no meaningful value.
const NotApplicable = "-"

// FormatCurrency formats a decimal as dollars with thousands separators and 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatTerm renders a loan term, or "-" for a plan that never repays.
func FormatTerm(r domain.AmortizationResult) string {
	if r.Infinite {
		return NotApplicable
	}
	return dateutil.FormatMonths(r.TermMonths)
}

// FormatInterest renders total interest, or "-" for a plan that never repays.
func FormatInterest(r domain.AmortizationResult) string {
	if r.Infinite {
		return NotApplicable
	}
	return FormatCurrency(r.TotalInterest)
}

// FormatTimeSaved renders a comparison's time saving, or "-" when it is not an improvement.
func FormatTimeSaved(c domain.AmortizationComparison) string {
	if !c.Improved || c.TimeSavedMonths == 0 {
		return NotApplicable
	}
	return dateutil.FormatMonths(c.TimeSavedMonths)
}

// FormatInterestSaved renders a comparison's interest saving, or "-" when it is not an improvement.
func FormatInterestSaved(c domain.AmortizationComparison) string {
	if !c.Improved || c.InterestSaved.IsZero() {
		return NotApplicable
	}
	return FormatCurrency(c.InterestSaved)
}

// FormatPayoff renders how long a payoff plan runs, or "-" when it never clears.
func FormatPayoff(r domain.PayoffResult) string {
	if !r.Converged {
		return NotApplicable
	}
	return dateutil.FormatMonths(r.PayoffMonth)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
