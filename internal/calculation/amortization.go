package calculation

import (
	"github.com/finassess/assessment-engine/internal/domain"
	money "github.com/finassess/assessment-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

const (
	// MaxAmortizationMonths caps a loan simulation at 60 years. Reaching the cap
	// is reported exactly like a payment that never covers interest.
	MaxAmortizationMonths = 720

	// MaxProjectionYears is the longest loan term or growth horizon accepted as input.
	MaxProjectionYears = MaxAmortizationMonths / 12

	// internalScale bounds the decimal places carried between periods.
	internalScale int32 = 10
)

var (
	// BalanceTolerance is the remaining balance treated as fully repaid (half a cent).
	BalanceTolerance = decimal.RequireFromString("0.005")

	hundred       = decimal.NewFromInt(100)
	twelveHundred = decimal.NewFromInt(1200)
	cent          = decimal.RequireFromString("0.01")
)

// MonthlyRate converts an annual percentage rate into a monthly fraction.
// Negative rates are treated as zero.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	if !annualRatePercent.IsPositive() {
		return decimal.Zero
	}
	return annualRatePercent.Div(twelveHundred)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	return money.NewMoneyFromDecimal(d).ClampZero().Decimal
}

func paidOff(balance decimal.Decimal) bool {
	return balance.LessThanOrEqual(BalanceTolerance)
}

// AnnuityPayment returns the fixed monthly payment that repays principal over
// termMonths at the given annual rate. Terms longer than MaxAmortizationMonths
// are clamped to it.
func AnnuityPayment(principal, annualRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	principal = nonNegative(principal)
	if termMonths <= 0 || principal.IsZero() {
		return decimal.Zero
	}
	if termMonths > MaxAmortizationMonths {
		termMonths = MaxAmortizationMonths
	}
	rate := MonthlyRate(annualRatePercent)
	if rate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(termMonths)))
	}

	growth := decimal.NewFromInt(1)
	onePlusRate := growth.Add(rate)
	for i := 0; i < termMonths; i++ {
		growth = growth.Mul(onePlusRate).Round(2 * internalScale)
	}
	return principal.Mul(rate).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
}

// Amortize simulates a loan month by month until it is repaid.
//
// Each month interest accrues on the balance, then basePayment+extraPayment is
// paid (never more than the balance). The balance is sampled every twelve
// periods and at payoff. A payment that cannot cover the first month's
// interest is rejected up front as Infinite; so is a run that hits
// MaxAmortizationMonths.
func Amortize(principal, annualRatePercent, basePayment, extraPayment decimal.Decimal) domain.AmortizationResult {
	principal = nonNegative(principal)
	rate := MonthlyRate(annualRatePercent)
	payment := nonNegative(basePayment).Add(nonNegative(extraPayment))

	if paidOff(principal) {
		return domain.AmortizationResult{
			TotalInterest: decimal.Zero,
			BalanceSeries: []domain.BalancePoint{{Period: 0, Balance: decimal.Zero}},
		}
	}

	series := []domain.BalancePoint{{Period: 0, Balance: principal}}
	if !payment.IsPositive() || payment.LessThanOrEqual(principal.Mul(rate)) {
		return infiniteResult(series)
	}

	balance := principal
	totalInterest := decimal.Zero
	for period := 1; period <= MaxAmortizationMonths; period++ {
		interest := balance.Mul(rate).Round(internalScale)
		balance = balance.Add(interest)
		balance = balance.Sub(decimal.Min(payment, balance))
		totalInterest = totalInterest.Add(interest)

		if paidOff(balance) {
			series = append(series, domain.BalancePoint{Period: period, Balance: decimal.Zero})
			return domain.AmortizationResult{
				TermMonths:    period,
				TotalInterest: totalInterest,
				BalanceSeries: series,
			}
		}
		if period%12 == 0 {
			series = append(series, domain.BalancePoint{Period: period, Balance: balance})
		}
	}
	return infiniteResult(series)
}

func infiniteResult(series []domain.BalancePoint) domain.AmortizationResult {
	return domain.AmortizationResult{
		Infinite:      true,
		TotalInterest: decimal.Zero,
		BalanceSeries: series,
	}
}

// CompareAmortization derives the time and interest a candidate plan saves over
// a baseline. Savings are clamped at zero and Improved is only set when the
// candidate actually pays off sooner or costs less interest.
func CompareAmortization(baseline, candidate domain.AmortizationResult) domain.AmortizationComparison {
	if candidate.Infinite {
		return domain.AmortizationComparison{InterestSaved: decimal.Zero}
	}
	if baseline.Infinite {
		// Any finite plan beats one that never repays, but the saving is unbounded.
		return domain.AmortizationComparison{InterestSaved: decimal.Zero, Improved: true}
	}

	cmp := domain.AmortizationComparison{
		TimeSavedMonths: baseline.TermMonths - candidate.TermMonths,
		InterestSaved:   baseline.TotalInterest.Sub(candidate.TotalInterest),
	}
	if cmp.TimeSavedMonths < 0 {
		cmp.TimeSavedMonths = 0
	}
	cmp.InterestSaved = nonNegative(cmp.InterestSaved)
	cmp.Improved = cmp.TimeSavedMonths > 0 || cmp.InterestSaved.GreaterThanOrEqual(cent)
	return cmp
}
