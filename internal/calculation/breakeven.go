package calculation

import (
	"github.com/shopspring/decimal"
)

// RequiredExtraPayment finds the smallest monthly extra repayment, to the cent,
// that repays the loan within targetMonths. ok is false when targetMonths is
// not positive or the loan cannot be amortized at all.
func RequiredExtraPayment(principal, annualRatePercent, basePayment decimal.Decimal, targetMonths int) (extra decimal.Decimal, ok bool) {
	if targetMonths <= 0 {
		return decimal.Zero, false
	}
	if targetMonths > MaxAmortizationMonths {
		targetMonths = MaxAmortizationMonths
	}
	meets := func(e decimal.Decimal) bool {
		r := Amortize(principal, annualRatePercent, basePayment, e)
		return !r.Infinite && r.TermMonths <= targetMonths
	}
	if meets(decimal.Zero) {
		return decimal.Zero, true
	}

	// The annuity payment for the target term always meets it; search below that.
	maxExtra := nonNegative(AnnuityPayment(principal, annualRatePercent, targetMonths).Sub(nonNegative(basePayment))).Add(cent)
	if !meets(maxExtra) {
		return decimal.Zero, false
	}

	minExtra := decimal.Zero
	two := decimal.NewFromInt(2)
	maxIterations := 64
	for i := 0; i < maxIterations && maxExtra.Sub(minExtra).GreaterThan(cent); i++ {
		mid := minExtra.Add(maxExtra).Div(two).Round(2)
		if meets(mid) {
			maxExtra = mid
		} else {
			minExtra = mid
		}
	}
	return maxExtra.RoundCeil(2), true
}
