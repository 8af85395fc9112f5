package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredExtraPayment_FindsSmallestExtra(t *testing.T) {
	principal, rate := d("500000"), d("6.5")
	base := AnnuityPayment(principal, rate, 360).Round(2)

	extra, ok := RequiredExtraPayment(principal, rate, base, 240)
	require.True(t, ok)
	assert.True(t, extra.IsPositive())
	assert.True(t, extra.Equal(extra.Round(2)), "result is in whole cents")

	hit := Amortize(principal, rate, base, extra)
	require.False(t, hit.Infinite)
	assert.LessOrEqual(t, hit.TermMonths, 240)

	miss := Amortize(principal, rate, base, extra.Sub(d("0.01")))
	assert.Greater(t, miss.TermMonths, 240)

	// Roughly the gap between the 20- and 30-year annuity repayments.
	gap := AnnuityPayment(principal, rate, 240).Sub(base)
	assert.True(t, extra.Sub(gap).Abs().LessThan(d("5")), "extra %s gap %s", extra, gap)
}

func TestRequiredExtraPayment_EdgeCases(t *testing.T) {
	principal, rate := d("200000"), d("5")
	base := AnnuityPayment(principal, rate, 300)

	extra, ok := RequiredExtraPayment(principal, rate, base, 360)
	assert.True(t, ok, "already within target")
	assert.True(t, extra.IsZero())

	_, ok = RequiredExtraPayment(principal, rate, base, 0)
	assert.False(t, ok)

	extra, ok = RequiredExtraPayment(principal, rate, decimal.Zero, 120)
	assert.True(t, ok, "a zero base payment is covered by the extra alone")
	assert.True(t, extra.GreaterThanOrEqual(AnnuityPayment(principal, rate, 120).Sub(d("0.01"))))
}
