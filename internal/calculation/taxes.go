package calculation

import (
	"fmt"
	"sort"

	"github.com/finassess/assessment-engine/internal/domain"
	money "github.com/finassess/assessment-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Resident individual income tax only. No Medicare levy, offsets or HELP
//    repayments are modelled.
// 2. One bracket table per financial year. The questionnaire historically used
//    both the 2023-24 and 2024-25 tables; 2024-25 is the default and the older
//    table stays selectable by name.
// 3. Every income line item is treated as gross taxable income.

// DefaultFinancialYear names the bracket table used when an assessment does not pick one.
const DefaultFinancialYear = "2024-25"

func bracket(threshold int64, rate string) domain.TaxBracket {
	return domain.TaxBracket{Threshold: decimal.NewFromInt(threshold), MarginalRate: decimal.RequireFromString(rate)}
}

// DefaultTaxTables returns the built-in bracket tables keyed by financial year.
func DefaultTaxTables() map[string]domain.TaxTable {
	return map[string]domain.TaxTable{
		"2023-24": {
			FinancialYear: "2023-24",
			Brackets: []domain.TaxBracket{
				bracket(0, "0"),
				bracket(18200, "0.19"),
				bracket(45000, "0.325"),
				bracket(120000, "0.37"),
				bracket(180000, "0.45"),
			},
		},
		"2024-25": {
			FinancialYear: "2024-25",
			Brackets: []domain.TaxBracket{
				bracket(0, "0"),
				bracket(18200, "0.16"),
				bracket(45000, "0.30"),
				bracket(135000, "0.37"),
				bracket(190000, "0.45"),
			},
		},
	}
}

// ValidateBrackets rejects negative or out-of-range thresholds and marginal
// rates outside [0, 1]. Magnitude is checked first so that no comparison has
// to rescale an extreme exponent.
func ValidateBrackets(brackets []domain.TaxBracket) error {
	one := decimal.NewFromInt(1)
	for i, b := range brackets {
		if !money.Bounded(b.Threshold) || b.Threshold.IsNegative() {
			return fmt.Errorf("bracket %d: threshold must be between 0 and 10^%d", i, money.MaxWholeDigits)
		}
		if !money.Bounded(b.MarginalRate) || b.MarginalRate.IsNegative() || b.MarginalRate.GreaterThan(one) {
			return fmt.Errorf("bracket %d: marginal rate must be between 0 and 1", i)
		}
	}
	return nil
}

// AnnualTax applies a marginal bracket table to an annual income. Brackets are
// evaluated from the highest threshold down; each one taxes the slice of income
// above its threshold and the remainder is clamped to that threshold. No
// rounding is applied.
func AnnualTax(grossAnnualIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if !grossAnnualIncome.IsPositive() || len(brackets) == 0 {
		return decimal.Zero
	}

	remaining := grossAnnualIncome
	tax := decimal.Zero
	for _, b := range descending(brackets) {
		if remaining.GreaterThan(b.Threshold) {
			tax = tax.Add(remaining.Sub(b.Threshold).Mul(b.MarginalRate))
			remaining = b.Threshold
		}
	}
	return tax
}

// MarginalRate returns the rate applied to the next dollar earned above the given income.
func MarginalRate(grossAnnualIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	for _, b := range descending(brackets) {
		if grossAnnualIncome.GreaterThanOrEqual(b.Threshold) {
			return b.MarginalRate
		}
	}
	return decimal.Zero
}

// descending returns a sorted copy; the caller's table is never reordered.
func descending(brackets []domain.TaxBracket) []domain.TaxBracket {
	sorted := append([]domain.TaxBracket(nil), brackets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Threshold.GreaterThan(sorted[j].Threshold)
	})
	return sorted
}

// TaxCalculator binds a bracket table to the tax helpers.
type TaxCalculator struct {
	Table domain.TaxTable
}

// NewTaxCalculator creates a calculator for the given table.
func NewTaxCalculator(table domain.TaxTable) *TaxCalculator {
	return &TaxCalculator{Table: table}
}

// AnnualTax calculates tax payable on an annual income.
func (tc *TaxCalculator) AnnualTax(grossAnnualIncome decimal.Decimal) decimal.Decimal {
	return AnnualTax(grossAnnualIncome, tc.Table.Brackets)
}

// NetIncome breaks an annual gross income into tax and take-home pay.
func (tc *TaxCalculator) NetIncome(grossAnnualIncome decimal.Decimal) domain.NetIncome {
	if grossAnnualIncome.IsNegative() {
		grossAnnualIncome = decimal.Zero
	}
	tax := tc.AnnualTax(grossAnnualIncome)
	net := grossAnnualIncome.Sub(tax)

	effective := decimal.Zero
	if grossAnnualIncome.IsPositive() {
		effective = tax.Div(grossAnnualIncome).Mul(hundred)
	}

	return domain.NetIncome{
		FinancialYear:        tc.Table.FinancialYear,
		GrossAnnual:          grossAnnualIncome,
		AnnualTax:            tax,
		NetAnnual:            net,
		NetMonthly:           money.NewMoneyFromDecimal(net).Monthly().Decimal,
		MarginalRatePercent:  MarginalRate(grossAnnualIncome, tc.Table.Brackets).Mul(hundred),
		EffectiveRatePercent: effective,
	}
}
