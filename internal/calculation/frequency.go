package calculation

import (
	"github.com/finassess/assessment-engine/internal/domain"
	money "github.com/finassess/assessment-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	// WeeksPerMonth is the average number of weeks in a month used for normalization.
	WeeksPerMonth = decimal.RequireFromString("4.33")
	// FortnightsPerMonth is half of WeeksPerMonth.
	FortnightsPerMonth = decimal.RequireFromString("2.165")
)

// NormalizeToMonthly converts an amount paid at the given cadence into its
// monthly equivalent. Monthly and unrecognised cadences pass through unchanged.
func NormalizeToMonthly(amount decimal.Decimal, f domain.Frequency) decimal.Decimal {
	switch f {
	case domain.Weekly:
		return amount.Mul(WeeksPerMonth)
	case domain.Fortnightly:
		return amount.Mul(FortnightsPerMonth)
	case domain.Yearly:
		return money.NewMoneyFromDecimal(amount).Monthly().Decimal
	default:
		return amount
	}
}

// MonthlyToAnnual scales a monthly figure up to a year.
func MonthlyToAnnual(monthly decimal.Decimal) decimal.Decimal {
	return money.NewMoneyFromDecimal(monthly).Annual().Decimal
}

// SumMonthly totals the monthly equivalents of the items. Items without a
// positive amount contribute nothing.
func SumMonthly(items []domain.MonetaryLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if !item.Amount.IsPositive() {
			continue
		}
		total = total.Add(NormalizeToMonthly(item.Amount, item.Frequency))
	}
	return total
}

// SumMonthlyRaw parses form rows and totals their monthly equivalents.
func SumMonthlyRaw(raw []domain.RawLineItem) decimal.Decimal {
	return SumMonthly(domain.ParseLineItems(raw))
}

// MonthlyByCategory groups monthly equivalents by category, in order of first appearance.
func MonthlyByCategory(items []domain.MonetaryLineItem) []domain.CategoryTotal {
	index := make(map[string]int)
	var totals []domain.CategoryTotal
	for _, item := range items {
		if !item.Amount.IsPositive() {
			continue
		}
		monthly := NormalizeToMonthly(item.Amount, item.Frequency)
		if i, ok := index[item.Category]; ok {
			totals[i].Monthly = totals[i].Monthly.Add(monthly)
			continue
		}
		index[item.Category] = len(totals)
		totals = append(totals, domain.CategoryTotal{Category: item.Category, Monthly: monthly})
	}
	return totals
}
