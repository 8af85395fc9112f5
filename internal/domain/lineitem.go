package domain

import (
	"github.com/shopspring/decimal"

	money "github.com/finassess/assessment-engine/pkg/decimal"
)

// RawLineItem is an income or expense row exactly as the form layer submits it.
type RawLineItem struct {
	Category  string `yaml:"category" json:"category"`
	Amount    string `yaml:"amount" json:"amount"`
	Frequency string `yaml:"frequency" json:"frequency"`
}

// MonetaryLineItem is a parsed line item. Amount is never negative.
type MonetaryLineItem struct {
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency Frequency       `json:"frequency"`
}

// RawAmount is an amount with a cadence but no category (extra repayments, contributions).
type RawAmount struct {
	Amount    string `yaml:"amount" json:"amount"`
	Frequency string `yaml:"frequency" json:"frequency"`
}

// ParseLineItem converts a raw row. Unparsable amounts become zero.
func ParseLineItem(raw RawLineItem) MonetaryLineItem {
	return MonetaryLineItem{
		Category:  raw.Category,
		Amount:    money.ParseAmount(raw.Amount),
		Frequency: ParseFrequency(raw.Frequency),
	}
}

// ParseLineItems converts every row of a form section.
func ParseLineItems(raw []RawLineItem) []MonetaryLineItem {
	items := make([]MonetaryLineItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, ParseLineItem(r))
	}
	return items
}

// Item converts the amount into a line item so it can be normalized.
func (r RawAmount) Item(category string) MonetaryLineItem {
	return ParseLineItem(RawLineItem{Category: category, Amount: r.Amount, Frequency: r.Frequency})
}
