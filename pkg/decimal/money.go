package decimal

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

const (
	// MaxWholeDigits bounds the integer part of an accepted amount (below one quadrillion).
	MaxWholeDigits = 15
	// MaxFractionDigits bounds the decimal places of an accepted amount.
	MaxFractionDigits = 10
)

// Bounded reports whether d has at most MaxWholeDigits whole digits and
// at most MaxFractionDigits decimal places. The exponent is checked before
// the coefficient is touched, so huge exponents are rejected cheaply.
func Bounded(d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}
	exp := d.Exponent()
	if exp < -MaxFractionDigits || exp >= MaxWholeDigits {
		return false
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(MaxWholeDigits-exp)), nil)
	return d.Coefficient().CmpAbs(limit) < 0
}

// ParseAmount parses a user-entered amount leniently. Currency and percent
// symbols, thousands separators and surrounding whitespace are ignored. Empty,
// malformed, negative and out-of-range input yields zero; it never fails.
// Exponent notation is malformed.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', '%', ',', ' ', '\t', '_':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	if cleaned == "" || strings.ContainsAny(cleaned, "eE") {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() || !Bounded(d) {
		return decimal.Zero
	}
	return d
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// ClampZero returns zero for negative amounts.
func (m Money) ClampZero() Money {
	if m.IsNegative() {
		return Zero()
	}
	return m
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the string representation with proper formatting
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Grouped renders the amount to cents with comma thousands separators.
func (m Money) Grouped() string {
	s := m.Decimal.Abs().StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]
	var b strings.Builder
	if m.Decimal.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// Format formats the money amount with proper currency formatting
func (m Money) Format() string {
	g := m.Grouped()
	if strings.HasPrefix(g, "-") {
		return "-$" + g[1:]
	}
	return "$" + g
}
