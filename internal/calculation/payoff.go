package calculation

import (
	"sort"

	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxPayoffMonths caps a multi-debt simulation at 50 years.
const MaxPayoffMonths = 600

// debtState is the simulator's private copy of one debt.
type debtState struct {
	account  domain.DebtAccount
	balance  decimal.Decimal
	rate     decimal.Decimal
	interest decimal.Decimal
	closed   bool
	closedAt int
}

func (s *debtState) close(month int) {
	s.balance = decimal.Zero
	s.closed = true
	s.closedAt = month
}

// SimulatePayoff runs N debts to payoff under a prioritisation strategy.
//
// Each month every open debt accrues interest, every open debt receives its
// minimum payment (capped at its balance), and the extra budget goes to the
// first open debt in strategy order. With RolloverNone a paid-off debt's
// minimum simply stops being paid and leftover extra is not passed on until the
// next month; RolloverFreedMinimums adds the minimums of debts cleared during
// the run to the budget and cascades leftovers down the order. Debts that start
// with nothing owed were never being paid and free nothing. The order is fixed at the start unless
// ReorderMonthly is set.
//
// The caller's slice is never modified. Converged is false when the month cap
// is reached first, or immediately (with only the month 0 snapshot) when the
// total monthly outflow cannot even cover the first month's interest.
func SimulatePayoff(debts []domain.DebtAccount, opts domain.PayoffOptions) domain.PayoffResult {
	maxMonths := opts.MaxMonths
	if maxMonths <= 0 {
		maxMonths = MaxPayoffMonths
	}
	extra := nonNegative(opts.ExtraMonthlyBudget)
	rollover := opts.Rollover == domain.RolloverFreedMinimums

	states := make([]*debtState, len(debts))
	for i, d := range debts {
		account := domain.DebtAccount{
			Type:                      d.Type,
			Balance:                   nonNegative(d.Balance),
			MinimumPayment:            nonNegative(d.MinimumPayment),
			AnnualInterestRatePercent: nonNegative(d.AnnualInterestRatePercent),
		}
		states[i] = &debtState{
			account:  account,
			balance:  account.Balance,
			rate:     MonthlyRate(account.AnnualInterestRatePercent),
			interest: decimal.Zero,
		}
		if paidOff(account.Balance) {
			states[i].close(0)
		}
	}

	result := domain.PayoffResult{
		Strategy:          opts.Strategy,
		TotalInterestPaid: decimal.Zero,
		Schedule:          []domain.PayoffPeriod{snapshot(0, states)},
	}
	order := orderDebts(states, opts.Strategy)
	stalled := !allClosed(states) && !outflowCoversInterest(states, extra)

	for month := 1; month <= maxMonths && !stalled && !allClosed(states); month++ {
		if opts.ReorderMonthly && month > 1 {
			order = orderDebts(states, opts.Strategy)
		}

		for _, s := range states {
			if s.closed {
				continue
			}
			interest := s.balance.Mul(s.rate).Round(internalScale)
			s.balance = s.balance.Add(interest)
			s.interest = s.interest.Add(interest)
			result.TotalInterestPaid = result.TotalInterestPaid.Add(interest)
		}

		budget := extra
		for _, s := range states {
			if s.closed {
				if rollover && s.closedAt > 0 {
					budget = budget.Add(s.account.MinimumPayment)
				}
				continue
			}
			s.balance = s.balance.Sub(decimal.Min(s.account.MinimumPayment, s.balance))
			if paidOff(s.balance) {
				s.close(month)
			}
		}

		for _, s := range order {
			if !budget.IsPositive() {
				break
			}
			if s.closed {
				continue
			}
			pay := decimal.Min(budget, s.balance)
			s.balance = s.balance.Sub(pay)
			budget = budget.Sub(pay)
			if paidOff(s.balance) {
				s.close(month)
			}
			if !rollover {
				break
			}
		}

		result.Schedule = append(result.Schedule, snapshot(month, states))
	}

	result.Converged = allClosed(states)
	result.PayoffMonth = len(result.Schedule) - 1
	result.Debts = make([]domain.DebtPayoff, len(states))
	for i, s := range states {
		result.Debts[i] = domain.DebtPayoff{Type: s.account.Type, PaidOffMonth: s.closedAt, InterestPaid: s.interest}
	}
	return result
}

// CompareStrategies simulates both avalanche and snowball with the same options.
func CompareStrategies(debts []domain.DebtAccount, opts domain.PayoffOptions) (avalanche, snowball domain.PayoffResult) {
	opts.Strategy = domain.Avalanche
	avalanche = SimulatePayoff(debts, opts)
	opts.Strategy = domain.Snowball
	snowball = SimulatePayoff(debts, opts)
	return avalanche, snowball
}

// orderDebts sorts a copy of the open debts by the strategy key. Ties keep input order.
func orderDebts(states []*debtState, strategy domain.PayoffStrategy) []*debtState {
	order := make([]*debtState, 0, len(states))
	for _, s := range states {
		if !s.closed {
			order = append(order, s)
		}
	}
	switch strategy {
	case domain.Snowball:
		sort.SliceStable(order, func(i, j int) bool { return order[i].balance.LessThan(order[j].balance) })
	default:
		sort.SliceStable(order, func(i, j int) bool {
			return order[i].account.AnnualInterestRatePercent.GreaterThan(order[j].account.AnnualInterestRatePercent)
		})
	}
	return order
}

// outflowCoversInterest reports whether minimums plus extra exceed the
// interest the open debts accrue in their first month.
func outflowCoversInterest(states []*debtState, extra decimal.Decimal) bool {
	outflow := extra
	interest := decimal.Zero
	for _, s := range states {
		if s.closed {
			continue
		}
		outflow = outflow.Add(s.account.MinimumPayment)
		interest = interest.Add(s.balance.Mul(s.rate).Round(internalScale))
	}
	return outflow.GreaterThan(interest)
}

func allClosed(states []*debtState) bool {
	for _, s := range states {
		if !s.closed {
			return false
		}
	}
	return true
}

func snapshot(month int, states []*debtState) domain.PayoffPeriod {
	p := domain.PayoffPeriod{Month: month, TotalBalance: decimal.Zero, Balances: make([]decimal.Decimal, len(states))}
	for i, s := range states {
		p.Balances[i] = s.balance
		p.TotalBalance = p.TotalBalance.Add(s.balance)
	}
	return p
}
