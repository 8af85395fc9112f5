package calculation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finassess/assessment-engine/internal/domain"
	money "github.com/finassess/assessment-engine/pkg/decimal"
	"github.com/finassess/assessment-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Scenario labels for the baseline runs.
const (
	BaselineLabel     = "no extra"
	MinimumsOnlyLabel = "minimums only"
)

// CalculationEngine orchestrates all assessment calculations
type CalculationEngine struct {
	TaxTables   map[string]domain.TaxTable
	DefaultYear string
	Debug       bool // Enable debug output for detailed calculations
	Logger      Logger
}

// NewCalculationEngine creates a new calculation engine with the built-in tax tables
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithTables(DefaultTaxTables(), DefaultFinancialYear)
}

// NewCalculationEngineWithTables creates an engine over a custom set of tax tables
func NewCalculationEngineWithTables(tables map[string]domain.TaxTable, defaultYear string) *CalculationEngine {
	return &CalculationEngine{
		TaxTables:   tables,
		DefaultYear: defaultYear,
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// TaxTable resolves the bracket table for a financial year. An empty year
// selects the engine default; custom brackets override both and must pass
// ValidateBrackets.
func (ce *CalculationEngine) TaxTable(year string, custom []domain.TaxBracket) (domain.TaxTable, error) {
	if year == "" {
		year = ce.DefaultYear
	}
	if len(custom) > 0 {
		if err := ValidateBrackets(custom); err != nil {
			return domain.TaxTable{}, fmt.Errorf("custom brackets: %w", err)
		}
		return domain.TaxTable{FinancialYear: year, Brackets: custom}, nil
	}
	table, ok := ce.TaxTables[year]
	if !ok {
		return domain.TaxTable{}, fmt.Errorf("no tax table for financial year %q", year)
	}
	return table, nil
}

// RunAssessment derives the complete report for one assessment. Malformed
// amounts count as zero and non-amortizing plans are reported, not rejected;
// only a missing assessment or a cancelled context is an error.
func (ce *CalculationEngine) RunAssessment(ctx context.Context, a *domain.Assessment) (*domain.AssessmentReport, error) {
	if a == nil {
		return nil, errors.New("assessment is required")
	}
	start := a.StartDate
	if start.IsZero() {
		start = nowFunc()
	}
	start = dateutil.StartOfMonth(start)

	report := &domain.AssessmentReport{
		Name:        a.Name,
		GeneratedAt: nowFunc(),
		StartDate:   start,
	}

	table, err := ce.TaxTable(a.FinancialYear, a.TaxBrackets)
	if err != nil {
		ce.Logger.Warnf("%v, falling back to %s", err, ce.DefaultYear)
		table = ce.TaxTables[ce.DefaultYear]
	}
	income := domain.ParseLineItems(a.Income)
	expenses := domain.ParseLineItems(a.Expenses)
	grossMonthly := SumMonthly(income)
	report.Tax = NewTaxCalculator(table).NetIncome(MonthlyToAnnual(grossMonthly))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.HomeLoan != nil {
		report.HomeLoan = ce.RunHomeLoan(a.HomeLoan, start)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	debts := domain.ParseDebts(a.Debts)
	if len(debts) > 0 {
		report.Debts = ce.RunDebts(debts, a.DebtStrategy)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.Superannuation != nil {
		report.Superannuation = ce.RunGrowth("Superannuation", a.Superannuation)
	}
	if a.Investment != nil {
		report.Investment = ce.RunGrowth("Investment", a.Investment)
	}

	report.Budget = ce.summarizeBudget(income, expenses, report)
	report.Recommendations = ce.generateRecommendations(report)

	if ce.Debug {
		ce.Logger.Debugf("ASSESSMENT %q", a.Name)
		ce.Logger.Debugf("  Gross monthly:   $%s", grossMonthly.StringFixed(2))
		ce.Logger.Debugf("  Net monthly:     $%s", report.Tax.NetMonthly.StringFixed(2))
		ce.Logger.Debugf("  Expenses:        $%s", report.Budget.MonthlyExpenses.StringFixed(2))
		ce.Logger.Debugf("  Repayments:      $%s", report.Budget.MonthlyDebtRepayments.StringFixed(2))
		ce.Logger.Debugf("  Surplus:         $%s", report.Budget.MonthlySurplus.StringFixed(2))
	}
	return report, nil
}

func (ce *CalculationEngine) summarizeBudget(income, expenses []domain.MonetaryLineItem, report *domain.AssessmentReport) domain.BudgetSummary {
	gross := SumMonthly(income)
	spend := SumMonthly(expenses)
	repayments := decimal.Zero
	if report.Debts != nil {
		repayments = repayments.Add(report.Debts.TotalMinimums)
	}
	if report.HomeLoan != nil {
		repayments = repayments.Add(report.HomeLoan.MonthlyRepayment)
	}
	net := report.Tax.NetMonthly
	surplus := net.Sub(spend).Sub(repayments)

	summary := domain.BudgetSummary{
		MonthlyGrossIncome:    gross,
		MonthlyNetIncome:      net,
		MonthlyExpenses:       spend,
		MonthlyDebtRepayments: repayments,
		MonthlySurplus:        surplus,
		SavingsRatePercent:    decimal.Zero,
		DebtToIncomePercent:   decimal.Zero,
		IncomeByCategory:      MonthlyByCategory(income),
		ExpensesByCategory:    MonthlyByCategory(expenses),
	}
	if net.IsPositive() {
		summary.SavingsRatePercent = surplus.Div(net).Mul(hundred).Round(2)
	}
	if gross.IsPositive() {
		summary.DebtToIncomePercent = repayments.Div(gross).Mul(hundred).Round(2)
	}
	return summary
}

// extraLevel is one what-if extra amount. The zero value is the baseline.
type extraLevel struct {
	Amount    decimal.Decimal
	Frequency domain.Frequency
}

func (e extraLevel) monthly() decimal.Decimal {
	if !e.Amount.IsPositive() {
		return decimal.Zero
	}
	return NormalizeToMonthly(e.Amount, e.Frequency)
}

func (e extraLevel) label() string {
	if !e.Amount.IsPositive() {
		return BaselineLabel
	}
	amount := strings.TrimSuffix(money.NewMoneyFromDecimal(e.Amount).Format(), ".00")
	return fmt.Sprintf("extra %s/%s", amount, e.Frequency.Label())
}

func extraLevels(raw []domain.RawAmount) []extraLevel {
	levels := make([]extraLevel, 0, len(raw))
	for _, r := range raw {
		item := r.Item("extra")
		if !item.Amount.IsPositive() {
			continue
		}
		levels = append(levels, extraLevel{Amount: item.Amount, Frequency: item.Frequency})
	}
	return levels
}

// RunHomeLoan amortizes a home loan at its contract repayment and at every
// extra repayment level, comparing each with the baseline.
func (ce *CalculationEngine) RunHomeLoan(hl *domain.HomeLoan, start time.Time) *domain.LoanReport {
	principal := money.ParseAmount(hl.Principal)
	rate := money.ParseAmount(hl.AnnualRatePercent)
	contractMonths := clampMonths(hl.TermYears, ce.Logger, "home loan term")

	repayment := AnnuityPayment(principal, rate, contractMonths)
	if hl.Repayment != nil {
		item := hl.Repayment.Item("repayment")
		if item.Amount.IsPositive() {
			repayment = NormalizeToMonthly(item.Amount, item.Frequency)
		}
	}
	repayment = repayment.Round(2)

	report := &domain.LoanReport{
		Principal:         principal,
		AnnualRatePercent: rate,
		MonthlyRepayment:  repayment,
		ContractMonths:    contractMonths,
	}

	results := make(map[string]domain.AmortizationResult)
	report.Matrix = BuildScenarioMatrix(extraLevels(hl.ExtraRepayments), extraLevel.label, func(e extraLevel) (domain.Series, error) {
		r := Amortize(principal, rate, repayment, e.monthly())
		results[e.label()] = r
		if r.Infinite {
			return nil, fmt.Errorf("repayment of $%s per month never repays the loan", repayment.Add(e.monthly()).StringFixed(2))
		}
		return r.Series(), nil
	})

	baseline := results[BaselineLabel]
	levels := append([]extraLevel{{}}, extraLevels(hl.ExtraRepayments)...)
	seen := make(map[string]bool)
	for _, e := range levels {
		label := e.label()
		if seen[label] {
			continue
		}
		seen[label] = true
		r := results[label]
		scenario := domain.LoanScenario{
			Label:        label,
			ExtraMonthly: e.monthly(),
			Result:       r,
			Comparison:   CompareAmortization(baseline, r),
		}
		if label == BaselineLabel {
			scenario.Comparison = domain.AmortizationComparison{InterestSaved: decimal.Zero}
		}
		if !r.Infinite {
			date := dateutil.PayoffDate(start, r.TermMonths)
			scenario.PayoffDate = &date
		}
		report.Scenarios = append(report.Scenarios, scenario)
	}

	if hl.TargetYears > 0 {
		report.TargetMonths = clampMonths(hl.TargetYears, ce.Logger, "home loan target")
		if extra, ok := RequiredExtraPayment(principal, rate, repayment, report.TargetMonths); ok {
			report.RequiredExtra = &extra
		}
	}

	if ce.Debug {
		ce.Logger.Debugf("HOME LOAN $%s at %s%%: repayment $%s, baseline %d months (infinite=%t)",
			principal.StringFixed(2), rate.String(), repayment.StringFixed(2), baseline.TermMonths, baseline.Infinite)
	}
	return report
}

// clampMonths converts years to months, limited to MaxProjectionYears.
func clampMonths(years int, logger Logger, what string) int {
	if years > MaxProjectionYears {
		logger.Warnf("%s of %d years exceeds %d, using %d", what, years, MaxProjectionYears, MaxProjectionYears)
		years = MaxProjectionYears
	}
	return years * 12
}

// ParseRollover maps a strategy word onto a RolloverPolicy. ok is false for unknown words.
func ParseRollover(raw string) (domain.RolloverPolicy, bool) {
	switch domain.RolloverPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", domain.RolloverNone:
		return domain.RolloverNone, true
	case domain.RolloverFreedMinimums:
		return domain.RolloverFreedMinimums, true
	}
	return domain.RolloverNone, false
}

// RunDebts compares minimum-only repayment with the avalanche and snowball strategies.
func (ce *CalculationEngine) RunDebts(debts []domain.DebtAccount, strategy domain.DebtStrategy) *domain.DebtReport {
	rollover, ok := ParseRollover(strategy.Rollover)
	if !ok {
		ce.Logger.Warnf("unknown rollover policy %q, using %s", strategy.Rollover, rollover)
	}
	opts := domain.PayoffOptions{
		ExtraMonthlyBudget: money.ParseAmount(strategy.ExtraMonthlyBudget),
		Rollover:           rollover,
		ReorderMonthly:     strategy.ReorderMonthly,
	}

	report := &domain.DebtReport{
		TotalBalance:       decimal.Zero,
		TotalMinimums:      decimal.Zero,
		ExtraMonthlyBudget: opts.ExtraMonthlyBudget,
		Rollover:           rollover,
		ReorderMonthly:     opts.ReorderMonthly,
		InterestSaved:      decimal.Zero,
	}
	for _, d := range debts {
		if paidOff(d.Balance) {
			continue
		}
		report.TotalBalance = report.TotalBalance.Add(d.Balance)
		report.TotalMinimums = report.TotalMinimums.Add(d.MinimumPayment)
	}

	minimums := opts
	minimums.Strategy = domain.Avalanche
	minimums.ExtraMonthlyBudget = decimal.Zero
	report.MinimumsOnly = SimulatePayoff(debts, minimums)
	report.Avalanche, report.Snowball = CompareStrategies(debts, opts)

	label := func(s domain.PayoffStrategy) string {
		if s == "" {
			return MinimumsOnlyLabel
		}
		return string(s)
	}
	report.Matrix = BuildScenarioMatrix([]domain.PayoffStrategy{domain.Avalanche, domain.Snowball}, label, func(s domain.PayoffStrategy) (domain.Series, error) {
		r := report.MinimumsOnly
		if s != "" {
			r = report.Strategy(s)
		}
		if !r.Converged {
			return nil, fmt.Errorf("%s does not clear the debts within %d months", label(s), MaxPayoffMonths)
		}
		return r.Series(), nil
	})

	report.Recommended = recommendStrategy(report.Avalanche, report.Snowball)
	best := report.Strategy(report.Recommended)
	if best.Converged && report.MinimumsOnly.Converged {
		report.InterestSaved = nonNegative(report.MinimumsOnly.TotalInterestPaid.Sub(best.TotalInterestPaid))
	}

	if ce.Debug {
		ce.Logger.Debugf("DEBTS $%s: avalanche %d months $%s interest, snowball %d months $%s interest",
			report.TotalBalance.StringFixed(2),
			report.Avalanche.PayoffMonth, report.Avalanche.TotalInterestPaid.StringFixed(2),
			report.Snowball.PayoffMonth, report.Snowball.TotalInterestPaid.StringFixed(2))
	}
	return report
}

// recommendStrategy prefers the converged strategy with less interest; ties go to avalanche.
func recommendStrategy(avalanche, snowball domain.PayoffResult) domain.PayoffStrategy {
	switch {
	case avalanche.Converged && !snowball.Converged:
		return domain.Avalanche
	case snowball.Converged && !avalanche.Converged:
		return domain.Snowball
	case snowball.TotalInterestPaid.LessThan(avalanche.TotalInterestPaid):
		return domain.Snowball
	default:
		return domain.Avalanche
	}
}

// RunGrowth projects a balance with its regular contribution and every extra contribution level.
func (ce *CalculationEngine) RunGrowth(name string, plan *domain.GrowthPlan) *domain.GrowthReport {
	initial := money.ParseAmount(plan.Balance)
	rate := money.ParseAmount(plan.AnnualRatePercent)
	contribution := plan.Contribution.Item("contribution")
	monthly := NormalizeToMonthly(contribution.Amount, contribution.Frequency)
	months := clampMonths(plan.Years, ce.Logger, name+" horizon")

	points := ProjectGrowth(initial, monthly, rate, months)
	final := points[len(points)-1]
	report := &domain.GrowthReport{
		Name:                name,
		InitialBalance:      initial,
		MonthlyContribution: monthly,
		AnnualRatePercent:   rate,
		Months:              months,
		Projection:          YearlySamples(points),
		FinalBalance:        final.Balance,
		TotalContributions:  final.CumulativeContributions,
		InterestEarned:      final.InterestEarned(),
	}

	levels := extraLevels(plan.ExtraContributions)
	finals := make(map[string]domain.GrowthPoint)
	report.Matrix = BuildScenarioMatrix(levels, extraLevel.label, func(e extraLevel) (domain.Series, error) {
		projected := ProjectGrowth(initial, monthly.Add(e.monthly()), rate, months)
		finals[e.label()] = projected[len(projected)-1]
		return GrowthSeries(YearlySamples(projected)), nil
	})
	for _, label := range report.Matrix.Labels {
		p, ok := finals[label]
		if !ok {
			continue
		}
		extra := decimal.Zero
		for _, e := range levels {
			if e.label() == label {
				extra = e.monthly()
				break
			}
		}
		report.Scenarios = append(report.Scenarios, domain.GrowthScenario{
			Label:          label,
			ExtraMonthly:   extra,
			FinalBalance:   p.Balance,
			InterestEarned: p.InterestEarned(),
		})
	}

	if ce.Debug {
		ce.Logger.Debugf("%s: $%s growing to $%s over %d months", name, initial.StringFixed(2), report.FinalBalance.StringFixed(2), months)
	}
	return report
}
