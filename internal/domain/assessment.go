package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assessment is the complete set of user-entered financial data for one
// questionnaire submission. It is passed by pointer but never modified by
// the engine.
type Assessment struct {
	Name          string        `yaml:"name" json:"name"`
	FinancialYear string        `yaml:"financial_year" json:"financial_year"`
	TaxBrackets   []TaxBracket  `yaml:"tax_brackets,omitempty" json:"tax_brackets,omitempty"` // overrides the named financial year
	StartDate     time.Time     `yaml:"start_date" json:"start_date"`
	Income        []RawLineItem `yaml:"income" json:"income"`
	Expenses      []RawLineItem `yaml:"expenses" json:"expenses"`
	Debts         []RawDebt     `yaml:"debts" json:"debts"`

	HomeLoan       *HomeLoan   `yaml:"home_loan,omitempty" json:"home_loan,omitempty"`
	Superannuation *GrowthPlan `yaml:"superannuation,omitempty" json:"superannuation,omitempty"`
	Investment     *GrowthPlan `yaml:"investment,omitempty" json:"investment,omitempty"`

	DebtStrategy DebtStrategy `yaml:"debt_strategy" json:"debt_strategy"`
	Goals        []string     `yaml:"goals,omitempty" json:"goals,omitempty"`
}

// HomeLoan describes a mortgage and the extra repayment levels to compare.
type HomeLoan struct {
	Principal         string      `yaml:"principal" json:"principal"`
	AnnualRatePercent string      `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	TermYears         int         `yaml:"term_years" json:"term_years"`
	Repayment         *RawAmount  `yaml:"repayment,omitempty" json:"repayment,omitempty"` // defaults to the annuity repayment
	TargetYears       int         `yaml:"target_years,omitempty" json:"target_years,omitempty"`
	ExtraRepayments   []RawAmount `yaml:"extra_repayments,omitempty" json:"extra_repayments,omitempty"`
}

// GrowthPlan describes a superannuation or investment balance with regular contributions.
type GrowthPlan struct {
	Balance            string      `yaml:"balance" json:"balance"`
	Contribution       RawAmount   `yaml:"contribution" json:"contribution"`
	AnnualRatePercent  string      `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	Years              int         `yaml:"years" json:"years"`
	ExtraContributions []RawAmount `yaml:"extra_contributions,omitempty" json:"extra_contributions,omitempty"`
}

// DebtStrategy carries the shared extra budget and the simulator flags.
type DebtStrategy struct {
	ExtraMonthlyBudget string `yaml:"extra_monthly_budget" json:"extra_monthly_budget"`
	Rollover           string `yaml:"rollover,omitempty" json:"rollover,omitempty"`
	ReorderMonthly     bool   `yaml:"reorder_monthly,omitempty" json:"reorder_monthly,omitempty"`
}

// CategoryTotal is the monthly-equivalent total of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Monthly  decimal.Decimal `json:"monthly"`
}

// BudgetSummary is the monthly cash-flow picture of an assessment.
type BudgetSummary struct {
	MonthlyGrossIncome    decimal.Decimal `json:"monthly_gross_income"`
	MonthlyNetIncome      decimal.Decimal `json:"monthly_net_income"`
	MonthlyExpenses       decimal.Decimal `json:"monthly_expenses"`
	MonthlyDebtRepayments decimal.Decimal `json:"monthly_debt_repayments"`
	MonthlySurplus        decimal.Decimal `json:"monthly_surplus"`
	SavingsRatePercent    decimal.Decimal `json:"savings_rate_percent"`
	DebtToIncomePercent   decimal.Decimal `json:"debt_to_income_percent"`
	IncomeByCategory      []CategoryTotal `json:"income_by_category"`
	ExpensesByCategory    []CategoryTotal `json:"expenses_by_category"`
}

// LoanScenario is one extra-repayment level of a home loan.
type LoanScenario struct {
	Label        string                 `json:"label"`
	ExtraMonthly decimal.Decimal        `json:"extra_monthly"`
	Result       AmortizationResult     `json:"result"`
	Comparison   AmortizationComparison `json:"comparison"`
	PayoffDate   *time.Time             `json:"payoff_date,omitempty"`
}

// LoanReport compares a home loan's baseline with its extra-repayment scenarios.
type LoanReport struct {
	Principal         decimal.Decimal  `json:"principal"`
	AnnualRatePercent decimal.Decimal  `json:"annual_rate_percent"`
	MonthlyRepayment  decimal.Decimal  `json:"monthly_repayment"`
	ContractMonths    int              `json:"contract_months"`
	Scenarios         []LoanScenario   `json:"scenarios"` // baseline first
	Matrix            *ScenarioSet     `json:"matrix"`
	TargetMonths      int              `json:"target_months,omitempty"`
	RequiredExtra     *decimal.Decimal `json:"required_extra,omitempty"`
}

// DebtReport compares payoff strategies for the assessment's debts.
type DebtReport struct {
	TotalBalance       decimal.Decimal `json:"total_balance"`
	TotalMinimums      decimal.Decimal `json:"total_minimums"`
	ExtraMonthlyBudget decimal.Decimal `json:"extra_monthly_budget"`
	Rollover           RolloverPolicy  `json:"rollover"`
	ReorderMonthly     bool            `json:"reorder_monthly"`
	MinimumsOnly       PayoffResult    `json:"minimums_only"`
	Avalanche          PayoffResult    `json:"avalanche"`
	Snowball           PayoffResult    `json:"snowball"`
	Recommended        PayoffStrategy  `json:"recommended"`
	InterestSaved      decimal.Decimal `json:"interest_saved"` // recommended vs minimums only
	Matrix             *ScenarioSet    `json:"matrix"`
}

// Strategy returns the result for the given strategy.
func (r *DebtReport) Strategy(s PayoffStrategy) PayoffResult {
	if s == Snowball {
		return r.Snowball
	}
	return r.Avalanche
}

// GrowthScenario is one extra-contribution level of a growth projection.
type GrowthScenario struct {
	Label          string          `json:"label"`
	ExtraMonthly   decimal.Decimal `json:"extra_monthly"`
	FinalBalance   decimal.Decimal `json:"final_balance"`
	InterestEarned decimal.Decimal `json:"interest_earned"`
}

// GrowthReport projects a superannuation or investment balance.
type GrowthReport struct {
	Name                string           `json:"name"`
	InitialBalance      decimal.Decimal  `json:"initial_balance"`
	MonthlyContribution decimal.Decimal  `json:"monthly_contribution"`
	AnnualRatePercent   decimal.Decimal  `json:"annual_rate_percent"`
	Months              int              `json:"months"`
	Projection          []GrowthPoint    `json:"projection"` // yearly samples
	FinalBalance        decimal.Decimal  `json:"final_balance"`
	TotalContributions  decimal.Decimal  `json:"total_contributions"`
	InterestEarned      decimal.Decimal  `json:"interest_earned"`
	Scenarios           []GrowthScenario `json:"scenarios"` // baseline first
	Matrix              *ScenarioSet     `json:"matrix"`
}

// AssessmentReport is everything the engine derives from one Assessment.
type AssessmentReport struct {
	Name            string        `json:"name"`
	GeneratedAt     time.Time     `json:"generated_at"`
	StartDate       time.Time     `json:"start_date"`
	Budget          BudgetSummary `json:"budget"`
	Tax             NetIncome     `json:"tax"`
	HomeLoan        *LoanReport   `json:"home_loan,omitempty"`
	Debts           *DebtReport   `json:"debts,omitempty"`
	Superannuation  *GrowthReport `json:"superannuation,omitempty"`
	Investment      *GrowthReport `json:"investment,omitempty"`
	Recommendations []string      `json:"recommendations"`
}
