package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/finassess/assessment-engine/internal/calculation"
	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of assessment files
type InputParser struct {
	TaxTables map[string]domain.TaxTable
}

// NewInputParser creates a new input parser that accepts the built-in financial years
func NewInputParser() *InputParser {
	return &InputParser{TaxTables: calculation.DefaultTaxTables()}
}

// LoadFromFile loads an assessment from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Assessment, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates an assessment document.
func (ip *InputParser) Parse(data []byte) (*domain.Assessment, error) {
	var assessment domain.Assessment
	if err := yaml.Unmarshal(data, &assessment); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&assessment); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &assessment, nil
}

// ValidateConfiguration checks the structural fields of an assessment. Line
// item amounts are never rejected; malformed amounts count as zero.
func (ip *InputParser) ValidateConfiguration(a *domain.Assessment) error {
	if a == nil {
		return errors.New("assessment is empty")
	}

	if len(a.TaxBrackets) > 0 {
		if err := calculation.ValidateBrackets(a.TaxBrackets); err != nil {
			return fmt.Errorf("tax brackets: %w", err)
		}
	} else if a.FinancialYear != "" {
		if _, ok := ip.TaxTables[a.FinancialYear]; !ok {
			return fmt.Errorf("unknown financial year %q", a.FinancialYear)
		}
	}

	for i, debt := range a.Debts {
		if err := nonNegativeField("annual_interest_rate_percent", debt.AnnualInterestRatePercent); err != nil {
			return fmt.Errorf("debt %d (%s): %w", i, debt.Type, err)
		}
	}

	if a.HomeLoan != nil {
		if err := validateHomeLoan(a.HomeLoan); err != nil {
			return fmt.Errorf("home loan validation failed: %w", err)
		}
	}
	if a.Superannuation != nil {
		if err := validateGrowthPlan(a.Superannuation); err != nil {
			return fmt.Errorf("superannuation validation failed: %w", err)
		}
	}
	if a.Investment != nil {
		if err := validateGrowthPlan(a.Investment); err != nil {
			return fmt.Errorf("investment validation failed: %w", err)
		}
	}

	if _, ok := calculation.ParseRollover(a.DebtStrategy.Rollover); !ok {
		return fmt.Errorf("unknown rollover policy %q (want none or freed_minimums)", a.DebtStrategy.Rollover)
	}
	if err := nonNegativeField("extra_monthly_budget", a.DebtStrategy.ExtraMonthlyBudget); err != nil {
		return fmt.Errorf("debt strategy: %w", err)
	}

	return nil
}

func validateHomeLoan(hl *domain.HomeLoan) error {
	if hl.TermYears <= 0 || hl.TermYears > calculation.MaxProjectionYears {
		return fmt.Errorf("term_years must be between 1 and %d, got %d", calculation.MaxProjectionYears, hl.TermYears)
	}
	if hl.TargetYears < 0 || hl.TargetYears > calculation.MaxProjectionYears {
		return fmt.Errorf("target_years must be between 0 and %d, got %d", calculation.MaxProjectionYears, hl.TargetYears)
	}
	if err := nonNegativeField("principal", hl.Principal); err != nil {
		return err
	}
	return nonNegativeField("annual_rate_percent", hl.AnnualRatePercent)
}

func validateGrowthPlan(plan *domain.GrowthPlan) error {
	if plan.Years <= 0 || plan.Years > calculation.MaxProjectionYears {
		return fmt.Errorf("years must be between 1 and %d, got %d", calculation.MaxProjectionYears, plan.Years)
	}
	if err := nonNegativeField("balance", plan.Balance); err != nil {
		return err
	}
	return nonNegativeField("annual_rate_percent", plan.AnnualRatePercent)
}

// nonNegativeField rejects explicitly negative numbers. Text that does not
// parse is left to the engine, which treats it as zero.
func nonNegativeField(name, raw string) error {
	cleaned := strings.NewReplacer("$", "", "%", "", ",", "", " ", "").Replace(strings.TrimSpace(raw))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	if d.IsNegative() {
		return fmt.Errorf("%s cannot be negative, got %s", name, raw)
	}
	return nil
}

// LoadTaxTables reads a YAML list of bracket tables keyed by financial year,
// replacing the built-in tables.
func LoadTaxTables(filename string) (map[string]domain.TaxTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var tables []domain.TaxTable
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(tables) == 0 {
		return nil, errors.New("no tax tables defined")
	}

	byYear := make(map[string]domain.TaxTable, len(tables))
	for _, table := range tables {
		if table.FinancialYear == "" {
			return nil, errors.New("tax table is missing financial_year")
		}
		if _, dup := byYear[table.FinancialYear]; dup {
			return nil, fmt.Errorf("duplicate tax table for %s", table.FinancialYear)
		}
		if len(table.Brackets) == 0 {
			return nil, fmt.Errorf("tax table %s has no brackets", table.FinancialYear)
		}
		if err := calculation.ValidateBrackets(table.Brackets); err != nil {
			return nil, fmt.Errorf("tax table %s: %w", table.FinancialYear, err)
		}
		byYear[table.FinancialYear] = table
	}
	return byYear, nil
}

// CreateExampleConfiguration creates an example assessment
func (ip *InputParser) CreateExampleConfiguration() *domain.Assessment {
	startDate, _ := time.Parse("2006-01-02", "2025-07-01")

	return &domain.Assessment{
		Name:          "Example household",
		FinancialYear: calculation.DefaultFinancialYear,
		StartDate:     startDate,
		Income: []domain.RawLineItem{
			{Category: "Salary", Amount: "95000", Frequency: "Yearly"},
			{Category: "Side business", Amount: "250", Frequency: "Weekly"},
		},
		Expenses: []domain.RawLineItem{
			{Category: "Groceries", Amount: "220", Frequency: "Weekly"},
			{Category: "Utilities", Amount: "380", Frequency: "Monthly"},
			{Category: "Insurance", Amount: "2,400", Frequency: "Yearly"},
			{Category: "Transport", Amount: "160", Frequency: "Fortnightly"},
		},
		Debts: []domain.RawDebt{
			{Type: "Credit card", Balance: "6500", MinimumPayment: "160", AnnualInterestRatePercent: "20.99"},
			{Type: "Car loan", Balance: "14000", MinimumPayment: "390", AnnualInterestRatePercent: "8.5"},
			{Type: "Personal loan", Balance: "3000", MinimumPayment: "120", AnnualInterestRatePercent: "12"},
		},
		HomeLoan: &domain.HomeLoan{
			Principal:         "520000",
			AnnualRatePercent: "6.2",
			TermYears:         30,
			TargetYears:       20,
			ExtraRepayments: []domain.RawAmount{
				{Amount: "50", Frequency: "Weekly"},
				{Amount: "500", Frequency: "Monthly"},
			},
		},
		Superannuation: &domain.GrowthPlan{
			Balance:           "85000",
			Contribution:      domain.RawAmount{Amount: "950", Frequency: "Monthly"},
			AnnualRatePercent: "7",
			Years:             25,
			ExtraContributions: []domain.RawAmount{
				{Amount: "100", Frequency: "Monthly"},
				{Amount: "5000", Frequency: "Yearly"},
			},
		},
		Investment: &domain.GrowthPlan{
			Balance:           "12000",
			Contribution:      domain.RawAmount{Amount: "200", Frequency: "Fortnightly"},
			AnnualRatePercent: "6",
			Years:             10,
		},
		DebtStrategy: domain.DebtStrategy{
			ExtraMonthlyBudget: "400",
			Rollover:           string(domain.RolloverFreedMinimums),
		},
		Goals: []string{
			"Be debt free apart from the mortgage within three years",
			"Repay the home loan before retirement",
		},
	}
}
