package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/finassess/assessment-engine/internal/calculation"
	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
	assert.Contains(t, parser.TaxTables, calculation.DefaultFinancialYear)
}

func TestLoadFromFile_Success(t *testing.T) {
	parser := NewInputParser()
	a, err := parser.LoadFromFile("../../test/testdata/example_assessment.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Sample household", a.Name)
	assert.Equal(t, "2024-25", a.FinancialYear)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), a.StartDate)
	assert.Len(t, a.Income, 2)
	assert.Len(t, a.Expenses, 4)
	assert.Equal(t, "not sure", a.Expenses[3].Amount, "raw amounts are kept for the engine to parse")
	assert.Len(t, a.Debts, 2)
	require.NotNil(t, a.HomeLoan)
	assert.Equal(t, 30, a.HomeLoan.TermYears)
	assert.Len(t, a.HomeLoan.ExtraRepayments, 2)
	require.NotNil(t, a.Superannuation)
	assert.Equal(t, "Monthly", a.Superannuation.Contribution.Frequency)
	assert.Nil(t, a.Investment)
	assert.Equal(t, "freed_minimums", a.DebtStrategy.Rollover)
	assert.Len(t, a.Goals, 2)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	a, err := parser.LoadFromFile("nonexistent_file.yaml")
	assert.Error(t, err)
	assert.Nil(t, a)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_InvalidYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.Parse([]byte("income: [unterminated"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_JSON(t *testing.T) {
	parser := NewInputParser()
	a, err := parser.Parse([]byte(`{"name":"json","income":[{"category":"Salary","amount":"1000","frequency":"Weekly"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "json", a.Name)
	assert.Len(t, a.Income, 1)
}

func TestValidateConfiguration(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(a *domain.Assessment)
		wantErr string
	}{
		{"example is valid", func(a *domain.Assessment) {}, ""},
		{"malformed line item amounts are accepted", func(a *domain.Assessment) {
			a.Income[0].Amount = "lots"
		}, ""},
		{"unknown financial year", func(a *domain.Assessment) {
			a.FinancialYear = "1999-00"
		}, "unknown financial year"},
		{"custom brackets override the year", func(a *domain.Assessment) {
			a.FinancialYear = "custom"
			a.TaxBrackets = []domain.TaxBracket{{Threshold: decimal.Zero, MarginalRate: decimal.RequireFromString("0.2")}}
		}, ""},
		{"bracket rate above one", func(a *domain.Assessment) {
			a.TaxBrackets = []domain.TaxBracket{{Threshold: decimal.Zero, MarginalRate: decimal.NewFromInt(20)}}
		}, "marginal rate"},
		{"negative debt rate", func(a *domain.Assessment) {
			a.Debts[0].AnnualInterestRatePercent = "-3"
		}, "cannot be negative"},
		{"zero loan term", func(a *domain.Assessment) {
			a.HomeLoan.TermYears = 0
		}, "term_years must be between 1 and 60"},
		{"loan term beyond the projection cap", func(a *domain.Assessment) {
			a.HomeLoan.TermYears = 2000000
		}, "term_years must be between 1 and 60"},
		{"target beyond the projection cap", func(a *domain.Assessment) {
			a.HomeLoan.TargetYears = 61
		}, "target_years"},
		{"growth horizon beyond the projection cap", func(a *domain.Assessment) {
			a.Investment.Years = 2000000
		}, "investment validation failed"},
		{"bracket threshold with a huge exponent", func(a *domain.Assessment) {
			a.TaxBrackets = []domain.TaxBracket{{Threshold: decimal.New(1, 20000000), MarginalRate: decimal.RequireFromString("0.2")}}
		}, "threshold"},
		{"bracket rate with a tiny exponent", func(a *domain.Assessment) {
			a.TaxBrackets = []domain.TaxBracket{{Threshold: decimal.Zero, MarginalRate: decimal.New(1, -20000000)}}
		}, "marginal rate"},
		{"negative loan rate", func(a *domain.Assessment) {
			a.HomeLoan.AnnualRatePercent = "-1.5%"
		}, "annual_rate_percent cannot be negative"},
		{"negative target", func(a *domain.Assessment) {
			a.HomeLoan.TargetYears = -2
		}, "target_years"},
		{"zero growth horizon", func(a *domain.Assessment) {
			a.Superannuation.Years = 0
		}, "superannuation validation failed"},
		{"negative investment rate", func(a *domain.Assessment) {
			a.Investment.AnnualRatePercent = "-4"
		}, "investment validation failed"},
		{"unknown rollover", func(a *domain.Assessment) {
			a.DebtStrategy.Rollover = "sometimes"
		}, "unknown rollover policy"},
		{"negative extra budget", func(a *domain.Assessment) {
			a.DebtStrategy.ExtraMonthlyBudget = "-$100"
		}, "extra_monthly_budget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := parser.CreateExampleConfiguration()
			tt.mutate(a)
			err := parser.ValidateConfiguration(a)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Error(t, parser.ValidateConfiguration(nil))
}

func TestCreateExampleConfiguration_RoundTrips(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()

	data, err := yaml.Marshal(example)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, example.Name, loaded.Name)
	assert.True(t, example.StartDate.Equal(loaded.StartDate))
	assert.Equal(t, example.Debts, loaded.Debts)
	assert.Equal(t, example.HomeLoan, loaded.HomeLoan)
	assert.Equal(t, example.DebtStrategy, loaded.DebtStrategy)
}

func TestLoadTaxTables(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	good := write("tables.yaml", `
- financial_year: "2025-26"
  brackets:
    - {threshold: 0, marginal_rate: 0}
    - {threshold: 18200, marginal_rate: 0.15}
    - {threshold: 45000, marginal_rate: 0.30}
`)
	tables, err := LoadTaxTables(good)
	require.NoError(t, err)
	require.Contains(t, tables, "2025-26")
	tax := calculation.AnnualTax(decimal.NewFromInt(45000), tables["2025-26"].Brackets)
	assert.True(t, tax.Equal(decimal.NewFromInt(4020)), "tax %s", tax)

	dup := write("dup.yaml", `
- financial_year: "2025-26"
  brackets: [{threshold: 0, marginal_rate: 0}]
- financial_year: "2025-26"
  brackets: [{threshold: 0, marginal_rate: 0}]
`)
	_, err = LoadTaxTables(dup)
	assert.ErrorContains(t, err, "duplicate")

	empty := write("empty.yaml", `[]`)
	_, err = LoadTaxTables(empty)
	assert.Error(t, err)

	noBrackets := write("nobrackets.yaml", `[{financial_year: "x"}]`)
	_, err = LoadTaxTables(noBrackets)
	assert.ErrorContains(t, err, "no brackets")
}
