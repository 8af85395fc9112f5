package output

import (
	"context"
	"testing"
	"time"

	"github.com/finassess/assessment-engine/internal/calculation"
	"github.com/finassess/assessment-engine/internal/domain"
)

var fixtureTime = time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)

func fixtureAssessment() *domain.Assessment {
	return &domain.Assessment{
		Name:          "Test household",
		FinancialYear: "2024-25",
		StartDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Income:        []domain.RawLineItem{{Category: "Salary", Amount: "100000", Frequency: "Yearly"}},
		Expenses: []domain.RawLineItem{
			{Category: "Rent", Amount: "2000", Frequency: "Monthly"},
			{Category: "Groceries", Amount: "200", Frequency: "Weekly"},
		},
		Debts: []domain.RawDebt{
			{Type: "Credit card", Balance: "5000", MinimumPayment: "100", AnnualInterestRatePercent: "22"},
			{Type: "Car loan", Balance: "2000", MinimumPayment: "50", AnnualInterestRatePercent: "5"},
		},
		HomeLoan: &domain.HomeLoan{
			Principal:         "500000",
			AnnualRatePercent: "6.5",
			TermYears:         30,
			ExtraRepayments: []domain.RawAmount{
				{Amount: "50", Frequency: "Weekly"},
				{Amount: "500", Frequency: "Monthly"},
			},
		},
		Superannuation: &domain.GrowthPlan{
			Balance:           "1000",
			Contribution:      domain.RawAmount{Amount: "500", Frequency: "Monthly"},
			AnnualRatePercent: "7.5",
			Years:             2,
		},
		DebtStrategy: domain.DebtStrategy{ExtraMonthlyBudget: "300"},
	}
}

func buildTestReport(t *testing.T) *domain.AssessmentReport {
	t.Helper()
	defer calculation.SetNowFunc(func() time.Time { return fixtureTime })()
	report, err := calculation.NewCalculationEngine().RunAssessment(context.Background(), fixtureAssessment())
	if err != nil {
		t.Fatalf("engine error: %v", err)
	}
	return report
}
