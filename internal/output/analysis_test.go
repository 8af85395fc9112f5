package output

import (
	"testing"

	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/shopspring/decimal"
)

func TestAnalyzeReport_PicksLargestLoanSaving(t *testing.T) {
	report := &domain.AssessmentReport{
		HomeLoan: &domain.LoanReport{Scenarios: []domain.LoanScenario{
			{Label: "no extra"},
			{Label: "extra $100/month", Comparison: domain.AmortizationComparison{Improved: true, InterestSaved: decimal.NewFromInt(20000), TimeSavedMonths: 20}},
			{Label: "extra $500/month", Comparison: domain.AmortizationComparison{Improved: true, InterestSaved: decimal.NewFromInt(90000), TimeSavedMonths: 80}},
		}},
	}
	rec := AnalyzeReport(report)
	if rec.LoanScenario != "extra $500/month" {
		t.Fatalf("expected extra $500/month, got %q", rec.LoanScenario)
	}
	if rec.LoanTimeSavedMonths != 80 {
		t.Fatalf("expected 80 months saved, got %d", rec.LoanTimeSavedMonths)
	}
}

func TestAnalyzeReport_IgnoresStalledDebts(t *testing.T) {
	report := &domain.AssessmentReport{
		Debts: &domain.DebtReport{Recommended: domain.Avalanche, Avalanche: domain.PayoffResult{Converged: false}},
	}
	rec := AnalyzeReport(report)
	if rec.DebtStrategy != "" {
		t.Fatalf("expected no debt recommendation, got %q", rec.DebtStrategy)
	}
}
