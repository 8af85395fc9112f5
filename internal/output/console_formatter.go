package output

import (
	"bytes"
	"fmt"

	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/finassess/assessment-engine/pkg/dateutil"
)

// ConsoleLiteFormatter provides a concise console style summary via the formatter interface.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *domain.AssessmentReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FINANCIAL ASSESSMENT SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, row := range BuildSummaryTable(report) {
		fmt.Fprintf(&buf, "%s: %s\n", row.Label, row.Value)
	}
	rec := AnalyzeReport(report)
	if rec.DebtStrategy != "" || rec.LoanScenario != "" {
		fmt.Fprintln(&buf)
	}
	if rec.DebtStrategy != "" {
		fmt.Fprintf(&buf, "Recommended: %s (debt free in %s)\n", rec.DebtStrategy, dateutil.FormatMonths(rec.DebtFreeMonths))
	}
	if rec.LoanScenario != "" {
		fmt.Fprintf(&buf, "Best home loan option: %s (saves %s)\n", rec.LoanScenario, FormatCurrency(rec.LoanInterestSaved))
	}
	return buf.Bytes(), nil
}
