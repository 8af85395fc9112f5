package output

import (
	"bytes"
	"encoding/csv"

	"github.com/finassess/assessment-engine/internal/domain"
)

// ChartCSVExporter writes every scenario matrix in long form, one row per
// section, period and scenario, ready for a charting tool.
type ChartCSVExporter struct{}

func (c ChartCSVExporter) Name() string { return "chart-csv" }

func (c ChartCSVExporter) Format(report *domain.AssessmentReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Period", "Scenario", "Value", "Baseline"}); err != nil {
		return nil, err
	}
	for _, section := range ChartSections(report) {
		set := section.Set
		for i, period := range set.Periods {
			for _, label := range set.Labels {
				series, ok := set.Series[label]
				if !ok || i >= len(series) {
					continue
				}
				row := []string{section.Name, intToString(period), label, series[i].Value.StringFixed(2), boolToString(label == set.Baseline)}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ChartSection names one scenario matrix of a report.
type ChartSection struct {
	Name string
	Set  *domain.ScenarioSet
}

// ChartSections lists the report's scenario matrices in display order.
func ChartSections(report *domain.AssessmentReport) []ChartSection {
	var sections []ChartSection
	if report.HomeLoan != nil && report.HomeLoan.Matrix != nil {
		sections = append(sections, ChartSection{"home_loan", report.HomeLoan.Matrix})
	}
	if report.Debts != nil && report.Debts.Matrix != nil {
		sections = append(sections, ChartSection{"debts", report.Debts.Matrix})
	}
	if report.Superannuation != nil && report.Superannuation.Matrix != nil {
		sections = append(sections, ChartSection{"superannuation", report.Superannuation.Matrix})
	}
	if report.Investment != nil && report.Investment.Matrix != nil {
		sections = append(sections, ChartSection{"investment", report.Investment.Matrix})
	}
	return sections
}
