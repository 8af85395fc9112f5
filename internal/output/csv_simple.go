package output

import (
	"bytes"
	"encoding/csv"

	"github.com/finassess/assessment-engine/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per summary line).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.AssessmentReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Metric", "Value"}); err != nil {
		return nil, err
	}
	for _, row := range BuildSummaryTable(report) {
		if err := w.Write([]string{row.Label, row.Value}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
