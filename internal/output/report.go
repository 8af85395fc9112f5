package output

import (
	"os"

	"github.com/finassess/assessment-engine/internal/domain"
	"gopkg.in/yaml.v3"
)

// Render formats a report with the named formatter.
func Render(report *domain.AssessmentReport, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	return f.Format(report)
}

// GenerateReport writes the report to a timestamped file in the working directory.
// "all" writes the detailed console report and the chart CSV.
func GenerateReport(report *domain.AssessmentReport, format string) error {
	if f := GetFormatterByName(format); f != nil {
		_, err := WriteFormatted(f, report, Extension(format))
		return err
	}
	if format == "all" {
		if _, err := WriteFormatted(ConsoleFormatter{}, report, "txt"); err != nil {
			return err
		}
		_, err := WriteFormatted(ChartCSVExporter{}, report, "csv")
		return err
	}
	return unsupported(format)
}

// SaveConfiguration writes an assessment as YAML.
func SaveConfiguration(assessment *domain.Assessment, filename string) error {
	b, err := yaml.Marshal(assessment)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
