package output

import (
	"github.com/finassess/assessment-engine/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders the summary table and recommendations as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *domain.AssessmentReport) ([]byte, error) {
	type row struct {
		Label string `yaml:"label"`
		Value string `yaml:"value"`
	}
	doc := struct {
		Name            string   `yaml:"name,omitempty"`
		GeneratedAt     string   `yaml:"generated_at"`
		Summary         []row    `yaml:"summary"`
		Recommendations []string `yaml:"recommendations,omitempty"`
	}{
		Name:            report.Name,
		GeneratedAt:     report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Recommendations: report.Recommendations,
	}
	for _, r := range BuildSummaryTable(report) {
		doc.Summary = append(doc.Summary, row{Label: r.Label, Value: r.Value})
	}
	return yaml.Marshal(doc)
}
