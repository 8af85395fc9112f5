package output

import (
	"encoding/json"

	"github.com/finassess/assessment-engine/internal/domain"
)

// JSONFormatter serializes the assessment report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.AssessmentReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
