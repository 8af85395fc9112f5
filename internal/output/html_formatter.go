package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/finassess/assessment-engine/pkg/dateutil"
)

// HTMLFormatter produces a standalone HTML report with Chart.js charts of every scenario matrix.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"pct":    FormatPercentage,
	"term":   FormatTerm,
	"months": dateutil.FormatMonths,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type htmlChart struct {
	ID     string            `json:"id"`
	Title  string            `json:"title"`
	Labels []string          `json:"labels"`
	Rows   []domain.ChartRow `json:"rows"`
}

func (h HTMLFormatter) Format(report *domain.AssessmentReport) ([]byte, error) {
	var charts []htmlChart
	for _, s := range ChartSections(report) {
		labels := make([]string, 0, len(s.Set.Labels))
		for _, l := range s.Set.Labels {
			if _, ok := s.Set.Series[l]; ok {
				labels = append(labels, l)
			}
		}
		charts = append(charts, htmlChart{ID: "chart-" + s.Name, Title: s.Name, Labels: labels, Rows: s.Set.Rows()})
	}

	data := struct {
		*domain.AssessmentReport
		Summary        []SummaryRow
		Recommendation Recommendation
		Assumptions    []string
		Charts         []htmlChart
	}{report, BuildSummaryTable(report), AnalyzeReport(report), GenerateAssumptions(report), charts}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
