package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finassess/assessment-engine/internal/calculation"
	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/finassess/assessment-engine/internal/output"
)

// Summary is a generated narrative and where it came from.
type Summary struct {
	Text   string `json:"text"`
	Source string `json:"source"` // "model" or "fallback"
}

// Generator produces narratives, falling back to a template whenever the
// model is unavailable.
type Generator struct {
	model  Completer
	logger calculation.Logger
}

func NewGenerator(model Completer, logger calculation.Logger) *Generator {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Generator{model: model, logger: logger}
}

// Summarize never fails: model errors are logged and the fallback is used.
func (g *Generator) Summarize(ctx context.Context, report *domain.AssessmentReport, goals []string) Summary {
	if g.model != nil {
		prompt := BuildPrompt(goals, output.BuildSummaryTable(report))
		text, err := g.model.Complete(ctx, systemPrompt, prompt)
		if err == nil && strings.TrimSpace(text) != "" {
			return Summary{Text: strings.TrimSpace(text), Source: "model"}
		}
		if err != nil && !errors.Is(err, ErrDisabled) {
			g.logger.Warnf("narrative model failed, using fallback: %v", err)
		}
	}
	return Summary{Text: Fallback(report, goals), Source: "fallback"}
}

// Fallback builds the deterministic narrative from the report's recommendations.
func Fallback(report *domain.AssessmentReport, goals []string) string {
	var parts []string
	b := report.Budget
	if b.MonthlySurplus.IsNegative() {
		parts = append(parts, fmt.Sprintf("Each month you are %s short after expenses and repayments.", output.FormatCurrency(b.MonthlySurplus.Neg())))
	} else {
		parts = append(parts, fmt.Sprintf("You have %s left each month after expenses and repayments, a savings rate of %s.",
			output.FormatCurrency(b.MonthlySurplus), output.FormatPercentage(b.SavingsRatePercent)))
	}
	if len(goals) > 0 {
		parts = append(parts, fmt.Sprintf("Your goals: %s.", strings.Join(goals, "; ")))
	}
	parts = append(parts, report.Recommendations...)
	return strings.Join(parts, " ")
}
