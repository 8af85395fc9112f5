// Package narrative turns an assessment report into a short plain-language
// summary, either through a hosted language model or a deterministic template.
package narrative

import (
	"fmt"
	"strings"

	"github.com/finassess/assessment-engine/internal/output"
)

const systemPrompt = "You are a careful financial coach. You explain the figures you are given in plain, encouraging language. " +
	"Never invent numbers: quote only the figures supplied. Do not give product or investment advice."

// BuildPrompt renders the user's goals and the summary table into the user
// message sent to the model.
func BuildPrompt(goals []string, rows []output.SummaryRow) string {
	var b strings.Builder
	b.WriteString("Summarise this household's financial position in 4-6 sentences.\n\n")

	b.WriteString("GOALS:\n")
	if len(goals) == 0 {
		b.WriteString("- none stated\n")
	}
	for _, g := range goals {
		if g = strings.TrimSpace(g); g != "" {
			fmt.Fprintf(&b, "- %s\n", g)
		}
	}

	b.WriteString("\nFIGURES (monthly unless stated):\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "- %s: %s\n", r.Label, r.Value)
	}

	b.WriteString("\nINSTRUCTIONS:\n")
	b.WriteString("1. Start with the monthly surplus or shortfall.\n")
	b.WriteString("2. Relate the debt and home loan figures to the goals above.\n")
	b.WriteString("3. A value of \"-\" means the plan never finishes; say so plainly.\n")
	return b.String()
}
