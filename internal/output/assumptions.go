package output

import (
	"fmt"

	"github.com/finassess/assessment-engine/internal/calculation"
	"github.com/finassess/assessment-engine/internal/domain"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Weekly amounts are converted at 4.33 weeks per month, fortnightly at 2.165",
	"Interest is charged monthly at one twelfth of the annual rate",
	"All income is treated as taxable; no levies or offsets are modelled",
	fmt.Sprintf("Plans that do not finish within %d months (loans) or %d months (debts) are reported as never repaid",
		calculation.MaxAmortizationMonths, calculation.MaxPayoffMonths),
}

// GenerateAssumptions creates the assumption list for a specific report.
func GenerateAssumptions(report *domain.AssessmentReport) []string {
	out := append([]string(nil), DefaultAssumptions...)
	out = append(out, fmt.Sprintf("Income tax uses the %s resident bracket table", report.Tax.FinancialYear))
	if d := report.Debts; d != nil {
		rollover := "stop being paid"
		if d.Rollover == domain.RolloverFreedMinimums {
			rollover = "roll into the extra repayment budget"
		}
		out = append(out, fmt.Sprintf("Minimum payments of cleared debts %s", rollover))
	}
	return out
}
