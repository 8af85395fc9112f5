package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/finassess/assessment-engine/internal/calculation"
	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/finassess/assessment-engine/internal/output"
	money "github.com/finassess/assessment-engine/pkg/decimal"
	"github.com/spf13/cobra"
)

// parseExtras reads "amount[/frequency]" values such as "50/weekly" or "500".
func parseExtras(raw []string) []domain.RawAmount {
	extras := make([]domain.RawAmount, 0, len(raw))
	for _, r := range raw {
		amount, freq, _ := strings.Cut(r, "/")
		if freq == "" {
			freq = "monthly"
		}
		extras = append(extras, domain.RawAmount{Amount: amount, Frequency: freq})
	}
	return extras
}

func newAmortizeCmd(a *app) *cobra.Command {
	var (
		loan    domain.HomeLoan
		payment string
		extras  []string
	)
	cmd := &cobra.Command{
		Use:   "amortize",
		Short: "Compare a home loan's repayment scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loan.TermYears <= 0 || loan.TermYears > calculation.MaxProjectionYears {
				return fmt.Errorf("--term-years must be between 1 and %d", calculation.MaxProjectionYears)
			}
			if loan.TargetYears < 0 || loan.TargetYears > calculation.MaxProjectionYears {
				return fmt.Errorf("--target-years must be between 0 and %d", calculation.MaxProjectionYears)
			}
			if payment != "" {
				loan.Repayment = &domain.RawAmount{Amount: payment, Frequency: "monthly"}
			}
			loan.ExtraRepayments = parseExtras(extras)
			ce, err := a.engine()
			if err != nil {
				return err
			}
			report := ce.RunHomeLoan(&loan, time.Now())
			output.WriteHomeLoan(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringVar(&loan.Principal, "principal", "", "loan balance")
	cmd.Flags().StringVar(&loan.AnnualRatePercent, "rate", "", "annual interest rate in percent")
	cmd.Flags().IntVar(&loan.TermYears, "term-years", 30, "remaining term in years")
	cmd.Flags().StringVar(&payment, "payment", "", "monthly repayment (default: the annuity repayment)")
	cmd.Flags().IntVar(&loan.TargetYears, "target-years", 0, "solve for the extra repayment that clears the loan in this many years")
	cmd.Flags().StringSliceVar(&extras, "extra", nil, "extra repayment levels, e.g. 50/weekly,500/monthly")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}

func newPayoffCmd(a *app) *cobra.Command {
	var (
		extra    string
		rollover string
		reorder  bool
	)
	cmd := &cobra.Command{
		Use:   "payoff <assessment.yaml>",
		Short: "Compare avalanche and snowball payoff for the debts in an assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ce, err := a.engine()
			if err != nil {
				return err
			}
			assessment, err := a.parser(ce).LoadFromFile(args[0])
			if err != nil {
				return err
			}
			strategy := assessment.DebtStrategy
			if cmd.Flags().Changed("extra") {
				strategy.ExtraMonthlyBudget = extra
			}
			if cmd.Flags().Changed("rollover") {
				if _, ok := calculation.ParseRollover(rollover); !ok {
					return fmt.Errorf("unknown rollover %q (want none or freed_minimums)", rollover)
				}
				strategy.Rollover = rollover
			}
			if cmd.Flags().Changed("reorder") {
				strategy.ReorderMonthly = reorder
			}
			debts := domain.ParseDebts(assessment.Debts)
			if len(debts) == 0 {
				return fmt.Errorf("%s lists no debts", args[0])
			}
			output.WriteDebts(cmd.OutOrStdout(), ce.RunDebts(debts, strategy))
			return nil
		},
	}
	cmd.Flags().StringVar(&extra, "extra", "", "override the extra monthly budget")
	cmd.Flags().StringVar(&rollover, "rollover", "", "override the rollover policy (none, freed_minimums)")
	cmd.Flags().BoolVar(&reorder, "reorder", false, "re-sort the debt order every month")
	return cmd
}

func newGrowthCmd(a *app) *cobra.Command {
	var (
		plan      domain.GrowthPlan
		name      string
		frequency string
		extras    []string
	)
	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Project a savings or superannuation balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if plan.Years <= 0 || plan.Years > calculation.MaxProjectionYears {
				return fmt.Errorf("--years must be between 1 and %d", calculation.MaxProjectionYears)
			}
			plan.Contribution.Frequency = frequency
			plan.ExtraContributions = parseExtras(extras)
			ce, err := a.engine()
			if err != nil {
				return err
			}
			output.WriteGrowth(cmd.OutOrStdout(), ce.RunGrowth(name, &plan))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Investment", "label for the projection")
	cmd.Flags().StringVar(&plan.Balance, "balance", "0", "starting balance")
	cmd.Flags().StringVar(&plan.Contribution.Amount, "contribution", "0", "regular contribution")
	cmd.Flags().StringVar(&frequency, "frequency", "monthly", "contribution frequency")
	cmd.Flags().StringVar(&plan.AnnualRatePercent, "rate", "", "annual return in percent")
	cmd.Flags().IntVar(&plan.Years, "years", 10, "projection length in years")
	cmd.Flags().StringSliceVar(&extras, "extra", nil, "extra contribution levels, e.g. 100/monthly")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}

func newTaxCmd(a *app) *cobra.Command {
	var year string
	cmd := &cobra.Command{
		Use:   "tax <annual income>",
		Short: "Calculate income tax and take-home pay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ce, err := a.engine()
			if err != nil {
				return err
			}
			table, err := ce.TaxTable(year, nil)
			if err != nil {
				return err
			}
			n := calculation.NewTaxCalculator(table).NetIncome(money.ParseAmount(args[0]))
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-25s %15s\n", "Financial year", n.FinancialYear)
			fmt.Fprintf(w, "%-25s %15s\n", "Gross income", output.FormatCurrency(n.GrossAnnual))
			fmt.Fprintf(w, "%-25s %15s\n", "Income tax", output.FormatCurrency(n.AnnualTax))
			fmt.Fprintf(w, "%-25s %15s\n", "Net income", output.FormatCurrency(n.NetAnnual))
			fmt.Fprintf(w, "%-25s %15s\n", "Net monthly", output.FormatCurrency(n.NetMonthly))
			fmt.Fprintf(w, "%-25s %15s\n", "Marginal rate", output.FormatPercentage(n.MarginalRatePercent))
			fmt.Fprintf(w, "%-25s %15s\n", "Effective rate", output.FormatPercentage(n.EffectiveRatePercent))
			return nil
		},
	}
	cmd.Flags().StringVar(&year, "year", "", "financial year (default: the latest built-in table)")
	return cmd
}

func newExampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example <file>",
		Short: "Write an example assessment file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ce, err := a.engine()
			if err != nil {
				return err
			}
			if err := output.SaveConfiguration(a.parser(ce).CreateExampleConfiguration(), args[0]); err != nil {
				return fmt.Errorf("write example: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example assessment written to %s\n", args[0])
			return nil
		},
	}
}
