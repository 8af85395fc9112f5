package main

import (
	"sort"

	"github.com/finassess/assessment-engine/internal/calculation"
	"github.com/finassess/assessment-engine/internal/config"
	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the state shared by every subcommand.
type app struct {
	debug     bool
	taxTables string
	logger    *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "finassess",
		Short:         "Personal finance assessment and projection tool",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.debug)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.taxTables, "tax-tables", "", "YAML file of tax tables replacing the built-in ones")

	root.AddCommand(
		newAssessCmd(a),
		newAmortizeCmd(a),
		newPayoffCmd(a),
		newGrowthCmd(a),
		newTaxCmd(a),
		newExampleCmd(a),
		newServeCmd(a),
	)
	return root
}

// newLogger builds a console zap logger on stderr.
func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = !debug
	return cfg.Build()
}

// engine builds a calculation engine honouring --tax-tables and --debug.
func (a *app) engine() (*calculation.CalculationEngine, error) {
	ce := calculation.NewCalculationEngine()
	if a.taxTables != "" {
		tables, err := config.LoadTaxTables(a.taxTables)
		if err != nil {
			return nil, err
		}
		defaultYear := calculation.DefaultFinancialYear
		if _, ok := tables[defaultYear]; !ok {
			defaultYear = latestYear(tables)
		}
		ce = calculation.NewCalculationEngineWithTables(tables, defaultYear)
	}
	ce.Debug = a.debug
	if a.logger != nil {
		ce.SetLogger(a.logger.Sugar())
	}
	return ce, nil
}

// latestYear picks the lexically greatest year; "2025-26" sorts after "2024-25".
func latestYear(tables map[string]domain.TaxTable) string {
	years := make([]string, 0, len(tables))
	for y := range tables {
		years = append(years, y)
	}
	sort.Strings(years)
	return years[len(years)-1]
}

func (a *app) parser(ce *calculation.CalculationEngine) *config.InputParser {
	return &config.InputParser{TaxTables: ce.TaxTables}
}
