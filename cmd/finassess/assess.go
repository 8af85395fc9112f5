package main

import (
	"context"
	"fmt"
	"os"

	"github.com/finassess/assessment-engine/internal/narrative"
	"github.com/finassess/assessment-engine/internal/output"
	"github.com/finassess/assessment-engine/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAssessCmd(a *app) *cobra.Command {
	var (
		format    string
		out       string
		summarize bool
		dbPath    string
	)
	cmd := &cobra.Command{
		Use:   "assess <assessment.yaml>",
		Short: "Run a full assessment and render a report",
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
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			report, err := ce.RunAssessment(ctx, assessment)
			if err != nil {
				return fmt.Errorf("assessment failed: %w", err)
			}

			var summary narrative.Summary
			if summarize {
				summary = narrative.NewGenerator(narrative.NewClientFromEnv(), a.logger.Sugar()).Summarize(ctx, report, assessment.Goals)
			}

			if dbPath != "" {
				db, err := store.Open(dbPath)
				if err != nil {
					return err
				}
				defer db.Close()
				id, err := db.SaveAssessment(ctx, assessment, report)
				if err != nil {
					return err
				}
				if summary.Text != "" {
					if err := db.SaveNarrative(ctx, id, summary.Text); err != nil {
						return err
					}
				}
				a.logger.Info("assessment stored", zap.String("id", id), zap.String("db", dbPath))
			}

			data, err := output.Render(report, format)
			if err != nil {
				return err
			}
			if summary.Text != "" && output.Extension(format) == "txt" {
				data = append(data, []byte("\nNARRATIVE ("+summary.Source+")\n"+summary.Text+"\n")...)
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			a.logger.Info("report written", zap.String("path", out), zap.String("format", output.NormalizeFormatName(format)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "report format (console, console-lite, json, yaml, csv, chart-csv, html)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&summarize, "summarize", false, "append a plain-language narrative (uses OPENAI_API_KEY when set)")
	cmd.Flags().StringVar(&dbPath, "db", "", "also store the assessment in this SQLite database")
	return cmd
}
