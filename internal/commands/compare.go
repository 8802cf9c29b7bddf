package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resultado/dre/internal/model"
	"github.com/resultado/dre/internal/render"
	"github.com/resultado/dre/internal/report"
)

type compareOptions struct {
	period1    string
	period2    string
	mode       string
	entities   []string
	filter     string
	lineFilter string
	format     string
	color      bool
}

func newCompareCommand(global *globalOptions) *cobra.Command {
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the DRE of two periods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			p1, err := model.ParsePeriod(opts.period1)
			if err != nil {
				return fmt.Errorf("--period1: %w", err)
			}
			p2, err := model.ParsePeriod(opts.period2)
			if err != nil {
				return fmt.Errorf("--period2: %w", err)
			}

			a, err := loadApp(cmd.Context(), cmd, global)
			if err != nil {
				return err
			}

			modeName := opts.mode
			if modeName == "" {
				modeName = a.cfg.Report.CompareMode
			}
			mode, err := report.ParseMode(modeName)
			if err != nil {
				return err
			}

			ids := a.entityIDs(opts.entities)
			cmp, err := a.engine.Compare(a.store.Scope(ids), a.store.Lines(ids), report.CompareQuery{
				Period1:    p1,
				Period2:    p2,
				Mode:       mode,
				LineFilter: opts.lineFilter,
			})
			if err != nil {
				return err
			}
			return render.Comparative(cmd.OutOrStdout(), cmp.Filter(opts.filter), format, render.Options{Color: opts.color})
		},
	}

	cmd.Flags().StringVar(&opts.period1, "period1", "", "first period, YYYY-MM (required)")
	cmd.Flags().StringVar(&opts.period2, "period2", "", "second period, YYYY-MM (required)")
	_ = cmd.MarkFlagRequired("period1")
	_ = cmd.MarkFlagRequired("period2")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "value mode: period or cumulative (default from config)")
	cmd.Flags().StringSliceVar(&opts.entities, "entity", nil, "entity IDs to include (repeatable; default: all)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "keep only lines whose name contains this text")
	cmd.Flags().StringVar(&opts.lineFilter, "line-filter", "", "aggregate only ledger lines whose account name contains this text")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json or csv")
	cmd.Flags().BoolVar(&opts.color, "color", false, "style text output with ANSI colors")

	return cmd
}
