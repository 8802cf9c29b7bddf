package commands

import (
	"github.com/spf13/cobra"

	"github.com/resultado/dre/internal/render"
	"github.com/resultado/dre/internal/report"
)

type reportOptions struct {
	year       int
	entities   []string
	filter     string
	lineFilter string
	format     string
	color      bool
}

func newReportCommand(global *globalOptions) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the monthly DRE statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			a, err := loadApp(cmd.Context(), cmd, global)
			if err != nil {
				return err
			}

			ids := a.entityIDs(opts.entities)
			st := a.engine.Statement(a.store.Scope(ids), a.store.Lines(ids), report.StatementQuery{
				Year:       opts.year,
				LineFilter: opts.lineFilter,
			})
			return render.Statement(cmd.OutOrStdout(), st.Filter(opts.filter), format, render.Options{Color: opts.color})
		},
	}

	cmd.Flags().IntVar(&opts.year, "year", 0, "fiscal year (0 = every year in the ledger)")
	cmd.Flags().StringSliceVar(&opts.entities, "entity", nil, "entity IDs to include (repeatable; default: all)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "keep only lines whose name contains this text")
	cmd.Flags().StringVar(&opts.lineFilter, "line-filter", "", "aggregate only ledger lines whose account name contains this text")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json or csv")
	cmd.Flags().BoolVar(&opts.color, "color", false, "style text output with ANSI colors")

	return cmd
}
