package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resultado/dre/internal/ledger"
	"github.com/resultado/dre/internal/render"
)

func newCheckCommand(global *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the ledger exports against the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := loadApp(cmd.Context(), cmd, global)
			if err != nil {
				return err
			}

			var checker ledger.CatalogChecker
			if len(a.catalog.All()) > 0 {
				checker = a.catalog
			}
			issues := ledger.Validate(a.store.Lines(nil), a.cfg.Report.AccountType, checker)
			if err := render.Issues(cmd.OutOrStdout(), issues, f, render.Options{}); err != nil {
				return err
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d issue(s) found", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or csv")

	return cmd
}
