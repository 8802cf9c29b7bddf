package commands

import (
	"github.com/spf13/cobra"

	"github.com/resultado/dre/internal/render"
)

func newEntitiesCommand(global *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "entities",
		Short: "List the entities found in the ledger",
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
			return render.Entities(cmd.OutOrStdout(), a.store.Entities(), f, render.Options{})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or csv")

	return cmd
}
