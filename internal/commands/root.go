package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resultado/dre/internal/buildinfo"
	"github.com/resultado/dre/internal/config"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	envFile    string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dre",
		Short:   "Hierarchical income statements and period comparisons from ledger exports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to the config file")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file to load (default: .env next to the config file)")

	rootCmd.AddCommand(
		newInitCommand(),
		newReportCommand(opts),
		newCompareCommand(opts),
		newEntitiesCommand(opts),
		newCheckCommand(opts),
		newServeCommand(opts),
	)

	return rootCmd
}
