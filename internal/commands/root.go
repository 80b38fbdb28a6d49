package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salespipe-dev/salespipe/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var cfgPath string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "salespipe",
		Short:   "Sales transaction cleaning, enrichment, and reporting",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "salespipe.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newCleanCommand(&cfgPath))
	rootCmd.AddCommand(newRunCommand(&cfgPath, &verbose))

	return rootCmd
}
