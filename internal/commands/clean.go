package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/salespipe-dev/salespipe/internal/cleaner"
	"github.com/salespipe-dev/salespipe/internal/config"
	"github.com/salespipe-dev/salespipe/internal/pipeline"
)

func newCleanCommand(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Validate the raw sales log and write the cleaned dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
				return fmt.Errorf("creating output dir: %w", err)
			}

			sum, err := cleaner.CleanFile(cfg.Input, filepath.Join(cfg.OutputDir, pipeline.CleanedFile))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total records passed: %d\n", sum.Total)
			fmt.Fprintf(out, "Invalid records removed: %d\n", sum.Invalid)
			fmt.Fprintf(out, "Valid records after cleaning: %d\n", sum.Valid())
			return nil
		},
	}
}
