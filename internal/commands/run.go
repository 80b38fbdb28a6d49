package commands

import (
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/salespipe-dev/salespipe/internal/config"
	"github.com/salespipe-dev/salespipe/internal/filter"
	"github.com/salespipe-dev/salespipe/internal/logging"
	"github.com/salespipe-dev/salespipe/internal/pipeline"
)

func newRunCommand(cfgPath *string, verbose *bool) *cobra.Command {
	var region, minAmount, maxAmount string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline and write the sales report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}

			opts, err := parseFilterOptions(region, minAmount, maxAmount)
			if err != nil {
				return err
			}

			root := filepath.Dir(*cfgPath)
			p := pipeline.New(cfg, root, logging.New(*verbose))
			return p.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "keep only transactions from this region")
	cmd.Flags().StringVar(&minAmount, "min-amount", "", "minimum transaction amount (inclusive)")
	cmd.Flags().StringVar(&maxAmount, "max-amount", "", "maximum transaction amount (inclusive)")

	return cmd
}

func parseFilterOptions(region, minAmount, maxAmount string) (filter.Options, error) {
	opts := filter.Options{Region: region}

	if minAmount != "" {
		d, err := decimal.NewFromString(minAmount)
		if err != nil {
			return opts, fmt.Errorf("parsing --min-amount %q: %w", minAmount, err)
		}
		opts.MinAmount = &d
	}
	if maxAmount != "" {
		d, err := decimal.NewFromString(maxAmount)
		if err != nil {
			return opts, fmt.Errorf("parsing --max-amount %q: %w", maxAmount, err)
		}
		opts.MaxAmount = &d
	}
	return opts, nil
}
