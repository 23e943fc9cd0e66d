package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catalogetl/catalogetl/internal/config"
	"github.com/catalogetl/catalogetl/internal/verify"
)

func newVerifyCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Check a transformed catalog against the output rules",
		Long: `Check a transformed catalog against the output rules.

Without an argument the configured output file is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := config.Resolve(configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				path = cfg.Output
			}

			rep, err := verify.File(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			out := cmd.OutOrStdout()
			if rep.OK() {
				fmt.Fprintf(out, "%s: %d rows OK\n", path, rep.Rows)
				return nil
			}
			for _, e := range rep.Errors {
				fmt.Fprintf(out, "%s: %s\n", path, e)
			}
			return fmt.Errorf("%s: %d problems in %d rows", path, len(rep.Errors), rep.Rows)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default ./"+config.FileName+" if present)")
	return cmd
}
