package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/catalogetl/catalogetl/internal/buildinfo"
)

// ErrReported marks errors whose message has already been printed to the
// user. Callers should exit non-zero without printing it again.
var ErrReported = errors.New("already reported")

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "catalogetl",
		Short:   "Transform product catalogs",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newCleanCommand())
	rootCmd.AddCommand(newVerifyCommand())

	return rootCmd
}
