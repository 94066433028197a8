package codumpcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codump/internal/logging"
	"codump/internal/version"
)

func NewRootCommand() *cobra.Command {
	opts := newDefaultOptions()
	cmd := &cobra.Command{
		Use:   "codump FILE PATH...",
		Short: "Dump a component of a source file, found by its doc comments",
		Long: `codump builds an outline of a source file from its indentation and doc comments,
then prints the component reached by following PATH, one search term per level.

"codump FILE PATH..." is short for "codump dump FILE PATH...".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.Version = version.String()

	withOptionsContext(cmd, opts)
	bindFlags(cmd.PersistentFlags(), opts)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		opts := optionsFrom(cmd)
		if opts == nil {
			return fmt.Errorf("options missing")
		}
		if err := opts.Prepare(cmd.ErrOrStderr()); err != nil {
			return err
		}
		cmd.SetContext(logging.WithLogger(cmd.Context(), opts.Logger))
		return nil
	}

	cmd.AddCommand(newDumpCommand())
	cmd.AddCommand(newOutlineCommand())
	cmd.AddCommand(newScanCommand())
	cmd.AddCommand(newPresetsCommand())
	cmd.AddCommand(newMCPCommand())
	return cmd
}
