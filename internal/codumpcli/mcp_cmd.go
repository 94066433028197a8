package codumpcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codump/internal/logging"
	"codump/internal/mcpserver"
	"codump/internal/version"
)

func newMCPCommand() *cobra.Command {
	var cacheSize int
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve dump_component, outline_file and list_presets over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := optionsFrom(cmd)
			if opts == nil || opts.Registry == nil {
				return fmt.Errorf("options missing")
			}
			srv := mcpserver.New(mcpserver.Options{
				Registry:  opts.Registry,
				Logger:    logging.FromContext(cmd.Context()),
				CacheSize: cacheSize,
				Version:   version.String(),
			})
			return srv.RunStdio(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&cacheSize, "cache-size", mcpserver.DefaultCacheSize, "parsed files kept in memory")
	return cmd
}
