package codumpcli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codump/internal/core/scan"
	"codump/internal/core/walk"
	"codump/internal/logging"
)

func newScanCommand() *cobra.Command {
	var (
		wopts   walk.Options
		workers int
		jsonl   bool
	)
	cmd := &cobra.Command{
		Use:   "scan DIR PATH...",
		Short: "Search PATH in every file under DIR",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := optionsFrom(cmd)
			if opts == nil {
				return fmt.Errorf("options missing")
			}
			if workers < 0 {
				return fmt.Errorf("workers must be >= 0")
			}
			req, err := opts.Request(args[1:])
			if err != nil {
				return err
			}

			ex := opts.NewExplain()
			if ex != nil {
				defer func() { _ = ex.Emit(cmd.ErrOrStderr()) }()
			}

			hits, err := scan.Run(cmd.Context(), args[0], scan.Options{
				Walk:    wopts,
				Workers: workers,
				Request: req,
				Logger:  logging.FromContext(cmd.Context()),
				Explain: ex,
			})
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				return &NotFoundError{Term: strings.Join(args[1:], " ")}
			}

			if jsonl {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), RenderScanJSONL(hits))
				return nil
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), RenderScan(hits, stdoutTheme(cmd)))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&wopts.IncludeGlobs, "glob", "g", nil, "only search these files (can repeat)")
	cmd.Flags().StringSliceVarP(&wopts.ExcludeGlobs, "exclude", "x", nil, "exclude these files (comma separated list: -x *.js,*.sql)")
	cmd.Flags().BoolVarP(&wopts.ScanAll, "all", "A", false, "scan hidden, ignored and large files too")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "files processed at once (default half the CPUs)")
	cmd.Flags().BoolVar(&jsonl, "jsonl", false, "one JSON object per hit")
	return cmd
}
