package codumpcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"codump/internal/core/dump"
	"codump/internal/core/format"
	"codump/internal/core/outline"
	"codump/internal/core/watch"
	"codump/internal/logging"
)

func newDumpCommand() *cobra.Command {
	var watchFile bool
	cmd := &cobra.Command{
		Use:   "dump FILE PATH...",
		Short: "Print the component at PATH (the default command)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := optionsFrom(cmd)
			if opts == nil {
				return fmt.Errorf("options missing")
			}
			req, err := opts.Request(args[1:])
			if err != nil {
				return err
			}

			file := args[0]
			run := func() error { return runDump(cmd, opts, file, req) }
			if !watchFile {
				return run()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchAndRun(ctx, file, run, cmd.ErrOrStderr(), logging.FromContext(cmd.Context()))
		},
	}
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "dump again whenever FILE changes")
	return cmd
}

func runDump(cmd *cobra.Command, opts *Options, file string, req dump.Request) error {
	logger := logging.FromContext(cmd.Context())
	ex := opts.NewExplain()
	if ex != nil {
		defer func() { _ = ex.Emit(cmd.ErrOrStderr()) }()
	}

	out, err := dump.File(cmd.Context(), file, req, ex)
	if err != nil {
		return err
	}
	logger.Debug("dump", "file", file, "outcome", out.Result.Kind.String(), "term", out.Result.Term)

	return printOutcome(cmd, out)
}

func printOutcome(cmd *cobra.Command, out dump.Outcome) error {
	switch out.Result.Kind {
	case outline.Found:
		printLines(cmd.OutOrStdout(), stdoutTheme(cmd), out.Lines)
		return nil
	case outline.Multiple:
		printCandidates(cmd.ErrOrStderr(), stderrTheme(cmd), out.Candidates)
		return &AmbiguousError{Term: out.Result.Term, Count: len(out.Candidates)}
	default:
		return &NotFoundError{Term: out.Result.Term}
	}
}

func printCandidates(w io.Writer, theme *Theme, candidates [][]format.Line) {
	for i, lines := range candidates {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		printLines(w, theme, lines)
	}
}

// watchAndRun calls run once, then again after every change to file until ctx is done.
// Errors from run are reported on errOut and do not stop the loop; I/O errors on the first
// run do.
func watchAndRun(ctx context.Context, file string, run func() error, errOut io.Writer, logger *slog.Logger) error {
	var mu sync.Mutex
	report := func(err error) {
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		}
	}

	err := run()
	var nf *NotFoundError
	var amb *AmbiguousError
	if err != nil && !errors.As(err, &nf) && !errors.As(err, &amb) {
		return err
	}
	report(err)

	w, err := watch.NewFileWatcher(file, watch.Options{
		Logger: logger,
		OnChange: func(string) {
			mu.Lock()
			defer mu.Unlock()
			if ctx.Err() != nil {
				return
			}
			logger.Info("file changed", "file", file)
			report(run())
		},
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	return w.Run(ctx)
}
