// Package scan runs one component search per file under a directory.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"codump/internal/core/dump"
	"codump/internal/core/explain"
	"codump/internal/core/format"
	"codump/internal/core/outline"
	"codump/internal/core/walk"
	"codump/internal/logging"
)

type Options struct {
	Walk walk.Options
	// Workers bounds the files processed at once; zero means DefaultWorkers.
	Workers int
	Request dump.Request
	Logger  *slog.Logger
	Explain explain.Explain
}

// Hit is a file in which the path matched.
type Hit struct {
	Path       string
	Kind       outline.ResultKind
	Lines      []format.Line
	Candidates [][]format.Line
}

func DefaultWorkers() int {
	if n := runtime.NumCPU() / 2; n > 1 {
		return n
	}
	return 1
}

// Run searches every selected file under root independently and returns the hits in path
// order. Files that are binary or not UTF-8 are skipped. A read error stops the scan.
func Run(ctx context.Context, root string, opts Options) ([]Hit, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root is required")
	}
	root = filepath.Clean(root)
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	ex := explain.OrNop(opts.Explain)
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	done := ex.Timer("walk")
	files, err := walk.ListFiles(ctx, root, opts.Walk)
	done()
	if err != nil {
		return nil, err
	}

	results := make([]*Hit, len(files))
	var skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hit, ok, err := scanFile(root, rel, opts.Request, ex)
			if err != nil {
				return err
			}
			if !ok {
				skipped.Add(1)
				logger.Debug("scan skip", "path", rel)
				return nil
			}
			if hit.Kind != outline.NotFound {
				results[i] = &hit
			}
			logger.Debug("scan file", "path", rel, "outcome", hit.Kind.String())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var hits []Hit
	for _, h := range results {
		if h != nil {
			hits = append(hits, *h)
		}
	}
	ex.KV("files", len(files))
	ex.KV("skipped", int(skipped.Load()))
	ex.KV("hits", len(hits))
	ex.KV("workers", workers)
	return hits, nil
}

func scanFile(root, rel string, req dump.Request, ex explain.Explain) (Hit, bool, error) {
	full := filepath.Join(root, filepath.FromSlash(rel))
	b, err := os.ReadFile(full)
	if err != nil {
		return Hit{}, false, fmt.Errorf("io error while processing file %s: %w", full, err)
	}
	if dump.IsBinary(b) || !utf8.Valid(b) {
		return Hit{}, false, nil
	}

	// per-file counters would overwrite each other; only the timers are shared
	out := dump.Lines(dump.SplitLines(b), req, timersOnly{ex})
	return Hit{
		Path:       rel,
		Kind:       out.Result.Kind,
		Lines:      out.Lines,
		Candidates: out.Candidates,
	}, true, nil
}

type timersOnly struct{ explain.Explain }

func (timersOnly) KV(string, any) {}
