// Package dump runs the read, parse, find and render pipeline shared by the CLI commands
// and the MCP tools.
package dump

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"codump/internal/core/explain"
	"codump/internal/core/format"
	"codump/internal/core/outline"
	"codump/internal/logging"
)

type Request struct {
	Path            []string
	Config          outline.Config
	Mode            format.Mode
	Context         bool
	ContextComments bool
}

// Outcome carries the find result together with what to print for it. Lines is set when
// the component was found; Candidates holds one rendering per match when it was ambiguous.
type Outcome struct {
	Result     outline.Result
	Lines      []format.Line
	Candidates [][]format.Line
}

// SplitLines splits text into lines. A trailing newline does not produce an empty last
// line, and a "\r" before a newline is dropped.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	text := string(bytes.TrimSuffix(data, []byte("\n")))
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// IsBinary reports whether data looks like a binary file.
func IsBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0
}

// ReadLines reads a UTF-8 text file.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("stream did not contain valid UTF-8")
	}
	return SplitLines(data), nil
}

// Parse builds the component tree and records its size.
func Parse(lines []string, cfg outline.Config, ex explain.Explain) *outline.Component {
	ex = explain.OrNop(ex)
	done := ex.Timer("parse")
	root := outline.Build(lines, cfg)
	done()

	ex.KV("lines", len(lines))
	ex.KV("components", root.Count())
	ex.KV("depth", root.Depth())
	return root
}

// Find locates req.Path in root and renders the outcome.
func Find(root *outline.Component, req Request, ex explain.Explain) Outcome {
	ex = explain.OrNop(ex)
	includeComments := req.ContextComments

	done := ex.Timer("find")
	res := outline.Find(root, req.Path, includeComments)
	done()
	ex.KV("outcome", res.Kind.String())

	out := Outcome{Result: res}
	done = ex.Timer("render")
	defer done()
	switch res.Kind {
	case outline.Found:
		if req.Context || req.ContextComments {
			out.Lines = format.WithContext(res.Component, res.Contexts, req.Mode)
		} else {
			out.Lines = format.Component(res.Component, req.Mode)
		}
	case outline.Multiple:
		ex.KV("candidates", len(res.Candidates))
		for _, c := range res.Candidates {
			out.Candidates = append(out.Candidates, format.Component(c, req.Mode))
		}
	}
	return out
}

// Lines parses lines and finds req.Path in one go.
func Lines(lines []string, req Request, ex explain.Explain) Outcome {
	return Find(Parse(lines, req.Config, ex), req, ex)
}

// File reads path and runs the pipeline on it, logging to the logger carried by ctx.
func File(ctx context.Context, path string, req Request, ex explain.Explain) (Outcome, error) {
	logger := logging.FromContext(ctx)
	ex = explain.OrNop(ex)

	done := ex.Timer("read")
	lines, err := ReadLines(path)
	done()
	if err != nil {
		return Outcome{}, fmt.Errorf("io error while processing file %s: %w", path, err)
	}
	logger.Debug("file read", "file", path, "lines", len(lines))

	root := Parse(lines, req.Config, ex)
	logger.Debug("tree built", "file", path, "components", root.Count(), "depth", root.Depth())
	return Find(root, req, ex), nil
}
