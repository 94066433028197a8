// Package mcpserver exposes component dumps as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"codump/internal/core/cache"
	"codump/internal/core/dump"
	"codump/internal/core/format"
	"codump/internal/core/outline"
	"codump/internal/core/preset"
	"codump/internal/logging"
	"codump/internal/model"
)

const (
	DefaultCacheSize = 64
	DefaultPreset    = "rust"
)

type Options struct {
	Registry  *preset.Registry
	Logger    *slog.Logger
	CacheSize int
	Version   string
}

type Server struct {
	registry *preset.Registry
	logger   *slog.Logger
	trees    *cache.LRU[treeKey, *outline.Component]
	parses   atomic.Int64
	mcp      *mcp.Server
}

// treeKey changes whenever the file is rewritten, so stale trees are never served.
type treeKey struct {
	path   string
	size   int64
	mtime  int64
	preset string
}

type DumpInput struct {
	File            string   `json:"file" jsonschema:"Path to the source file"`
	Path            []string `json:"path" jsonschema:"Search terms, outermost component first; each must appear in the first line of the component"`
	Preset          string   `json:"preset,omitempty" jsonschema:"Comment pattern preset (default rust); see list_presets"`
	Format          string   `json:"format,omitempty" jsonschema:"summary (default), comment or detail"`
	Context         bool     `json:"context,omitempty" jsonschema:"Frame the component with its collapsed parents"`
	ContextComments bool     `json:"context_comments,omitempty" jsonschema:"Include the parents' comments in the frame (implies context)"`
}

type OutlineInput struct {
	File   string `json:"file" jsonschema:"Path to the source file"`
	Preset string `json:"preset,omitempty" jsonschema:"Comment pattern preset (default rust); see list_presets"`
}

type ListPresetsInput struct{}

func New(opts Options) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = preset.NewRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	ver := opts.Version
	if ver == "" {
		ver = "dev"
	}

	s := &Server{
		registry: reg,
		logger:   logger,
		trees:    cache.NewLRU[treeKey, *outline.Component](size),
		mcp:      mcp.NewServer(&mcp.Implementation{Name: "codump", Version: ver}, nil),
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "dump_component",
		Description: "Print one component of a source file, found by following a path of search terms through the outline built from indentation and doc comments. Summary format collapses nested blocks to '...'.",
	}, s.handleDump)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "outline_file",
		Description: "Get the component tree of a source file as JSON: titles, paths, comments and bodies. Use it to pick a path for dump_component.",
	}, s.handleOutline)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_presets",
		Description: "List the comment pattern presets with their regular expressions.",
	}, s.handleListPresets)
	return s
}

func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("encode result: " + err.Error())
	}
	return textResult(string(b))
}

// tree returns the parsed file, from the cache when the file is unchanged.
func (s *Server) tree(file, presetName string) (*outline.Component, error) {
	if strings.TrimSpace(file) == "" {
		return nil, fmt.Errorf("file is required")
	}
	if strings.TrimSpace(presetName) == "" {
		presetName = DefaultPreset
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("io error while processing file %s: %w", file, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", file)
	}

	key := treeKey{path: abs, size: st.Size(), mtime: st.ModTime().UnixNano(), preset: presetName}
	if root, ok := s.trees.Get(key); ok {
		s.logger.Debug("tree cache hit", "file", abs)
		return root, nil
	}

	cfg, err := s.registry.Resolve(presetName, preset.Overrides{})
	if err != nil {
		return nil, err
	}
	lines, err := dump.ReadLines(abs)
	if err != nil {
		return nil, fmt.Errorf("io error while processing file %s: %w", file, err)
	}
	root := dump.Parse(lines, cfg, nil)
	s.parses.Add(1)
	s.trees.Put(key, root)
	s.logger.Debug("tree built", "file", abs, "components", root.Count())
	return root, nil
}

func (s *Server) handleDump(ctx context.Context, req *mcp.CallToolRequest, in DumpInput) (*mcp.CallToolResult, any, error) {
	if len(in.Path) == 0 {
		return errorResult("path must name at least one search term"), nil, nil
	}
	mode, err := format.ParseMode(in.Format)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	root, err := s.tree(in.File, in.Preset)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	out := dump.Find(root, dump.Request{
		Path:            in.Path,
		Mode:            mode,
		Context:         in.Context,
		ContextComments: in.ContextComments,
	}, nil)

	switch out.Result.Kind {
	case outline.Found:
		return textResult(joinLines(out.Lines)), nil, nil
	case outline.Multiple:
		var b strings.Builder
		fmt.Fprintf(&b, "multiple components found matching %q:\n", out.Result.Term)
		for _, c := range out.Candidates {
			b.WriteByte('\n')
			b.WriteString(joinLines(c))
		}
		return errorResult(b.String()), nil, nil
	default:
		return errorResult(fmt.Sprintf("no component found matching %q", out.Result.Term)), nil, nil
	}
}

func (s *Server) handleOutline(ctx context.Context, req *mcp.CallToolRequest, in OutlineInput) (*mcp.CallToolResult, any, error) {
	root, err := s.tree(in.File, in.Preset)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return jsonResult(model.NewOutline(root)), nil, nil
}

func (s *Server) handleListPresets(ctx context.Context, req *mcp.CallToolRequest, in ListPresetsInput) (*mcp.CallToolResult, any, error) {
	return jsonResult(s.registry.List()), nil, nil
}

func joinLines(lines []format.Line) string {
	return strings.Join(format.Texts(lines), "\n")
}
