package codumpcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"codump/internal/core/dump"
	"codump/internal/core/format"
	"codump/internal/core/outline"
	"codump/internal/core/preset"
	"codump/internal/logging"
)

// LogLevelEnv sets the log level when neither -v nor -q is given.
const LogLevelEnv = "CODUMP_LOG_LEVEL"

type Options struct {
	Outer      string
	OuterStart string
	OuterEnd   string
	Inner      string
	InnerStart string
	InnerEnd   string
	Ignore     []string
	Preset     string

	Format          string
	Context         bool
	ContextComments bool

	Theme       string
	Explain     string
	PresetsFile string
	Verbose     int
	Quiet       bool

	noColor bool

	// set by Prepare
	Mode     format.Mode
	Registry *preset.Registry
	Logger   *slog.Logger
}

// Prepare validates the flags and loads the preset file. Comment patterns are resolved
// later by the commands that need them.
func (o *Options) Prepare(stderr io.Writer) error {
	o.normalize()

	mode, err := format.ParseMode(o.Format)
	if err != nil {
		return err
	}
	o.Mode = mode

	if _, err := NewTheme(o.Theme); err != nil {
		return err
	}

	switch o.Explain {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid --explain %q (expected: text|json)", o.Explain)
	}

	level := logging.LevelFromVerbosity(o.Verbose, o.Quiet)
	if env := os.Getenv(LogLevelEnv); env != "" && o.Verbose == 0 && !o.Quiet {
		level = logging.LevelFromString(env)
	}
	o.Logger = logging.NewLogger(stderr, level)

	reg, err := loadRegistry(o.PresetsFile, o.Logger)
	if err != nil {
		return err
	}
	o.Registry = reg
	return nil
}

func (o *Options) normalize() {
	o.Theme = strings.TrimSpace(o.Theme)
	if o.Theme == "" {
		o.Theme = "default"
	}
	if o.noColor {
		o.Theme = "none"
	}
	if o.ContextComments {
		o.Context = true
	}
	o.Preset = strings.TrimSpace(o.Preset)
}

// loadRegistry reads path, or DefaultFile when path is empty and the file exists.
func loadRegistry(path string, logger *slog.Logger) (*preset.Registry, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = preset.DefaultFile
	}

	presets, err := preset.LoadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return preset.NewRegistry(), nil
		}
		return nil, err
	}
	logger.Debug("presets loaded", "file", path, "count", len(presets))
	return preset.NewRegistry(presets...), nil
}

// OutlineConfig resolves the preset and pattern flags.
func (o *Options) OutlineConfig() (outline.Config, error) {
	reg := o.Registry
	if reg == nil {
		reg = preset.NewRegistry()
	}
	return reg.Resolve(o.Preset, preset.Overrides{
		Outer:      o.Outer,
		OuterStart: o.OuterStart,
		OuterEnd:   o.OuterEnd,
		Inner:      o.Inner,
		InnerStart: o.InnerStart,
		InnerEnd:   o.InnerEnd,
		Ignore:     o.Ignore,
	})
}

// Request builds the pipeline request for path.
func (o *Options) Request(path []string) (dump.Request, error) {
	cfg, err := o.OutlineConfig()
	if err != nil {
		return dump.Request{}, err
	}
	return dump.Request{
		Path:            path,
		Config:          cfg,
		Mode:            o.Mode,
		Context:         o.Context,
		ContextComments: o.ContextComments,
	}, nil
}

// NewExplain returns nil unless --explain was given.
func (o *Options) NewExplain() *ExplainCollector {
	if o == nil || o.Explain == "" {
		return nil
	}
	return NewExplainCollector(o.Explain)
}

type optionsKey struct{}

func optionsFrom(cmd *cobra.Command) *Options {
	if cmd == nil {
		return nil
	}
	root := cmd.Root()
	if root == nil {
		root = cmd
	}
	v := root.Context().Value(optionsKey{})
	opts, _ := v.(*Options)
	return opts
}

func bindFlags(f *pflag.FlagSet, opts *Options) {
	f.StringVar(&opts.Outer, "outer", opts.Outer, "regex for single-line outer comments (documents the component below)")
	f.StringVar(&opts.OuterStart, "outer-start", opts.OuterStart, "regex opening a multi-line outer comment")
	f.StringVar(&opts.OuterEnd, "outer-end", opts.OuterEnd, "regex closing a multi-line outer comment")
	f.StringVar(&opts.Inner, "inner", opts.Inner, "regex for single-line inner comments (documents the enclosing component)")
	f.StringVar(&opts.InnerStart, "inner-start", opts.InnerStart, "regex opening a multi-line inner comment")
	f.StringVar(&opts.InnerEnd, "inner-end", opts.InnerEnd, "regex closing a multi-line inner comment")
	f.StringArrayVarP(&opts.Ignore, "ignore", "i", nil, "regex of lines to ignore (can repeat)")
	f.StringVarP(&opts.Preset, "preset", "p", opts.Preset, "comment pattern preset (see `codump presets`)")

	f.StringVarP(&opts.Format, "format", "f", opts.Format, "output format: summary|comment|detail")
	f.BoolVarP(&opts.Context, "context", "c", opts.Context, "print the parents of the found component")
	f.BoolVarP(&opts.ContextComments, "context-comments", "C", opts.ContextComments, "print the parents with their comments (implies --context)")

	f.StringVar(&opts.Theme, "theme", opts.Theme, "colour theme: default|colorblind|high-contrast|none")
	f.BoolVar(&opts.noColor, "no-color", false, "suppress colors")
	f.StringVar(&opts.Explain, "explain", opts.Explain, "print counters and timings to stderr (text|json)")
	f.Lookup("explain").NoOptDefVal = "text"
	f.StringVar(&opts.PresetsFile, "presets-file", opts.PresetsFile, "TOML preset file (default "+preset.DefaultFile+" when present)")
	f.CountVarP(&opts.Verbose, "verbose", "v", "log more to stderr (repeat for debug)")
	f.BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress logging")
}

// ExecuteForTest runs cmd with captured output and returns stdout, stderr and the parsed
// options.
func ExecuteForTest(cmd *cobra.Command) (string, string, Options, error) {
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()

	opts := optionsFrom(cmd)
	if opts == nil {
		return out.String(), errOut.String(), Options{}, err
	}
	opts.normalize()

	return out.String(), errOut.String(), *opts, err
}

func newDefaultOptions() *Options {
	return &Options{
		Format: string(format.Summary),
		Theme:  "default",
	}
}

func withOptionsContext(cmd *cobra.Command, opts *Options) {
	cmd.SetContext(context.WithValue(context.Background(), optionsKey{}, opts))
}

func printLines(w io.Writer, theme *Theme, lines []format.Line) {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(theme.Paint(l))
		b.WriteByte('\n')
	}
	_, _ = io.WriteString(w, b.String())
}

func stdoutTheme(cmd *cobra.Command) *Theme {
	return themeFor(optionsFrom(cmd), cmd.OutOrStdout())
}

func stderrTheme(cmd *cobra.Command) *Theme {
	return themeFor(optionsFrom(cmd), cmd.ErrOrStderr())
}
