package codumpcli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"codump/internal/core/format"
)

var themeNames = []string{"default", "colorblind", "high-contrast", "none"}

// Theme colours rendered lines by kind. A nil *Theme prints plain text.
type Theme struct {
	name   string
	colors map[format.Kind]*color.Color
}

func NewTheme(name string) (*Theme, error) {
	var colors map[format.Kind]*color.Color
	switch name {
	case "", "default":
		name = "default"
		colors = map[format.Kind]*color.Color{
			format.Doc:      color.New(color.FgCyan),
			format.Ellipsis: color.New(color.Faint),
			format.Frame:    color.New(color.Faint),
		}
	case "colorblind":
		colors = map[format.Kind]*color.Color{
			format.Doc:      color.New(color.FgBlue),
			format.Ellipsis: color.New(color.FgYellow),
		}
	case "high-contrast":
		colors = map[format.Kind]*color.Color{
			format.Doc:      color.New(color.Bold),
			format.Ellipsis: color.New(color.Bold, color.FgHiWhite),
		}
	case "none":
	default:
		return nil, fmt.Errorf("invalid --theme %q (expected: default|colorblind|high-contrast|none)", name)
	}
	// decided per writer by the caller, not by fatih/color's global stdout check
	for _, c := range colors {
		c.EnableColor()
	}
	return &Theme{name: name, colors: colors}, nil
}

func (t *Theme) Name() string {
	if t == nil {
		return "none"
	}
	return t.name
}

func (t *Theme) Paint(l format.Line) string {
	if t == nil {
		return l.Text
	}
	c, ok := t.colors[l.Kind]
	if !ok || l.Text == "" {
		return l.Text
	}
	return c.Sprint(l.Text)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// themeFor returns the theme to paint w with, or nil for plain output.
func themeFor(opts *Options, w io.Writer) *Theme {
	if opts == nil || opts.Theme == "none" || !isTerminal(w) {
		return nil
	}
	t, err := NewTheme(opts.Theme)
	if err != nil {
		return nil
	}
	return t
}
