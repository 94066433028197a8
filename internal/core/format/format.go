package format

import (
	"fmt"
	"strings"

	"codump/internal/core/outline"
)

// Mode selects how much of a component is printed.
type Mode string

const (
	// Summary prints comments and the body with indented regions collapsed.
	Summary Mode = "summary"
	// Comment prints the outer and inner comments only.
	Comment Mode = "comment"
	// Detail prints comments and the whole body.
	Detail Mode = "detail"
)

// Modes lists the accepted modes in help order.
var Modes = []Mode{Summary, Comment, Detail}

// ParseMode accepts a mode name, case-insensitively. The empty string is Summary.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Summary:
		return Summary, nil
	case Comment:
		return Comment, nil
	case Detail:
		return Detail, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected: summary|comment|detail)", s)
	}
}

// Kind tells a theme what a rendered line is.
type Kind int

const (
	Code Kind = iota
	Doc
	Ellipsis
	Frame
)

type Line struct {
	Text string
	Kind Kind
}

// Texts drops the kinds.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// Component renders c without context.
func Component(c *outline.Component, mode Mode) []Line {
	var out []Line
	out = appendKind(out, c.OuterComments, Doc, 0)

	switch mode {
	case Comment:
		out = appendKind(out, c.InnerComments, Doc, 0)
	case Detail:
		for i, line := range c.BodyLines {
			kind := Code
			if c.InnerRange != nil && i >= c.InnerRange.Start && i < c.InnerRange.End {
				kind = Doc
			}
			out = append(out, Line{Text: line, Kind: kind})
		}
	default:
		for _, sl := range outline.SummarizeLines(c.BodyLines, c.Indent, c.InnerRange) {
			kind := Code
			switch {
			case sl.Collapsed:
				kind = Ellipsis
			case c.InnerRange != nil && sl.Index >= c.InnerRange.Start && sl.Index < c.InnerRange.End:
				kind = Doc
			}
			out = append(out, Line{Text: sl.Text, Kind: kind})
		}
	}
	return out
}

// WithContext renders c framed by its ancestors. contexts are ordered nearest first, as
// returned by outline.Find.
func WithContext(c *outline.Component, contexts []outline.Context, mode Mode) []Line {
	var out []Line
	indent := 0
	for i := len(contexts) - 1; i >= 0; i-- {
		ctx := contexts[i]
		out = appendKind(out, ctx.OuterComments, Doc, indent)
		out = appendFrame(out, ctx.Begin, indent)
		indent += ctx.Indent
	}

	for _, l := range Component(c, mode) {
		out = append(out, Line{Text: outline.IndentString(l.Text, indent), Kind: l.Kind})
	}

	for _, ctx := range contexts {
		indent -= ctx.Indent
		out = appendFrame(out, ctx.End, indent)
	}
	return out
}

func appendKind(out []Line, lines []string, kind Kind, indent int) []Line {
	for _, l := range lines {
		out = append(out, Line{Text: outline.IndentString(l, indent), Kind: kind})
	}
	return out
}

func appendFrame(out []Line, lines []string, indent int) []Line {
	for _, l := range lines {
		kind := Frame
		if strings.TrimSpace(l) == outline.Ellipsis {
			kind = Ellipsis
		}
		out = append(out, Line{Text: outline.IndentString(l, indent), Kind: kind})
	}
	return out
}
