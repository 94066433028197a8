package outline

import (
	"regexp"
	"strings"
)

// Config is the pattern bundle the tree builder runs with.
type Config struct {
	// Outer comments introduce a child component.
	Outer CommentMatcher
	// Inner comments document the component they appear in.
	Inner CommentMatcher
	// Ignore drops matching lines before children are searched for.
	Ignore []*regexp.Regexp
}

// Component is one node of the outline tree.
type Component struct {
	IsRoot bool
	// OuterComments are stored without the component's own indentation.
	OuterComments []string
	// BodyLines keep their indentation as seen from the parent.
	BodyLines []string
	// InnerComments are stored without indentation.
	InnerComments []string
	// InnerRange locates InnerComments in BodyLines; nil when there are none.
	InnerRange *Range
	Indent     int
	Children   []*Component
}

// Title is the first non-blank body line with surrounding whitespace removed.
func (c *Component) Title() string {
	for _, line := range c.BodyLines {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

// Count returns the number of components in the subtree rooted at c, c included.
func (c *Component) Count() int {
	n := 1
	for _, ch := range c.Children {
		n += ch.Count()
	}
	return n
}

// Depth is 0 for a leaf and one more than the deepest child otherwise.
func (c *Component) Depth() int {
	d := 0
	for _, ch := range c.Children {
		if cd := ch.Depth() + 1; cd > d {
			d = cd
		}
	}
	return d
}

// Build parses the lines of a whole file into a root component.
func Build(lines []string, cfg Config) *Component {
	return BuildComponent(nil, lines, 0, true, cfg)
}

// BuildComponent parses bodyLines, indented by indent relative to the parent, into a
// component and its children.
func BuildComponent(outerComments []string, bodyLines []string, indent int, isRoot bool, cfg Config) *Component {
	c := &Component{
		IsRoot:        isRoot,
		OuterComments: outerComments,
		BodyLines:     bodyLines,
		Indent:        indent,
	}

	// inner comments are located on the original text so the range indexes BodyLines
	innerEnd := 0
	if r, ok := FindComments(bodyLines, cfg.Inner, indent); ok {
		c.InnerRange = &r
		c.InnerComments = make([]string, 0, r.Len())
		for _, line := range bodyLines[r.Start:r.End] {
			c.InnerComments = append(c.InnerComments, skipPrefix(line, indent))
		}
		innerEnd = r.End
	}

	view := filterIgnored(unindent(bodyLines, indent), cfg.Ignore)
	lines := make([]string, len(view))
	from := len(view)
	for i, l := range view {
		lines[i] = l.text
		if i < from && l.origin >= innerEnd {
			from = i
		}
	}

	block, ok := nextChildComment(lines, from, cfg.Outer)
	for ok {
		bodyStart := block.End
		next, more := nextChildComment(lines, bodyStart, cfg.Outer)
		bodyEnd := len(lines)
		if more {
			bodyEnd = next.Start
		}

		childBody := lines[bodyStart:bodyEnd]
		c.Children = append(c.Children, BuildComponent(
			copyLines(lines[block.Start:block.End]),
			copyLines(childBody),
			FindIndent(childBody),
			false,
			cfg,
		))
		block, ok = next, more
	}

	return c
}

// nextChildComment finds the next outer comment block at or after from that is directly
// followed by a non-empty, unindented line.
func nextChildComment(lines []string, from int, m CommentMatcher) (Range, bool) {
	for from < len(lines) {
		r, ok := FindComments(lines[from:], m, 0)
		if !ok {
			return Range{}, false
		}
		r.Start += from
		r.End += from
		if r.End < len(lines) && lines[r.End] != "" && !startsIndented(lines[r.End]) {
			return r, true
		}
		from = r.End
	}
	return Range{}, false
}

func filterIgnored(lines []rebased, ignore []*regexp.Regexp) []rebased {
	if len(ignore) == 0 {
		return lines
	}
	out := lines[:0:0]
	for _, l := range lines {
		skip := false
		for _, re := range ignore {
			if re.MatchString(l.text) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, l)
		}
	}
	return out
}

func copyLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
