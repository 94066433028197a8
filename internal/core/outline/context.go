package outline

// Context is the compact form of an ancestor, used to frame a found component.
//
// Begin and End are in the ancestor's own frame: the renderer indents them by the sum of
// the Indent of the contexts further out.
type Context struct {
	OuterComments []string
	Begin         []string
	End           []string
	Indent        int
}

// NewContext compacts c into head and tail fragments.
func NewContext(c *Component, includeComments bool) Context {
	ctx := Context{Indent: c.Indent}
	if includeComments {
		ctx.OuterComments = c.OuterComments
	}

	switch {
	case c.IsRoot:
		if includeComments {
			for _, line := range c.InnerComments {
				ctx.Begin = append(ctx.Begin, IndentString(line, c.Indent))
			}
		}
		ctx.Begin = append(ctx.Begin, IndentString(Ellipsis, c.Indent))
		ctx.End = []string{IndentString(Ellipsis, c.Indent)}

	case c.InnerRange != nil:
		r := *c.InnerRange
		head := SummarizeLines(c.BodyLines[:r.Start], c.Indent, nil)
		ctx.Begin = texts(head)
		if includeComments {
			for _, line := range c.InnerComments {
				ctx.Begin = append(ctx.Begin, IndentString(line, c.Indent))
			}
			ctx.Begin = append(ctx.Begin, IndentString(Ellipsis, c.Indent))
		} else if len(head) == 0 || !head[len(head)-1].Collapsed {
			ctx.Begin = append(ctx.Begin, IndentString(Ellipsis, c.Indent))
		}
		ctx.End = Summarize(c.BodyLines[r.End:], c.Indent, nil)

	default:
		summary := SummarizeLines(c.BodyLines, c.Indent, nil)
		last := lastCollapsed(summary)
		if last < 0 {
			ctx.Begin = texts(summary)
			break
		}
		ctx.Begin = texts(summary[:last+1])
		ctx.End = tailFragment(c.BodyLines, c.Indent)
	}
	return ctx
}

// tailFragment summarizes lines from the end, keeps everything up to the first ellipsis met
// on the way back and returns it in forward order.
func tailFragment(lines []string, indent int) []string {
	reversed := make([]string, len(lines))
	for i, line := range lines {
		reversed[len(lines)-1-i] = line
	}
	summary := SummarizeLines(reversed, indent, nil)

	cut := -1
	for i, l := range summary {
		if l.Collapsed {
			cut = i
			break
		}
	}
	if cut < 0 {
		return nil
	}

	out := make([]string, 0, cut+1)
	for i := cut; i >= 0; i-- {
		out = append(out, summary[i].Text)
	}
	return out
}

func lastCollapsed(lines []SummaryLine) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].Collapsed {
			return i
		}
	}
	return -1
}
