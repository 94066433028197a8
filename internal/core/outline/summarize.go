package outline

// Ellipsis replaces a collapsed run of indented lines.
const Ellipsis = "..."

// SummaryLine is one line of a summarized body. Index is the input line it came from; for an
// ellipsis it is the first line of the collapsed run.
type SummaryLine struct {
	Text      string
	Collapsed bool
	Index     int
}

// Summarize collapses every run of indented lines into a single ellipsis indented by indent.
// Empty lines inside a run are dropped, empty lines outside a run are kept. Lines inside
// exclude are never collapsed.
func Summarize(lines []string, indent int, exclude *Range) []string {
	return texts(SummarizeLines(lines, indent, exclude))
}

// SummarizeLines is Summarize, keeping track of which output lines are ellipses.
func SummarizeLines(lines []string, indent int, exclude *Range) []SummaryLine {
	out := make([]SummaryLine, 0, len(lines))
	inRun := false
	for i, line := range lines {
		if line == "" && inRun {
			continue
		}
		collapse := startsIndented(line) && (exclude == nil || i < exclude.Start || i >= exclude.End)
		if !collapse {
			out = append(out, SummaryLine{Text: line, Index: i})
			inRun = false
			continue
		}
		if !inRun {
			out = append(out, SummaryLine{Text: IndentString(Ellipsis, indent), Collapsed: true, Index: i})
			inRun = true
		}
	}
	return out
}

func texts(lines []SummaryLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
