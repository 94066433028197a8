package outline

import "strings"

func isIndentChar(c byte) bool {
	return c == ' ' || c == '\t'
}

func startsIndented(line string) bool {
	return line != "" && isIndentChar(line[0])
}

// FindIndent returns the width of the leading whitespace of the first line that is indented
// and has content after the indentation. Tabs and spaces count as one character each.
func FindIndent(lines []string) int {
	for _, line := range lines {
		n := 0
		for n < len(line) && isIndentChar(line[n]) {
			n++
		}
		if n == 0 || n == len(line) {
			continue
		}
		return n
	}
	return 0
}

// IndentString prefixes line with n spaces. Empty lines stay empty.
func IndentString(line string, n int) string {
	if n <= 0 || line == "" {
		return line
	}
	return strings.Repeat(" ", n) + line
}

// rebased is one line kept by Unindent, together with its index in the input.
type rebased struct {
	text   string
	origin int
}

// Unindent strips indent characters from every indented line and drops lines that start at
// column zero. An empty line survives only when the closest non-empty line above it survived.
// indent == 0 returns the input unchanged.
func Unindent(lines []string, indent int) []string {
	kept := unindent(lines, indent)
	out := make([]string, len(kept))
	for i, l := range kept {
		out[i] = l.text
	}
	return out
}

func unindent(lines []string, indent int) []rebased {
	out := make([]rebased, 0, len(lines))
	if indent <= 0 {
		for i, line := range lines {
			out = append(out, rebased{text: line, origin: i})
		}
		return out
	}

	lastRemoved := true
	for i, line := range lines {
		switch {
		case line == "":
			if !lastRemoved {
				out = append(out, rebased{text: "", origin: i})
			}
		case startsIndented(line):
			lastRemoved = false
			out = append(out, rebased{text: skipPrefix(line, indent), origin: i})
		default:
			lastRemoved = true
		}
	}
	return out
}
