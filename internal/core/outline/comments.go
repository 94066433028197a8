package outline

import "regexp"

// CommentMatcher describes one comment convention.
//
// SingleLine matches a whole line of a repeated single-line comment. MultiStart and MultiEnd
// delimit a multi-line block; MultiStart may be nil, which disables multi-line blocks.
type CommentMatcher struct {
	SingleLine *regexp.Regexp
	MultiStart *regexp.Regexp
	MultiEnd   *regexp.Regexp
}

// Range is a half-open [Start, End) index range into a line slice.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

func (r Range) Len() int { return r.End - r.Start }

type scanState int

const (
	scanIdle scanState = iota
	scanSingle
	scanMulti
)

// FindComments locates the first comment block in lines.
//
// The first skip bytes of every line are ignored before matching; a line shorter than skip is
// matched as the empty string. The opening line of a multi-line block never closes it, even
// when MultiEnd matches that same line. A block still open at the end of input runs to the end.
func FindComments(lines []string, m CommentMatcher, skip int) (Range, bool) {
	state := scanIdle
	start := 0
	for i, raw := range lines {
		line := skipPrefix(raw, skip)
		switch state {
		case scanIdle:
			if matches(m.SingleLine, line) {
				state, start = scanSingle, i
			} else if m.MultiStart != nil && matches(m.MultiStart, line) {
				state, start = scanMulti, i
			}
		case scanSingle:
			if !matches(m.SingleLine, line) {
				return Range{Start: start, End: i}, true
			}
		case scanMulti:
			if matches(m.MultiEnd, line) {
				return Range{Start: start, End: i + 1}, true
			}
		}
	}
	if state == scanIdle {
		return Range{}, false
	}
	return Range{Start: start, End: len(lines)}, true
}

func matches(re *regexp.Regexp, line string) bool {
	return re != nil && re.MatchString(line)
}

func skipPrefix(line string, skip int) string {
	if skip <= 0 {
		return line
	}
	if len(line) < skip {
		return ""
	}
	return line[skip:]
}
