package outline

import "strings"

// ResultKind discriminates a Result.
type ResultKind int

const (
	Found ResultKind = iota
	NotFound
	Multiple
)

func (k ResultKind) String() string {
	switch k {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case Multiple:
		return "multiple"
	default:
		return "unknown"
	}
}

// Result is the outcome of Find.
//
// Found sets Component and Contexts, ordered from the nearest ancestor to the root.
// NotFound sets Term. Multiple sets Candidates and Term.
type Result struct {
	Kind       ResultKind
	Component  *Component
	Contexts   []Context
	Candidates []*Component
	Term       string
}

// Find walks path down from c, one segment per level.
//
// At each level the children's body lines are compared offset by offset: the first offset
// where any child contains the segment decides, and every child matching at that offset is
// a candidate.
func Find(c *Component, path []string, includeComments bool) Result {
	if len(path) == 0 {
		return Result{Kind: Found, Component: c}
	}

	term := path[0]
	matched := matchChildren(c.Children, term)
	switch len(matched) {
	case 0:
		return Result{Kind: NotFound, Term: term}
	case 1:
		res := Find(matched[0], path[1:], includeComments)
		if res.Kind == Found {
			res.Contexts = append(res.Contexts, NewContext(c, includeComments))
		}
		return res
	default:
		return Result{Kind: Multiple, Candidates: matched, Term: term}
	}
}

func matchChildren(children []*Component, term string) []*Component {
	longest := 0
	for _, ch := range children {
		if n := len(ch.BodyLines); n > longest {
			longest = n
		}
	}

	for k := 0; k < longest; k++ {
		var matched []*Component
		for _, ch := range children {
			if k < len(ch.BodyLines) && strings.Contains(ch.BodyLines[k], term) {
				matched = append(matched, ch)
			}
		}
		if len(matched) > 0 {
			return matched
		}
	}
	return nil
}
