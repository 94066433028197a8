package codumpcli

import "fmt"

// NotFoundError is returned when a path segment matches nothing.
type NotFoundError struct {
	Term string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no component found matching %q", e.Term)
}

// AmbiguousError is returned when a path segment matches several components at the same
// offset. The candidates have already been written to stderr.
type AmbiguousError struct {
	Term  string
	Count int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("multiple components found matching %q; the matched components are shown above", e.Term)
}
