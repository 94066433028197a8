package model

// OutlineNode is one component of a parsed file, as emitted by `outline --jsonl|--yaml` and
// the outline_file MCP tool.
type OutlineNode struct {
	Path          []string       `json:"path" yaml:"path"`
	Depth         int            `json:"depth" yaml:"depth"`
	Indent        int            `json:"indent" yaml:"indent"`
	Title         string         `json:"title" yaml:"title"`
	OuterComments []string       `json:"outer_comments,omitempty" yaml:"outer_comments,omitempty"`
	InnerComments []string       `json:"inner_comments,omitempty" yaml:"inner_comments,omitempty"`
	BodyLines     []string       `json:"body_lines,omitempty" yaml:"body_lines,omitempty"`
	Children      []*OutlineNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// ScanHit is the outcome of searching one file during a scan.
type ScanHit struct {
	Path       string   `json:"path" yaml:"path"`
	Status     string   `json:"status" yaml:"status"`
	Lines      []string `json:"lines,omitempty" yaml:"lines,omitempty"`
	Candidates int      `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}
