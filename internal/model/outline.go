package model

import "codump/internal/core/outline"

// NewOutline converts a component tree. The root has an empty path and depth 0.
func NewOutline(root *outline.Component) *OutlineNode {
	return newNode(root, nil, 0)
}

func newNode(c *outline.Component, path []string, depth int) *OutlineNode {
	n := &OutlineNode{
		Path:          path,
		Depth:         depth,
		Indent:        c.Indent,
		OuterComments: c.OuterComments,
		InnerComments: c.InnerComments,
		BodyLines:     c.BodyLines,
	}
	if !c.IsRoot {
		n.Title = c.Title()
	}
	if n.Path == nil {
		n.Path = []string{}
	}
	for _, child := range c.Children {
		childPath := append(append([]string(nil), path...), child.Title())
		n.Children = append(n.Children, newNode(child, childPath, depth+1))
	}
	return n
}

// Walk visits n and its descendants depth first, parents before children.
func (n *OutlineNode) Walk(fn func(*OutlineNode)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Flat returns a copy of n without its children, for one-record-per-node output.
func (n *OutlineNode) Flat() OutlineNode {
	flat := *n
	flat.Children = nil
	return flat
}
