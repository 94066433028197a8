package codumpcli

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"codump/internal/core/format"
	"codump/internal/core/scan"
	"codump/internal/model"
)

// RenderOutline prints one title per component, two spaces per level below the root.
func RenderOutline(tree *model.OutlineNode) string {
	var b strings.Builder
	tree.Walk(func(n *model.OutlineNode) {
		if n.Depth == 0 {
			return
		}
		_, _ = fmt.Fprintf(&b, "%s%s\n", strings.Repeat("  ", n.Depth-1), n.Title)
	})
	return b.String()
}

// RenderOutlineJSONL prints one record per component below the root. Records are flat;
// path carries the nesting.
func RenderOutlineJSONL(tree *model.OutlineNode) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	tree.Walk(func(n *model.OutlineNode) {
		if n.Depth == 0 {
			return
		}
		_ = enc.Encode(n.Flat())
	})
	return b.String()
}

func RenderOutlineYAML(tree *model.OutlineNode) (string, error) {
	b, err := yaml.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func scanHitModel(h scan.Hit) model.ScanHit {
	out := model.ScanHit{Path: h.Path, Status: h.Kind.String()}
	if len(h.Candidates) > 0 {
		out.Candidates = len(h.Candidates)
		return out
	}
	out.Lines = format.Texts(h.Lines)
	return out
}

func RenderScanJSONL(hits []scan.Hit) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	for _, h := range hits {
		_ = enc.Encode(scanHitModel(h))
	}
	return b.String()
}

// RenderScan prints each hit under a "==> path <==" header. Ambiguous hits list every
// candidate, separated by blank lines.
func RenderScan(hits []scan.Hit, theme *Theme) string {
	var b strings.Builder
	for i, h := range hits {
		if i > 0 {
			b.WriteByte('\n')
		}
		_, _ = fmt.Fprintf(&b, "==> %s <==\n", h.Path)
		if len(h.Candidates) == 0 {
			printLines(&b, theme, h.Lines)
			continue
		}
		printCandidates(&b, theme, h.Candidates)
	}
	return b.String()
}
