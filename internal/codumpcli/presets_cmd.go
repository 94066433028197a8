package codumpcli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codump/internal/core/preset"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the comment pattern presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := optionsFrom(cmd)
			if opts == nil || opts.Registry == nil {
				return fmt.Errorf("options missing")
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), RenderPresets(opts.Registry.List()))
			return nil
		},
	}
}

func RenderPresets(presets []preset.Preset) string {
	var b strings.Builder
	for i, p := range presets {
		if i > 0 {
			b.WriteByte('\n')
		}
		_, _ = fmt.Fprintf(&b, "%s (%s)\n", p.Name, p.Source)
		if p.Description != "" {
			_, _ = fmt.Fprintf(&b, "  %s\n", p.Description)
		}
		_, _ = fmt.Fprintf(&b, "  outer: %s\n", renderPattern(p.Outer))
		_, _ = fmt.Fprintf(&b, "  inner: %s\n", renderPattern(p.Inner))
		if len(p.Ignore) > 0 {
			_, _ = fmt.Fprintf(&b, "  ignore: %s\n", strings.Join(p.Ignore, "  "))
		}
	}
	return b.String()
}

func renderPattern(p preset.Pattern) string {
	s := p.Single
	if p.Start != "" {
		s += "  " + p.Start + " ... " + p.End
	}
	return s
}
