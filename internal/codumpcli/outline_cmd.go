package codumpcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codump/internal/core/dump"
	"codump/internal/logging"
	"codump/internal/model"
)

func newOutlineCommand() *cobra.Command {
	var jsonl, asYAML bool
	cmd := &cobra.Command{
		Use:   "outline FILE",
		Short: "Print the component tree of FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := optionsFrom(cmd)
			if opts == nil {
				return fmt.Errorf("options missing")
			}
			if jsonl && asYAML {
				return fmt.Errorf("--jsonl and --yaml are mutually exclusive")
			}
			cfg, err := opts.OutlineConfig()
			if err != nil {
				return err
			}

			ex := opts.NewExplain()
			if ex != nil {
				defer func() { _ = ex.Emit(cmd.ErrOrStderr()) }()
			}

			done := ex.Timer("read")
			lines, err := dump.ReadLines(args[0])
			done()
			if err != nil {
				return fmt.Errorf("io error while processing file %s: %w", args[0], err)
			}
			root := dump.Parse(lines, cfg, ex)
			logging.FromContext(cmd.Context()).Debug("tree built", "file", args[0], "components", root.Count(), "depth", root.Depth())

			tree := model.NewOutline(root)
			var out string
			switch {
			case jsonl:
				out = RenderOutlineJSONL(tree)
			case asYAML:
				if out, err = RenderOutlineYAML(tree); err != nil {
					return err
				}
			default:
				out = RenderOutline(tree)
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonl, "jsonl", false, "one JSON object per component")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "the whole tree as YAML")
	return cmd
}
