package codumpcli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRewriteArgsForImplicitDump(t *testing.T) {
	root := NewRootCommand()

	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "empty", in: nil, want: nil},
		{name: "explicit_dump", in: []string{"dump", "a.rs", "foo"}, want: []string{"dump", "a.rs", "foo"}},
		{name: "explicit_outline", in: []string{"outline", "a.rs"}, want: []string{"outline", "a.rs"}},
		{name: "implicit_dump", in: []string{"a.rs", "foo"}, want: []string{"dump", "a.rs", "foo"}},
		{name: "preset_flag", in: []string{"-p", "rust", "a.rs", "foo"}, want: []string{"dump", "-p", "rust", "a.rs", "foo"}},
		{name: "preset_inline", in: []string{"-prust", "a.rs", "foo"}, want: []string{"dump", "-prust", "a.rs", "foo"}},
		{name: "bool_group_then_preset", in: []string{"-cp", "rust", "a.rs", "foo"}, want: []string{"dump", "-cp", "rust", "a.rs", "foo"}},
		{name: "long_value_flags", in: []string{"--outer", "^##", "--inner=^#!", "a.py", "f"}, want: []string{"dump", "--outer", "^##", "--inner=^#!", "a.py", "f"}},
		{name: "explain_has_no_value", in: []string{"--explain", "a.rs", "foo"}, want: []string{"dump", "--explain", "a.rs", "foo"}},
		{name: "preset_named_like_command", in: []string{"-p", "scan", "a.rs", "foo"}, want: []string{"dump", "-p", "scan", "a.rs", "foo"}},
		{name: "flags_then_command", in: []string{"-p", "rust", "scan", ".", "foo"}, want: []string{"-p", "rust", "scan", ".", "foo"}},
		{name: "root_only_flags", in: []string{"--version"}, want: []string{"--version"}},
		{name: "help_command", in: []string{"help"}, want: []string{"help"}},
		{name: "completion_command", in: []string{"completion", "bash"}, want: []string{"completion", "bash"}},
		{name: "dash_dash_keeps_positional", in: []string{"--", "-a.rs", "foo"}, want: []string{"dump", "--", "-a.rs", "foo"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RewriteArgsForImplicitDump(root, tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
