package codumpcli

import (
	"bytes"
	"strings"
	"testing"
)

func TestHelpContainsSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	s := out.String()
	for _, want := range []string{"codump", "dump", "outline", "scan", "presets", "mcp", "--preset"} {
		if !strings.Contains(s, want) {
			t.Fatalf("help missing %q: %s", want, s)
		}
	}
}

func TestDumpNeedsPath(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"dump", "-p", "rust", "testdata/src/lib.rs"})
	if _, _, _, err := ExecuteForTest(cmd); err == nil {
		t.Fatal("expected error")
	}
}

func TestPresetsCommand(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"presets", "--presets-file", "testdata/presets.toml"})
	out, _, _, err := ExecuteForTest(cmd)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := []string{
		"hash (testdata/presets.toml)",
		"  outer: ^##",
		"  ignore: ^@",
		"python (builtin)",
		`  outer: ^###  ^""" ... """\s*$`,
		"rust (builtin)",
		"  inner: ^//!",
		"rust-java (builtin)",
	}
	for _, w := range want {
		if !strings.Contains(out, w+"\n") {
			t.Fatalf("presets output missing %q:\n%s", w, out)
		}
	}
	if strings.Index(out, "hash") > strings.Index(out, "python") {
		t.Fatalf("presets not sorted:\n%s", out)
	}
}
