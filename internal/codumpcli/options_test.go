package codumpcli

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"codump/internal/core/format"
)

func TestParseDefaults(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"presets"})
	_, _, opts, err := ExecuteForTest(cmd)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if opts.Mode != format.Summary {
		t.Fatalf("Mode=%q", opts.Mode)
	}
	if opts.Theme != "default" {
		t.Fatalf("Theme=%q", opts.Theme)
	}
	if opts.Context || opts.ContextComments {
		t.Fatal("context enabled by default")
	}
	if opts.Explain != "" {
		t.Fatalf("Explain=%q", opts.Explain)
	}
	if opts.Registry == nil || opts.Logger == nil {
		t.Fatal("Prepare did not run")
	}
}

func TestIgnoreRepeat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"presets", "-i", `^\s*#\[`, "-i", "a,b"})
	_, _, opts, err := ExecuteForTest(cmd)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	// regexes may contain commas, so -i is never split
	if len(opts.Ignore) != 2 || opts.Ignore[0] != `^\s*#\[` || opts.Ignore[1] != "a,b" {
		t.Fatalf("Ignore=%v", opts.Ignore)
	}
}

func TestThemePrecedence_NoColorWins(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"presets", "--theme", "colorblind", "--no-color"})
	_, _, opts, err := ExecuteForTest(cmd)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if opts.Theme != "none" {
		t.Fatalf("Theme=%q", opts.Theme)
	}
}

func TestContextCommentsImpliesContext(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"presets", "-C"})
	_, _, opts, err := ExecuteForTest(cmd)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !opts.Context || !opts.ContextComments {
		t.Fatalf("Context=%v ContextComments=%v", opts.Context, opts.ContextComments)
	}
}

func TestExplainWithoutValue(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"presets", "--explain"})
	_, _, opts, err := ExecuteForTest(cmd)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if opts.Explain != "text" {
		t.Fatalf("Explain=%q", opts.Explain)
	}
}

func TestInvalidFlagValues(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		substr string
	}{
		{name: "format", args: []string{"presets", "-f", "full"}, substr: "format"},
		{name: "theme", args: []string{"presets", "--theme", "neon"}, substr: `invalid --theme "neon"`},
		{name: "explain", args: []string{"presets", "--explain=xml"}, substr: `invalid --explain "xml"`},
		{name: "presets_file", args: []string{"presets", "--presets-file", "testdata/none.toml"}, substr: "read preset file"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := NewRootCommand()
			cmd.SetArgs(tc.args)
			_, _, _, err := ExecuteForTest(cmd)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.substr) {
				t.Fatalf("err=%q want substring %q", err, tc.substr)
			}
		})
	}
}

func TestRequest(t *testing.T) {
	opts := newDefaultOptions()
	opts.Preset = "rust"
	opts.Format = "detail"
	opts.ContextComments = true
	if err := opts.Prepare(&strings.Builder{}); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	req, err := opts.Request([]string{"impl", "new"})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if req.Mode != format.Detail || !req.Context || !req.ContextComments {
		t.Fatalf("req=%+v", req)
	}
	if len(req.Path) != 2 || req.Config.Outer.SingleLine == nil {
		t.Fatalf("req=%+v", req)
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnv, "debug")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"presets"})
	_, _, opts, err := ExecuteForTest(cmd)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !opts.Logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug not enabled from env")
	}

	cmd = NewRootCommand()
	cmd.SetArgs([]string{"presets", "-q"})
	_, _, opts, err = ExecuteForTest(cmd)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if opts.Logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("-q must win over the env")
	}
}
