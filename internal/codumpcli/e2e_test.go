package codumpcli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"

	"codump/internal/core/dump"
)

// e2eCase is one testdata/e2e/*.toml fixture. Err is a substring of the returned error;
// an empty Err means the command must succeed.
type e2eCase struct {
	Cmd    []string `toml:"cmd"`
	Out    string   `toml:"out"`
	Err    string   `toml:"err"`
	Stderr string   `toml:"stderr"`
}

func TestEndToEnd(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "e2e", "*.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures")
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".toml")
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			var tc e2eCase
			md, err := toml.Decode(string(data), &tc)
			if err != nil {
				t.Fatalf("decode %s: %v", file, err)
			}
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				t.Fatalf("%s: unknown key %q", file, undecoded[0].String())
			}

			root := NewRootCommand()
			root.SetArgs(RewriteArgsForImplicitDump(root, tc.Cmd))
			stdout, stderr, _, err := ExecuteForTest(root)

			switch {
			case tc.Err == "" && err != nil:
				t.Fatalf("unexpected error: %v\nstderr:\n%s", err, stderr)
			case tc.Err != "" && err == nil:
				t.Fatalf("expected error containing %q", tc.Err)
			case tc.Err != "" && !strings.Contains(err.Error(), tc.Err):
				t.Fatalf("err=%q want substring %q", err, tc.Err)
			}

			if diff := cmp.Diff(dump.SplitLines([]byte(tc.Out)), dump.SplitLines([]byte(stdout))); diff != "" {
				t.Fatalf("stdout mismatch (-want +got):\n%s", diff)
			}
			if tc.Stderr != "" {
				if diff := cmp.Diff(dump.SplitLines([]byte(tc.Stderr)), dump.SplitLines([]byte(stderr))); diff != "" {
					t.Fatalf("stderr mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}
