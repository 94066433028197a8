package outline

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func rustConfig() Config {
	return Config{
		Outer: CommentMatcher{SingleLine: regexp.MustCompile(`^///`)},
		Inner: CommentMatcher{SingleLine: regexp.MustCompile(`^//!`)},
	}
}

func TestBuild_NoMarkersIsIdentity(t *testing.T) {
	lines := []string{"fn main() {", "    println!(\"hi\");", "", "}"}
	root := Build(lines, rustConfig())

	if !root.IsRoot || root.Indent != 0 || len(root.OuterComments) != 0 {
		t.Fatalf("bad root: %+v", root)
	}
	if len(root.Children) != 0 {
		t.Fatalf("children=%d", len(root.Children))
	}
	if diff := cmp.Diff(lines, root.BodyLines); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
	if root.InnerRange != nil {
		t.Fatalf("InnerRange=%+v", *root.InnerRange)
	}
}

func TestBuild_RustCrate(t *testing.T) {
	lines := []string{"//!crate doc", "///fn doc", "fn foo() {", "  body", "}"}
	root := Build(lines, rustConfig())

	if diff := cmp.Diff([]string{"//!crate doc"}, root.InnerComments); diff != "" {
		t.Fatalf("inner mismatch (-want +got):\n%s", diff)
	}
	if root.InnerRange == nil || *root.InnerRange != (Range{0, 1}) {
		t.Fatalf("InnerRange=%v", root.InnerRange)
	}
	if len(root.Children) != 1 {
		t.Fatalf("children=%d", len(root.Children))
	}

	child := root.Children[0]
	if child.IsRoot {
		t.Fatal("child marked as root")
	}
	if diff := cmp.Diff([]string{"///fn doc"}, child.OuterComments); diff != "" {
		t.Fatalf("outer mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"fn foo() {", "  body", "}"}, child.BodyLines); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
	if child.Indent != 2 {
		t.Fatalf("Indent=%d", child.Indent)
	}
	if len(child.Children) != 0 {
		t.Fatalf("grandchildren=%d", len(child.Children))
	}
}

func TestBuild_NestedWithInnerComments(t *testing.T) {
	lines := []string{
		"/// A struct",
		"impl A {",
		"    //! impl docs",
		"",
		"    /// new",
		"    fn new() -> Self {",
		"        Self {}",
		"    }",
		"",
		"    /// get",
		"    fn get(&self) -> u8 {",
		"        /// local",
		"        let x = 1;",
		"        x",
		"    }",
		"}",
	}
	root := Build(lines, rustConfig())
	if len(root.Children) != 1 {
		t.Fatalf("children=%d", len(root.Children))
	}

	impl := root.Children[0]
	if impl.Indent != 4 {
		t.Fatalf("impl Indent=%d", impl.Indent)
	}
	if diff := cmp.Diff([]string{"//! impl docs"}, impl.InnerComments); diff != "" {
		t.Fatalf("inner mismatch (-want +got):\n%s", diff)
	}
	if impl.InnerRange == nil || *impl.InnerRange != (Range{1, 2}) {
		t.Fatalf("InnerRange=%v", impl.InnerRange)
	}
	if len(impl.Children) != 2 {
		t.Fatalf("impl children=%d", len(impl.Children))
	}

	newFn, getFn := impl.Children[0], impl.Children[1]
	if diff := cmp.Diff([]string{"fn new() -> Self {", "    Self {}", "}", ""}, newFn.BodyLines); diff != "" {
		t.Fatalf("new body mismatch (-want +got):\n%s", diff)
	}
	if getFn.Title() != "fn get(&self) -> u8 {" {
		t.Fatalf("get title=%q", getFn.Title())
	}
	if len(getFn.Children) != 1 {
		t.Fatalf("get children=%d", len(getFn.Children))
	}
	if diff := cmp.Diff([]string{"let x = 1;", "x"}, getFn.Children[0].BodyLines); diff != "" {
		t.Fatalf("local body mismatch (-want +got):\n%s", diff)
	}
	if root.Count() != 5 || root.Depth() != 3 {
		t.Fatalf("count=%d depth=%d", root.Count(), root.Depth())
	}
}

func TestBuild_RejectsCommentNotFollowedByDeclaration(t *testing.T) {
	lines := []string{
		"/// dangling",
		"",
		"fn a() {}",
		"/// indented follower",
		"  x",
		"/// b",
		"fn b() {}",
	}
	root := Build(lines, rustConfig())
	if len(root.Children) != 1 {
		t.Fatalf("children=%d", len(root.Children))
	}
	if got := root.Children[0].Title(); got != "fn b() {}" {
		t.Fatalf("title=%q", got)
	}
}

func TestBuild_RejectedCommentStaysInPreviousBody(t *testing.T) {
	lines := []string{"/// a", "fn a() {}", "/// trailing", "", "/// b", "fn b() {}"}
	root := Build(lines, rustConfig())
	if len(root.Children) != 2 {
		t.Fatalf("children=%d", len(root.Children))
	}
	want := []string{"fn a() {}", "/// trailing", ""}
	if diff := cmp.Diff(want, root.Children[0].BodyLines); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_IgnorePatterns(t *testing.T) {
	cfg := rustConfig()
	cfg.Ignore = []*regexp.Regexp{regexp.MustCompile(`^#\[`)}
	lines := []string{"/// doc", "#[derive(Debug)]", "struct S;"}

	root := Build(lines, cfg)
	if len(root.Children) != 1 {
		t.Fatalf("children=%d", len(root.Children))
	}
	if diff := cmp.Diff([]string{"struct S;"}, root.Children[0].BodyLines); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
	// ignored lines are only hidden from the child search; the root keeps them
	if len(root.BodyLines) != 3 {
		t.Fatalf("root body=%v", root.BodyLines)
	}
}

func TestBuild_InnerAndOuterShareMarkers(t *testing.T) {
	py := CommentMatcher{
		SingleLine: regexp.MustCompile(`^###`),
		MultiStart: regexp.MustCompile(`^"""`),
		MultiEnd:   regexp.MustCompile(`"""\s*$`),
	}
	cfg := Config{Outer: py, Inner: py}
	lines := []string{
		"### module docs",
		"",
		"### Greeter",
		"class Greeter:",
		`    """`,
		"    Says hello",
		`    """`,
		"",
		"    ### greet",
		"    def greet(self):",
		"        pass",
	}

	root := Build(lines, cfg)
	if diff := cmp.Diff([]string{"### module docs"}, root.InnerComments); diff != "" {
		t.Fatalf("root inner mismatch (-want +got):\n%s", diff)
	}
	if len(root.Children) != 1 {
		t.Fatalf("children=%d", len(root.Children))
	}
	cls := root.Children[0]
	if diff := cmp.Diff([]string{`"""`, "Says hello", `"""`}, cls.InnerComments); diff != "" {
		t.Fatalf("class inner mismatch (-want +got):\n%s", diff)
	}
	if len(cls.Children) != 1 || cls.Children[0].Title() != "def greet(self):" {
		t.Fatalf("class children=%+v", cls.Children)
	}
}
