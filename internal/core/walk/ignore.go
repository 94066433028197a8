package walk

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const infoExclude = ".git/info/exclude"

// gitIgnore matches paths against every .gitignore under the root plus .git/info/exclude.
// A nil *gitIgnore ignores nothing.
type gitIgnore struct {
	matcher gitignore.Matcher
}

func loadGitIgnore(root string) (*gitIgnore, error) {
	fs := osfs.New(root)
	patterns, err := gitignore.ReadPatterns(fs, nil)
	if err != nil {
		return nil, fmt.Errorf("read .gitignore under %s: %w", root, err)
	}
	exclude, err := readExcludeFile(fs, infoExclude)
	if err != nil {
		return nil, fmt.Errorf("read %s under %s: %w", infoExclude, root, err)
	}
	// later patterns take precedence, so repository excludes go first
	patterns = append(exclude, patterns...)
	if len(patterns) == 0 {
		return nil, nil
	}
	return &gitIgnore{matcher: gitignore.NewMatcher(patterns)}, nil
}

func readExcludeFile(fs billy.Filesystem, name string) ([]gitignore.Pattern, error) {
	f, err := fs.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var out []gitignore.Pattern
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, gitignore.ParsePattern(line, nil))
	}
	return out, sc.Err()
}

func (g *gitIgnore) ignored(rel string, isDir bool) bool {
	if g == nil {
		return false
	}
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return false
	}
	return g.matcher.Match(strings.Split(rel, "/"), isDir)
}
