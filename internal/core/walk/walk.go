package walk

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxFileSize keeps generated blobs and assets out of a scan.
const DefaultMaxFileSize = 4 << 20

type Options struct {
	IncludeGlobs []string
	ExcludeGlobs []string
	// ScanAll disables the hidden, default-skip, .gitignore and size rules.
	ScanAll bool
	// MaxFileSize skips larger files; zero means DefaultMaxFileSize, negative means no limit.
	MaxFileSize int64
}

func (o Options) maxFileSize() int64 {
	switch {
	case o.ScanAll || o.MaxFileSize < 0:
		return 0
	case o.MaxFileSize == 0:
		return DefaultMaxFileSize
	default:
		return o.MaxFileSize
	}
}

// ListFiles returns the files under root that pass the filter, as sorted slash-separated
// paths relative to root.
func ListFiles(ctx context.Context, root string, opts Options) ([]string, error) {
	f, err := NewFilter(root, opts)
	if err != nil {
		return nil, err
	}
	limit := opts.maxFileSize()

	var files []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if !f.ShouldInclude(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !f.ShouldInclude(rel, false) {
			return nil
		}
		if limit > 0 {
			info, err := d.Info()
			if err != nil {
				return err
			}
			if info.Size() > limit {
				return nil
			}
		}

		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func isDefaultSkippedDir(name string) bool {
	switch name {
	case ".git", "node_modules", "dist", "target", "vendor", "__pycache__":
		return true
	default:
		return false
	}
}

func anyGlobMatch(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if matchesGlob(pat, rel) {
			return true
		}
	}
	return false
}

func matchesGlob(pattern string, rel string) bool {
	pat := strings.TrimSpace(pattern)
	if pat == "" {
		return false
	}
	pat = strings.ReplaceAll(pat, "\\", "/")
	rel = filepath.ToSlash(rel)

	// -x "*.js,*.sql" given as one value
	if strings.Contains(pat, ",") {
		for _, piece := range strings.Split(pat, ",") {
			if matchesGlob(piece, rel) {
				return true
			}
		}
		return false
	}

	// no separator: match the basename
	if !strings.Contains(pat, "/") {
		ok, _ := path.Match(pat, path.Base(rel))
		return ok
	}

	ok, _ := path.Match(pat, rel)
	return ok
}
