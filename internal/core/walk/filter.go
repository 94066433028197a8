package walk

import (
	"path"
	"path/filepath"
)

// Filter decides which paths under a root take part in a scan.
type Filter struct {
	opts Options
	ig   *gitIgnore
}

func NewFilter(root string, opts Options) (*Filter, error) {
	f := &Filter{opts: opts}
	if opts.ScanAll {
		return f, nil
	}
	ig, err := loadGitIgnore(root)
	if err != nil {
		return nil, err
	}
	f.ig = ig
	return f, nil
}

// ShouldInclude reports whether rel (relative to the root) is scanned. For a directory it
// reports whether to descend.
func (f *Filter) ShouldInclude(rel string, isDir bool) bool {
	if f == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	name := path.Base(rel)

	if !f.opts.ScanAll {
		if isHidden(name) || (isDir && isDefaultSkippedDir(name)) {
			return false
		}
		if f.ig.ignored(rel, isDir) {
			return false
		}
	}
	if isDir {
		return true
	}

	if len(f.opts.IncludeGlobs) > 0 && !anyGlobMatch(f.opts.IncludeGlobs, rel) {
		return false
	}
	return !anyGlobMatch(f.opts.ExcludeGlobs, rel)
}
