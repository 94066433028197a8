package preset

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"codump/internal/core/outline"
)

// DefaultFile is the preset file picked up from the working directory when present.
const DefaultFile = ".codump.toml"

var (
	ErrPatternMissing = errors.New("comment pattern missing")
	ErrUnknownPreset  = errors.New("unknown preset")
)

// Pattern holds the regular expressions of one comment kind, as source strings.
type Pattern struct {
	Single string `toml:"single" json:"single"`
	Start  string `toml:"start,omitempty" json:"start,omitempty"`
	End    string `toml:"end,omitempty" json:"end,omitempty"`
}

type Preset struct {
	Name        string   `toml:"-" json:"name"`
	Description string   `toml:"description" json:"description,omitempty"`
	Outer       Pattern  `toml:"outer" json:"outer"`
	Inner       Pattern  `toml:"inner" json:"inner"`
	Ignore      []string `toml:"ignore" json:"ignore,omitempty"`
	Source      string   `toml:"-" json:"source"`
}

func builtins() []Preset {
	javadoc := Pattern{Start: `^/\*\*`, End: `\*/\s*$`}
	docstring := Pattern{Single: `^###`, Start: `^"""`, End: `"""\s*$`}
	return []Preset{
		{
			Name:        "rust",
			Description: "outer ///, inner //!",
			Outer:       Pattern{Single: `^///`},
			Inner:       Pattern{Single: `^//!`},
		},
		{
			Name:        "rust-java",
			Description: "rust single-line comments plus /** ... */ blocks",
			Outer:       Pattern{Single: `^///`, Start: javadoc.Start, End: javadoc.End},
			Inner:       Pattern{Single: `^//!`, Start: javadoc.Start, End: javadoc.End},
		},
		{
			Name:        "python",
			Description: `### comments and """ docstrings`,
			Outer:       docstring,
			Inner:       docstring,
		},
	}
}

// Registry holds the built-in presets and those loaded from a preset file. A file preset
// replaces a built-in of the same name.
type Registry struct {
	byName map[string]Preset
}

func NewRegistry(extra ...Preset) *Registry {
	r := &Registry{byName: map[string]Preset{}}
	for _, p := range builtins() {
		p.Source = "builtin"
		r.byName[p.Name] = p
	}
	for _, p := range extra {
		r.byName[p.Name] = p
	}
	return r
}

func (r *Registry) Get(name string) (Preset, bool) {
	p, ok := r.byName[strings.TrimSpace(name)]
	return p, ok
}

// List returns the presets sorted by name.
func (r *Registry) List() []Preset {
	out := make([]Preset, 0, len(r.byName))
	for _, p := range r.byName {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Names() []string {
	list := r.List()
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name
	}
	return names
}

type fileFormat struct {
	Presets map[string]Preset `toml:"presets"`
}

// LoadFile reads presets from a TOML file of the form
//
//	[presets.go]
//	description = "go doc comments"
//	ignore = ["^\\s*$"]
//	outer = { single = "^// " }
//	inner = { single = "^//go:" }
func LoadFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}

	var f fileFormat
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("parse preset file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse preset file %s: unknown key %q", path, undecoded[0].String())
	}

	out := make([]Preset, 0, len(f.Presets))
	for name, p := range f.Presets {
		p.Name = name
		p.Source = path
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("preset file %s: empty preset name", path)
		}
		if _, err := compile(p, Overrides{}); err != nil {
			return nil, fmt.Errorf("preset file %s: preset %q: %w", path, name, err)
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Overrides are the individual pattern flags. A non-empty field replaces the matching part
// of the preset.
type Overrides struct {
	Outer      string
	OuterStart string
	OuterEnd   string
	Inner      string
	InnerStart string
	InnerEnd   string
	Ignore     []string
}

func (o Overrides) apply(p Preset) Preset {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Outer.Single, o.Outer)
	set(&p.Outer.Start, o.OuterStart)
	set(&p.Outer.End, o.OuterEnd)
	set(&p.Inner.Single, o.Inner)
	set(&p.Inner.Start, o.InnerStart)
	set(&p.Inner.End, o.InnerEnd)
	p.Ignore = append(append([]string(nil), p.Ignore...), o.Ignore...)
	return p
}

// Resolve turns a preset name plus overrides into a tree builder config. Without a preset
// both --outer and --inner are required.
func (r *Registry) Resolve(name string, o Overrides) (outline.Config, error) {
	var base Preset
	if strings.TrimSpace(name) != "" {
		p, ok := r.Get(name)
		if !ok {
			return outline.Config{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, name, strings.Join(r.Names(), ", "))
		}
		base = p
	} else if o.Outer == "" || o.Inner == "" {
		return outline.Config{}, fmt.Errorf("%w: either use --preset or specify the --outer* and --inner* patterns", ErrPatternMissing)
	}
	return compile(base, o)
}

func compile(p Preset, o Overrides) (outline.Config, error) {
	p = o.apply(p)

	outer, err := compilePattern("outer", p.Outer)
	if err != nil {
		return outline.Config{}, err
	}
	inner, err := compilePattern("inner", p.Inner)
	if err != nil {
		return outline.Config{}, err
	}

	cfg := outline.Config{Outer: outer, Inner: inner}
	for _, s := range p.Ignore {
		re, err := compileRegex(s)
		if err != nil {
			return outline.Config{}, err
		}
		cfg.Ignore = append(cfg.Ignore, re)
	}
	return cfg, nil
}

func compilePattern(kind string, p Pattern) (outline.CommentMatcher, error) {
	var m outline.CommentMatcher
	if p.Single == "" {
		return m, fmt.Errorf("%w: --%s is empty", ErrPatternMissing, kind)
	}
	if (p.Start == "") != (p.End == "") {
		return m, fmt.Errorf("%w: --%s-start and --%s-end go together", ErrPatternMissing, kind, kind)
	}

	var err error
	if m.SingleLine, err = compileRegex(p.Single); err != nil {
		return m, err
	}
	if p.Start == "" {
		return m, nil
	}
	if m.MultiStart, err = compileRegex(p.Start); err != nil {
		return m, err
	}
	if m.MultiEnd, err = compileRegex(p.End); err != nil {
		return m, err
	}
	return m, nil
}

func compileRegex(s string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %w", s, err)
	}
	return re, nil
}
