package language

import (
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"column79/internal/model"
)

// Registry maps language names to resolved languages. It is built once and
// not modified afterwards.
type Registry struct {
	langs map[string]*Language
}

// builder resolves sources into a registry.
type builder struct {
	srcs  map[string]Source
	langs map[string]*Language
}

// Build resolves every source. Names must be unique, every base and
// sublanguage must name a source, and the base relation must be acyclic.
func Build(sources []Source) (*Registry, error) {
	b := &builder{
		srcs:  make(map[string]Source, len(sources)),
		langs: make(map[string]*Language, len(sources)),
	}
	for _, s := range sources {
		if s.Name == "" {
			return nil, model.InvalidConfig("language without a name")
		}
		if _, ok := b.srcs[s.Name]; ok {
			zap.L().Error("duplicate language", zap.String("name", s.Name))
			return nil, model.InvalidConfig("duplicate language %q", s.Name)
		}
		b.srcs[s.Name] = s
	}

	names := make([]string, 0, len(b.srcs))
	for name := range b.srcs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, err := b.resolve(name, nil); err != nil {
			return nil, err
		}
	}
	return &Registry{langs: b.langs}, nil
}

// resolve returns the language called name, resolving its base first.
// descent holds the chain of languages currently inheriting from name.
func (b *builder) resolve(name string, descent []string) (*Language, error) {
	if l, ok := b.langs[name]; ok {
		return l, nil
	}
	src, ok := b.srcs[name]
	if !ok {
		zap.L().Error("unknown language", zap.String("name", name), zap.Strings("descent", descent))
		return nil, model.InvalidConfig("unknown language %q", name)
	}
	descent = append(descent, name)

	if src.Base != "" {
		if slices.Contains(descent, src.Base) {
			zap.L().Error("cyclic base", zap.Strings("descent", descent), zap.String("base", src.Base))
			return nil, model.InvalidConfig("cyclic base: %s -> %s", strings.Join(descent, " -> "), src.Base)
		}
		base, err := b.resolve(src.Base, descent)
		if err != nil {
			return nil, err
		}
		src.inherit(&base.src)
		// The base's sublanguages may have led back here.
		if l, ok := b.langs[name]; ok {
			return l, nil
		}
	}

	lang := newLanguage(src)
	b.langs[name] = lang

	// A sublanguage is a peer, not an ancestor: it starts a fresh descent.
	for _, sub := range src.Sublanguages {
		if _, err := b.resolve(sub, nil); err != nil {
			return nil, err
		}
	}
	return lang, nil
}

// Get returns the language called name.
func (r *Registry) Get(name string) (*Language, bool) {
	l, ok := r.langs[name]
	return l, ok
}

// Len returns the number of languages.
func (r *Registry) Len() int { return len(r.langs) }

// Names returns every language name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.langs))
	for name := range r.langs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Extension returns the extension of path without the dot. A leading dot
// starts a hidden name rather than an extension, so ".bashrc" has none.
func Extension(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

// Lookup returns the language claiming the extension of path, starting at
// start and then searching its sublanguages depth-first in declared order.
// Paths without an extension never match.
func (r *Registry) Lookup(start *Language, path string) (*Language, bool) {
	ext := Extension(path)
	if ext == "" || start == nil {
		return nil, false
	}
	return r.lookup(start, ext, make(map[string]bool))
}

func (r *Registry) lookup(l *Language, ext string, visited map[string]bool) (*Language, bool) {
	if visited[l.Name()] {
		return nil, false
	}
	visited[l.Name()] = true
	if slices.Contains(l.src.Extensions, ext) {
		return l, true
	}
	for _, name := range l.src.Sublanguages {
		sub, ok := r.langs[name]
		if !ok {
			continue
		}
		if found, ok := r.lookup(sub, ext, visited); ok {
			return found, true
		}
	}
	return nil, false
}
