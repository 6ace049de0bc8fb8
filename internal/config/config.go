// Package config layers the packaged default document, the user document,
// and command-line overrides into the settings of one run.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"column79/internal/inspect"
	"column79/internal/language"
	"column79/internal/model"
)

// Defaults applied before any document is read.
const (
	DefaultColumn             = 79
	DefaultSeparatorThreshold = 12
	DefaultLanguage           = "cargo"
)

// Config holds the settings of one run. It is only modified while documents
// and overrides are being applied.
type Config struct {
	Column             int
	SeparatorThreshold int
	Flags              model.Flags
	Language           string
	Languages          *language.Registry

	sources map[string]language.Source
}

// document mirrors the keys of a config file. Pointers tell an absent key
// from a zero value.
type document struct {
	Column             *int              `toml:"column"`
	SeparatorThreshold *int              `toml:"separator_threshold"`
	Ask                *bool             `toml:"ask"`
	Language           *string           `toml:"language"`
	Languages          []language.Source `toml:"languages"`
}

// Overrides are the command-line settings applied after every document.
// Nil numbers and an empty language leave the config unchanged; an explicit
// zero is applied and rejected by Validate. Flags are OR-merged.
type Overrides struct {
	Column             *int
	SeparatorThreshold *int
	Language           string
	Flags              model.Flags
}

// Default returns a config with built-in defaults and no languages.
func Default() *Config {
	reg, _ := language.Build(nil)
	return &Config{
		Column:             DefaultColumn,
		SeparatorThreshold: DefaultSeparatorThreshold,
		Language:           DefaultLanguage,
		Languages:          reg,
		sources:            make(map[string]language.Source),
	}
}

// New reads the default document at path.
func New(path string) (*Config, error) {
	c := Default()
	if err := c.Import(path); err != nil {
		return nil, err
	}
	return c, nil
}

// Import overlays the document at path.
func (c *Config) Import(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.IOError("read config", path, err)
	}
	return c.Decode(path, data)
}

// Decode overlays a document. Keys present in the document replace the
// current values; a language replaces an earlier language of the same name.
// Unknown keys are ignored.
func (c *Config) Decode(name string, data []byte) error {
	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			zap.L().Error("malformed config", zap.String("path", name), zap.Error(err))
			return &model.Error{Kind: model.ErrConfigParse, Op: "parse", Path: name, Err: err}
		}
		return &model.Error{Kind: model.ErrConfigInvalid, Op: "decode", Path: name, Err: err}
	}
	for _, key := range md.Undecoded() {
		zap.L().Debug("ignoring unknown config key", zap.String("path", name), zap.String("key", key.String()))
	}

	if doc.Column != nil {
		c.Column = *doc.Column
	}
	if doc.SeparatorThreshold != nil {
		c.SeparatorThreshold = *doc.SeparatorThreshold
	}
	if doc.Ask != nil {
		if *doc.Ask {
			c.Flags &^= model.NoAsk
		} else {
			c.Flags |= model.NoAsk
		}
	}
	if doc.Language != nil {
		c.Language = *doc.Language
	}
	if len(doc.Languages) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(doc.Languages))
	sources := make(map[string]language.Source, len(c.sources)+len(doc.Languages))
	for name, src := range c.sources {
		sources[name] = src
	}
	for _, src := range doc.Languages {
		if seen[src.Name] {
			zap.L().Error("duplicate language", zap.String("path", name), zap.String("name", src.Name))
			return &model.Error{Kind: model.ErrConfigInvalid, Op: fmt.Sprintf("duplicate language %q", src.Name), Path: name}
		}
		seen[src.Name] = true
		sources[src.Name] = src
	}

	reg, err := language.Build(sortedSources(sources))
	if err != nil {
		return &model.Error{Kind: model.ErrConfigInvalid, Op: "languages", Path: name, Err: err}
	}
	c.sources = sources
	c.Languages = reg
	return nil
}

func sortedSources(m map[string]language.Source) []language.Source {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]language.Source, 0, len(names))
	for _, name := range names {
		out = append(out, m[name])
	}
	return out
}

// Apply overlays command-line overrides.
func (c *Config) Apply(o Overrides) {
	if o.Column != nil {
		c.Column = *o.Column
	}
	if o.SeparatorThreshold != nil {
		c.SeparatorThreshold = *o.SeparatorThreshold
	}
	if o.Language != "" {
		c.Language = o.Language
	}
	c.Flags |= o.Flags
}

// Validate checks that the selected language exists and the column rules
// are usable.
func (c *Config) Validate() error {
	if c.Column <= 0 {
		return model.InvalidConfig("column must be positive, got %d", c.Column)
	}
	if c.SeparatorThreshold <= 0 {
		return model.InvalidConfig("separator_threshold must be positive, got %d", c.SeparatorThreshold)
	}
	if _, ok := c.Languages.Get(c.Language); !ok {
		zap.L().Error("language not found", zap.String("language", c.Language), zap.Strings("known", c.Languages.Names()))
		return model.InvalidConfig("language %q not found", c.Language)
	}
	return nil
}

// Selected returns the language chosen for this run. Call Validate first.
func (c *Config) Selected() *language.Language {
	l, _ := c.Languages.Get(c.Language)
	return l
}

// Lookup resolves path against the selected language and its sublanguages.
func (c *Config) Lookup(path string) (*language.Language, bool) {
	return c.Languages.Lookup(c.Selected(), path)
}

// InspectOptions returns the column rules for the inspectors.
func (c *Config) InspectOptions() inspect.Options {
	return inspect.Options{Column: c.Column, Threshold: c.SeparatorThreshold}
}
