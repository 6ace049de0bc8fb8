package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"column79/internal/model"
)

func cLike() []Source {
	return []Source{
		{Name: "c", Extensions: []string{"c", "h"}, LineCommentBegin: "//", BlockCommentBegin: "/*", BlockCommentEnd: "*/"},
		{Name: "rust", Base: "c", Extensions: []string{"rs"}},
		{Name: "toml", Extensions: []string{"toml"}, LineCommentBegin: "#"},
		{Name: "cargo", Sublanguages: []string{"rust", "toml"}},
	}
}

func TestBuildInheritsMarkersFromBase(t *testing.T) {
	reg, err := Build(cLike())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "cargo", "rust", "toml"}, reg.Names())

	rust, ok := reg.Get("rust")
	require.True(t, ok)
	assert.Equal(t, "//", rust.LineCommentBegin())
	assert.Equal(t, "/*", rust.BlockCommentBegin())
	assert.Equal(t, "*/", rust.BlockCommentEnd())
	assert.True(t, rust.HasLineComment())
	assert.True(t, rust.HasBlockComment())
	assert.Equal(t, "c", rust.Base())

	toml, _ := reg.Get("toml")
	assert.False(t, toml.HasBlockComment())
}

func TestBuildKeepsLocalMarkers(t *testing.T) {
	reg, err := Build([]Source{
		{Name: "c", LineCommentBegin: "//", BlockCommentBegin: "/*", BlockCommentEnd: "*/"},
		{Name: "sql", Base: "c", LineCommentBegin: "--"},
	})
	require.NoError(t, err)
	sql, _ := reg.Get("sql")
	assert.Equal(t, "--", sql.LineCommentBegin())
	assert.Equal(t, "/*", sql.BlockCommentBegin())
}

func TestBuildMultiLevelInheritance(t *testing.T) {
	reg, err := Build([]Source{
		{Name: "a", LineCommentBegin: "#"},
		{Name: "b", Base: "a"},
		{Name: "c", Base: "b"},
	})
	require.NoError(t, err)
	c, _ := reg.Get("c")
	assert.Equal(t, "#", c.LineCommentBegin())
}

func TestBuildRejectsInvalidGraphs(t *testing.T) {
	cases := map[string][]Source{
		"self base":    {{Name: "a", Base: "a"}},
		"cyclic base":  {{Name: "a", Base: "b"}, {Name: "b", Base: "c"}, {Name: "c", Base: "a"}},
		"unknown base": {{Name: "a", Base: "missing"}},
		"unknown sub":  {{Name: "a", Sublanguages: []string{"missing"}}},
		"duplicate":    {{Name: "a"}, {Name: "a"}},
		"missing name": {{Extensions: []string{"x"}}},
	}
	for name, srcs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Build(srcs)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrConfigInvalid)
		})
	}
}

func TestBuildToleratesSublanguageCycles(t *testing.T) {
	reg, err := Build([]Source{
		{Name: "a", Extensions: []string{"a"}, Sublanguages: []string{"b"}},
		{Name: "b", Extensions: []string{"b"}, Sublanguages: []string{"a"}},
	})
	require.NoError(t, err)
	a, _ := reg.Get("a")

	got, ok := reg.Lookup(a, "x.b")
	require.True(t, ok)
	assert.Equal(t, "b", got.Name())

	_, ok = reg.Lookup(a, "x.c")
	assert.False(t, ok)
}

func TestLookupThroughSublanguages(t *testing.T) {
	reg, err := Build(cLike())
	require.NoError(t, err)
	cargo, _ := reg.Get("cargo")

	got, ok := reg.Lookup(cargo, "src/foo.rs")
	require.True(t, ok)
	assert.Equal(t, "rust", got.Name())

	got, ok = reg.Lookup(cargo, "Cargo.toml")
	require.True(t, ok)
	assert.Equal(t, "toml", got.Name())

	_, ok = reg.Lookup(cargo, "main.c")
	assert.False(t, ok, "c is a base of rust, not a sublanguage of cargo")

	_, ok = reg.Lookup(cargo, "Makefile")
	assert.False(t, ok)

	_, ok = reg.Lookup(cargo, "src/.rs")
	assert.False(t, ok, "a dotfile name is not an extension")
}

func TestExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/foo.rs", "rs"},
		{"archive.tar.gz", "gz"},
		{"Makefile", ""},
		{".bashrc", ""},
		{"home/.bashrc", ""},
		{"home/.config.toml", "toml"},
		{"dir.d/file", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Extension(tt.path), tt.path)
	}
}

func TestLookupPrefersStartLanguage(t *testing.T) {
	reg, err := Build([]Source{
		{Name: "outer", Extensions: []string{"h"}, Sublanguages: []string{"inner"}},
		{Name: "inner", Extensions: []string{"h"}},
	})
	require.NoError(t, err)
	outer, _ := reg.Get("outer")
	got, ok := reg.Lookup(outer, "x.h")
	require.True(t, ok)
	assert.Equal(t, "outer", got.Name())
}

func TestMatchLineAndBlock(t *testing.T) {
	reg, err := Build(cLike())
	require.NoError(t, err)
	rust, _ := reg.Get("rust")

	head, body, ok := rust.MatchLine("let x = 1; // note")
	require.True(t, ok)
	assert.Equal(t, "let x = 1; // ", head)
	assert.Equal(t, "note", body)

	head, body, foot, ok := rust.MatchBlock("/* note */")
	require.True(t, ok)
	assert.Equal(t, "/* ", head)
	assert.Equal(t, "note", body)
	assert.Equal(t, " */", foot)

	_, _, _, ok = rust.MatchBlock("/* open only")
	assert.False(t, ok)
	_, _, ok = rust.MatchLine("let x = 1;")
	assert.False(t, ok)

	toml, _ := reg.Get("toml")
	_, _, _, ok = toml.MatchBlock("/* x */")
	assert.False(t, ok)
}

func TestMarkersAreLiteral(t *testing.T) {
	reg, err := Build([]Source{{Name: "ml", BlockCommentBegin: "(*", BlockCommentEnd: "*)"}})
	require.NoError(t, err)
	ml, _ := reg.Get("ml")
	_, body, _, ok := ml.MatchBlock("(* a.b *)")
	require.True(t, ok)
	assert.Equal(t, "a.b", body)
	_, _, _, ok = ml.MatchBlock("a.b")
	assert.False(t, ok)
}
