// Package language holds the comment syntax of each supported language and
// resolves a file path to the language that claims its extension.
package language

import (
	"regexp"
	"slices"
	"sync"
)

// Source is a language definition as written in a config document.
// An empty marker means the language has no such comment form.
type Source struct {
	Name              string   `toml:"name" json:"name"`
	Base              string   `toml:"base" json:"base,omitempty"`
	Extensions        []string `toml:"extensions" json:"extensions"`
	LineCommentBegin  string   `toml:"line_comment_begin" json:"line_comment_begin,omitempty"`
	BlockCommentBegin string   `toml:"block_comment_begin" json:"block_comment_begin,omitempty"`
	BlockCommentEnd   string   `toml:"block_comment_end" json:"block_comment_end,omitempty"`
	Sublanguages      []string `toml:"sublanguages" json:"sublanguages"`
}

// inherit copies every marker unset in s from base.
func (s *Source) inherit(base *Source) {
	if s.LineCommentBegin == "" {
		s.LineCommentBegin = base.LineCommentBegin
	}
	if s.BlockCommentBegin == "" {
		s.BlockCommentBegin = base.BlockCommentBegin
	}
	if s.BlockCommentEnd == "" {
		s.BlockCommentEnd = base.BlockCommentEnd
	}
}

// Language is a resolved Source: markers inherited from its base, regexes
// compiled on first use.
type Language struct {
	src Source

	once    sync.Once
	reLine  *regexp.Regexp
	reBlock *regexp.Regexp
}

func newLanguage(src Source) *Language {
	src.Extensions = slices.Clone(src.Extensions)
	src.Sublanguages = slices.Clone(src.Sublanguages)
	return &Language{src: src}
}

// Name returns the unique registry name.
func (l *Language) Name() string { return l.src.Name }

// Base returns the name of the language markers were inherited from, if any.
func (l *Language) Base() string { return l.src.Base }

// Extensions returns the file extensions (without the dot) the language claims.
func (l *Language) Extensions() []string { return slices.Clone(l.src.Extensions) }

// Sublanguages returns the peer languages consulted by Lookup, in order.
func (l *Language) Sublanguages() []string { return slices.Clone(l.src.Sublanguages) }

// Source returns the resolved record, inherited markers included.
func (l *Language) Source() Source {
	s := l.src
	s.Extensions = slices.Clone(s.Extensions)
	s.Sublanguages = slices.Clone(s.Sublanguages)
	return s
}

// LineCommentBegin returns the line-comment marker, or "" if there is none.
func (l *Language) LineCommentBegin() string { return l.src.LineCommentBegin }

// BlockCommentBegin returns the opening block-comment marker, or "".
func (l *Language) BlockCommentBegin() string { return l.src.BlockCommentBegin }

// BlockCommentEnd returns the closing block-comment marker, or "".
func (l *Language) BlockCommentEnd() string { return l.src.BlockCommentEnd }

// HasLineComment reports whether the language has a line-comment form.
func (l *Language) HasLineComment() bool { return l.src.LineCommentBegin != "" }

// HasBlockComment reports whether the language has a complete block-comment
// form. Both markers are required.
func (l *Language) HasBlockComment() bool {
	return l.src.BlockCommentBegin != "" && l.src.BlockCommentEnd != ""
}

func (l *Language) compile() {
	l.once.Do(func() {
		if l.HasLineComment() {
			l.reLine = regexp.MustCompile(`^(.*?` + regexp.QuoteMeta(l.src.LineCommentBegin) + `\s*)(.*)$`)
		}
		if l.HasBlockComment() {
			l.reBlock = regexp.MustCompile(`^(.*?` + regexp.QuoteMeta(l.src.BlockCommentBegin) +
				`\s*)(.*?)(\s*` + regexp.QuoteMeta(l.src.BlockCommentEnd) + `)$`)
		}
	})
}

// MatchLine splits a line comment into the text through the marker and its
// trailing spaces (head) and everything after (body).
func (l *Language) MatchLine(line string) (head, body string, ok bool) {
	l.compile()
	if l.reLine == nil {
		return "", "", false
	}
	m := l.reLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// MatchBlock splits a single-line block comment into head, body, and the
// closing marker with its leading spaces (foot).
func (l *Language) MatchBlock(line string) (head, body, foot string, ok bool) {
	l.compile()
	if l.reBlock == nil {
		return "", "", "", false
	}
	m := l.reBlock.FindStringSubmatch(line)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}
