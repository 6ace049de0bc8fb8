// Package inspect classifies source lines by comment shape and checks or
// rewrites them against a column target.
package inspect

import "column79/internal/language"

// Kind tags the shape of a line.
type Kind int

const (
	Other Kind = iota
	LineComment
	LineSeparator
	BlockComment
	BlockSeparator
)

func (k Kind) String() string {
	switch k {
	case LineComment:
		return "line-comment"
	case LineSeparator:
		return "line-separator"
	case BlockComment:
		return "block-comment"
	case BlockSeparator:
		return "block-separator"
	default:
		return "other"
	}
}

// IsBlock reports whether the shape carries a foot.
func (k Kind) IsBlock() bool { return k == BlockComment || k == BlockSeparator }

// Shape is a classified line. Head runs through the comment marker and the
// spaces after it, Body is the comment text, Foot is the closing block marker
// with the spaces before it. All three are empty for Other; Foot is empty
// for line shapes.
type Shape struct {
	Kind Kind
	Head string
	Body string
	Foot string
}

// IsSeparator reports whether body is a run of one repeated byte: at least
// threshold bytes long, with the last byte repeated at each of the up to
// threshold positions before it.
func IsSeparator(body string, threshold int) bool {
	n := len(body)
	if n == 0 || n < threshold {
		return false
	}
	last := body[n-1]
	for i := 1; i <= threshold && i < n; i++ {
		if body[n-1-i] != last {
			return false
		}
	}
	return true
}

// Classify returns the shape of line in lang. A line matching both forms is
// a block shape.
func Classify(lang *language.Language, threshold int, line string) Shape {
	if head, body, foot, ok := lang.MatchBlock(line); ok {
		kind := BlockComment
		if IsSeparator(body, threshold) {
			kind = BlockSeparator
		}
		return Shape{Kind: kind, Head: head, Body: body, Foot: foot}
	}
	if head, body, ok := lang.MatchLine(line); ok {
		kind := LineComment
		if IsSeparator(body, threshold) {
			kind = LineSeparator
		}
		return Shape{Kind: kind, Head: head, Body: body}
	}
	return Shape{Kind: Other}
}

// InPolicy reports whether line, classified as s, satisfies column.
// Languages with a line form treat every single-line block comment as out of
// policy so that it gets converted.
func InPolicy(s Shape, lang *language.Language, column int, line string) bool {
	n := len(line)
	switch s.Kind {
	case LineSeparator:
		return n == column
	case BlockComment:
		return n <= column && !lang.HasLineComment()
	case BlockSeparator:
		return n == column && !lang.HasLineComment()
	default:
		return n <= column
	}
}
