package inspect

import (
	"errors"
	"strings"

	"column79/internal/language"
)

var (
	errPopEmpty    = errors.New("line emptied before reaching the column")
	errEmptyBody   = errors.New("comment body is empty")
	errNoLineForm  = errors.New("language has no line comment form")
	errNoBlockForm = errors.New("language has no block comment form")
)

// pop removes n trailing bytes from s.
func pop(s string, n int) (string, error) {
	if n >= len(s) && n > 0 {
		return "", errPopEmpty
	}
	return s[:len(s)-n], nil
}

// shrink pops trailing bytes until s is column bytes long.
func shrink(s string, column int) (string, error) {
	if len(s) <= column {
		return s, nil
	}
	return pop(s, len(s)-column)
}

// expand appends the last byte of body until s is column bytes long.
func expand(s, body string, column int) (string, error) {
	if len(s) >= column {
		return s, nil
	}
	if body == "" {
		return "", errEmptyBody
	}
	return s + strings.Repeat(body[len(body)-1:], column-len(s)), nil
}

// makeLine turns a block comment into a line comment: the last block marker
// in the head becomes the line marker and the foot is dropped.
func makeLine(lang *language.Language, s Shape) (string, error) {
	if !lang.HasLineComment() {
		return "", errNoLineForm
	}
	bcb := lang.BlockCommentBegin()
	if bcb == "" {
		return "", errNoBlockForm
	}
	head := s.Head
	if i := strings.LastIndex(head, bcb); i >= 0 {
		head = head[:i] + lang.LineCommentBegin() + head[i+len(bcb):]
	}
	return head + s.Body, nil
}

// makeLineSeparator converts a block separator with makeLine and then pads
// or trims it to column bytes.
func makeLineSeparator(lang *language.Language, s Shape, column int) (string, error) {
	line, err := makeLine(lang, s)
	if err != nil {
		return "", err
	}
	if len(line) > column {
		return shrink(line, column)
	}
	return expand(line, s.Body, column)
}

// reshapeBlock shrinks or expands head+body of a block separator to fit
// column once the foot is re-appended.
func reshapeBlock(s Shape, column int) (string, error) {
	target := column - len(s.Foot)
	inner := s.Head + s.Body
	var (
		out string
		err error
	)
	if len(inner) > target {
		out, err = pop(inner, len(inner)-target)
	} else {
		out, err = expand(inner, s.Body, target)
	}
	if err != nil {
		return "", err
	}
	return out + s.Foot, nil
}
