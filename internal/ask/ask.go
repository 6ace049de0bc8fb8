// Package ask defines the yes/no oracle the replacer consults before each edit.
package ask

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"column79/internal/model"
)

// Asker answers a yes/no question. def is the answer taken on empty input.
type Asker interface {
	Ask(question string, def bool) (bool, error)
}

// Default answers every question with its default and performs no I/O.
// It backs the NOASK flag.
type Default struct{}

func (Default) Ask(_ string, def bool) (bool, error) { return def, nil }

// Func adapts a plain function to Asker.
type Func func(question string, def bool) (bool, error)

func (f Func) Ask(question string, def bool) (bool, error) { return f(question, def) }

// ParseAnswer interprets a typed answer. ok is false when the input is not
// recognized and the question must be asked again.
func ParseAnswer(input string, def bool) (answer, ok bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return def, true
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}

// Hint returns the "[Y/n]" style suffix for a default.
func Hint(def bool) string {
	if def {
		return "[Y/n]"
	}
	return "[y/N]"
}

// Reader asks on out and reads one answer per line from in.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReader returns a line-oriented Asker.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out}
}

// Ask prints the question until a recognized answer is read. End of input
// counts as an empty answer.
func (r *Reader) Ask(question string, def bool) (bool, error) {
	for {
		if _, err := fmt.Fprintf(r.out, "%s %s: ", question, Hint(def)); err != nil {
			return false, &model.Error{Kind: model.ErrIO, Op: "prompt", Question: question, Err: err}
		}
		line, err := r.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, &model.Error{Kind: model.ErrIO, Op: "read answer", Question: question, Err: err}
		}
		if answer, ok := ParseAnswer(line, def); ok {
			return answer, nil
		}
		if errors.Is(err, io.EOF) {
			return def, nil
		}
	}
}
