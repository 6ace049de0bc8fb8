package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the core unwraps to exactly one of these.
var (
	// ErrIO indicates a filesystem or stdio failure.
	ErrIO = errors.New("i/o error")

	// ErrConfigParse indicates a malformed TOML document.
	ErrConfigParse = errors.New("config parse error")

	// ErrConfigInvalid indicates a well-formed document that breaks a rule:
	// unknown base, cyclic base, duplicate language, missing selected language.
	ErrConfigInvalid = errors.New("invalid config")

	// ErrInspect indicates a runtime invariant failure while shaping a line.
	ErrInspect = errors.New("inspect error")

	// ErrDriver indicates a programmer error in command dispatch.
	ErrDriver = errors.New("driver error")

	// ErrLineRange indicates a request for a row the file does not have.
	ErrLineRange = errors.New("line out of range")
)

// Error carries enough context to locate a failure.
type Error struct {
	Kind     error  // One of the Err* kinds above
	Op       string // Operation that failed, e.g. "rename"
	Path     string // File involved, if any
	Row      int    // 1-based row, if any
	Question string // Prompt being answered, if any
	Err      error  // Underlying cause, may be nil
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
		if e.Row > 0 {
			fmt.Fprintf(&b, "(%d)", e.Row)
		}
	}
	if e.Question != "" {
		fmt.Fprintf(&b, ": %q", e.Question)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IOError wraps an OS error raised by op on path.
func IOError(op, path string, err error) error {
	return &Error{Kind: ErrIO, Op: op, Path: path, Err: err}
}

// InvalidConfig reports a rule violation in a configuration document.
func InvalidConfig(format string, args ...any) error {
	return &Error{Kind: ErrConfigInvalid, Op: fmt.Sprintf(format, args...)}
}
