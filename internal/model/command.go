package model

import "strings"

// Command is the action selected by the first positional argument.
type Command int

const (
	Unknown Command = iota
	Init
	Check
	Replace
)

// ParseCommand maps a command word to a Command, ignoring case.
// Anything unrecognized yields Unknown.
func ParseCommand(s string) Command {
	switch strings.ToLower(s) {
	case "init":
		return Init
	case "check":
		return Check
	case "replace":
		return Replace
	default:
		return Unknown
	}
}

func (c Command) String() string {
	switch c {
	case Init:
		return "init"
	case Check:
		return "check"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// Flags is the run-time option bitset.
type Flags uint8

const (
	// NoAsk never prompts; every question takes its default answer.
	NoAsk Flags = 1 << iota
)

// Has reports whether every bit of f2 is set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }
