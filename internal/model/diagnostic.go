package model

import "fmt"

// Diagnostic is a single out-of-policy line found by an inspector.
type Diagnostic struct {
	Path     string `json:"path"`     // File the line belongs to
	Row      int    `json:"row"`      // 1-based line number
	Length   int    `json:"length"`   // Byte length of the line
	Line     string `json:"line"`     // The line itself, trailing whitespace removed
	Language string `json:"language"` // Language the file was resolved to
	Shape    string `json:"shape"`    // Classifier shape, e.g. "line-separator"
}

// String renders the diagnostic as "path(row): length : line".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s(%d): %d : %s", d.Path, d.Row, d.Length, d.Line)
}

// Commit records a file rewritten by the replacer.
type Commit struct {
	Path   string `json:"path"`   // Rewritten file
	Backup string `json:"backup"` // Where the original was moved
	Edits  int    `json:"edits"`  // Number of transformed lines
}
