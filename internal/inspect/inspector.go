package inspect

import (
	"fmt"
	"io"
	"os"

	"column79/internal/language"
	"column79/internal/model"
)

// Inspector consumes one file that has been resolved to a language.
type Inspector interface {
	Inspect(lang *language.Language, path string) error
}

// Options are the column rules shared by every inspector.
type Options struct {
	Column    int // Target byte length of a line
	Threshold int // Minimum run that makes a comment body a separator
}

// Reporter receives what the inspectors find and do.
type Reporter interface {
	Violation(d model.Diagnostic)
	Committed(c model.Commit)
}

// TextReporter prints plain report lines.
type TextReporter struct {
	W io.Writer
}

// Violation prints d as "path(row): length : line".
func (r TextReporter) Violation(d model.Diagnostic) {
	fmt.Fprintln(r.W, d.String())
}

// Committed prints the backup and replaced paths of c.
func (r TextReporter) Committed(c model.Commit) {
	fmt.Fprintf(r.W, "* backup: %s\n", c.Backup)
	fmt.Fprintf(r.W, "* replace: %s\n", c.Path)
}

// Collector keeps everything reported, in order.
type Collector struct {
	Diagnostics []model.Diagnostic
	Commits     []model.Commit
}

// Violation records d.
func (c *Collector) Violation(d model.Diagnostic) { c.Diagnostics = append(c.Diagnostics, d) }

// Committed records cm.
func (c *Collector) Committed(cm model.Commit) { c.Commits = append(c.Commits, cm) }

// eachLine calls fn for every line of path in ascending row order, with
// trailing whitespace removed. It stops at the first error fn returns.
func eachLine(path string, fn func(row int, line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return model.IOError("open", path, err)
	}
	defer f.Close()

	scanner := model.NewLineScanner(f)
	row := 0
	for scanner.Scan() {
		row++
		if err := fn(row, model.TrimLine(scanner.Text())); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return model.IOError("read", path, err)
	}
	return nil
}

func diagnostic(lang *language.Language, path string, row int, s Shape, line string) model.Diagnostic {
	return model.Diagnostic{
		Path:     path,
		Row:      row,
		Length:   len(line),
		Line:     line,
		Language: lang.Name(),
		Shape:    s.Kind.String(),
	}
}
