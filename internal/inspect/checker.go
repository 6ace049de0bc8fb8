package inspect

import (
	"go.uber.org/zap"

	"column79/internal/language"
)

// Checker reports out-of-policy lines and never modifies files.
type Checker struct {
	opts     Options
	reporter Reporter
}

// NewChecker returns a Checker that sends every violation to reporter.
func NewChecker(opts Options, reporter Reporter) *Checker {
	return &Checker{opts: opts, reporter: reporter}
}

// Inspect reports each out-of-policy line of path in row order.
func (c *Checker) Inspect(lang *language.Language, path string) error {
	violations := 0
	err := eachLine(path, func(row int, line string) error {
		s := Classify(lang, c.opts.Threshold, line)
		if !InPolicy(s, lang, c.opts.Column, line) {
			violations++
			c.reporter.Violation(diagnostic(lang, path, row, s, line))
		}
		return nil
	})
	zap.L().Debug("checked", zap.String("path", path), zap.String("language", lang.Name()), zap.Int("violations", violations))
	return err
}
