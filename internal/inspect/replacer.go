package inspect

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"column79/internal/ask"
	"column79/internal/language"
	"column79/internal/model"
)

// Questions asked by the replacer. Every one defaults to yes.
const (
	QuestionShrink        = "* shrink?"
	QuestionExpand        = "* expand?"
	QuestionConvert       = "* convert to line comment?"
	QuestionConvertShrink = "* convert to line comment with shrink?"
	QuestionConvertExpand = "* convert to line comment with expand?"
)

// BackupSuffix is appended to the full file name of a replaced file.
const BackupSuffix = ".backup"

// Replacer rewrites out-of-policy lines after asking for each edit.
type Replacer struct {
	opts     Options
	asker    ask.Asker
	reporter Reporter
}

// NewReplacer returns a Replacer that asks asker before every edit.
func NewReplacer(opts Options, asker ask.Asker, reporter Reporter) *Replacer {
	return &Replacer{opts: opts, asker: asker, reporter: reporter}
}

// BackupPath returns where the original of path is kept: path with
// ".backup" appended to its extension. Paths without an extension have no
// backup path.
func BackupPath(path string) (string, error) {
	if language.Extension(path) == "" {
		return "", &model.Error{Kind: model.ErrInspect, Op: "backup path", Path: path, Err: errors.New("file has no extension")}
	}
	return path + BackupSuffix, nil
}

// Inspect streams the rewritten file into a temp file next to path. When at
// least one line changed, the original is moved to its backup path and the
// temp file takes its place; otherwise nothing on disk changes.
func (r *Replacer) Inspect(lang *language.Language, path string) error {
	backup, err := BackupPath(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return model.IOError("stat", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return model.IOError("create temp", path, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)
	edits := 0
	err = eachLine(path, func(row int, line string) error {
		out := line
		s := Classify(lang, r.opts.Threshold, line)
		if !InPolicy(s, lang, r.opts.Column, line) {
			r.reporter.Violation(diagnostic(lang, path, row, s, line))
			shaped, changed, err := r.decide(lang, path, row, s, line)
			if err != nil {
				return err
			}
			if changed {
				out = shaped
				edits++
			}
		}
		if _, err := w.WriteString(out); err != nil {
			return model.IOError("write temp", tmpPath, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return model.IOError("write temp", tmpPath, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if edits == 0 {
		return nil
	}

	if err := w.Flush(); err != nil {
		return model.IOError("flush temp", tmpPath, err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return model.IOError("chmod temp", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return model.IOError("close temp", tmpPath, err)
	}
	if err := os.Rename(path, backup); err != nil {
		return model.IOError("rename to backup", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return model.IOError("rename temp", path, err)
	}
	committed = true

	zap.L().Debug("replaced", zap.String("path", path), zap.Int("edits", edits))
	r.reporter.Committed(model.Commit{Path: path, Backup: backup, Edits: edits})
	return nil
}

// decide asks the questions for one out-of-policy line in order and applies
// the first accepted edit. changed is false when every question is declined.
func (r *Replacer) decide(lang *language.Language, path string, row int, s Shape, line string) (shaped string, changed bool, err error) {
	column := r.opts.Column
	n := len(line)
	hasLine := lang.HasLineComment()

	type step struct {
		question string
		shape    func() (string, error)
	}
	var steps []step

	switch s.Kind {
	case LineComment, Other:
		steps = []step{{QuestionShrink, func() (string, error) { return shrink(line, column) }}}

	case LineSeparator:
		if n > column {
			steps = []step{{QuestionShrink, func() (string, error) { return shrink(line, column) }}}
		} else {
			steps = []step{{QuestionExpand, func() (string, error) { return expand(line, s.Body, column) }}}
		}

	case BlockComment:
		// Asked even without a line form; an accepted answer then keeps the line.
		steps = []step{{QuestionConvert, func() (string, error) { return makeLine(lang, s) }}}

	case BlockSeparator:
		convert := func() (string, error) { return makeLineSeparator(lang, s, column) }
		reshape := func() (string, error) { return reshapeBlock(s, column) }
		switch {
		case n == column:
			if hasLine {
				steps = []step{{QuestionConvert, convert}}
			}
		case n > column:
			if hasLine {
				steps = append(steps, step{QuestionConvertShrink, convert})
			}
			steps = append(steps, step{QuestionShrink, reshape})
		default:
			if hasLine {
				steps = append(steps, step{QuestionConvertExpand, convert})
			}
			steps = append(steps, step{QuestionExpand, reshape})
		}
	}

	for _, st := range steps {
		yes, err := r.asker.Ask(st.question, true)
		if err != nil {
			return "", false, &model.Error{Kind: model.ErrIO, Op: "ask", Path: path, Row: row, Question: st.question, Err: err}
		}
		if !yes {
			continue
		}
		out, err := st.shape()
		if errors.Is(err, errNoLineForm) {
			zap.L().Warn("no line comment form, keeping line",
				zap.String("path", path), zap.Int("row", row), zap.String("language", lang.Name()))
			return line, false, nil
		}
		if err != nil {
			return "", false, &model.Error{Kind: model.ErrInspect, Op: s.Kind.String(), Path: path, Row: row, Question: st.question, Err: err}
		}
		return out, true, nil
	}
	return line, false, nil
}
