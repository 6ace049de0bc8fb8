package app

import (
	"io/fs"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"column79/internal/inspect"
	"column79/internal/model"
)

// Walk visits every regular file under root in lexical order and inspects
// the ones whose extension resolves to a language. Symbolic links are not
// followed. The first error aborts the walk unless KeepGoing is set, in which
// case every error is collected and returned together.
func (a *App) Walk(root string, insp inspect.Inspector) error {
	var errs *multierror.Error

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			err = model.IOError("walk", path, err)
			if !a.opts.KeepGoing {
				return err
			}
			errs = multierror.Append(errs, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		lang, ok := a.cfg.Lookup(path)
		if !ok {
			return nil
		}
		zap.L().Debug("walk", zap.String("language", lang.Name()), zap.String("path", path))

		if err := insp.Inspect(lang, path); err != nil {
			if !a.opts.KeepGoing {
				return err
			}
			zap.L().Warn("skipping file", zap.String("path", path), zap.Error(err))
			errs = multierror.Append(errs, err)
		}
		return nil
	})
	if walkErr != nil {
		return walkErr
	}
	return errs.ErrorOrNil()
}
