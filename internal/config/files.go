package config

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"column79/internal/model"
)

// DefaultTOML is the packaged default document.
//
//go:embed default.toml
var DefaultTOML []byte

// UserTOML is the initial content of the user document.
//
//go:embed user.toml
var UserTOML []byte

const (
	dirName         = ".config"
	defaultFileName = "default.toml"
	userFileName    = "user.toml"
)

// Paths locates the per-user config files.
type Paths struct {
	Dir     string
	Default string
	User    string
}

// PathsFor returns <home>/.config/<program>/{default.toml,user.toml}.
func PathsFor(home, program string) Paths {
	dir := filepath.Join(home, dirName, program)
	return Paths{
		Dir:     dir,
		Default: filepath.Join(dir, defaultFileName),
		User:    filepath.Join(dir, userFileName),
	}
}

// UserPaths discovers the home directory and the program name of the running
// binary.
func UserPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, model.IOError("home directory", "", err)
	}
	program := model.ProgramName
	if exe, err := os.Executable(); err == nil {
		program = filepath.Base(exe)
	}
	return PathsFor(home, program), nil
}

// Bootstrap creates the config directory and writes any missing document
// with its packaged content.
func (p Paths) Bootstrap() error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return model.IOError("mkdir", p.Dir, err)
	}
	for _, f := range []struct {
		path string
		data []byte
	}{
		{p.Default, DefaultTOML},
		{p.User, UserTOML},
	} {
		if _, err := os.Stat(f.path); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return model.IOError("stat", f.path, err)
		}
		zap.L().Info("creating config", zap.String("path", f.path))
		if err := write(f.path, f.data); err != nil {
			return err
		}
	}
	return nil
}

// WriteDefault overwrites the default document with its packaged content.
func (p Paths) WriteDefault() error { return write(p.Default, DefaultTOML) }

// WriteUser overwrites the user document with its packaged content.
func (p Paths) WriteUser() error { return write(p.User, UserTOML) }

// Load reads the default document, overlays the user document and the
// overrides, and validates the result.
func (p Paths) Load(o Overrides) (*Config, error) {
	c, err := New(p.Default)
	if err != nil {
		return nil, err
	}
	if err := c.Import(p.User); err != nil {
		return nil, err
	}
	c.Apply(o)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return model.IOError("write config", path, err)
	}
	return nil
}
