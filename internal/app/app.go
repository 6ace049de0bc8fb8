// Package app runs one column79 command: it loads the layered config, walks
// the input tree, and hands every recognized file to an inspector.
package app

import (
	"io"
	"os"

	"go.uber.org/zap"

	"column79/internal/ask"
	"column79/internal/config"
	"column79/internal/inspect"
	"column79/internal/model"
	"column79/internal/tui"
)

// QuestionOverwriteUser is asked by init when a user config already exists.
const QuestionOverwriteUser = "Do you want to overwrite your user config?"

// Options select what one run does.
type Options struct {
	Command   model.Command
	Input     string           // Root directory or single file
	Overrides config.Overrides // Command-line settings
	KeepGoing bool             // Continue past per-file errors

	In          io.Reader
	Out         io.Writer
	Interactive bool // In and Out are a terminal
}

// App is a loaded configuration ready to run a command.
type App struct {
	opts  Options
	paths config.Paths
	cfg   *config.Config
}

// New creates any missing config files under paths and loads them.
func New(paths config.Paths, opts Options) (*App, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if err := paths.Bootstrap(); err != nil {
		return nil, err
	}
	cfg, err := paths.Load(opts.Overrides)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("config loaded",
		zap.String("language", cfg.Language),
		zap.Int("column", cfg.Column),
		zap.Int("separator_threshold", cfg.SeparatorThreshold),
		zap.Bool("no_ask", cfg.Flags.Has(model.NoAsk)),
		zap.Strings("languages", cfg.Languages.Names()))
	return &App{opts: opts, paths: paths, cfg: cfg}, nil
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Input returns the root the commands walk.
func (a *App) Input() string { return a.opts.Input }

// Run dispatches the selected command.
func (a *App) Run() error {
	switch a.opts.Command {
	case model.Init:
		return a.Init()
	case model.Check:
		return a.Check(a.Reporter())
	case model.Replace:
		return a.Replace(a.Reporter(), a.Asker())
	default:
		return &model.Error{Kind: model.ErrDriver, Op: "run " + a.opts.Command.String()}
	}
}

// Reporter prints to the configured output, styled on a terminal.
func (a *App) Reporter() inspect.Reporter {
	if a.opts.Interactive {
		return tui.Reporter{W: a.opts.Out}
	}
	return inspect.TextReporter{W: a.opts.Out}
}

// Asker returns the oracle for replace and init questions. With NOASK set it
// never reads input.
func (a *App) Asker() ask.Asker {
	switch {
	case a.cfg.Flags.Has(model.NoAsk):
		return ask.Default{}
	case a.opts.Interactive:
		return tui.NewPrompt(a.opts.In, a.opts.Out)
	default:
		return ask.NewReader(a.opts.In, a.opts.Out)
	}
}

// Check reports every out-of-policy line under the input.
func (a *App) Check(rep inspect.Reporter) error {
	return a.Walk(a.opts.Input, inspect.NewChecker(a.cfg.InspectOptions(), rep))
}

// Replace rewrites out-of-policy lines under the input, asking asker first.
func (a *App) Replace(rep inspect.Reporter, asker ask.Asker) error {
	return a.Walk(a.opts.Input, inspect.NewReplacer(a.cfg.InspectOptions(), asker, rep))
}

// Init rewrites the default config and, when confirmed, the user config.
func (a *App) Init() error {
	if err := a.paths.WriteDefault(); err != nil {
		return err
	}
	if _, err := os.Stat(a.paths.User); err != nil {
		return a.paths.WriteUser()
	}
	overwrite, err := a.Asker().Ask(QuestionOverwriteUser, false)
	if err != nil {
		return err
	}
	if overwrite {
		return a.paths.WriteUser()
	}
	return nil
}
