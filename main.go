package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"column79/internal/app"
	"column79/internal/config"
	"column79/internal/inspect"
	"column79/internal/model"
	"column79/internal/web"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "hanepjiv",
		Repository: model.ProgramName,
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		zap.L().Debug("update check failed", zap.Error(err))
		return
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Printf("👉 Download it from https://github.com/%s/%s/releases\n", githubTag.Owner, githubTag.Repository)
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func setupLogger(debug bool) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = !debug
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return
	}
	zap.ReplaceGlobals(logger)
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s COMMAND [INPUT] [options]\n\n", model.ProgramName)
		fmt.Fprintf(os.Stderr, "%s keeps source lines within a column.\n", model.ProgramName)
		fmt.Fprintf(os.Stderr, "INPUT is a directory (default: current directory) or a single file.\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  init      Rewrite the default config (asks before replacing user.toml)\n")
		fmt.Fprintf(os.Stderr, "  check     Report lines that break the column rule\n")
		fmt.Fprintf(os.Stderr, "  replace   Rewrite those lines, keeping a .backup of each changed file\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s check                # Check the current directory\n", model.ProgramName)
		fmt.Fprintf(os.Stderr, "  %s check -c 100 -l all  # Any known language, 100 columns\n", model.ProgramName)
		fmt.Fprintf(os.Stderr, "  %s replace --no-ask src # Apply every default edit under src\n", model.ProgramName)
		fmt.Fprintf(os.Stderr, "  %s check -w :8080       # Browse the report\n", model.ProgramName)
	}

	columnFlag := pflag.IntP("column", "c", 0, "Column to enforce (default from config)")
	thresholdFlag := pflag.IntP("threshold", "t", 0, "Separator threshold (default from config)")
	languageFlag := pflag.StringP("language", "l", "", "Language to select (default from config)")
	noAskFlag := pflag.Bool("no-ask", false, "Take the default answer for every question")
	keepGoingFlag := pflag.BoolP("keep-going", "k", false, "Continue after a failing file and report all errors at the end")
	jsonFlag := pflag.BoolP("json", "j", false, "Print check diagnostics as JSON")
	webFlag := pflag.StringP("web", "w", "", "Serve the check report over HTTP on `ADDR`")
	debugFlag := pflag.Bool("debug", false, "Enable debug logging")
	versionFlag := pflag.BoolP("version", "v", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for a newer release")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	setupLogger(*debugFlag)
	defer zap.L().Sync()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("%s version %s\n", model.ProgramName, model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	args := pflag.Args()
	if len(args) == 0 || len(args) > 2 {
		pflag.Usage()
		return
	}
	cmd := model.ParseCommand(args[0])
	if cmd == model.Unknown {
		pflag.Usage()
		return
	}
	input := "."
	if len(args) == 2 {
		input = args[1]
	}
	if (*jsonFlag || *webFlag != "") && cmd != model.Check {
		fmt.Fprintf(os.Stderr, "Error: --json and --web apply to check only\n")
		os.Exit(1)
	}

	overrides := config.Overrides{Language: *languageFlag}
	// An explicit -c 0 must reach Validate, so only changed flags override.
	if pflag.CommandLine.Changed("column") {
		overrides.Column = columnFlag
	}
	if pflag.CommandLine.Changed("threshold") {
		overrides.SeparatorThreshold = thresholdFlag
	}
	if *noAskFlag {
		overrides.Flags |= model.NoAsk
	}

	if err := run(cmd, input, overrides, *keepGoingFlag, *jsonFlag, *webFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd model.Command, input string, o config.Overrides, keepGoing, asJSON bool, webAddr string) error {
	paths, err := config.UserPaths()
	if err != nil {
		return err
	}

	a, err := app.New(paths, app.Options{
		Command:     cmd,
		Input:       input,
		Overrides:   o,
		KeepGoing:   keepGoing,
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: isTerminal(os.Stdin) && isTerminal(os.Stdout),
	})
	if err != nil {
		return err
	}

	switch {
	case webAddr != "":
		return web.NewServer(a).ListenAndServe(webAddr)
	case asJSON:
		return runJSONMode(a)
	default:
		return a.Run()
	}
}

func runJSONMode(a *app.App) error {
	var c inspect.Collector
	checkErr := a.Check(&c)

	diags := c.Diagnostics
	if diags == nil {
		diags = []model.Diagnostic{}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(diags); err != nil {
		return errors.Join(checkErr, model.IOError("encode", "stdout", err))
	}
	return checkErr
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
