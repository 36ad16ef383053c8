// Package cli implements the formcheck command: list form definitions,
// evaluate a value file against one, or walk a user through it interactively.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goliatone/go-formcheck/internal/logging"
	"github.com/goliatone/go-formcheck/pkg/formdef"
	"github.com/goliatone/go-formcheck/pkg/tui"
)

// Exit codes returned by App.Run.
const (
	ExitOK      = 0
	ExitInvalid = 1
	ExitUsage   = 2
	ExitFailure = 3
	ExitAborted = 130
)

const (
	defaultForm   = "registration"
	defaultDotenv = ".env"
)

// App wires the command to its IO. Zero values fall back to the process
// environment and the survey prompt driver.
type App struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Environ map[string]string
	Driver  tui.PromptDriver
}

type options struct {
	form      string
	defs      string
	openapi   string
	schema    string
	values    string
	output    string
	envFile   string
	logLevel  string
	logFormat string
	list      bool
	reveal    bool
}

// Run executes the command with args (without the program name) and returns
// the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	stdout, stderr := a.Stdout, a.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	opts, set, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	environ := a.Environ
	if environ == nil {
		environ = ProcessEnv()
	}
	cfg, err := LoadConfig(opts.envFile, environ)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	applyFlags(&cfg, opts, set)

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	format, err := tui.ParseOutputFormat(cfg.Output)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	store, err := loadStore(cfg.DefsDir)
	if err != nil {
		logger.Error("load form definitions", slog.String("dir", cfg.DefsDir), slog.Any("error", err))
		return ExitFailure
	}
	logger.Debug("form definitions loaded", slog.Int("count", len(store.IDs())))

	if opts.list {
		return listForms(stdout, store)
	}

	def, err := resolveDefinition(ctx, store, opts)
	if err != nil {
		logger.Error("resolve form", slog.Any("error", err))
		return ExitUsage
	}
	logger = logger.With(slog.String("form", def.ID))

	if opts.values != "" {
		return a.runBatch(stdout, logger, def, opts.values, format)
	}
	return a.runInteractive(ctx, stdout, stderr, logger, def, format, opts.reveal)
}

func parseFlags(args []string, stderr io.Writer) (options, map[string]bool, error) {
	var opts options
	fs := flag.NewFlagSet("formcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.form, "form", defaultForm, "form id to run")
	fs.StringVar(&opts.defs, "defs", "", "directory of extra form definitions (json/yaml)")
	fs.StringVar(&opts.openapi, "openapi", "", "OpenAPI document to derive the form from")
	fs.StringVar(&opts.schema, "schema", "", "components.schemas entry used with -openapi")
	fs.StringVar(&opts.values, "values", "", "evaluate a json/yaml value file instead of prompting")
	fs.StringVar(&opts.output, "output", "", "output format: json, pretty or form")
	fs.StringVar(&opts.envFile, "env", defaultDotenv, "dotenv file to load")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	fs.BoolVar(&opts.list, "list", false, "list available forms and exit")
	fs.BoolVar(&opts.reveal, "reveal", false, "print password values instead of a mask")
	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return options{}, nil, errors.New("cli: unexpected arguments")
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return opts, set, nil
}

func applyFlags(cfg *Config, opts options, set map[string]bool) {
	if set["output"] {
		cfg.Output = opts.output
	}
	if set["defs"] {
		cfg.DefsDir = opts.defs
	}
	if set["log-level"] {
		cfg.LogLevel = opts.logLevel
	}
	if set["log-format"] {
		cfg.LogFormat = opts.logFormat
	}
}

func newLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.New(
		logging.WithOutput(w),
		logging.WithLevel(level),
		logging.WithFormat(format),
	), nil
}

func loadStore(dir string) (*formdef.Store, error) {
	builtin, err := formdef.Builtin()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return builtin, nil
	}
	extra, err := formdef.LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	return builtin.Merge(extra)
}

func resolveDefinition(ctx context.Context, store *formdef.Store, opts options) (formdef.Definition, error) {
	if opts.openapi == "" {
		return store.Get(opts.form)
	}
	if opts.schema == "" {
		return formdef.Definition{}, errors.New("cli: -schema is required with -openapi")
	}
	raw, err := os.ReadFile(opts.openapi)
	if err != nil {
		return formdef.Definition{}, fmt.Errorf("cli: read openapi document: %w", err)
	}
	return formdef.FromOpenAPI(ctx, raw, opts.schema)
}

func listForms(w io.Writer, store *formdef.Store) int {
	for _, id := range store.IDs() {
		def, _ := store.Get(id)
		fmt.Fprintf(w, "%s\t%s\t%d fields\n", id, def.DisplayTitle(), len(def.Fields))
	}
	return ExitOK
}

func (a *App) runBatch(stdout io.Writer, logger *slog.Logger, def formdef.Definition, path string, format tui.OutputFormat) int {
	raw, err := readValues(path)
	if err != nil {
		logger.Error("read values", slog.Any("error", err))
		return ExitFailure
	}
	rep, err := evaluate(def, raw)
	if err != nil {
		logger.Error("build form", slog.Any("error", err))
		return ExitFailure
	}
	if err := writeReport(stdout, def, rep, format); err != nil {
		logger.Error("write report", slog.Any("error", err))
		return ExitFailure
	}
	logger.Info("form evaluated", slog.Bool("valid", rep.Valid), slog.Int("failing", len(rep.Errors)))
	if !rep.Valid {
		return ExitInvalid
	}
	return ExitOK
}

func (a *App) runInteractive(ctx context.Context, stdout, stderr io.Writer, logger *slog.Logger, def formdef.Definition, format tui.OutputFormat, reveal bool) int {
	driver := a.Driver
	if driver == nil {
		driver = tui.NewSurveyDriver(stderr)
	}
	session := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(format),
		tui.WithRevealSecrets(reveal),
		tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
	)

	logger.Debug("session started")
	payload, err := session.Run(ctx, def)
	switch {
	case err == nil:
	case errors.Is(err, tui.ErrAborted), errors.Is(err, context.Canceled):
		logger.Info("session aborted")
		return ExitAborted
	case errors.Is(err, tui.ErrRejected):
		logger.Info("form rejected", slog.Any("error", err))
		return ExitInvalid
	default:
		logger.Error("session failed", slog.Any("error", err))
		return ExitFailure
	}

	if _, err := stdout.Write(payload); err != nil {
		logger.Error("write output", slog.Any("error", err))
		return ExitFailure
	}
	if format != tui.OutputFormatPrettyText {
		fmt.Fprintln(stdout)
	}
	logger.Debug("form submitted", slog.String("content_type", session.ContentType()))
	return ExitOK
}
