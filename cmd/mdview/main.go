package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alnah/go-mdview"
	"github.com/alnah/go-mdview/internal/assets"
	"github.com/alnah/go-mdview/internal/config"
	"github.com/alnah/go-mdview/internal/hints"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// commands lists the subcommands recognized as the first argument.
var commands = map[string]bool{
	"doctor":  true,
	"version": true,
	"help":    true,
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return commands[arg]
}

// runMain dispatches to a subcommand or opens the viewer, returning an exit code.
func runMain(args []string, env *Environment) int {
	if len(args) > 1 && isCommand(args[1]) {
		switch args[1] {
		case "version":
			fmt.Fprintf(env.Stdout, "mdview %s\n", Version)
			return ExitSuccess
		case "help":
			runHelp(args[2:], env)
			return ExitSuccess
		case "doctor":
			return runDoctorCmd(args[2:], env)
		}
	}

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	flags, positional, err := parseViewFlags(rest, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
		if flags.common.verbose {
			fmt.Fprintf(env.Stderr, format+"\n", a...)
		}
	}))

	warnUnknownEnvVars(env.Stderr, env.Environ())

	program := "mdview"
	if len(args) > 0 {
		program = args[0]
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err = runView(ctx, program, positional, flags, env)
	code := exitCodeFor(err)
	if err != nil {
		fmt.Fprintln(env.Stderr, err.Error()+hintFor(err))
	}
	return code
}

// hintFor returns the hint text matching err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdview.ErrBrowserLaunch), errors.Is(err, mdview.ErrSurfaceMissing):
		return hints.ForBrowserLaunch() + hints.ForDoctor()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(config.DefaultName))
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	}
	return ""
}

// newLogger builds the diagnostic logger on w from the log config.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLevel maps a validated level name to a slog level. Empty means warn.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
