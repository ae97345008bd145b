package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	md2tufte "github.com/alnah/go-md2tufte"
	"github.com/alnah/go-md2tufte/internal/config"
	"github.com/alnah/go-md2tufte/internal/hints"
)

// run dispatches a command and returns the process exit code.
func run(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env)

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "convert", "watch", "serve":
		return runDocumentCmd(cmd, rest, env)
	case "passes":
		printPasses(env.Stdout)
		return ExitSuccess
	case "styles":
		return report(env, runStylesCmd(rest, env))
	case "config":
		return report(env, runConfigCmd(rest, env))
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		return report(env, runCompletion(rest, env))
	case "version", "--version", "-V":
		fmt.Fprintf(env.Stdout, "md2tufte %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runDocumentCmd parses flags shared by convert, watch and serve, then runs
// the command under a signal-aware context.
func runDocumentCmd(cmd string, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(cmd, args)
	if err != nil {
		if errors.Is(err, errHelpRequested) {
			runHelp([]string{cmd}, env)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "%s: %v\n", cmd, err)
		return ExitUsage
	}

	logger := newLogger(env, flags.common)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	switch cmd {
	case "watch":
		err = runWatch(ctx, positional, flags, env, logger)
	case "serve":
		err = runServe(ctx, positional, flags, env, logger)
	default:
		err = runConvert(ctx, positional, flags, env, logger)
	}
	return report(env, err)
}

// newLogger builds the CLI logger: warnings by default, debug with
// --verbose, errors only with --quiet.
func newLogger(env *Environment, f commonFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level}))
}

// report prints err with any matching hint and returns its exit code.
func report(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// hintFor picks an actionable hint for well-known failures.
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2tufte.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, md2tufte.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(strings.Split(err.Error(), ", "))
	case errors.Is(err, md2tufte.ErrStyleNotFound):
		return hints.ForStyleNotFound(md2tufte.StyleNames())
	case errors.Is(err, md2tufte.ErrUnknownPass):
		names := make([]string, 0, len(md2tufte.Passes()))
		for _, p := range md2tufte.Passes() {
			names = append(names, p.Name)
		}
		return hints.ForUnknownPass(names)
	case errors.Is(err, md2tufte.ErrUnresolvedReference):
		return hints.ForUnresolvedReference()
	case errors.Is(err, md2tufte.ErrAmbiguousKey):
		return hints.ForAmbiguousKey()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
