package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS env value, in which
	// case the runtime default applies.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args[1] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())

	ctx, stop := interruptContext(context.Background())
	defer stop()

	command, rest := args[1], args[2:]
	var err error
	switch command {
	case "build":
		err = runBuild(ctx, rest, env)
	case "check":
		err = runCheck(ctx, rest, env)
	case "watch":
		err = runWatch(ctx, rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2site %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", command)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		runHelp([]string{command}, env)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, rootFromArgs(rest, env)))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// rootFromArgs recovers the site root for hints after a failed command.
func rootFromArgs(args []string, env *Environment) string {
	f := &buildFlags{}
	fs := newFlagSet("build", f)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	_ = fs.Parse(args)
	applyEnvConfig(loadEnvConfig(env.Getenv), fs, f)
	return f.common.root
}
