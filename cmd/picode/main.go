// Command picode renders source code files to PNG images.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Subcommand names. Any other first argument is an input file.
const (
	cmdDoctor     = "doctor"
	cmdCompletion = "completion"
	cmdHelp       = "help"
)

func main() {
	env := DefaultEnv()

	// maxprocs.Set only fails on an invalid GOMAXPROCS; runtime defaults apply then
	configureMaxProcs(hasVerboseFlag(os.Args[1:]), env.Stderr)

	os.Exit(runMain(os.Args, env))
}

// configureMaxProcs sets GOMAXPROCS from the container CPU quota.
func configureMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// hasVerboseFlag reports whether args request verbose output, before flags
// are parsed.
func hasVerboseFlag(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}

// isCommand reports whether name is a subcommand.
func isCommand(name string) bool {
	switch name {
	case cmdDoctor, cmdCompletion, cmdHelp:
		return true
	}
	return false
}

// runMain dispatches args and returns the process exit code.
// args[0] is the program name.
func runMain(args []string, env *Environment) int {
	rest := args[1:]

	if len(rest) > 0 && isCommand(rest[0]) {
		return runCommand(rest[0], rest[1:], env)
	}

	flags, inputs, err := parseRenderFlags(rest)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(env.Stdout)
			return ExitSuccess
		}
		err = fmt.Errorf("%w: %v", ErrUsage, err)
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'picode --help' for usage.")
		return exitCodeFor(err)
	}

	if flags.info.version {
		fmt.Fprintf(env.Stdout, "picode %s\n", Version)
		return ExitSuccess
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runRender(ctx, inputs, flags, env); err != nil {
		return reportError(err, env)
	}
	return ExitSuccess
}

// runCommand runs a subcommand and returns the exit code.
func runCommand(name string, args []string, env *Environment) int {
	var err error
	switch name {
	case cmdDoctor:
		return runDoctorCmd(args, env)
	case cmdCompletion:
		err = runCompletion(args, env)
	case cmdHelp:
		err = runHelp(args, env)
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}
