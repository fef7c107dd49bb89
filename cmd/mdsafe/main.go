package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for an unrecognized subcommand.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// run dispatches to a subcommand and maps its error to an exit code.
// A bare path argument is shorthand for "render <path>".
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "render":
		err = runRender(ctx, rest, env, "")
	case "text":
		err = runRender(ctx, rest, env, formatText)
	case "langs":
		err = runLangs(rest, env)
	case "css":
		err = runCSS(rest, env)
	case "config":
		err = runConfig(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdsafe %s\n", Version)
	case "help", "-h", "--help":
		err = runHelp(rest, env)
	default:
		if cmd == stdinArg || (!strings.HasPrefix(cmd, "-") && looksLikeInput(cmd)) {
			err = runRender(ctx, args, env, "")
			break
		}
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	if errors.Is(err, ErrUnknownCommand) {
		printUsage(env.Stderr)
	}
	return exitCodeFor(err)
}

// looksLikeInput reports whether a non-command argument names an existing
// file or directory, or stdin.
func looksLikeInput(arg string) bool {
	if arg == stdinArg {
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}
