package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// maxprocs.Set only fails on an invalid GOMAXPROCS env value, in which
	// case the runtime default stays in place.
	if hasVerboseFlag(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, env)
	stop()
	os.Exit(code)
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches to a command and maps its error to an exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr)

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "serve":
		err = runServe(ctx, rest, env)
	case "render":
		err = runRender(ctx, rest, env)
	case "merge":
		err = runMerge(ctx, rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "go-toolbox %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		if !runHelp(rest, env) {
			return ExitUsage
		}
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}
