package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: toolbox <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Run the web toolbox (Markdown previewer, PDF merger)")
	fmt.Fprintln(w, "  render     Render a markdown file to HTML or PDF")
	fmt.Fprintln(w, "  merge      Merge PDF files in order")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'toolbox help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed output")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: toolbox serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the toolbox web UI until interrupted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -p, --port <n>            Listen port (default 8080)")
	fmt.Fprintln(w, "      --base-path <path>    URL prefix, e.g. /toolbox")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, warn, error")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export:")
	fmt.Fprintln(w, "      --pdf                 Enable markdown PDF export (needs Chrome)")
	fmt.Fprintln(w, "  -w, --workers <n>         Browser pool size (0 = auto)")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TOOLBOX_CONFIG, TOOLBOX_PORT, TOOLBOX_BASE_PATH, TOOLBOX_LOG_LEVEL,")
	fmt.Fprintln(w, "  TOOLBOX_PDF_EXPORT, TOOLBOX_WORKERS, TOOLBOX_TIMEOUT, TOOLBOX_STYLE,")
	fmt.Fprintln(w, "  TOOLBOX_ASSET_PATH")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: flags > environment > config file > defaults.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: toolbox render <input.md|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown to a sanitized HTML fragment. Use - to read stdin.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default stdout)")
	fmt.Fprintln(w, "      --standalone          Full HTML document with embedded styles")
	fmt.Fprintln(w, "      --pdf                 Print to PDF (needs Chrome, requires -o)")
	fmt.Fprintln(w, "      --copy                Copy the markdown source to the clipboard")
	fmt.Fprintln(w, "      --title <s>           Document title")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name>        Syntax highlight style (default github)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF export timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printMergeUsage prints usage for the merge command.
func printMergeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: toolbox merge <a.pdf> <b.pdf> [more.pdf...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Concatenate the pages of PDF files in argument order.")
	fmt.Fprintln(w, "Files that are not valid PDF documents are skipped with a warning.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default "+defaultMergeOutput+")")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel validation workers (0 = auto)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command. It reports false for an
// unknown command.
func runHelp(args []string, env *Environment) bool {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return true
	}

	switch args[0] {
	case "serve":
		printServeUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "merge":
		printMergeUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: toolbox version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: toolbox help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return false
	}
	return true
}
