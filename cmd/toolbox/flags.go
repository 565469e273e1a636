package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// serveFlags holds flags for the serve command.
// Zero values mean "not set" so config and environment values survive.
type serveFlags struct {
	common   commonFlags
	port     int
	basePath string
	pdf      bool
	workers  int
	logLevel string
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common     commonFlags
	output     string
	standalone bool
	pdf        bool
	copy       bool
	style      string
	assetPath  string
	timeout    string
	title      string
}

// mergeFlags holds flags for the merge command.
type mergeFlags struct {
	common  commonFlags
	output  string
	workers int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
}

// newFlagSet returns a FlagSet whose usage goes to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, w io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", w, printServeUsage)

	fs.IntVarP(&f.port, "port", "p", 0, "listen port (default 8080)")
	fs.StringVar(&f.basePath, "base-path", "", "URL prefix, e.g. /toolbox")
	fs.BoolVar(&f.pdf, "pdf", false, "enable markdown PDF export (needs Chrome)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "browser pool size for PDF export (0 = auto)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.BoolVar(&f.standalone, "standalone", false, "wrap the fragment in a full HTML document")
	fs.BoolVar(&f.pdf, "pdf", false, "print the document to PDF (needs Chrome)")
	fs.BoolVar(&f.copy, "copy", false, "copy the markdown source to the clipboard")
	fs.StringVar(&f.style, "style", "", "syntax highlight style")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g. 30s, 2m)")
	fs.StringVar(&f.title, "title", "", "document title for standalone and PDF output")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseMergeFlags parses merge command flags and returns positional args.
func parseMergeFlags(args []string, w io.Writer) (*mergeFlags, []string, error) {
	f := &mergeFlags{}
	fs := newFlagSet("merge", w, printMergeUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file (default "+defaultMergeOutput+")")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel validation workers (0 = auto)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
