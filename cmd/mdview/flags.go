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

// viewFlags holds all flags for opening the viewer.
type viewFlags struct {
	common    commonFlags
	style     string
	noStyle   bool
	assetPath string
	workers   int
	noEffects bool
	addr      string
	highlight bool
	browser   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// parseViewFlags parses viewer flags and returns positional args.
func parseViewFlags(args []string, usage io.Writer) (*viewFlags, []string, error) {
	fs := flag.NewFlagSet("mdview", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &viewFlags{}

	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent renders (0 = auto)")
	fs.BoolVar(&f.noEffects, "no-effects", false, "disable the translucent window effect")
	fs.StringVar(&f.addr, "addr", "", "loopback address for the bridge server")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight code blocks")
	fs.StringVar(&f.browser, "browser", "", "Chrome/Chromium executable")

	fs.Usage = func() { printUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
