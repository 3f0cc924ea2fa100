package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every run.
type commonFlags struct {
	config      string
	printConfig bool
	quiet       bool
	verbose     bool
	help        bool
	version     bool
}

// outputFlags holds output placement and concurrency flags.
type outputFlags struct {
	dir     string
	workers int
}

// watchFlags holds watch mode flags.
type watchFlags struct {
	enabled  bool
	debounce string
}

// styleFlags holds stylesheet flags.
type styleFlags struct {
	style     string // name, path or CSS content
	css       string // extra CSS file appended after the style
	assetPath string // custom asset directory
	noStyle   bool
}

// codeFlags holds code block flags.
type codeFlags struct {
	noHighlight bool
	collapse    bool
	theme       string
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	title     string
	depth     int
	backLinks bool
}

// cliFlags holds every parsed flag.
type cliFlags struct {
	common    commonFlags
	output    outputFlags
	watch     watchFlags
	style     styleFlags
	code      codeFlags
	toc       tocFlags
	allowHTML bool

	// changed records flags set on the command line, so zero values given
	// explicitly still override the config file.
	changed map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration and exit")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
	fs.BoolVar(&f.version, "version", false, "show version")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "output directory (default: docs/ next to each source)")
	fs.IntVarP(&f.workers, "workers", "j", 0, "parallel workers (0 = auto)")
}

// addWatchFlags adds watch mode flags to a FlagSet.
func addWatchFlags(fs *flag.FlagSet, f *watchFlags) {
	fs.BoolVarP(&f.enabled, "watch", "w", false, "re-convert inputs when they change")
	fs.StringVar(&f.debounce, "debounce", "", "quiet period before re-converting (e.g. 500ms)")
}

// addStyleFlags adds stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "style name, CSS file path or CSS content")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// addCodeFlags adds code block flags to a FlagSet.
func addCodeFlags(fs *flag.FlagSet, f *codeFlags) {
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable syntax highlighting of code")
	fs.BoolVar(&f.collapse, "collapse-code", false, "wrap code in collapsible blocks")
	fs.StringVar(&f.theme, "theme", "", "highlighting theme (chroma style name)")
}

// addTOCFlags adds table of contents flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.depth, "toc-depth", 0, "max heading depth listed (1-6, 0 = all)")
	fs.BoolVar(&f.backLinks, "toc-backlinks", false, "link headings back to the table of contents")
}

// newFlagSet builds the FlagSet bound to f.
func newFlagSet(f *cliFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("litdoc", flag.ContinueOnError)
	fs.SetOutput(usage)

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addWatchFlags(fs, &f.watch)
	addStyleFlags(fs, &f.style)
	addCodeFlags(fs, &f.code)
	addTOCFlags(fs, &f.toc)
	fs.BoolVar(&f.allowHTML, "allow-html", false, "pass raw HTML in documentation through")

	fs.Usage = func() { printUsage(usage) }
	return fs
}

// parseFlags parses command line arguments (without the program name) and
// returns the positional inputs.
func parseFlags(args []string, usage io.Writer) (*cliFlags, []string, error) {
	f := &cliFlags{changed: make(map[string]bool)}
	fs := newFlagSet(f, usage)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		f.changed[fl.Name] = true
	})

	return f, fs.Args(), nil
}
