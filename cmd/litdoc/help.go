package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: litdoc [flags] <file|dir|glob>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert document-style source files to standalone HTML.")
	fmt.Fprintln(w, "Documentation blocks open and close with \"\"\" at the start of a line.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  inputs    Files, directories or glob patterns (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: docs/ next to each source,")
	fmt.Fprintln(w, "                            src/x.py -> docs/x.html)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --print-config        Print the effective configuration as YAML and exit")
	fmt.Fprintln(w, "  -j, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "  -w, --watch               Re-convert inputs when they change")
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before re-converting (default 300ms)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file path or CSS content")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file appended after the style")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory (styles/<name>.css)")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Code:")
	fmt.Fprintln(w, "      --no-highlight        Disable syntax highlighting")
	fmt.Fprintln(w, "      --collapse-code       Wrap code in collapsible \"View code\" blocks")
	fmt.Fprintln(w, "      --theme <name>        Highlighting theme")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents (placed where [TOC] appears):")
	fmt.Fprintln(w, "      --toc-title <s>       TOC heading text")
	fmt.Fprintln(w, "      --toc-depth <n>       Max heading depth (1-6, 0 = all)")
	fmt.Fprintln(w, "      --toc-backlinks       Link headings back to the TOC")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --allow-html          Pass raw HTML in documentation through")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and debug logs")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w, "  -h, --help                Show this help")
}
