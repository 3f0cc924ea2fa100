// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound suggests --config and the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Only the user config directory is worth suggesting; the working
	// directory candidate is already implied by --config.
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/litdoc/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the built-in styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForNoInputs explains which files are picked up from directories.
func ForNoInputs(extensions []string) string {
	if len(extensions) == 0 {
		return format("pass files, directories or glob patterns")
	}
	return format("directories are scanned for " + strings.Join(extensions, ", ") + " files")
}

// ForMalformedFence reminds how documentation blocks are delimited.
func ForMalformedFence(docFence string) string {
	return format("documentation blocks open and close with " + docFence + " at the start of a line")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
