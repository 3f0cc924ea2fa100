package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	litdoc "github.com/alnah/go-litdoc"
	"github.com/alnah/go-litdoc/internal/config"
)

// Exit codes for the litdoc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every file converted
	ExitGeneral = 1 // Conversion failures or unexpected errors
	ExitUsage   = 2 // Invalid flags, config, or options
	ExitIO      = 3 // Missing inputs, unreadable or unwritable files
)

// exitCodeFor returns the exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMatch) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteHTML) {
		return ExitIO
	}

	if errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrOutputConflict) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, litdoc.ErrInvalidTOCDepth) ||
		errors.Is(err, litdoc.ErrInvalidFence) ||
		errors.Is(err, litdoc.ErrStyleNotFound) ||
		errors.Is(err, litdoc.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
