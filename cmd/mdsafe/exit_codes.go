package main

import (
	"errors"
	"os"

	mdsafe "github.com/alnah/go-mdsafe"
	"github.com/alnah/go-mdsafe/internal/assets"
	"github.com/alnah/go-mdsafe/internal/config"
	"github.com/alnah/go-mdsafe/internal/fileutil"
	"github.com/alnah/go-mdsafe/internal/highlight"
	"github.com/alnah/go-mdsafe/internal/hints"
	flag "github.com/spf13/pflag"
)

// Exit codes for the mdsafe CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error, or some files failed
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnresolvedLanguage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrInvalidExclude) ||
		errors.Is(err, fileutil.ErrNotMarkdown) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, mdsafe.ErrInvalidLanguageID) ||
		errors.Is(err, mdsafe.ErrDuplicateLanguage) ||
		errors.Is(err, mdsafe.ErrUnknownLanguage) ||
		errors.Is(err, mdsafe.ErrInvalidPolicy) ||
		errors.Is(err, mdsafe.ErrInvalidTabWidth) ||
		errors.Is(err, mdsafe.ErrUnknownHighlightStyle) ||
		errors.Is(err, mdsafe.ErrStyleNotFound) ||
		errors.Is(err, mdsafe.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		isFlagError(err) {
		return ExitUsage
	}

	return ExitGeneral
}

// isFlagError detects pflag parse failures, which are not wrapped sentinels.
func isFlagError(err error) bool {
	var notExist *flag.NotExistError
	var invalid *flag.InvalidValueError
	var missing *flag.ValueRequiredError
	var syntax *flag.InvalidSyntaxError
	return errors.As(err, &notExist) || errors.As(err, &invalid) || errors.As(err, &missing) || errors.As(err, &syntax)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var notFound *config.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Searched)
	case errors.Is(err, ErrNoInput):
		return hints.ForNoInput()
	case errors.Is(err, mdsafe.ErrUnknownHighlightStyle):
		return hints.ForStyleNotFound(highlight.StyleNames())
	case errors.Is(err, mdsafe.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().StyleNames())
	case errors.Is(err, mdsafe.ErrInvalidLanguageID),
		errors.Is(err, mdsafe.ErrDuplicateLanguage),
		errors.Is(err, mdsafe.ErrUnknownLanguage):
		return hints.ForLanguageTable()
	case errors.Is(err, mdsafe.ErrInvalidPolicy):
		return hints.ForInvalidPolicy()
	case errors.Is(err, mdsafe.ErrInvalidAssetPath):
		return hints.ForAssetPath()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
