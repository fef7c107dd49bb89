// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// configDirName is the directory searched under the user config dir.
const configDirName = "go-mdsafe"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if filepath.Base(filepath.Dir(p)) == configDirName {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNoInput returns the hint shown when neither a path nor piped input
// was given.
func ForNoInput() string {
	return format("pass a file or directory, pipe markdown on stdin, or set input.defaultDir")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the styles that do exist.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnknownLanguage suggests known ids that share a prefix with token.
func ForUnknownLanguage(token string, known []string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return ""
	}

	var close []string
	for _, id := range known {
		if strings.HasPrefix(id, token[:1]) && (strings.HasPrefix(id, token) || strings.HasPrefix(token, id)) {
			close = append(close, id)
		}
	}
	if len(close) == 0 {
		return format("run 'mdsafe langs' to list languages, or add it under languages.custom")
	}
	return format("did you mean: " + strings.Join(close, ", "))
}

// ForLanguageTable explains the naming rules for custom languages.
func ForLanguageTable() string {
	return format("ids and aliases cannot be empty or contain spaces; each alias must name a declared id, and no name may be used twice")
}

// ForInvalidPolicy explains the naming rules for sanitize lists.
func ForInvalidPolicy() string {
	return format("sanitize lists take plain names such as img or data-line")
}

// ForAssetPath describes the expected asset directory layout.
func ForAssetPath() string {
	return format("asset directory should contain styles/<name>.css and/or templates/document.html")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
