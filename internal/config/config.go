package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsafe/internal/fileutil"
	"github.com/alnah/go-mdsafe/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxStyleNameLength   = 64  // page or chroma style
	MaxLanguageIDLength  = 64  // canonical id or alias
	MaxDisplayNameLength = 100 // language label
	MaxLangTagLength     = 35  // BCP 47 tag for <html lang>
	MaxTitleLength       = 200 // document <title>
	MaxNameLength        = 64  // tag or attribute name in sanitize lists
	MaxListLength        = 256 // entries in any one list
)

// Output formats.
const (
	FormatFragment = "fragment" // sanitized HTML fragment
	FormatDocument = "document" // standalone HTML page
	FormatText     = "text"     // plain text
)

// Tab width bounds accepted by the renderer.
const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// Config holds all configuration for rendering.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	CSS       CSSConfig       `yaml:"css"`
	Highlight HighlightConfig `yaml:"highlight"`
	Languages LanguagesConfig `yaml:"languages"`
	Sanitize  SanitizeConfig  `yaml:"sanitize"`
	Assets    AssetsConfig    `yaml:"assets"`
	Document  DocumentConfig  `yaml:"document"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Exclude    []string `yaml:"exclude"`    // Globs skipped when walking a directory
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Format     string `yaml:"format"`     // fragment, document, text (default: fragment)
}

// CSSConfig defines page styling for standalone documents.
type CSSConfig struct {
	Style string `yaml:"style"` // Built-in or asset-path style name (empty = default)
	File  string `yaml:"file"`  // Extra CSS file appended after the style
}

// HighlightConfig defines code highlighting options.
type HighlightConfig struct {
	Disabled bool   `yaml:"disabled"` // Render code blocks as escaped text
	Style    string `yaml:"style"`    // chroma style for the stylesheet (empty = github)
	TabWidth int    `yaml:"tabWidth"` // 1-16 (0 = default)
}

// LanguagesConfig extends the built-in language table.
type LanguagesConfig struct {
	Custom  []LanguageEntry   `yaml:"custom"`
	Aliases map[string]string `yaml:"aliases"` // alias -> canonical id
}

// LanguageEntry declares an extra canonical language.
type LanguageEntry struct {
	ID          string   `yaml:"id"`
	DisplayName string   `yaml:"displayName"`
	Lexer       string   `yaml:"lexer"`   // chroma lexer (empty = id)
	Aliases     []string `yaml:"aliases"` // shorthand for languages.aliases
}

// SanitizeConfig tightens or relaxes the default allow-list. Lists add to
// the built-in defaults; they never remove from them.
type SanitizeConfig struct {
	ForbidTags          []string `yaml:"forbidTags"`
	ForbidAttributes    []string `yaml:"forbidAttributes"`
	AllowAttributes     []string `yaml:"allowAttributes"`
	AllowDataAttributes bool     `yaml:"allowDataAttributes"`
	NewTabLinks         bool     `yaml:"newTabLinks"` // target="_blank" on absolute links
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DocumentConfig defines standalone document metadata.
type DocumentConfig struct {
	Title string `yaml:"title"` // Empty = first heading
	Lang  string `yaml:"lang"`  // Empty = "en"
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	paths := map[string]string{
		"input.defaultDir":  c.Input.DefaultDir,
		"output.defaultDir": c.Output.DefaultDir,
		"css.file":          c.CSS.File,
		"assets.basePath":   c.Assets.BasePath,
	}
	for field, value := range paths {
		if err := validateFieldLength(field, value, MaxPathLength); err != nil {
			return err
		}
	}

	if len(c.Input.Exclude) > MaxListLength {
		return fmt.Errorf("%w: input.exclude (%d entries, max %d)", ErrFieldTooLong, len(c.Input.Exclude), MaxListLength)
	}
	for i, p := range c.Input.Exclude {
		if err := validateFieldLength(fmt.Sprintf("input.exclude[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}

	switch c.Output.Format {
	case "", FormatFragment, FormatDocument, FormatText:
	default:
		return fmt.Errorf("%w: output.format %q (must be fragment, document, or text)", ErrInvalidField, c.Output.Format)
	}

	if err := validateFieldLength("css.style", c.CSS.Style, MaxStyleNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleNameLength); err != nil {
		return err
	}
	if c.Highlight.TabWidth != 0 && (c.Highlight.TabWidth < MinTabWidth || c.Highlight.TabWidth > MaxTabWidth) {
		return fmt.Errorf("%w: highlight.tabWidth must be between %d and %d, got %d", ErrInvalidField, MinTabWidth, MaxTabWidth, c.Highlight.TabWidth)
	}

	if err := c.validateLanguages(); err != nil {
		return err
	}
	if err := c.validateSanitize(); err != nil {
		return err
	}

	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	return validateFieldLength("document.lang", c.Document.Lang, MaxLangTagLength)
}

func (c *Config) validateLanguages() error {
	if len(c.Languages.Custom) > MaxListLength || len(c.Languages.Aliases) > MaxListLength {
		return fmt.Errorf("%w: languages (max %d entries)", ErrFieldTooLong, MaxListLength)
	}

	for i, lang := range c.Languages.Custom {
		field := fmt.Sprintf("languages.custom[%d]", i)
		if strings.TrimSpace(lang.ID) == "" {
			return fmt.Errorf("%w: %s.id is required", ErrInvalidField, field)
		}
		if err := validateFieldLength(field+".id", lang.ID, MaxLanguageIDLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".displayName", lang.DisplayName, MaxDisplayNameLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".lexer", lang.Lexer, MaxLanguageIDLength); err != nil {
			return err
		}
		for j, alias := range lang.Aliases {
			if err := validateFieldLength(fmt.Sprintf("%s.aliases[%d]", field, j), alias, MaxLanguageIDLength); err != nil {
				return err
			}
		}
	}

	for alias, target := range c.Languages.Aliases {
		if err := validateFieldLength("languages.aliases key", alias, MaxLanguageIDLength); err != nil {
			return err
		}
		if strings.TrimSpace(target) == "" {
			return fmt.Errorf("%w: languages.aliases[%s] has no target", ErrInvalidField, alias)
		}
		if err := validateFieldLength("languages.aliases["+alias+"]", target, MaxLanguageIDLength); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateSanitize() error {
	lists := []struct {
		field  string
		values []string
	}{
		{"sanitize.forbidTags", c.Sanitize.ForbidTags},
		{"sanitize.forbidAttributes", c.Sanitize.ForbidAttributes},
		{"sanitize.allowAttributes", c.Sanitize.AllowAttributes},
	}
	for _, list := range lists {
		if len(list.values) > MaxListLength {
			return fmt.Errorf("%w: %s (%d entries, max %d)", ErrFieldTooLong, list.field, len(list.values), MaxListLength)
		}
		for i, v := range list.values {
			if err := validateFieldLength(fmt.Sprintf("%s[%d]", list.field, i), v, MaxNameLength); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that leaves every renderer
// default in place.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: FormatFragment},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Searched: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NotFoundError lists every location LoadConfig tried.
type NotFoundError struct {
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Searched, ", "))
}

// Is matches ErrConfigNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrConfigNotFound
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-mdsafe/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-mdsafe", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Searched: triedPaths}
}
