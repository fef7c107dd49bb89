package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdsafe/internal/config"
)

// envPrefix marks the variables the CLI reads.
const envPrefix = "MDSAFE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // MDSAFE_CONFIG: config file name or path
	Format         string // MDSAFE_FORMAT: fragment, document, text
	Style          string // MDSAFE_STYLE: page style name
	HighlightStyle string // MDSAFE_HIGHLIGHT_STYLE: chroma style
	TabWidth       int    // MDSAFE_TAB_WIDTH: spaces per tab
	InputDir       string // MDSAFE_INPUT_DIR: default input directory
	OutputDir      string // MDSAFE_OUTPUT_DIR: default output directory
	AssetPath      string // MDSAFE_ASSET_PATH: custom asset directory
	Lang           string // MDSAFE_LANG: document language tag
	Workers        int    // MDSAFE_WORKERS: parallel workers
}

// knownEnvVars lists valid MDSAFE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDSAFE_CONFIG":          true,
	"MDSAFE_FORMAT":          true,
	"MDSAFE_STYLE":           true,
	"MDSAFE_HIGHLIGHT_STYLE": true,
	"MDSAFE_TAB_WIDTH":       true,
	"MDSAFE_INPUT_DIR":       true,
	"MDSAFE_OUTPUT_DIR":      true,
	"MDSAFE_ASSET_PATH":      true,
	"MDSAFE_LANG":            true,
	"MDSAFE_WORKERS":         true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("MDSAFE_CONFIG"),
		Format:         os.Getenv("MDSAFE_FORMAT"),
		Style:          os.Getenv("MDSAFE_STYLE"),
		HighlightStyle: os.Getenv("MDSAFE_HIGHLIGHT_STYLE"),
		InputDir:       os.Getenv("MDSAFE_INPUT_DIR"),
		OutputDir:      os.Getenv("MDSAFE_OUTPUT_DIR"),
		AssetPath:      os.Getenv("MDSAFE_ASSET_PATH"),
		Lang:           os.Getenv("MDSAFE_LANG"),
	}

	cfg.TabWidth = positiveInt(os.Getenv("MDSAFE_TAB_WIDTH"))
	cfg.Workers = positiveInt(os.Getenv("MDSAFE_WORKERS"))

	return cfg
}

func positiveInt(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// warnUnknownEnvVars logs a warning for each unrecognized MDSAFE_* variable.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", "name", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfEmpty := func(dst *string, v string) {
		if v != "" && *dst == "" {
			*dst = v
		}
	}

	setIfEmpty(&cfg.CSS.Style, env.Style)
	setIfEmpty(&cfg.Highlight.Style, env.HighlightStyle)
	setIfEmpty(&cfg.Input.DefaultDir, env.InputDir)
	setIfEmpty(&cfg.Output.DefaultDir, env.OutputDir)
	setIfEmpty(&cfg.Assets.BasePath, env.AssetPath)
	setIfEmpty(&cfg.Document.Lang, env.Lang)

	// DefaultConfig already sets a format, so the file's choice wins only
	// when it differs from the default.
	if env.Format != "" && (cfg.Output.Format == "" || cfg.Output.Format == config.FormatFragment) {
		cfg.Output.Format = env.Format
	}
	if env.TabWidth > 0 && cfg.Highlight.TabWidth == 0 {
		cfg.Highlight.TabWidth = env.TabWidth
	}
}
