package main

// Notes:
// - loadEnvConfig: we test every variable, plus malformed and negative
//   numbers to verify they are ignored rather than reported.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: we test that env fills empty fields and never overrides
//   values already set by the config file.
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/alnah/go-mdsafe/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("reads every variable", func(t *testing.T) {
		t.Setenv("MDSAFE_CONFIG", "/path/to/config.yaml")
		t.Setenv("MDSAFE_FORMAT", "document")
		t.Setenv("MDSAFE_STYLE", "minimal")
		t.Setenv("MDSAFE_HIGHLIGHT_STYLE", "monokai")
		t.Setenv("MDSAFE_TAB_WIDTH", "2")
		t.Setenv("MDSAFE_INPUT_DIR", "/input")
		t.Setenv("MDSAFE_OUTPUT_DIR", "/output")
		t.Setenv("MDSAFE_ASSET_PATH", "/assets")
		t.Setenv("MDSAFE_LANG", "fr")
		t.Setenv("MDSAFE_WORKERS", "4")

		cfg := loadEnvConfig()

		want := envConfig{
			ConfigPath:     "/path/to/config.yaml",
			Format:         "document",
			Style:          "minimal",
			HighlightStyle: "monokai",
			TabWidth:       2,
			InputDir:       "/input",
			OutputDir:      "/output",
			AssetPath:      "/assets",
			Lang:           "fr",
			Workers:        4,
		}
		if *cfg != want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
		}
	})

	t.Run("ignores malformed numbers", func(t *testing.T) {
		t.Setenv("MDSAFE_TAB_WIDTH", "wide")
		t.Setenv("MDSAFE_WORKERS", "-3")

		cfg := loadEnvConfig()

		if cfg.TabWidth != 0 {
			t.Errorf("TabWidth = %d, want 0", cfg.TabWidth)
		}
		if cfg.Workers != 0 {
			t.Errorf("Workers = %d, want 0", cfg.Workers)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Unknown variable detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Run("warns on unknown MDSAFE_ vars", func(t *testing.T) {
		t.Setenv("MDSAFE_TYPO", "value")
		t.Setenv("MDSAFE_HIGHLITE_STYLE", "typo")

		var buf bytes.Buffer
		warnUnknownEnvVars(newLogger(&buf, false, false))

		output := buf.String()
		for _, want := range []string{"MDSAFE_TYPO", "MDSAFE_HIGHLITE_STYLE", "typo?"} {
			if !strings.Contains(output, want) {
				t.Errorf("output should contain %q, got: %s", want, output)
			}
		}
	})

	t.Run("no warning for known vars", func(t *testing.T) {
		for name := range knownEnvVars {
			t.Setenv(name, "1")
		}

		var buf bytes.Buffer
		warnUnknownEnvVars(newLogger(&buf, false, false))

		if strings.Contains(buf.String(), "typo?") {
			t.Errorf("should not warn for known vars, got: %s", buf.String())
		}
	})

	t.Run("ignores other vars", func(t *testing.T) {
		t.Setenv("SOME_OTHER_VAR", "value")

		var buf bytes.Buffer
		warnUnknownEnvVars(newLogger(&buf, false, false))

		if strings.Contains(buf.String(), "SOME_OTHER_VAR") {
			t.Errorf("should not warn about SOME_OTHER_VAR, got: %s", buf.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Config application with priority
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Format:         "text",
		Style:          "minimal",
		HighlightStyle: "monokai",
		TabWidth:       2,
		InputDir:       "/input",
		OutputDir:      "/output",
		AssetPath:      "/assets",
		Lang:           "fr",
	}

	t.Run("fills empty config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		checks := []struct {
			field string
			got   string
			want  string
		}{
			{"Output.Format", cfg.Output.Format, "text"},
			{"CSS.Style", cfg.CSS.Style, "minimal"},
			{"Highlight.Style", cfg.Highlight.Style, "monokai"},
			{"Input.DefaultDir", cfg.Input.DefaultDir, "/input"},
			{"Output.DefaultDir", cfg.Output.DefaultDir, "/output"},
			{"Assets.BasePath", cfg.Assets.BasePath, "/assets"},
			{"Document.Lang", cfg.Document.Lang, "fr"},
		}
		for _, c := range checks {
			if c.got != c.want {
				t.Errorf("%s = %q, want %q", c.field, c.got, c.want)
			}
		}
		if cfg.Highlight.TabWidth != 2 {
			t.Errorf("Highlight.TabWidth = %d, want 2", cfg.Highlight.TabWidth)
		}
	})

	t.Run("config values win", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Output.Format = config.FormatDocument
		cfg.CSS.Style = "default"
		cfg.Highlight.Style = "github"
		cfg.Highlight.TabWidth = 8
		cfg.Document.Lang = "de"

		applyEnvConfig(env, cfg)

		if cfg.Output.Format != config.FormatDocument {
			t.Errorf("Output.Format = %q, want document", cfg.Output.Format)
		}
		if cfg.CSS.Style != "default" {
			t.Errorf("CSS.Style = %q, want default", cfg.CSS.Style)
		}
		if cfg.Highlight.Style != "github" {
			t.Errorf("Highlight.Style = %q, want github", cfg.Highlight.Style)
		}
		if cfg.Highlight.TabWidth != 8 {
			t.Errorf("Highlight.TabWidth = %d, want 8", cfg.Highlight.TabWidth)
		}
		if cfg.Document.Lang != "de" {
			t.Errorf("Document.Lang = %q, want de", cfg.Document.Lang)
		}
	})

	t.Run("empty env changes nothing", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{}, cfg)

		if !reflect.DeepEqual(cfg, config.DefaultConfig()) {
			t.Errorf("config changed: %+v", cfg)
		}
	})
}

// ---------------------------------------------------------------------------
// TestKnownEnvVars - Registry consistency
// ---------------------------------------------------------------------------

func TestKnownEnvVars(t *testing.T) {
	t.Parallel()

	for name := range knownEnvVars {
		if !strings.HasPrefix(name, envPrefix) {
			t.Errorf("%s lacks the %s prefix", name, envPrefix)
		}
	}
	if len(knownEnvVars) != 10 {
		t.Errorf("knownEnvVars has %d entries, want 10", len(knownEnvVars))
	}
}
