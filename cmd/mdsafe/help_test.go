package main

// Notes:
// - print*Usage: we test that each command's flags and environment
//   variables are documented. Exact layout is not tested.
// - runHelp: we test routing to the correct help topic.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestUsageContent - Documented commands and flags
// ---------------------------------------------------------------------------

func TestUsageContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		print func(io.Writer)
		want  []string
	}{
		{"main", printUsage, []string{"Usage: mdsafe", "render", "text", "langs", "css", "config", "completion", "version", "help"}},
		{"render", printRenderUsage, []string{
			"--output", "--format", "--workers", "--highlight-style", "--tab-width",
			"--no-highlight", "--alias", "--forbid-tag", "--forbid-attr", "--allow-attr",
			"--allow-data-attrs", "--new-tab", "--title", "--lang", "--style", "--css",
			"--asset-path", "--quiet", "--verbose", "--exclude",
		}},
		{"text", printTextUsage, []string{"Usage: mdsafe text", "render -f text", "--output", "--exclude"}},
		{"langs", printLangsUsage, []string{"Usage: mdsafe langs", "--config"}},
		{"css", printCSSUsage, []string{"--page", "--list", "--highlight-style"}},
		{"config", printConfigUsage, []string{"Usage: mdsafe config", "Environment:"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.print(&buf)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s usage should contain %q", tt.name, want)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUsageDocumentsEnvVars - Every known variable is listed
// ---------------------------------------------------------------------------

func TestUsageDocumentsEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printEnvironment(&buf)
	for name := range knownEnvVars {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("environment help should list %s", name)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Topic routing
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args    []string
		want    string
		wantErr error
	}{
		{nil, "Usage: mdsafe <command>", nil},
		{[]string{"render"}, "Usage: mdsafe render", nil},
		{[]string{"text"}, "Usage: mdsafe text", nil},
		{[]string{"langs"}, "Usage: mdsafe langs", nil},
		{[]string{"css"}, "Usage: mdsafe css", nil},
		{[]string{"config"}, "Usage: mdsafe config", nil},
		{[]string{"completion"}, "Usage: mdsafe completion", nil},
		{[]string{"nope"}, "", ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv("")
			err := runHelp(tt.args, env)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("runHelp(%v) error = %v, want %v", tt.args, err, tt.wantErr)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("runHelp(%v) output should contain %q, got %q", tt.args, tt.want, stdout.String())
			}
		})
	}
}
