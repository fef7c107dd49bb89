package mdsafe

import (
	"log/slog"

	"github.com/alnah/go-mdsafe/internal/assets"
	"github.com/alnah/go-mdsafe/internal/highlight"
)

// Option configures a Renderer.
type Option func(*rendererConfig)

// rendererConfig holds the settings New builds a Renderer from.
type rendererConfig struct {
	languages      LanguageTable
	policy         SanitizationPolicy
	highlighter    SyntaxHighlighter
	noHighlight    bool
	highlightStyle string
	tabWidth       int
	style          string
	assetPath      string
	logger         *slog.Logger
}

// Defaults applied by New.
const (
	DefaultHighlightStyle = highlight.DefaultStyle
	DefaultTabWidth       = highlight.DefaultTabWidth
	DefaultStyle          = assets.DefaultStyleName
	maxTabWidth           = 16
)

// WithLanguages replaces the built-in language table.
func WithLanguages(table LanguageTable) Option {
	return func(c *rendererConfig) {
		c.languages = table
	}
}

// WithPolicy replaces the default sanitization policy.
func WithPolicy(p SanitizationPolicy) Option {
	return func(c *rendererConfig) {
		c.policy = p
	}
}

// WithHighlighter sets the default highlighter used when a render call
// passes nil. The built-in default highlights with chroma.
func WithHighlighter(h SyntaxHighlighter) Option {
	return func(c *rendererConfig) {
		c.highlighter = h
		c.noHighlight = h == nil
	}
}

// WithoutHighlighting renders every code block as escaped text unless a
// render call supplies its own highlighter.
func WithoutHighlighting() Option {
	return func(c *rendererConfig) {
		c.highlighter = nil
		c.noHighlight = true
	}
}

// WithHighlightStyle selects the chroma style used by Stylesheet and
// standalone documents. Highlighted markup only carries class names, so
// the style never changes fragment output.
func WithHighlightStyle(name string) Option {
	return func(c *rendererConfig) {
		c.highlightStyle = name
	}
}

// WithTabWidth sets how many spaces a tab expands to in highlighted code.
func WithTabWidth(n int) Option {
	return func(c *rendererConfig) {
		c.tabWidth = n
	}
}

// WithStyle selects the page stylesheet for standalone documents by name.
func WithStyle(name string) Option {
	return func(c *rendererConfig) {
		c.style = name
	}
}

// WithAssetPath adds a directory of custom styles and templates. Assets
// found there take precedence over the built-in ones.
func WithAssetPath(dir string) Option {
	return func(c *rendererConfig) {
		c.assetPath = dir
	}
}

// WithLogger sets the logger for recovered failures and degradations.
// The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *rendererConfig) {
		c.logger = l
	}
}
