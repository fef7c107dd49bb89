package main

import (
	"fmt"
	"log/slog"
	"os"

	mdsafe "github.com/alnah/go-mdsafe"
	"github.com/alnah/go-mdsafe/internal/config"
)

// loadConfig resolves the configuration in precedence order: the named
// file (flag, then MDSAFE_CONFIG), then environment fallbacks. CLI flags
// are merged by the caller.
func loadConfig(name string, env *envConfig) (*config.Config, error) {
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// languageTable extends the built-in table with the configured languages.
func languageTable(cfg *config.Config) mdsafe.LanguageTable {
	table := mdsafe.DefaultLanguageTable()
	for _, lang := range cfg.Languages.Custom {
		table.AddLanguage(mdsafe.Language{
			ID:          lang.ID,
			DisplayName: lang.DisplayName,
			Lexer:       lang.Lexer,
		})
		for _, alias := range lang.Aliases {
			table.AddAlias(alias, lang.ID)
		}
	}
	for alias, target := range cfg.Languages.Aliases {
		table.AddAlias(alias, target)
	}
	return table
}

// sanitizationPolicy adds the configured lists to the default policy.
func sanitizationPolicy(cfg *config.Config) mdsafe.SanitizationPolicy {
	p := mdsafe.DefaultPolicy()
	p.ForbiddenTags = append(p.ForbiddenTags, cfg.Sanitize.ForbidTags...)
	p.ForbiddenAttributes = append(p.ForbiddenAttributes, cfg.Sanitize.ForbidAttributes...)
	p.AllowedAttributes = append(p.AllowedAttributes, cfg.Sanitize.AllowAttributes...)
	p.AllowDataAttributes = cfg.Sanitize.AllowDataAttributes
	p.ExternalLinksNewTab = cfg.Sanitize.NewTabLinks
	return p
}

// rendererOptions translates cfg into renderer options. Zero values keep
// the renderer defaults.
func rendererOptions(cfg *config.Config, logger *slog.Logger) []mdsafe.Option {
	opts := []mdsafe.Option{
		mdsafe.WithLanguages(languageTable(cfg)),
		mdsafe.WithPolicy(sanitizationPolicy(cfg)),
		mdsafe.WithLogger(logger),
	}

	if cfg.Highlight.Disabled {
		opts = append(opts, mdsafe.WithoutHighlighting())
	}
	if cfg.Highlight.Style != "" {
		opts = append(opts, mdsafe.WithHighlightStyle(cfg.Highlight.Style))
	}
	if cfg.Highlight.TabWidth != 0 {
		opts = append(opts, mdsafe.WithTabWidth(cfg.Highlight.TabWidth))
	}
	if cfg.CSS.Style != "" {
		opts = append(opts, mdsafe.WithStyle(cfg.CSS.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdsafe.WithAssetPath(cfg.Assets.BasePath))
	}

	return opts
}

// newRenderer builds a renderer for cfg.
func newRenderer(cfg *config.Config, logger *slog.Logger) (*mdsafe.Renderer, error) {
	r, err := mdsafe.New(rendererOptions(cfg, logger)...)
	if err != nil {
		return nil, fmt.Errorf("configuring renderer: %w", err)
	}
	return r, nil
}

// readExtraCSS reads the optional CSS file appended to documents.
func readExtraCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}
