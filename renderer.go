package mdsafe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alnah/go-mdsafe/internal/assets"
	"github.com/alnah/go-mdsafe/internal/highlight"
	"github.com/alnah/go-mdsafe/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.Sanitizer     = (*pipeline.BluemondaySanitizer)(nil)
	_ highlight.Highlighter  = (*highlight.Chroma)(nil)
	_ assets.AssetLoader     = (*assets.AssetResolver)(nil)
)

// Renderer turns Markdown into sanitized HTML. Every render parses, then
// sanitizes; there is no way to skip the second step.
//
// A Renderer is immutable after New and safe for concurrent use.
type Renderer struct {
	registry     *highlight.Registry
	converter    pipeline.HTMLConverter
	sanitizer    pipeline.Sanitizer
	document     *pipeline.DocumentWrapper
	pageCSS      string
	highlightCSS string
	logger       *slog.Logger
}

// New builds a Renderer. The language table is copied into a frozen
// registry and the policy is compiled once; both are read-only afterwards.
func New(opts ...Option) (*Renderer, error) {
	cfg := rendererConfig{
		languages:      DefaultLanguageTable(),
		policy:         DefaultPolicy(),
		highlightStyle: DefaultHighlightStyle,
		tabWidth:       DefaultTabWidth,
		style:          DefaultStyle,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.tabWidth < 1 || cfg.tabWidth > maxTabWidth {
		return nil, fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidTabWidth, cfg.tabWidth, maxTabWidth)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	registry, err := cfg.languages.registry()
	if err != nil {
		return nil, fmt.Errorf("building language registry: %w", err)
	}

	sanitizer, err := pipeline.NewSanitizer(cfg.policy.internal())
	if err != nil {
		return nil, err
	}

	highlightCSS, err := highlight.Stylesheet(cfg.highlightStyle, cfg.tabWidth)
	if err != nil {
		return nil, err
	}

	var fallback highlight.Highlighter
	switch {
	case cfg.highlighter != nil:
		fallback = cfg.highlighter
	case !cfg.noHighlight:
		fallback = highlight.NewChroma(registry, cfg.tabWidth)
	}

	loader, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	pageCSS, err := loader.LoadStyle(cfg.style)
	if err != nil {
		return nil, fmt.Errorf("loading style: %w", err)
	}
	tmpl, err := loader.LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	document, err := pipeline.NewDocumentWrapper(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	return &Renderer{
		registry:     registry,
		converter:    pipeline.NewGoldmarkConverter(pipeline.NewBlockRenderer(registry, fallback, logger)),
		sanitizer:    sanitizer,
		document:     document,
		pageCSS:      pageCSS,
		highlightCSS: highlightCSS,
		logger:       logger,
	}, nil
}

// RenderToSafeHTML renders markdown to a sanitized HTML fragment. h
// highlights code blocks for this call only; nil uses the renderer's
// default. Empty input, and any unexpected parser failure, yields "".
func (r *Renderer) RenderToSafeHTML(markdown string, h SyntaxHighlighter) string {
	return r.render(markdown, h)
}

// RenderWithHighlighting is RenderToSafeHTML under the name used when a
// call swaps in its own highlighter.
func (r *Renderer) RenderWithHighlighting(markdown string, h SyntaxHighlighter) string {
	return r.render(markdown, h)
}

// ExtractPlainText renders markdown to safe HTML and returns its text with
// whitespace runs collapsed to single spaces.
func (r *Renderer) ExtractPlainText(markdown string) string {
	return pipeline.ExtractText(r.render(markdown, nil))
}

// Sanitize applies the renderer's policy to an HTML fragment produced
// elsewhere.
func (r *Renderer) Sanitize(fragment string) string {
	return r.sanitizer.Sanitize(fragment)
}

func (r *Renderer) render(markdown string, h SyntaxHighlighter) (out string) {
	if markdown == "" {
		return ""
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("render recovered from panic", "panic", rec)
			out = ""
		}
	}()

	// A nil interface, not a typed nil, tells the converter to use its default.
	var hl highlight.Highlighter
	if h != nil {
		hl = h
	}

	fragment, err := r.converter.ToHTML(pipeline.NormalizeMarkdown(markdown), hl)
	if err != nil {
		r.logger.Warn("markdown conversion failed", "err", err)
		return ""
	}
	return r.sanitizer.Sanitize(fragment)
}

// Document holds per-call settings for RenderDocument.
type Document struct {
	Title       string            // defaults to the first heading
	Lang        string            // defaults to "en"
	CSS         string            // appended after the built-in stylesheets
	Highlighter SyntaxHighlighter // nil uses the renderer's default
}

// RenderDocument renders markdown into a complete HTML page: the sanitized
// fragment inside a markdown-body article, with the page style and the
// highlight stylesheet embedded.
func (r *Renderer) RenderDocument(ctx context.Context, markdown string, doc Document) (string, error) {
	fragment := r.render(markdown, doc.Highlighter)

	css := []string{r.pageCSS, r.highlightCSS}
	if doc.CSS != "" {
		css = append(css, doc.CSS)
	}

	return r.document.Wrap(ctx, fragment, pipeline.DocumentData{
		Title: doc.Title,
		Lang:  doc.Lang,
		CSS:   strings.Join(css, "\n"),
	})
}

// Stylesheet returns the CSS for highlighted code in the configured style.
func (r *Renderer) Stylesheet() string {
	return r.highlightCSS
}

// PageStylesheet returns the page style embedded in standalone documents.
func (r *Renderer) PageStylesheet() string {
	return r.pageCSS
}

// ResolveLanguage maps a code block token or alias to its canonical id.
// Lookup ignores case. Unknown tokens report false.
func (r *Renderer) ResolveLanguage(token string) (string, bool) {
	lang, ok := r.registry.Resolve(token)
	return lang.ID, ok
}

// DisplayName returns the label for a token, or the upper-cased token when
// it is unknown.
func (r *Renderer) DisplayName(token string) string {
	return r.registry.DisplayName(token)
}

// Languages returns the canonical languages in table order.
func (r *Renderer) Languages() []Language {
	langs := r.registry.Languages()
	out := make([]Language, len(langs))
	for i, l := range langs {
		out[i] = Language(l)
	}
	return out
}

// SupportedLanguages returns the canonical ids in table order.
func (r *Renderer) SupportedLanguages() []string {
	langs := r.registry.Languages()
	ids := make([]string, len(langs))
	for i, l := range langs {
		ids[i] = l.ID
	}
	return ids
}

// Aliases returns the sorted aliases of a canonical id.
func (r *Renderer) Aliases(id string) []string {
	return r.registry.Aliases(id)
}
