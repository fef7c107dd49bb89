package mdsafe

import "sync"

// defaultRenderer is built on first use with the built-in configuration.
var defaultRenderer = sync.OnceValue(func() *Renderer {
	r, err := New()
	if err != nil {
		panic("mdsafe: building default renderer: " + err.Error())
	}
	return r
})

// Default returns the shared renderer behind the package-level functions.
func Default() *Renderer {
	return defaultRenderer()
}

// RenderToSafeHTML renders markdown with the default renderer.
func RenderToSafeHTML(markdown string, h SyntaxHighlighter) string {
	return defaultRenderer().RenderToSafeHTML(markdown, h)
}

// RenderWithHighlighting renders markdown with the default renderer and a
// per-call highlighter.
func RenderWithHighlighting(markdown string, h SyntaxHighlighter) string {
	return defaultRenderer().RenderWithHighlighting(markdown, h)
}

// ExtractPlainText returns the text of markdown rendered by the default
// renderer.
func ExtractPlainText(markdown string) string {
	return defaultRenderer().ExtractPlainText(markdown)
}

// ResolveLanguage resolves a token against the built-in language table.
func ResolveLanguage(token string) (string, bool) {
	return defaultRenderer().ResolveLanguage(token)
}

// SupportedLanguages lists the built-in canonical language ids.
func SupportedLanguages() []string {
	return defaultRenderer().SupportedLanguages()
}

// DisplayName returns the built-in label for a language token.
func DisplayName(token string) string {
	return defaultRenderer().DisplayName(token)
}
