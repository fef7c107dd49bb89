package mdsafe

import "github.com/alnah/go-mdsafe/internal/highlight"

// SyntaxHighlighter turns code into highlighted markup. language is the
// canonical id the code block's token resolved to ("javascript" for "js").
//
// Returning an error or an empty string makes the block render as escaped
// plain text. Panics are recovered the same way. The returned markup is
// sanitized like everything else, so only class attributes survive.
type SyntaxHighlighter interface {
	Highlight(code, language string) (string, error)
}

// HighlightFunc adapts a plain function to SyntaxHighlighter. An empty
// return means no highlighting is available for the call.
type HighlightFunc func(code, language string) string

// Highlight implements SyntaxHighlighter.
func (f HighlightFunc) Highlight(code, language string) (string, error) {
	if f == nil {
		return "", ErrHighlightUnavailable
	}
	return highlight.Func(f).Highlight(code, language)
}

// Compile-time interface checks.
var (
	_ SyntaxHighlighter     = HighlightFunc(nil)
	_ SyntaxHighlighter     = (*highlight.Chroma)(nil)
	_ highlight.Highlighter = SyntaxHighlighter(nil)
)
