package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alnah/go-mdsafe/internal/highlight"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion. The highlighter
// applies to this call only; nil means the converter's default.
type HTMLConverter interface {
	ToHTML(content string, h highlight.Highlighter) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
// The output is unsanitized: raw HTML passes through.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter whose fenced code blocks
// and tables are rendered by blocks.
func NewGoldmarkConverter(blocks *BlockRenderer) *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,         // GFM tables, rendered by BlockRenderer
			extension.Strikethrough, // ~~text~~
			extension.Linkify,       // bare URLs become links
			extension.Typographer,   // smart quotes and dashes
			extension.Footnote,      // [^1] footnotes
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Generate IDs for headings
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithUnsafe(),    // Raw HTML passes through; the sanitizer runs afterwards
			renderer.WithNodeRenderers(util.Prioritized(blocks, blockRendererPriority)),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
func (c *GoldmarkConverter) ToHTML(content string, h highlight.Highlighter) (string, error) {
	var buf bytes.Buffer
	if err := c.Convert(&buf, []byte(content), h); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Convert parses src and writes the fragment to w.
func (c *GoldmarkConverter) Convert(w io.Writer, src []byte, h highlight.Highlighter) error {
	doc := c.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))
	if h != nil {
		doc.OwnerDocument().Meta()[highlighterMetaKey] = h
	}
	if err := c.md.Renderer().Render(w, src, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
