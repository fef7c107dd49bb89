package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrDocumentRender indicates the standalone document template failed.
var ErrDocumentRender = errors.New("document template rendering failed")

// DefaultDocumentLang is the lang attribute used when none is given.
const DefaultDocumentLang = "en"

// DocumentData holds the values substituted into the document template.
type DocumentData struct {
	Title string // escaped; derived from the first heading when empty
	Lang  string
	CSS   string // concatenated stylesheets
}

// DocumentWrapper wraps a sanitized fragment in a complete HTML page.
type DocumentWrapper struct {
	tmpl *template.Template
}

// NewDocumentWrapper creates a DocumentWrapper from template content.
// Returns error if the template cannot be parsed.
func NewDocumentWrapper(tmplContent string) (*DocumentWrapper, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	return &DocumentWrapper{tmpl: tmpl}, nil
}

// Wrap renders fragment into the document template. The fragment is
// inserted verbatim and must already be sanitized.
func (d *DocumentWrapper) Wrap(ctx context.Context, fragment string, data DocumentData) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if data.Title == "" {
		data.Title = DocumentTitle(fragment)
	}
	if data.Lang == "" {
		data.Lang = DefaultDocumentLang
	}

	var buf bytes.Buffer
	err := d.tmpl.Execute(&buf, struct {
		Title string
		Lang  string
		CSS   template.CSS
		Body  template.HTML
	}{
		Title: data.Title,
		Lang:  data.Lang,
		CSS:   template.CSS(sanitizeCSS(data.CSS)), // #nosec G203 -- closing sequences escaped
		Body:  template.HTML(fragment),             // #nosec G203 -- caller passes sanitized HTML
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}

// DocumentTitle returns the text of the first h1 in fragment, or of the
// first heading of any level when there is no h1.
func DocumentTitle(fragment string) string {
	root, err := parseFragment(fragment)
	if err != nil {
		return ""
	}
	doc := goquery.NewDocumentFromNode(root)

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		return collapseWhitespace(h1.Text())
	}
	return collapseWhitespace(doc.Find("h2, h3, h4, h5, h6").First().Text())
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
