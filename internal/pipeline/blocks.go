package pipeline

import (
	"html/template"
	"log/slog"

	"github.com/alnah/go-mdsafe/internal/highlight"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Class names emitted by BlockRenderer. The sanitizer allows exactly these
// on the corresponding elements.
const (
	TableContainerClass = "markdown-table-container"
	TableWrapperClass   = "markdown-table-wrapper"
	HeaderRowClass      = "table-header"
	DataRowClass        = "table-row"
	HeaderCellClass     = "table-header-cell"
	DataCellClass       = "table-data-cell"
	HighlightClass      = "chroma"
	LanguageClassPrefix = "language-"
)

// blockRendererPriority wins over goldmark's table renderer (500) and the
// default HTML renderer (1000).
const blockRendererPriority = 100

// highlighterMetaKey stores the per-call highlighter on the parsed document.
const highlighterMetaKey = "mdsafe.highlighter"

// BlockRenderer renders fenced code blocks and GFM tables. All other node
// kinds keep goldmark's default rendering.
type BlockRenderer struct {
	registry *highlight.Registry
	fallback highlight.Highlighter
	logger   *slog.Logger
}

// NewBlockRenderer creates a BlockRenderer. fallback is used when the
// document carries no per-call highlighter.
func NewBlockRenderer(registry *highlight.Registry, fallback highlight.Highlighter, logger *slog.Logger) *BlockRenderer {
	if logger == nil {
		logger = discardLogger()
	}
	return &BlockRenderer{registry: registry, fallback: fallback, logger: logger}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *BlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(east.KindTable, r.renderTable)
	reg.Register(east.KindTableHeader, r.renderTableHeader)
	reg.Register(east.KindTableRow, r.renderTableRow)
	reg.Register(east.KindTableCell, r.renderTableCell)
}

func (r *BlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code = append(code, line.Value(source)...)
	}

	token := ""
	if n.Info != nil {
		token = string(n.Language(source))
	}

	lang, ok := r.registry.Resolve(token)
	if !ok {
		if token != "" {
			r.logger.Debug("unresolved code language", "language", token)
		}
		writePlainCode(w, "", code)
		return ast.WalkSkipChildren, nil
	}

	highlighted, err := highlight.Call(r.highlighterFor(n), string(code), lang.ID)
	if err != nil {
		r.logger.Debug("highlighting unavailable", "language", lang.ID, "err", err)
		writePlainCode(w, lang.ID, code)
		return ast.WalkSkipChildren, nil
	}

	langClass := LanguageClassPrefix + lang.ID
	_, _ = w.WriteString(`<pre class="` + HighlightClass + " " + langClass + `"><code class="` + langClass + `">`)
	_, _ = w.WriteString(highlighted)
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

// highlighterFor returns the per-call highlighter stored on the document,
// or the renderer's fallback.
func (r *BlockRenderer) highlighterFor(n ast.Node) highlight.Highlighter {
	if doc := n.OwnerDocument(); doc != nil {
		if h, ok := doc.Meta()[highlighterMetaKey].(highlight.Highlighter); ok && h != nil {
			return h
		}
	}
	return r.fallback
}

// writePlainCode writes the escaped fallback block. The language class is
// the only difference from the no-language form.
func writePlainCode(w util.BufWriter, languageID string, code []byte) {
	if languageID == "" {
		_, _ = w.WriteString("<pre><code>")
	} else {
		langClass := LanguageClassPrefix + languageID
		_, _ = w.WriteString(`<pre class="` + langClass + `"><code class="` + langClass + `">`)
	}
	_, _ = w.WriteString(template.HTMLEscapeString(string(code)))
	_, _ = w.WriteString("</code></pre>\n")
}

func (r *BlockRenderer) renderTable(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<div class="` + TableContainerClass + `"><div class="` + TableWrapperClass + `"><table>` + "\n")
	} else {
		_, _ = w.WriteString("</table></div></div>\n")
	}
	return ast.WalkContinue, nil
}

func (r *BlockRenderer) renderTableHeader(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<thead>\n")
		_, _ = w.WriteString(`<tr class="` + HeaderRowClass + `">` + "\n")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("</tr>\n</thead>\n<tbody>\n")
	if node.NextSibling() == nil {
		_, _ = w.WriteString("</tbody>\n")
	}
	return ast.WalkContinue, nil
}

func (r *BlockRenderer) renderTableRow(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<tr class="` + DataRowClass + `">` + "\n")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("</tr>\n")
	if node.NextSibling() == nil {
		_, _ = w.WriteString("</tbody>\n")
	}
	return ast.WalkContinue, nil
}

func (r *BlockRenderer) renderTableCell(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*east.TableCell)

	tag, class := "td", DataCellClass
	if n.Parent() != nil && n.Parent().Kind() == east.KindTableHeader {
		tag, class = "th", HeaderCellClass
	}

	if !entering {
		_, _ = w.WriteString("</" + tag + ">\n")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("<" + tag + ` class="` + class + `"`)
	if n.Alignment != east.AlignNone {
		_, _ = w.WriteString(` align="` + n.Alignment.String() + `"`)
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}
