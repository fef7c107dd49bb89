package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractText returns the text content of an HTML fragment with runs of
// whitespace collapsed to single spaces and both ends trimmed.
func ExtractText(htmlContent string) string {
	if strings.TrimSpace(htmlContent) == "" {
		return ""
	}

	root, err := parseFragment(htmlContent)
	if err != nil {
		return ""
	}
	return collapseWhitespace(goquery.NewDocumentFromNode(root).Text())
}

// parseFragment parses content in a <body> context and hangs the resulting
// nodes under a document node for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
