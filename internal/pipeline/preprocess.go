package pipeline

import (
	"regexp"
	"strings"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

const byteOrderMark = "\uFEFF"

// NormalizeMarkdown prepares source text for parsing: a leading byte order
// mark is dropped and \r\n and \r become \n. Nothing else is touched, so
// code block contents survive unchanged.
func NormalizeMarkdown(content string) string {
	content = strings.TrimPrefix(content, byteOrderMark)
	if !strings.Contains(content, "\r") {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}
