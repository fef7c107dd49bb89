// Package pipeline implements the stages between Markdown source and safe
// HTML:
//   - source normalization (line endings, byte order mark)
//   - Markdown to HTML conversion via goldmark, with fenced code blocks and
//     tables rendered by BlockRenderer
//   - allow-list sanitization via bluemonday
//   - plain-text extraction and standalone document wrapping
//
// Conversion output is unsanitized; callers always pass it through a
// Sanitizer before it leaves the package boundary.
package pipeline
