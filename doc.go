// Package mdsafe renders Markdown into HTML that is safe to insert into a
// page, with syntax-highlighted code blocks and scrollable tables.
//
// # Quick Start
//
//	html := mdsafe.RenderToSafeHTML("# Hello\n\n```js\nalert(1)\n```", nil)
//	text := mdsafe.ExtractPlainText("# Hello\n\n*World*") // "Hello World"
//
// The package-level functions share a renderer built with the defaults.
// Build your own with New to change the language table, the sanitization
// policy or the highlighter:
//
//	r, err := mdsafe.New(
//	    mdsafe.WithPolicy(policy),
//	    mdsafe.WithHighlightStyle("monokai"),
//	    mdsafe.WithLogger(logger),
//	)
//
// # Render Pipeline
//
// Every render call runs the same fixed stages:
//
//  1. Source normalization (line endings, byte order mark)
//  2. Markdown to HTML via goldmark (GFM tables, strikethrough, autolinks,
//     typographic quotes, footnotes, hard line breaks, raw HTML)
//  3. Fenced code blocks: the info token is resolved through the language
//     table ("js" -> "javascript") and highlighted; unknown languages and
//     highlighter failures fall back to an escaped <pre><code> block
//  4. Tables: wrapped in scroll containers with header and data row classes
//  5. Sanitization via bluemonday with a default-deny allow-list
//
// Sanitization always runs. Raw HTML in the source is parsed as markup and
// anything outside the allow-list is dropped.
//
// # Highlighters
//
// The default highlighter is chroma with class-based output; use
// Renderer.Stylesheet for the matching CSS. A SyntaxHighlighter passed to a
// render call replaces the default for that call only, so renders with
// different highlighters can run concurrently.
//
// # Failure Semantics
//
// Render operations never return errors. Empty input yields "". A parser
// failure or panic is recovered and yields "", logged at Warn. Unknown
// languages and failing highlighters are logged at Debug.
package mdsafe
