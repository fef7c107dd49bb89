// Package highlight resolves fenced-code language tokens and turns code into
// highlighted markup.
//
// A Registry maps canonical ids and their aliases ("js" -> "javascript") and
// is frozen once the renderer is built. Chroma drives chroma lexers with a
// class-based formatter, so the emitted spans carry only class attributes
// and the colors live in a stylesheet (see Stylesheet).
//
// Highlighting never fails past Call: lexer lookups, tokeniser errors and
// panics all collapse into ErrUnavailable.
package highlight
