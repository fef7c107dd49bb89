package mdsafe

import (
	"maps"
	"slices"

	"github.com/alnah/go-mdsafe/internal/highlight"
)

// Language is a canonical grammar a code block can resolve to.
type Language struct {
	ID          string // canonical id, lower-case
	DisplayName string // label for pickers; empty shows the upper-cased id
	Lexer       string // chroma lexer name; empty uses the id
}

// LanguageTable is the language configuration a Renderer is built from.
// It is copied into a read-only registry by New; later changes to the
// table do not affect existing renderers.
type LanguageTable struct {
	Languages []Language
	Aliases   map[string]string // alias -> canonical id
}

// DefaultLanguageTable returns a copy of the built-in table.
func DefaultLanguageTable() LanguageTable {
	r := highlight.NewDefaultRegistry()
	langs := r.Languages()
	table := LanguageTable{
		Languages: make([]Language, 0, len(langs)),
		Aliases:   make(map[string]string),
	}
	for _, l := range langs {
		table.Languages = append(table.Languages, Language(l))
		for _, alias := range r.Aliases(l.ID) {
			table.Aliases[alias] = l.ID
		}
	}
	return table
}

// AddLanguage appends a canonical language. Validation happens in New.
func (t *LanguageTable) AddLanguage(lang Language) {
	t.Languages = append(t.Languages, lang)
}

// AddAlias maps alias to a canonical id. Validation happens in New.
func (t *LanguageTable) AddAlias(alias, canonical string) {
	if t.Aliases == nil {
		t.Aliases = make(map[string]string)
	}
	t.Aliases[alias] = canonical
}

// registry builds the frozen registry for the table. Aliases are applied in
// sorted order so that errors are reported deterministically.
func (t LanguageTable) registry() (*highlight.Registry, error) {
	r := highlight.NewRegistry()
	for _, l := range t.Languages {
		if err := r.RegisterLanguage(highlight.Language(l)); err != nil {
			return nil, err
		}
	}
	for _, alias := range slices.Sorted(maps.Keys(t.Aliases)) {
		if err := r.RegisterAlias(alias, t.Aliases[alias]); err != nil {
			return nil, err
		}
	}
	r.Freeze()
	return r, nil
}
