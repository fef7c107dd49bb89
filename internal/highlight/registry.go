package highlight

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// Sentinel errors for registry administration.
var (
	ErrInvalidLanguageID = errors.New("invalid language id")
	ErrDuplicateLanguage = errors.New("language already registered")
	ErrUnknownLanguage   = errors.New("unknown language")
	ErrRegistryFrozen    = errors.New("language registry is frozen")
)

// Language describes a canonical grammar the registry can resolve to.
type Language struct {
	ID          string // canonical id, lower-case ("javascript")
	DisplayName string // human label ("JavaScript"); empty = upper-cased ID
	Lexer       string // chroma lexer name; empty = ID
}

// Registry maps language tokens and aliases to canonical language ids.
//
// Registration is only allowed until Freeze is called. After that the
// registry is read-only and safe for concurrent Resolve calls.
type Registry struct {
	languages map[string]Language
	aliases   map[string]string
	order     []string
	frozen    atomic.Bool
}

// NewRegistry creates an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{
		languages: make(map[string]Language),
		aliases:   make(map[string]string),
	}
}

// RegisterLanguage adds a canonical language. Its id resolves to itself.
func (r *Registry) RegisterLanguage(lang Language) error {
	if r.frozen.Load() {
		return ErrRegistryFrozen
	}

	id := normalize(lang.ID)
	if id == "" || strings.ContainsAny(id, " \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidLanguageID, lang.ID)
	}
	if _, ok := r.languages[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateLanguage, id)
	}
	if target, ok := r.aliases[id]; ok {
		return fmt.Errorf("%w: %q is an alias of %q", ErrDuplicateLanguage, id, target)
	}

	lang.ID = id
	if lang.Lexer == "" {
		lang.Lexer = id
	}
	r.languages[id] = lang
	r.order = append(r.order, id)
	return nil
}

// RegisterAlias maps alias to an already registered canonical id.
// Re-registering an alias to the same target is a no-op.
func (r *Registry) RegisterAlias(alias, canonical string) error {
	if r.frozen.Load() {
		return ErrRegistryFrozen
	}

	alias = normalize(alias)
	canonical = normalize(canonical)
	if alias == "" || strings.ContainsAny(alias, " \t\n") {
		return fmt.Errorf("%w: alias %q", ErrInvalidLanguageID, alias)
	}
	if _, ok := r.languages[canonical]; !ok {
		return fmt.Errorf("%w: alias %q targets %q", ErrUnknownLanguage, alias, canonical)
	}
	if _, ok := r.languages[alias]; ok {
		return fmt.Errorf("%w: alias %q shadows a canonical id", ErrDuplicateLanguage, alias)
	}
	if existing, ok := r.aliases[alias]; ok && existing != canonical {
		return fmt.Errorf("%w: alias %q already maps to %q", ErrDuplicateLanguage, alias, existing)
	}

	r.aliases[alias] = canonical
	return nil
}

// Freeze ends the registration phase.
func (r *Registry) Freeze() {
	r.frozen.Store(true)
}

// Resolve returns the canonical language for token. Lookup is
// case-insensitive. An unknown or empty token reports false.
func (r *Registry) Resolve(token string) (Language, bool) {
	key := normalize(token)
	if key == "" {
		return Language{}, false
	}
	if lang, ok := r.languages[key]; ok {
		return lang, true
	}
	if id, ok := r.aliases[key]; ok {
		return r.languages[id], true
	}
	return Language{}, false
}

// Languages returns the canonical languages in registration order.
func (r *Registry) Languages() []Language {
	out := make([]Language, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.languages[id])
	}
	return out
}

// Aliases returns the aliases of a canonical id, sorted.
func (r *Registry) Aliases(canonical string) []string {
	canonical = normalize(canonical)
	var out []string
	for alias, id := range r.aliases {
		if id == canonical {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// DisplayName returns the human label for a token, falling back to the
// upper-cased token when the language is unknown or has no label.
func (r *Registry) DisplayName(token string) string {
	if lang, ok := r.Resolve(token); ok && lang.DisplayName != "" {
		return lang.DisplayName
	}
	return strings.ToUpper(token)
}

func normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}
