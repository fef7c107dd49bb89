package highlight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnavailable is the "no highlighting for this call" sentinel. Callers
// render the code as escaped plain text when they see it.
var ErrUnavailable = errors.New("highlighting unavailable")

// ErrUnknownStyle indicates a chroma style name that is not registered.
var ErrUnknownStyle = errors.New("unknown highlight style")

// DefaultStyle is the chroma style used for generated stylesheets.
const DefaultStyle = "github"

// DefaultTabWidth matches the tab expansion used by the formatter.
const DefaultTabWidth = 4

// Highlighter produces highlighted markup for code in a canonical language.
// Implementations must not retain per-call state.
type Highlighter interface {
	Highlight(code, language string) (string, error)
}

// Func adapts a plain function to Highlighter. An empty result means no
// highlighting is available for the call.
type Func func(code, language string) string

// Highlight calls f and maps an empty result to ErrUnavailable.
func (f Func) Highlight(code, language string) (string, error) {
	if f == nil {
		return "", ErrUnavailable
	}
	out := f(code, language)
	if out == "" {
		return "", ErrUnavailable
	}
	return out, nil
}

// Call invokes h and converts every failure, including panics, into
// ErrUnavailable.
func Call(h Highlighter, code, language string) (out string, err error) {
	if h == nil {
		return "", ErrUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: panic: %v", ErrUnavailable, r)
		}
	}()

	out, err = h.Highlight(code, language)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return "", err
	}
	if out == "" {
		return "", ErrUnavailable
	}
	return out, nil
}

// Chroma highlights code with chroma lexers and emits class-based spans
// without a surrounding <pre>.
type Chroma struct {
	registry  *Registry
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewChroma creates a chroma highlighter. The registry maps canonical ids
// to lexer names; a nil registry uses the id as lexer name.
func NewChroma(registry *Registry, tabWidth int) *Chroma {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &Chroma{
		registry: registry,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.TabWidth(tabWidth),
			chromahtml.PreventSurroundingPre(true),
		),
		style: styles.Get(DefaultStyle),
	}
}

// Highlight tokenises code with the lexer registered for language.
func (c *Chroma) Highlight(code, language string) (string, error) {
	lexerName := language
	if c.registry != nil {
		if lang, ok := c.registry.Resolve(language); ok {
			lexerName = lang.Lexer
		}
	}

	lexer := lexers.Get(lexerName)
	if lexer == nil {
		return "", fmt.Errorf("%w: no lexer for %q", ErrUnavailable, language)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("%w: tokenising %q: %v", ErrUnavailable, language, err)
	}

	var buf strings.Builder
	if err := c.formatter.Format(&buf, c.style, iterator); err != nil {
		return "", fmt.Errorf("%w: formatting %q: %v", ErrUnavailable, language, err)
	}
	return buf.String(), nil
}

// Stylesheet returns the CSS rules for class-based chroma markup in the
// named style.
func Stylesheet(styleName string, tabWidth int) (string, error) {
	if styleName == "" {
		styleName = DefaultStyle
	}
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(tabWidth))
	var buf strings.Builder
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing %q stylesheet: %w", styleName, err)
	}
	return buf.String(), nil
}

// StyleNames lists the registered chroma styles.
func StyleNames() []string {
	return styles.Names()
}
