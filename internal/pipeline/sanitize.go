package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ErrInvalidPolicy indicates a sanitization policy that cannot be compiled.
var ErrInvalidPolicy = errors.New("invalid sanitization policy")

// DefaultForbiddenTags are removed together with their content.
var DefaultForbiddenTags = []string{
	"script", "style", "iframe", "form", "input", "button", "object", "embed",
}

// DefaultForbiddenAttributes are never kept. Every on* attribute is
// forbidden regardless of this list.
var DefaultForbiddenAttributes = []string{
	"onerror", "onload", "onclick", "onmouseover", "style",
}

// DefaultAllowedAttributes are added on top of the built-in allow-list.
var DefaultAllowedAttributes = []string{"target"}

// proseTags are the elements standard Markdown output needs, plus the
// wrappers BlockRenderer emits.
var proseTags = []string{
	"a", "abbr", "b", "blockquote", "br", "caption", "cite", "code", "dd", "del",
	"details", "div", "dl", "dt", "em", "figcaption", "figure", "h1", "h2", "h3",
	"h4", "h5", "h6", "hr", "i", "img", "ins", "kbd", "li", "mark", "ol", "p",
	"pre", "q", "s", "samp", "small", "span", "strike", "strong", "sub", "summary",
	"sup", "table", "tbody", "td", "tfoot", "th", "thead", "tr", "u", "ul", "var",
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "param": true,
	"source": true, "track": true, "wbr": true,
}

var (
	anchorIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_:.\-]+$`)
	alignPattern      = regexp.MustCompile(`^(left|center|right)$`)
	targetPattern     = regexp.MustCompile(`^_(blank|self|parent|top)$`)
	attrNamePattern   = regexp.MustCompile(`^[a-z][a-z0-9\-:]*$`)
	divClassPattern   = regexp.MustCompile(`^(` + TableContainerClass + `|` + TableWrapperClass + `|footnotes)$`)
	rowClassPattern   = regexp.MustCompile(`^(` + HeaderRowClass + `|` + DataRowClass + `)$`)
	cellClassPattern  = regexp.MustCompile(`^(` + HeaderCellClass + `|` + DataCellClass + `)$`)
	linkClassPattern  = regexp.MustCompile(`^(footnote-ref|footnote-backref)$`)
	tokenClassPattern = bluemonday.SpaceSeparatedTokens
)

// Policy configures the sanitizer. The zero value forbids nothing beyond the
// built-in default-deny allow-list.
type Policy struct {
	ForbiddenTags       []string // removed with their content
	ForbiddenAttributes []string // removed wherever they appear
	AllowedAttributes   []string // allowed in addition to the built-in list
	AllowDataAttributes bool     // keep data-* attributes
	ExternalLinksNewTab bool     // add target="_blank" to fully qualified links
}

// DefaultPolicy returns the policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{
		ForbiddenTags:       slices.Clone(DefaultForbiddenTags),
		ForbiddenAttributes: slices.Clone(DefaultForbiddenAttributes),
		AllowedAttributes:   slices.Clone(DefaultAllowedAttributes),
	}
}

// Validate checks that every name in the policy is a plain tag or
// attribute name.
func (p Policy) Validate() error {
	for _, group := range [][]string{p.ForbiddenTags, p.ForbiddenAttributes, p.AllowedAttributes} {
		for _, name := range group {
			if !attrNamePattern.MatchString(strings.ToLower(strings.TrimSpace(name))) {
				return fmt.Errorf("%w: %q is not a valid name", ErrInvalidPolicy, name)
			}
		}
	}
	return nil
}

// Sanitizer removes every tag and attribute outside its allow-list.
type Sanitizer interface {
	Sanitize(htmlContent string) string
}

// BluemondaySanitizer applies a compiled bluemonday policy. It is immutable
// after construction and safe for concurrent use.
type BluemondaySanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer compiles p into a default-deny bluemonday policy.
func NewSanitizer(p Policy) (*BluemondaySanitizer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	forbiddenTags := nameSet(p.ForbiddenTags)
	forbiddenAttrs := nameSet(p.ForbiddenAttributes)
	allowed := func(attr string) bool {
		return !forbiddenAttrs[attr] && !strings.HasPrefix(attr, "on")
	}

	bp := bluemonday.NewPolicy()
	bp.RequireParseableURLs(true)
	bp.AllowRelativeURLs(true)
	bp.AllowURLSchemes("http", "https", "mailto")

	var tags []string
	for _, tag := range proseTags {
		if !forbiddenTags[tag] {
			tags = append(tags, tag)
		}
	}
	bp.AllowElements(tags...)

	// OnElements also allow-lists the element itself, so forbidden tags
	// must never reach it.
	allowOn := func(attr string, pattern *regexp.Regexp, elements ...string) {
		elements = slices.DeleteFunc(slices.Clone(elements), func(el string) bool {
			return forbiddenTags[el]
		})
		if !allowed(attr) || len(elements) == 0 {
			return
		}
		if pattern != nil {
			bp.AllowAttrs(attr).Matching(pattern).OnElements(elements...)
			return
		}
		bp.AllowAttrs(attr).OnElements(elements...)
	}

	allowOn("href", nil, "a")
	allowOn("title", nil, "a", "img", "abbr")
	allowOn("src", nil, "img")
	allowOn("alt", nil, "img")
	allowOn("width", bluemonday.NumberOrPercent, "img")
	allowOn("height", bluemonday.NumberOrPercent, "img")
	allowOn("id", anchorIDPattern, "h1", "h2", "h3", "h4", "h5", "h6", "li", "sup")
	allowOn("start", bluemonday.Integer, "ol")
	allowOn("align", alignPattern, "th", "td")
	allowOn("colspan", bluemonday.Integer, "th", "td")
	allowOn("rowspan", bluemonday.Integer, "th", "td")
	allowOn("class", tokenClassPattern, "pre", "code", "span")
	allowOn("class", divClassPattern, "div")
	allowOn("class", rowClassPattern, "tr")
	allowOn("class", cellClassPattern, "th", "td")
	allowOn("class", linkClassPattern, "a")

	for _, attr := range p.AllowedAttributes {
		attr = strings.ToLower(strings.TrimSpace(attr))
		switch {
		case !allowed(attr):
			continue
		case attr == "target":
			allowOn("target", targetPattern, "a")
		case strings.HasPrefix(attr, "data-"):
			bp.AllowAttrs(attr).Globally()
		case len(tags) > 0:
			bp.AllowAttrs(attr).OnElements(tags...)
		}
	}

	if p.AllowDataAttributes {
		bp.AllowDataAttributes()
	}
	if p.ExternalLinksNewTab {
		bp.AddTargetBlankToFullyQualifiedLinks(true)
	}

	// Void elements never close, so skipping their content would swallow
	// the rest of the document. Leaving them off the allow-list drops them.
	var skip []string
	for tag := range forbiddenTags {
		if !voidElements[tag] {
			skip = append(skip, tag)
		}
	}
	slices.Sort(skip)
	if len(skip) > 0 {
		bp.SkipElementsContent(skip...)
	}

	return &BluemondaySanitizer{policy: bp}, nil
}

// Sanitize returns the allow-listed subset of htmlContent.
func (s *BluemondaySanitizer) Sanitize(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}
	return s.policy.Sanitize(htmlContent)
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			set[n] = true
		}
	}
	return set
}
