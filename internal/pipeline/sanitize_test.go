package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func newDefaultSanitizer(t *testing.T) *BluemondaySanitizer {
	t.Helper()

	s, err := NewSanitizer(DefaultPolicy())
	if err != nil {
		t.Fatalf("NewSanitizer() error = %v", err)
	}
	return s
}

// assertNoUnsafeNodes re-parses out and fails on any script, iframe or
// event-handler attribute.
func assertNoUnsafeNodes(t *testing.T, out string) {
	t.Helper()

	doc := query(t, out)
	for _, tag := range []string{"script", "iframe", "style", "object", "embed", "form", "input", "button"} {
		if doc.Find(tag).Length() > 0 {
			t.Errorf("output contains <%s>: %q", tag, out)
		}
	}
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range s.Nodes[0].Attr {
			if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
				t.Errorf("output keeps %s on <%s>: %q", attr.Key, goquery.NodeName(s), out)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestSanitizer_RemovesInjectionVectors - nothing executable survives
// ---------------------------------------------------------------------------

func TestSanitizer_RemovesInjectionVectors(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<script>alert(1)</script>`,
		`<SCRIPT SRC=//evil.example/x.js></SCRIPT>`,
		`<div><p><span><script>alert(1)</script></span></p></div>`,
		`<img src=x onerror=alert(1)>`,
		`<a href="#" onclick="steal()">x</a>`,
		`<p onmouseover="x()" onfocus="y()">hover</p>`,
		`<iframe src="https://evil.example"></iframe>`,
		`<object data="x.swf"></object><embed src="x.swf">`,
		`<form action="/steal"><input name="p"><button>go</button></form>`,
		`<style>body{display:none}</style>`,
		`<svg onload=alert(1)><circle r=1></svg>`,
		`<scr<script>ipt>alert(1)</script>`,
		`<a href="javascript:alert(1)">js</a>`,
		`<img src="data:text/html;base64,PHNjcmlwdD4=">`,
		`<math><mtext><table><mglyph><style><img src=x onerror=alert(1)>`,
	}

	s := newDefaultSanitizer(t)
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			out := s.Sanitize(in)
			assertNoUnsafeNodes(t, out)
			if strings.Contains(strings.ToLower(out), "javascript:") {
				t.Errorf("output keeps javascript: URL: %q", out)
			}
		})
	}
}

func TestSanitizer_KeepsBlockRendererMarkup(t *testing.T) {
	t.Parallel()

	s := newDefaultSanitizer(t)

	tests := []struct {
		name     string
		input    string
		selector string
	}{
		{
			name:     "highlighted code",
			input:    `<pre class="chroma language-go"><code class="language-go"><span class="kd">func</span></code></pre>`,
			selector: "pre.chroma.language-go > code.language-go > span.kd",
		},
		{
			name:     "table wrappers and row classes",
			input:    `<div class="markdown-table-container"><div class="markdown-table-wrapper"><table><thead><tr class="table-header"><th class="table-header-cell" align="center">A</th></tr></thead><tbody><tr class="table-row"><td class="table-data-cell">1</td></tr></tbody></table></div></div>`,
			selector: "div.markdown-table-container > div.markdown-table-wrapper > table tr.table-row > td.table-data-cell",
		},
		{
			name:     "cell alignment",
			input:    `<table><tbody><tr><td align="right">1</td></tr></tbody></table>`,
			selector: `td[align="right"]`,
		},
		{
			name:     "anchor target",
			input:    `<a href="https://example.com" target="_blank">x</a>`,
			selector: `a[target="_blank"][href="https://example.com"]`,
		},
		{
			name:     "heading id",
			input:    `<h2 id="getting-started">Getting started</h2>`,
			selector: "h2#getting-started",
		},
		{
			name:     "image",
			input:    `<img src="x" alt="pic">`,
			selector: `img[src="x"][alt="pic"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := s.Sanitize(tt.input)
			if query(t, out).Find(tt.selector).Length() != 1 {
				t.Errorf("Sanitize() dropped %s: %q", tt.selector, out)
			}
		})
	}
}

func TestSanitizer_DropsUnknownAttributes(t *testing.T) {
	t.Parallel()

	s := newDefaultSanitizer(t)

	tests := []struct {
		name  string
		input string
		gone  string
	}{
		{name: "style attribute", input: `<p style="color:red">x</p>`, gone: "style"},
		{name: "data attribute", input: `<p data-id="7">x</p>`, gone: "data-id"},
		{name: "class on paragraph", input: `<p class="evil">x</p>`, gone: "class"},
		{name: "unexpected div class", input: `<div class="overlay">x</div>`, gone: "overlay"},
		{name: "bad target", input: `<a href="/x" target="frame1">x</a>`, gone: "frame1"},
		{name: "target off anchors", input: `<p target="_blank">x</p>`, gone: "target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if out := s.Sanitize(tt.input); strings.Contains(out, tt.gone) {
				t.Errorf("Sanitize(%q) = %q, want %q removed", tt.input, out, tt.gone)
			}
		})
	}
}

func TestSanitizer_Idempotent(t *testing.T) {
	t.Parallel()

	s := newDefaultSanitizer(t)
	c := newTestConverter(t, nil)

	inputs := []string{
		"",
		"plain text with 'quotes' & \"doubles\" < >",
		`<img src=x onerror=alert(1)>`,
		`<p>a <b>b <i>c</b> d</i></p>`,
		convert(t, c, "# Title\n\n| A | B |\n|---|:-:|\n| 1 | 2 |\n\n```js\nalert(1)\n```\n\nText[^1]\n\n[^1]: note", nil),
	}

	for _, in := range inputs {
		once := s.Sanitize(in)
		twice := s.Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestSanitizer_StrictSubset(t *testing.T) {
	t.Parallel()

	s := newDefaultSanitizer(t)
	in := `<div><p>keep <em>this</em></p><script>drop()</script><iframe></iframe><custom-tag>inner</custom-tag></div>`

	countElements := func(fragment string) int {
		n := 0
		query(t, fragment).Find("body *").Each(func(int, *goquery.Selection) { n++ })
		return n
	}

	out := s.Sanitize(in)
	if countElements(out) > countElements(in) {
		t.Errorf("Sanitize() added elements: %q", out)
	}
	if !strings.Contains(out, "inner") {
		t.Errorf("text of a dropped unknown tag should survive: %q", out)
	}
	if strings.Contains(out, "drop()") {
		t.Errorf("content of a forbidden tag should not survive: %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestNewSanitizer_Policy - policy knobs change the compiled allow-list
// ---------------------------------------------------------------------------

func TestNewSanitizer_Policy(t *testing.T) {
	t.Parallel()

	t.Run("allow data attributes", func(t *testing.T) {
		t.Parallel()

		p := DefaultPolicy()
		p.AllowDataAttributes = true
		s, err := NewSanitizer(p)
		if err != nil {
			t.Fatalf("NewSanitizer() error = %v", err)
		}
		if out := s.Sanitize(`<p data-id="7">x</p>`); !strings.Contains(out, `data-id="7"`) {
			t.Errorf("Sanitize() = %q, want data-id kept", out)
		}
	})

	t.Run("explicit data attribute", func(t *testing.T) {
		t.Parallel()

		p := DefaultPolicy()
		p.AllowedAttributes = append(p.AllowedAttributes, "data-line")
		s, err := NewSanitizer(p)
		if err != nil {
			t.Fatalf("NewSanitizer() error = %v", err)
		}
		out := s.Sanitize(`<span data-line="3" data-other="x">x</span>`)
		if !strings.Contains(out, `data-line="3"`) || strings.Contains(out, "data-other") {
			t.Errorf("Sanitize() = %q, want only data-line kept", out)
		}
	})

	t.Run("forbidding target removes it", func(t *testing.T) {
		t.Parallel()

		p := DefaultPolicy()
		p.ForbiddenAttributes = append(p.ForbiddenAttributes, "target")
		s, err := NewSanitizer(p)
		if err != nil {
			t.Fatalf("NewSanitizer() error = %v", err)
		}
		if out := s.Sanitize(`<a href="/x" target="_blank">x</a>`); strings.Contains(out, "target") {
			t.Errorf("Sanitize() = %q, want target removed", out)
		}
	})

	t.Run("on attributes cannot be allowed", func(t *testing.T) {
		t.Parallel()

		p := DefaultPolicy()
		p.AllowedAttributes = append(p.AllowedAttributes, "onclick")
		s, err := NewSanitizer(p)
		if err != nil {
			t.Fatalf("NewSanitizer() error = %v", err)
		}
		if out := s.Sanitize(`<p onclick="x()">x</p>`); strings.Contains(out, "onclick") {
			t.Errorf("Sanitize() = %q, want onclick removed", out)
		}
	})

	t.Run("forbidding a prose tag drops it with its content", func(t *testing.T) {
		t.Parallel()

		p := DefaultPolicy()
		p.ForbiddenTags = append(p.ForbiddenTags, "img", "blockquote")
		s, err := NewSanitizer(p)
		if err != nil {
			t.Fatalf("NewSanitizer() error = %v", err)
		}
		out := s.Sanitize(`<p>a</p><blockquote>quoted</blockquote><img src="x">`)
		if strings.Contains(out, "quoted") || strings.Contains(out, "<img") {
			t.Errorf("Sanitize() = %q, want blockquote and img removed", out)
		}
	})

	t.Run("forbidding a tag with allowed attributes drops it", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			tag   string
			input string
		}{
			{"img", `<img src="x" alt="a" title="t" width="10">`},
			{"a", `<a href="/x" title="t" class="footnote-ref">link</a>`},
			{"abbr", `<abbr title="t">HTML</abbr>`},
			{"span", `<span class="k">x</span>`},
			{"pre", `<pre class="chroma">x</pre>`},
			{"code", `<code class="language-go">x</code>`},
			{"div", `<div class="table-wrapper">x</div>`},
			{"tr", `<tr class="table-row">x</tr>`},
			{"th", `<th align="left" colspan="2">x</th>`},
			{"td", `<td align="left" rowspan="2">x</td>`},
			{"h1", `<h1 id="intro">x</h1>`},
			{"h6", `<h6 id="intro">x</h6>`},
			{"li", `<li id="fn:1">x</li>`},
			{"sup", `<sup id="fnref:1">1</sup>`},
			{"ol", `<ol start="2">x</ol>`},
		}

		for _, tt := range tests {
			p := DefaultPolicy()
			p.ForbiddenTags = append(p.ForbiddenTags, tt.tag)
			s, err := NewSanitizer(p)
			if err != nil {
				t.Fatalf("NewSanitizer(forbid %s) error = %v", tt.tag, err)
			}
			if out := s.Sanitize(tt.input); strings.Contains(out, "<"+tt.tag) {
				t.Errorf("forbid %s: Sanitize(%q) = %q, want tag removed", tt.tag, tt.input, out)
			}
		}
	})

	t.Run("forbidding a tag keeps its attributes on other tags", func(t *testing.T) {
		t.Parallel()

		p := DefaultPolicy()
		p.ForbiddenTags = append(p.ForbiddenTags, "abbr")
		s, err := NewSanitizer(p)
		if err != nil {
			t.Fatalf("NewSanitizer() error = %v", err)
		}
		if out := s.Sanitize(`<a href="/x" title="t">x</a>`); !strings.Contains(out, `title="t"`) {
			t.Errorf("Sanitize() = %q, want title kept on a", out)
		}
	})

	t.Run("external links open in new tab", func(t *testing.T) {
		t.Parallel()

		p := DefaultPolicy()
		p.ExternalLinksNewTab = true
		s, err := NewSanitizer(p)
		if err != nil {
			t.Fatalf("NewSanitizer() error = %v", err)
		}
		doc := query(t, s.Sanitize(`<a href="https://example.com">ext</a><a href="#local">local</a>`))
		if doc.Find(`a[href="https://example.com"][target="_blank"]`).Length() != 1 {
			t.Error("external link should get target=_blank")
		}
		if doc.Find(`a[href="#local"][target]`).Length() != 0 {
			t.Error("local link should not get a target")
		}
	})

	t.Run("invalid names", func(t *testing.T) {
		t.Parallel()

		for _, p := range []Policy{
			{ForbiddenTags: []string{"<script>"}},
			{ForbiddenAttributes: []string{""}},
			{AllowedAttributes: []string{"data id"}},
		} {
			if _, err := NewSanitizer(p); !errors.Is(err, ErrInvalidPolicy) {
				t.Errorf("NewSanitizer(%+v) error = %v, want ErrInvalidPolicy", p, err)
			}
		}
	})
}

func TestSanitizer_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := newDefaultSanitizer(t).Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", got)
	}
}

func TestSanitizer_OutputIsWellFormed(t *testing.T) {
	t.Parallel()

	out := newDefaultSanitizer(t).Sanitize(`<p>unclosed <b>bold <i>both</p><div>`)
	if _, err := html.Parse(strings.NewReader(out)); err != nil {
		t.Errorf("sanitized output does not parse: %v", err)
	}
}

func TestSanitizer_ForbiddenVoidElementsKeepFollowingContent(t *testing.T) {
	t.Parallel()

	s := newDefaultSanitizer(t)
	out := s.Sanitize(`<p>before</p><input name="q"><embed src="x.swf"><p>after</p>`)
	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Errorf("Sanitize() = %q, want surrounding paragraphs kept", out)
	}
	if strings.Contains(out, "<input") || strings.Contains(out, "<embed") {
		t.Errorf("Sanitize() = %q, want void elements dropped", out)
	}
}
