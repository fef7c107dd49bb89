package mdsafe_test

import (
	"fmt"
	"html"
	"strings"

	mdsafe "github.com/alnah/go-mdsafe"
)

// Example renders untrusted Markdown. Raw HTML is parsed and filtered, so the
// event handler is dropped and the image kept.
func Example() {
	fmt.Print(mdsafe.RenderToSafeHTML("<img src=x onerror=alert(1)>", nil))
	// Output: <img src="x">
}

// ExampleRenderWithHighlighting swaps the highlighter for a single call.
// The highlighter receives the canonical id the alias resolved to.
func ExampleRenderWithHighlighting() {
	h := mdsafe.HighlightFunc(func(code, language string) string {
		return `<span class="` + language + `">` + html.EscapeString(strings.TrimSpace(code)) + `</span>`
	})

	fmt.Print(mdsafe.RenderWithHighlighting("```py\nx = 1\n```", h))
	// Output: <pre class="chroma language-python"><code class="language-python"><span class="python">x = 1</span></code></pre>
}

func ExampleExtractPlainText() {
	fmt.Println(mdsafe.ExtractPlainText("# Title\n\nSome **bold** text.\n\n<script>alert(1)</script>"))
	// Output: Title Some bold text.
}

func ExampleResolveLanguage() {
	id, ok := mdsafe.ResolveLanguage("JS")
	fmt.Println(id, ok)

	_, ok = mdsafe.ResolveLanguage("totally-unknown-lang")
	fmt.Println(ok)
	// Output:
	// javascript true
	// false
}

// ExampleNew builds a renderer with a stricter policy and an extra language.
func ExampleNew() {
	policy := mdsafe.DefaultPolicy()
	policy.ForbiddenTags = append(policy.ForbiddenTags, "img")

	table := mdsafe.DefaultLanguageTable()
	table.AddLanguage(mdsafe.Language{ID: "zig", DisplayName: "Zig"})
	table.AddAlias("ziglang", "zig")

	r, err := mdsafe.New(
		mdsafe.WithPolicy(policy),
		mdsafe.WithLanguages(table),
		mdsafe.WithoutHighlighting(),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(r.RenderToSafeHTML("![logo](logo.png)\n\n```ziglang\nconst x = 1;\n```", nil))
	// Output:
	// <p></p>
	// <pre class="language-zig"><code class="language-zig">const x = 1;
	// </code></pre>
}
