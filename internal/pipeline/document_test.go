package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const testDocumentTemplate = `<html lang="{{.Lang}}"><head><title>{{.Title}}</title>{{if .CSS}}<style>{{.CSS}}</style>{{end}}</head><body>{{.Body}}</body></html>`

func TestDocumentWrapper_Wrap(t *testing.T) {
	t.Parallel()

	w, err := NewDocumentWrapper(testDocumentTemplate)
	if err != nil {
		t.Fatalf("NewDocumentWrapper() error = %v", err)
	}

	tests := []struct {
		name         string
		fragment     string
		data         DocumentData
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "title from first h1",
			fragment:     `<h2>Intro</h2><h1 id="main">Main <em>Title</em></h1>`,
			wantContains: []string{"<title>Main Title</title>", `lang="en"`},
		},
		{
			name:         "title from first heading when no h1",
			fragment:     `<p>x</p><h3>Third</h3><h2>Second</h2>`,
			wantContains: []string{"<title>Third</title>"},
		},
		{
			name:         "explicit title is escaped",
			fragment:     "<p>x</p>",
			data:         DocumentData{Title: "<b>&</b>", Lang: "fr"},
			wantContains: []string{"<title>&lt;b&gt;&amp;&lt;/b&gt;</title>", `lang="fr"`},
		},
		{
			name:         "fragment inserted verbatim",
			fragment:     `<pre class="chroma"><code>a &lt; b</code></pre>`,
			wantContains: []string{`<body><pre class="chroma"><code>a &lt; b</code></pre></body>`},
		},
		{
			name:         "css injected",
			fragment:     "<p>x</p>",
			data:         DocumentData{CSS: "body { color: red; }"},
			wantContains: []string{"<style>body { color: red; }</style>"},
		},
		{
			name:     "css cannot close the style block",
			fragment: "<p>x</p>",
			data:     DocumentData{CSS: "a{}</style><script>alert(1)</script>"},
			wantNot:  []string{"</style><script>"},
		},
		{
			name:     "no css no style block",
			fragment: "<p>x</p>",
			wantNot:  []string{"<style>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := w.Wrap(context.Background(), tt.fragment, tt.data)
			if err != nil {
				t.Fatalf("Wrap() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Wrap() missing %q in:\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("Wrap() should not contain %q in:\n%s", not, got)
				}
			}
		})
	}
}

func TestDocumentWrapper_Cancelled(t *testing.T) {
	t.Parallel()

	w, err := NewDocumentWrapper(testDocumentTemplate)
	if err != nil {
		t.Fatalf("NewDocumentWrapper() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := w.Wrap(ctx, "<p>x</p>", DocumentData{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Wrap() error = %v, want context.Canceled", err)
	}
}

func TestNewDocumentWrapper_InvalidTemplate(t *testing.T) {
	t.Parallel()

	if _, err := NewDocumentWrapper("{{.Title"); err == nil {
		t.Error("NewDocumentWrapper() should reject a malformed template")
	}
}

func TestDocumentWrapper_ExecutionError(t *testing.T) {
	t.Parallel()

	w, err := NewDocumentWrapper("{{.Missing}}")
	if err != nil {
		t.Fatalf("NewDocumentWrapper() error = %v", err)
	}
	if _, err := w.Wrap(context.Background(), "", DocumentData{}); !errors.Is(err, ErrDocumentRender) {
		t.Errorf("Wrap() error = %v, want ErrDocumentRender", err)
	}
}

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "body { color: red; }", want: "body { color: red; }"},
		{input: "</style>", want: `<\/style>`},
		{input: "</STYLE></script>", want: `<\/STYLE><\/script>`},
	}

	for _, tt := range tests {
		if got := sanitizeCSS(tt.input); got != tt.want {
			t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
