package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{
			name:        "loads default style",
			styleName:   DefaultStyleName,
			wantContain: ".markdown-body",
		},
		{
			name:        "default style covers table wrappers",
			styleName:   DefaultStyleName,
			wantContain: ".markdown-table-wrapper",
		},
		{
			name:        "loads minimal style",
			styleName:   "minimal",
			wantContain: "font-family",
		},
		{
			name:      "returns ErrStyleNotFound for nonexistent",
			styleName: "nonexistent-style-xyz",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "returns ErrInvalidAssetName for empty name",
			styleName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "returns ErrInvalidAssetName for path traversal",
			styleName: "../secret",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "returns ErrInvalidAssetName for backslash traversal",
			styleName: "..\\secret",
			wantErr:   ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) content should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	got, err := loader.LoadTemplate(DocumentTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) error = %v", DocumentTemplateName, err)
	}

	// The document wrapper fills these fields.
	for _, part := range []string{"{{.Lang}}", "{{.Title}}", "{{.CSS}}", "{{.Body}}", `class="markdown-body"`} {
		if !strings.Contains(got, part) {
			t.Errorf("document template should contain %q", part)
		}
	}

	if _, err := loader.LoadTemplate("cover"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(cover) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestEmbeddedLoader_StyleNames(t *testing.T) {
	t.Parallel()

	names := NewEmbeddedLoader().StyleNames()
	for _, want := range []string{DefaultStyleName, "minimal"} {
		if !slices.Contains(names, want) {
			t.Errorf("StyleNames() = %v, missing %q", names, want)
		}
	}
	for _, name := range names {
		if strings.HasSuffix(name, ".css") {
			t.Errorf("StyleNames() entry %q keeps its extension", name)
		}
	}
}
