package assets

import (
	"errors"
	"testing"
)

// embeddedOnly returns a resolver without an asset directory.
func embeddedOnly(t *testing.T) *AssetResolver {
	t.Helper()
	r, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver(\"\") error = %v", err)
	}
	return r
}

func TestAssetResolver_EmbeddedStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		styleName string
		wantErr   error
	}{
		{name: "default style", styleName: DefaultStyleName},
		{name: "nonexistent style", styleName: "nonexistent", wantErr: ErrStyleNotFound},
		{name: "valid name with hyphen", styleName: "my-style", wantErr: ErrStyleNotFound},
		{name: "absolute path", styleName: "/etc/passwd", wantErr: ErrInvalidAssetName},
		{name: "name with dot", styleName: "style.name", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, err := embeddedOnly(t).LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if content == "" {
				t.Errorf("LoadStyle(%q) returned empty content", tt.styleName)
			}
		})
	}
}

func TestAssetResolver_EmbeddedTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		templateName string
		wantErr      error
	}{
		{name: "document template", templateName: DocumentTemplateName},
		{name: "nonexistent template", templateName: "nonexistent", wantErr: ErrTemplateNotFound},
		{name: "path traversal", templateName: "../secret", wantErr: ErrInvalidAssetName},
		{name: "empty name", templateName: "", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, err := embeddedOnly(t).LoadTemplate(tt.templateName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q) error = %v, want %v", tt.templateName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", tt.templateName, err)
			}
			if content == "" {
				t.Errorf("LoadTemplate(%q) returned empty content", tt.templateName)
			}
		})
	}
}
