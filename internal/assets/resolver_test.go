package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeAsset(t *testing.T, base, dir, file, content string) {
	t.Helper()

	full := filepath.Join(base, dir)
	if err := os.MkdirAll(full, 0755); err != nil {
		t.Fatalf("failed to create %s dir: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(full, file), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", file, err)
	}
}

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.custom != nil {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if resolver.custom == nil {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestAssetResolver_Fallback - custom first, embedded on not-found only
// ---------------------------------------------------------------------------

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "styles", "mystyle.css", "/* custom style */")
	writeAsset(t, base, "styles", "minimal.css", "/* minimal override */")
	writeAsset(t, base, "templates", "document.html", "<main>{{.Body}}</main>")

	custom, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	embeddedOnly, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name     string
		resolver *AssetResolver
		load     func(*AssetResolver) (string, error)
		want     string // exact content, "" = any non-empty content
		wantErr  error
	}{
		{
			name:     "custom-only style",
			resolver: custom,
			load:     func(r *AssetResolver) (string, error) { return r.LoadStyle("mystyle") },
			want:     "/* custom style */",
		},
		{
			name:     "custom overrides embedded style",
			resolver: custom,
			load:     func(r *AssetResolver) (string, error) { return r.LoadStyle("minimal") },
			want:     "/* minimal override */",
		},
		{
			name:     "missing custom style falls back",
			resolver: custom,
			load:     func(r *AssetResolver) (string, error) { return r.LoadStyle(DefaultStyleName) },
		},
		{
			name:     "custom overrides document template",
			resolver: custom,
			load:     func(r *AssetResolver) (string, error) { return r.LoadTemplate(DocumentTemplateName) },
			want:     "<main>{{.Body}}</main>",
		},
		{
			name:     "embedded document template",
			resolver: embeddedOnly,
			load:     func(r *AssetResolver) (string, error) { return r.LoadTemplate(DocumentTemplateName) },
		},
		{
			name:     "unknown style in neither",
			resolver: custom,
			load:     func(r *AssetResolver) (string, error) { return r.LoadStyle("nonexistent-xyz") },
			wantErr:  ErrStyleNotFound,
		},
		{
			name:     "unknown template in neither",
			resolver: embeddedOnly,
			load:     func(r *AssetResolver) (string, error) { return r.LoadTemplate("nonexistent-xyz") },
			wantErr:  ErrTemplateNotFound,
		},
		{
			name:     "style validation error not fallen back",
			resolver: custom,
			load:     func(r *AssetResolver) (string, error) { return r.LoadStyle("../secret") },
			wantErr:  ErrInvalidAssetName,
		},
		{
			name:     "template validation error not fallen back",
			resolver: custom,
			load:     func(r *AssetResolver) (string, error) { return r.LoadTemplate("../secret") },
			wantErr:  ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.resolver)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want == "" && got == "" {
				t.Error("got empty content")
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"ErrStyleNotFound", ErrStyleNotFound, true},
		{"ErrTemplateNotFound", ErrTemplateNotFound, true},
		{"wrapped not found", errors.Join(errors.New("ctx"), ErrStyleNotFound), true},
		{"string lookalike", errors.New("wrap: " + ErrStyleNotFound.Error()), false},
		{"ErrInvalidAssetName", ErrInvalidAssetName, false},
		{"ErrAssetRead", ErrAssetRead, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isNotFoundError(tt.err); got != tt.want {
				t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
