package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed styles/*.css templates/*.html
var files embed.FS

// EmbeddedLoader loads the built-in stylesheets and templates.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in stylesheet by name, without the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readEmbedded(name, "styles", ".css", ErrStyleNotFound)
}

// LoadTemplate loads a built-in template by name, without the .html extension.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readEmbedded(name, "templates", ".html", ErrTemplateNotFound)
}

// StyleNames lists the built-in stylesheets.
func (e *EmbeddedLoader) StyleNames() []string {
	entries, err := files.ReadDir("styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name()[:len(entry.Name())-len(path.Ext(entry.Name()))])
	}
	return names
}

func readEmbedded(name, dir, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := files.ReadFile(dir + "/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
