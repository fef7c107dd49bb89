package assets

// Names of the embedded page style and document template.
const (
	DefaultStyleName     = "default"
	DocumentTemplateName = "document"
)

// AssetLoader reads page styles and the document template by stem name.
// Names are checked with ValidateAssetName before any read; a missing
// style reports ErrStyleNotFound and a missing template ErrTemplateNotFound.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}
