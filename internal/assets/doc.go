// Package assets provides the stylesheets and the HTML document template
// used for standalone output. Assets can be loaded from embedded files or a
// custom filesystem path.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom FilesystemLoader first and falls back to
// EmbeddedLoader when the asset is not found there, so a directory can
// override a single stylesheet while keeping the rest.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # Page stylesheet (e.g., minimal.css)
//	└── templates/
//	    └── {name}.html          # Document template (e.g., document.html)
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
