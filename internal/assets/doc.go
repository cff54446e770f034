// Package assets provides the viewer shell page and its CSS styles.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles, shell page)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # CSS styles (e.g., github.css)
//	└── templates/
//	    └── viewer.html          # Shell page template
//
// The shell template is parsed with html/template; it receives the session
// token and the page title. The selected style is injected into <head>
// after template execution.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
