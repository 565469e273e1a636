// Package assets provides the CSS styles and HTML page templates of the
// toolbox web UI and of standalone Markdown exports.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the server. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader when the asset is
// not found. This lets a deployment override one stylesheet or one template
// set while keeping the rest.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # e.g. preview.css, app.css
//	└── templates/
//	    └── {name}/
//	        ├── layout.html      # page shell and navigation header
//	        ├── home.html        # tool cards
//	        ├── markdown.html    # editor and preview
//	        └── pdf-merge.html   # upload area and file list
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
