// Package assets provides the HTML templates pages are rendered with.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in default theme (go:embed)
//	    ├── FilesystemLoader  - the site's template directory on disk
//	    └── AssetResolver     - combines both with site-first fallback
//
// A site only needs to provide the templates it wants to change: any name
// missing from its template directory is served by the default theme.
//
// # Template Names
//
// Names are slash-separated paths relative to the template root, such as
// "article.html" or "partials/nav.html". The build looks up
// "<template>.html", where template comes from the document metadata or
// defaults to "article" or "page".
//
// # Security
//
// Names are validated to prevent path traversal. FilesystemLoader resolves
// symlinks and verifies paths stay within its base directory.
package assets
