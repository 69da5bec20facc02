// Package assets provides the fonts and color themes used to render code images.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - bundled Go Mono fonts and XML themes
//	    ├── FilesystemLoader  - fonts and themes from a custom directory
//	    └── AssetResolver     - custom first, embedded as fallback
//
// The bundled font set is the Go Mono family (regular, italic, bold,
// bold-italic) compiled into the binary, so rendering works on hosts
// without any installed fonts.
//
// # Directory Structure
//
//	{basePath}/
//	├── fonts/
//	│   └── {name}.ttf | {name}.otf
//	└── styles/
//	    └── {name}.xml           # chroma XML style
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
