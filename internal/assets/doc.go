// Package assets provides the stylesheets inlined into generated documents.
//
//	StyleLoader (interface)
//	    ├── EmbeddedLoader    built-in styles compiled into the binary
//	    ├── FilesystemLoader  {basePath}/styles/{name}.css on disk
//	    └── AssetResolver     custom directory first, embedded as fallback
//
// Style names are validated before use and FilesystemLoader keeps resolved
// paths, symlinks included, inside its base directory.
package assets
