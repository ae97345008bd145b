// Package assets provides the stylesheets and page templates used to turn
// rendered documents into standalone HTML pages.
//
//	AssetLoader
//	    ├── EmbeddedLoader    built-in styles and templates (go:embed)
//	    ├── FilesystemLoader  user assets from a directory
//	    └── AssetResolver     user directory first, then built-in
//
// A user directory mirrors the built-in layout:
//
//	{root}/
//	├── styles/{name}.css
//	└── templates/{name}.html
//
// Names are plain identifiers without dots or separators. FilesystemLoader
// resolves symlinks and refuses files that end up outside its root.
package assets
