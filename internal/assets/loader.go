package assets

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// AssetLoader loads CSS styles and page templates by name.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// kind is a class of asset: files with one extension in one directory.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// path is the slash-separated location of name relative to a base.
func (k kind) path(name string) string {
	return k.dir + "/" + name + k.ext
}

// names lists the assets of kind k in fsys, sorted. A missing directory
// yields no names.
func (k kind) names(fsys fs.FS) []string {
	entries, err := fs.ReadDir(fsys, k.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), k.ext)
		if !ok || e.IsDir() || ValidateAssetName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateAssetName rejects empty names and names holding a separator or
// a dot, so a name always maps to exactly one file in its directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
