package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2tufte/internal/mdast"
)

// RewriteRelativePaths rewrites relative image and link destinations in the
// tree to absolute file:// URLs under sourceDir. It must run before the
// tufte passes, which serialize note and caption content to raw markup.
//
// Destinations escaping sourceDir, anchors, URLs and absolute paths are left
// alone. An empty sourceDir is a no-op.
func RewriteRelativePaths(root *mdast.Node, sourceDir string) error {
	if sourceDir == "" || root == nil {
		return nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return err
	}

	mdast.Visit(root, func(n *mdast.Node) bool {
		return n.Kind == mdast.KindImage || n.Kind == mdast.KindLink || n.Kind == mdast.KindDefinition
	}, func(n *mdast.Node, index int, _ *mdast.Node) (mdast.Action, int) {
		n.URL = rewritePath(n.URL, absSourceDir)
		return mdast.Next(index)
	})
	return nil
}

func rewritePath(dest, sourceDir string) string {
	if !isRelativePath(dest) {
		return dest
	}

	// Keep any fragment or query on the rewritten URL.
	path, suffix := dest, ""
	if i := strings.IndexAny(dest, "?#"); i != -1 {
		path, suffix = dest[:i], dest[i:]
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}

	absPath := filepath.Join(sourceDir, filepath.FromSlash(path))
	if !isPathUnderDir(absPath, sourceDir) {
		return dest
	}
	return pathToFileURL(absPath) + suffix
}

func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	for _, scheme := range []string{"http:", "https:", "file:", "data:", "mailto:"} {
		if strings.HasPrefix(strings.ToLower(path), scheme) {
			return false
		}
	}
	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}

// isPathUnderDir reports whether absPath is dir or inside it.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
