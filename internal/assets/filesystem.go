package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads user styles and templates from
// {root}/styles/{name}.css and {root}/templates/{name}.html. Files that
// resolve, through symlinks, outside root are refused.
type FilesystemLoader struct {
	root string
	fsys fs.FS
}

// NewFilesystemLoader opens root, which must be a readable directory.
// Failures wrap ErrInvalidBasePath.
func NewFilesystemLoader(root string) (*FilesystemLoader, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	if _, err := os.ReadDir(abs); err != nil {
		var pathErr *fs.PathError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
		case errors.As(err, &pathErr):
			return nil, fmt.Errorf("%w: not a readable directory: %s", ErrInvalidBasePath, abs)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{root: abs, fsys: os.DirFS(abs)}, nil
}

func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.load(styleKind, name)
}

func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.load(templateKind, name)
}

// StyleNames lists the styles found under root, sorted.
func (f *FilesystemLoader) StyleNames() []string {
	return styleKind.names(f.fsys)
}

func (f *FilesystemLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	full := filepath.Join(f.root, filepath.FromSlash(k.path(name)))
	if err := f.contain(full); err != nil {
		return "", err
	}

	content, err := os.ReadFile(full) // #nosec G304 -- contained in root
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// contain fails with ErrPathTraversal when full, after resolving symlinks,
// is not below root. A missing file is checked as written.
func (f *FilesystemLoader) contain(full string) error {
	if resolved, err := filepath.EvalSymlinks(full); err == nil {
		full = resolved
	}
	if !strings.HasPrefix(full, f.root+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, full)
	}
	return nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
