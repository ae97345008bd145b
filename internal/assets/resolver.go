package assets

import (
	"errors"
	"slices"
)

// AssetResolver looks an asset up in a user directory first and falls back
// to the built-in assets when the user directory lacks it. Invalid names
// and read errors do not fall back.
type AssetResolver struct {
	custom   *FilesystemLoader // nil without a user directory
	embedded *EmbeddedLoader
}

// NewAssetResolver builds a resolver over customBasePath, or over the
// built-in assets only when it is empty.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.load(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.load(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// StyleNames lists every style the resolver can load, user styles
// included, sorted and without duplicates.
func (r *AssetResolver) StyleNames() []string {
	names := r.embedded.StyleNames()
	if r.custom != nil {
		names = append(names, r.custom.StyleNames()...)
		slices.Sort(names)
		names = slices.Compact(names)
	}
	return names
}

// CustomStyleNames lists the styles of the user directory only.
func (r *AssetResolver) CustomStyleNames() []string {
	if r.custom == nil {
		return nil
	}
	return r.custom.StyleNames()
}

func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

func (r *AssetResolver) load(fn func(AssetLoader) (string, error)) (string, error) {
	if r.custom != nil {
		content, err := fn(r.custom)
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return content, err
		}
	}
	return fn(r.embedded)
}

var _ AssetLoader = (*AssetResolver)(nil)
