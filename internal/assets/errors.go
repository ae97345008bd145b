package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName rejects names that could leave the asset directory.
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid asset directory")
	ErrAssetRead       = errors.New("failed to read asset")

	// ErrPathTraversal reports a symlink pointing outside the asset directory.
	ErrPathTraversal = errors.New("asset outside base directory")
)
