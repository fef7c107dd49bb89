package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName rejects names that are not a bare file stem.
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid base path")
	ErrAssetRead       = errors.New("failed to read asset")

	// ErrPathTraversal is returned when a style or template would be read
	// from outside the asset directory, directly or through a symlink.
	ErrPathTraversal = errors.New("path traversal detected")
)
