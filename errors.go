package mdsafe

import (
	"errors"

	"github.com/alnah/go-mdsafe/internal/assets"
	"github.com/alnah/go-mdsafe/internal/highlight"
	"github.com/alnah/go-mdsafe/internal/pipeline"
)

// Sentinel errors for renderer construction. Rendering itself never fails:
// degradations fall back to escaped code and unexpected failures yield "".
var (
	// Language table errors.
	ErrInvalidLanguageID = highlight.ErrInvalidLanguageID
	ErrDuplicateLanguage = highlight.ErrDuplicateLanguage
	ErrUnknownLanguage   = highlight.ErrUnknownLanguage
	ErrRegistryFrozen    = highlight.ErrRegistryFrozen

	// ErrHighlightUnavailable is returned by a SyntaxHighlighter that has
	// nothing to offer for a call. The code block is rendered as escaped text.
	ErrHighlightUnavailable = highlight.ErrUnavailable

	// Configuration errors.
	ErrInvalidPolicy         = pipeline.ErrInvalidPolicy
	ErrInvalidTabWidth       = errors.New("invalid tab width")
	ErrUnknownHighlightStyle = highlight.ErrUnknownStyle

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// ErrDocumentRender indicates the standalone document template failed.
	ErrDocumentRender = pipeline.ErrDocumentRender
)
