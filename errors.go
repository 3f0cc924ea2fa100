package litdoc

import (
	"errors"

	"github.com/alnah/go-litdoc/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// Rendering and HTML tree errors raised by pipeline stages.
	ErrRender    = pipeline.ErrRender
	ErrHTMLParse = pipeline.ErrHTMLParse

	// Option validation errors.
	ErrInvalidTOCDepth = pipeline.ErrInvalidTOCDepth
	ErrInvalidFence    = pipeline.ErrInvalidFence

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
