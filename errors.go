package md2site

import (
	"errors"
	"fmt"
)

// Sentinel errors for site builds. Every error returned by Build or Check
// wraps one of these, together with the offending file where there is one.
var (
	// Setup errors.
	ErrInvalidRoot = errors.New("invalid site root")
	ErrNoOutput    = errors.New("output directory not set")
	ErrNoDialect   = errors.New("invalid dialect")

	// Document errors.
	ErrParse     = errors.New("document parse failed")
	ErrInvariant = errors.New("site invariant violated")

	// ErrMissingDate reports an article without a date. Checked for every
	// article before anything is rendered or written.
	ErrMissingDate = fmt.Errorf("%w: article has no date", ErrInvariant)

	// Rendering errors.
	ErrRender   = errors.New("markup rendering failed")
	ErrTemplate = errors.New("template rendering failed")

	// I/O errors.
	ErrReadSource  = errors.New("failed to read source")
	ErrWriteOutput = errors.New("failed to write output")
	ErrCopyAsset   = errors.New("failed to copy asset")
)
