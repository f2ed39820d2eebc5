package main

import (
	"errors"
	"os"
	"path/filepath"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/dateutil"
	"github.com/alnah/go-md2site/internal/document"
	"github.com/alnah/go-md2site/internal/hints"
	"github.com/alnah/go-md2site/internal/pipeline"
	"github.com/alnah/go-md2site/internal/render"
)

// Exit codes for md2site CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Site built or checked
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, metadata, or site invariant
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitRender  = 4 // Markup or template rendering errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Rendering errors (exit 4)
	if errors.Is(err, md2site.ErrRender) ||
		errors.Is(err, md2site.ErrTemplate) {
		return ExitRender
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, pipeline.ErrUnknownStyle) ||
		errors.Is(err, md2site.ErrInvalidRoot) ||
		errors.Is(err, md2site.ErrNoOutput) ||
		errors.Is(err, md2site.ErrParse) ||
		errors.Is(err, md2site.ErrInvariant) ||
		errors.Is(err, ErrInvalidRegex) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2site.ErrReadSource) ||
		errors.Is(err, md2site.ErrWriteOutput) ||
		errors.Is(err, md2site.ErrCopyAsset) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, root string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(root)
	case errors.Is(err, document.ErrMissingTitle):
		return hints.ForMissingTitle()
	case errors.Is(err, md2site.ErrMissingDate):
		return hints.ForMissingDate()
	case errors.Is(err, document.ErrMalformedMetadata):
		return hints.ForUnknownKey()
	case errors.Is(err, render.ErrTemplateNotFound):
		return hints.ForTemplateNotFound(filepath.Join(root, md2site.TemplateDirName))
	case errors.Is(err, md2site.ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, dateutil.ErrInvalidDateFormat):
		return hints.ForDateFormat()
	case errors.Is(err, pipeline.ErrUnknownStyle):
		return hints.ForHighlightStyle(pipeline.HighlightStyles())
	default:
		return ""
	}
}
