package md2site

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2site/internal/document"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// Metadata is the typed property block every dialect produces.
type Metadata = document.Metadata

// Date is a calendar date as used by Metadata.
type Date = document.Date

// Dialect parses and renders one markup language. The build is written
// against this interface only; dialects are selected by file extension.
type Dialect interface {
	// Name identifies the dialect in logs.
	Name() string

	// Extensions lists the file extensions handled, with the leading dot.
	Extensions() []string

	// Parse splits a source file into its metadata and body.
	Parse(src string) (Metadata, string, error)

	// Render turns a body into an HTML fragment. Section headings must be
	// emitted as <hN> elements.
	Render(ctx context.Context, body string) (string, error)
}

// Compile-time interface implementation checks.
var (
	_ Dialect                       = (*MarkdownDialect)(nil)
	_ pipeline.MarkdownPreprocessor = (*pipeline.TextNormalizer)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
)

// MarkdownDialect handles .md and .markdown files: CJK reflow and
// ignore-marker normalization, then goldmark with GFM, footnotes, heading
// attributes and chroma highlighting.
type MarkdownDialect struct {
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
}

// NewMarkdownDialect creates the default Markdown dialect.
func NewMarkdownDialect() *MarkdownDialect {
	return &MarkdownDialect{
		preprocessor:  &pipeline.TextNormalizer{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
	}
}

func (d *MarkdownDialect) Name() string { return "markdown" }

func (d *MarkdownDialect) Extensions() []string { return []string{".md", ".markdown"} }

// Parse accepts key:value, "---" YAML and "+++" TOML metadata blocks.
func (d *MarkdownDialect) Parse(src string) (Metadata, string, error) {
	return document.Parse(src)
}

func (d *MarkdownDialect) Render(ctx context.Context, body string) (string, error) {
	content := d.preprocessor.PreprocessMarkdown(ctx, body)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.htmlConverter.ToHTML(ctx, content)
}

// dialectRegistry maps lower-cased extensions to dialects.
type dialectRegistry map[string]Dialect

func (r dialectRegistry) register(d Dialect) error {
	if d == nil {
		return fmt.Errorf("%w: nil", ErrNoDialect)
	}
	exts := d.Extensions()
	if len(exts) == 0 {
		return fmt.Errorf("%w: %s declares no extensions", ErrNoDialect, d.Name())
	}
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: %s: bad extension %q", ErrNoDialect, d.Name(), ext)
		}
		r[strings.ToLower(ext)] = d
	}
	return nil
}

// lookup returns the dialect for path, or nil for non-document files.
func (r dialectRegistry) lookup(path string) Dialect {
	return r[strings.ToLower(filepath.Ext(path))]
}
