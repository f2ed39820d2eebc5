package pipeline

import (
	"errors"
	"fmt"
	"io"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ErrUnknownStyle indicates a chroma style name that is not registered.
var ErrUnknownStyle = errors.New("unknown highlight style")

// WriteHighlightCSS writes the stylesheet matching the CSS classes that
// GoldmarkConverter emits for fenced code blocks.
func WriteHighlightCSS(w io.Writer, styleName string) error {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	style, ok := styles.Registry[styleName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, style); err != nil {
		return fmt.Errorf("writing highlight CSS: %w", err)
	}
	return nil
}

// HighlightStyles lists the registered chroma style names, sorted.
func HighlightStyles() []string {
	return styles.Names()
}
