package pipeline

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// ignoreMarker is the formatter hint authors put before fenced code blocks.
const ignoreMarker = "\n<!-- prettier-ignore -->\n```"

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// TextNormalizer prepares a document body for the markup renderer.
type TextNormalizer struct{}

var _ MarkdownPreprocessor = (*TextNormalizer)(nil)

// PreprocessMarkdown normalizes line endings, joins wrapped wide-character
// lines and strips formatter ignore markers.
func (p *TextNormalizer) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = ReflowCJK(content)
	content = StripIgnoreMarkers(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// StripIgnoreMarkers removes a <!-- prettier-ignore --> line sitting
// directly above a fenced code block.
func StripIgnoreMarkers(content string) string {
	return strings.ReplaceAll(content, ignoreMarker, "\n```")
}

// reflowState tracks what the scanner has just seen.
type reflowState int

const (
	stateChar reflowState = iota
	stateWide
	stateWideBreak // wide char, then a newline and optional spaces
)

// ReflowCJK joins lines that were hard-wrapped between two wide
// (CJK) characters. A newline after a wide character is held back together
// with any following spaces; if the next printable character is also wide
// the held text is dropped, otherwise it is restored unchanged. Blank lines
// always survive, so paragraph breaks are never merged.
func ReflowCJK(content string) string {
	var (
		out   strings.Builder
		held  strings.Builder
		state = stateChar
	)
	out.Grow(len(content))

	for _, r := range content {
		switch state {
		case stateChar:
			out.WriteRune(r)
			if isWide(r) {
				state = stateWide
			}

		case stateWide:
			switch {
			case r == '\n':
				held.WriteRune(r)
				state = stateWideBreak
			case isWide(r):
				out.WriteRune(r)
			default:
				out.WriteRune(r)
				state = stateChar
			}

		case stateWideBreak:
			switch {
			case r == ' ':
				held.WriteRune(r)
			case isWide(r):
				held.Reset()
				out.WriteRune(r)
				state = stateWide
			default:
				out.WriteString(held.String())
				held.Reset()
				out.WriteRune(r)
				state = stateChar
			}
		}
	}

	// Trailing newline after a wide char is kept.
	out.WriteString(held.String())
	return out.String()
}

// isWide reports whether r occupies two columns in East Asian text.
func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}
