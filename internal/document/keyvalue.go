package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-md2site/internal/codec"
)

var (
	// A first line that opens and closes a comment, e.g. <!-- prettier-ignore -->.
	leadingCommentLine = regexp.MustCompile(`^[ \t]*<!--.*-->[ \t]*$`)

	// A line that only opens a multi-line comment.
	commentOpenLine = regexp.MustCompile(`^[ \t]*<!--[ \t]*$`)

	// A property line naming one of the Metadata keys.
	propertyLine = regexp.MustCompile(`^(page|title|author|date|update_date|slug|draft|template|toc|toc_level|math):([ \t]|$)`)

	// Single-line comments inside the metadata block.
	inlineComment = regexp.MustCompile(`<!--.*?-->`)

	// Dangling open/close markers of a multi-line comment.
	commentMarker = regexp.MustCompile(`[ \t]*(<!--|-->)[ \t]*`)

	// ATX level-1 heading used as an implicit title.
	titleHeading = regexp.MustCompile(`^#[ \t]+(.+?)[ \t#]*$`)
)

// parseKeyValue handles the line-oriented dialect:
//
//	<!-- prettier-ignore -->
//	<!--
//	title: Hello
//	date: 2024-01-02
//	-->
//
//	body...
//
// A leading "# Title" heading is accepted in place of a title key.
func parseKeyValue(src string) (Metadata, string, error) {
	src = stripLeadingComment(src)
	if strings.HasPrefix(src, "\n") {
		return decodeBlock("", src[1:])
	}

	var titleLine string
	if first, rest, _ := strings.Cut(src, "\n"); titleHeading.MatchString(first) {
		title := titleHeading.FindStringSubmatch(first)[1]
		titleLine = "title: " + strconv.Quote(title) + "\n"
		src = rest
		// After a blank line, the next block holds properties only when it
		// is a comment or a run of property lines; otherwise it is body.
		if rest == "" || strings.HasPrefix(rest, "\n") {
			src = strings.TrimPrefix(rest, "\n")
			block, _, _ := strings.Cut(src, "\n\n")
			if !isPropertyBlock(block) {
				return decodeBlock(titleLine, src)
			}
		}
	}

	block, body, _ := strings.Cut(src, "\n\n")
	return decodeBlock(titleLine+cleanBlock(block), body)
}

func decodeBlock(block, body string) (Metadata, string, error) {
	if strings.TrimSpace(block) == "" {
		return Metadata{}, "", ErrMissingTitle
	}

	var meta Metadata
	if err := codec.UnmarshalYAMLStrict([]byte(block), &meta); err != nil {
		return Metadata{}, "", fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	return meta, body, nil
}

// stripLeadingComment removes a first line that is a complete single-line
// comment, then a line that only opens a comment. The matching "-->" is
// left for cleanBlock. Anything else is left untouched.
func stripLeadingComment(src string) string {
	src = dropFirstLine(src, leadingCommentLine)
	return dropFirstLine(src, commentOpenLine)
}

func dropFirstLine(src string, re *regexp.Regexp) string {
	first, rest, found := strings.Cut(src, "\n")
	if !re.MatchString(first) {
		return src
	}
	if !found {
		return ""
	}
	return rest
}

// isPropertyBlock reports whether block opens a comment or consists of
// property lines only.
func isPropertyBlock(block string) bool {
	first, _, _ := strings.Cut(block, "\n")
	if commentOpenLine.MatchString(first) {
		return true
	}
	if strings.TrimSpace(block) == "" {
		return false
	}
	for line := range strings.SplitSeq(block, "\n") {
		if strings.TrimSpace(line) != "" && !propertyLine.MatchString(line) {
			return false
		}
	}
	return true
}

// cleanBlock drops comment syntax so only key:value lines remain.
func cleanBlock(block string) string {
	block = inlineComment.ReplaceAllString(block, "")
	block = commentMarker.ReplaceAllString(block, "")
	return block
}
