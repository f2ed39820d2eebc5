package pipeline

import "regexp"

// rawMacroPattern matches <!-- site-macro raw CONTENT --> comments.
var rawMacroPattern = regexp.MustCompile(`<!-- site-macro raw +(.+?) +-->`)

// ExpandMacros replaces site-macro comments with their payload. Only the
// "raw" macro exists: its content is emitted verbatim, which lets authors
// keep markup the renderer would otherwise escape or wrap.
func ExpandMacros(htmlContent string) string {
	return rawMacroPattern.ReplaceAllString(htmlContent, "$1")
}
