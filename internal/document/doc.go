// Package document splits source documents into typed Metadata and a body.
//
// Three metadata dialects converge on the same Metadata shape:
//   - a line-oriented key:value block ended by the first blank line, which
//     may be wrapped in an HTML comment and may start with a "# Title" line
//   - YAML front matter fenced by --- lines
//   - TOML front matter fenced by +++ lines
//
// Unknown keys are errors in every dialect, and a title is always required.
package document
