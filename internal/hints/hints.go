// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for a missing site configuration.
func ForConfigNotFound(root string) string {
	return format("create " + filepath.Join(root, "config.toml") + " (it may be empty)")
}

// ForMissingTitle returns hints for documents without a title.
func ForMissingTitle() string {
	return format(`start the document with "title: ..." or a "# Title" line`)
}

// ForMissingDate returns hints for articles without a date.
func ForMissingDate() string {
	return format(`add "date: YYYY-MM-DD" or mark the document with "page: true"`)
}

// ForUnknownKey returns hints for metadata with unsupported keys.
func ForUnknownKey() string {
	return format("supported keys: page, title, author, date, update_date, slug, draft, template, toc, toc_level, math")
}

// ForTemplateNotFound returns hints for missing templates.
func ForTemplateNotFound(templateDir string) string {
	return format("add the template to " + templateDir + " or remove the template property")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForDateFormat returns hints for invalid date_format values.
func ForDateFormat() string {
	return format("use tokens YYYY, MM, DD, MMMM, D or a preset: iso, european, us, long")
}

// ForHighlightStyle returns hints for unknown chroma styles.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
