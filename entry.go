package md2site

import (
	"path"
	"strings"
)

// Default template names by classification.
const (
	ArticleTemplate = "article"
	PageTemplate    = "page"

	templateExt = ".html"
	indexFile   = "index.html"
)

// Entry is a parsed and rendered document, ready to be written or listed.
// Entries are immutable once built.
type Entry struct {
	Meta Metadata

	// Slug is the explicit slug, or the file name without extension.
	Slug string

	// URL is site-relative without a leading slash; a trailing slash marks
	// a directory with an index.html.
	URL string

	// Content is the final HTML body with anchored headings.
	Content string

	// TOCHTML is the nested heading list, set only when Meta.TOC is.
	TOCHTML string

	// SourcePath is slash-separated and relative to the content directory.
	SourcePath string

	// Dialect names the dialect that produced the entry.
	Dialect string

	// DateDisplay is Meta.Date formatted with the site date format.
	DateDisplay string
}

// IsPage reports whether the entry is a page rather than an article.
func (e *Entry) IsPage() bool {
	return e.Meta.Page
}

// TemplateName returns the template file used to render the entry.
func (e *Entry) TemplateName() string {
	return templateName(e.Meta)
}

// OutputPath returns the slash-separated file path relative to the output
// directory.
func (e *Entry) OutputPath() string {
	return URLToFilename(e.URL)
}

// Context exposes the entry to templates with snake_case keys. Absent
// optional properties are nil.
func (e *Entry) Context() map[string]any {
	m := e.Meta
	ctx := map[string]any{
		"title":        m.Title,
		"slug":         e.Slug,
		"url":          e.URL,
		"content":      e.Content,
		"page":         m.Page,
		"draft":        m.Draft,
		"toc":          m.TOC,
		"toc_html":     nil,
		"math":         m.Math,
		"author":       nil,
		"date":         nil,
		"date_display": e.DateDisplay,
		"update_date":  nil,
		"template":     nil,
		"toc_level":    nil,
		"source_path":  e.SourcePath,
	}
	if m.TOC {
		ctx["toc_html"] = e.TOCHTML
	}
	if m.Author != nil {
		ctx["author"] = *m.Author
	}
	if m.Date != nil {
		ctx["date"] = m.Date.String()
	}
	if m.UpdateDate != nil {
		ctx["update_date"] = m.UpdateDate.String()
	}
	if m.Template != nil {
		ctx["template"] = *m.Template
	}
	if m.TOCLevel != nil {
		ctx["toc_level"] = *m.TOCLevel
	}
	return ctx
}

func templateName(m Metadata) string {
	switch {
	case m.Template != nil && *m.Template != "":
		return *m.Template + templateExt
	case m.Page:
		return PageTemplate + templateExt
	default:
		return ArticleTemplate + templateExt
	}
}

// SlugToURL maps a slug to its URL segment:
//
//	"", "index"  -> ""
//	"foo/"       -> "foo/"
//	"foo"        -> "foo/"
//	"feed.xml"   -> "feed.xml"
func SlugToURL(slug string) string {
	switch {
	case slug == "" || slug == "index":
		return ""
	case strings.HasSuffix(slug, "/"):
		return slug
	case !hasExtension(slug):
		return slug + "/"
	default:
		return slug
	}
}

// URLToFilename maps a URL to the file written for it: directory URLs get
// an index.html, anything else is used as is.
func URLToFilename(url string) string {
	if url == "" || strings.HasSuffix(url, "/") {
		return url + indexFile
	}
	return url
}

// EntryURL derives the URL of the document at sourcePath (slash-separated,
// relative to the content directory) with the given slug. A slug starting
// with "/" is taken from the site root instead of the document's directory.
func EntryURL(sourcePath, slug string) string {
	if rooted, ok := strings.CutPrefix(slug, "/"); ok {
		return SlugToURL(strings.TrimLeft(rooted, "/"))
	}

	seg := SlugToURL(slug)
	dir := path.Dir(sourcePath)
	if dir == "." {
		return seg
	}
	return dir + "/" + seg
}

// DefaultSlug is the file name of sourcePath without its extension.
func DefaultSlug(sourcePath string) string {
	base := path.Base(sourcePath)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// hasExtension reports whether the last path segment has a dot that is not
// its first character.
func hasExtension(p string) bool {
	base := path.Base(p)
	return strings.LastIndexByte(base, '.') > 0
}
