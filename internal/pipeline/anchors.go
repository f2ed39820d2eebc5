package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// fallbackID replaces ids that normalize to nothing (e.g. all-CJK headings).
const fallbackID = "a"

var (
	// <hN ...>text</hN>; the closing level is checked in code since RE2 has
	// no backreferences.
	rawHeadingPattern = regexp.MustCompile(`(?s)<h([1-9])(\s[^>]*)?>(.*?)</h([1-9])>`)

	idAttrPattern = regexp.MustCompile(`\bid="([^"]*)"`)

	// <a name="id"></a> placed by authors to pin a heading id.
	anchorMarkerPattern = regexp.MustCompile(`<a name="([^"]*)"></a>`)
)

// Heading is one heading of an anchor-processed document.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// IDCounter counts how many times each base id has been handed out within
// one document. Create a fresh counter per document; it must never be
// shared between documents or goroutines.
type IDCounter map[string]int

// next returns base the first time and base-k for the k-th repeat.
func (c IDCounter) next(base string) string {
	n := c[base]
	c[base] = n + 1
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

// BuildHeaderLinks gives every heading of a rendered fragment a unique id
// and wraps its text in a self-link:
//
//	<h2 id="intro"><a class="self-link" href="#intro">Intro</a></h2>
//
// Ids come from an explicit <a name="..."></a> marker, then an id attribute
// already on the heading, and otherwise from the heading text. Repeats get
// -1, -2, ... suffixes in document order.
func BuildHeaderLinks(htmlContent string) string {
	return BuildHeaderLinksWith(htmlContent, IDCounter{})
}

// BuildHeaderLinksWith is BuildHeaderLinks with a caller-owned counter.
func BuildHeaderLinksWith(htmlContent string, ids IDCounter) string {
	return rawHeadingPattern.ReplaceAllStringFunc(htmlContent, func(match string) string {
		m := rawHeadingPattern.FindStringSubmatch(match)
		level, attrs, text, closing := m[1], m[2], m[3], m[4]
		if level != closing {
			return match
		}

		base := ""
		if marker := anchorMarkerPattern.FindStringSubmatch(text); marker != nil {
			base = marker[1]
			text = anchorMarkerPattern.ReplaceAllString(text, "")
		}
		if attr := idAttrPattern.FindStringSubmatch(attrs); attr != nil {
			if base == "" {
				base = attr[1]
			}
			attrs = idAttrPattern.ReplaceAllString(attrs, "")
		}
		text = strings.TrimSpace(text)
		if base == "" {
			base = IDFromText(text)
		}
		id := ids.next(base)

		var b strings.Builder
		b.WriteString("<h" + level + ` id="` + id + `"`)
		if extra := strings.Join(strings.Fields(attrs), " "); extra != "" {
			b.WriteString(" " + extra)
		}
		b.WriteString(`><a class="self-link" href="#` + id + `">`)
		b.WriteString(text)
		b.WriteString("</a></h" + level + ">")
		return b.String()
	})
}

// IDFromText derives an id from heading HTML: entities are decoded, tags
// become word breaks, anything but ASCII letters and digits is dropped, and
// the remaining words are lowercased and joined with "-".
func IDFromText(text string) string {
	var plain strings.Builder
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			plain.Write(z.Text())
		} else {
			plain.WriteByte(' ')
		}
	}

	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, plain.String())

	id := strings.Join(strings.Fields(mapped), "-")
	if id == "" {
		return fallbackID
	}
	return id
}

// processedHeadingPattern matches headings after BuildHeaderLinks.
var processedHeadingPattern = regexp.MustCompile(`(?s)<h([1-9]) id="([^"]*)"[^>]*>(?:<a [^>]*>)?(.*?)(?:</a>)?</h[1-9]>`)

// ExtractHeadings lists the id-carrying headings of a fragment in order.
func ExtractHeadings(htmlContent string) []Heading {
	matches := processedHeadingPattern.FindAllStringSubmatch(htmlContent, -1)
	headings := make([]Heading, 0, len(matches))
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		headings = append(headings, Heading{Level: level, ID: m[2], Text: m[3]})
	}
	return headings
}
