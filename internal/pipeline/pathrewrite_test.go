package pipeline

// Notes:
// - Serialization details of html.Render are not asserted beyond the
//   rewritten attributes; untouched fragments must come back byte-identical.

import (
	"strings"
	"testing"
)

func testResolver(docs map[string]string) LinkResolver {
	return func(p string) (string, bool) {
		u, ok := docs[p]
		return u, ok
	}
}

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths - Link and image rewriting
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	resolve := testResolver(map[string]string{
		"blog/other.md": "blog/other/",
		"about.md":      "about/",
		"index.md":      "",
	})

	tests := []struct {
		name       string
		html       string
		sourcePath string
		pageURL    string
		want       string
	}{
		{
			name:       "sibling document",
			html:       `<a href="other.md">x</a>`,
			sourcePath: "blog/post.md",
			pageURL:    "blog/post/",
			want:       `href="../other/"`,
		},
		{
			name:       "document in parent dir keeps fragment",
			html:       `<a href="../about.md#team">x</a>`,
			sourcePath: "blog/post.md",
			pageURL:    "blog/post/",
			want:       `href="../../about/#team"`,
		},
		{
			name:       "link to site index",
			html:       `<a href="../index.md">home</a>`,
			sourcePath: "blog/post.md",
			pageURL:    "blog/post/",
			want:       `href="../../"`,
		},
		{
			name:       "image next to source",
			html:       `<img src="./img/a.png">`,
			sourcePath: "blog/post.md",
			pageURL:    "blog/post/",
			want:       `src="../img/a.png"`,
		},
		{
			name:       "page with file url",
			html:       `<img src="pic.png">`,
			sourcePath: "feed.md",
			pageURL:    "feed.xml",
			want:       `src="pic.png"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, tt.sourcePath, tt.pageURL, resolve)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("RewriteRelativePaths() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

func TestRewriteRelativePaths_Untouched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
	}{
		{name: "anchor", html: `<a href="#section">Link</a>`},
		{name: "external", html: `<a href="https://example.com">x</a>`},
		{name: "protocol relative", html: `<img src="//cdn.example.com/a.png">`},
		{name: "mailto", html: `<a href="mailto:me@example.com">mail</a>`},
		{name: "data uri", html: `<img src="data:image/png;base64,AAA">`},
		{name: "site absolute", html: `<a href="/abs/">x</a>`},
		{name: "escapes root", html: `<img src="../../../etc/passwd">`},
		{name: "script not rewritten", html: `<script src="./x.js"></script>`},
		{name: "no links", html: `<p>plain &amp; simple</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, "blog/post.md", "blog/post/", nil)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			if got != tt.html {
				t.Errorf("RewriteRelativePaths() = %q, want unchanged %q", got, tt.html)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRelativeURL - URL arithmetic
// ---------------------------------------------------------------------------

func TestRelativeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, target, want string
	}{
		{page: "", target: "about/", want: "about/"},
		{page: "", target: "", want: "./"},
		{page: "blog/", target: "blog/", want: "./"},
		{page: "blog/post/", target: "", want: "../../"},
		{page: "blog/post/", target: "blog/img.png", want: "../img.png"},
		{page: "blog/post/", target: "blog/other/", want: "../other/"},
		{page: "a.html", target: "b/c.html", want: "b/c.html"},
		{page: "x/a.html", target: "y/", want: "../y/"},
	}

	for _, tt := range tests {
		if got := RelativeURL(tt.page, tt.target); got != tt.want {
			t.Errorf("RelativeURL(%q, %q) = %q, want %q", tt.page, tt.target, got, tt.want)
		}
	}
}
