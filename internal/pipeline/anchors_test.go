package pipeline

import (
	"strings"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// TestIDFromText - Heading text normalization
// ---------------------------------------------------------------------------

func TestIDFromText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "Hello World", want: "hello-world"},
		{input: "あいう abc えお def", want: "abc-def"},
		{input: "a<a href=xxx>hello</a>b", want: "a-hello-b"},
		{input: "Tom &amp; Jerry", want: "tom-jerry"},
		{input: "  Spaces   everywhere  ", want: "spaces-everywhere"},
		{input: "v1.2.3 release", want: "v1-2-3-release"},
		{input: "<code>Config</code> options", want: "config-options"},
		{input: "日本語", want: "a"},
		{input: "", want: "a"},
		{input: "---", want: "a"},
	}

	for _, tt := range tests {
		if got := IDFromText(tt.input); got != tt.want {
			t.Errorf("IDFromText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestBuildHeaderLinks - Ids and self-links
// ---------------------------------------------------------------------------

func TestBuildHeaderLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "derived id",
			input: "<h2>Hello World</h2>",
			want:  `<h2 id="hello-world"><a class="self-link" href="#hello-world">Hello World</a></h2>`,
		},
		{
			name:  "duplicates suffixed in order",
			input: "<h1>Intro</h1><h2>Intro</h2><h3>Intro</h3>",
			want: `<h1 id="intro"><a class="self-link" href="#intro">Intro</a></h1>` +
				`<h2 id="intro-1"><a class="self-link" href="#intro-1">Intro</a></h2>` +
				`<h3 id="intro-2"><a class="self-link" href="#intro-2">Intro</a></h3>`,
		},
		{
			name:  "explicit marker wins and is removed",
			input: `<h2><a name="custom"></a>Some Title</h2>`,
			want:  `<h2 id="custom"><a class="self-link" href="#custom">Some Title</a></h2>`,
		},
		{
			name:  "id attribute kept",
			input: `<h3 id="from-attr">Text</h3>`,
			want:  `<h3 id="from-attr"><a class="self-link" href="#from-attr">Text</a></h3>`,
		},
		{
			name:  "marker beats attribute",
			input: `<h3 id="attr"><a name="marker"></a>Text</h3>`,
			want:  `<h3 id="marker"><a class="self-link" href="#marker">Text</a></h3>`,
		},
		{
			name:  "other attributes preserved",
			input: `<h2 class="note">Note</h2>`,
			want:  `<h2 id="note" class="note"><a class="self-link" href="#note">Note</a></h2>`,
		},
		{
			name:  "level nine",
			input: "<h9>Deep</h9>",
			want:  `<h9 id="deep"><a class="self-link" href="#deep">Deep</a></h9>`,
		},
		{
			name:  "empty derived id uses placeholder",
			input: "<h2>日本語</h2><h2>中文</h2>",
			want: `<h2 id="a"><a class="self-link" href="#a">日本語</a></h2>` +
				`<h2 id="a-1"><a class="self-link" href="#a-1">中文</a></h2>`,
		},
		{
			name:  "mismatched levels untouched",
			input: "<h2>Broken</h3>",
			want:  "<h2>Broken</h3>",
		},
		{
			name:  "non-heading content untouched",
			input: "<p>para</p>\n<hr>\n<header>x</header>",
			want:  "<p>para</p>\n<hr>\n<header>x</header>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := BuildHeaderLinks(tt.input); got != tt.want {
				t.Errorf("BuildHeaderLinks(%q)\n got: %q\nwant: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildHeaderLinksWith_SharedCounterWithinDocument(t *testing.T) {
	t.Parallel()

	ids := IDCounter{}
	first := BuildHeaderLinksWith("<h1>Same</h1>", ids)
	second := BuildHeaderLinksWith("<h1>Same</h1>", ids)

	if !strings.Contains(first, `id="same"`) {
		t.Errorf("first pass = %q, want id=\"same\"", first)
	}
	if !strings.Contains(second, `id="same-1"`) {
		t.Errorf("second pass = %q, want id=\"same-1\"", second)
	}
}

// Counters are per document: concurrent documents with identical headings
// must all start from the unsuffixed id.
func TestBuildHeaderLinks_IndependentDocuments(t *testing.T) {
	t.Parallel()

	const docs = 16
	results := make([]string, docs)

	var wg sync.WaitGroup
	for i := range docs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = BuildHeaderLinks("<h1>Hello</h1><h2>Hello</h2>")
		}()
	}
	wg.Wait()

	want := `<h1 id="hello"><a class="self-link" href="#hello">Hello</a></h1>` +
		`<h2 id="hello-1"><a class="self-link" href="#hello-1">Hello</a></h2>`
	for i, got := range results {
		if got != want {
			t.Errorf("document %d = %q, want %q", i, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestExtractHeadings - Reads processed headings back
// ---------------------------------------------------------------------------

func TestExtractHeadings(t *testing.T) {
	t.Parallel()

	processed := BuildHeaderLinks("<h1>One</h1><p>x</p><h2>Two <em>em</em></h2>")
	got := ExtractHeadings(processed)

	want := []Heading{
		{Level: 1, ID: "one", Text: "One"},
		{Level: 2, ID: "two-em", Text: "Two <em>em</em>"},
	}
	if len(got) != len(want) {
		t.Fatalf("ExtractHeadings() returned %d headings, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
