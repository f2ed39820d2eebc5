// Package md2site builds a static site from annotated Markdown documents.
//
// # Quick Start
//
// Point a Site at a root directory holding src/ and a config.toml, then
// build into an output directory:
//
//	site, err := md2site.NewSite(md2site.Config{Root: ".", Out: "public"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := site.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d articles, %d pages\n", result.Articles, result.Pages)
//
// # Documents
//
// Each document starts with a metadata block followed by a blank line and
// the body. The block is either plain key:value lines, optionally preceded
// by a "# Title" heading and wrapped in HTML comments, or a "---" YAML or
// "+++" TOML front matter:
//
//	title: Hello
//	date: 2024-03-01
//	toc: true
//
//	Body text.
//
// Documents without "page: true" are articles and must carry a date; a
// single undated article fails the whole build before anything is written.
// Articles flagged "draft: true" are dropped unless the site configuration
// sets output_draft_article = "true" or WithDrafts(true) is given.
//
// # Build Pipeline
//
// Every document goes through these stages:
//
//  1. Metadata parsing (key:value, YAML or TOML)
//  2. Body normalization (CJK line joins, prettier-ignore markers)
//  3. Markdown to HTML via goldmark (GFM, footnotes, chroma classes)
//  4. Heading anchors with per-document unique ids, site macros, relative
//     link rewriting and an optional table of contents
//  5. Template rendering with pongo2 and an atomic write
//
// Articles are built concurrently and written as soon as each is ready.
// Pages are rendered afterwards, one at a time, with the sorted article
// list ("articles") and its per-year grouping ("year_articles") in their
// template context.
//
// # Output Layout
//
// A document's URL is its directory joined with SlugToURL(slug); the file
// written is URLToFilename(url). "blog/hello.md" becomes
// "blog/hello/index.html". Other files under src/ are copied as they are.
//
// # Templates
//
// Templates are read from <root>/template, falling back to a built-in
// theme providing base.html, article.html and page.html. A document picks
// another template with "template: name", which loads name.html.
package md2site
