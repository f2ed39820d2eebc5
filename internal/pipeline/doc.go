// Package pipeline implements the per-document body pipeline.
//
// Stages, in the order the site builder applies them:
//   - text normalization (line endings, wide-character reflow, ignore markers)
//   - Markdown to HTML fragment conversion via Goldmark
//   - heading ids and self-links (BuildHeaderLinks)
//   - site-macro expansion
//   - relative link rewriting against the page's output URL
//   - optional table of contents (BuildTOC)
//
// Every function here works on a single document and keeps no shared
// state, so documents can be processed concurrently.
package pipeline
