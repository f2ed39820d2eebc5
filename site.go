package md2site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/dateutil"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/logfields"
	"github.com/alnah/go-md2site/internal/pipeline"
	"github.com/alnah/go-md2site/internal/render"
)

// Site builds the documents under <root>/src into a static site.
// Create with NewSite; a Site may be built any number of times.
type Site struct {
	srcDir string
	outDir string

	settings *config.Site
	dates    *dateutil.Formatter
	engine   TemplateEngine
	logger   *slog.Logger

	dialects      dialectRegistry
	extraDialects []Dialect

	workers    int
	filter     *regexp.Regexp
	keepDrafts *bool
}

// BuildResult summarizes a Build or Check.
type BuildResult struct {
	BuildID       string
	Articles      int // articles written (or that would be)
	Pages         int
	DraftsSkipped int
	AssetsCopied  int
	Index         *YearIndex
	Duration      time.Duration
}

// NewSite loads the site configuration under cfg.Root and prepares a
// build. The Markdown dialect is always registered; WithDialect adds more.
func NewSite(cfg Config, opts ...Option) (*Site, error) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	srcDir := filepath.Join(cfg.Root, SourceDirName)
	if !fileutil.DirExists(srcDir) {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, srcDir)
	}

	settings, err := config.Load(cfg.Root, cfg.ConfigOverride)
	if err != nil {
		return nil, err
	}

	s := &Site{
		srcDir:   srcDir,
		outDir:   cfg.Out,
		settings: settings,
		logger:   slog.New(slog.DiscardHandler),
		dialects: dialectRegistry{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.dialects.register(NewMarkdownDialect()); err != nil {
		return nil, err
	}
	for _, d := range s.extraDialects {
		if err := s.dialects.register(d); err != nil {
			return nil, err
		}
	}

	s.dates, err = dateutil.NewFormatter(settings.String(config.KeyDateFormat))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", config.ErrInvalidValue, config.KeyDateFormat, err)
	}

	if style := settings.String(config.KeyHighlightStyle); style != "" {
		if err := pipeline.WriteHighlightCSS(io.Discard, style); err != nil {
			return nil, err
		}
	}

	if s.engine == nil {
		loader, err := assets.NewAssetResolver(filepath.Join(cfg.Root, TemplateDirName))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
		}
		s.engine = render.New(loader)
	}

	return s, nil
}

// Setting returns a site configuration value, or "" when unset.
func (s *Site) Setting(key string) string {
	return s.settings.String(key)
}

// source is a discovered and parsed document.
type source struct {
	rel     string // slash-separated, relative to srcDir
	path    string
	dialect Dialect
	meta    Metadata
	body    string
	slug    string
	url     string
}

// plan is the validated input of a build: what will be rendered and copied.
type plan struct {
	articles      []*source
	pages         []*source
	assets        []string
	links         map[string]string
	draftsSkipped int
}

// Build renders every document and writes the site to the output
// directory. Any failure aborts the build; articles finished before the
// failure may already be on disk. An article without a date fails the
// build before anything is written.
func (s *Site) Build(ctx context.Context) (*BuildResult, error) {
	if s.outDir == "" {
		return nil, ErrNoOutput
	}

	start := time.Now()
	res := &BuildResult{BuildID: uuid.NewString()}
	log := s.logger.With(logfields.BuildID(res.BuildID))

	p, err := s.prepare(ctx, log)
	if err != nil {
		return nil, err
	}
	res.DraftsSkipped = p.draftsSkipped

	if err := os.MkdirAll(s.outDir, fileutil.DirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	log.Info("building articles", logfields.Count(len(p.articles)), logfields.Workers(s.poolSize()))
	articles, err := s.buildArticles(ctx, log, p)
	if err != nil {
		return nil, err
	}
	res.Articles = len(articles)
	res.Index = NewYearIndex(articles)

	log.Info("building pages", logfields.Count(len(p.pages)))
	if err := s.buildPages(ctx, log, p, res.Index); err != nil {
		return nil, err
	}
	res.Pages = len(p.pages)

	res.AssetsCopied, err = s.copyAssets(ctx, log, p.assets)
	if err != nil {
		return nil, err
	}

	if err := s.writeHighlightCSS(log); err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	log.Info("build finished",
		slog.Int("articles", res.Articles),
		slog.Int("pages", res.Pages),
		slog.Int("drafts_skipped", res.DraftsSkipped),
		slog.Int("assets", res.AssetsCopied),
		logfields.Duration(res.Duration),
	)
	return res, nil
}

// Check discovers, parses and validates every document without rendering
// or writing anything. The returned index holds entries without content.
func (s *Site) Check(ctx context.Context) (*BuildResult, error) {
	start := time.Now()
	res := &BuildResult{BuildID: uuid.NewString()}
	log := s.logger.With(logfields.BuildID(res.BuildID))

	p, err := s.prepare(ctx, log)
	if err != nil {
		return nil, err
	}

	articles := make([]*Entry, 0, len(p.articles))
	for _, src := range p.articles {
		articles = append(articles, s.newEntry(src))
	}

	res.Articles = len(p.articles)
	res.Pages = len(p.pages)
	res.DraftsSkipped = p.draftsSkipped
	res.Index = NewYearIndex(articles)
	res.Duration = time.Since(start)
	return res, nil
}

// prepare runs discovery, parsing, classification, the date invariant and
// the draft filter.
func (s *Site) prepare(ctx context.Context, log *slog.Logger) (*plan, error) {
	docs, assetFiles, err := s.discover()
	if err != nil {
		return nil, err
	}
	log.Debug("discovered sources", logfields.Path(s.srcDir), logfields.Count(len(docs)))

	sources, err := s.parseAll(ctx, docs)
	if err != nil {
		return nil, err
	}

	p := &plan{assets: assetFiles}
	var articles []*source
	for _, src := range sources {
		if src.meta.IsArticle() {
			articles = append(articles, src)
		} else {
			p.pages = append(p.pages, src)
		}
	}
	log.Info("found documents", slog.Int("articles", len(articles)), slog.Int("pages", len(p.pages)))

	if err := checkDates(articles); err != nil {
		return nil, err
	}

	p.articles, p.draftsSkipped = s.filterDrafts(log, articles)

	p.links = make(map[string]string, len(p.articles)+len(p.pages))
	for _, src := range p.articles {
		p.links[src.rel] = src.url
	}
	for _, src := range p.pages {
		p.links[src.rel] = src.url
	}
	return p, nil
}

// discover lists documents (filtered) and assets under srcDir in lexical
// order. The output directory is skipped when it lies inside srcDir.
func (s *Site) discover() ([]string, []string, error) {
	outAbs := ""
	if s.outDir != "" {
		outAbs, _ = filepath.Abs(s.outDir)
	}

	var docs, assetFiles []string
	err := filepath.WalkDir(s.srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadSource, err)
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(p); outAbs != "" && abs == outAbs {
				return filepath.SkipDir
			}
			return nil
		}
		if s.dialects.lookup(p) == nil {
			assetFiles = append(assetFiles, p)
			return nil
		}
		if s.filter != nil && !s.filter.MatchString(p) {
			return nil
		}
		docs = append(docs, p)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return docs, assetFiles, nil
}

// parseAll reads and parses every document concurrently. Results keep the
// order of paths.
func (s *Site) parseAll(ctx context.Context, paths []string) ([]*source, error) {
	out := make([]*source, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.poolSize())
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := s.parseSource(p)
			if err != nil {
				return err
			}
			out[i] = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Site) parseSource(p string) (*source, error) {
	rel := s.relPath(p)

	data, err := os.ReadFile(p) // #nosec G304 -- p comes from walking the content directory
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadSource, rel, err)
	}

	d := s.dialects.lookup(p)
	meta, body, err := d.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, rel, err)
	}

	slug := DefaultSlug(rel)
	if meta.Slug != nil {
		slug = *meta.Slug
	}

	return &source{
		rel:     rel,
		path:    p,
		dialect: d,
		meta:    meta,
		body:    body,
		slug:    slug,
		url:     EntryURL(rel, slug),
	}, nil
}

func (s *Site) relPath(p string) string {
	rel, err := filepath.Rel(s.srcDir, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// checkDates fails when any article lacks a date, naming every one of them.
func checkDates(articles []*source) error {
	var errs []error
	for _, a := range articles {
		if a.meta.Date == nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingDate, a.rel))
		}
	}
	return errors.Join(errs...)
}

// filterDrafts drops draft articles unless drafts are kept.
func (s *Site) filterDrafts(log *slog.Logger, articles []*source) ([]*source, int) {
	keep := s.settings.Bool(config.KeyOutputDraftArticle)
	if s.keepDrafts != nil {
		keep = *s.keepDrafts
	}

	kept := make([]*source, 0, len(articles))
	skipped := 0
	for _, a := range articles {
		if !a.meta.Draft {
			kept = append(kept, a)
			continue
		}
		if keep {
			log.Warn("draft kept", logfields.Path(a.rel))
			kept = append(kept, a)
			continue
		}
		log.Warn("draft skipped", logfields.Path(a.rel))
		skipped++
	}
	return kept, skipped
}

// buildArticles renders and writes every article in the worker pool, each
// one as soon as it is ready. Articles are independent: each worker owns
// its source and fills its own slot.
func (s *Site) buildArticles(ctx context.Context, log *slog.Logger, p *plan) ([]*Entry, error) {
	entries := make([]*Entry, len(p.articles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.poolSize())
	for i, src := range p.articles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e, err := s.renderEntry(gctx, log, src, p.links)
			if err != nil {
				return err
			}
			data := s.settings.Map()
			data["article"] = e.Context()
			if err := s.writeEntry(log, e, data); err != nil {
				return err
			}
			entries[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// buildPages renders pages one by one with the complete article index.
func (s *Site) buildPages(ctx context.Context, log *slog.Logger, p *plan, idx *YearIndex) error {
	articles, years := idx.context()
	for _, src := range p.pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		e, err := s.renderEntry(ctx, log, src, p.links)
		if err != nil {
			return err
		}
		data := s.settings.Map()
		data["page"] = e.Context()
		data["articles"] = articles
		data["year_articles"] = years
		if err := s.writeEntry(log, e, data); err != nil {
			return err
		}
	}
	return nil
}

// newEntry resolves everything about src that needs no rendering.
func (s *Site) newEntry(src *source) *Entry {
	e := &Entry{
		Meta:       src.meta,
		Slug:       src.slug,
		URL:        src.url,
		SourcePath: src.rel,
		Dialect:    src.dialect.Name(),
	}
	if src.meta.Date != nil {
		e.DateDisplay = s.dates.Format(src.meta.Date.Time())
	}
	return e
}

// renderEntry runs the markup renderer and HTML post-processing for src.
// Heading ids are counted per call, never across documents.
func (s *Site) renderEntry(ctx context.Context, log *slog.Logger, src *source, links map[string]string) (*Entry, error) {
	content, err := src.dialect.Render(ctx, src.body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, src.rel, err)
	}

	content = pipeline.BuildHeaderLinksWith(content, pipeline.IDCounter{})
	content = pipeline.ExpandMacros(content)
	content, err = pipeline.RewriteRelativePaths(content, src.rel, src.url, func(rel string) (string, bool) {
		u, ok := links[rel]
		return u, ok
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: rewriting links: %v", ErrRender, src.rel, err)
	}

	e := s.newEntry(src)
	e.Content = content
	if src.meta.TOC {
		e.TOCHTML = pipeline.BuildTOC(content, tocLevel(log, src))
	}
	return e, nil
}

// tocLevel returns the deepest heading level for the TOC; 0 means all.
func tocLevel(log *slog.Logger, src *source) int {
	if src.meta.TOCLevel == nil {
		return 0
	}
	level := *src.meta.TOCLevel
	if level < 1 || level > pipeline.MaxHeadingLevel {
		log.Warn("invalid toc_level, using 1-9", logfields.Path(src.rel), slog.Int("toc_level", level))
		return 0
	}
	return level
}

// writeEntry renders e's template with data and writes the result.
func (s *Site) writeEntry(log *slog.Logger, e *Entry, data map[string]any) error {
	name := e.TemplateName()
	html, err := s.engine.Render(name, data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTemplate, e.SourcePath, err)
	}

	dst, err := fileutil.JoinWithin(s.outDir, e.OutputPath())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, e.SourcePath, err)
	}
	if err := fileutil.WriteFile(dst, html); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, dst, err)
	}

	log.Debug("wrote", logfields.Path(e.SourcePath), logfields.URL(e.URL), logfields.Output(dst),
		logfields.Template(name), logfields.Dialect(e.Dialect))
	return nil
}

// copyAssets copies non-document files to the same relative output path.
// Nothing is copied while a document filter is active.
func (s *Site) copyAssets(ctx context.Context, log *slog.Logger, files []string) (int, error) {
	if s.filter != nil {
		log.Info("document filter active, assets not copied", logfields.Count(len(files)))
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.poolSize())
	for _, src := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rel := s.relPath(src)
			dst, err := fileutil.JoinWithin(s.outDir, rel)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrCopyAsset, rel, err)
			}
			if err := fileutil.CopyFile(src, dst); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrCopyAsset, rel, err)
			}
			log.Debug("copied", logfields.Path(rel), logfields.Output(dst))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(files), nil
}

// writeHighlightCSS exports the code highlighting stylesheet when the site
// configuration names an output file for it.
func (s *Site) writeHighlightCSS(log *slog.Logger) error {
	name := s.settings.String(config.KeyHighlightCSS)
	if name == "" {
		return nil
	}

	var buf bytes.Buffer
	if err := pipeline.WriteHighlightCSS(&buf, s.settings.String(config.KeyHighlightStyle)); err != nil {
		return err
	}

	dst, err := fileutil.JoinWithin(s.outDir, name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, config.KeyHighlightCSS, err)
	}
	if err := fileutil.WriteFile(dst, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, dst, err)
	}
	log.Debug("wrote highlight stylesheet", logfields.Output(dst))
	return nil
}

func (s *Site) poolSize() int {
	return ResolvePoolSize(s.workers)
}
