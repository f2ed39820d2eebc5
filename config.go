package md2site

import (
	"log/slog"
	"regexp"
)

// Site layout below Config.Root.
const (
	SourceDirName   = "src"
	TemplateDirName = "template"
)

// Config locates a site on disk.
type Config struct {
	// Root holds src/, the optional template/ directory and the site
	// configuration file (config.toml, config.yaml or config.yml).
	Root string

	// Out is the output directory. Required by Build, ignored by Check.
	Out string

	// ConfigOverride is an optional configuration file merged over the
	// base one; its keys win.
	ConfigOverride string
}

// TemplateEngine renders a named template with a context map.
type TemplateEngine interface {
	Render(name string, data map[string]any) ([]byte, error)
}

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the structured logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkers sets the number of documents built concurrently.
// n <= 0 selects ResolvePoolSize's automatic value.
func WithWorkers(n int) Option {
	return func(s *Site) {
		s.workers = n
	}
}

// WithFilter restricts the build to documents whose path matches re.
// Assets are not copied while a filter is active.
func WithFilter(re *regexp.Regexp) Option {
	return func(s *Site) {
		s.filter = re
	}
}

// WithDrafts forces draft articles to be kept (true) or dropped (false),
// overriding the output_draft_article site setting.
func WithDrafts(keep bool) Option {
	return func(s *Site) {
		s.keepDrafts = &keep
	}
}

// WithDialect registers d for its extensions, replacing any dialect
// already registered for them.
func WithDialect(d Dialect) Option {
	return func(s *Site) {
		s.extraDialects = append(s.extraDialects, d)
	}
}

// WithTemplateEngine replaces the default engine, which reads
// <root>/template and falls back to the built-in theme.
func WithTemplateEngine(e TemplateEngine) Option {
	return func(s *Site) {
		s.engine = e
	}
}
