package main

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	flag "github.com/spf13/pflag"

	md2site "github.com/alnah/go-md2site"
)

// Sentinel errors for flag validation.
var (
	ErrUnexpectedArgs     = errors.New("unexpected arguments")
	ErrInvalidRegex       = errors.New("invalid --article-regex")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// defaultDebounce is how long watch waits for changes to settle.
const defaultDebounce = 300 * time.Millisecond

// commonFlags holds flags shared across commands.
type commonFlags struct {
	root    string
	config  string
	quiet   bool
	verbose bool
}

// selectFlags choose which documents a build or check covers.
type selectFlags struct {
	articleRegex string
	drafts       bool
	draftsSet    bool
}

// buildFlags holds the flags of build, check and watch. check registers
// no output flags; only watch registers debounce.
type buildFlags struct {
	common   commonFlags
	sel      selectFlags
	out      string
	workers  int
	debounce time.Duration
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.root, "root", "r", ".", "site root holding src/, template/ and config.toml")
	fs.StringVarP(&f.config, "config", "c", "", "configuration file merged over the site config")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every document")
}

// addSelectFlags adds document selection flags to a FlagSet.
func addSelectFlags(fs *flag.FlagSet, f *selectFlags) {
	fs.StringVar(&f.articleRegex, "article-regex", "", "only build documents whose path matches")
	fs.BoolVar(&f.drafts, "drafts", false, "include draft articles (overrides output_draft_article)")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.StringVarP(&f.out, "out", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
}

// newFlagSet registers the flags of command on a fresh FlagSet.
func newFlagSet(command string, f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addSelectFlags(fs, &f.sel)
	if command == "build" || command == "watch" {
		addOutputFlags(fs, f)
	}
	if command == "watch" {
		fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "delay before rebuilding after a change")
	}
	return fs
}

// parseFlags parses the flags of command, applies MD2SITE_* defaults and
// validates the result. Positional arguments are rejected.
func parseFlags(command string, args []string, env *Environment) (*buildFlags, error) {
	f := &buildFlags{}
	fs := newFlagSet(command, f)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedArgs, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedArgs, fs.Args())
	}
	f.sel.draftsSet = fs.Changed("drafts")

	applyEnvConfig(loadEnvConfig(env.Getenv), fs, f)

	if err := validateWorkers(f.workers); err != nil {
		return nil, err
	}
	return f, nil
}

// validateWorkers checks that the worker count is in valid range.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2site.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2site.MaxPoolSize)
	}
	return nil
}

// siteOptions turns flags into library options.
func siteOptions(f *buildFlags) ([]md2site.Option, error) {
	var opts []md2site.Option
	if f.sel.articleRegex != "" {
		re, err := regexp.Compile(f.sel.articleRegex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRegex, err)
		}
		opts = append(opts, md2site.WithFilter(re))
	}
	if f.sel.draftsSet {
		opts = append(opts, md2site.WithDrafts(f.sel.drafts))
	}
	if f.workers > 0 {
		opts = append(opts, md2site.WithWorkers(f.workers))
	}
	return opts, nil
}
