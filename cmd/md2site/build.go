package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	md2site "github.com/alnah/go-md2site"
)

// newSite creates a Site from parsed flags.
func newSite(f *buildFlags, logger *slog.Logger) (*md2site.Site, error) {
	opts, err := siteOptions(f)
	if err != nil {
		return nil, err
	}
	opts = append(opts, md2site.WithLogger(logger))

	return md2site.NewSite(md2site.Config{
		Root:           f.common.root,
		Out:            f.out,
		ConfigOverride: f.common.config,
	}, opts...)
}

// runBuild builds the site once.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	f, err := parseFlags("build", args, env)
	if err != nil {
		return err
	}

	site, err := newSite(f, newLogger(env.Stderr, f.common))
	if err != nil {
		return err
	}

	res, err := site.Build(ctx)
	if err != nil {
		return err
	}

	if !f.common.quiet {
		printBuildResult(env.Stdout, f.out, res, f.common.verbose)
	}
	return nil
}

// runCheck parses and validates every document without writing.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	f, err := parseFlags("check", args, env)
	if err != nil {
		return err
	}

	site, err := newSite(f, newLogger(env.Stderr, f.common))
	if err != nil {
		return err
	}

	res, err := site.Check(ctx)
	if err != nil {
		return err
	}

	if f.common.quiet {
		return nil
	}
	if f.common.verbose {
		printIndex(env.Stdout, res.Index)
	}
	fmt.Fprintf(env.Stdout, "OK: %d articles, %d pages", res.Articles, res.Pages)
	if res.DraftsSkipped > 0 {
		fmt.Fprintf(env.Stdout, " (%d drafts skipped)", res.DraftsSkipped)
	}
	fmt.Fprintln(env.Stdout)
	return nil
}

// printBuildResult outputs the build summary.
func printBuildResult(w io.Writer, out string, res *md2site.BuildResult, verbose bool) {
	if verbose {
		printIndex(w, res.Index)
	}
	fmt.Fprintf(w, "Built %d articles, %d pages, %d assets into %s (%v)\n",
		res.Articles, res.Pages, res.AssetsCopied, out, res.Duration.Round(time.Millisecond))
	if res.DraftsSkipped > 0 {
		fmt.Fprintf(w, "%d drafts skipped\n", res.DraftsSkipped)
	}
}

// printIndex lists articles by year, newest first.
func printIndex(w io.Writer, idx *md2site.YearIndex) {
	if idx == nil {
		return
	}
	for _, g := range idx.Years {
		fmt.Fprintf(w, "%d\n", g.Year)
		for _, a := range g.Articles {
			fmt.Fprintf(w, "  %s  %s  %s\n", a.Meta.Date, a.URL, a.Meta.Title)
		}
	}
}
