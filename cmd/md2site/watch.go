package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/logfields"
)

// runWatch builds the site, then rebuilds it whenever a document, asset,
// template or configuration file changes, until interrupted. A failed
// rebuild is reported and watching continues.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	f, err := parseFlags("watch", args, env)
	if err != nil {
		return err
	}
	if f.out == "" {
		return md2site.ErrNoOutput
	}
	logger := newLogger(env.Stderr, f.common)

	w, err := newSiteWatcher(f.common.root, f.out, f.common.config, logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	rebuild := func(phase string) {
		start := time.Now()
		site, err := newSite(f, logger)
		var res *md2site.BuildResult
		if err == nil {
			res, err = site.Build(ctx)
		}
		switch {
		case ctx.Err() != nil:
		case err != nil:
			fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, f.common.root))
		case !f.common.quiet:
			printBuildResult(env.Stdout, f.out, res, f.common.verbose)
		}
		logger.Debug("build done", logfields.Phase(phase), logfields.Duration(time.Since(start)))
	}

	rebuild("initial")
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s for changes (Ctrl-C to stop)\n", f.common.root)
	}

	timer := time.NewTimer(f.debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				w.follow(ev)
				logger.Debug("change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				timer.Reset(f.debounce)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logfields.Error(err))
		case <-timer.C:
			rebuild("rebuild")
		}
	}
}

// siteWatcher follows src/ and template/ recursively, and the
// configuration files in the root.
type siteWatcher struct {
	fs      *fsnotify.Watcher
	logger  *slog.Logger
	srcDir  string
	tmplDir string
	outDir  string
	configs map[string]bool
}

func newSiteWatcher(root, out, override string, logger *slog.Logger) (*siteWatcher, error) {
	abs := func(p string) string {
		a, err := filepath.Abs(p)
		if err != nil {
			return filepath.Clean(p)
		}
		return a
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	w := &siteWatcher{
		fs:      fw,
		logger:  logger,
		srcDir:  abs(filepath.Join(root, md2site.SourceDirName)),
		tmplDir: abs(filepath.Join(root, md2site.TemplateDirName)),
		outDir:  abs(out),
		configs: map[string]bool{},
	}
	for _, name := range config.BaseNames {
		w.configs[abs(filepath.Join(root, name))] = true
	}

	if err := fw.Add(abs(root)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("%w: %v", md2site.ErrInvalidRoot, err)
	}
	if override != "" {
		w.configs[abs(override)] = true
		if err := fw.Add(filepath.Dir(abs(override))); err != nil {
			logger.Warn("watch add failed", logfields.Path(override), logfields.Error(err))
		}
	}
	w.addDirsRecursive(w.srcDir)
	w.addDirsRecursive(w.tmplDir)
	return w, nil
}

func (w *siteWatcher) Close() error {
	return w.fs.Close()
}

// relevant reports whether ev should trigger a rebuild.
func (w *siteWatcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod || shouldIgnoreEvent(ev.Name) {
		return false
	}
	p, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	if within(p, w.outDir) {
		return false
	}
	return within(p, w.srcDir) || within(p, w.tmplDir) || w.configs[p]
}

// follow starts watching directories created under a watched tree.
func (w *siteWatcher) follow(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) {
		return
	}
	if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
		w.addDirsRecursive(ev.Name)
	}
}

func (w *siteWatcher) addDirsRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if abs, _ := filepath.Abs(path); abs == w.outDir {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// within reports whether p is dir or below it.
func within(p, dir string) bool {
	return p == dir || strings.HasPrefix(p, dir+string(filepath.Separator))
}

// shouldIgnoreEvent returns true for hidden, swap and lock files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db"
}
