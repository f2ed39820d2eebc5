// Package render executes page templates with pongo2, a Django/Jinja style
// engine, loading template sources through an assets.AssetLoader.
package render

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/alnah/go-md2site/internal/assets"
)

// Sentinel errors for template rendering.
var (
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrTemplateCompile  = errors.New("template compilation failed")
	ErrTemplateExecute  = errors.New("template execution failed")
)

// Rendered fragments are already HTML, so output is never escaped
// implicitly. Templates escape plain fields with the escape filter.
var disableAutoescape sync.Once

// Engine renders named templates. Safe for concurrent use.
type Engine struct {
	loader assets.AssetLoader
	set    *pongo2.TemplateSet
}

// New creates an Engine reading templates from loader. Compiled templates
// are cached for the lifetime of the Engine.
func New(loader assets.AssetLoader) *Engine {
	disableAutoescape.Do(func() { pongo2.SetAutoescape(false) })

	return &Engine{
		loader: loader,
		set:    pongo2.NewSet("site", &loaderAdapter{loader: loader}),
	}
}

// Render executes the template called name with data as its context.
func (e *Engine) Render(name string, data map[string]any) ([]byte, error) {
	tpl, err := e.set.FromCache(name)
	if err != nil {
		if _, loadErr := e.loader.LoadTemplate(name); loadErr != nil {
			if errors.Is(loadErr, assets.ErrTemplateNotFound) || errors.Is(loadErr, assets.ErrInvalidAssetName) {
				return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
			}
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateCompile, name, err)
	}

	out, err := tpl.ExecuteBytes(pongo2.Context(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateExecute, name, err)
	}
	return out, nil
}

// loaderAdapter exposes an AssetLoader as a pongo2.TemplateLoader.
// Every name, including those in extends and include tags, is relative to
// the template root rather than to the including template.
type loaderAdapter struct {
	loader assets.AssetLoader
}

var _ pongo2.TemplateLoader = (*loaderAdapter)(nil)

func (a *loaderAdapter) Abs(_, name string) string {
	return path.Clean(strings.TrimPrefix(name, "/"))
}

func (a *loaderAdapter) Get(name string) (io.Reader, error) {
	src, err := a.loader.LoadTemplate(name)
	if err != nil {
		return nil, err
	}
	return strings.NewReader(src), nil
}
