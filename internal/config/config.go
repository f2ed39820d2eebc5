// Package config loads the flat site configuration: a base file in the site
// root merged with an optional override file. Every value is exposed to
// templates as a string, and a few keys also steer the build.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2site/internal/codec"
	"github.com/alnah/go-md2site/internal/dateutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidValue   = errors.New("invalid config value")
)

// MaxValueLength bounds a single configuration value.
const MaxValueLength = 4096

// Keys read by the build itself. All other keys only reach templates.
const (
	KeyOutputDraftArticle = "output_draft_article"
	KeyDateFormat         = "date_format"
	KeyHighlightCSS       = "highlight_css"
	KeyHighlightStyle     = "highlight_style"
)

// BaseNames lists the file names searched in the site root, in order.
var BaseNames = []string{"config.toml", "config.yaml", "config.yml"}

// Site is a read-only key/value site configuration.
type Site struct {
	values map[string]string
	source []string
}

// New builds a Site from literal values, mainly for tests and embedding.
func New(values map[string]string) *Site {
	return &Site{values: maps.Clone(values)}
}

// String returns the value for key, or "" when unset.
func (s *Site) String(key string) string {
	if s == nil {
		return ""
	}
	return s.values[key]
}

// Lookup returns the value for key and whether it was set.
func (s *Site) Lookup(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// Bool reports whether key holds a true value ("true", "1", ...).
// Unset or unparsable values are false; Validate rejects the latter.
func (s *Site) Bool(key string) bool {
	b, err := strconv.ParseBool(s.String(key))
	return err == nil && b
}

// Map returns a copy suitable for a template context.
func (s *Site) Map() map[string]any {
	out := make(map[string]any, s.Len())
	if s == nil {
		return out
	}
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Len returns the number of keys.
func (s *Site) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Sources lists the files the configuration was read from, base first.
func (s *Site) Sources() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.source...)
}

// Validate checks the keys the build interprets.
func (s *Site) Validate() error {
	for k, v := range s.values {
		if len(v) > MaxValueLength {
			return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, k, len(v), MaxValueLength)
		}
	}
	if v, ok := s.Lookup(KeyOutputDraftArticle); ok {
		if _, err := strconv.ParseBool(v); err != nil {
			return fmt.Errorf("%w: %s = %q, want true or false", ErrInvalidValue, KeyOutputDraftArticle, v)
		}
	}
	if v, ok := s.Lookup(KeyDateFormat); ok {
		if _, err := dateutil.NewFormatter(v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, KeyDateFormat, err)
		}
	}
	return nil
}

// Load reads the base configuration from root and merges override on top.
// override may be empty. Keys in the override file win.
func Load(root, override string) (*Site, error) {
	basePath, err := resolveBasePath(root)
	if err != nil {
		return nil, err
	}

	site := &Site{values: map[string]string{}}
	paths := []string{basePath}
	if override != "" {
		paths = append(paths, override)
	}

	for _, p := range paths {
		values, err := loadFile(p)
		if err != nil {
			return nil, err
		}
		maps.Copy(site.values, values)
		site.source = append(site.source, p)
	}

	if err := site.Validate(); err != nil {
		return nil, err
	}
	return site, nil
}

// resolveBasePath finds the first existing BaseNames entry in root.
func resolveBasePath(root string) (string, error) {
	tried := make([]string, 0, len(BaseNames))
	for _, name := range BaseNames {
		p := filepath.Join(root, name)
		if fileExists(p) {
			return p, nil
		}
		tried = append(tried, p)
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func loadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	unmarshal, err := codec.ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	// An empty file is a valid, empty configuration.
	if strings.TrimSpace(string(data)) == "" {
		return map[string]string{}, nil
	}

	raw := map[string]any{}
	if err := unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return flatten(path, raw)
}

// flatten stringifies scalar values. Nested tables and lists are rejected.
func flatten(path string, raw map[string]any) (map[string]string, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]string, len(raw))
	for _, k := range keys {
		s, ok := scalarString(raw[k])
		if !ok {
			return nil, fmt.Errorf("%w: %s: key %q must be a scalar, got %T", ErrConfigParse, path, k, raw[k])
		}
		out[k] = s
	}
	return out, nil
}

func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), true
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly), true
		}
		return val.Format(time.RFC3339), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
