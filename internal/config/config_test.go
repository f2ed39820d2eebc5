package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// ---------------------------------------------------------------------------
// TestLoad - Base discovery, formats and override merging
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("toml base", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "config.toml", "site_name = \"Notes\"\nposts = 10\nratio = 1.5\nlaunched = 2020-01-02\noutput_draft_article = true\n")

		site, err := Load(root, "")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		want := map[string]string{
			"site_name":            "Notes",
			"posts":                "10",
			"ratio":                "1.5",
			"launched":             "2020-01-02",
			"output_draft_article": "true",
		}
		for k, v := range want {
			if got := site.String(k); got != v {
				t.Errorf("String(%q) = %q, want %q", k, got, v)
			}
		}
		if !site.Bool(KeyOutputDraftArticle) {
			t.Error("Bool(output_draft_article) = false, want true")
		}
		if len(site.Sources()) != 1 {
			t.Errorf("Sources() = %v, want one file", site.Sources())
		}
	})

	t.Run("yaml base", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "config.yaml", "site_name: Yaml\nposts: 3\n")

		site, err := Load(root, "")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if site.String("site_name") != "Yaml" || site.String("posts") != "3" {
			t.Errorf("values = %v, want site_name=Yaml posts=3", site.Map())
		}
	})

	t.Run("toml preferred over yaml", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "config.toml", "which = \"toml\"\n")
		writeFile(t, root, "config.yaml", "which: yaml\n")

		site, err := Load(root, "")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got := site.String("which"); got != "toml" {
			t.Errorf("which = %q, want toml", got)
		}
	})

	t.Run("override wins", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "config.toml", "base_url = \"https://prod\"\ntitle = \"Site\"\n")
		override := writeFile(t, t.TempDir(), "local.toml", "base_url = \"http://localhost\"\n")

		site, err := Load(root, override)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got := site.String("base_url"); got != "http://localhost" {
			t.Errorf("base_url = %q, want override value", got)
		}
		if got := site.String("title"); got != "Site" {
			t.Errorf("title = %q, want base value", got)
		}
		if got := site.Sources(); len(got) != 2 || got[1] != override {
			t.Errorf("Sources() = %v, want base then override", got)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "config.toml", "\n")

		site, err := Load(root, "")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if site.Len() != 0 {
			t.Errorf("Len() = %d, want 0", site.Len())
		}
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		files    map[string]string
		override string
		wantErr  error
	}{
		{name: "missing base", files: nil, wantErr: ErrConfigNotFound},
		{name: "missing override", files: map[string]string{"config.toml": ""}, override: "nope.toml", wantErr: ErrConfigNotFound},
		{name: "bad toml", files: map[string]string{"config.toml": "a = \n"}, wantErr: ErrConfigParse},
		{name: "nested table", files: map[string]string{"config.toml": "[menu]\nhome = \"/\"\n"}, wantErr: ErrConfigParse},
		{name: "list value", files: map[string]string{"config.yaml": "tags:\n  - a\n"}, wantErr: ErrConfigParse},
		{name: "bad draft switch", files: map[string]string{"config.toml": "output_draft_article = \"maybe\"\n"}, wantErr: ErrInvalidValue},
		{name: "bad date format", files: map[string]string{"config.toml": "date_format = \"[YYYY\"\n"}, wantErr: ErrInvalidValue},
		{name: "value too long", files: map[string]string{"config.toml": "x = \"" + strings.Repeat("a", MaxValueLength+1) + "\"\n"}, wantErr: ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, root, name, content)
			}
			override := tt.override
			if override != "" {
				override = filepath.Join(root, override)
			}

			_, err := Load(root, override)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSite - Accessors
// ---------------------------------------------------------------------------

func TestSite_Accessors(t *testing.T) {
	t.Parallel()

	site := New(map[string]string{"a": "1", "flag": "TRUE", "off": "nope"})

	if v, ok := site.Lookup("a"); !ok || v != "1" {
		t.Errorf("Lookup(a) = %q, %v; want 1, true", v, ok)
	}
	if _, ok := site.Lookup("missing"); ok {
		t.Error("Lookup(missing) ok = true, want false")
	}
	if !site.Bool("flag") {
		t.Error("Bool(flag) = false, want true")
	}
	if site.Bool("off") || site.Bool("missing") {
		t.Error("Bool() on invalid or missing key = true, want false")
	}

	m := site.Map()
	m["a"] = "changed"
	if site.String("a") != "1" {
		t.Error("Map() must return a copy")
	}

	var nilSite *Site
	if nilSite.String("a") != "" || nilSite.Len() != 0 || len(nilSite.Map()) != 0 {
		t.Error("nil Site should behave as empty")
	}
}
