package main

// Notes:
// - runMain: exit codes and output for each command against temporary
//   site trees. Builds use the built-in theme.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// syncBuffer is a bytes.Buffer safe for the watch goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// testEnv returns an environment writing to buffers with the given
// variables as the whole process environment.
func testEnv(vars map[string]string) (*Environment, *syncBuffer, *syncBuffer) {
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	return &Environment{
		Now:    time.Now,
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			var kv []string
			for k, v := range vars {
				kv = append(kv, k+"="+v)
			}
			return kv
		},
	}, stdout, stderr
}

// setupSite creates a site tree. Files map slash paths to content.
func setupSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	if _, ok := files["config.toml"]; !ok {
		files["config.toml"] = "site_name = \"Test\"\n"
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return root
}

const (
	pageDoc    = "page: true\ntitle: Home\n\nWelcome.\n"
	articleDoc = "title: Hello\ndate: 2024-03-01\n\nHi.\n"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		vars         map[string]string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage",
			args:         []string{"md2site"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: md2site"},
		},
		{
			name:         "version",
			args:         []string{"md2site", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"md2site dev"},
		},
		{
			name:         "help",
			args:         []string{"md2site", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2site", "Commands:"},
		},
		{
			name:         "help build",
			args:         []string{"md2site", "help", "build"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2site build", "--article-regex"},
		},
		{
			name:         "help unknown",
			args:         []string{"md2site", "help", "deploy"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: deploy"},
		},
		{
			name:         "build --help",
			args:         []string{"md2site", "build", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2site build"},
		},
		{
			name:         "unknown command",
			args:         []string{"md2site", "serve"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: serve"},
		},
		{
			name:         "unknown flag",
			args:         []string{"md2site", "build", "--colour"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unexpected arguments"},
		},
		{
			name:         "positional argument",
			args:         []string{"md2site", "check", "site"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unexpected arguments"},
		},
		{
			name:         "unknown env var warns",
			args:         []string{"md2site", "version"},
			vars:         map[string]string{"MD2SITE_OUTPUT": "x"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"unknown environment variable MD2SITE_OUTPUT"},
		},
		{
			name:         "completion",
			args:         []string{"md2site", "completion", "bash"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"complete -F _md2site_completions md2site"},
		},
		{
			name:         "completion unknown shell",
			args:         []string{"md2site", "completion", "tcsh"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unsupported shell"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(tt.vars)
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout)
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Build - build and check against real site trees
// ---------------------------------------------------------------------------

func TestRunMain_Build(t *testing.T) {
	t.Parallel()

	root := setupSite(t, map[string]string{
		"src/index.md":      pageDoc,
		"src/blog/hello.md": articleDoc,
		"src/blog/wip.md":   "title: WIP\ndate: 2024-04-01\ndraft: true\n\n",
		"src/img/a.png":     "PNG",
	})
	out := filepath.Join(t.TempDir(), "public")

	env, stdout, stderr := testEnv(nil)
	code := runMain([]string{"md2site", "build", "--root", root, "-o", out}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}

	if !strings.Contains(stdout.String(), "Built 1 articles, 1 pages, 1 assets") {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stdout.String(), "1 drafts skipped") {
		t.Errorf("stdout = %q", stdout)
	}
	for _, rel := range []string{"index.html", "blog/hello/index.html", "img/a.png"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	if !strings.Contains(stderr.String(), "draft skipped") {
		t.Errorf("draft warning not logged: %q", stderr)
	}
}

func TestRunMain_BuildFromEnv(t *testing.T) {
	t.Parallel()

	root := setupSite(t, map[string]string{"src/a.md": articleDoc})
	out := filepath.Join(t.TempDir(), "public")

	env, stdout, stderr := testEnv(map[string]string{
		"MD2SITE_ROOT": root,
		"MD2SITE_OUT":  out,
	})
	if code := runMain([]string{"md2site", "build", "--quiet", "--drafts"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}
	if stdout.String() != "" {
		t.Errorf("quiet build printed %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(out, "a", "index.html")); err != nil {
		t.Error(err)
	}
}

func TestRunMain_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		files     map[string]string
		extraArgs []string
		noOut     bool
		wantCode  int
		wantHint  string
	}{
		{
			name:     "missing date",
			files:    map[string]string{"src/a.md": "title: A\n\nbody\n"},
			wantCode: ExitUsage,
			wantHint: "date: YYYY-MM-DD",
		},
		{
			name:     "missing title",
			files:    map[string]string{"src/a.md": "date: 2024-01-01\n\nbody\n"},
			wantCode: ExitUsage,
			wantHint: "title:",
		},
		{
			name:     "empty config",
			files:    map[string]string{"config.toml": "", "src/a.md": articleDoc},
			wantCode: ExitSuccess,
		},
		{
			name:     "missing template",
			files:    map[string]string{"src/a.md": "title: A\ndate: 2024-01-01\ntemplate: gallery\n\n"},
			wantCode: ExitRender,
			wantHint: "remove the template property",
		},
		{
			name:     "bad date format",
			files:    map[string]string{"config.toml": "date_format = \"[YYYY\"\n", "src/a.md": articleDoc},
			wantCode: ExitUsage,
		},
		{
			name:     "unknown highlight style",
			files:    map[string]string{"config.toml": "highlight_style = \"nope\"\n", "src/a.md": articleDoc},
			wantCode: ExitUsage,
			wantHint: "available:",
		},
		{
			name:      "bad regex",
			files:     map[string]string{"src/a.md": articleDoc},
			extraArgs: []string{"--article-regex", "("},
			wantCode:  ExitUsage,
		},
		{
			name:      "too many workers",
			files:     map[string]string{"src/a.md": articleDoc},
			extraArgs: []string{"-w", "99"},
			wantCode:  ExitUsage,
		},
		{
			name:     "no output directory",
			files:    map[string]string{"src/a.md": articleDoc},
			noOut:    true,
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := setupSite(t, tt.files)
			args := []string{"md2site", "build", "--root", root}
			if !tt.noOut {
				args = append(args, "--out", filepath.Join(t.TempDir(), "out"))
			}
			args = append(args, tt.extraArgs...)

			env, _, stderr := testEnv(nil)
			if code := runMain(args, env); code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if tt.wantHint != "" && !strings.Contains(stderr.String(), tt.wantHint) {
				t.Errorf("stderr missing hint %q: %s", tt.wantHint, stderr)
			}
		})
	}
}

func TestRunMain_ConfigNotFound(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o750); err != nil {
		t.Fatal(err)
	}

	env, _, stderr := testEnv(nil)
	code := runMain([]string{"md2site", "check", "--root", root}, env)
	if code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), filepath.Join(root, "config.toml")) {
		t.Errorf("hint does not name the config file: %s", stderr)
	}
}

func TestRunMain_Check(t *testing.T) {
	t.Parallel()

	root := setupSite(t, map[string]string{
		"src/index.md": pageDoc,
		"src/a.md":     articleDoc,
	})

	env, stdout, stderr := testEnv(nil)
	if code := runMain([]string{"md2site", "check", "-r", root, "-v"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"2024\n", "2024-03-01  a/  Hello", "OK: 1 articles, 1 pages"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q: %q", want, stdout)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "public")); !os.IsNotExist(err) {
		t.Error("check wrote output")
	}
}
