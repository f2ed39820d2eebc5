package hints

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	hint := ForConfigNotFound("site")

	if !strings.Contains(hint, filepath.Join("site", "config.toml")) {
		t.Errorf("expected config path in hint, got %q", hint)
	}
}

func TestForTemplateNotFound(t *testing.T) {
	hint := ForTemplateNotFound(filepath.Join("site", "template"))

	if !strings.Contains(hint, filepath.Join("site", "template")) {
		t.Errorf("expected template path in hint, got %q", hint)
	}
}

func TestForMissingDate(t *testing.T) {
	hint := ForMissingDate()

	if !strings.Contains(hint, "date:") || !strings.Contains(hint, "page: true") {
		t.Errorf("expected both remedies in hint, got %q", hint)
	}
}

func TestForHighlightStyle(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		wantEmpty bool
		contains  string
	}{
		{name: "empty available", available: []string{}, wantEmpty: true},
		{name: "with styles", available: []string{"github", "monokai"}, contains: "github, monokai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForHighlightStyle(tt.available)

			if tt.wantEmpty && hint != "" {
				t.Errorf("expected empty hint, got %q", hint)
			}
			if !tt.wantEmpty && !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestFormat_Consistency(t *testing.T) {
	// All hints should start with newline, spaces, and "hint:"
	hints := []string{
		ForConfigNotFound("."),
		ForMissingTitle(),
		ForMissingDate(),
		ForUnknownKey(),
		ForTemplateNotFound("t"),
		ForOutputDirectory(),
		ForDateFormat(),
		ForHighlightStyle([]string{"github"}),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
