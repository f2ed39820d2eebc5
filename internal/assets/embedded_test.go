package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		template    string
		wantErr     error
		wantContain string
	}{
		{name: "base layout", template: "base.html", wantContain: "<!DOCTYPE html>"},
		{name: "article extends base", template: "article.html", wantContain: `{% extends "base.html" %}`},
		{name: "page lists year groups", template: "page.html", wantContain: "year_articles"},
		{name: "missing template", template: "gallery.html", wantErr: ErrTemplateNotFound},
		{name: "traversal rejected", template: "../embedded.go", wantErr: ErrInvalidAssetName},
		{name: "empty rejected", template: "", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadTemplate(tt.template)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q) error = %v, want %v", tt.template, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", tt.template, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadTemplate(%q) missing %q", tt.template, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_Names(t *testing.T) {
	t.Parallel()

	names := NewEmbeddedLoader().Names()
	for _, want := range []string{"article.html", "base.html", "page.html"} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() = %v, missing %q", names, want)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("Names() = %v, want sorted", names)
	}
}
