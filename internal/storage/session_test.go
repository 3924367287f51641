package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blogwizard/internal/article"
)

func testArticle() *article.Article {
	return &article.Article{
		Title:           "Como Cuidar de Suculentas",
		Slug:            "como-cuidar-de-suculentas",
		MetaDescription: "Guia completo.",
		Keywords:        []string{"suculentas"},
		Tags:            []string{"jardinagem"},
		Summary:         "Um guia prático.",
		Content:         "## Introdução\n\nTexto.",
	}
}

func TestSessionFinalize(t *testing.T) {
	base := t.TempDir()
	s := NewSession(base)

	if err := s.Finalize("Como Cuidar de Suculentas!"); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if !strings.HasSuffix(s.Dir(), "_como_cuidar_de_suculentas") {
		t.Errorf("Dir() = %q, want sanitized slug suffix", s.Dir())
	}
	if _, err := os.Stat(s.Dir()); err != nil {
		t.Errorf("session dir not created: %v", err)
	}
}

func TestSessionFinalizeBlankSlug(t *testing.T) {
	s := NewSession(t.TempDir())
	if err := s.Finalize("!!!"); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if !strings.HasSuffix(s.Dir(), "_untitled") {
		t.Errorf("Dir() = %q, want untitled fallback", s.Dir())
	}
}

func TestSaveArticle(t *testing.T) {
	s := NewSession(t.TempDir())
	if err := s.Finalize("post"); err != nil {
		t.Fatal(err)
	}

	if err := s.SaveArticle(testArticle()); err != nil {
		t.Fatalf("SaveArticle() error: %v", err)
	}

	body, err := os.ReadFile(s.MarkdownPath())
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "## Introdução") {
		t.Errorf("body = %q", body)
	}

	metaData, err := os.ReadFile(s.MetaPath())
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	if !strings.Contains(string(metaData), "como-cuidar-de-suculentas") {
		t.Errorf("meta = %q", metaData)
	}
}

func TestSaveImageExtension(t *testing.T) {
	s := NewSession(t.TempDir())
	if err := s.Finalize("post"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		mime    string
		wantExt string
	}{
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"image/webp", ".webp"},
		{"", ".png"},
	}

	for _, tt := range tests {
		path, err := s.SaveImage("featured", &article.Image{Data: []byte{1, 2}, MIMEType: tt.mime})
		if err != nil {
			t.Fatalf("SaveImage(%q) error: %v", tt.mime, err)
		}
		if filepath.Ext(path) != tt.wantExt {
			t.Errorf("SaveImage(%q) ext = %q, want %q", tt.mime, filepath.Ext(path), tt.wantExt)
		}
	}
}

func TestClean(t *testing.T) {
	base := t.TempDir()

	for _, slug := range []string{"one", "two"} {
		s := NewSession(base)
		if err := s.Finalize(slug); err != nil {
			t.Fatal(err)
		}
	}
	// Loose file at the top level stays.
	if err := os.WriteFile(filepath.Join(base, "notes.txt"), []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	removed, err := Clean(base)
	if err != nil {
		t.Fatalf("Clean() error: %v", err)
	}
	if removed != 2 {
		t.Errorf("Clean() removed = %d, want 2", removed)
	}
	if _, err := os.Stat(filepath.Join(base, "notes.txt")); err != nil {
		t.Error("Clean() should leave loose files alone")
	}
}

func TestCleanMissingDir(t *testing.T) {
	removed, err := Clean(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Clean() error: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
