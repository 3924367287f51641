// Package storage lays generation artifacts out on disk, one directory per
// article session. Artifacts are working copies for export and playback, not
// a durable store.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"blogwizard/internal/article"
)

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Session is one article's output directory under the base dir, named
// <timestamp>_<slug> once the article is known.
type Session struct {
	id      string
	dir     string
	baseDir string
}

func NewSession(baseDir string) *Session {
	return &Session{
		id:      time.Now().Format("20060102_150405"),
		baseDir: baseDir,
	}
}

// Finalize creates the session directory, named after the article slug.
func (s *Session) Finalize(slug string) error {
	sanitized := sanitizeForPath(slug)
	if sanitized == "" {
		sanitized = "untitled"
	}
	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}

	s.dir = filepath.Join(s.baseDir, fmt.Sprintf("%s_%s", s.id, sanitized))
	return os.MkdirAll(s.dir, 0755)
}

func (s *Session) Dir() string { return s.dir }

func (s *Session) MarkdownPath() string  { return filepath.Join(s.dir, "article.md") }
func (s *Session) HTMLPath() string      { return filepath.Join(s.dir, "article.html") }
func (s *Session) MetaPath() string      { return filepath.Join(s.dir, "meta.yaml") }
func (s *Session) VideoPath() string     { return filepath.Join(s.dir, "veo.mp4") }
func (s *Session) NarrationPath() string { return filepath.Join(s.dir, "narration.wav") }

type meta struct {
	Title           string   `yaml:"title"`
	Slug            string   `yaml:"slug"`
	MetaDescription string   `yaml:"meta_description"`
	Keywords        []string `yaml:"keywords"`
	Tags            []string `yaml:"tags"`
	Summary         string   `yaml:"summary"`
}

// SaveArticle writes the markup body and the SEO metadata sidecar.
func (s *Session) SaveArticle(art *article.Article) error {
	if err := os.WriteFile(s.MarkdownPath(), []byte(art.Content), 0644); err != nil {
		return fmt.Errorf("write article body: %w", err)
	}

	data, err := yaml.Marshal(meta{
		Title:           art.Title,
		Slug:            art.Slug,
		MetaDescription: art.MetaDescription,
		Keywords:        art.Keywords,
		Tags:            art.Tags,
		Summary:         art.Summary,
	})
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(s.MetaPath(), data, 0644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// SaveImage writes an image artifact named by role ("featured" or "inline"),
// with the extension derived from its MIME type.
func (s *Session) SaveImage(role string, img *article.Image) (string, error) {
	path := filepath.Join(s.dir, role+extForMIME(img.MIMEType))
	if err := os.WriteFile(path, img.Data, 0644); err != nil {
		return "", fmt.Errorf("write %s image: %w", role, err)
	}
	return path, nil
}

func (s *Session) SaveHTML(doc string) error {
	return os.WriteFile(s.HTMLPath(), []byte(doc), 0644)
}

func (s *Session) SaveVideo(data []byte) (string, error) {
	if err := os.WriteFile(s.VideoPath(), data, 0644); err != nil {
		return "", fmt.Errorf("write video: %w", err)
	}
	return s.VideoPath(), nil
}

func (s *Session) SaveNarration(wav []byte) (string, error) {
	if err := os.WriteFile(s.NarrationPath(), wav, 0644); err != nil {
		return "", fmt.Errorf("write narration: %w", err)
	}
	return s.NarrationPath(), nil
}

// Clean removes every session directory under baseDir and reports how many
// were removed.
func Clean(baseDir string) (int, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read output directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := os.RemoveAll(filepath.Join(baseDir, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

func extForMIME(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

func sanitizeForPath(s string) string {
	s = strings.ToLower(s)
	s = sanitizeRegex.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
