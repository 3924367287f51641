// Package publish pushes a finished article to a WordPress site as a draft
// through the REST API, using application-password authentication.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"blogwizard/internal/article"
	"blogwizard/pkg/httputil"
)

type Config struct {
	BaseURL     string
	Username    string
	AppPassword string
	Status      string
}

type Publisher struct {
	cfg    Config
	client *httputil.RetryClient
}

// Result identifies the created post.
type Result struct {
	ID   int    `json:"id"`
	Link string `json:"link"`
}

type mediaResponse struct {
	ID int `json:"id"`
}

type postPayload struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Status        string `json:"status"`
	Excerpt       string `json:"excerpt,omitempty"`
	Content       string `json:"content"`
	FeaturedMedia int    `json:"featured_media,omitempty"`
}

func New(cfg Config, client *http.Client) (*Publisher, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("wordpress base URL is required")
	}
	if cfg.Username == "" || cfg.AppPassword == "" {
		return nil, errors.New("wordpress credentials are required")
	}
	if cfg.Status == "" {
		cfg.Status = "draft"
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Publisher{
		cfg:    cfg,
		client: httputil.NewRetryClient(client, httputil.DefaultRetryConfig()),
	}, nil
}

// PublishDraft uploads the featured image (when present) and creates the
// post with the article's SEO fields and the rendered HTML body.
func (p *Publisher) PublishDraft(ctx context.Context, art *article.Article, htmlBody string, featured *article.Image) (*Result, error) {
	mediaID := 0
	if featured != nil {
		id, err := p.uploadMedia(ctx, art.Slug, featured)
		if err != nil {
			return nil, fmt.Errorf("upload featured image: %w", err)
		}
		mediaID = id
	}

	payload, err := json.Marshal(postPayload{
		Title:         art.Title,
		Slug:          art.Slug,
		Status:        p.cfg.Status,
		Excerpt:       art.Summary,
		Content:       htmlBody,
		FeaturedMedia: mediaID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal post: %w", err)
	}

	req, err := p.newRequest(ctx, http.MethodPost, "/wp-json/wp/v2/posts", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result Result
	if err := p.do(req, &result); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &result, nil
}

func (p *Publisher) uploadMedia(ctx context.Context, slug string, img *article.Image) (int, error) {
	req, err := p.newRequest(ctx, http.MethodPost, "/wp-json/wp/v2/media", bytes.NewReader(img.Data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", img.MIMEType)
	req.Header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-featured%s"`, slug, extForMIME(img.MIMEType)))

	var media mediaResponse
	if err := p.do(req, &media); err != nil {
		return 0, err
	}
	return media.ID, nil
}

func (p *Publisher) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, p.cfg.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(p.cfg.Username, p.cfg.AppPassword)
	return req, nil
}

func (p *Publisher) do(req *http.Request, out any) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("wordpress returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode wordpress response: %w", err)
	}
	return nil
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

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
