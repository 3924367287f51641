// Package gemini is the gateway to the generative service: structured text,
// image generation and editing, Veo video rendering, and speech synthesis.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"blogwizard/internal/article"
	"blogwizard/pkg/httputil"
	"blogwizard/pkg/prompts"
)

var (
	// ErrNoImage means the response carried no inline image payload.
	ErrNoImage = errors.New("no image in model response")
	// ErrNoAudio means the response carried no inline audio payload.
	ErrNoAudio = errors.New("no audio in model response")
	// ErrNoVideo means a completed video job yielded no retrievable result.
	ErrNoVideo = errors.New("video job completed without a result")
)

type Config struct {
	APIKey        string
	TextModel     string
	ImageModel    string
	VideoModel    string
	SpeechModel   string
	Voice         string
	AspectRatio   string
	Resolution    string
	DisableSearch bool
	PollInterval  time.Duration
	VideoWait     time.Duration
}

// Client issues one external round trip (or poll loop) per operation. A fresh
// service client is constructed per call; the operations carry no internal
// retry and every failure propagates to the caller.
type Client struct {
	cfg      Config
	prompts  *prompts.Prompts
	download *httputil.RetryClient
}

var articleSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":           {Type: genai.TypeString, Description: "Título chamativo (H1)"},
		"slug":            {Type: genai.TypeString, Description: "URL amigável do post"},
		"metaDescription": {Type: genai.TypeString, Description: "Descrição para o Google (max 160 chars)"},
		"keywords":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"tags":            {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"summary":         {Type: genai.TypeString, Description: "Resumo curto para o excerpt"},
		"content":         {Type: genai.TypeString, Description: "Corpo do artigo em Markdown"},
		"imagePrompts": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"featured": {Type: genai.TypeString},
				"inline":   {Type: genai.TypeString},
			},
			Required: []string{"featured", "inline"},
		},
	},
	Required: []string{"title", "slug", "metaDescription", "keywords", "tags", "summary", "content", "imagePrompts"},
}

func NewClient(cfg Config, p *prompts.Prompts) *Client {
	return &Client{
		cfg:      cfg,
		prompts:  p,
		download: httputil.NewRetryClient(nil, httputil.DefaultRetryConfig()),
	}
}

func (c *Client) newService(ctx context.Context) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return client, nil
}

// GenerateArticle writes the full SEO article for a topic and/or reference
// URL. Search grounding and explicit response schemas are mutually exclusive
// on the API, so the schema is only attached when grounding is disabled.
func (c *Client) GenerateArticle(ctx context.Context, req article.Request) (*article.Article, error) {
	opts := req.Options.Normalize()
	prompt, err := c.prompts.RenderArticle(prompts.ArticleParams{
		Topic:        req.Topic,
		ReferenceURL: req.ReferenceURL,
		Tone:         opts.Tone,
		Length:       opts.Length,
		Audience:     opts.Audience,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: c.prompts.System.Article}},
		},
		ResponseMIMEType: "application/json",
	}
	if c.cfg.DisableSearch {
		config.ResponseSchema = articleSchema
	} else {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	service, err := c.newService(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := service.Models.GenerateContent(ctx, c.cfg.TextModel, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("generate article: %w", err)
	}

	return article.Decode(firstText(resp))
}

// GenerateImage renders one image for a descriptive prompt at the configured
// aspect ratio.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*article.Image, error) {
	service, err := c.newService(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := service.Models.GenerateContent(ctx, c.cfg.ImageModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: c.cfg.AspectRatio},
	})
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}

	return firstImage(resp)
}

// EditImage applies a free-text instruction to an existing image. Image bytes
// and instruction travel as a single multi-part request.
func (c *Client) EditImage(ctx context.Context, img article.Image, instruction string) (*article.Image, error) {
	service, err := c.newService(ctx)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{Data: img.Data, MIMEType: img.MIMEType}},
			{Text: instruction},
		},
	}}

	resp, err := service.Models.GenerateContent(ctx, c.cfg.ImageModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("edit image: %w", err)
	}

	return firstImage(resp)
}

// GenerateVideo animates an image through a long-running Veo job, polling at
// the configured interval until the job completes. The wait is bounded and
// the caller can abandon it through ctx.
func (c *Client) GenerateVideo(ctx context.Context, img article.Image) ([]byte, error) {
	service, err := c.newService(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.VideoWait)
	defer cancel()

	op, err := service.Models.GenerateVideos(ctx, c.cfg.VideoModel, "", &genai.Image{
		ImageBytes: img.Data,
		MIMEType:   img.MIMEType,
	}, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     c.cfg.Resolution,
		AspectRatio:    c.cfg.AspectRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("start video job: %w", err)
	}

	for !op.Done {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("video job wait: %w", ctx.Err())
		case <-time.After(c.cfg.PollInterval):
		}

		op, err = service.Operations.GetVideosOperation(ctx, op, nil)
		if err != nil {
			return nil, fmt.Errorf("poll video job: %w", err)
		}
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 || op.Response.GeneratedVideos[0].Video == nil {
		return nil, ErrNoVideo
	}

	video := op.Response.GeneratedVideos[0].Video
	if len(video.VideoBytes) > 0 {
		return video.VideoBytes, nil
	}
	if video.URI == "" {
		return nil, ErrNoVideo
	}

	data, err := c.download.GetBytes(ctx, withAPIKey(video.URI, c.cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("download video: %w", err)
	}
	return data, nil
}

// GenerateSpeech synthesizes narration for a short text (a summary, not a
// full article) and returns raw 16-bit PCM at the service's fixed 24kHz rate.
func (c *Client) GenerateSpeech(ctx context.Context, text string) ([]byte, error) {
	service, err := c.newService(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := service.Models.GenerateContent(ctx, c.cfg.SpeechModel, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.cfg.Voice},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate speech: %w", err)
	}

	for _, part := range responseParts(resp) {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, ErrNoAudio
}

func firstText(resp *genai.GenerateContentResponse) string {
	for _, part := range responseParts(resp) {
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}

func firstImage(resp *genai.GenerateContentResponse) (*article.Image, error) {
	for _, part := range responseParts(resp) {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return &article.Image{Data: part.InlineData.Data, MIMEType: mime}, nil
		}
	}
	return nil, ErrNoImage
}

func responseParts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	return resp.Candidates[0].Content.Parts
}

func withAPIKey(uri, key string) string {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	return uri + sep + "key=" + key
}
