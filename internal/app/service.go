package app

import (
	"context"
	"errors"

	"blogwizard/internal/article"
	"blogwizard/internal/gemini"
	"blogwizard/internal/status"
	"blogwizard/pkg/config"
	"blogwizard/pkg/prompts"
)

// Gateway is the model-service surface the orchestrator drives. Every method
// is one logical round trip; failures propagate untouched.
type Gateway interface {
	GenerateArticle(ctx context.Context, req article.Request) (*article.Article, error)
	GenerateImage(ctx context.Context, prompt string) (*article.Image, error)
	EditImage(ctx context.Context, img article.Image, instruction string) (*article.Image, error)
	GenerateVideo(ctx context.Context, img article.Image) ([]byte, error)
	GenerateSpeech(ctx context.Context, text string) ([]byte, error)
}

type Service struct {
	cfg     *config.Config
	gateway Gateway
	status  *status.Tracker
}

type ServiceOptions struct {
	Config  *config.Config
	Gateway Gateway
	Status  *status.Tracker
}

func NewService(opts ServiceOptions) *Service {
	tracker := opts.Status
	if tracker == nil {
		tracker = status.NewTracker()
	}
	return &Service{
		cfg:     opts.Config,
		gateway: opts.Gateway,
		status:  tracker,
	}
}

func (s *Service) Config() *config.Config  { return s.cfg }
func (s *Service) Gateway() Gateway        { return s.gateway }
func (s *Service) Status() *status.Tracker { return s.status }

// BuildService wires the real gateway from configuration.
func BuildService(cfg *config.Config) (*Service, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required (environment, .env, or Secret Manager)")
	}

	p, err := prompts.Load()
	if err != nil {
		return nil, err
	}

	gateway := gemini.NewClient(gemini.Config{
		APIKey:        cfg.GeminiAPIKey,
		TextModel:     cfg.Gemini.TextModel,
		ImageModel:    cfg.Gemini.ImageModel,
		VideoModel:    cfg.Gemini.VideoModel,
		SpeechModel:   cfg.Gemini.SpeechModel,
		Voice:         cfg.Gemini.Voice,
		AspectRatio:   cfg.Gemini.AspectRatio,
		Resolution:    cfg.Gemini.Resolution,
		DisableSearch: cfg.Gemini.DisableSearch,
		PollInterval:  cfg.Gemini.PollInterval(),
		VideoWait:     cfg.Gemini.VideoWait(),
	}, p)

	return NewService(ServiceOptions{
		Config:  cfg,
		Gateway: gateway,
	}), nil
}
