package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath    = "config.yaml"
	defaultOutputDir     = "./output"
	defaultTextModel     = "gemini-3-flash-preview"
	defaultImageModel    = "gemini-2.5-flash-image"
	defaultVideoModel    = "veo-3.1-fast-generate-preview"
	defaultSpeechModel   = "gemini-2.5-flash-preview-tts"
	defaultVoice         = "Kore"
	defaultAspectRatio   = "16:9"
	defaultResolution    = "720p"
	defaultPollInterval  = 10 * time.Second
	defaultVideoTimeout  = 10 * time.Minute
	defaultSampleRate    = 24000
	defaultPublishStatus = "draft"
	apiKeySecretName     = "gemini-api-key"
)

type Config struct {
	GeminiAPIKey       string
	GoogleCloudProject string
	WordPressUser      string
	WordPressPassword  string

	Gemini    GeminiConfig    `yaml:"gemini"`
	Output    OutputConfig    `yaml:"output"`
	WordPress WordPressConfig `yaml:"wordpress"`
}

type GeminiConfig struct {
	TextModel     string `yaml:"text_model"`
	ImageModel    string `yaml:"image_model"`
	VideoModel    string `yaml:"video_model"`
	SpeechModel   string `yaml:"speech_model"`
	Voice         string `yaml:"voice"`
	AspectRatio   string `yaml:"aspect_ratio"`
	Resolution    string `yaml:"resolution"`
	SampleRate    int    `yaml:"sample_rate"`
	DisableSearch bool   `yaml:"disable_search"`
	PollSeconds   int    `yaml:"poll_seconds"`
	VideoTimeout  int    `yaml:"video_timeout_seconds"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type WordPressConfig struct {
	BaseURL string `yaml:"base_url"`
	Status  string `yaml:"status"`
}

// PollInterval is the cadence of the Veo job status poll.
func (g GeminiConfig) PollInterval() time.Duration {
	if g.PollSeconds <= 0 {
		return defaultPollInterval
	}
	return time.Duration(g.PollSeconds) * time.Second
}

// VideoWait bounds the total time spent waiting on a Veo job.
func (g GeminiConfig) VideoWait() time.Duration {
	if g.VideoTimeout <= 0 {
		return defaultVideoTimeout
	}
	return time.Duration(g.VideoTimeout) * time.Second
}

func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GoogleCloudProject: os.Getenv("GOOGLE_CLOUD_PROJECT"),
		WordPressUser:      os.Getenv("WORDPRESS_USER"),
		WordPressPassword:  os.Getenv("WORDPRESS_APP_PASSWORD"),
	}

	loadYAMLConfig(cfg)
	applyDefaults(cfg)

	if cfg.GeminiAPIKey == "" && cfg.GoogleCloudProject != "" {
		key, err := apiKeyFromSecretManager(ctx, cfg.GoogleCloudProject)
		if err != nil {
			slog.Warn("Could not read API key from Secret Manager", "error", err)
		} else {
			cfg.GeminiAPIKey = key
		}
	}

	return cfg, nil
}

func loadYAMLConfig(cfg *Config) {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	applyGeminiDefaults(&cfg.Gemini)

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaultOutputDir
	}
	if cfg.WordPress.Status == "" {
		cfg.WordPress.Status = defaultPublishStatus
	}
}

func applyGeminiDefaults(g *GeminiConfig) {
	if g.TextModel == "" {
		g.TextModel = defaultTextModel
	}
	if g.ImageModel == "" {
		g.ImageModel = defaultImageModel
	}
	if g.VideoModel == "" {
		g.VideoModel = defaultVideoModel
	}
	if g.SpeechModel == "" {
		g.SpeechModel = defaultSpeechModel
	}
	if g.Voice == "" {
		g.Voice = defaultVoice
	}
	if g.AspectRatio == "" {
		g.AspectRatio = defaultAspectRatio
	}
	if g.Resolution == "" {
		g.Resolution = defaultResolution
	}
	if g.SampleRate == 0 {
		g.SampleRate = defaultSampleRate
	}
}

func apiKeyFromSecretManager(ctx context.Context, project string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create secret manager client: %w", err)
	}
	defer func() { _ = client.Close() }()

	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, apiKeySecretName)
	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", name, err)
	}

	return string(resp.GetPayload().GetData()), nil
}
