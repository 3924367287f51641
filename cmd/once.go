package cmd

import (
	"errors"
	"log/slog"

	"blogwizard/internal/app"
	"blogwizard/internal/article"
	"blogwizard/internal/export"
	"blogwizard/pkg/config"

	"github.com/spf13/cobra"
)

var (
	onceTopic    string
	onceURL      string
	onceTone     string
	onceLength   string
	onceAudience string
	onceNarrate  bool
)

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Generate a single article non-interactively",
	Long:  `Generate a single article with images and save it to the output directory.`,
	RunE:  runOnce,
}

func init() {
	onceCmd.Flags().StringVarP(&onceTopic, "topic", "t", "", "Topic for article generation")
	onceCmd.Flags().StringVarP(&onceURL, "url", "u", "", "Reference URL for article generation")
	onceCmd.Flags().StringVar(&onceTone, "tone", "", "Article tone")
	onceCmd.Flags().StringVar(&onceLength, "length", "", "Article length")
	onceCmd.Flags().StringVar(&onceAudience, "audience", "", "Target audience")
	onceCmd.Flags().BoolVar(&onceNarrate, "narrate", false, "Also narrate the summary to a WAV file")
	rootCmd.AddCommand(onceCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	if onceTopic == "" && onceURL == "" {
		return errors.New("please provide --topic or --url")
	}

	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	service, err := app.BuildService(cfg)
	if err != nil {
		return err
	}
	orch := app.NewOrchestrator(service)

	slog.Info("Generating article...", "topic", onceTopic, "url", onceURL)
	snap, err := orch.Generate(ctx, article.Request{
		Topic:        onceTopic,
		ReferenceURL: onceURL,
		Options: article.Options{
			Tone:     onceTone,
			Length:   onceLength,
			Audience: onceAudience,
		},
	})
	if err != nil {
		return err
	}

	slog.Info("Article generated",
		"title", snap.Article.Title,
		"slug", snap.Article.Slug,
		"featured", snap.Featured != nil,
		"inline", snap.Inline != nil,
	)

	doc, err := export.HTML(snap.Article, snap.Featured, snap.Inline)
	if err != nil {
		return err
	}
	path, err := orch.SaveHTML(doc)
	if err != nil {
		return err
	}
	slog.Info("Export complete", "html", path, "dir", orch.SessionDir())

	if onceNarrate {
		slog.Info("Generating narration...")
		wavPath, err := orch.NarrateSummary(ctx)
		if err != nil {
			return err
		}
		slog.Info("Narration complete", "path", wavPath)
	}

	return nil
}
