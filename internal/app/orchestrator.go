package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"blogwizard/internal/article"
	"blogwizard/internal/audio"
	"blogwizard/internal/status"
	"blogwizard/internal/storage"
)

var (
	ErrNoInput        = errors.New("topic or reference URL is required")
	ErrNoArticle      = errors.New("no article has been generated yet")
	ErrNoFeatured     = errors.New("no featured image is available")
	ErrBusy           = errors.New("another operation is already in flight")
	ErrStaleOperation = errors.New("result discarded, a newer run took over")
)

// Orchestrator runs the generation pipeline and the follow-up operations on
// its result. State lives in the workspace; progress is published through the
// service's status tracker.
type Orchestrator struct {
	service *Service
	ws      *Workspace
	session *storage.Session
}

func NewOrchestrator(service *Service) *Orchestrator {
	return &Orchestrator{
		service: service,
		ws:      NewWorkspace(),
	}
}

func (o *Orchestrator) Status() *status.Tracker { return o.service.Status() }
func (o *Orchestrator) Snapshot() Snapshot      { return o.ws.Snapshot() }

// SessionDir returns the output directory of the current run, or "" before
// the first successful article.
func (o *Orchestrator) SessionDir() string {
	if o.session == nil {
		return ""
	}
	return o.session.Dir()
}

// Generate runs the full pipeline: article text first (fatal on failure),
// then both images in parallel (each branch best effort). The workspace is
// reset up front, so a failed run leaves no half-committed older result.
func (o *Orchestrator) Generate(ctx context.Context, req article.Request) (Snapshot, error) {
	req.Options = req.Options.Normalize()
	if !req.Valid() {
		return Snapshot{}, ErrNoInput
	}
	st := o.Status()
	if st.Current().Busy() {
		return Snapshot{}, ErrBusy
	}

	token := o.ws.Begin()
	o.session = nil

	st.Set(status.GeneratingText)
	art, err := o.service.Gateway().GenerateArticle(ctx, req)
	if err != nil {
		st.Set(status.Error)
		return Snapshot{}, fmt.Errorf("generate article: %w", err)
	}
	if !o.ws.CommitArticle(token, art) {
		return Snapshot{}, ErrStaleOperation
	}

	sess := storage.NewSession(o.service.Config().Output.Dir)
	if err := sess.Finalize(art.Slug); err != nil {
		slog.Warn("could not create session directory, results stay in memory only", "error", err)
	} else {
		o.session = sess
		if err := sess.SaveArticle(art); err != nil {
			slog.Warn("could not save article to disk", "error", err)
		}
	}

	st.Set(status.GeneratingImages)
	o.generateImages(ctx, token, art.ImagePrompts)

	st.Set(status.Complete)
	return o.ws.Snapshot(), nil
}

// generateImages fans out one branch per non-empty prompt and waits for both.
// A failed or stale branch is logged and skipped; the article is usable with
// zero, one, or two images.
func (o *Orchestrator) generateImages(ctx context.Context, token uint64, p article.ImagePrompts) {
	var branches []branch
	if p.Featured != "" {
		branches = append(branches, branch{name: "featured", run: func(ctx context.Context) error {
			img, err := o.service.Gateway().GenerateImage(ctx, p.Featured)
			if err != nil {
				return err
			}
			if !o.ws.SetFeatured(token, img) {
				return ErrStaleOperation
			}
			o.saveImage("featured", img)
			return nil
		}})
	}
	if p.Inline != "" {
		branches = append(branches, branch{name: "inline", run: func(ctx context.Context) error {
			img, err := o.service.Gateway().GenerateImage(ctx, p.Inline)
			if err != nil {
				return err
			}
			if !o.ws.SetInline(token, img) {
				return ErrStaleOperation
			}
			o.saveImage("inline", img)
			return nil
		}})
	}

	for _, res := range settleAll(ctx, branches) {
		if res.err != nil {
			slog.Warn("image generation failed", "role", res.name, "error", res.err)
		}
	}
}

func (o *Orchestrator) saveImage(role string, img *article.Image) {
	if o.session == nil {
		return
	}
	if _, err := o.session.SaveImage(role, img); err != nil {
		slog.Warn("could not save image to disk", "role", role, "error", err)
	}
}

// SaveHTML stores an exported HTML document next to the article files and
// returns its path.
func (o *Orchestrator) SaveHTML(doc string) (string, error) {
	if o.session == nil {
		return "", errors.New("no session directory to store the export in")
	}
	if err := o.session.SaveHTML(doc); err != nil {
		return "", fmt.Errorf("save html: %w", err)
	}
	return o.session.HTMLPath(), nil
}

// EditFeaturedImage rewrites the featured image with a free-form instruction.
// The current image stays in place when the edit fails.
func (o *Orchestrator) EditFeaturedImage(ctx context.Context, instruction string) (*article.Image, error) {
	snap := o.ws.Snapshot()
	if snap.Featured == nil {
		return nil, ErrNoFeatured
	}
	st := o.Status()
	if st.Current().Busy() {
		return nil, ErrBusy
	}
	token := o.ws.Token()

	st.Set(status.EditingImage)
	img, err := o.service.Gateway().EditImage(ctx, *snap.Featured, instruction)
	if err != nil {
		st.Set(status.Error)
		return nil, fmt.Errorf("edit image: %w", err)
	}
	if !o.ws.SetFeatured(token, img) {
		st.Set(status.Idle)
		return nil, ErrStaleOperation
	}
	o.saveImage("featured", img)

	st.Set(status.Idle)
	return img, nil
}

// AnimateFeaturedImage turns the featured image into a short video clip and
// returns the path of the saved file.
func (o *Orchestrator) AnimateFeaturedImage(ctx context.Context) (string, error) {
	snap := o.ws.Snapshot()
	if snap.Featured == nil {
		return "", ErrNoFeatured
	}
	st := o.Status()
	if st.Current().Busy() {
		return "", ErrBusy
	}

	st.Set(status.GeneratingVideo)
	data, err := o.service.Gateway().GenerateVideo(ctx, *snap.Featured)
	if err != nil {
		st.Set(status.Error)
		return "", fmt.Errorf("generate video: %w", err)
	}
	if o.session == nil {
		st.Set(status.Error)
		return "", errors.New("no session directory to store the video in")
	}
	path, err := o.session.SaveVideo(data)
	if err != nil {
		st.Set(status.Error)
		return "", fmt.Errorf("save video: %w", err)
	}

	st.Set(status.Idle)
	return path, nil
}

// NarrateSummary reads the article summary aloud and returns the path of the
// saved WAV file.
func (o *Orchestrator) NarrateSummary(ctx context.Context) (string, error) {
	snap := o.ws.Snapshot()
	if snap.Article == nil {
		return "", ErrNoArticle
	}
	text := snap.Article.Summary
	if text == "" {
		text = snap.Article.Title
	}
	st := o.Status()
	if st.Current().Busy() {
		return "", ErrBusy
	}

	st.Set(status.GeneratingAudio)
	pcm, err := o.service.Gateway().GenerateSpeech(ctx, text)
	if err != nil {
		st.Set(status.Error)
		return "", fmt.Errorf("generate speech: %w", err)
	}
	if o.session == nil {
		st.Set(status.Error)
		return "", errors.New("no session directory to store the narration in")
	}
	path, err := o.session.SaveNarration(audio.WAV(pcm, o.service.Config().Gemini.SampleRate))
	if err != nil {
		st.Set(status.Error)
		return "", fmt.Errorf("save narration: %w", err)
	}

	st.Set(status.Idle)
	return path, nil
}

// UpdateContent replaces the article body with an edited version.
func (o *Orchestrator) UpdateContent(content string) error {
	if !o.ws.UpdateContent(o.ws.Token(), content) {
		return ErrNoArticle
	}
	if o.session != nil {
		snap := o.ws.Snapshot()
		if err := o.session.SaveArticle(snap.Article); err != nil {
			slog.Warn("could not save article to disk", "error", err)
		}
	}
	return nil
}

// Restart discards the current result and returns to the idle state. Any
// branch still in flight from the old run settles against a stale token.
func (o *Orchestrator) Restart() {
	o.ws.Begin()
	o.session = nil
	o.Status().Set(status.Idle)
}
