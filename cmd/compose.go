package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"blogwizard/internal/app"
	"blogwizard/internal/article"
	"blogwizard/internal/export"
	"blogwizard/internal/publish"
	"blogwizard/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	metaStyle    = lipgloss.NewStyle().Faint(true)
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Interactive article composer",
	Long: `Compose an article interactively: describe the topic, review the generated
result, then edit images, animate, narrate, export, or publish.`,
	RunE: runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
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

	fmt.Println(titleStyle.Render("✍ Blogwizard"))

	for {
		req, err := promptRequest()
		if err != nil {
			return err
		}

		if err := generateWithSpinner(ctx, orch, req); err != nil {
			if errors.Is(err, app.ErrNoInput) {
				fmt.Println(warnStyle.Render("Informe um tema ou uma URL de referência."))
				continue
			}
			fmt.Println(warnStyle.Render("Falha na geração: " + err.Error()))
			continue
		}

		printPreview(orch.Snapshot())
		if dir := orch.SessionDir(); dir != "" {
			fmt.Println(metaStyle.Render("Arquivos em " + dir))
		}

		again, err := actionLoop(ctx, cfg, orch)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
		orch.Restart()
	}
}

func promptRequest() (article.Request, error) {
	var req article.Request
	req.Options = article.DefaultOptions()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tema do artigo").
				Placeholder("ex: horta orgânica em apartamento").
				Value(&req.Topic),
			huh.NewInput().
				Title("URL de referência (opcional)").
				Placeholder("https://...").
				Value(&req.ReferenceURL),
			huh.NewSelect[string]().
				Title("Tom").
				Options(huh.NewOptions(article.Tones...)...).
				Value(&req.Options.Tone),
			huh.NewSelect[string]().
				Title("Tamanho").
				Options(huh.NewOptions(article.Lengths...)...).
				Value(&req.Options.Length),
			huh.NewInput().
				Title("Público-alvo").
				Value(&req.Options.Audience),
		),
	)
	if err := form.Run(); err != nil {
		return article.Request{}, err
	}
	return req, nil
}

func generateWithSpinner(ctx context.Context, orch *app.Orchestrator, req article.Request) error {
	var genErr error

	updates := orch.Status().Subscribe()
	done := make(chan struct{})
	go func() {
		for {
			select {
			case s := <-updates:
				slog.Debug("pipeline status", "status", s)
			case <-done:
				return
			}
		}
	}()

	err := spinner.New().
		Title("Gerando artigo, imagens e metadados...").
		Action(func() { _, genErr = orch.Generate(ctx, req) }).
		Run()
	close(done)
	if err != nil {
		return err
	}
	return genErr
}

func printPreview(snap app.Snapshot) {
	art := snap.Article
	fmt.Println()
	fmt.Println(titleStyle.Render(art.Title))
	fmt.Println(metaStyle.Render(art.MetaDescription))
	fmt.Println(metaStyle.Render("slug: " + art.Slug + " · palavras-chave: " + strings.Join(art.Keywords, ", ")))
	fmt.Println()
	fmt.Println(art.Content)
	fmt.Println()
	fmt.Println(imageLine("Imagem de capa", snap.Featured))
	fmt.Println(imageLine("Imagem do corpo", snap.Inline))
}

func imageLine(label string, img *article.Image) string {
	if img == nil {
		return warnStyle.Render("✗ " + label + " indisponível")
	}
	return successStyle.Render(fmt.Sprintf("✓ %s (%s, %d KB)", label, img.MIMEType, len(img.Data)/1024))
}

const (
	actionMetadata  = "metadata"
	actionEditText  = "edit-text"
	actionEditImage = "edit-image"
	actionAnimate   = "animate"
	actionNarrate   = "narrate"
	actionExport    = "export"
	actionClipboard = "clipboard"
	actionPublish   = "publish"
	actionRestart   = "restart"
	actionQuit      = "quit"
)

func actionLoop(ctx context.Context, cfg *config.Config, orch *app.Orchestrator) (again bool, err error) {
	for {
		var choice string
		sel := huh.NewSelect[string]().
			Title("O que fazer agora?").
			Options(
				huh.NewOption("Ver metadados SEO", actionMetadata),
				huh.NewOption("Editar texto", actionEditText),
				huh.NewOption("Retocar imagem de capa", actionEditImage),
				huh.NewOption("Animar imagem de capa (Veo)", actionAnimate),
				huh.NewOption("Narrar resumo", actionNarrate),
				huh.NewOption("Exportar HTML", actionExport),
				huh.NewOption("Copiar HTML para a área de transferência", actionClipboard),
				huh.NewOption("Publicar rascunho no WordPress", actionPublish),
				huh.NewOption("Novo artigo", actionRestart),
				huh.NewOption("Sair", actionQuit),
			).
			Value(&choice)
		if err := sel.Run(); err != nil {
			return false, err
		}

		switch choice {
		case actionMetadata:
			printMetadata(orch.Snapshot())
		case actionEditText:
			err = editText(orch)
		case actionEditImage:
			err = editFeaturedImage(ctx, orch)
		case actionAnimate:
			err = animate(ctx, orch)
		case actionNarrate:
			err = narrate(ctx, orch)
		case actionExport:
			err = exportHTML(orch)
		case actionClipboard:
			err = copyHTML(orch)
		case actionPublish:
			err = publishDraft(ctx, cfg, orch)
		case actionRestart:
			return true, nil
		case actionQuit:
			return false, nil
		}

		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return false, err
			}
			fmt.Println(warnStyle.Render(err.Error()))
			err = nil
		}
	}
}

func printMetadata(snap app.Snapshot) {
	art := snap.Article
	if art == nil {
		fmt.Println(warnStyle.Render(app.ErrNoArticle.Error()))
		return
	}
	fmt.Println()
	fmt.Println(infoStyle.Render("Título:          ") + art.Title)
	fmt.Println(infoStyle.Render("Slug:            ") + art.Slug)
	fmt.Println(infoStyle.Render("Meta descrição:  ") + art.MetaDescription)
	fmt.Println(infoStyle.Render("Palavras-chave:  ") + strings.Join(art.Keywords, ", "))
	fmt.Println(infoStyle.Render("Tags:            ") + strings.Join(art.Tags, ", "))
	fmt.Println(infoStyle.Render("Resumo:          ") + art.Summary)
	fmt.Println()
}

func editText(orch *app.Orchestrator) error {
	snap := orch.Snapshot()
	if snap.Article == nil {
		return app.ErrNoArticle
	}
	content := snap.Article.Content
	if err := huh.NewText().
		Title("Conteúdo do artigo").
		Value(&content).
		Run(); err != nil {
		return err
	}
	if err := orch.UpdateContent(content); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ Texto atualizado"))
	return nil
}

func editFeaturedImage(ctx context.Context, orch *app.Orchestrator) error {
	var instruction string
	if err := huh.NewInput().
		Title("Como ajustar a imagem?").
		Placeholder("ex: deixe o fundo mais claro").
		Value(&instruction).
		Run(); err != nil {
		return err
	}
	if strings.TrimSpace(instruction) == "" {
		return nil
	}

	var opErr error
	if err := spinner.New().
		Title("Retocando imagem...").
		Action(func() { _, opErr = orch.EditFeaturedImage(ctx, instruction) }).
		Run(); err != nil {
		return err
	}
	if opErr != nil {
		return opErr
	}
	fmt.Println(successStyle.Render("✓ Imagem de capa atualizada"))
	return nil
}

func animate(ctx context.Context, orch *app.Orchestrator) error {
	var confirmed bool
	if err := huh.NewConfirm().
		Title("Gerar vídeo com Veo?").
		Description("A geração de vídeo usa um modelo pago e pode levar alguns minutos.").
		Affirmative("Gerar").
		Negative("Cancelar").
		Value(&confirmed).
		Run(); err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	var (
		path  string
		opErr error
	)
	if err := spinner.New().
		Title("Gerando vídeo, isso pode demorar...").
		Action(func() { path, opErr = orch.AnimateFeaturedImage(ctx) }).
		Run(); err != nil {
		return err
	}
	if opErr != nil {
		return opErr
	}
	fmt.Println(successStyle.Render("✓ Vídeo salvo em " + path))
	return nil
}

func narrate(ctx context.Context, orch *app.Orchestrator) error {
	var (
		path  string
		opErr error
	)
	if err := spinner.New().
		Title("Gerando narração...").
		Action(func() { path, opErr = orch.NarrateSummary(ctx) }).
		Run(); err != nil {
		return err
	}
	if opErr != nil {
		return opErr
	}
	fmt.Println(successStyle.Render("✓ Narração salva em " + path))
	return nil
}

func renderHTML(orch *app.Orchestrator) (string, error) {
	snap := orch.Snapshot()
	if snap.Article == nil {
		return "", app.ErrNoArticle
	}
	return export.HTML(snap.Article, snap.Featured, snap.Inline)
}

func exportHTML(orch *app.Orchestrator) error {
	doc, err := renderHTML(orch)
	if err != nil {
		return err
	}
	path, err := orch.SaveHTML(doc)
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ HTML salvo em " + path))
	return nil
}

func copyHTML(orch *app.Orchestrator) error {
	doc, err := renderHTML(orch)
	if err != nil {
		return err
	}
	if err := export.CopyToClipboard(doc); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ HTML copiado para a área de transferência"))
	return nil
}

func publishDraft(ctx context.Context, cfg *config.Config, orch *app.Orchestrator) error {
	snap := orch.Snapshot()
	if snap.Article == nil {
		return app.ErrNoArticle
	}

	publisher, err := publish.New(publish.Config{
		BaseURL:     cfg.WordPress.BaseURL,
		Username:    cfg.WordPressUser,
		AppPassword: cfg.WordPressPassword,
		Status:      cfg.WordPress.Status,
	}, nil)
	if err != nil {
		return err
	}

	body := export.PostBody(snap.Article)
	var (
		result *publish.Result
		opErr  error
	)
	if err := spinner.New().
		Title("Publicando no WordPress...").
		Action(func() { result, opErr = publisher.PublishDraft(ctx, snap.Article, body, snap.Featured) }).
		Run(); err != nil {
		return err
	}
	if opErr != nil {
		return opErr
	}
	fmt.Println(successStyle.Render("✓ Rascunho publicado: " + result.Link))
	fmt.Println(infoStyle.Render("Revise e publique no painel do WordPress."))
	return nil
}
