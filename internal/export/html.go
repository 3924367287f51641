// Package export renders a finished article as a standalone HTML document
// ready to paste into WordPress, with generated images inlined as data URIs.
package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"blogwizard/internal/article"
	"blogwizard/internal/markup"
)

var renderer = goldmark.New(
	goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
)

// HTML builds the full document. Either image may be nil; an absent inline
// image simply drops the placeholder, an absent featured image drops the hero
// figure.
func HTML(art *article.Article, featured, inline *article.Image) (string, error) {
	body, err := renderBody(art, inline)
	if err != nil {
		return "", err
	}

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html lang=\"pt-BR\">\n<head>\n")
	doc.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&doc, "<title>%s</title>\n", html.EscapeString(art.Title))
	if art.MetaDescription != "" {
		fmt.Fprintf(&doc, "<meta name=\"description\" content=\"%s\">\n", html.EscapeString(art.MetaDescription))
	}
	if len(art.Keywords) > 0 {
		fmt.Fprintf(&doc, "<meta name=\"keywords\" content=\"%s\">\n", html.EscapeString(strings.Join(art.Keywords, ", ")))
	}
	doc.WriteString("</head>\n<body>\n<article>\n")

	fmt.Fprintf(&doc, "<h1>%s</h1>\n", html.EscapeString(art.Title))

	if featured != nil {
		fmt.Fprintf(&doc, "<figure>\n<img src=\"%s\" alt=\"%s\">\n<figcaption>Imagem destacada gerada por IA</figcaption>\n</figure>\n",
			featured.DataURI(), html.EscapeString(art.PrimaryKeyword()))
	}

	doc.WriteString(body)
	doc.WriteString("</article>\n</body>\n</html>\n")

	return doc.String(), nil
}

func renderBody(art *article.Article, inline *article.Image) (string, error) {
	parts := markup.SplitAtPlaceholder(art.Content)

	var md strings.Builder
	md.WriteString(parts[0])
	if len(parts) == 2 {
		if inline != nil {
			fmt.Fprintf(&md, "\n\n<figure>\n<img src=\"%s\" alt=\"Ilustração do artigo\">\n<figcaption>Figura 1: Ilustração contextual</figcaption>\n</figure>\n\n", inline.DataURI())
		}
		md.WriteString(parts[1])
	}

	var out bytes.Buffer
	if err := renderer.Convert([]byte(md.String()), &out); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out.String(), nil
}

// PostBody renders the body as a bare HTML fragment for publishing. Images
// do not travel inline there: the placeholder is dropped and the featured
// image is uploaded as a media attachment, so the lightweight line transform
// is enough.
func PostBody(art *article.Article) string {
	parts := markup.SplitAtPlaceholder(art.Content)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return markup.ToHTML(strings.Join(parts, "\n"))
}

// CopyToClipboard puts the document on the system clipboard.
func CopyToClipboard(doc string) error {
	if err := clipboard.WriteAll(doc); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
