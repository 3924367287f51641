package export

import (
	"strings"
	"testing"

	"blogwizard/internal/article"
	"blogwizard/internal/markup"
)

func testArticle() *article.Article {
	return &article.Article{
		Title:           "Suculentas em Casa",
		Slug:            "suculentas-em-casa",
		MetaDescription: "Tudo sobre suculentas.",
		Keywords:        []string{"suculentas", "plantas"},
		Tags:            []string{"jardinagem"},
		Summary:         "Resumo.",
		Content:         "## Introdução\n\nTexto **importante**.\n\n" + markup.Placeholder + "\n\nConclusão.",
	}
}

func testImage() *article.Image {
	return &article.Image{Data: []byte{0x89, 0x50}, MIMEType: "image/png"}
}

func TestHTMLWithBothImages(t *testing.T) {
	doc, err := HTML(testArticle(), testImage(), testImage())
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}

	for _, want := range []string{
		"<title>Suculentas em Casa</title>",
		`<meta name="description" content="Tudo sobre suculentas.">`,
		`<meta name="keywords" content="suculentas, plantas">`,
		"<h1>Suculentas em Casa</h1>",
		"Imagem destacada gerada por IA",
		"Figura 1: Ilustração contextual",
		"<h2>Introdução</h2>",
		"<strong>importante</strong>",
		"data:image/png;base64,",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	if strings.Contains(doc, markup.Placeholder) {
		t.Error("placeholder token leaked into the document")
	}
}

func TestHTMLWithoutImages(t *testing.T) {
	doc, err := HTML(testArticle(), nil, nil)
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}

	if strings.Contains(doc, "Imagem destacada") {
		t.Error("hero figure should be absent without a featured image")
	}
	if strings.Contains(doc, "Figura 1") {
		t.Error("inline figure should be absent without an inline image")
	}
	if strings.Contains(doc, markup.Placeholder) {
		t.Error("placeholder token should be dropped even without an inline image")
	}
	if !strings.Contains(doc, "Conclusão") {
		t.Error("text after the placeholder should still render")
	}
}

func TestHTMLWithoutPlaceholder(t *testing.T) {
	art := testArticle()
	art.Content = "## Só um título\n\nCorpo."

	doc, err := HTML(art, nil, testImage())
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	if strings.Contains(doc, "Figura 1") {
		t.Error("inline figure needs a placeholder position to render at")
	}
}

func TestHTMLEscapesMetadata(t *testing.T) {
	art := testArticle()
	art.Title = `Plantas <& "Cia">`

	doc, err := HTML(art, nil, nil)
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	if !strings.Contains(doc, "Plantas &lt;&amp; &#34;Cia&#34;&gt;") {
		t.Errorf("title not escaped: %q", doc)
	}
}

func TestPostBody(t *testing.T) {
	body := PostBody(testArticle())

	for _, want := range []string{
		"<h2>Introdução</h2>",
		"<strong>importante</strong>",
		"Conclusão.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("post body missing %q", want)
		}
	}
	if strings.Contains(body, markup.Placeholder) {
		t.Error("placeholder token leaked into the post body")
	}
	if strings.Contains(body, "<html") || strings.Contains(body, "<head") {
		t.Error("post body must be a bare fragment")
	}
}

func TestFeaturedImageChangePropagatesToExport(t *testing.T) {
	art := testArticle()
	before, err := HTML(art, &article.Image{Data: []byte{1}, MIMEType: "image/png"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	after, err := HTML(art, &article.Image{Data: []byte{2}, MIMEType: "image/png"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if before == after {
		t.Error("replacing the featured image must change the export")
	}
}
