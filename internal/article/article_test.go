package article

import (
	"errors"
	"strings"
	"testing"
)

const validJSON = `{
	"title": "Como Cuidar de Suculentas",
	"slug": "como-cuidar-de-suculentas",
	"metaDescription": "Guia completo para cuidar de suculentas em casa.",
	"keywords": ["suculentas", "plantas"],
	"tags": ["jardinagem", "casa"],
	"summary": "Um guia prático sobre suculentas.",
	"content": "## Introdução\n\nTexto do artigo [[INLINE_IMAGE_PLACEHOLDER]] continua.",
	"imagePrompts": {
		"featured": "A bright photo of succulents",
		"inline": "Close-up of a succulent leaf"
	}
}`

func TestDecode(t *testing.T) {
	art, err := Decode(validJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if art.Title != "Como Cuidar de Suculentas" {
		t.Errorf("Title = %q", art.Title)
	}
	if art.Slug != "como-cuidar-de-suculentas" {
		t.Errorf("Slug = %q", art.Slug)
	}
	if art.PrimaryKeyword() != "suculentas" {
		t.Errorf("PrimaryKeyword() = %q", art.PrimaryKeyword())
	}
	if art.ImagePrompts.Featured == "" || art.ImagePrompts.Inline == "" {
		t.Error("image prompts should both be set")
	}
}

func TestDecodeStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + validJSON + "\n```"
	art, err := Decode(fenced)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if art.Title == "" {
		t.Error("Title should survive fence stripping")
	}
}

func TestDecodeErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"empty", "", ErrEmptyResponse},
		{"whitespaceOnly", "  \n\t ", ErrEmptyResponse},
		{"notJSON", "Desculpe, não consegui gerar o artigo.", ErrMalformedResponse},
		{"truncatedJSON", `{"title": "Oi", "slug"`, ErrMalformedResponse},
		{"missingTitle", `{"slug": "x", "content": "y"}`, ErrMissingField},
		{"missingSlug", `{"title": "x", "content": "y"}`, ErrMissingField},
		{"missingContent", `{"title": "x", "slug": "y"}`, ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{
			name: "allBlank",
			in:   Options{},
			want: Options{Tone: "Profissional", Length: "Médio (~1200 palavras)", Audience: DefaultAudience},
		},
		{
			name: "blankAudience",
			in:   Options{Tone: "Casual", Length: Lengths[0], Audience: "   "},
			want: Options{Tone: "Casual", Length: Lengths[0], Audience: DefaultAudience},
		},
		{
			name: "fullySet",
			in:   Options{Tone: "Técnico", Length: Lengths[2], Audience: "Desenvolvedores"},
			want: Options{Tone: "Técnico", Length: Lengths[2], Audience: "Desenvolvedores"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRequestValid(t *testing.T) {
	if (Request{}).Valid() {
		t.Error("empty request should be invalid")
	}
	if !(Request{Topic: "café"}).Valid() {
		t.Error("topic-only request should be valid")
	}
	if !(Request{ReferenceURL: "https://example.com/post"}).Valid() {
		t.Error("url-only request should be valid")
	}
	if (Request{Topic: "  ", ReferenceURL: "\t"}).Valid() {
		t.Error("blank-only request should be invalid")
	}
}

func TestImageDataURI(t *testing.T) {
	img := Image{Data: []byte{0x89, 0x50, 0x4E, 0x47}, MIMEType: "image/png"}
	uri := img.DataURI()
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("DataURI() = %q", uri)
	}
}
