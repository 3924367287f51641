package article

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrEmptyResponse means the model returned no text at all.
	ErrEmptyResponse = errors.New("model returned empty response")
	// ErrMalformedResponse means the returned text is not valid JSON.
	ErrMalformedResponse = errors.New("model response is not valid JSON")
	// ErrMissingField means the JSON parsed but a required field is absent.
	ErrMissingField = errors.New("model response is missing a required field")
)

// ImagePrompts carries the two English image-generation prompts the model
// produces alongside the article body.
type ImagePrompts struct {
	Featured string `json:"featured"`
	Inline   string `json:"inline"`
}

// Article is the full generation result: SEO metadata plus the body in
// lightweight markup (## / ### headings, **bold**, and one optional
// inline-image placeholder token).
type Article struct {
	Title           string       `json:"title"`
	Slug            string       `json:"slug"`
	MetaDescription string       `json:"metaDescription"`
	Keywords        []string     `json:"keywords"`
	Tags            []string     `json:"tags"`
	Summary         string       `json:"summary"`
	Content         string       `json:"content"`
	ImagePrompts    ImagePrompts `json:"imagePrompts"`
}

// PrimaryKeyword returns the first keyword, the one the title is built around.
func (a *Article) PrimaryKeyword() string {
	if len(a.Keywords) == 0 {
		return ""
	}
	return a.Keywords[0]
}

// Image is an encoded image payload as returned by the model.
type Image struct {
	Data     []byte
	MIMEType string
}

// DataURI renders the image as an inlineable data URI.
func (img *Image) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
}

// Options are the writing directives passed through to the article prompt.
type Options struct {
	Tone     string
	Length   string
	Audience string
}

const DefaultAudience = "Público geral"

// Tones and Lengths are the fixed choices offered by the compose form.
var (
	Tones   = []string{"Profissional", "Casual", "Técnico", "Inspirador", "Persuasivo"}
	Lengths = []string{"Curto (~600 palavras)", "Médio (~1200 palavras)", "Longo (~2000 palavras)"}
)

// DefaultOptions fills every directive with its default choice.
func DefaultOptions() Options {
	return Options{
		Tone:     Tones[0],
		Length:   Lengths[1],
		Audience: DefaultAudience,
	}
}

// Normalize substitutes defaults for blank directives.
func (o Options) Normalize() Options {
	if o.Tone == "" {
		o.Tone = Tones[0]
	}
	if o.Length == "" {
		o.Length = Lengths[1]
	}
	if strings.TrimSpace(o.Audience) == "" {
		o.Audience = DefaultAudience
	}
	return o
}

// Request is a single article submission. At least one of Topic and
// ReferenceURL must be non-blank.
type Request struct {
	Topic        string
	ReferenceURL string
	Options      Options
}

// Valid reports whether the request carries enough input to generate from.
func (r Request) Valid() bool {
	return strings.TrimSpace(r.Topic) != "" || strings.TrimSpace(r.ReferenceURL) != ""
}

var codeFenceRegex = regexp.MustCompile("^```(?:json)?\\n?")

// Decode parses the model's text output into an Article. Models wrap JSON in
// markdown code fences often enough that the fence is stripped first. The
// error kinds are kept distinct so callers can message the user accordingly:
// an empty response, a malformed document, and a document missing required
// fields are three different failures.
func Decode(raw string) (*Article, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	text = codeFenceRegex.ReplaceAllString(text, "")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	text = strings.TrimSpace(text)

	var art Article
	if err := json.Unmarshal([]byte(text), &art); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := art.validate(); err != nil {
		return nil, err
	}
	return &art, nil
}

func (a *Article) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"title", a.Title},
		{"slug", a.Slug},
		{"content", a.Content},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, field.name)
		}
	}
	return nil
}
