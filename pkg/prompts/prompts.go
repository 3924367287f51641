package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

//go:embed defaults.yaml
var defaultsYAML []byte

type Prompts struct {
	System  SystemPrompts  `yaml:"system"`
	Article ArticlePrompts `yaml:"article"`
}

type SystemPrompts struct {
	Article string `yaml:"article"`
}

type ArticlePrompts struct {
	Generate string `yaml:"generate"`
}

type ArticleParams struct {
	Topic        string
	ReferenceURL string
	Tone         string
	Length       string
	Audience     string
}

// Load reads prompts.yaml from the working directory, falling back to the
// built-in defaults when no override file exists.
func Load() (*Prompts, error) {
	if _, err := os.Stat(defaultPromptsPath); err == nil {
		return LoadFrom(defaultPromptsPath)
	}
	return parse(defaultsYAML)
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}
	return &p, nil
}

func (p *Prompts) RenderArticle(params ArticleParams) (string, error) {
	return render(p.Article.Generate, params)
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
