// Package markup converts the lightweight article markup the model emits
// (## / ### heading lines, **bold** spans, newline breaks and one optional
// inline-image placeholder token) into HTML fragments for preview.
package markup

import (
	"regexp"
	"strings"
)

// Placeholder is the literal token the model inserts where the inline
// illustration belongs.
const Placeholder = "[[INLINE_IMAGE_PLACEHOLDER]]"

var boldRegex = regexp.MustCompile(`\*\*(.*?)\*\*`)

// ToHTML renders a markup fragment to HTML. Running it over text that
// contains no raw markers returns the input joined exactly as before, so the
// transform is safe to apply to already-converted fragments.
func ToHTML(text string) string {
	lines := strings.Split(text, "\n")
	parts := make([]string, 0, len(lines))

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "### "):
			parts = append(parts, "<h3>"+convertBold(strings.TrimPrefix(line, "### "))+"</h3>")
		case strings.HasPrefix(line, "## "):
			parts = append(parts, "<h2>"+convertBold(strings.TrimPrefix(line, "## "))+"</h2>")
		default:
			parts = append(parts, convertBold(line))
		}
	}

	return strings.Join(parts, "<br/>")
}

func convertBold(line string) string {
	return boldRegex.ReplaceAllString(line, "<strong>$1</strong>")
}

// SplitAtPlaceholder splits body text at the inline-image token. One part
// comes back when the token is absent, two (before/after) when present. Only
// the first token splits; any further occurrences stay in the tail.
func SplitAtPlaceholder(content string) []string {
	return strings.SplitN(content, Placeholder, 2)
}
