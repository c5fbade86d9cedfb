// Package markdown renders article bodies and derives plain text previews.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

type MarkdownService interface {
	ToHTMLSanitized(markdown string) (string, error)
	ToPlainText(markdown string) (string, error)
}

type markdownService struct {
	md     goldmark.Markdown
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewMarkdownService() MarkdownService {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithXHTML()),
	)

	ugc := bluemonday.UGCPolicy()
	ugc.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span")
	ugc.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &markdownService{
		md:     md,
		ugc:    ugc,
		strict: bluemonday.StrictPolicy(),
	}
}

func (s *markdownService) render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

// ToHTMLSanitized renders markdown and strips anything unsafe for display.
func (s *markdownService) ToHTMLSanitized(markdown string) (string, error) {
	out, err := s.render(markdown)
	if err != nil {
		return "", err
	}
	return s.ugc.Sanitize(out), nil
}

// ToPlainText renders markdown and removes every tag, collapsing whitespace.
func (s *markdownService) ToPlainText(markdown string) (string, error) {
	out, err := s.render(markdown)
	if err != nil {
		return "", err
	}
	text := html.UnescapeString(s.strict.Sanitize(out))
	return strings.Join(strings.FieldsFunc(text, unicode.IsSpace), " "), nil
}

// Truncate cuts text to at most n runes. The result never exceeds n runes.
func Truncate(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
