package markdown

import (
	"bytes"
	"html"
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmark_html "github.com/yuin/goldmark/renderer/html"

	"github.com/localizer/dashboard/shared/logger"
)

var blankLines = regexp.MustCompile(`\s+`)

// TextProcessor renders user supplied text (card descriptions, reviews,
// contact messages) as sanitized HTML.
type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(goldmark_html.WithHardWraps(), goldmark_html.WithUnsafe()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)

	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.AllowRelativeURLs(false)

	return &TextProcessor{md: md, policy: p, strict: bluemonday.StrictPolicy()}
}

// Render converts markdown to HTML safe to embed in a page.
func (tp *TextProcessor) Render(text string) template.HTML {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		logger.Log.Warn("markdown render failed", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(strings.TrimSpace(tp.policy.Sanitize(buf.String())))
}

// Excerpt returns at most limit runes of plain text, for list cells.
func (tp *TextProcessor) Excerpt(text string, limit int) string {
	var buf bytes.Buffer
	plain := text
	if err := tp.md.Convert([]byte(text), &buf); err == nil {
		plain = tp.strict.Sanitize(buf.String())
	}
	plain = strings.TrimSpace(blankLines.ReplaceAllString(html.UnescapeString(plain), " "))
	if limit <= 0 || utf8.RuneCountInString(plain) <= limit {
		return plain
	}
	runes := []rune(plain)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
