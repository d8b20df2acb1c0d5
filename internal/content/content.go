// Package content turns remote free text into markup that is safe to embed.
package content

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))
	richText = newRichTextPolicy()
	plain    = bluemonday.StrictPolicy()
)

func newRichTextPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Markdown renders src as sanitised HTML. Render failures fall back to the
// escaped plain text.
func Markdown(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(strings.TrimSpace(richText.Sanitize(buf.String())))
}

// Plain strips all markup from s and trims surrounding space. The result is
// unescaped text and must be escaped again when written into HTML.
func Plain(s string) string {
	return strings.TrimSpace(Strip(s))
}

// Strip is Plain without trimming, for text whose edge spacing matters.
func Strip(s string) string {
	return html.UnescapeString(plain.Sanitize(s))
}
