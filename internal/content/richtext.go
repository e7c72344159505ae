// Package content normalizes rich-text markup produced by the post editor.
package content

import (
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StripParagraphs removes every <p> and </p> tag while keeping the markup between them.
// Input the tokenizer cannot read is returned unchanged.
func StripParagraphs(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	b.Grow(len(markup))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return b.String()
			}
			return markup
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.P {
				continue
			}
		}
		b.Write(z.Raw())
	}
}

// PlainText returns the text content of markup with whitespace collapsed
func PlainText(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var parts []string
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a == atom.Script || a == atom.Style {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); (a == atom.Script || a == atom.Style) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				parts = append(parts, string(z.Text()))
			}
		}
	}
}

// Excerpt returns at most limit runes of the plain text of markup, marking truncation with an ellipsis
func Excerpt(markup string, limit int) string {
	text := PlainText(markup)
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	cut := strings.TrimRightFunc(string(runes[:limit]), func(r rune) bool { return r == ' ' })
	return cut + "…"
}
