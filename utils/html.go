package utils

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags removes all HTML markup and returns the concatenated text
// content. Rich text fields (event descriptions, locations) are edited
// as HTML in the admin UI but rendered as plain text on tickets.
func StripTags(s string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(s))

	var b strings.Builder
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.WriteString(tokenizer.Token().Data)
		}
	}

	return strings.TrimSpace(b.String())
}
