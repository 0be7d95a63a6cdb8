package render

import (
	stdhtml "html"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
)

// StripTags reduces an HTML fragment to its text content with entities
// decoded. Used where markup has to become an attribute value or an anchor
// slug.
func StripTags(fragment string) string {
	l := html.NewLexer(parse.NewInputString(fragment))
	var out []byte
	for {
		tt, data := l.Next()
		switch tt {
		case html.ErrorToken:
			return stdhtml.UnescapeString(string(out))
		case html.TextToken:
			out = append(out, data...)
		}
	}
}
