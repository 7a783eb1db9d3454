package lyrics

import (
	"strings"

	"golang.org/x/net/html"
)

// DisplayText strips the inline markup SRT files commonly carry (<i>, <b>,
// <font color=...>) and unescapes entities. Segment.Text itself is untouched.
func DisplayText(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}

	z := html.NewTokenizer(strings.NewReader(text))
	var out strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(out.String()), " ")
		case html.TextToken:
			out.Write(z.Text())
		}
	}
}
