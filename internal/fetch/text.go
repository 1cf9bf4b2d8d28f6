package fetch

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxTextLength is the hard ceiling, in characters, on extracted page text.
const MaxTextLength = 10000

// noiseSelector lists elements that never carry page content.
const noiseSelector = "script, style, noscript, nav, footer, header"

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExtractText parses html, drops non-content elements, and returns the body
// text with whitespace collapsed, cut to MaxTextLength characters.
func ExtractText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find(noiseSelector).Remove()

	text := doc.Find("body").Text()
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	return truncate(text, MaxTextLength)
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
