package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	nonWord    = regexp.MustCompile(`[^\w-]+`)
	dashRuns   = regexp.MustCompile(`-{2,}`)
	stripMarks = runes.Remove(runes.In(unicode.Mn))
)

// Slugify turns a title into a URL path segment: "Open Trip Bromo 2D1N" becomes
// "open-trip-bromo-2d1n". Accented letters lose their marks instead of being dropped.
func Slugify(text string) string {
	s, _, err := transform.String(transform.Chain(norm.NFD, stripMarks, norm.NFC), text)
	if err != nil {
		s = text
	}
	s = strings.ToLower(s)
	s = whitespace.ReplaceAllString(s, "-")
	s = nonWord.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
