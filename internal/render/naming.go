package render

import (
	"strings"
	"unicode"
)

// OutputName derives the chart filename for an explicit-paths run:
// hashtag_trend_<tags>.png, each tag reduced to letters, digits and '_'.
func OutputName(hashtags []string) string {
	safe := make([]string, len(hashtags))
	for i, tag := range hashtags {
		safe[i] = Sanitize(tag)
	}
	return "hashtag_trend_" + strings.Join(safe, "_") + ".png"
}

// Sanitize drops every rune that is not a letter, digit or underscore.
func Sanitize(tag string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, tag)
}
