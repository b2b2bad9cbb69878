package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeKey turns a player or team name into the identity key used
// for aggregation, so that inconsistent capitalization or spacing
// across match reports maps to the same record.
func NormalizeKey(name string) string {
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return strings.ToUpper(name)
}

var nonSlugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name and collapses every run of
// non-alphanumeric characters into a single dash.
func Slugify(name string) string {
	name = strings.ToLower(name)
	name = nonSlugRegex.ReplaceAllString(name, "-")
	return strings.Trim(name, "-")
}

// CleanLabel strips non-printable characters and collapses inner
// whitespace, the usual cleanup for text pulled out of markup.
func CleanLabel(s string) string {
	var out strings.Builder
	for _, c := range s {
		if c == '\n' || c == '\t' || c >= 0x20 {
			out.WriteRune(c)
		}
	}
	cleaned := strings.Trim(out.String(), " \t\n")
	return whitespaceRegex.ReplaceAllString(cleaned, " ")
}
