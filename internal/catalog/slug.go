package catalog

import (
	"regexp"
	"strings"
)

var (
	nonSlugRunes = regexp.MustCompile(`[^\w ]+`)
	spaceRuns    = regexp.MustCompile(` +`)
)

// DeriveSlug maps a category name to its URL identifier: lower-case the name,
// drop every rune outside [0-9a-z_ ], then turn each run of spaces into a
// single hyphen. Leading and trailing spaces become leading and trailing
// hyphens, and a name made only of punctuation yields the empty slug; both are
// accepted downstream. Runes outside the ASCII word class (including accented
// letters) are stripped, and the result is never checked for uniqueness.
func DeriveSlug(name string) string {
	slug := strings.ToLower(name)
	slug = nonSlugRunes.ReplaceAllString(slug, "")
	return spaceRuns.ReplaceAllString(slug, "-")
}
