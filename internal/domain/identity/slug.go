package identity

import (
	"regexp"
	"strings"
)

var nonSlugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a legible identifier from a display name: the name is
// lowercased, each run of characters outside [a-z0-9] becomes one underscore,
// and "_"+seasonToken is appended. Distinct names can collapse to the same slug.
func Slug(name, seasonToken string) string {
	return nonSlugRegex.ReplaceAllString(strings.ToLower(name), "_") + "_" + seasonToken
}
