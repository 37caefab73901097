package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransform decomposes to NFD, strips combining marks and whitespace,
// then recomposes. Built once; transform.String is stateless per call.
var foldTransform = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.In(unicode.White_Space)),
	norm.NFC,
)

// Fold normalizes a string for search comparison: diacritics removed,
// whitespace removed, lower-cased.
//
// Vietnamese product names are the motivating case: Fold("Áo sơ mi")
// returns "aosomi", so the plain-ASCII keyword "ao" matches it. Strings
// that fail to transform (invalid UTF-8) fall back to a lower-cased copy
// rather than erroring; search never rejects input.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransform, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// FoldContains reports whether the folded haystack contains the folded
// needle. An empty needle matches everything.
func FoldContains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// NormalizeRole trims and lower-cases a role string read from the store.
// Legacy rows may carry "Admin " or similar; every comparison against
// RoleAdmin must go through this.
func NormalizeRole(raw string) Role {
	return Role(strings.ToLower(strings.TrimSpace(raw)))
}
