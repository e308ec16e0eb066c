// Package textnorm folds titles, names and search terms into the form used
// for case- and accent-insensitive matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips combining marks and collapses whitespace.
// "  Città   di Dìo " becomes "citta di dio".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.Join(strings.Fields(strings.ToLower(result)), " ")
}

// LikePattern turns a normalized term into a SQL LIKE pattern matching any
// value that contains it. Wildcards in the term are escaped with '\'.
func LikePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
