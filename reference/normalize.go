/*
normalize.go - Canonical text normalisation for reference codes

PURPOSE:
  All code and keyword matching in the engine goes through ONE
  normalisation function. Reference data arrives from spreadsheets and
  legacy databases where "Arrivée", "ARRIVEE " and "arrivee" all mean
  the same thing. Scattering ad-hoc lowercasing across rule code is how
  matching bugs are born, so every comparison funnels through Normalize.

NORMALISATION STEPS:
  1. Trim surrounding whitespace
  2. Lowercase
  3. Fold accented latin characters to their ASCII base (é -> e, ç -> c)

ACCENT FOLDING:
  The fold table covers the accented characters that actually occur in
  the postal reference data (French labels). It is intentionally a small
  rune map rather than a full Unicode decomposition: the input domain is
  closed and the table is auditable at a glance.

SEE ALSO:
  - catalogue.go: Uses Normalize for all code lookups
  - engine rule matching: product/family keywords are normalised here too
*/
package reference

import "strings"

// foldTable maps accented runes seen in the postal reference data to
// their ASCII base. Lowercase only: folding happens after lowercasing.
var foldTable = map[rune]rune{
	'à': 'a', 'â': 'a', 'ä': 'a',
	'ç': 'c',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'î': 'i', 'ï': 'i',
	'ô': 'o', 'ö': 'o',
	'ù': 'u', 'û': 'u', 'ü': 'u',
	'ÿ': 'y',
	'œ': 'o', // best effort; "œ" never appears in codes, only labels
}

// Normalize returns the canonical matching form of a code or keyword:
// trimmed, lowercased, accent-folded.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if !hasAccent(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if folded, ok := foldTable[r]; ok {
			b.WriteRune(folded)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hasAccent(s string) bool {
	for _, r := range s {
		if _, ok := foldTable[r]; ok {
			return true
		}
	}
	return false
}

// Contains reports whether the normalised form of s contains the
// normalised form of keyword. This is the single substring primitive
// used by all rule predicates.
func Contains(s, keyword string) bool {
	return strings.Contains(Normalize(s), Normalize(keyword))
}

// Equal reports whether two codes are the same after normalisation.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
