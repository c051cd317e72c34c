package consolidate

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// NormalizeAccount returns the canonical matching key for an account name:
// NFKC-folded, lowercased, punctuation stripped, whitespace collapsed.
// "Research and Development" and "research & development" do not collapse
// (words differ), but case, dots, commas, apostrophes, and Unicode width
// variants do.
func NormalizeAccount(name string) string {
	s := strings.ToLower(norm.NFKC.String(name))
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// maxEditDistance bounds the fuzzy account-match fallback. Two edits cover
// the OCR slips actually seen (dropped plural, doubled letter) without
// conflating genuinely distinct accounts.
const maxEditDistance = 2

// minFuzzyLen guards short keys, where two edits would match far too much.
const minFuzzyLen = 8

// closestKey finds the nearest existing key within the edit-distance bound.
// Keys are scanned in first-introduced order and only a strictly smaller
// distance replaces the candidate, so ties resolve deterministically.
func closestKey(key string, keys []string) (string, bool) {
	if len(key) < minFuzzyLen {
		return "", false
	}
	best := ""
	bestDist := maxEditDistance + 1
	for _, k := range keys {
		if d := levenshtein.ComputeDistance(key, k); d < bestDist {
			bestDist = d
			best = k
		}
	}
	if bestDist <= maxEditDistance {
		return best, true
	}
	return "", false
}
