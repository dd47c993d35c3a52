// internal/lyrics/tokenize.go
//
// Word tokenization and normalization for lyric matching.
//
// Tokenize splits lyric text into word tokens: maximal runs of letters and
// digits, with punctuation and whitespace acting as separators. The default
// word-character class covers ASCII letters/digits plus the accented Latin
// range, since the songbook is mostly French ("élancé" is one token, not
// three). Callers with other alphabets can supply their own class via
// TokenizeWith.
//
// Normalize lowercases, trims, and strips diacritics so that "Été " and
// "ete" compare equal. Two attempt words are considered the same word iff
// their normalized forms are byte-identical.

package lyrics

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// wordClass is the default token class: ASCII alphanumerics plus the
// Latin-1 supplement letters and the œ/Œ ligatures common in French.
var wordClass = regexp.MustCompile(`[0-9A-Za-zÀ-ÖØ-öø-ÿŒœ]+`)

// Tokenize splits s into word tokens using the default word class.
func Tokenize(s string) []string {
	return TokenizeWith(wordClass, s)
}

// TokenizeWith splits s into word tokens using a caller-supplied class.
func TokenizeWith(class *regexp.Regexp, s string) []string {
	return class.FindAllString(s, -1)
}

// Normalize returns the canonical comparison form of a word:
// surrounding whitespace trimmed, lowercased, diacritics removed.
func Normalize(w string) string {
	w = strings.ToLower(strings.TrimSpace(w))
	// NFD exposes combining marks, runes.Remove drops them, NFC recomposes.
	// The chain is built per call because transformers are not safe for
	// concurrent reuse.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(stripper, w); err == nil {
		return out
	}
	return w
}
