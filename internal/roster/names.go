package roster

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters with no decomposition that still have an obvious ASCII spelling.
var foldReplacer = strings.NewReplacer(
	"ß", "ss",
	"Æ", "AE", "æ", "ae",
	"Ø", "O", "ø", "o",
	"Œ", "OE", "œ", "oe",
	"Đ", "D", "đ", "d",
	"Ł", "L", "ł", "l",
	"Þ", "Th", "þ", "th",
	"ı", "i",
)

// SanitizeName reduces a display name to printable ASCII. Accents are
// stripped first, then each remaining rune outside printable ASCII
// (including tabs and other control characters) becomes one '?'. Runs of
// spaces collapse to a single space, a leading space is kept and trailing
// spaces are trimmed.
func SanitizeName(raw string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		foldReplacer.Replace(raw),
	)
	if err != nil {
		folded = raw
	}

	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := false
	for _, r := range folded {
		switch {
		case r == ' ':
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		case r > ' ' && r < 127:
			b.WriteRune(r)
			lastSpace = false
		default:
			b.WriteByte('?')
			lastSpace = false
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// IsLoanFieldSet reports whether a loan column value names a club. Empty
// values and the placeholders 0, NONE, NULL, N/A and NA do not.
func IsLoanFieldSet(v string) bool {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "", "0", "NONE", "NULL", "N/A", "NA":
		return false
	}
	return true
}

// containsToken reports whether positions mentions pos.
func containsToken(positions, pos string) bool {
	return strings.Contains(positions, pos)
}
