package model

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxIdentifierLength caps cleaned identifiers and page names.
const MaxIdentifierLength = 55

// nonIdentRe matches runs of characters that are not ASCII alphanumeric or "_".
var nonIdentRe = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

var underscoreRunRe = regexp.MustCompile(`_+`)

// foldRunes covers letters that do not decompose into a base letter plus
// combining marks.
var foldRunes = strings.NewReplacer(
	"ı", "i", "İ", "I",
	"ł", "l", "Ł", "L",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
)

// Transliterate strips accents so that "Giriş Yap" becomes "Giris Yap".
func Transliterate(s string) string {
	s = foldRunes.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// CleanIdentifier converts free text into a lowercase identifier fragment:
// accents are transliterated, non-alphanumeric runs become one "_", and the
// result is trimmed and capped at MaxIdentifierLength. Input with nothing
// usable yields "element".
func CleanIdentifier(text string) string {
	if text == "" {
		return "element"
	}
	clean := nonIdentRe.ReplaceAllString(Transliterate(text), "_")
	clean = underscoreRunRe.ReplaceAllString(clean, "_")
	clean = strings.ToLower(strings.Trim(clean, "_"))
	if clean == "" {
		return "element"
	}
	if len(clean) > MaxIdentifierLength {
		clean = clean[:MaxIdentifierLength]
	}
	return clean
}

// IsNumeric reports whether s is non-empty and made only of digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// VariableName builds the test-variable name for an element, for example
// "${selector_login_submit_button}".
func VariableName(prefix, hint, suffix string) string {
	base := CleanIdentifier(hint)
	if !strings.HasSuffix(base, "_"+suffix) {
		base = base + "_" + suffix
	}
	if len(prefix) < 2 {
		prefix = "page"
	}
	return fmt.Sprintf("${selector_%s_%s}", prefix, base)
}
