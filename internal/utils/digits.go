
package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var persianDigits = map[rune]rune{
	'0': '۰',
	'1': '۱',
	'2': '۲',
	'3': '۳',
	'4': '۴',
	'5': '۵',
	'6': '۶',
	'7': '۷',
	'8': '۸',
	'9': '۹',
}

// englishDigits folds Persian and Arabic-Indic digits to ASCII and maps
// the Arabic thousands (٬) and decimal (٫) separators to ',' and '.'.
var englishDigits = map[rune]rune{
	'۰': '0', '۱': '1', '۲': '2', '۳': '3', '۴': '4',
	'۵': '5', '۶': '6', '۷': '7', '۸': '8', '۹': '9',
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
	'٬': ',', '٫': '.',
}

func ToPersianDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if pr, ok := persianDigits[r]; ok {
			b.WriteRune(pr)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func ToEnglishDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if er, ok := englishDigits[r]; ok {
			b.WriteRune(er)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeText trims, collapses internal whitespace, case-folds and folds
// all digits and separators to ASCII. Every matching step in the pipeline
// (blacklist, classification, de-dup keys) operates on this form.
func NormalizeText(s string) string {
	s = strings.TrimSpace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.ToLower(s)
	return ToEnglishDigits(s)
}

var (
	groupedNumRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})+`)
	longNumRe    = regexp.MustCompile(`\d{4,}`)
	anyNumRe     = regexp.MustCompile(`\d+`)
)

// ExtractInt pulls the first plausible integer out of mixed text, e.g.
// "قیمت امروز: ۹۷٬۰۵۰" -> 97050. Grouped tokens like 7,973,000 are
// preferred, then ungrouped runs of four or more digits, then any digit
// run. Tokens that are fragments of a longer digit run are skipped.
func ExtractInt(s string) (int64, bool) {
	t := NormalizeText(s)
	if t == "" {
		return 0, false
	}
	for _, re := range []*regexp.Regexp{groupedNumRe, longNumRe, anyNumRe} {
		if tok, ok := firstToken(t, re); ok {
			n, err := strconv.ParseInt(strings.ReplaceAll(tok, ",", ""), 10, 64)
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// firstToken returns the first match of re that is not immediately
// preceded or followed by another digit.
func firstToken(t string, re *regexp.Regexp) (string, bool) {
	for _, loc := range re.FindAllStringIndex(t, -1) {
		if loc[0] > 0 && isASCIIDigit(t[loc[0]-1]) {
			continue
		}
		if loc[1] < len(t) && isASCIIDigit(t[loc[1]]) {
			continue
		}
		return t[loc[0]:loc[1]], true
	}
	return "", false
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }
