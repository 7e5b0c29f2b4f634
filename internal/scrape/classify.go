
package scrape

import (
	"regexp"

	"minirates/internal/catalog"
	"minirates/internal/utils"
)

// Fallback is a source's policy for names no pattern group matches.
type Fallback int

const (
	// FallbackDrop rejects unmatched rows entirely.
	FallbackDrop Fallback = iota
	// FallbackFX buckets unmatched rows into the fx category.
	FallbackFX
)

// Pattern groups are evaluated gold, then crypto, then fx, so a gold-coin
// name that mentions a currency word still lands in gold. Matching runs
// against the normalized name (Persian digits already folded to ASCII).
var (
	patternsGold = []string{
		`سکه`, `طل[اآ]`, `مثقال`, `نیم\s*سکه`, `ربع\s*سکه`,
		`گرم(?:ی)?\s*18`, `18\s*عیار`,
	}
	patternsCrypto = []string{
		`(?i)\bBTC\b`, `(?i)\bETH\b`, `(?i)\bBNB\b`, `(?i)\bTRX\b`, `(?i)\bDOGE\b`, `(?i)\bADA\b`,
		`(?i)\bSOL\b`, `(?i)\bXRP\b`, `(?i)\bTON\b`, `(?i)\bAVAX\b`, `(?i)\bSHIB\b`, `(?i)\bUSDT\b`,
		`بیت\s*کوین`, `اتریوم`, `تتر`,
	}
	patternsFX = []string{
		`دلار`, `یورو`, `پوند`, `لیر`, `درهم`, `یوان`, `ین`, `فرانک`, `روبل`,
		`(?i)\bUSD\b`, `(?i)\bEUR\b`, `(?i)\bGBP\b`, `(?i)\bAED\b`, `(?i)\bTRY\b`,
		`(?i)\bCNY\b`, `(?i)\bJPY\b`, `(?i)\bAUD\b`, `(?i)\bCAD\b`, `(?i)\bCHF\b`,
	}
)

// Classifier maps a display name to a catalog category by ordered
// pattern groups. The tie-break is evaluation order only, never pattern
// specificity.
type Classifier struct {
	gold   []*regexp.Regexp
	crypto []*regexp.Regexp
	fx     []*regexp.Regexp
}

func NewClassifier() *Classifier {
	return &Classifier{
		gold:   compileAll(patternsGold),
		crypto: compileAll(patternsCrypto),
		fx:     compileAll(patternsFX),
	}
}

// Classify returns the matched category, or ok=false when no group
// matches; the caller applies the source's fallback policy.
func (c *Classifier) Classify(name string) (catalog.Category, bool) {
	t := utils.NormalizeText(name)
	if t == "" {
		return "", false
	}
	switch {
	case matchAny(c.gold, t):
		return catalog.CategoryGold, true
	case matchAny(c.crypto, t):
		return catalog.CategoryCrypto, true
	case matchAny(c.fx, t):
		return catalog.CategoryFX, true
	}
	return "", false
}

func matchAny(res []*regexp.Regexp, t string) bool {
	for _, re := range res {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

func compileAll(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}
