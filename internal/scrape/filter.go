
package scrape

import (
	"regexp"
	"strings"

	"minirates/internal/utils"
)

// Persian words that mark editorial/promo rows rather than rate rows.
var defaultBlacklistWords = []string{
	"خبر", "اخبار", "ویدئو", "ویدیو", "تحلیل", "مجله", "گزارش", "مقاله", "پادکست",
	"آگهی", "تبلیغ", "اطلاعیه", "مصاحبه", "یادداشت", "بلاگ", "وبلاگ",
	"بیشتر", "ادامه", "مطالعه", "بخوانید", "مشاهده", "کلیک", "انس", "هفته", "ماه", "سال",
}

var defaultBlacklistRegexes = []string{
	`(?:^|\s)(خبر|گزارش|تحلیل)`,
}

// NameFilter rejects non-price text rows (news, promos, UI chrome) before
// they reach classification. All checks run on the normalized name so
// digit and whitespace variants collapse to one form.
type NameFilter struct {
	words   []string
	regexes []*regexp.Regexp
}

func NewNameFilter() *NameFilter {
	f := &NameFilter{words: append([]string(nil), defaultBlacklistWords...)}
	f.AddRegexes(defaultBlacklistRegexes)
	return f
}

// Blacklisted reports whether the display name should be dropped.
// Empty names are never useful and are rejected outright.
func (f *NameFilter) Blacklisted(name string) bool {
	if strings.TrimSpace(name) == "" {
		return true
	}
	t := utils.NormalizeText(name)
	for _, w := range f.words {
		if w != "" && strings.Contains(t, w) {
			return true
		}
	}
	for _, re := range f.regexes {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// AddWords extends the word blacklist at runtime.
func (f *NameFilter) AddWords(words []string) {
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		dup := false
		for _, have := range f.words {
			if have == w {
				dup = true
				break
			}
		}
		if !dup {
			f.words = append(f.words, w)
		}
	}
}

// AddRegexes extends the regex blacklist at runtime. Malformed patterns
// are ignored rather than raised.
func (f *NameFilter) AddRegexes(patterns []string) {
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		f.regexes = append(f.regexes, re)
	}
}
