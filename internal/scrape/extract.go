
package scrape

import (
	"regexp"
	"strings"

	"minirates/internal/utils"
)

// hintSet is a SourceConfig's DOMHints with the class patterns compiled.
type hintSet struct {
	sell   *regexp.Regexp
	buy    *regexp.Regexp
	price  []*regexp.Regexp
	symbol *regexp.Regexp
	words  []string
}

func compileHints(h DOMHints) hintSet {
	hs := hintSet{
		sell:   regexp.MustCompile(h.SellClass),
		buy:    regexp.MustCompile(h.BuyClass),
		symbol: regexp.MustCompile(regexp.QuoteMeta(h.SymbolClass)),
		words:  h.PriceHintWords,
	}
	for _, p := range h.PriceClasses {
		hs.price = append(hs.price, regexp.MustCompile(p))
	}
	return hs
}

var (
	deltaDirRe = regexp.MustCompile(`(?:^|\s)(up|down)(?:\s|$)`)

	// numericRunRe covers ASCII, Persian and Arabic-Indic digits plus the
	// separators and symbols that accompany them in price cells.
	numericRunRe  = regexp.MustCompile(`[0-9۰-۹٠-٩\s,٬٫.%+-]+`)
	numericOnlyRe = regexp.MustCompile(`^[0-9۰-۹٠-٩\s,٬٫.%+-]+$`)
)

// extractName pulls a human-readable instrument name from a row.
// Preference order: header cell, title-style data attribute, first cell
// that is neither price-looking nor purely numeric, and finally the
// numeric-stripped text of the whole row.
func extractName(row Row, hints hintSet) string {
	if h, ok := row.Header(); ok {
		return h
	}
	if t, ok := row.TitleAttr(); ok {
		return t
	}

	var name string
	row.EachCell(func(c Row) bool {
		if looksLikePrice(c, hints) {
			return true
		}
		txt := c.Text()
		if txt == "" || numericOnlyRe.MatchString(txt) {
			return true
		}
		name = txt
		return false
	})
	if name != "" {
		return name
	}

	raw := numericRunRe.ReplaceAllString(row.Text(), " ")
	return strings.Join(strings.Fields(raw), " ")
}

func looksLikePrice(c Row, hints hintSet) bool {
	cls := c.Classes()
	for _, w := range hints.words {
		if strings.Contains(cls, w) {
			return true
		}
	}
	return false
}

// extractPrices pulls sell/buy or a single price, plus a delta direction,
// from a row. Explicitly labeled cells win; a row with neither is treated
// as a single-quote row.
func extractPrices(row Row, hints hintSet) (sell, buy, price *int64, dir string) {
	if cell, ok := row.FindClass(hints.sell); ok {
		sell = cellValue(cell)
		dir = deltaDir(cell, hints)
	}
	if cell, ok := row.FindClass(hints.buy); ok {
		buy = cellValue(cell)
		if dir == "" {
			dir = deltaDir(cell, hints)
		}
	}

	if sell == nil && buy == nil {
		target := row
		for _, re := range hints.price {
			if cell, ok := row.FindClass(re); ok {
				target = cell
				break
			}
		}
		price = cellValue(target)
		if dir == "" {
			dir = deltaDir(target, hints)
		}
		if dir == "" {
			dir = deltaDir(row, hints)
		}
	}
	return sell, buy, price, dir
}

func cellValue(c Row) *int64 {
	v, ok := utils.ExtractInt(c.Text())
	if !ok {
		return nil
	}
	return &v
}

// deltaDir infers "up" or "down" from class hints on el itself or on a
// symbol descendant. Absence of a hint means no direction.
func deltaDir(el Row, hints hintSet) string {
	if d := dirFromClasses(el.Classes()); d != "" {
		return d
	}
	if sym, ok := el.FindClass(hints.symbol); ok {
		return dirFromClasses(sym.Classes())
	}
	return ""
}

func dirFromClasses(cls string) string {
	m := deltaDirRe.FindStringSubmatch(cls)
	if m == nil {
		return ""
	}
	return m[1]
}
