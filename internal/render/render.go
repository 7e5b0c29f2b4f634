
// Package render turns a merged catalog into display text with Persian
// section headers and a Jalali timestamp line.
package render

import (
	"strings"

	"minirates/internal/catalog"
	"minirates/internal/utils"
)

type Options struct {
	// Digits selects "en" or "fa" numerals for prices and the date line.
	Digits string
	// Unit label appended to the header, e.g. "تومان".
	UnitLabel string
}

type Line struct {
	Name     string
	Text     string
	Value    int64
	HasValue bool
	Arrow    string
	Category catalog.Category
}

type Output struct {
	Text  string
	Lines []Line
}

var sectionTitles = map[catalog.Category]string{
	catalog.CategoryFX:     "💵 ارز",
	catalog.CategoryGold:   "🪙 طلا و سکه",
	catalog.CategoryCrypto: "🌐 ارز دیجیتال",
}

// Build renders the catalog into a sectioned message. Empty sections
// are omitted entirely rather than rendered as a bare title.
func Build(m catalog.Merged, opts Options) Output {
	out := Output{}
	var sections []string

	for _, cat := range []catalog.Category{catalog.CategoryFX, catalog.CategoryGold, catalog.CategoryCrypto} {
		var body []string
		for _, it := range m.Bucket(cat) {
			ln := buildLine(it, cat, opts)
			if !ln.HasValue {
				continue
			}
			out.Lines = append(out.Lines, ln)
			body = append(body, ln.Text)
		}
		if len(body) == 0 {
			continue
		}
		sections = append(sections, sectionTitles[cat]+"\n"+strings.Join(body, "\n"))
	}

	dt := utils.JalaliDateTime(utils.NowTehran())
	if opts.Digits == "fa" {
		dt = utils.ToPersianDigits(dt)
	}
	footer := "🕐 " + dt
	if opts.UnitLabel != "" {
		footer += "\nواحد: " + opts.UnitLabel
	}

	out.Text = strings.TrimSpace(strings.Join(append(sections, footer), "\n\n"))
	return out
}

func buildLine(it catalog.RateItem, cat catalog.Category, opts Options) Line {
	v, ok := it.Value()
	if !ok {
		return Line{Name: it.Name, Category: cat}
	}

	arrow := ""
	switch it.DeltaDir {
	case catalog.DirUp:
		arrow = " ▲"
	case catalog.DirDown:
		arrow = " 🔻"
	}

	text := it.Name + " " + utils.FormatNumber(v, opts.Digits) + arrow
	if it.Sell != nil && it.Buy != nil {
		text = it.Name + " " + utils.FormatNumber(*it.Sell, opts.Digits) +
			" / " + utils.FormatNumber(*it.Buy, opts.Digits) + arrow
	}

	return Line{
		Name:     it.Name,
		Text:     text,
		Value:    v,
		HasValue: true,
		Arrow:    arrow,
		Category: cat,
	}
}
