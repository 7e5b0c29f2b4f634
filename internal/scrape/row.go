
package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// titleAttrs are data attributes sources use to carry an instrument name
// on a row or a descendant.
var titleAttrs = []string{"data-title", "data-market-title", "data-name", "data-symbol-name"}

// Row is the capability surface the extractor needs from one candidate
// row, independent of how the document was parsed. The extractor is
// written once against this interface instead of once per source DOM.
type Row interface {
	// Text returns the row's visible text with whitespace collapsed.
	Text() string
	// Classes returns the space-joined class attribute.
	Classes() string
	// Header returns the text of a header-style cell (th), if any.
	Header() (string, bool)
	// TitleAttr returns a title-style data attribute from the row itself
	// or the first descendant carrying one.
	TitleAttr() (string, bool)
	// FindClass returns the first descendant whose class attribute
	// matches pat.
	FindClass(pat *regexp.Regexp) (Row, bool)
	// EachCell visits descendant cells (td, div, span, a) in document
	// order until fn returns false.
	EachCell(fn func(Row) bool)
}

type docRow struct {
	sel *goquery.Selection
}

// NewRow wraps a goquery selection as a Row.
func NewRow(sel *goquery.Selection) Row {
	return docRow{sel: sel}
}

func (r docRow) Text() string {
	return collapseSpace(r.sel.Text())
}

func (r docRow) Classes() string {
	return r.sel.AttrOr("class", "")
}

func (r docRow) Header() (string, bool) {
	th := r.sel.Find("th").First()
	if th.Length() == 0 {
		return "", false
	}
	txt := collapseSpace(th.Text())
	return txt, txt != ""
}

func (r docRow) TitleAttr() (string, bool) {
	for _, attr := range titleAttrs {
		if v, ok := r.sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	var found string
	r.sel.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, attr := range titleAttrs {
			if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
				found = strings.TrimSpace(v)
				return false
			}
		}
		return true
	})
	return found, found != ""
}

func (r docRow) FindClass(pat *regexp.Regexp) (Row, bool) {
	var found *goquery.Selection
	r.sel.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if pat.MatchString(s.AttrOr("class", "")) {
			found = s
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return docRow{sel: found}, true
}

func (r docRow) EachCell(fn func(Row) bool) {
	r.sel.Find("td, div, span, a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		return fn(docRow{sel: s})
	})
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
