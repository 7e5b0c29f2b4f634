
package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func firstRow(t *testing.T, html, selector string) Row {
	t.Helper()
	sel := mustDoc(t, html).Find(selector).First()
	if sel.Length() == 0 {
		t.Fatalf("selector %q matched nothing", selector)
	}
	return NewRow(sel)
}

func alanchandHints() hintSet {
	return compileHints(BuiltinSources()[0].Hints)
}

func tgjuHints() hintSet {
	return compileHints(BuiltinSources()[1].Hints)
}

func TestExtractNameFromHeaderCell(t *testing.T) {
	row := firstRow(t, `<table><tr><th>دلار آمریکا</th><td>104,500</td></tr></table>`, "tr")
	if got := extractName(row, tgjuHints()); got != "دلار آمریکا" {
		t.Errorf("name = %q", got)
	}
}

func TestExtractNameFromTitleAttr(t *testing.T) {
	row := firstRow(t, `<table><tr data-market-title="سکه امامی"><td>79,730,000</td></tr></table>`, "tr")
	if got := extractName(row, tgjuHints()); got != "سکه امامی" {
		t.Errorf("name = %q", got)
	}
}

func TestExtractNameSkipsPriceCells(t *testing.T) {
	html := `<div class="card">
		<span class="sellPrice">104,500</span>
		<span class="title">دلار آمریکا</span>
	</div>`
	row := firstRow(t, html, "div.card")
	if got := extractName(row, alanchandHints()); got != "دلار آمریکا" {
		t.Errorf("name = %q", got)
	}
}

func TestExtractNameFallsBackToStrippedRowText(t *testing.T) {
	// Name lives as bare text in the container, every element cell is
	// price-looking, so only the numeric-stripped row text remains.
	html := `<div class="card">یورو <span class="priceSymbol">118,000</span></div>`
	row := firstRow(t, html, "div.card")
	if got := extractName(row, alanchandHints()); got != "یورو" {
		t.Errorf("name = %q", got)
	}
}

func TestExtractPricesSellBuy(t *testing.T) {
	html := `<div class="card">
		<span class="title">دلار</span>
		<span class="sellPrice up">104,500</span>
		<span class="buyPrice">104,300</span>
	</div>`
	row := firstRow(t, html, "div.card")

	sell, buy, price, dir := extractPrices(row, alanchandHints())
	if sell == nil || *sell != 104500 {
		t.Fatalf("sell = %v, want 104500", sell)
	}
	if buy == nil || *buy != 104300 {
		t.Fatalf("buy = %v, want 104300", buy)
	}
	if price != nil {
		t.Errorf("price = %d, want nil when sell/buy present", *price)
	}
	if dir != "up" {
		t.Errorf("dir = %q, want up", dir)
	}
}

func TestExtractPricesSingleQuote(t *testing.T) {
	html := `<div class="card">
		<span class="title">طلای 18 عیار</span>
		<span class="priceSymbol down">7,973,000</span>
	</div>`
	row := firstRow(t, html, "div.card")

	sell, buy, price, dir := extractPrices(row, alanchandHints())
	if sell != nil || buy != nil {
		t.Fatal("expected single-quote extraction")
	}
	if price == nil || *price != 7973000 {
		t.Fatalf("price = %v, want 7973000", price)
	}
	if dir != "down" {
		t.Errorf("dir = %q, want down", dir)
	}
}

func TestExtractPricesPersianDigits(t *testing.T) {
	html := `<div class="card"><span class="priceSymbol">۹۷٬۰۵۰</span></div>`
	row := firstRow(t, html, "div.card")

	_, _, price, _ := extractPrices(row, alanchandHints())
	if price == nil || *price != 97050 {
		t.Fatalf("price = %v, want 97050", price)
	}
}

func TestExtractPricesNoNumbers(t *testing.T) {
	row := firstRow(t, `<table><tr><td>به زودی</td></tr></table>`, "tr")
	sell, buy, price, _ := extractPrices(row, tgjuHints())
	if sell != nil || buy != nil || price != nil {
		t.Error("expected no extracted values")
	}
}

func TestDirFromClasses(t *testing.T) {
	cases := []struct {
		cls, want string
	}{
		{"priceSymbol up", "up"},
		{"down priceSymbol", "down"},
		{"priceSymbol", ""},
		{"markup", ""}, // substring must not match
		{"", ""},
	}
	for _, c := range cases {
		if got := dirFromClasses(c.cls); got != c.want {
			t.Errorf("dirFromClasses(%q) = %q, want %q", c.cls, got, c.want)
		}
	}
}
