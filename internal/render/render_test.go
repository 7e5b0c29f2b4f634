
package render

import (
	"strings"
	"testing"

	"minirates/internal/catalog"
)

func i64(v int64) *int64 { return &v }

func TestBuildSections(t *testing.T) {
	m := catalog.Merged{
		Timestamp: "2026-08-31 10:00:00",
		FX: []catalog.RateItem{
			{Name: "دلار آمریکا", Sell: i64(104500), Buy: i64(104300), DeltaDir: catalog.DirUp, Unit: catalog.UnitToman},
		},
		Gold: []catalog.RateItem{
			{Name: "سکه امامی", Price: i64(79730000), DeltaDir: catalog.DirDown, Unit: catalog.UnitToman},
		},
		Crypto: []catalog.RateItem{},
	}

	out := Build(m, Options{Digits: "en", UnitLabel: "تومان"})

	if !strings.Contains(out.Text, "ارز") {
		t.Error("fx section title missing")
	}
	if !strings.Contains(out.Text, "دلار آمریکا 104,500 / 104,300 ▲") {
		t.Errorf("fx line missing:\n%s", out.Text)
	}
	if !strings.Contains(out.Text, "سکه امامی 79,730,000 🔻") {
		t.Errorf("gold line missing:\n%s", out.Text)
	}
	if strings.Contains(out.Text, "ارز دیجیتال") {
		t.Error("empty crypto section must be omitted")
	}
	if !strings.Contains(out.Text, "واحد: تومان") {
		t.Error("unit footer missing")
	}
	if len(out.Lines) != 2 {
		t.Errorf("len(Lines) = %d, want 2", len(out.Lines))
	}
}

func TestBuildPersianDigits(t *testing.T) {
	m := catalog.Merged{
		FX: []catalog.RateItem{{Name: "یورو", Price: i64(118000), Unit: catalog.UnitToman}},
	}
	out := Build(m, Options{Digits: "fa"})
	if !strings.Contains(out.Text, "۱۱۸,۰۰۰") {
		t.Errorf("persian digits missing:\n%s", out.Text)
	}
}

func TestBuildSkipsValuelessItems(t *testing.T) {
	m := catalog.Merged{
		FX: []catalog.RateItem{{Name: "بدون قیمت", Unit: catalog.UnitToman}},
	}
	out := Build(m, Options{Digits: "en"})
	if strings.Contains(out.Text, "بدون قیمت") {
		t.Error("valueless item rendered")
	}
	if len(out.Lines) != 0 {
		t.Errorf("len(Lines) = %d, want 0", len(out.Lines))
	}
}

func TestBuildEmptyCatalog(t *testing.T) {
	out := Build(catalog.Merged{}, Options{Digits: "en"})
	// only the date footer remains
	if out.Text == "" {
		t.Error("expected at least the date line")
	}
	if len(out.Lines) != 0 {
		t.Errorf("len(Lines) = %d", len(out.Lines))
	}
}
