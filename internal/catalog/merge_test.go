
package catalog

import "testing"

func TestMergeFirstSourceWins(t *testing.T) {
	high := SourceResult{
		Source: "alanchand",
		Catalog: Catalog{
			Timestamp: "2026-08-31 10:05:00",
			FX:        []RateItem{{Name: "دلار", Sell: i64(104500), Unit: UnitToman}},
		},
	}
	low := SourceResult{
		Source: "tgju",
		Catalog: Catalog{
			Timestamp: "2026-08-31 10:04:00",
			FX: []RateItem{
				{Name: "دلار", Sell: i64(104400), Unit: UnitToman},
				{Name: "یورو", Sell: i64(118000), Unit: UnitToman},
			},
		},
	}

	m := Merge([]SourceResult{high, low})

	if len(m.FX) != 2 {
		t.Fatalf("len(FX) = %d, want 2", len(m.FX))
	}
	for _, it := range m.FX {
		if it.Name == "دلار" && *it.Sell != 104500 {
			t.Errorf("دلار sell = %d, want the higher-priority 104500", *it.Sell)
		}
	}
}

func TestMergeDedupIgnoresDigitAndSpaceVariants(t *testing.T) {
	a := SourceResult{Catalog: Catalog{
		Timestamp: "2026-08-31 10:00:00",
		Gold:      []RateItem{{Name: "طلای ۱۸ عیار", Price: i64(7973000)}},
	}}
	b := SourceResult{Catalog: Catalog{
		Timestamp: "2026-08-31 10:00:00",
		Gold:      []RateItem{{Name: "طلای  18  عیار", Price: i64(7970000)}},
	}}

	m := Merge([]SourceResult{a, b})
	if len(m.Gold) != 1 {
		t.Fatalf("len(Gold) = %d, want 1 after normalized dedup", len(m.Gold))
	}
	if *m.Gold[0].Price != 7973000 {
		t.Errorf("price = %d, want first source's 7973000", *m.Gold[0].Price)
	}
}

func TestMergeSameNameDifferentCategories(t *testing.T) {
	a := SourceResult{Catalog: Catalog{
		Timestamp: "2026-08-31 10:00:00",
		FX:        []RateItem{{Name: "انس جهانی", Price: i64(2500)}},
		Gold:      []RateItem{{Name: "انس جهانی", Price: i64(2500)}},
	}}
	m := Merge([]SourceResult{a})
	if len(m.FX) != 1 || len(m.Gold) != 1 {
		t.Errorf("got FX=%d Gold=%d, want both kept", len(m.FX), len(m.Gold))
	}
}

func TestMergeTimestampIsNewest(t *testing.T) {
	a := SourceResult{Catalog: Catalog{Timestamp: "2026-08-31 09:59:59"}}
	b := SourceResult{Catalog: Catalog{Timestamp: "2026-08-31 10:00:00"}}
	m := Merge([]SourceResult{a, b})
	if m.Timestamp != "2026-08-31 10:00:00" {
		t.Errorf("timestamp = %q, want the newest input", m.Timestamp)
	}
}

func TestMergeAllEmptySynthesizesTimestamp(t *testing.T) {
	m := Merge([]SourceResult{{Catalog: Catalog{}}, {Catalog: Catalog{}}})
	if m.Timestamp == "" {
		t.Error("timestamp empty, want synthesized current time")
	}
	if !m.IsEmpty() {
		t.Error("expected empty merged catalog")
	}
}
