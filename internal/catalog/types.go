
// Package catalog defines the rate catalog data model shared by the
// scrapers, the cache and the merge step, plus the unit normalizer and
// the priority merge itself.
package catalog

import "time"

type Category string

const (
	CategoryFX     Category = "fx"
	CategoryGold   Category = "gold"
	CategoryCrypto Category = "crypto"
)

// Categories lists the buckets in their fixed display order.
var Categories = []Category{CategoryFX, CategoryGold, CategoryCrypto}

type Unit string

const (
	UnitToman Unit = "toman"
	UnitRial  Unit = "rial"
)

const (
	DirUp   = "up"
	DirDown = "down"
)

// TimestampLayout is the fixed-width capture-time format. Lexicographic
// comparison of two timestamps in this layout matches chronological order,
// which the merge step relies on.
const TimestampLayout = "2006-01-02 15:04:05"

// RateItem is one tradable instrument's quote. At least one of Sell, Buy
// or Price is set; Price is used when the source reports a single quote.
type RateItem struct {
	Name     string  `json:"name"`
	Sell     *int64  `json:"sell"`
	Buy      *int64  `json:"buy"`
	Price    *int64  `json:"price"`
	DeltaDir string  `json:"delta_dir,omitempty"`
	Unit     Unit    `json:"unit"`
	History  []int64 `json:"history,omitempty"`
}

// Value picks the item's representative number: the single price when
// present, else sell, else buy.
func (it RateItem) Value() (int64, bool) {
	switch {
	case it.Price != nil:
		return *it.Price, true
	case it.Sell != nil:
		return *it.Sell, true
	case it.Buy != nil:
		return *it.Buy, true
	}
	return 0, false
}

// Catalog is one source's categorized scrape result.
type Catalog struct {
	Timestamp string     `json:"timestamp"`
	FX        []RateItem `json:"fx"`
	Gold      []RateItem `json:"gold"`
	Crypto    []RateItem `json:"crypto"`
}

// Merged is the unified catalog produced by Merge. It is structurally a
// Catalog but carries no source association and is never cached.
type Merged = Catalog

// Empty returns a catalog skeleton timestamped at now with all three
// buckets present but empty.
func Empty(now time.Time) Catalog {
	return Catalog{
		Timestamp: now.Format(TimestampLayout),
		FX:        []RateItem{},
		Gold:      []RateItem{},
		Crypto:    []RateItem{},
	}
}

func (c Catalog) Bucket(cat Category) []RateItem {
	switch cat {
	case CategoryFX:
		return c.FX
	case CategoryGold:
		return c.Gold
	case CategoryCrypto:
		return c.Crypto
	}
	return nil
}

func (c *Catalog) Append(cat Category, it RateItem) {
	switch cat {
	case CategoryFX:
		c.FX = append(c.FX, it)
	case CategoryGold:
		c.Gold = append(c.Gold, it)
	case CategoryCrypto:
		c.Crypto = append(c.Crypto, it)
	}
}

func (c Catalog) Len() int {
	return len(c.FX) + len(c.Gold) + len(c.Crypto)
}

func (c Catalog) IsEmpty() bool {
	return c.Len() == 0
}

// SourceResult pairs a source name with its already-normalized catalog,
// as handed to Merge in descending priority order.
type SourceResult struct {
	Source  string
	Catalog Catalog
}
