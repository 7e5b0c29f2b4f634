
package scrape

import (
	"time"

	"minirates/internal/catalog"
)

// DOMHints are the per-source class patterns used to recognize price
// cells and delta symbols. They are the only DOM-level difference between
// the supported sources.
type DOMHints struct {
	// SellClass and BuyClass match explicitly labeled quote cells.
	SellClass string
	BuyClass  string
	// PriceClasses are tried in order to locate a single-quote cell when
	// no sell/buy cells exist; the row itself is the last resort.
	PriceClasses []string
	// SymbolClass marks the spans that carry price values and up/down
	// hints; card discovery climbs from these leaves.
	SymbolClass string
	// PriceHintWords mark price-looking cells that must not be mistaken
	// for name cells.
	PriceHintWords []string
}

// SourceConfig is the static description of one enabled source. Priority
// is positional: the order of the enabled-sources list decides merge
// conflicts.
type SourceConfig struct {
	Name       string
	BaseURL    string
	NativeUnit catalog.Unit
	CacheFile  string
	TTL        time.Duration
	// Fallback decides what happens to rows no classifier group matches.
	Fallback Fallback
	// MinValue rejects extracted numbers below this native-unit floor
	// (footer counters, pagination and similar parsing noise). Zero
	// disables the guard.
	MinValue int64
	Hints    DOMHints
	// ExtraBlacklist adds operator-configured words on top of the
	// default name blacklist.
	ExtraBlacklist []string
}

const DefaultTTL = 600 * time.Second

// BuiltinSources returns the supported source configurations, in default
// priority order.
func BuiltinSources() []SourceConfig {
	return []SourceConfig{
		{
			Name:       "alanchand",
			BaseURL:    "https://alanchand.com/",
			NativeUnit: catalog.UnitToman,
			CacheFile:  "alanchand_catalog_cache.json",
			TTL:        DefaultTTL,
			Fallback:   FallbackFX,
			Hints: DOMHints{
				SellClass:      `\bsellPrice\b`,
				BuyClass:       `\bbuyPrice\b`,
				PriceClasses:   []string{`\bpriceSymbol\b`},
				SymbolClass:    "priceSymbol",
				PriceHintWords: []string{"sellPrice", "buyPrice", "priceSymbol"},
			},
		},
		{
			Name:       "tgju",
			BaseURL:    "https://www.tgju.org/",
			NativeUnit: catalog.UnitRial,
			CacheFile:  "tgju_catalog_cache.json",
			TTL:        DefaultTTL,
			Fallback:   FallbackDrop,
			// 1000 rial = 100 toman, below which tgju numbers are noise.
			MinValue: 1000,
			Hints: DOMHints{
				SellClass:      `\b(sell|ask|sellPrice)\b`,
				BuyClass:       `\b(buy|bid|buyPrice)\b`,
				PriceClasses:   []string{`\bpriceSymbol\b`, `price|current|value`},
				SymbolClass:    "priceSymbol",
				PriceHintWords: []string{"price", "sell", "buy", "value", "current", "priceSymbol"},
			},
		},
	}
}
