
package catalog

import "math"

// Factor returns the multiplier converting a value from one unit to the
// other. Same-unit pairs are identity.
func Factor(from, to Unit) float64 {
	switch {
	case from == to:
		return 1
	case from == UnitRial && to == UnitToman:
		return 0.1
	case from == UnitToman && to == UnitRial:
		return 10
	}
	return 1
}

// Normalize converts every item's numeric fields to the target unit and
// returns a new catalog. The input is left untouched: caches hold
// native-unit data and must stay reusable if the canonical unit changes.
// Items without an explicit unit are assumed to be in defaultUnit.
func Normalize(c Catalog, defaultUnit, target Unit) Catalog {
	return Catalog{
		Timestamp: c.Timestamp,
		FX:        normalizeItems(c.FX, defaultUnit, target),
		Gold:      normalizeItems(c.Gold, defaultUnit, target),
		Crypto:    normalizeItems(c.Crypto, defaultUnit, target),
	}
}

func normalizeItems(items []RateItem, defaultUnit, target Unit) []RateItem {
	out := make([]RateItem, 0, len(items))
	for _, it := range items {
		cur := it.Unit
		if cur == "" {
			cur = defaultUnit
		}
		f := Factor(cur, target)

		ni := it
		ni.Sell = scale(it.Sell, f)
		ni.Buy = scale(it.Buy, f)
		ni.Price = scale(it.Price, f)
		if len(it.History) > 0 {
			hist := make([]int64, len(it.History))
			for i, v := range it.History {
				hist[i] = roundHalfUp(float64(v) * f)
			}
			ni.History = hist
		}
		ni.Unit = target
		out = append(out, ni)
	}
	return out
}

func scale(v *int64, f float64) *int64 {
	if v == nil {
		return nil
	}
	n := roundHalfUp(float64(*v) * f)
	return &n
}

// roundHalfUp rounds to the nearest integer, halves away from zero
// (financial rounding for rial/toman divisions).
func roundHalfUp(x float64) int64 {
	if x >= 0 {
		return int64(math.Floor(x + 0.5))
	}
	return -int64(math.Floor(-x + 0.5))
}
