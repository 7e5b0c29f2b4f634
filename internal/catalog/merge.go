
package catalog

import (
	"time"

	"minirates/internal/utils"
)

// Merge folds per-source catalogs into one unified catalog. Results must
// already be unit-normalized and ordered by descending priority: within
// each category the first source to introduce a (category, normalized
// name) key wins and later duplicates are discarded whole. There is no
// field-level blending.
//
// The merged timestamp is the lexicographically-largest non-empty input
// timestamp (the fixed-width layout makes that the most recent one); when
// every input is empty the current time is used.
func Merge(results []SourceResult) Merged {
	out := Empty(time.Now())

	ts := ""
	for _, r := range results {
		if r.Catalog.Timestamp > ts {
			ts = r.Catalog.Timestamp
		}
	}
	if ts != "" {
		out.Timestamp = ts
	}

	seen := map[string]bool{}
	for _, cat := range Categories {
		for _, r := range results {
			for _, it := range r.Catalog.Bucket(cat) {
				key := string(cat) + "|" + utils.NormalizeText(it.Name)
				if seen[key] {
					continue
				}
				seen[key] = true
				out.Append(cat, it)
			}
		}
	}
	return out
}
