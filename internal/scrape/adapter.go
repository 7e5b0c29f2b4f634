
package scrape

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"minirates/internal/catalog"
	"minirates/internal/utils"
)

// maxAncestorHops bounds how far card discovery climbs from a price leaf
// toward a meaningful container.
const maxAncestorHops = 3

// containerTags are elements accepted as a card/row container.
var containerTags = map[string]bool{
	"tr": true, "li": true, "article": true, "section": true, "div": true,
}

// DocumentFetcher retrieves a parsed page, or nil on failure.
type DocumentFetcher interface {
	Fetch(ctx context.Context, baseURL string) *goquery.Document
}

// Adapter scrapes one source into a categorized catalog. Both supported
// sources run through this one implementation; SourceConfig carries every
// per-source delta (fetch target, native unit, DOM hints, fallback
// policy, noise floor).
type Adapter struct {
	cfg        SourceConfig
	hints      hintSet
	fetcher    DocumentFetcher
	filter     *NameFilter
	classifier *Classifier
	log        *logrus.Logger
}

func NewAdapter(cfg SourceConfig, fetcher DocumentFetcher, log *logrus.Logger) *Adapter {
	filter := NewNameFilter()
	filter.AddWords(cfg.ExtraBlacklist)
	return &Adapter{
		cfg:        cfg,
		hints:      compileHints(cfg.Hints),
		fetcher:    fetcher,
		filter:     filter,
		classifier: NewClassifier(),
		log:        log,
	}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// ScrapeAll fetches the source page and returns its categorized catalog.
// A failed fetch yields an empty, correctly-timestamped catalog; a
// malformed row is skipped, never fatal.
func (a *Adapter) ScrapeAll(ctx context.Context) catalog.Catalog {
	cat := catalog.Empty(time.Now())

	doc := a.fetcher.Fetch(ctx, a.cfg.BaseURL)
	if doc == nil {
		a.log.Warnf("%s: fetch failed, returning empty catalog", a.cfg.Name)
		return cat
	}

	rows := a.collectRows(doc)
	seen := map[string]bool{}
	kept := 0

	for _, row := range rows {
		res := a.extractRow(row)
		if res.skip != "" {
			a.log.Debugf("%s: skip row (%s)", a.cfg.Name, res.skip)
			continue
		}
		key := string(res.category) + "|" + utils.NormalizeText(res.item.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		cat.Append(res.category, res.item)
		kept++
	}

	sortBuckets(&cat)
	a.log.Infof("%s: %d rows scanned, %d items kept", a.cfg.Name, len(rows), kept)
	return cat
}

// rowResult is the outcome of extracting one candidate row: either an
// item with its category, or a skip reason. Soft failures travel as
// values so the row loop stays a plain filter.
type rowResult struct {
	item     catalog.RateItem
	category catalog.Category
	skip     string
}

func skipRow(reason string) rowResult { return rowResult{skip: reason} }

func (a *Adapter) extractRow(row Row) rowResult {
	name := extractName(row, a.hints)
	if name == "" {
		return skipRow("no name")
	}
	if a.filter.Blacklisted(name) {
		return skipRow(fmt.Sprintf("blacklisted %q", name))
	}

	cat, ok := a.classifier.Classify(name)
	if !ok {
		if a.cfg.Fallback != FallbackFX {
			return skipRow(fmt.Sprintf("unclassified %q", name))
		}
		cat = catalog.CategoryFX
	}

	sell, buy, price, dir := extractPrices(row, a.hints)
	sell = a.plausible(sell)
	buy = a.plausible(buy)
	price = a.plausible(price)
	if sell == nil && buy == nil && price == nil {
		return skipRow(fmt.Sprintf("no numeric field for %q", name))
	}

	return rowResult{
		category: cat,
		item: catalog.RateItem{
			Name:     name,
			Sell:     sell,
			Buy:      buy,
			Price:    price,
			DeltaDir: dir,
			Unit:     a.cfg.NativeUnit,
		},
	}
}

// plausible drops values below the source's noise floor (footer numbers,
// pagination counters).
func (a *Adapter) plausible(v *int64) *int64 {
	if v == nil || a.cfg.MinValue <= 0 {
		return v
	}
	if *v < a.cfg.MinValue {
		return nil
	}
	return v
}

// collectRows gathers candidate rows from the two shapes sources use:
// table rows, and card containers reached by climbing a bounded number of
// ancestors from a price-symbol leaf. Order is preserved and duplicates
// (by underlying node) are dropped.
func (a *Adapter) collectRows(doc *goquery.Document) []Row {
	var sels []*goquery.Selection
	seen := map[*html.Node]bool{}

	add := func(s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		n := s.Nodes[0]
		if seen[n] {
			return
		}
		seen[n] = true
		sels = append(sels, s)
	}

	doc.Find("table tr").Each(func(_ int, s *goquery.Selection) {
		add(s)
	})

	leafSel := fmt.Sprintf("span[class*=%q]", a.cfg.Hints.SymbolClass)
	doc.Find(leafSel).Each(func(_ int, sp *goquery.Selection) {
		parent := sp
		for hop := 0; hop < maxAncestorHops && !containerTags[goquery.NodeName(parent)]; hop++ {
			up := parent.Parent()
			if up.Length() == 0 {
				break
			}
			parent = up
		}
		add(parent)
	})

	rows := make([]Row, len(sels))
	for i, s := range sels {
		rows[i] = NewRow(s)
	}
	return rows
}

// sortBuckets orders each category alphabetically by normalized name for
// stable, diff-friendly output.
func sortBuckets(c *catalog.Catalog) {
	for _, bucket := range [][]catalog.RateItem{c.FX, c.Gold, c.Crypto} {
		sort.SliceStable(bucket, func(i, j int) bool {
			return utils.NormalizeText(bucket[i].Name) < utils.NormalizeText(bucket[j].Name)
		})
	}
}
