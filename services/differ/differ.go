package differ

import (
	"pricewatcher/internal/crawler"
	"pricewatcher/logger"
)

// PriceChange records a product whose price moved between two crawls
type PriceChange struct {
	Title    string `json:"title"`
	OldPrice string `json:"old_price"`
	NewPrice string `json:"new_price"`
	URL      string `json:"url"`
}

// Diff is the comparison result of two product lists
type Diff struct {
	New     []crawler.Product `json:"new"`
	Changed []PriceChange     `json:"changed"`
}

// Empty reports whether the diff carries no entries
func (d Diff) Empty() bool {
	return len(d.New) == 0 && len(d.Changed) == 0
}

// Compare classifies every product of newProducts against oldProducts.
// The identity key is the product URL, which is unique by construction
// within a crawl; titles may collide and are display-only. Output order
// follows newProducts, which arrives sorted by URL upstream.
//
// Products present in old but absent from new are not reported; the
// catalogue is not expected to shrink and removals are out of scope.
func Compare(oldProducts, newProducts []crawler.Product) Diff {
	oldByURL := make(map[string]crawler.Product, len(oldProducts))
	for _, p := range oldProducts {
		// First occurrence wins on duplicate URLs in a hand-edited
		// snapshot, keeping the lookup deterministic.
		if _, ok := oldByURL[p.URL]; !ok {
			oldByURL[p.URL] = p
		} else {
			logger.Warn("Duplicate URL %q in prior snapshot, keeping first entry", p.URL)
		}
	}

	var diff Diff
	for _, p := range newProducts {
		prev, ok := oldByURL[p.URL]
		if !ok {
			diff.New = append(diff.New, p)
			continue
		}

		if change, changed := comparePrices(prev, p); changed {
			diff.Changed = append(diff.Changed, change)
		}
	}
	return diff
}

// comparePrices decides whether a matched product changed price.
// Equality is decided on exact decimal values, never on the formatted
// strings: "$1,000.00" and "$1000.00" are the same price.
func comparePrices(oldP, newP crawler.Product) (PriceChange, bool) {
	oldDec, oldErr := crawler.ParsePrice(oldP.Price)
	newDec, newErr := crawler.ParsePrice(newP.Price)

	if oldErr != nil || newErr != nil {
		// Unparseable price strings fall back to raw comparison so a
		// hand-mangled snapshot entry cannot wedge the run.
		if oldP.Price == newP.Price {
			return PriceChange{}, false
		}
		return PriceChange{
			Title:    newP.Title,
			OldPrice: oldP.Price,
			NewPrice: newP.Price,
			URL:      newP.URL,
		}, true
	}

	if oldDec.Equal(newDec) {
		return PriceChange{}, false
	}

	return PriceChange{
		Title:    newP.Title,
		OldPrice: crawler.FormatPrice(oldDec),
		NewPrice: crawler.FormatPrice(newDec),
		URL:      newP.URL,
	}, true
}
