package crawler

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/PuerkitoBio/goquery"

	"pricewatcher/helpers"
	"pricewatcher/logger"
)

// productURLRegex matches product page hrefs, e.g. "/en/cubans/cohiba-p1070/"
var productURLRegex = regexp.MustCompile(`-p\d+/`)

// Discoverer walks paginated catalogue roots and collects product URLs.
type Discoverer struct {
	fetcher  *Fetcher
	baseURL  string
	roots    []string
	maxPages int
}

// NewDiscoverer creates a Discoverer for the given catalogue roots.
// Relative hrefs are resolved against baseURL. maxPages bounds the
// pagination walk per root.
func NewDiscoverer(fetcher *Fetcher, baseURL string, roots []string, maxPages int) *Discoverer {
	return &Discoverer{
		fetcher:  fetcher,
		baseURL:  baseURL,
		roots:    roots,
		maxPages: maxPages,
	}
}

// Discover paginates every root until a page contributes no unseen
// product link, then returns the deduplicated URLs sorted
// lexicographically. Sorting keeps the downstream extraction and diff
// order stable across runs.
//
// Termination rests on the no-new-links signal; maxPages is the safety
// net against a site that echoes the same page forever.
func (d *Discoverer) Discover() ([]string, error) {
	log := logger.ForComponent("discoverer")

	seen := make(map[string]struct{})
	for _, root := range d.roots {
		for page := 1; ; page++ {
			if page > d.maxPages {
				log.Warn().
					Str("root", root).
					Int("max_pages", d.maxPages).
					Msg("Pagination ceiling reached, stopping root early")
				break
			}

			pageURL := fmt.Sprintf("%s?page=%d", root, page)
			doc, err := d.fetcher.FetchDocument(pageURL)
			if err != nil {
				return nil, err
			}

			added := d.collectLinks(doc, seen)
			log.Debug().
				Str("page", pageURL).
				Int("new_links", added).
				Int("total", len(seen)).
				Msg("Catalogue page scanned")

			if added == 0 {
				break
			}
		}
	}

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	log.Info().Int("count", len(urls)).Msg("Product URL discovery complete")
	return urls, nil
}

// collectLinks adds every unseen product link of doc to seen and
// returns how many were new.
func (d *Discoverer) collectLinks(doc *goquery.Document, seen map[string]struct{}) int {
	added := 0
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !productURLRegex.MatchString(href) {
			return
		}

		abs, err := helpers.AbsoluteURL(d.baseURL, href)
		if err != nil {
			logger.Warn("Skipping malformed product href %q: %v", href, err)
			return
		}

		if _, ok := seen[abs]; !ok {
			seen[abs] = struct{}{}
			added++
		}
	})
	return added
}
