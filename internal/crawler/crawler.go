package crawler

import (
	"strings"
	"sync"

	apperrors "pricewatcher/pkg/errors"
	"pricewatcher/logger"
)

// CatalogueCrawler assembles the current product list: discovery first,
// then one fetch+extract per product page.
type CatalogueCrawler struct {
	fetcher     *Fetcher
	discoverer  *Discoverer
	concurrency int
}

var _ ProductFetcher = (*CatalogueCrawler)(nil)

// NewCatalogueCrawler creates a CatalogueCrawler. concurrency bounds the
// product-page worker pool.
func NewCatalogueCrawler(fetcher *Fetcher, discoverer *Discoverer, concurrency int) *CatalogueCrawler {
	if concurrency < 1 {
		concurrency = 1
	}
	return &CatalogueCrawler{
		fetcher:     fetcher,
		discoverer:  discoverer,
		concurrency: concurrency,
	}
}

// FetchProducts discovers all product URLs and extracts title and price
// from every page. Pages are fetched on a bounded worker pool but the
// result keeps the sorted-URL order, so diffs across runs stay
// order-independent. Any single page failure fails the whole run; no
// partial product list ever reaches the snapshot.
func (c *CatalogueCrawler) FetchProducts() ([]Product, error) {
	log := logger.ForComponent("crawler")

	urls, err := c.discoverer.Discover()
	if err != nil {
		return nil, err
	}

	products := make([]Product, len(urls))
	errs := make([]error, len(urls))

	var wg sync.WaitGroup
	sem := make(chan struct{}, c.concurrency)
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			products[i], errs[i] = c.fetchProduct(u)
		}(i, u)
	}
	wg.Wait()

	// Surface the first failure in URL order, deterministically.
	for i, err := range errs {
		if err != nil {
			log.Error().Err(err).Str("url", urls[i]).Msg("Product page failed")
			return nil, err
		}
	}

	log.Info().Int("count", len(products)).Msg("Product extraction complete")
	return products, nil
}

// fetchProduct retrieves one product page and extracts its title and price
func (c *CatalogueCrawler) fetchProduct(url string) (Product, error) {
	doc, err := c.fetcher.FetchDocument(url)
	if err != nil {
		return Product{}, err
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		return Product{}, apperrors.NewParsing("crawler", "no product title on "+url, nil)
	}

	price, err := ExtractPrice(doc)
	if err != nil {
		return Product{}, err
	}

	return Product{Title: title, Price: price, URL: url}, nil
}
