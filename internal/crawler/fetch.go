package crawler

import (
	"errors"
	"fmt"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"pricewatcher/helpers"
	apperrors "pricewatcher/pkg/errors"
	"pricewatcher/services/cache"
)

const fetchBlockKey = "catalogue_rate_limited"

// Fetcher retrieves catalogue pages as parsed documents. All fetches of
// a cycle share one client, so the header configuration and the fixed
// per-request deadline apply uniformly.
//
// When a cache service is configured, a rate-limit response leaves a
// block marker behind; since the monitor is one-shot and typically
// cron-driven, the marker spans invocations and lets the next run bail
// out before hammering the site again.
type Fetcher struct {
	client    *http.Client
	cacheSvc  cache.CacheService
	blockTime time.Duration
}

// NewFetcher creates a Fetcher. cacheSvc may be nil to disable the
// fetch-block behaviour.
func NewFetcher(timeout time.Duration, cacheSvc cache.CacheService, blockTime time.Duration) *Fetcher {
	return &Fetcher{
		client:    helpers.NewHTTPClient(timeout),
		cacheSvc:  cacheSvc,
		blockTime: blockTime,
	}
}

// FetchDocument fetches a URL and parses it as HTML
func (f *Fetcher) FetchDocument(url string) (*goquery.Document, error) {
	if f.cacheSvc != nil {
		if _, err := f.cacheSvc.Get(fetchBlockKey); err == nil {
			return nil, apperrors.NewRateLimit("fetcher", f.blockTime)
		}
	}

	body, err := helpers.FetchWithRandomHeaders(f.client, url)
	if err != nil {
		if errors.Is(err, helpers.ErrRateLimited) {
			if f.cacheSvc != nil {
				if setErr := f.cacheSvc.Set(fetchBlockKey, fmt.Appendf(nil, "%d", f.blockTime/time.Second), f.blockTime); setErr != nil {
					return nil, apperrors.NewNetwork("fetcher", "failed to set fetch block marker", setErr)
				}
			}
			return nil, apperrors.NewRateLimit("fetcher", f.blockTime)
		}
		return nil, apperrors.NewNetwork("fetcher", "failed to fetch "+url, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, apperrors.NewParsing("fetcher", "data cannot be parsed as HTML", err)
	}
	if parsed, perr := neturl.Parse(url); perr == nil {
		doc.Url = parsed
	}
	return doc, nil
}
