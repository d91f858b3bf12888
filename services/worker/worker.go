package worker

import (
	"encoding/json"
	"time"

	"pricewatcher/internal/crawler"
	"pricewatcher/logger"
	apperrors "pricewatcher/pkg/errors"
	"pricewatcher/services/differ"
	"pricewatcher/services/notifier"
	"pricewatcher/services/publisher"
	"pricewatcher/services/snapshot"
)

// Stream field keys for published diff entries
const (
	keyNewProduct  = "b64_new_product"
	keyPriceChange = "b64_price_change"
)

// Worker runs one full monitor cycle: crawl, diff, notify, persist.
type Worker struct {
	crawler   crawler.ProductFetcher
	store     snapshot.Store
	notifier  notifier.Notifier
	publisher publisher.Publisher
}

// NewWorker creates a worker. publisher may be nil when no stream is
// configured.
func NewWorker(
	c crawler.ProductFetcher,
	store snapshot.Store,
	n notifier.Notifier,
	pub publisher.Publisher,
) *Worker {
	return &Worker{
		crawler:   c,
		store:     store,
		notifier:  n,
		publisher: pub,
	}
}

// Run performs a single cycle and returns its first fatal error. The
// snapshot write is independent of notification success: a delivery
// failure still persists the freshly crawled list, then surfaces.
func (w *Worker) Run() error {
	log := logger.ForComponent("worker")
	start := time.Now()

	products, err := w.crawler.FetchProducts()
	if err != nil {
		return err
	}

	prior, err := w.store.Load()
	if err != nil {
		if !apperrors.IsSnapshot(err) {
			return err
		}
		// First-run behaviour: a broken prior snapshot is an empty one.
		log.Warn().Err(err).Msg("Prior snapshot unreadable, treating as first run")
	}

	diff := differ.Compare(prior.Products, products)

	var deliveryErr error
	if diff.Empty() {
		log.Info().Int("products", len(products)).Msg("No changes detected")
	} else {
		log.Info().
			Int("new", len(diff.New)).
			Int("changed", len(diff.Changed)).
			Msg("Changes detected")

		deliveryErr = w.notifier.Send(notifier.Compose(diff))
		if deliveryErr != nil {
			log.Error().Err(deliveryErr).Msg("Alert delivery failed")
		}

		w.publishDiff(diff)
	}

	if err := w.store.Save(products); err != nil {
		return err
	}

	log.Info().Dur("elapsed", time.Since(start)).Msg("Cycle complete")
	return deliveryErr
}

// publishDiff streams each diff entry to the publisher. Publish
// failures are logged but never fail the cycle; the stream is a
// best-effort side channel.
func (w *Worker) publishDiff(diff differ.Diff) {
	if w.publisher == nil {
		return
	}
	log := logger.ForComponent("worker")

	for _, p := range diff.New {
		data, err := json.Marshal(p)
		if err != nil {
			log.Error().Err(err).Str("url", p.URL).Msg("Failed to encode new product")
			continue
		}
		if err := w.publisher.Publish(keyNewProduct, data); err != nil {
			log.Error().Err(err).Str("url", p.URL).Msg("Failed to publish new product")
		}
	}

	for _, c := range diff.Changed {
		data, err := json.Marshal(c)
		if err != nil {
			log.Error().Err(err).Str("url", c.URL).Msg("Failed to encode price change")
			continue
		}
		if err := w.publisher.Publish(keyPriceChange, data); err != nil {
			log.Error().Err(err).Str("url", c.URL).Msg("Failed to publish price change")
		}
	}

	if err := w.publisher.TrimStreams(); err != nil {
		log.Error().Err(err).Msg("Failed to trim streams")
	}
}
