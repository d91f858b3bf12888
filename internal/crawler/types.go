package crawler

// Product represents a single catalogue product at crawl time.
// The URL is the identity key for diffing; it is unique by construction
// within one crawl. Titles are display-only and may collide.
type Product struct {
	Title string `json:"title"`
	Price string `json:"price"`
	URL   string `json:"url"`
}

// ProductFetcher is the contract the worker runs a cycle against
type ProductFetcher interface {
	// FetchProducts discovers every product page and extracts its
	// current price, returning products in sorted-URL order
	FetchProducts() ([]Product, error)
}
