package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pricewatcher/internal/crawler"
)

func TestCompareSelfDiffIsEmpty(t *testing.T) {
	products := []crawler.Product{
		{Title: "Cohiba Siglo VI", Price: "$450.00", URL: "https://shop.example.com/cohiba-p1/"},
		{Title: "Partagas Serie D", Price: "$1,200.00", URL: "https://shop.example.com/partagas-p2/"},
	}

	diff := Compare(products, products)
	assert.True(t, diff.Empty())
	assert.Empty(t, diff.New)
	assert.Empty(t, diff.Changed)
}

func TestCompareDetectsNewProduct(t *testing.T) {
	newProducts := []crawler.Product{
		{Title: "A", Price: "$10.00", URL: "u"},
	}

	diff := Compare(nil, newProducts)
	assert.Equal(t, newProducts, diff.New)
	assert.Empty(t, diff.Changed)
}

func TestCompareDetectsPriceChange(t *testing.T) {
	oldProducts := []crawler.Product{
		{Title: "A", Price: "$10.00", URL: "u"},
	}
	newProducts := []crawler.Product{
		{Title: "A", Price: "$12.50", URL: "u"},
	}

	diff := Compare(oldProducts, newProducts)
	assert.Empty(t, diff.New)
	assert.Equal(t, []PriceChange{
		{Title: "A", OldPrice: "$10.00", NewPrice: "$12.50", URL: "u"},
	}, diff.Changed)
}

func TestCompareEqualValueDifferentFormatting(t *testing.T) {
	// Same numeric value with and without the thousands separator must
	// not register as a change
	oldProducts := []crawler.Product{
		{Title: "A", Price: "$1,000.00", URL: "u"},
	}
	newProducts := []crawler.Product{
		{Title: "A", Price: "$1000.00", URL: "u"},
	}

	diff := Compare(oldProducts, newProducts)
	assert.True(t, diff.Empty())
}

func TestCompareKeyedByURLNotTitle(t *testing.T) {
	// Two distinct products sharing a title must diff independently
	oldProducts := []crawler.Product{
		{Title: "Sampler", Price: "$50.00", URL: "u1"},
		{Title: "Sampler", Price: "$80.00", URL: "u2"},
	}
	newProducts := []crawler.Product{
		{Title: "Sampler", Price: "$55.00", URL: "u1"},
		{Title: "Sampler", Price: "$80.00", URL: "u2"},
	}

	diff := Compare(oldProducts, newProducts)
	assert.Empty(t, diff.New)
	assert.Equal(t, []PriceChange{
		{Title: "Sampler", OldPrice: "$50.00", NewPrice: "$55.00", URL: "u1"},
	}, diff.Changed)
}

func TestCompareDuplicateOldURLFirstWins(t *testing.T) {
	oldProducts := []crawler.Product{
		{Title: "A", Price: "$10.00", URL: "u"},
		{Title: "A", Price: "$99.00", URL: "u"},
	}
	newProducts := []crawler.Product{
		{Title: "A", Price: "$10.00", URL: "u"},
	}

	diff := Compare(oldProducts, newProducts)
	assert.True(t, diff.Empty())
}

func TestCompareIgnoresRemovals(t *testing.T) {
	oldProducts := []crawler.Product{
		{Title: "A", Price: "$10.00", URL: "u1"},
		{Title: "B", Price: "$20.00", URL: "u2"},
	}
	newProducts := []crawler.Product{
		{Title: "A", Price: "$10.00", URL: "u1"},
	}

	diff := Compare(oldProducts, newProducts)
	assert.True(t, diff.Empty())
}

func TestCompareOutputFollowsInputOrder(t *testing.T) {
	oldProducts := []crawler.Product{
		{Title: "B", Price: "$20.00", URL: "u2"},
	}
	newProducts := []crawler.Product{
		{Title: "A", Price: "$10.00", URL: "u1"},
		{Title: "B", Price: "$25.00", URL: "u2"},
		{Title: "C", Price: "$30.00", URL: "u3"},
	}

	diff := Compare(oldProducts, newProducts)
	assert.Equal(t, []string{"u1", "u3"}, []string{diff.New[0].URL, diff.New[1].URL})
	assert.Equal(t, "u2", diff.Changed[0].URL)
}

func TestCompareChangedPricesAreCanonical(t *testing.T) {
	oldProducts := []crawler.Product{
		{Title: "A", Price: "$1000.00", URL: "u"},
	}
	newProducts := []crawler.Product{
		{Title: "A", Price: "$1250.50", URL: "u"},
	}

	diff := Compare(oldProducts, newProducts)
	assert.Equal(t, "$1,000.00", diff.Changed[0].OldPrice)
	assert.Equal(t, "$1,250.50", diff.Changed[0].NewPrice)
}

func TestCompareUnparseablePriceFallsBackToRawComparison(t *testing.T) {
	oldProducts := []crawler.Product{
		{Title: "A", Price: "N/A", URL: "u"},
	}

	same := Compare(oldProducts, []crawler.Product{{Title: "A", Price: "N/A", URL: "u"}})
	assert.True(t, same.Empty())

	changed := Compare(oldProducts, []crawler.Product{{Title: "A", Price: "$10.00", URL: "u"}})
	assert.Equal(t, []PriceChange{
		{Title: "A", OldPrice: "N/A", NewPrice: "$10.00", URL: "u"},
	}, changed.Changed)
}
