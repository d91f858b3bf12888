package notifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pricewatcher/internal/crawler"
	"pricewatcher/services/differ"
)

func TestComposeSections(t *testing.T) {
	diff := differ.Diff{
		New: []crawler.Product{
			{Title: "Cohiba Siglo VI", Price: "$450.00", URL: "https://shop.example.com/cohiba-p1/"},
		},
		Changed: []differ.PriceChange{
			{Title: "Partagas Serie D", OldPrice: "$1,200.00", NewPrice: "$1,150.00", URL: "https://shop.example.com/partagas-p2/"},
		},
	}

	msg := Compose(diff)
	assert.Contains(t, msg, "**🆕 New products**")
	assert.Contains(t, msg, "• Cohiba Siglo VI – $450.00  <https://shop.example.com/cohiba-p1/>")
	assert.Contains(t, msg, "**💲 Price changes**")
	assert.Contains(t, msg, "• Partagas Serie D: $1,200.00 → **$1,150.00**  <https://shop.example.com/partagas-p2/>")

	// New products render before price changes
	assert.Less(t, strings.Index(msg, "New products"), strings.Index(msg, "Price changes"))
}

func TestComposeOnlyNewProducts(t *testing.T) {
	diff := differ.Diff{
		New: []crawler.Product{{Title: "A", Price: "$10.00", URL: "u"}},
	}

	msg := Compose(diff)
	assert.Contains(t, msg, "New products")
	assert.NotContains(t, msg, "Price changes")
}

func TestComposeEmptyDiff(t *testing.T) {
	msg := Compose(differ.Diff{})
	assert.Equal(t, "Nothing changed, but the monitor ran.", msg)
}
