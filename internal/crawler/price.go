package crawler

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	apperrors "pricewatcher/pkg/errors"
)

// priceRegex matches a display price: a dollar sign, digits with optional
// thousands separators, and exactly two fraction digits.
var priceRegex = regexp.MustCompile(`\$[\d,]+\.\d{2}`)

// displaySelectors are the markup candidates for the visible price,
// checked in order. The sale variant renders when a product is
// discounted; the plain item class is the generic fallback.
var displaySelectors = []string{
	"span.price",
	"span.price-item--sale",
	"span.price-item",
}

// ExtractPrice returns the current display price of a product document
// as a "$#,###.##" string. Three tiers are tried in strict order:
//
//  1. structured metadata (microdata price property), the authoritative
//     source when present
//  2. the first existing element among the display markup candidates
//  3. a scan of the full document text, taking the last match - when a
//     struck-through original price and a sale price both render as
//     plain text, the sale price appears last in document order. This
//     is a heuristic, not a guarantee.
func ExtractPrice(doc *goquery.Document) (string, error) {
	// Tier 1: structured metadata
	if meta := doc.Find(`meta[itemprop="price"]`).First(); meta.Length() > 0 {
		if content, ok := meta.Attr("content"); ok && strings.TrimSpace(content) != "" {
			if d, err := decimal.NewFromString(strings.TrimSpace(content)); err == nil {
				return FormatPrice(d), nil
			}
		}
	}

	// Tier 2: first existing display markup candidate
	for _, selector := range displaySelectors {
		tag := doc.Find(selector).First()
		if tag.Length() == 0 {
			continue
		}
		if match := priceRegex.FindString(tag.Text()); match != "" {
			return match, nil
		}
		// The first candidate element decides tier 2; an unmatched
		// text falls through to the full-text scan.
		break
	}

	// Tier 3: last match in the full document text
	if matches := priceRegex.FindAllString(doc.Text(), -1); len(matches) > 0 {
		return matches[len(matches)-1], nil
	}

	pageURL := ""
	if doc.Url != nil {
		pageURL = doc.Url.String()
	}
	return "", apperrors.NewPriceNotFound("extractor", pageURL)
}

// ParsePrice converts a "$#,###.##" string into an exact decimal.
// Comparison must never go through binary floating point, formatting
// artifacts would otherwise show up as spurious diffs.
func ParsePrice(price string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(price), "$"), ",", "")
	return decimal.NewFromString(cleaned)
}

// FormatPrice renders a decimal as "$#,###.##" with comma thousands
// separators and exactly two fraction digits.
func FormatPrice(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	dot := strings.Index(fixed, ".")
	intPart := fixed[:dot]
	fracPart := fixed[dot:]

	return sign + "$" + groupThousands(intPart) + fracPart
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
