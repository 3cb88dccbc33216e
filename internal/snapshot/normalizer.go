// Package snapshot coerces raw scrape results into fully defaulted observations.
package snapshot

import (
	"strconv"
	"strings"

	"github.com/jkowalczyk/price-tracker/internal/platform/models"
)

// Normalizer fills missing snapshot fields with defaults so downstream
// logic never branches on optionality.
type Normalizer struct {
	defaultCurrency string
}

// NewNormalizer returns new Normalizer using defaultCurrency for snapshots
// without a currency symbol.
func NewNormalizer(defaultCurrency string) Normalizer {
	return Normalizer{
		defaultCurrency: defaultCurrency,
	}
}

// Normalize returns a fully populated observation built from raw. It never
// fails: unparsable numbers become 0, missing strings become empty and
// missing stock information is derived from the price.
func (n Normalizer) Normalize(raw models.RawSnapshot) models.ObservedSnapshot {
	observed := models.ObservedSnapshot{
		URL:           strings.TrimSpace(raw.URL),
		Title:         stringOrEmpty(raw.Title),
		Description:   stringOrEmpty(raw.Description),
		ImageURL:      stringOrEmpty(raw.ImageURL),
		Currency:      n.defaultCurrency,
		Category:      stringOrEmpty(raw.Category),
		CurrentPrice:  priceOrZero(raw.Price),
		OriginalPrice: priceOrZero(raw.OriginalPrice),
	}

	if raw.Currency != nil && strings.TrimSpace(*raw.Currency) != "" {
		observed.Currency = strings.TrimSpace(*raw.Currency)
	}

	if raw.DiscountRate != nil {
		observed.DiscountRate = clampInt(*raw.DiscountRate, 0, 100)
	}

	if raw.ReviewsCount != nil && *raw.ReviewsCount > 0 {
		observed.ReviewsCount = *raw.ReviewsCount
	}

	if raw.Stars != nil && *raw.Stars > 0 {
		observed.Stars = *raw.Stars
	}

	if raw.OutOfStock != nil {
		observed.IsOutOfStock = *raw.OutOfStock
	} else {
		observed.IsOutOfStock = observed.CurrentPrice == 0
	}

	return observed
}

// ParsePrice extracts a non-negative price from raw price text, stripping
// currency symbols, spaces and thousands separators. When both ',' and '.'
// appear, the rightmost one is treated as the decimal separator. Returns 0
// for missing, unparsable or negative values.
func ParsePrice(text string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			return r
		default:
			return -1
		}
	}, text)

	if cleaned == "" {
		return 0
	}

	comma := strings.LastIndexByte(cleaned, ',')
	dot := strings.LastIndexByte(cleaned, '.')

	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		// comma-decimal locale, e.g. "1.299,00"
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		// dot-decimal locale, e.g. "1,299.00"
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case comma >= 0 && len(cleaned)-comma-1 == 3:
		// commas followed by 3-digit groups are thousands separators, e.g. "1,299,299"
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case comma >= 0:
		// a comma with a non-3-digit tail is a decimal separator, e.g. "12,99"
		cleaned = strings.ReplaceAll(cleaned[:comma], ",", "") + "." + cleaned[comma+1:]
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price < 0 {
		return 0
	}

	return price
}

// FormatPrice renders price as plain decimal text without grouping separators.
// It is the inverse of ParsePrice for already clean values.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func priceOrZero(text *string) float64 {
	if text == nil {
		return 0
	}

	return ParsePrice(*text)
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}

	return strings.TrimSpace(*value)
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}

	return value
}
