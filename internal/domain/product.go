package domain

import (
	"sort"
	"time"
)

// Supported storefront locales.
const (
	LocaleEN = "en"
	LocaleAR = "ar"
	LocaleFR = "fr"
)

// DefaultLocale is the fallback locale when a translation is missing.
const DefaultLocale = LocaleEN

// DefaultLowStockThreshold is used when a product does not specify its own
// low-stock threshold.
const DefaultLowStockThreshold = 10

// LocalizedText maps a locale code to a translated display string.
type LocalizedText map[string]string

// Resolve returns the text for the given locale, falling back to the default
// locale when the requested translation is missing or empty.
func (t LocalizedText) Resolve(locale string) string {
	if v, ok := t[locale]; ok && v != "" {
		return v
	}
	return t[DefaultLocale]
}

// Locales returns the locale codes present in the mapping in a deterministic
// order: the preferred locale first (when present), then the canonical
// storefront locales, then any remaining codes sorted alphabetically.
func (t LocalizedText) Locales(preferred string) []string {
	out := make([]string, 0, len(t))
	seen := make(map[string]bool, len(t))

	add := func(code string) {
		if seen[code] {
			return
		}
		if _, ok := t[code]; ok {
			out = append(out, code)
			seen[code] = true
		}
	}

	add(preferred)
	add(LocaleEN)
	add(LocaleAR)
	add(LocaleFR)

	rest := make([]string, 0, len(t))
	for code := range t {
		if !seen[code] {
			rest = append(rest, code)
		}
	}
	sort.Strings(rest)
	out = append(out, rest...)

	return out
}

// StockStatus is the discrete availability classification of a product.
type StockStatus string

// Stock status values.
const (
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusInStock    StockStatus = "in_stock"
)

// Classify maps a stock quantity and low-stock threshold to a stock status.
// The threshold is taken as given; products that do not specify one resolve
// it through EffectiveThreshold before calling. Every consumer of stock
// status (storefront availability filter, admin badge, reconciler) must go
// through this function.
func Classify(quantity, threshold int) StockStatus {
	if threshold < 0 {
		threshold = 0
	}
	switch {
	case quantity <= 0:
		return StockStatusOutOfStock
	case quantity <= threshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// Product represents a catalog entity.
type Product struct {
	ID                string        `json:"id"`
	SKU               string        `json:"sku"`
	Name              LocalizedText `json:"name"`
	Description       LocalizedText `json:"description,omitempty"`
	Brand             string        `json:"brand,omitempty"`
	CategoryID        string        `json:"category_id,omitempty"`
	Tags              []string      `json:"tags,omitempty"`
	Price             float64       `json:"price"`
	StockQuantity     int           `json:"stock_quantity"`
	LowStockThreshold int           `json:"low_stock_threshold"`
	AverageRating     float64       `json:"average_rating"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// EffectiveThreshold returns the product's low-stock threshold, applying the
// default when unset.
func (p *Product) EffectiveThreshold() int {
	if p.LowStockThreshold <= 0 {
		return DefaultLowStockThreshold
	}
	return p.LowStockThreshold
}

// StockStatus classifies the product's current stock level using its
// effective low-stock threshold.
func (p *Product) StockStatus() StockStatus {
	return Classify(p.StockQuantity, p.EffectiveThreshold())
}

// DisplayName resolves the product name for the given locale.
func (p *Product) DisplayName(locale string) string {
	return p.Name.Resolve(locale)
}
