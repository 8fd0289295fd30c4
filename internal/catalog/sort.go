package catalog

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
)

// Sort orders the products in place by the given sort key and direction.
// Each key defines a natural ordering (price_low is ascending by price,
// rating is descending, and so on); direction "desc" reverses it. Unknown
// keys fall back to name ascending. Ties always break by product id
// ascending so that repeated sorts of an unchanged collection yield an
// identical order.
func Sort(products []domain.Product, key, direction, locale string) {
	if !domain.IsValidSortKey(key) || key == "" {
		key = domain.SortName
	}

	cmp := comparator(key, locale)
	reverse := direction == domain.SortDesc

	sort.SliceStable(products, func(i, j int) bool {
		c := cmp(&products[i], &products[j])
		if reverse {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return products[i].ID < products[j].ID
	})
}

// comparator returns a three-way comparison for the key's natural ordering.
func comparator(key, locale string) func(a, b *domain.Product) int {
	switch key {
	case domain.SortPriceLow:
		return func(a, b *domain.Product) int { return compareFloat(a.Price, b.Price) }
	case domain.SortPriceHigh:
		return func(a, b *domain.Product) int { return compareFloat(b.Price, a.Price) }
	case domain.SortRating:
		return func(a, b *domain.Product) int { return compareFloat(b.AverageRating, a.AverageRating) }
	case domain.SortNewest:
		return func(a, b *domain.Product) int { return compareTimeDesc(a.CreatedAt, b.CreatedAt) }
	case domain.SortStockLow:
		return func(a, b *domain.Product) int { return compareInt(a.StockQuantity, b.StockQuantity) }
	case domain.SortStockHigh:
		return func(a, b *domain.Product) int { return compareInt(b.StockQuantity, a.StockQuantity) }
	case domain.SortValue:
		return func(a, b *domain.Product) int {
			return compareFloat(stockValue(b), stockValue(a))
		}
	default:
		return nameComparator(locale)
	}
}

// nameComparator compares localized display names with locale-aware collation.
// The collator for an unknown locale degrades to the root collation order.
func nameComparator(locale string) func(a, b *domain.Product) int {
	coll := collate.New(language.Make(locale), collate.IgnoreCase)
	return func(a, b *domain.Product) int {
		an := a.DisplayName(locale)
		bn := b.DisplayName(locale)
		if c := coll.CompareString(an, bn); c != 0 {
			return c
		}
		// Collation can treat distinct strings as equal; fall back to a
		// byte comparison to keep the ordering total.
		return strings.Compare(an, bn)
	}
}

// stockValue is the inventory value of a product (quantity times unit price).
func stockValue(p *domain.Product) float64 {
	return float64(p.StockQuantity) * p.Price
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareTimeDesc orders newer timestamps first. A zero timestamp is treated
// as the earliest possible date.
func compareTimeDesc(a, b time.Time) int {
	switch {
	case a.After(b):
		return -1
	case b.After(a):
		return 1
	default:
		return 0
	}
}
