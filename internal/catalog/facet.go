package catalog

import (
	"math"
	"sort"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
)

// ExtractFacets derives the filterable dimensions from the full product
// collection: the distinct brand and tag sets and the floor/ceil price
// bounds. An empty collection yields the documented default bounds so the
// storefront price slider always has a usable range.
func ExtractFacets(products []domain.Product) domain.Facets {
	if len(products) == 0 {
		return domain.Facets{
			Brands:      []string{},
			Tags:        []string{},
			PriceBounds: domain.PriceBounds{Min: domain.EmptyPriceMin, Max: domain.EmptyPriceMax},
		}
	}

	brandSet := make(map[string]struct{})
	tagSet := make(map[string]struct{})
	minPrice := math.Inf(1)
	maxPrice := math.Inf(-1)

	for i := range products {
		p := &products[i]
		if p.Brand != "" {
			brandSet[p.Brand] = struct{}{}
		}
		for _, tag := range p.Tags {
			if tag != "" {
				tagSet[tag] = struct{}{}
			}
		}
		if p.Price < minPrice {
			minPrice = p.Price
		}
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
	}

	return domain.Facets{
		Brands: sortedKeys(brandSet),
		Tags:   sortedKeys(tagSet),
		PriceBounds: domain.PriceBounds{
			Min: math.Floor(minPrice),
			Max: math.Ceil(maxPrice),
		},
	}
}

// Counts computes per-value match counts for the category and brand
// dimensions. Each dimension is counted against the collection filtered by
// every predicate except that dimension's own, so a selected brand keeps a
// non-zero count for itself.
func Counts(products []domain.Product, q *domain.Query) domain.FacetCounts {
	counts := domain.FacetCounts{
		Categories: make(map[string]int),
		Brands:     make(map[string]int),
	}

	withoutCategories := *q
	withoutCategories.Categories = nil
	for _, p := range Filter(products, &withoutCategories) {
		if p.CategoryID != "" {
			counts.Categories[p.CategoryID]++
		}
	}

	withoutBrands := *q
	withoutBrands.Brands = nil
	for _, p := range Filter(products, &withoutBrands) {
		if p.Brand != "" {
			counts.Brands[p.Brand]++
		}
	}

	return counts
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
