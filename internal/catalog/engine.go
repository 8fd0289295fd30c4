package catalog

import (
	"github.com/ibrahimsohofi/droguerie/internal/domain"
)

// RunQuery executes one catalog query against a product snapshot and returns
// the filtered, sorted result together with facets and facet counts. It is a
// pure read path: neither the collection nor the query is mutated, and no
// reference to either is retained past the call.
func RunQuery(products []domain.Product, q *domain.Query) *domain.QueryResult {
	query := normalize(q)

	// Facets describe what is available in the whole catalog, so they are
	// always derived from the unfiltered collection.
	facets := ExtractFacets(products)

	matched := Filter(products, query)
	Sort(matched, query.SortBy, query.SortDir, query.Locale)

	return &domain.QueryResult{
		Items:          matched,
		Facets:         facets,
		Counts:         Counts(products, query),
		TotalMatched:   len(matched),
		TotalAvailable: len(products),
	}
}

// normalize returns a copy of the query with malformed fields degraded to
// usable values: inverted price bounds are swapped, an unknown sort key falls
// back to name ascending, an unknown availability value means no constraint,
// and a missing locale defaults to the storefront default. A query is a
// best-effort read with no side effects to protect, so it never fails.
func normalize(q *domain.Query) *domain.Query {
	out := *q

	if out.Locale == "" {
		out.Locale = domain.DefaultLocale
	}
	if !domain.IsValidSortKey(out.SortBy) {
		out.SortBy = domain.SortName
		out.SortDir = domain.SortAsc
	}
	if !domain.IsValidAvailability(out.Availability) {
		out.Availability = domain.AvailabilityAll
	}
	if out.PriceMin != nil && out.PriceMax != nil && *out.PriceMin > *out.PriceMax {
		out.PriceMin, out.PriceMax = out.PriceMax, out.PriceMin
	}
	if out.MinRating < 0 {
		out.MinRating = 0
	}

	return &out
}
