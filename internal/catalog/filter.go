package catalog

import (
	"github.com/ibrahimsohofi/droguerie/internal/domain"
)

// Filter applies the query's predicates to the collection as a logical AND
// chain and returns the matching subset in input order. The predicates are
// independent and commutative; the evaluation order below is only a
// performance choice. The input slice is never modified.
func Filter(products []domain.Product, q *domain.Query) []domain.Product {
	priceMin, priceMax := normalizedBounds(q)
	categories := toSet(q.Categories)
	brands := toSet(q.Brands)
	tags := toSet(q.Tags)
	advanced := q.Advanced()

	matched := make([]domain.Product, 0, len(products))
	for i := range products {
		p := &products[i]

		if !Matches(p, q.Term, q.Locale) {
			continue
		}
		if advanced && !MatchesAdvanced(p, q) {
			continue
		}
		if len(categories) > 0 {
			if _, ok := categories[p.CategoryID]; !ok {
				continue
			}
		}
		if len(brands) > 0 {
			if _, ok := brands[p.Brand]; !ok {
				continue
			}
		}
		if priceMin != nil && p.Price < *priceMin {
			continue
		}
		if priceMax != nil && p.Price > *priceMax {
			continue
		}
		if !availabilityMatches(p, q.Availability) {
			continue
		}
		if q.MinRating > 0 && p.AverageRating < q.MinRating {
			continue
		}
		if len(tags) > 0 && !anyTagMatches(p.Tags, tags) {
			continue
		}

		matched = append(matched, *p)
	}

	return matched
}

// normalizedBounds returns the query's price bounds with min and max swapped
// when they are inverted. Malformed bounds degrade to a valid range rather
// than failing the query.
func normalizedBounds(q *domain.Query) (*float64, *float64) {
	minP, maxP := q.PriceMin, q.PriceMax
	if minP != nil && maxP != nil && *minP > *maxP {
		return maxP, minP
	}
	return minP, maxP
}

func availabilityMatches(p *domain.Product, availability string) bool {
	switch availability {
	case domain.AvailabilityInStock:
		return p.StockStatus() != domain.StockStatusOutOfStock
	case domain.AvailabilityOutOfStock:
		return p.StockStatus() == domain.StockStatusOutOfStock
	default:
		// "all", empty, or unrecognized: no availability constraint.
		return true
	}
}

// anyTagMatches implements OR semantics across the selected tags: one shared
// tag is enough for inclusion.
func anyTagMatches(productTags []string, selected map[string]struct{}) bool {
	for _, tag := range productTags {
		if _, ok := selected[tag]; ok {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
