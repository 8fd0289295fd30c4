package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
)

func facetFixture() []domain.Product {
	return []domain.Product{
		{ID: "p1", Brand: "Atlas", Tags: []string{"soap", "bio"}, Price: 12.50, CategoryID: "hygiene"},
		{ID: "p2", Brand: "Rif", Tags: []string{"soap"}, Price: 4.20, CategoryID: "hygiene"},
		{ID: "p3", Brand: "Atlas", Tags: []string{"oil", ""}, Price: 89.99, CategoryID: "kitchen"},
		{ID: "p4", Brand: "", Tags: nil, Price: 30, CategoryID: "kitchen"},
	}
}

// ============================================================================
// ExtractFacets Tests
// ============================================================================

func TestExtractFacets_BrandsAndTagsDeduplicated(t *testing.T) {
	facets := ExtractFacets(facetFixture())
	assert.Equal(t, []string{"Atlas", "Rif"}, facets.Brands)
	assert.Equal(t, []string{"bio", "oil", "soap"}, facets.Tags)
}

func TestExtractFacets_EmptyEntriesExcluded(t *testing.T) {
	facets := ExtractFacets(facetFixture())
	assert.NotContains(t, facets.Brands, "")
	assert.NotContains(t, facets.Tags, "")
}

func TestExtractFacets_PriceBoundsFloorCeil(t *testing.T) {
	facets := ExtractFacets(facetFixture())
	assert.Equal(t, 4.0, facets.PriceBounds.Min)
	assert.Equal(t, 90.0, facets.PriceBounds.Max)
}

func TestExtractFacets_EmptyCollectionDefaults(t *testing.T) {
	facets := ExtractFacets(nil)
	assert.Empty(t, facets.Brands)
	assert.Empty(t, facets.Tags)
	assert.Equal(t, float64(domain.EmptyPriceMin), facets.PriceBounds.Min)
	assert.Equal(t, float64(domain.EmptyPriceMax), facets.PriceBounds.Max)
}

func TestExtractFacets_SingleProduct(t *testing.T) {
	facets := ExtractFacets([]domain.Product{{ID: "p1", Price: 7.5}})
	assert.Equal(t, 7.0, facets.PriceBounds.Min)
	assert.Equal(t, 8.0, facets.PriceBounds.Max)
}

func TestExtractFacets_IndependentOfQuery(t *testing.T) {
	products := facetFixture()
	unfiltered := ExtractFacets(products)

	// Running a narrowing query must not change the facet value sets.
	result := RunQuery(products, &domain.Query{Brands: []string{"Rif"}, Term: "nothing-matches"})
	assert.Equal(t, unfiltered, result.Facets)
}

// ============================================================================
// Facet Counts Tests
// ============================================================================

func TestCounts_ExcludeOwnDimension(t *testing.T) {
	products := facetFixture()

	// With a brand selected, brand counts still reflect all brands that
	// would match if the brand filter were lifted.
	counts := Counts(products, &domain.Query{Brands: []string{"Rif"}})
	assert.Equal(t, 2, counts.Brands["Atlas"])
	assert.Equal(t, 1, counts.Brands["Rif"])

	// Category counts do respect the brand filter.
	assert.Equal(t, 1, counts.Categories["hygiene"])
	assert.Equal(t, 0, counts.Categories["kitchen"])
}

func TestCounts_CategorySelectionKeepsOwnCount(t *testing.T) {
	products := facetFixture()
	counts := Counts(products, &domain.Query{Categories: []string{"kitchen"}})
	assert.Equal(t, 2, counts.Categories["hygiene"])
	assert.Equal(t, 2, counts.Categories["kitchen"])
}

func TestCounts_OtherFiltersStillApply(t *testing.T) {
	products := facetFixture()
	max := 20.0
	counts := Counts(products, &domain.Query{PriceMax: &max})
	assert.Equal(t, 1, counts.Brands["Atlas"])
	assert.Equal(t, 1, counts.Brands["Rif"])
	assert.Equal(t, 2, counts.Categories["hygiene"])
}
