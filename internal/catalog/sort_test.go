package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
)

func sortFixture() []domain.Product {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Product{
		{ID: "p1", Name: domain.LocalizedText{"en": "Olive Soap", "fr": "Savon d'olive"},
			Price: 12.5, StockQuantity: 45, AverageRating: 4.5, CreatedAt: base.AddDate(0, 0, 1)},
		{ID: "p2", Name: domain.LocalizedText{"en": "Black Soap"},
			Price: 4.2, StockQuantity: 8, AverageRating: 3.0, CreatedAt: base.AddDate(0, 0, 3)},
		{ID: "p3", Name: domain.LocalizedText{"en": "Argan Oil"},
			Price: 89.99, StockQuantity: 0, AverageRating: 5.0, CreatedAt: base.AddDate(0, 0, 2)},
		{ID: "p4", Name: domain.LocalizedText{"en": "Clay Tagine"},
			Price: 30, StockQuantity: 3},
	}
}

// ============================================================================
// Sort Key Tests
// ============================================================================

func TestSort_NameAscendingDefault(t *testing.T) {
	products := sortFixture()
	Sort(products, domain.SortName, domain.SortAsc, "en")
	assert.Equal(t, []string{"p3", "p2", "p4", "p1"}, ids(products))
}

func TestSort_NameUsesDisplayLocale(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Name: domain.LocalizedText{"en": "Zebra Brush", "fr": "Brosse zèbre"}},
		{ID: "b", Name: domain.LocalizedText{"en": "Apron", "fr": "Tablier"}},
	}
	Sort(products, domain.SortName, domain.SortAsc, "fr")
	// "Brosse" < "Tablier" in French even though "Apron" < "Zebra" in English.
	assert.Equal(t, []string{"a", "b"}, ids(products))

	Sort(products, domain.SortName, domain.SortAsc, "en")
	assert.Equal(t, []string{"b", "a"}, ids(products))
}

func TestSort_NameFallsBackToEnglish(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Name: domain.LocalizedText{"en": "Zeste"}},
		{ID: "b", Name: domain.LocalizedText{"en": "Mop", "fr": "Balai espagnol"}},
	}
	// In French, "a" has no translation and sorts by its English name.
	Sort(products, domain.SortName, domain.SortAsc, "fr")
	assert.Equal(t, []string{"b", "a"}, ids(products))
}

func TestSort_AccentInsensitiveCollation(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Name: domain.LocalizedText{"fr": "Éponge"}},
		{ID: "b", Name: domain.LocalizedText{"fr": "Zeste"}},
		{ID: "c", Name: domain.LocalizedText{"fr": "Allumettes"}},
	}
	Sort(products, domain.SortName, domain.SortAsc, "fr")
	// Byte-wise "Éponge" would sort after "Zeste"; collation keeps it at E.
	assert.Equal(t, []string{"c", "a", "b"}, ids(products))
}

func TestSort_PriceLowAndHigh(t *testing.T) {
	products := sortFixture()
	Sort(products, domain.SortPriceLow, "", "en")
	assert.Equal(t, []string{"p2", "p1", "p4", "p3"}, ids(products))

	Sort(products, domain.SortPriceHigh, "", "en")
	assert.Equal(t, []string{"p3", "p4", "p1", "p2"}, ids(products))
}

func TestSort_RatingDescendingMissingAsZero(t *testing.T) {
	products := sortFixture()
	Sort(products, domain.SortRating, "", "en")
	assert.Equal(t, []string{"p3", "p1", "p2", "p4"}, ids(products))
}

func TestSort_NewestFirst(t *testing.T) {
	products := sortFixture()
	Sort(products, domain.SortNewest, "", "en")
	// p4 has no timestamp and is treated as the earliest possible date.
	assert.Equal(t, []string{"p2", "p3", "p1", "p4"}, ids(products))
}

func TestSort_StockLowAndHigh(t *testing.T) {
	products := sortFixture()
	Sort(products, domain.SortStockLow, "", "en")
	assert.Equal(t, []string{"p3", "p4", "p2", "p1"}, ids(products))

	Sort(products, domain.SortStockHigh, "", "en")
	assert.Equal(t, []string{"p1", "p2", "p4", "p3"}, ids(products))
}

func TestSort_ValueIsQuantityTimesPrice(t *testing.T) {
	products := sortFixture()
	// Values: p1=562.5, p2=33.6, p3=0, p4=90.
	Sort(products, domain.SortValue, "", "en")
	assert.Equal(t, []string{"p1", "p4", "p2", "p3"}, ids(products))
}

func TestSort_DirectionReversesOrdering(t *testing.T) {
	products := sortFixture()
	Sort(products, domain.SortPriceLow, domain.SortDesc, "en")
	assert.Equal(t, []string{"p3", "p4", "p1", "p2"}, ids(products))

	Sort(products, domain.SortName, domain.SortDesc, "en")
	assert.Equal(t, []string{"p1", "p4", "p2", "p3"}, ids(products))
}

func TestSort_UnknownKeyFallsBackToName(t *testing.T) {
	products := sortFixture()
	Sort(products, "popularity", "", "en")
	assert.Equal(t, []string{"p3", "p2", "p4", "p1"}, ids(products))
}

// ============================================================================
// Stability and Determinism Tests
// ============================================================================

func TestSort_TiesBreakByID(t *testing.T) {
	products := []domain.Product{
		{ID: "z", Price: 10},
		{ID: "a", Price: 10},
		{ID: "m", Price: 10},
	}
	Sort(products, domain.SortPriceLow, "", "en")
	assert.Equal(t, []string{"a", "m", "z"}, ids(products))
}

func TestSort_TieBreakNotReversedByDirection(t *testing.T) {
	products := []domain.Product{
		{ID: "z", Price: 10},
		{ID: "a", Price: 10},
	}
	Sort(products, domain.SortPriceLow, domain.SortDesc, "en")
	assert.Equal(t, []string{"a", "z"}, ids(products))
}

func TestSort_Idempotent(t *testing.T) {
	for _, key := range domain.ValidSortKeys() {
		products := sortFixture()
		Sort(products, key, "", "en")
		once := ids(products)
		Sort(products, key, "", "en")
		assert.Equal(t, once, ids(products), "sort key %q", key)
	}
}
