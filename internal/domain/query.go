package domain

// Availability filter values.
const (
	AvailabilityAll        = "all"
	AvailabilityInStock    = "in_stock"
	AvailabilityOutOfStock = "out_of_stock"
)

// ValidAvailabilities returns the set of valid availability filter values.
func ValidAvailabilities() []string {
	return []string{AvailabilityAll, AvailabilityInStock, AvailabilityOutOfStock}
}

// IsValidAvailability checks whether the given value is a valid availability
// filter. The empty string is valid and means "all".
func IsValidAvailability(v string) bool {
	if v == "" {
		return true
	}
	for _, a := range ValidAvailabilities() {
		if a == v {
			return true
		}
	}
	return false
}

// Sort keys for catalog queries.
const (
	SortName      = "name"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortRating    = "rating"
	SortNewest    = "newest"
	SortStockLow  = "stock_low"
	SortStockHigh = "stock_high"
	SortValue     = "value"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ValidSortKeys returns the set of valid sort keys.
func ValidSortKeys() []string {
	return []string{SortName, SortPriceLow, SortPriceHigh, SortRating, SortNewest, SortStockLow, SortStockHigh, SortValue}
}

// IsValidSortKey checks whether the given key is a valid sort key.
// The empty string is valid and falls back to the default (name ascending).
func IsValidSortKey(key string) bool {
	if key == "" {
		return true
	}
	for _, k := range ValidSortKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// Query holds all parameters for one catalog search request. It is a value
// object: the engine never retains it past the call that produced it.
type Query struct {
	Term   string `json:"term"`
	Locale string `json:"locale"`

	// Advanced per-field terms. When any of these is set the query runs in
	// advanced mode and every supplied term must match its own field.
	NameTerm        string `json:"name_term,omitempty"`
	DescriptionTerm string `json:"description_term,omitempty"`
	BrandTerm       string `json:"brand_term,omitempty"`
	SKUTerm         string `json:"sku_term,omitempty"`

	Categories   []string `json:"categories,omitempty"`
	Brands       []string `json:"brands,omitempty"`
	PriceMin     *float64 `json:"price_min,omitempty"`
	PriceMax     *float64 `json:"price_max,omitempty"`
	MinRating    float64  `json:"min_rating,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Tags         []string `json:"tags,omitempty"`

	SortBy  string `json:"sort_by,omitempty"`
	SortDir string `json:"sort_dir,omitempty"`
}

// Advanced reports whether the query carries any per-field search terms.
func (q *Query) Advanced() bool {
	return q.NameTerm != "" || q.DescriptionTerm != "" || q.BrandTerm != "" || q.SKUTerm != ""
}

// PriceBounds is the inclusive price range of a collection, used by the
// storefront to initialize its price slider.
type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Default price bounds returned for an empty catalog.
const (
	EmptyPriceMin = 0
	EmptyPriceMax = 1000
)

// Facets holds the filterable dimensions available in a product collection.
// They are always derived from the full, unfiltered collection.
type Facets struct {
	Brands      []string    `json:"brands"`
	Tags        []string    `json:"tags"`
	PriceBounds PriceBounds `json:"price_bounds"`
}

// FacetCounts holds per-value match counts for the category and brand
// dimensions. Each dimension's counts are computed with that dimension's own
// filter removed, so selecting a brand never zeroes its own count.
type FacetCounts struct {
	Categories map[string]int `json:"categories"`
	Brands     map[string]int `json:"brands"`
}

// QueryResult is the response of one catalog query.
type QueryResult struct {
	Items          []Product   `json:"items"`
	Facets         Facets      `json:"facets"`
	Counts         FacetCounts `json:"counts"`
	TotalMatched   int         `json:"total_matched"`
	TotalAvailable int         `json:"total_available"`
}
