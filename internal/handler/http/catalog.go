package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
	"github.com/ibrahimsohofi/droguerie/internal/i18n"
	"github.com/ibrahimsohofi/droguerie/internal/service"
	"github.com/ibrahimsohofi/droguerie/pkg/httputil"
	"github.com/ibrahimsohofi/droguerie/pkg/pagination"
	"github.com/ibrahimsohofi/droguerie/pkg/slug"
)

// CatalogHandler handles HTTP requests for storefront catalog endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	labels  *i18n.Client
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, labels *i18n.Client, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		labels:  labels,
		logger:  logger,
	}
}

// --- Response DTOs ---

// ProductView is a product decorated with its stock classification and a
// URL slug for the storefront grid.
type ProductView struct {
	domain.Product
	Slug        string             `json:"slug"`
	StockStatus domain.StockStatus `json:"stock_status"`
	StockLabel  string             `json:"stock_label"`
}

func newProductView(p domain.Product, locale, label string) ProductView {
	return ProductView{
		Product:     p,
		Slug:        slug.Generate(p.DisplayName(locale)),
		StockStatus: p.StockStatus(),
		StockLabel:  label,
	}
}

// SearchResponse is the JSON payload of a catalog query.
type SearchResponse struct {
	Products       pagination.Result[ProductView] `json:"products"`
	Facets         domain.Facets                  `json:"facets"`
	Counts         domain.FacetCounts             `json:"counts"`
	TotalMatched   int                            `json:"total_matched"`
	TotalAvailable int                            `json:"total_available"`
}

// --- Handlers ---

// ListProducts handles GET /api/v1/catalog/products.
//
// Query parameters are parsed permissively: unknown sort keys, inverted price
// bounds and malformed numbers degrade to defaults instead of failing, so a
// stale storefront link always renders a page.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := parseQuery(r)
	params := pagination.FromRequest(r)

	result, err := h.service.Search(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	page := pagination.Slice(result.Items, params)
	views := make([]ProductView, 0, len(page))
	labelCache := make(map[domain.StockStatus]string, 3)

	for _, p := range page {
		status := p.StockStatus()
		label, ok := labelCache[status]
		if !ok {
			label = h.labels.StatusLabel(r.Context(), status, query.Locale)
			labelCache[status] = label
		}
		views = append(views, newProductView(p, query.Locale, label))
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: SearchResponse{
		Products:       pagination.NewResult(views, result.TotalMatched, params),
		Facets:         result.Facets,
		Counts:         result.Counts,
		TotalMatched:   result.TotalMatched,
		TotalAvailable: result.TotalAvailable,
	}})
}

// Facets handles GET /api/v1/catalog/facets.
func (h *CatalogHandler) Facets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.service.Facets(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: facets})
}

// GetProduct handles GET /api/v1/catalog/products/{id}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = domain.DefaultLocale
	}
	status := product.StockStatus()
	label := h.labels.StatusLabel(r.Context(), status, locale)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newProductView(*product, locale, label)})
}

// parseQuery extracts the catalog query from URL parameters. Malformed
// numeric values are dropped rather than rejected.
func parseQuery(r *http.Request) *domain.Query {
	params := r.URL.Query()

	q := &domain.Query{
		Term:   strings.TrimSpace(params.Get("q")),
		Locale: params.Get("locale"),

		NameTerm:        strings.TrimSpace(params.Get("name")),
		DescriptionTerm: strings.TrimSpace(params.Get("description")),
		BrandTerm:       strings.TrimSpace(params.Get("brand")),
		SKUTerm:         strings.TrimSpace(params.Get("sku")),

		Categories:   params["category"],
		Brands:       params["brands"],
		Availability: params.Get("availability"),
		Tags:         params["tag"],

		SortBy:  params.Get("sort"),
		SortDir: params.Get("dir"),
	}

	if v := params.Get("price_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.PriceMin = &f
		}
	}
	if v := params.Get("price_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.PriceMax = &f
		}
	}
	if v := params.Get("min_rating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinRating = f
		}
	}

	return q
}
