// Package http wires the catalog's HTTP surface: the storefront read
// endpoints and the admin inventory endpoints.
package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ibrahimsohofi/droguerie/internal/i18n"
	"github.com/ibrahimsohofi/droguerie/internal/service"
	"github.com/ibrahimsohofi/droguerie/pkg/health"
	"github.com/ibrahimsohofi/droguerie/pkg/httputil"
	"github.com/ibrahimsohofi/droguerie/pkg/middleware"
)

// NewRouter creates a chi router with all catalog service routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	inventoryService *service.InventoryService,
	labels *i18n.Client,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLog(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(catalogService, labels, logger)
	inventoryHandler := NewInventoryHandler(inventoryService, logger)

	// Storefront API
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Get("/facets", catalogHandler.Facets)
	})

	// Admin API
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Get("/low-stock", inventoryHandler.LowStock)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Post("/reconcile", inventoryHandler.Reconcile)
			r.Put("/stock/{id}", inventoryHandler.SetStock)
		})
	})

	return r
}

// ContentTypeJSON rejects write requests whose body is not declared as JSON.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct != "" && !strings.HasPrefix(ct, "application/json") {
			httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "UNSUPPORTED_MEDIA_TYPE",
					Message: "Content-Type must be application/json",
				},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
