package http

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
	"github.com/ibrahimsohofi/droguerie/internal/service"
	"github.com/ibrahimsohofi/droguerie/pkg/httputil"
	"github.com/ibrahimsohofi/droguerie/pkg/validator"
)

// Stock badges shown in the admin console. Unlike the stock status, the
// badge has an extra "near low" band at 1.5x the threshold to give the
// shopkeeper a heads-up before a product actually runs low. The band is
// presentation only and never feeds back into classification.
const (
	BadgeOut     = "out"
	BadgeLow     = "low"
	BadgeNearLow = "near_low"
	BadgeOK      = "ok"
)

// InventoryHandler handles HTTP requests for admin inventory endpoints.
type InventoryHandler struct {
	service *service.InventoryService
	logger  *slog.Logger
}

// NewInventoryHandler creates a new inventory HTTP handler.
func NewInventoryHandler(svc *service.InventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request/Response DTOs ---

// StockChangeItem is one proposed quantity change in a reconcile request.
// Quantity is intentionally unconstrained here: a negative value is a
// business-rule rejection reported per item, not a malformed request.
type StockChangeItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// ReconcileRequest is the JSON request body for a bulk reconciliation.
type ReconcileRequest struct {
	Changes []StockChangeItem `json:"changes" validate:"required,min=1,max=500,dive"`
}

// SetStockRequest is the JSON request body for a single stock write.
type SetStockRequest struct {
	Quantity int `json:"quantity"`
}

// LowStockItem is one row of the admin restock list.
type LowStockItem struct {
	domain.Product
	StockStatus domain.StockStatus `json:"stock_status"`
	Badge       string             `json:"badge"`
}

// --- Handlers ---

// Reconcile handles POST /api/v1/inventory/reconcile.
func (h *InventoryHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	changes := make([]domain.StockChangeRequest, 0, len(req.Changes))
	for _, c := range req.Changes {
		changes = append(changes, domain.StockChangeRequest{
			ProductID:        c.ProductID,
			ProposedQuantity: c.Quantity,
		})
	}

	report, err := h.service.Reconcile(r.Context(), changes)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: report})
}

// SetStock handles PUT /api/v1/inventory/stock/{id}. It runs the change
// through the same validation as a bulk reconciliation; a rejection comes
// back as 422 with the rejection reason as the error code.
func (h *InventoryHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)

	var req SetStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	change, err := h.service.SetStock(r.Context(), id.String(), req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: change})
}

// LowStock handles GET /api/v1/inventory/low-stock.
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.LowStock(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	items := make([]LowStockItem, 0, len(products))
	for _, p := range products {
		items = append(items, LowStockItem{
			Product:     p,
			StockStatus: p.StockStatus(),
			Badge:       stockBadge(p.StockQuantity, p.EffectiveThreshold()),
		})
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"items": items,
		"count": len(items),
	}})
}

// stockBadge maps a quantity and threshold to the admin badge. The near-low
// band covers in-stock products within 1.5x the threshold, rounded up.
func stockBadge(quantity, threshold int) string {
	switch domain.Classify(quantity, threshold) {
	case domain.StockStatusOutOfStock:
		return BadgeOut
	case domain.StockStatusLowStock:
		return BadgeLow
	}

	nearBound := int(math.Ceil(1.5 * float64(threshold)))
	if quantity <= nearBound {
		return BadgeNearLow
	}
	return BadgeOK
}
