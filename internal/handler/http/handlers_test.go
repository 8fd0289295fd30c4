package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
	"github.com/ibrahimsohofi/droguerie/internal/i18n"
	"github.com/ibrahimsohofi/droguerie/internal/repository"
	"github.com/ibrahimsohofi/droguerie/internal/service"
	"github.com/ibrahimsohofi/droguerie/pkg/health"
	"github.com/ibrahimsohofi/droguerie/pkg/httpclient"
)

// Fixed UUIDs so handler paths can be exercised end to end.
const (
	idBleach = "6f1a2b3c-0000-4000-8000-000000000001"
	idSoap   = "6f1a2b3c-0000-4000-8000-000000000002"
	idMop    = "6f1a2b3c-0000-4000-8000-000000000003"
)

// ============================================================================
// Mocks and stubs
// ============================================================================

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) UpdateStock(ctx context.Context, updates []repository.StockUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

type noopCache struct{}

func (noopCache) Get(context.Context, *domain.Query) (*domain.QueryResult, bool) { return nil, false }
func (noopCache) Set(context.Context, *domain.Query, *domain.QueryResult) error  { return nil }
func (noopCache) Invalidate(context.Context) error                               { return nil }

type noopPublisher struct{}

func (noopPublisher) PublishStockUpdated(context.Context, *domain.Product, domain.AppliedChange) error {
	return nil
}
func (noopPublisher) PublishStockLow(context.Context, *domain.Product) error { return nil }

// ============================================================================
// Helpers
// ============================================================================

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testLabels serves a fixed translation so handler tests do not depend on
// the fallback path.
func testLabels(t *testing.T) *i18n.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"label":"translated"}`))
	}))
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	cfg.Timeout = time.Second
	return i18n.NewClient(httpclient.New(cfg), srv.URL, newTestLogger())
}

func handlerFixture() []*domain.Product {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*domain.Product{
		{
			ID: idBleach, SKU: "SKU-1", Name: domain.LocalizedText{"en": "Bleach", "fr": "Eau de Javel"},
			Brand: "CleanCo", CategoryID: "cleaning", Tags: []string{"cleaning"},
			Price: 3.5, StockQuantity: 40, LowStockThreshold: 5, CreatedAt: created,
		},
		{
			ID: idSoap, SKU: "SKU-2", Name: domain.LocalizedText{"en": "Dish Soap"},
			Brand: "CleanCo", CategoryID: "kitchen", Tags: []string{"kitchen"},
			Price: 2.0, StockQuantity: 0, LowStockThreshold: 5, CreatedAt: created,
		},
		{
			ID: idMop, SKU: "SKU-3", Name: domain.LocalizedText{"en": "Mop"},
			Brand: "HomePlus", CategoryID: "cleaning", Tags: []string{"cleaning", "tools"},
			Price: 12.0, StockQuantity: 3, LowStockThreshold: 5, CreatedAt: created,
		},
	}
}

func newTestRouter(t *testing.T, repo *mockProductRepository) http.Handler {
	t.Helper()
	logger := newTestLogger()
	catalogSvc := service.NewCatalogService(repo, noopCache{}, logger)
	inventorySvc := service.NewInventoryService(repo, noopPublisher{}, noopCache{}, logger)
	return NewRouter(catalogSvc, inventorySvc, testLabels(t), health.NewHandler(), logger)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

// ============================================================================
// ListProducts
// ============================================================================

func TestListProducts_Defaults(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("ListAll", mock.Anything).Return(handlerFixture(), nil)
	router := newTestRouter(t, repo)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	decodeData(t, rec, &resp)

	assert.Equal(t, 3, resp.TotalMatched)
	assert.Equal(t, 3, resp.TotalAvailable)
	require.Len(t, resp.Products.Data, 3)
	// Default sort is name ascending.
	assert.Equal(t, "Bleach", resp.Products.Data[0].Name["en"])
	assert.Equal(t, "Dish Soap", resp.Products.Data[1].Name["en"])
	assert.Equal(t, "Mop", resp.Products.Data[2].Name["en"])

	assert.Equal(t, domain.StockStatusInStock, resp.Products.Data[0].StockStatus)
	assert.Equal(t, "translated", resp.Products.Data[0].StockLabel)
	assert.Equal(t, []string{"CleanCo", "HomePlus"}, resp.Facets.Brands)
}

func TestListProducts_FilterAndSort(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("ListAll", mock.Anything).Return(handlerFixture(), nil)
	router := newTestRouter(t, repo)

	rec := doRequest(t, router, http.MethodGet,
		"/api/v1/catalog/products?category=cleaning&sort=price_high", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	decodeData(t, rec, &resp)

	require.Equal(t, 2, resp.TotalMatched)
	assert.Equal(t, "Mop", resp.Products.Data[0].Name["en"])
	assert.Equal(t, "Bleach", resp.Products.Data[1].Name["en"])
	// Category counts are computed without the category filter itself.
	assert.Equal(t, 2, resp.Counts.Categories["cleaning"])
	assert.Equal(t, 1, resp.Counts.Categories["kitchen"])
}

func TestListProducts_MalformedParamsDegrade(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("ListAll", mock.Anything).Return(handlerFixture(), nil)
	router := newTestRouter(t, repo)

	// Bad price and unknown sort must not fail the request.
	rec := doRequest(t, router, http.MethodGet,
		"/api/v1/catalog/products?price_min=abc&sort=bogus", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, 3, resp.TotalMatched)
	assert.Equal(t, "Bleach", resp.Products.Data[0].Name["en"])
}

func TestListProducts_Pagination(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("ListAll", mock.Anything).Return(handlerFixture(), nil)
	router := newTestRouter(t, repo)

	rec := doRequest(t, router, http.MethodGet,
		"/api/v1/catalog/products?per_page=2&page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	decodeData(t, rec, &resp)

	assert.Equal(t, 3, resp.TotalMatched)
	require.Len(t, resp.Products.Data, 1)
	assert.Equal(t, "Mop", resp.Products.Data[0].Name["en"])
	assert.Equal(t, 2, resp.Products.Page)
	assert.True(t, resp.Products.HasPrev)
	assert.False(t, resp.Products.HasNext)
}

func TestListProducts_RepositoryError(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("ListAll", mock.Anything).Return(nil, errors.New("db down"))
	router := newTestRouter(t, repo)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/products", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ============================================================================
// GetProduct
// ============================================================================

func TestGetProduct_Success(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("GetByID", mock.Anything, idBleach).Return(handlerFixture()[0], nil)
	router := newTestRouter(t, repo)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/products/"+idBleach, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view ProductView
	decodeData(t, rec, &view)
	assert.Equal(t, "SKU-1", view.SKU)
	assert.Equal(t, "bleach", view.Slug)
	assert.Equal(t, domain.StockStatusInStock, view.StockStatus)
}

func TestGetProduct_InvalidID(t *testing.T) {
	repo := new(mockProductRepository)
	router := newTestRouter(t, repo)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

// ============================================================================
// Facets
// ============================================================================

func TestFacets(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("ListAll", mock.Anything).Return(handlerFixture(), nil)
	router := newTestRouter(t, repo)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/facets", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var facets domain.Facets
	decodeData(t, rec, &facets)
	assert.Equal(t, []string{"CleanCo", "HomePlus"}, facets.Brands)
	assert.Equal(t, float64(2), facets.PriceBounds.Min)
	assert.Equal(t, float64(12), facets.PriceBounds.Max)
}

// ============================================================================
// Reconcile
// ============================================================================

func TestReconcile_MixedBatch(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("ListAll", mock.Anything).Return(handlerFixture(), nil)
	repo.On("UpdateStock", mock.Anything, mock.Anything).Return(nil)
	router := newTestRouter(t, repo)

	body := ReconcileRequest{Changes: []StockChangeItem{
		{ProductID: idBleach, Quantity: 50},
		{ProductID: "ghost", Quantity: 5},
		{ProductID: idSoap, Quantity: -2},
	}}

	rec := doRequest(t, router, http.MethodPost, "/api/v1/inventory/reconcile", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.ReconciliationReport
	decodeData(t, rec, &report)
	require.Len(t, report.Applied, 1)
	require.Len(t, report.Rejected, 2)
	assert.Equal(t, idBleach, report.Applied[0].ProductID)
	assert.Equal(t, domain.RejectUnknownProduct, report.Rejected[0].Reason)
	assert.Equal(t, domain.RejectNegativeQuantity, report.Rejected[1].Reason)
}

func TestReconcile_EmptyChanges(t *testing.T) {
	repo := new(mockProductRepository)
	router := newTestRouter(t, repo)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/inventory/reconcile",
		ReconcileRequest{Changes: []StockChangeItem{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReconcile_MalformedBody(t *testing.T) {
	repo := new(mockProductRepository)
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/reconcile",
		bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReconcile_WrongContentType(t *testing.T) {
	repo := new(mockProductRepository)
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/reconcile",
		bytes.NewReader([]byte("quantity=5")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

// ============================================================================
// SetStock
// ============================================================================

func TestSetStock_Success(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("ListAll", mock.Anything).Return(handlerFixture(), nil)
	repo.On("UpdateStock", mock.Anything, []repository.StockUpdate{
		{ProductID: idMop, Quantity: 20},
	}).Return(nil)
	router := newTestRouter(t, repo)

	rec := doRequest(t, router, http.MethodPut, "/api/v1/inventory/stock/"+idMop,
		SetStockRequest{Quantity: 20})
	require.Equal(t, http.StatusOK, rec.Code)

	var change domain.AppliedChange
	decodeData(t, rec, &change)
	assert.Equal(t, idMop, change.ProductID)
	assert.Equal(t, 3, change.OldQuantity)
	assert.Equal(t, 20, change.NewQuantity)
	assert.Equal(t, domain.StockStatusInStock, change.NewStatus)
}

func TestSetStock_UnknownProduct(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("ListAll", mock.Anything).Return(handlerFixture(), nil)
	router := newTestRouter(t, repo)

	ghost := "6f1a2b3c-0000-4000-8000-00000000ffff"
	rec := doRequest(t, router, http.MethodPut, "/api/v1/inventory/stock/"+ghost,
		SetStockRequest{Quantity: 20})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, domain.RejectUnknownProduct, envelope.Error.Code)
}

func TestSetStock_NegativeQuantity(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("ListAll", mock.Anything).Return(handlerFixture(), nil)
	router := newTestRouter(t, repo)

	rec := doRequest(t, router, http.MethodPut, "/api/v1/inventory/stock/"+idMop,
		SetStockRequest{Quantity: -1})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSetStock_InvalidID(t *testing.T) {
	repo := new(mockProductRepository)
	router := newTestRouter(t, repo)

	rec := doRequest(t, router, http.MethodPut, "/api/v1/inventory/stock/abc",
		SetStockRequest{Quantity: 20})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// LowStock
// ============================================================================

func TestLowStock(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("ListAll", mock.Anything).Return(handlerFixture(), nil)
	router := newTestRouter(t, repo)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/inventory/low-stock", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []LowStockItem `json:"items"`
		Count int            `json:"count"`
	}
	decodeData(t, rec, &resp)

	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "SKU-2", resp.Items[0].SKU)
	assert.Equal(t, BadgeOut, resp.Items[0].Badge)
	assert.Equal(t, "SKU-3", resp.Items[1].SKU)
	assert.Equal(t, BadgeLow, resp.Items[1].Badge)
}

// ============================================================================
// stockBadge
// ============================================================================

func TestStockBadge(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		expected  string
	}{
		{"zero is out", 0, 10, BadgeOut},
		{"negative is out", -3, 10, BadgeOut},
		{"at threshold is low", 10, 10, BadgeLow},
		{"below threshold is low", 5, 10, BadgeLow},
		{"just above threshold is near low", 11, 10, BadgeNearLow},
		{"at 1.5x threshold is near low", 15, 10, BadgeNearLow},
		{"above 1.5x threshold is ok", 16, 10, BadgeOK},
		{"odd threshold rounds the band up", 8, 5, BadgeNearLow}, // ceil(7.5) = 8
		{"odd threshold ok above rounded band", 9, 5, BadgeOK},
		{"large stock is ok", 500, 10, BadgeOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stockBadge(tt.quantity, tt.threshold))
		})
	}
}
